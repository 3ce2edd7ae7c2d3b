package session

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"hostel-client/internal/api"
	"hostel-client/internal/shared/apperror"
)

type StudentCredentials struct {
	RollNo string `json:"rollNo" validate:"required"`
	RegNo  string `json:"regNo" validate:"required"`
}

type WardenCredentials struct {
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Store owns the session lifecycle. It is handed explicitly to whatever
// needs it; nothing reads ambient global state.
type Store struct {
	client   api.Resource
	storage  Storage
	validate *validator.Validate
	logger   *zap.Logger
}

func NewStore(client api.Resource, storage Storage, logger ...*zap.Logger) *Store {
	l := zap.L().Named("session.store")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("session.store")
	}
	return &Store{
		client:   client,
		storage:  storage,
		validate: apperror.NewValidator(),
		logger:   l,
	}
}

// SignIn exchanges credentials for a session. userID/secret are the roll
// number and registration number for students, warden id and password for
// wardens. Any rejection surfaces as AUTH_ERROR with the server message when
// one was given.
func (s *Store) SignIn(ctx context.Context, role Role, userID, secret string) (*Session, error) {
	switch role {
	case RoleStudent:
		return s.SignInStudent(ctx, StudentCredentials{RollNo: userID, RegNo: secret})
	case RoleWarden:
		return s.SignInWarden(ctx, WardenCredentials{UserID: userID, Password: secret})
	}
	return nil, apperror.Auth("Unknown role: " + string(role))
}

func (s *Store) SignInStudent(ctx context.Context, creds StudentCredentials) (*Session, error) {
	if err := s.validate.Struct(creds); err != nil {
		return nil, apperror.Auth("Please enter all fields")
	}

	var resp struct {
		Student *StudentRecord `json:"student"`
	}
	if err := s.client.Post(ctx, "auth/student-login", creds, &resp); err != nil {
		return nil, asAuthError(err)
	}
	if resp.Student == nil {
		return nil, apperror.ErrLoginFailed
	}

	sess := &Session{Role: RoleStudent, Token: studentToken, Student: resp.Student}
	if err := s.persist(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("student signed in", zap.String("roll_no", resp.Student.RollNo))
	return sess, nil
}

func (s *Store) SignInWarden(ctx context.Context, creds WardenCredentials) (*Session, error) {
	if err := s.validate.Struct(creds); err != nil {
		return nil, apperror.Auth("Please enter all fields")
	}

	var resp struct {
		Warden *WardenRecord `json:"warden"`
	}
	if err := s.client.Post(ctx, "auth/warden-login", creds, &resp); err != nil {
		return nil, asAuthError(err)
	}
	if resp.Warden == nil {
		return nil, apperror.ErrLoginFailed
	}

	sess := &Session{Role: RoleWarden, Token: wardenToken, Warden: resp.Warden}
	if err := s.persist(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("warden signed in", zap.String("user_id", resp.Warden.UserID))
	return sess, nil
}

// persist writes the whole session or nothing: a half-written session is
// cleared rather than left behind.
func (s *Store) persist(ctx context.Context, sess *Session) error {
	identityKey := keyStudent
	var identity any = sess.Student
	if sess.Role == RoleWarden {
		identityKey = keyWarden
		identity = sess.Warden
	}

	record, err := json.Marshal(identity)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeAuth, "Could not persist session", 0)
	}

	writes := map[string]string{
		keyToken:    sess.Token,
		keyRole:     string(sess.Role),
		identityKey: string(record),
	}
	for key, value := range writes {
		if err := s.storage.Set(ctx, key, value); err != nil {
			s.logger.Error("session write failed, clearing partial state", zap.String("key", key), zap.Error(err))
			_ = s.storage.Clear(ctx)
			return apperror.Wrap(err, apperror.CodeAuth, "Could not persist session", 0)
		}
	}
	return nil
}

// Current is a pure read: it returns the persisted session, or nil when
// absent or unreadable. It never returns an error.
func (s *Store) Current(ctx context.Context) *Session {
	token, ok, err := s.storage.Get(ctx, keyToken)
	if err != nil || !ok || token == "" {
		return nil
	}
	roleValue, ok, err := s.storage.Get(ctx, keyRole)
	if err != nil || !ok || roleValue == "" {
		return nil
	}

	sess := &Session{Role: Role(roleValue), Token: token}
	switch sess.Role {
	case RoleStudent:
		sess.Student = readRecord[StudentRecord](ctx, s, keyStudent)
	case RoleWarden:
		sess.Warden = readRecord[WardenRecord](ctx, s, keyWarden)
	default:
		return nil
	}

	if !sess.Valid() {
		return nil
	}
	return sess
}

func readRecord[T any](ctx context.Context, s *Store, key string) *T {
	raw, ok, err := s.storage.Get(ctx, key)
	if err != nil || !ok {
		return nil
	}
	var record T
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		s.logger.Warn("stored identity record is unreadable", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &record
}

// SignOut clears all session state unconditionally.
func (s *Store) SignOut(ctx context.Context) error {
	return s.storage.Clear(ctx)
}

func asAuthError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code == apperror.CodeValidation {
		return apperror.Auth(appErr.Message)
	}
	return apperror.ErrLoginFailed
}
