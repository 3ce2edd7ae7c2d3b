package outpass

import (
	"context"
	"net/url"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"hostel-client/internal/api"
	outpasserrors "hostel-client/internal/outpass/errors"
	"hostel-client/internal/shared/apperror"
)

// Outpass statuses are capitalized on the wire, unlike leaves and
// complaints. The backend is the source of that inconsistency.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

const resource = "outpasses"

//go:generate mockgen -source=outpass_service.go -destination=mock/outpass_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (Outpass, error)
	ListByRoll(ctx context.Context, rollNo string) ([]Outpass, error)
	ListAll(ctx context.Context) ([]Outpass, error)
	SetStatus(ctx context.Context, id, currentStatus, nextStatus string) (Outpass, error)
}

type service struct {
	client   api.Resource
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(client api.Resource, logger ...*zap.Logger) Service {
	l := zap.L().Named("outpass.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("outpass.service")
	}
	return &service{client: client, validate: apperror.NewValidator(), logger: l}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (Outpass, error) {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("submit outpass validation failed", zap.Error(err))
		return Outpass{}, apperror.MapValidationError(err)
	}

	payload := wirePayload{
		RollNo:           req.RollNo,
		StudentName:      req.StudentName,
		RoomNo:           req.RoomNo,
		Destination:      req.Destination,
		Purpose:          req.Purpose,
		DepartureTime:    req.DepartureDate + "T" + req.DepartureClock,
		ReturnTime:       req.ReturnDate + "T" + req.ReturnClock,
		EmergencyContact: req.EmergencyContact,
	}
	if err := checkWindow(payload.DepartureTime, payload.ReturnTime); err != nil {
		return Outpass{}, err
	}

	var created Outpass
	if err := s.client.Create(ctx, resource, payload, &created); err != nil {
		return Outpass{}, err
	}

	s.logger.Info("outpass submitted",
		zap.String("roll_no", req.RollNo),
		zap.String("destination", req.Destination),
	)
	return created, nil
}

func (s *service) ListByRoll(ctx context.Context, rollNo string) ([]Outpass, error) {
	if rollNo == "" {
		return nil, outpasserrors.ErrMissingRollNo
	}

	var outpasses []Outpass
	err := s.client.List(ctx, resource, url.Values{"rollno": {rollNo}}, &outpasses)
	if err != nil && !apperror.HasCode(err, apperror.CodeShape) {
		return nil, err
	}

	sortByRecency(outpasses)
	return outpasses, err
}

func (s *service) ListAll(ctx context.Context) ([]Outpass, error) {
	var outpasses []Outpass
	err := s.client.List(ctx, resource, nil, &outpasses)
	if err != nil && !apperror.HasCode(err, apperror.CodeShape) {
		return nil, err
	}

	sortByRecency(outpasses)
	return outpasses, err
}

// SetStatus approves or rejects a pending outpass via PATCH. On approval the
// backend issues the QR payload; the client never fabricates one.
func (s *service) SetStatus(ctx context.Context, id, currentStatus, nextStatus string) (Outpass, error) {
	if currentStatus != StatusPending {
		return Outpass{}, outpasserrors.ErrNotPending
	}
	if nextStatus != StatusApproved && nextStatus != StatusRejected {
		return Outpass{}, outpasserrors.ErrInvalidStatus
	}

	var updated Outpass
	patch := map[string]string{"status": nextStatus}
	if err := s.client.Update(ctx, resource, id, patch, &updated); err != nil {
		return Outpass{}, err
	}

	s.logger.Info("outpass status updated",
		zap.String("outpass_id", id),
		zap.String("status", nextStatus),
	)
	return updated, nil
}

func sortByRecency(outpasses []Outpass) {
	sort.SliceStable(outpasses, func(i, j int) bool {
		return outpasses[i].CreatedAt.After(outpasses[j].CreatedAt)
	})
}

func checkWindow(departure, ret string) error {
	const layout = "2006-01-02T15:04"
	dep, err1 := time.Parse(layout, departure)
	back, err2 := time.Parse(layout, ret)
	if err1 != nil || err2 != nil {
		return nil
	}
	if !back.After(dep) {
		return outpasserrors.ErrReturnBeforeDeparture
	}
	return nil
}
