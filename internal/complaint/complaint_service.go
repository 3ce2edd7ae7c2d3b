package complaint

import (
	"context"
	"net/url"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"hostel-client/internal/api"
	complainterrors "hostel-client/internal/complaint/errors"
	"hostel-client/internal/shared/apperror"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusResolved   = "resolved"
)

const resource = "complaints"

// statusRank orders the monotonic lifecycle: pending < in-progress < resolved.
var statusRank = map[string]int{
	StatusPending:    0,
	StatusInProgress: 1,
	StatusResolved:   2,
}

//go:generate mockgen -source=complaint_service.go -destination=mock/complaint_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (Complaint, error)
	ListByRoll(ctx context.Context, rollNo string) ([]Complaint, error)
	ListAll(ctx context.Context) ([]Complaint, error)
	SetStatus(ctx context.Context, id, currentStatus, nextStatus string) (Complaint, error)
}

type service struct {
	client   api.Resource
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(client api.Resource, logger ...*zap.Logger) Service {
	l := zap.L().Named("complaint.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("complaint.service")
	}
	return &service{client: client, validate: apperror.NewValidator(), logger: l}
}

func (s *service) Submit(ctx context.Context, req SubmitRequest) (Complaint, error) {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("submit complaint validation failed", zap.Error(err))
		return Complaint{}, apperror.MapValidationError(err)
	}

	var created Complaint
	if err := s.client.Create(ctx, resource, req, &created); err != nil {
		return Complaint{}, err
	}

	s.logger.Info("complaint submitted",
		zap.String("roll_no", req.RollNo),
		zap.String("category", req.Category),
	)
	return created, nil
}

func (s *service) ListByRoll(ctx context.Context, rollNo string) ([]Complaint, error) {
	if rollNo == "" {
		return nil, complainterrors.ErrMissingRollNo
	}

	var complaints []Complaint
	err := s.client.List(ctx, resource, url.Values{"rollno": {rollNo}}, &complaints)
	if err != nil && !apperror.HasCode(err, apperror.CodeShape) {
		return nil, err
	}

	sortByRecency(complaints)
	return complaints, err
}

// ListAll is the warden view; the backend serves it from /complaints/all.
func (s *service) ListAll(ctx context.Context) ([]Complaint, error) {
	var complaints []Complaint
	err := s.client.List(ctx, resource, nil, &complaints)
	if err != nil && !apperror.HasCode(err, apperror.CodeShape) {
		return nil, err
	}

	sortByRecency(complaints)
	return complaints, err
}

// SetStatus advances the complaint lifecycle. Transitions only move forward;
// resolved is terminal.
func (s *service) SetStatus(ctx context.Context, id, currentStatus, nextStatus string) (Complaint, error) {
	currentRank, ok := statusRank[currentStatus]
	if !ok {
		// The backend defaults a blank status to pending; mirror that.
		currentRank = statusRank[StatusPending]
	}
	nextRank, ok := statusRank[nextStatus]
	if !ok {
		return Complaint{}, complainterrors.ErrUnknownStatus
	}
	if nextRank <= currentRank {
		return Complaint{}, complainterrors.ErrBackwardTransition
	}

	var updated Complaint
	patch := map[string]string{"status": nextStatus}
	if err := s.client.Update(ctx, resource, id, patch, &updated); err != nil {
		return Complaint{}, err
	}

	s.logger.Info("complaint status updated",
		zap.String("complaint_id", id),
		zap.String("status", nextStatus),
	)
	return updated, nil
}

func sortByRecency(complaints []Complaint) {
	sort.SliceStable(complaints, func(i, j int) bool {
		return complaints[i].CreatedAt.After(complaints[j].CreatedAt)
	})
}
