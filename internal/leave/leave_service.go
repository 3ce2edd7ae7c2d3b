package leave

import (
	"context"
	"net/url"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"hostel-client/internal/api"
	leaveerrors "hostel-client/internal/leave/errors"
	"hostel-client/internal/shared/apperror"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const resource = "leaves"

// ConfirmFunc answers a destructive-action prompt. Returning false yields
// USER_CANCELLED, which is not a failure.
type ConfirmFunc func() bool

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, req ApplyRequest) (Leave, error)
	History(ctx context.Context, rollNo string) ([]Leave, error)
	ListAll(ctx context.Context) ([]Leave, error)
	SetStatus(ctx context.Context, id, currentStatus, nextStatus string) (Leave, error)
	Delete(ctx context.Context, id string, confirm ConfirmFunc) error
}

type service struct {
	client   api.Resource
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(client api.Resource, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{client: client, validate: apperror.NewValidator(), logger: l}
}

// Apply submits a new leave request. Validation happens before any network
// call; a rejected submit is never retried automatically.
func (s *service) Apply(ctx context.Context, req ApplyRequest) (Leave, error) {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("apply leave validation failed", zap.Error(err))
		return Leave{}, apperror.MapValidationError(err)
	}
	if err := checkDateRange(req.StartDate, req.EndDate); err != nil {
		return Leave{}, err
	}

	var created Leave
	if err := s.client.Create(ctx, resource, req, &created); err != nil {
		return Leave{}, err
	}

	s.logger.Info("leave request submitted",
		zap.String("roll_no", req.RollNo),
		zap.String("leave_type", req.LeaveType),
	)
	return created, nil
}

// History lists one student's leave requests, most recent first.
func (s *service) History(ctx context.Context, rollNo string) ([]Leave, error) {
	if rollNo == "" {
		return nil, leaveerrors.ErrMissingRollNo
	}

	var leaves []Leave
	err := s.client.List(ctx, resource, url.Values{"rollno": {rollNo}}, &leaves)
	if err != nil && !apperror.HasCode(err, apperror.CodeShape) {
		return nil, err
	}

	sortByRecency(leaves)
	// A shape error degrades to the empty list but is still surfaced.
	return leaves, err
}

// ListAll is the warden view over every student's requests.
func (s *service) ListAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := s.client.List(ctx, resource, nil, &leaves)
	if err != nil && !apperror.HasCode(err, apperror.CodeShape) {
		return nil, err
	}

	sortByRecency(leaves)
	return leaves, err
}

// SetStatus moves a pending request to approved or rejected. Terminal
// records refuse further transitions client-side, matching what the warden
// screen offers.
func (s *service) SetStatus(ctx context.Context, id, currentStatus, nextStatus string) (Leave, error) {
	if currentStatus != StatusPending {
		return Leave{}, leaveerrors.ErrNotPending
	}
	if nextStatus != StatusApproved && nextStatus != StatusRejected {
		return Leave{}, leaveerrors.ErrInvalidStatus
	}

	var updated Leave
	patch := map[string]string{"status": nextStatus}
	if err := s.client.Update(ctx, resource, id, patch, &updated); err != nil {
		return Leave{}, err
	}

	s.logger.Info("leave status updated",
		zap.String("leave_id", id),
		zap.String("status", nextStatus),
	)
	return updated, nil
}

// Delete removes a request after confirmation. The backend does not restrict
// deletion to pending records, and neither does the client.
func (s *service) Delete(ctx context.Context, id string, confirm ConfirmFunc) error {
	if confirm != nil && !confirm() {
		return apperror.ErrUserCancelled
	}

	if err := s.client.Remove(ctx, resource, id); err != nil {
		return err
	}

	s.logger.Info("leave request deleted", zap.String("leave_id", id))
	return nil
}

func sortByRecency(leaves []Leave) {
	sort.SliceStable(leaves, func(i, j int) bool {
		return leaves[i].sortTime().After(leaves[j].sortTime())
	})
}

func checkDateRange(start, end string) error {
	startDate, err1 := time.Parse("2006-01-02", start)
	endDate, err2 := time.Parse("2006-01-02", end)
	if err1 != nil || err2 != nil {
		// The backend owns format validation for anything non-ISO.
		return nil
	}
	if endDate.Before(startDate) {
		return leaveerrors.ErrInvalidDateRange
	}
	return nil
}
