package student

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"hostel-client/internal/api"
	"hostel-client/internal/shared/apperror"
)

const resource = "students"

//go:generate mockgen -source=student_service.go -destination=mock/student_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context) ([]Record, error)
	Register(ctx context.Context, req RegisterRequest) (Record, error)
}

type service struct {
	client   api.Resource
	validate *validator.Validate
	logger   *zap.Logger
}

func NewService(client api.Resource, logger ...*zap.Logger) Service {
	l := zap.L().Named("student.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("student.service")
	}
	return &service{client: client, validate: apperror.NewValidator(), logger: l}
}

// List is the warden's student directory, ordered by roll number.
func (s *service) List(ctx context.Context) ([]Record, error) {
	var records []Record
	err := s.client.List(ctx, resource, nil, &records)
	if err != nil && !apperror.HasCode(err, apperror.CodeShape) {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RollNo < records[j].RollNo
	})
	return records, err
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (Record, error) {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("register student validation failed", zap.Error(err))
		return Record{}, apperror.MapValidationError(err)
	}

	var created Record
	if err := s.client.Create(ctx, resource, req, &created); err != nil {
		return Record{}, err
	}

	s.logger.Info("student registered", zap.String("roll_no", req.RollNo))
	return created, nil
}
