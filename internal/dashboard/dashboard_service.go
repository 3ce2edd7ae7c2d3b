package dashboard

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"hostel-client/internal/complaint"
	"hostel-client/internal/leave"
	"hostel-client/internal/outpass"
	"hostel-client/internal/shared/apperror"
	"hostel-client/internal/student"
)

// StudentSummary is the student's landing view. The three resource lists
// populate disjoint sections, so each slice and error slot is independent;
// one failing fetch does not empty the others.
type StudentSummary struct {
	Leaves     []leave.Leave
	Complaints []complaint.Complaint
	Outpasses  []outpass.Outpass

	LeavesErr     error
	ComplaintsErr error
	OutpassesErr  error
}

// WardenStats is the warden's overview counters.
type WardenStats struct {
	TotalStudents    int
	PendingLeaves    int
	ActiveComplaints int
}

//go:generate mockgen -source=dashboard_service.go -destination=mock/dashboard_service_mock.go -package=mock
type Service interface {
	StudentSummary(ctx context.Context, rollNo string) StudentSummary
	WardenStats(ctx context.Context) (WardenStats, error)
}

type service struct {
	leaves     leave.Service
	complaints complaint.Service
	outpasses  outpass.Service
	students   student.Service
	logger     *zap.Logger
}

func NewService(
	leaves leave.Service,
	complaints complaint.Service,
	outpasses outpass.Service,
	students student.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	return &service{
		leaves:     leaves,
		complaints: complaints,
		outpasses:  outpasses,
		students:   students,
		logger:     l,
	}
}

// StudentSummary issues the three fetches concurrently. There is no ordering
// guarantee between them and none is needed.
func (s *service) StudentSummary(ctx context.Context, rollNo string) StudentSummary {
	var summary StudentSummary
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		summary.Leaves, summary.LeavesErr = s.leaves.History(ctx, rollNo)
	}()
	go func() {
		defer wg.Done()
		summary.Complaints, summary.ComplaintsErr = s.complaints.ListByRoll(ctx, rollNo)
	}()
	go func() {
		defer wg.Done()
		summary.Outpasses, summary.OutpassesErr = s.outpasses.ListByRoll(ctx, rollNo)
	}()
	wg.Wait()

	return summary
}

// WardenStats counts across all students. Any hard failure fails the whole
// stats card; shape degradations already arrive as empty lists.
func (s *service) WardenStats(ctx context.Context) (WardenStats, error) {
	var (
		wg         sync.WaitGroup
		records    []student.Record
		leaves     []leave.Leave
		complaints []complaint.Complaint

		recordsErr, leavesErr, complaintsErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		records, recordsErr = s.students.List(ctx)
	}()
	go func() {
		defer wg.Done()
		leaves, leavesErr = s.leaves.ListAll(ctx)
	}()
	go func() {
		defer wg.Done()
		complaints, complaintsErr = s.complaints.ListAll(ctx)
	}()
	wg.Wait()

	for _, err := range []error{recordsErr, leavesErr, complaintsErr} {
		if err != nil && !apperror.HasCode(err, apperror.CodeShape) {
			return WardenStats{}, err
		}
	}

	stats := WardenStats{TotalStudents: len(records)}
	for _, l := range leaves {
		if strings.EqualFold(l.Status, leave.StatusPending) {
			stats.PendingLeaves++
		}
	}
	for _, c := range complaints {
		status := strings.ToLower(c.Status)
		if status == complaint.StatusPending || status == complaint.StatusInProgress {
			stats.ActiveComplaints++
		}
	}
	return stats, nil
}
