package stubapi_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"hostel-client/internal/api"
	"hostel-client/internal/complaint"
	"hostel-client/internal/dashboard"
	"hostel-client/internal/leave"
	"hostel-client/internal/outpass"
	"hostel-client/internal/session"
	"hostel-client/internal/shared/apperror"
	"hostel-client/internal/student"
	"hostel-client/internal/stubapi"
)

// newBackend wires a real client against the in-memory backend, the same way
// the CLI wires against a live server.
func newBackend(t *testing.T) *api.Client {
	t.Helper()
	stub := stubapi.New()
	stub.SeedStudent("Arun Kumar", "CS101", "R55", "A-101")
	stub.SeedStudent("Priya S", "EC204", "R91", "B-210")

	server := httptest.NewServer(stub.Router())
	t.Cleanup(server.Close)

	return api.NewClient(server.URL+"/api", api.WithRateLimit(1000, 1000))
}

func TestMetricsEndpoint(t *testing.T) {
	server := httptest.NewServer(stubapi.New().Router())
	defer server.Close()

	res, err := http.Get(server.URL + "/metrics")
	assert.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	body, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "# HELP")
}

func TestEndToEnd_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	client := newBackend(t)

	t.Run("success student sign-in round trip", func(t *testing.T) {
		store := session.NewStore(client, session.NewMemoryStorage())

		sess, err := store.SignIn(ctx, session.RoleStudent, "CS101", "R55")

		assert.NoError(t, err)
		assert.Equal(t, "CS101", sess.RollNo())
		assert.Equal(t, "Arun Kumar", sess.Student.Name)
		assert.Equal(t, "A-101", sess.Student.RoomNo)

		assert.NoError(t, store.SignOut(ctx))
		assert.Nil(t, store.Current(ctx))
	})

	t.Run("success warden sign-in", func(t *testing.T) {
		store := session.NewStore(client, session.NewMemoryStorage())

		sess, err := store.SignIn(ctx, session.RoleWarden, "warden", "warden123")

		assert.NoError(t, err)
		assert.Equal(t, "Chief Warden", sess.Warden.Name)
	})

	t.Run("negative wrong registration number", func(t *testing.T) {
		store := session.NewStore(client, session.NewMemoryStorage())

		_, err := store.SignIn(ctx, session.RoleStudent, "CS101", "WRONG")

		assert.True(t, apperror.HasCode(err, apperror.CodeAuth))
		assert.Contains(t, err.Error(), "Invalid roll number or registration number")
	})
}

func TestEndToEnd_LeaveLifecycle(t *testing.T) {
	ctx := context.Background()
	client := newBackend(t)
	svc := leave.NewService(client)

	created, err := svc.Apply(ctx, leave.ApplyRequest{
		RollNo:    "CS101",
		LeaveType: "Home Visit",
		Reason:    "Festival at home",
		StartDate: "2026-09-01",
		EndDate:   "2026-09-04",
		Address:   "12 Main Street, Chennai",
	})
	assert.NoError(t, err)
	assert.Equal(t, leave.StatusPending, created.Status)

	// The wrapped {leaves: [...]} response normalizes transparently.
	history, err := svc.History(ctx, "CS101")
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, created.ID, history[0].ID)

	// Another student sees nothing.
	other, err := svc.History(ctx, "EC204")
	assert.NoError(t, err)
	assert.Empty(t, other)

	approved, err := svc.SetStatus(ctx, created.ID, leave.StatusPending, leave.StatusApproved)
	assert.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)

	assert.NoError(t, svc.Delete(ctx, created.ID, func() bool { return true }))

	history, err = svc.History(ctx, "CS101")
	assert.NoError(t, err)
	assert.Empty(t, history)

	err = svc.Delete(ctx, created.ID, nil)
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
}

func TestEndToEnd_ComplaintLifecycle(t *testing.T) {
	ctx := context.Background()
	client := newBackend(t)
	svc := complaint.NewService(client)

	created, err := svc.Submit(ctx, complaint.SubmitRequest{
		Name:        "Arun Kumar",
		RollNo:      "CS101",
		RoomNo:      "A-101",
		Category:    "Electrical",
		Subject:     "Fan not working",
		Description: "Ceiling fan stopped turning.",
	})
	assert.NoError(t, err)
	assert.Equal(t, complaint.StatusPending, created.Status)

	// The warden list is served bare from /complaints/all.
	all, err := svc.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	inProgress, err := svc.SetStatus(ctx, created.ID, created.Status, complaint.StatusInProgress)
	assert.NoError(t, err)
	assert.Equal(t, complaint.StatusInProgress, inProgress.Status)

	resolved, err := svc.SetStatus(ctx, created.ID, inProgress.Status, complaint.StatusResolved)
	assert.NoError(t, err)
	assert.True(t, resolved.Terminal())

	_, err = svc.SetStatus(ctx, created.ID, resolved.Status, complaint.StatusInProgress)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestEndToEnd_OutpassLifecycle(t *testing.T) {
	ctx := context.Background()
	client := newBackend(t)
	svc := outpass.NewService(client)

	created, err := svc.Submit(ctx, outpass.SubmitRequest{
		RollNo:           "CS101",
		StudentName:      "Arun Kumar",
		RoomNo:           "A-101",
		Destination:      "City Hospital",
		Purpose:          "Dental appointment",
		DepartureDate:    "2026-09-01",
		DepartureClock:   "09:00",
		ReturnDate:       "2026-09-01",
		ReturnClock:      "18:00",
		EmergencyContact: "9876543210",
	})
	assert.NoError(t, err)
	assert.Equal(t, outpass.StatusPending, created.Status)
	assert.Equal(t, "2026-09-01T09:00", created.DepartureTime)

	_, ok := created.QRPayload()
	assert.False(t, ok)

	approved, err := svc.SetStatus(ctx, created.ID, created.Status, outpass.StatusApproved)
	assert.NoError(t, err)

	payload, ok := approved.QRPayload()
	assert.True(t, ok)
	assert.Contains(t, payload, "data:image/png;base64,")

	mine, err := svc.ListByRoll(ctx, "CS101")
	assert.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.True(t, mine[0].Terminal())
}

func TestEndToEnd_WardenOverview(t *testing.T) {
	ctx := context.Background()
	client := newBackend(t)

	leaves := leave.NewService(client)
	complaints := complaint.NewService(client)
	outpasses := outpass.NewService(client)
	students := student.NewService(client)
	board := dashboard.NewService(leaves, complaints, outpasses, students)

	_, err := leaves.Apply(ctx, leave.ApplyRequest{
		RollNo:    "CS101",
		LeaveType: "Medical",
		Reason:    "Fever",
		StartDate: "2026-09-02",
		EndDate:   "2026-09-03",
		Address:   "12 Main Street, Chennai",
	})
	assert.NoError(t, err)

	_, err = complaints.Submit(ctx, complaint.SubmitRequest{
		Name:        "Priya S",
		RollNo:      "EC204",
		RoomNo:      "B-210",
		Category:    "Plumbing",
		Subject:     "Leaking tap",
		Description: "Bathroom tap drips all night.",
	})
	assert.NoError(t, err)

	stats, err := board.WardenStats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.TotalStudents)
	assert.Equal(t, 1, stats.PendingLeaves)
	assert.Equal(t, 1, stats.ActiveComplaints)

	summary := board.StudentSummary(ctx, "CS101")
	assert.NoError(t, summary.LeavesErr)
	assert.Len(t, summary.Leaves, 1)
	assert.Empty(t, summary.Complaints)

	// Directory ordered by roll number
	directory, err := students.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, directory, 2)
	assert.Equal(t, "CS101", directory[0].RollNo)

	registered, err := students.Register(ctx, student.RegisterRequest{
		Name:   "Vikram R",
		RollNo: "ME150",
		RegNo:  "R12",
		RoomNo: "C-004",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, registered.ID)

	directory, err = students.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, directory, 3)
}
