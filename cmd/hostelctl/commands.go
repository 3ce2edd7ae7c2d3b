package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"hostel-client/internal/api"
	"hostel-client/internal/complaint"
	"hostel-client/internal/config"
	"hostel-client/internal/dashboard"
	"hostel-client/internal/guard"
	"hostel-client/internal/leave"
	"hostel-client/internal/metrics"
	"hostel-client/internal/outpass"
	"hostel-client/internal/poll"
	"hostel-client/internal/session"
	"hostel-client/internal/shared/apperror"
	"hostel-client/internal/student"
)

type app struct {
	cfg     *config.Config
	store   *session.Store
	guard   *guard.Guard
	metrics *metrics.Metrics
	logger  *zap.Logger

	leaves     leave.Service
	complaints complaint.Service
	outpasses  outpass.Service
	students   student.Service
	dash       dashboard.Service
}

func newApp(cfg *config.Config, client *api.Client, store *session.Store, g *guard.Guard, m *metrics.Metrics, logger *zap.Logger) *app {
	leaves := leave.NewService(client, logger)
	complaints := complaint.NewService(client, logger)
	outpasses := outpass.NewService(client, logger)
	students := student.NewService(client, logger)
	return &app{
		cfg:        cfg,
		store:      store,
		guard:      g,
		metrics:    m,
		logger:     logger,
		leaves:     leaves,
		complaints: complaints,
		outpasses:  outpasses,
		students:   students,
		dash:       dashboard.NewService(leaves, complaints, outpasses, students, logger),
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.store.SignOut(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "dashboard":
		return a.studentDashboard(ctx)
	case "leaves":
		return a.listLeaves(ctx, args, false)
	case "all-leaves":
		return a.listLeaves(ctx, args, true)
	case "apply-leave":
		return a.applyLeave(ctx, args)
	case "delete-leave":
		return a.deleteLeave(ctx, args)
	case "complaints":
		return a.listComplaints(ctx, false)
	case "all-complaints":
		return a.listComplaints(ctx, true)
	case "submit-complaint":
		return a.submitComplaint(ctx, args)
	case "outpasses":
		return a.listOutpasses(ctx, false)
	case "all-outpasses":
		return a.listOutpasses(ctx, true)
	case "submit-outpass":
		return a.submitOutpass(ctx, args)
	case "set-leave-status":
		return a.setLeaveStatus(ctx, args)
	case "set-complaint-status":
		return a.setComplaintStatus(ctx, args)
	case "set-outpass-status":
		return a.setOutpassStatus(ctx, args)
	case "stats":
		return a.wardenStats(ctx)
	case "students":
		return a.listStudents(ctx)
	case "register-student":
		return a.registerStudent(ctx, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// requireRole gates a command the way the route guard gates a view.
func (a *app) requireRole(ctx context.Context, role session.Role) (*session.Session, error) {
	sess := a.store.Current(ctx)
	if d := a.guard.AuthorizeRole(sess, role); !d.Allowed {
		return nil, fmt.Errorf("not signed in as %s (run: hostelctl login %s ...)", role, role)
	}
	return sess, nil
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("login needs a role: student or warden")
	}
	role := session.Role(args[0])

	fs := flag.NewFlagSet("login", flag.ExitOnError)
	user := fs.String("user", "", "roll number (student) or warden id")
	secret := fs.String("secret", "", "registration number (student) or password")
	fs.Parse(args[1:])

	sess, err := a.store.SignIn(ctx, role, *user, *secret)
	if err != nil {
		return err
	}

	switch sess.Role {
	case session.RoleStudent:
		fmt.Printf("Signed in as %s (%s)\n", sess.Student.Name, sess.Student.RollNo)
	case session.RoleWarden:
		fmt.Printf("Signed in as %s (warden)\n", sess.Warden.Name)
	}
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	sess := a.store.Current(ctx)
	if !sess.Valid() {
		fmt.Println("Not signed in")
		return nil
	}
	switch sess.Role {
	case session.RoleStudent:
		fmt.Printf("student %s (%s), room %s\n", sess.Student.Name, sess.Student.RollNo, sess.Student.RoomNo)
	case session.RoleWarden:
		fmt.Printf("warden %s (%s)\n", sess.Warden.Name, sess.Warden.UserID)
	}
	return nil
}

func (a *app) studentDashboard(ctx context.Context) error {
	sess, err := a.requireRole(ctx, session.RoleStudent)
	if err != nil {
		return err
	}

	summary := a.dash.StudentSummary(ctx, sess.RollNo())
	fmt.Printf("Leaves (%d):\n", len(summary.Leaves))
	renderLeaves(summary.Leaves, summary.LeavesErr)
	fmt.Printf("Complaints (%d):\n", len(summary.Complaints))
	renderComplaints(summary.Complaints, summary.ComplaintsErr)
	fmt.Printf("Outpasses (%d):\n", len(summary.Outpasses))
	renderOutpasses(summary.Outpasses, summary.OutpassesErr)
	return nil
}

func (a *app) listLeaves(ctx context.Context, args []string, all bool) error {
	fs := flag.NewFlagSet("leaves", flag.ExitOnError)
	watch := fs.Bool("watch", false, "keep refreshing on the dashboard schedule")
	fs.Parse(args)

	var fetch poll.FetchFunc
	interval := a.cfg.PollInterval
	if all {
		if _, err := a.requireRole(ctx, session.RoleWarden); err != nil {
			return err
		}
		interval = a.cfg.WardenPollInterval
		fetch = func(ctx context.Context) error {
			leaves, err := a.leaves.ListAll(ctx)
			renderLeaves(leaves, err)
			return hardError(err)
		}
	} else {
		sess, err := a.requireRole(ctx, session.RoleStudent)
		if err != nil {
			return err
		}
		fetch = func(ctx context.Context) error {
			leaves, err := a.leaves.History(ctx, sess.RollNo())
			renderLeaves(leaves, err)
			return hardError(err)
		}
	}

	if !*watch {
		return fetch(ctx)
	}
	return a.watch(fetch, interval)
}

// watch runs a fetch on the dashboard cadence until interrupted: the regular
// interval plus the fixed morning/evening refresh points.
func (a *app) watch(fetch poll.FetchFunc, interval time.Duration) error {
	poller := poll.New("watch", poll.WithLogger(a.logger), poll.WithMetrics(a.metrics))
	poller.Start(fetch, interval)

	var times []poll.TimeOfDay
	for _, raw := range a.cfg.RefreshTimes {
		if t, ok := poll.ParseTimeOfDay(raw); ok {
			times = append(times, t)
		}
	}
	if len(times) > 0 {
		poller.ScheduleAt(fetch, times)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	poller.Stop()
	return nil
}

func (a *app) applyLeave(ctx context.Context, args []string) error {
	sess, err := a.requireRole(ctx, session.RoleStudent)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("apply-leave", flag.ExitOnError)
	leaveType := fs.String("type", "", "Home Visit, Medical, Emergency or Other")
	reason := fs.String("reason", "", "reason")
	start := fs.String("start", "", "start date (YYYY-MM-DD)")
	end := fs.String("end", "", "end date (YYYY-MM-DD)")
	address := fs.String("address", "", "address during leave")
	fs.Parse(args)

	created, err := a.leaves.Apply(ctx, leave.ApplyRequest{
		RollNo:        sess.RollNo(),
		LeaveType:     *leaveType,
		Reason:        *reason,
		StartDate:     *start,
		EndDate:       *end,
		Address:       *address,
		ParentContact: sess.Student.ParentContact,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Leave request submitted (%s)\n", created.ID)
	return nil
}

func (a *app) deleteLeave(ctx context.Context, args []string) error {
	if _, err := a.requireRole(ctx, session.RoleStudent); err != nil {
		return err
	}

	fs := flag.NewFlagSet("delete-leave", flag.ExitOnError)
	id := fs.String("id", "", "leave id")
	yes := fs.Bool("yes", false, "skip confirmation")
	fs.Parse(args)

	confirm := func() bool {
		if *yes {
			return true
		}
		fmt.Print("Are you sure you want to delete this leave request? [y/N] ")
		line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}

	err := a.leaves.Delete(ctx, *id, confirm)
	if apperror.HasCode(err, apperror.CodeCancelled) {
		fmt.Println("Cancelled")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("Leave deleted successfully!")
	return nil
}

func (a *app) listComplaints(ctx context.Context, all bool) error {
	if all {
		if _, err := a.requireRole(ctx, session.RoleWarden); err != nil {
			return err
		}
		complaints, err := a.complaints.ListAll(ctx)
		renderComplaints(complaints, err)
		return hardError(err)
	}

	sess, err := a.requireRole(ctx, session.RoleStudent)
	if err != nil {
		return err
	}
	complaints, err := a.complaints.ListByRoll(ctx, sess.RollNo())
	renderComplaints(complaints, err)
	return hardError(err)
}

func (a *app) submitComplaint(ctx context.Context, args []string) error {
	sess, err := a.requireRole(ctx, session.RoleStudent)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("submit-complaint", flag.ExitOnError)
	category := fs.String("category", "", "complaint category")
	subject := fs.String("subject", "", "subject")
	description := fs.String("description", "", "description")
	fs.Parse(args)

	created, err := a.complaints.Submit(ctx, complaint.SubmitRequest{
		Name:        sess.Student.Name,
		RollNo:      sess.RollNo(),
		RoomNo:      sess.Student.RoomNo,
		Category:    *category,
		Subject:     *subject,
		Description: *description,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Complaint submitted (%s)\n", created.ID)
	return nil
}

func (a *app) listOutpasses(ctx context.Context, all bool) error {
	if all {
		if _, err := a.requireRole(ctx, session.RoleWarden); err != nil {
			return err
		}
		outpasses, err := a.outpasses.ListAll(ctx)
		renderOutpasses(outpasses, err)
		return hardError(err)
	}

	sess, err := a.requireRole(ctx, session.RoleStudent)
	if err != nil {
		return err
	}
	outpasses, err := a.outpasses.ListByRoll(ctx, sess.RollNo())
	renderOutpasses(outpasses, err)
	return hardError(err)
}

func (a *app) submitOutpass(ctx context.Context, args []string) error {
	sess, err := a.requireRole(ctx, session.RoleStudent)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("submit-outpass", flag.ExitOnError)
	destination := fs.String("destination", "", "destination")
	purpose := fs.String("purpose", "", "purpose")
	departureDate := fs.String("departure-date", "", "departure date (YYYY-MM-DD)")
	departureTime := fs.String("departure-time", "", "departure time (HH:MM)")
	returnDate := fs.String("return-date", "", "return date (YYYY-MM-DD)")
	returnTime := fs.String("return-time", "", "return time (HH:MM)")
	contact := fs.String("contact", "", "emergency contact")
	fs.Parse(args)

	created, err := a.outpasses.Submit(ctx, outpass.SubmitRequest{
		RollNo:           sess.RollNo(),
		StudentName:      sess.Student.Name,
		RoomNo:           sess.Student.RoomNo,
		Destination:      *destination,
		Purpose:          *purpose,
		DepartureDate:    *departureDate,
		DepartureClock:   *departureTime,
		ReturnDate:       *returnDate,
		ReturnClock:      *returnTime,
		EmergencyContact: *contact,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Outpass submitted successfully! (%s)\n", created.ID)
	return nil
}

func (a *app) setLeaveStatus(ctx context.Context, args []string) error {
	if _, err := a.requireRole(ctx, session.RoleWarden); err != nil {
		return err
	}

	fs := flag.NewFlagSet("set-leave-status", flag.ExitOnError)
	id := fs.String("id", "", "leave id")
	current := fs.String("current", leave.StatusPending, "current status")
	status := fs.String("status", "", "approved or rejected")
	fs.Parse(args)

	updated, err := a.leaves.SetStatus(ctx, *id, *current, *status)
	if err != nil {
		return err
	}
	fmt.Printf("Leave %s is now %s\n", updated.ID, displayStatus(updated.Status))
	return nil
}

func (a *app) setComplaintStatus(ctx context.Context, args []string) error {
	if _, err := a.requireRole(ctx, session.RoleWarden); err != nil {
		return err
	}

	fs := flag.NewFlagSet("set-complaint-status", flag.ExitOnError)
	id := fs.String("id", "", "complaint id")
	current := fs.String("current", complaint.StatusPending, "current status")
	status := fs.String("status", "", "in-progress or resolved")
	fs.Parse(args)

	updated, err := a.complaints.SetStatus(ctx, *id, *current, *status)
	if err != nil {
		return err
	}
	fmt.Printf("Complaint %s is now %s\n", updated.ID, displayStatus(updated.Status))
	return nil
}

func (a *app) setOutpassStatus(ctx context.Context, args []string) error {
	if _, err := a.requireRole(ctx, session.RoleWarden); err != nil {
		return err
	}

	fs := flag.NewFlagSet("set-outpass-status", flag.ExitOnError)
	id := fs.String("id", "", "outpass id")
	current := fs.String("current", outpass.StatusPending, "current status")
	status := fs.String("status", "", "Approved or Rejected")
	fs.Parse(args)

	updated, err := a.outpasses.SetStatus(ctx, *id, *current, *status)
	if err != nil {
		return err
	}
	fmt.Printf("Outpass %s is now %s\n", updated.ID, displayStatus(updated.Status))
	if qr, ok := updated.QRPayload(); ok {
		fmt.Println("QR:", qr)
	}
	return nil
}

func (a *app) wardenStats(ctx context.Context) error {
	if _, err := a.requireRole(ctx, session.RoleWarden); err != nil {
		return err
	}

	stats, err := a.dash.WardenStats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Students: %d\nPending leaves: %d\nActive complaints: %d\n",
		stats.TotalStudents, stats.PendingLeaves, stats.ActiveComplaints)
	return nil
}

func (a *app) listStudents(ctx context.Context) error {
	if _, err := a.requireRole(ctx, session.RoleWarden); err != nil {
		return err
	}

	records, err := a.students.List(ctx)
	renderStudents(records, err)
	return hardError(err)
}

func (a *app) registerStudent(ctx context.Context, args []string) error {
	if _, err := a.requireRole(ctx, session.RoleWarden); err != nil {
		return err
	}

	fs := flag.NewFlagSet("register-student", flag.ExitOnError)
	name := fs.String("name", "", "student name")
	roll := fs.String("roll", "", "roll number")
	reg := fs.String("reg", "", "registration number")
	room := fs.String("room", "", "room number")
	department := fs.String("department", "", "department")
	year := fs.String("year", "", "year")
	contact := fs.String("contact", "", "parent contact")
	fs.Parse(args)

	created, err := a.students.Register(ctx, student.RegisterRequest{
		Name:          *name,
		RollNo:        *roll,
		RegNo:         *reg,
		RoomNo:        *room,
		Department:    *department,
		Year:          *year,
		ParentContact: *contact,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Student %s registered\n", created.RollNo)
	return nil
}
