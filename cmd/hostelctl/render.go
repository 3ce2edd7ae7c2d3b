package main

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"hostel-client/internal/complaint"
	"hostel-client/internal/leave"
	"hostel-client/internal/outpass"
	"hostel-client/internal/shared/apperror"
	"hostel-client/internal/student"
)

var titleCaser = cases.Title(language.English)

// displayStatus renders the badge text the web UI showed: "in-progress"
// becomes "In-Progress", "pending" becomes "Pending".
func displayStatus(status string) string {
	if status == "" {
		return "Unknown"
	}
	return titleCaser.String(status)
}

// hardError filters out the degradations a list view tolerates: a shape
// warning already rendered as an empty list is not a command failure.
func hardError(err error) error {
	if err == nil || apperror.HasCode(err, apperror.CodeShape) {
		return nil
	}
	return err
}

func warnIfShape(err error) {
	if apperror.HasCode(err, apperror.CodeShape) {
		fmt.Println("warning:", err)
	}
}

func formatDay(value string) string {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.Format("02 Jan 2006")
	}
	return value
}

func renderLeaves(leaves []leave.Leave, err error) {
	warnIfShape(err)
	if len(leaves) == 0 {
		fmt.Println("  No leave requests yet.")
		return
	}
	for _, l := range leaves {
		fmt.Printf("  %-26s %-12s %s -> %s  %s\n",
			l.ID, displayStatus(l.Status), formatDay(l.StartDate), formatDay(l.EndDate), l.LeaveType)
	}
}

func renderComplaints(complaints []complaint.Complaint, err error) {
	warnIfShape(err)
	if len(complaints) == 0 {
		fmt.Println("  No complaints yet.")
		return
	}
	for _, c := range complaints {
		fmt.Printf("  %-26s %-12s %-14s %s\n", c.ID, displayStatus(c.Status), c.Category, c.Subject)
	}
}

func renderOutpasses(outpasses []outpass.Outpass, err error) {
	warnIfShape(err)
	if len(outpasses) == 0 {
		fmt.Println("  No outpasses yet.")
		return
	}
	for _, o := range outpasses {
		line := fmt.Sprintf("  %-26s %-12s %s (%s)", o.ID, displayStatus(o.Status), o.Destination, o.DepartureTime)
		if _, ok := o.QRPayload(); ok {
			line += "  [QR issued]"
		}
		fmt.Println(line)
	}
}

func renderStudents(records []student.Record, err error) {
	warnIfShape(err)
	for _, r := range records {
		fmt.Printf("%-10s %-20s room %-6s %s\n", r.RollNo, r.Name, r.RoomNo, r.Department)
	}
}
