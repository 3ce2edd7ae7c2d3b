package leave

import "time"

type Leave struct {
	ID        string    `json:"_id"`
	RollNo    string    `json:"rollno"`
	LeaveType string    `json:"leaveType"`
	Reason    string    `json:"reason"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Address   string    `json:"address"`
	Status    string    `json:"status"`
	AppliedOn time.Time `json:"appliedOn"`
	CreatedAt time.Time `json:"createdAt"`
}

// sortTime is the recency key: appliedOn, falling back to createdAt for
// records the backend stored before appliedOn existed.
func (l Leave) sortTime() time.Time {
	if !l.AppliedOn.IsZero() {
		return l.AppliedOn
	}
	return l.CreatedAt
}

// Terminal reports whether no further mutation should be offered.
func (l Leave) Terminal() bool {
	return l.Status == StatusApproved || l.Status == StatusRejected
}

type ApplyRequest struct {
	RollNo        string `json:"rollno" validate:"required"`
	LeaveType     string `json:"leaveType" validate:"required,oneof='Home Visit' 'Medical' 'Emergency' 'Other'"`
	Reason        string `json:"reason" validate:"required"`
	StartDate     string `json:"startDate" validate:"required"`
	EndDate       string `json:"endDate" validate:"required"`
	Address       string `json:"address" validate:"required"`
	ParentContact string `json:"parentContact"`
}
