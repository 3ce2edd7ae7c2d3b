package complaint

import "time"

type Complaint struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	RollNo      string    `json:"rollno"`
	RoomNo      string    `json:"roomNo"`
	Category    string    `json:"category"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Terminal reports whether the complaint reached its final state.
func (c Complaint) Terminal() bool {
	return c.Status == StatusResolved
}

type SubmitRequest struct {
	Name        string `json:"name" validate:"required"`
	RollNo      string `json:"rollno" validate:"required"`
	RoomNo      string `json:"roomNo" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Description string `json:"description" validate:"required"`
}
