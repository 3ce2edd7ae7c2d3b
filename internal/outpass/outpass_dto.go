package outpass

import "time"

type Outpass struct {
	ID               string    `json:"_id"`
	RollNo           string    `json:"rollNo"`
	StudentName      string    `json:"studentName"`
	RoomNo           string    `json:"roomNo"`
	Destination      string    `json:"destination"`
	Purpose          string    `json:"purpose"`
	DepartureTime    string    `json:"departureTime"`
	ReturnTime       string    `json:"returnTime"`
	EmergencyContact string    `json:"emergencyContact"`
	Status           string    `json:"status"`
	QRCode           string    `json:"qrCode,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// QRPayload exposes the gate-pass QR image payload. Only an approved outpass
// has one; Pending and Rejected never expose it even if the field leaked
// into the record.
func (o Outpass) QRPayload() (string, bool) {
	if o.Status != StatusApproved || o.QRCode == "" {
		return "", false
	}
	return o.QRCode, true
}

// Terminal reports whether the outpass reached a final state.
func (o Outpass) Terminal() bool {
	return o.Status == StatusApproved || o.Status == StatusRejected
}

// SubmitRequest carries the form fields. Departure and return are split into
// date and time inputs and combined into single timestamps on the wire.
type SubmitRequest struct {
	RollNo           string `json:"rollNo" validate:"required"`
	StudentName      string `json:"studentName" validate:"required"`
	RoomNo           string `json:"roomNo"`
	Destination      string `json:"destination" validate:"required"`
	Purpose          string `json:"purpose" validate:"required"`
	DepartureDate    string `json:"-" validate:"required"`
	DepartureClock   string `json:"-" validate:"required"`
	ReturnDate       string `json:"-" validate:"required"`
	ReturnClock      string `json:"-" validate:"required"`
	EmergencyContact string `json:"emergencyContact" validate:"required"`
}

// wirePayload is what actually goes to the backend.
type wirePayload struct {
	RollNo           string `json:"rollNo"`
	StudentName      string `json:"studentName"`
	RoomNo           string `json:"roomNo"`
	Destination      string `json:"destination"`
	Purpose          string `json:"purpose"`
	DepartureTime    string `json:"departureTime"`
	ReturnTime       string `json:"returnTime"`
	EmergencyContact string `json:"emergencyContact"`
}
