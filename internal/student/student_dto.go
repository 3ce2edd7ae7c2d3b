package student

// Record mirrors the backend's student document. RollNo is the lookup key
// for every dependent resource.
type Record struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	RollNo        string `json:"rollNo"`
	RoomNo        string `json:"roomNo"`
	Department    string `json:"department"`
	Year          string `json:"year"`
	ParentContact string `json:"parentContact"`
}

type RegisterRequest struct {
	Name          string `json:"name" validate:"required"`
	RollNo        string `json:"rollNo" validate:"required"`
	RegNo         string `json:"regNo" validate:"required"`
	RoomNo        string `json:"roomNo" validate:"required"`
	Department    string `json:"department"`
	Year          string `json:"year"`
	ParentContact string `json:"parentContact"`
}
