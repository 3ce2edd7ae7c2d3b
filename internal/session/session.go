package session

type Role string

const (
	RoleStudent Role = "student"
	RoleWarden  Role = "warden"
)

// Placeholder tokens, kept verbatim from the system this replaces. The token
// is an opaque presence signal, not a credential; nothing decodes it.
const (
	studentToken = "student-token"
	wardenToken  = "warden-token"
)

type StudentRecord struct {
	Name          string `json:"name"`
	RollNo        string `json:"rollNo"`
	RoomNo        string `json:"roomNo"`
	Department    string `json:"department"`
	Year          string `json:"year"`
	ParentContact string `json:"parentContact"`
}

type WardenRecord struct {
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

// Session is the authenticated identity. Exactly one of Student / Warden is
// set, matching Role.
type Session struct {
	Role    Role
	Token   string
	Student *StudentRecord
	Warden  *WardenRecord
}

// Valid reports whether the session satisfies the store invariant: a token,
// a role, and an identity record of the matching kind.
func (s *Session) Valid() bool {
	if s == nil || s.Token == "" {
		return false
	}
	switch s.Role {
	case RoleStudent:
		return s.Student != nil
	case RoleWarden:
		return s.Warden != nil
	}
	return false
}

// RollNo is the lookup key for every student-owned resource.
func (s *Session) RollNo() string {
	if s == nil || s.Student == nil {
		return ""
	}
	return s.Student.RollNo
}
