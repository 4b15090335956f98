package domain

// Role distinguishes the two principal kinds. It tags log records and
// context slots; authorization itself is enforced by which role-scoped
// resolver handled the request, never by inspecting this value inside a
// token.
type Role string

// The two supported roles.
const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Principal is the minimal identity shared by both account kinds.
type Principal struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	Name string `json:"name"`
}
