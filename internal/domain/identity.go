package domain

// Role is the closed set of account roles. Authorization decisions compare
// against these values exactly; there is no hierarchy between them.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleEditor    Role = "editor"
	RoleViewer    Role = "viewer"
	RoleVoter     Role = "voter"
	RoleCandidate Role = "candidate"
)

// ValidRole reports whether r is one of the enumerated roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer, RoleVoter, RoleCandidate:
		return true
	}
	return false
}

// Identity is the decoded payload of a verified token. It is constructed
// fresh on every verification, lives only in that request's context, and is
// never persisted.
type Identity struct {
	UserID string
	Email  string
	Role   Role
}
