package types

import "fmt"

// SessionRole is the kind of a live websocket session. The two roles are
// disjoint: a session registers under exactly one.
type SessionRole string

const (
	// RoleCapture is the submitting client (wearable / phone companion)
	RoleCapture SessionRole = "capture"
	// RoleViewer is the viewing client that receives push notifications
	RoleViewer SessionRole = "viewer"
)

// AllSessionRoles returns all valid session roles
func AllSessionRoles() []SessionRole {
	return []SessionRole{RoleCapture, RoleViewer}
}

// IsValid checks if the session role is valid
func (r SessionRole) IsValid() bool {
	switch r {
	case RoleCapture, RoleViewer:
		return true
	default:
		return false
	}
}

// String returns the string representation of the session role
func (r SessionRole) String() string {
	return string(r)
}

// ParseSessionRole parses a string into a SessionRole
func ParseSessionRole(s string) (SessionRole, error) {
	role := SessionRole(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid session role: %s", s)
	}
	return role, nil
}
