package domain

// Role is a user's effective access level on a board.
// The zero value means no role.
type Role string

const (
	RoleNone   Role = ""
	RoleViewer Role = "VIEWER"
	RoleEditor Role = "EDITOR"
	RoleOwner  Role = "OWNER"
)

// roleRank is the total order VIEWER < EDITOR < OWNER.
var roleRank = map[Role]int{
	RoleViewer: 0,
	RoleEditor: 1,
	RoleOwner:  2,
}

// Rank returns the position of r in the role order and false when r is not a
// known role.
func (r Role) Rank() (int, bool) {
	n, ok := roleRank[r]
	return n, ok
}

// Valid reports whether r is one of the three board roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// HasPermission reports whether userRole satisfies requiredRole.
// An empty or unknown role never satisfies anything.
func HasPermission(userRole, requiredRole Role) bool {
	have, ok := userRole.Rank()
	if !ok {
		return false
	}
	need, ok := requiredRole.Rank()
	if !ok {
		return false
	}
	return have >= need
}

// ParseRole converts a case-sensitive role name into a Role.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	if !r.Valid() {
		return RoleNone, false
	}
	return r, true
}
