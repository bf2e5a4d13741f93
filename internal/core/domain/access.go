package domain

// AccessPath names the entry point a decision was resolved through.
type AccessPath string

const (
	PathBoard AccessPath = "board"
	PathList  AccessPath = "list"
	PathCard  AccessPath = "card"
)

// Decision is the outcome of resolving a user's role on a board.
// Err is nil exactly when HasAccess is true.
type Decision struct {
	HasAccess bool
	Role      Role
	Board     *Board
	List      *List
	Card      *Card
	Err       error
}

// Reason is the caller-facing explanation for a denied decision.
func (d Decision) Reason() string {
	if d.Err == nil {
		return ""
	}
	return d.Err.Error()
}

// Allows applies the permission gate to the resolved role.
func (d Decision) Allows(required Role) bool {
	return d.HasAccess && HasPermission(d.Role, required)
}

// Deny builds a negative decision carrying err.
func Deny(err error) Decision {
	return Decision{Err: err}
}
