package domain

// Global account roles carried in the access token. They are unrelated to
// board roles.
const (
	UserRoleAdmin  = "admin"
	UserRoleMember = "member"
)

// Principal is the authenticated caller as established by the token.
type Principal struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
