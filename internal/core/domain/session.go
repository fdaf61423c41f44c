package domain

// Claims is the session-token payload derived from a Teacher record at
// sign-in. A nil *Claims means the caller is unauthenticated; a non-nil
// value always carries normalized Role and ApprovalStatus fields, so
// policy code never has to reason about missing claims.
type Claims struct {
	TeacherID      string
	Role           Role
	ApprovalStatus ApprovalStatus
}

func (c *Claims) Approved() bool {
	return c != nil && c.ApprovalStatus == StatusApproved
}

func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
