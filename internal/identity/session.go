package identity

// Session is the live authenticated identity handle for a client. The
// application never mutates it directly; it re-reads it through Reload to
// pick up verification-status changes.
type Session struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	DisplayName   string `json:"display_name"`
	EmailVerified bool   `json:"email_verified"`
}
