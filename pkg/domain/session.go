package domain

// RoleSuperAdmin is the only role allowed past the console's gate. It is also
// the role assumed when a stored or returned session does not name one.
const RoleSuperAdmin = "superadmin"

// Session is the client-held proof of authentication.
type Session struct {
	Token string `json:"token,omitempty"`
	Role  string `json:"role"`
}

// IsAuthed reports whether a token is present. Expiry is the server's call.
func (s Session) IsAuthed() bool {
	return s.Token != ""
}

// Credentials are the login form's in-progress values. Never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
