package domain

// AdminUser is the operator account returned by the login endpoint.
type AdminUser struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	Name  string `json:"name,omitempty"`
}
