package models

// Credentials is the login request payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the registration request payload. Phone is optional;
// everything else is required by the remote API.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
}
