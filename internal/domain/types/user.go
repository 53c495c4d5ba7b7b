package types

// UserProfile is the signed-in user as reported by the backend.
type UserProfile struct {
	ID          int64  `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// Valid reports whether the profile carries the fields needed to restore a session.
func (u UserProfile) Valid() bool { return u.ID != 0 && u.Email != "" }

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// AuthResponse is returned by both /login and /register. FullName is only
// present on login.
type AuthResponse struct {
	Message     string `json:"message,omitempty"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id"`
	FullName    string `json:"full_name,omitempty"`
}
