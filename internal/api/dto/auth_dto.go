package dto

// SignUpRequest is the sign-up form payload.
type SignUpRequest struct {
	Email     string `json:"email" form:"email"`
	FirstName string `json:"firstname" form:"firstname"`
	Password1 string `json:"password1" form:"password1"`
	Password2 string `json:"password2" form:"password2"`
}

// LoginRequest is the login form payload.
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password1" form:"password1"`
}

// AuthUser is the caller identity returned by auth endpoints.
type AuthUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	UserType  string `json:"user_type"`
}

// AuthResponse is returned on successful sign-up or login.
type AuthResponse struct {
	User       AuthUser `json:"user"`
	Message    string   `json:"message"`
	RedirectTo string   `json:"redirect_to"`
}
