package dto

// LoginRequest represents JSON login credentials. The username is the
// user's email address.
type LoginRequest struct {
	Username string `json:"username" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginFormRequest represents OAuth2-style form credentials, accepted so
// interactive API consoles can authenticate with a standard password grant.
type LoginFormRequest struct {
	Username string `form:"username" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse represents an issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

// ProfileResponse represents the authenticated identity's profile.
type ProfileResponse struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FirstNames string `json:"firstNames"`
	LastName   string `json:"lastName"`
	Role       string `json:"role"`
}
