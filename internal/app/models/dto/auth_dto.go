package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest creates an account and its profile. Admins are seeded, never self-registered.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required,password" example:"s3cretpass1"`
	FullName string `json:"fullName" binding:"required,min=2,max=100" example:"Ada Lovelace"`
	Role     string `json:"role" binding:"required,signuprole" example:"mentee" enums:"mentor,mentee"`
}

// RefreshTokenRequest represents refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int    `json:"expiresIn" example:"900"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int    `json:"refreshTokenExpiresIn,omitempty" example:"604800"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse    `json:"token"`
	User  *ProfileResponse `json:"user"`
}
