package auth

import "time"

// Config drives authentication behavior. There is a single operator account
// whose password is stored as a bcrypt hash.
type Config struct {
	Username     string
	PasswordHash string
	Secret       string
	TokenTTL     time.Duration
}

// LoginRequest captures login details.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse returns the signed token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Username  string    `json:"username"`
}

// Claims are extracted from the JWT token.
type Claims struct {
	Username  string
	TokenType string
	ExpiresAt time.Time
}
