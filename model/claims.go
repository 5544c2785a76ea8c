package model

import "github.com/golang-jwt/jwt/v5"

// AppClaims is the claim set carried by issued tokens. Subject holds the
// stringified user id. Access tokens carry email and name; refresh tokens
// carry email only.
type AppClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
