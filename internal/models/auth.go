package models

import "github.com/golang-jwt/jwt/v5"

// AdminClaims is the payload of a dashboard bearer token issued by the
// identity provider.
type AdminClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
