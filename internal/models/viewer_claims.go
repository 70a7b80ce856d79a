package models

import "github.com/golang-jwt/jwt/v5"

// ViewerClaims represents the claims in dashboard viewer tokens
type ViewerClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}
