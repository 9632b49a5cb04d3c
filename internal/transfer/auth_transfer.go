package transfer

import "github.com/golang-jwt/jwt/v5"

type LoginRequest struct {
	Password string `json:"password"`
}

type CustomClaims struct {
	Subject string `json:"sub_name"`
	jwt.RegisteredClaims
}
