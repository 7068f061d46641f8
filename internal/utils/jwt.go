package utils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
)

type JWTUtil struct {
	secret string
}

func NewJWTUtil(secret string) *JWTUtil {
	return &JWTUtil{secret: secret}
}

type TokenClaims struct {
	UserID string
	Role   string
}

// ParseToken validates an HS256 token and extracts the user_id and role claims.
func (j *JWTUtil) ParseToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" {
		return nil, errors.New("token missing user_id")
	}
	return &TokenClaims{UserID: userID, Role: role}, nil
}

var validate = validator.New()

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
