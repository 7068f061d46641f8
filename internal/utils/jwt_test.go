package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestParseToken(t *testing.T) {
	jwtUtil := NewJWTUtil("test-secret")

	signed := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "user1",
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	claims, err := jwtUtil.ParseToken(signed)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if claims.UserID != "user1" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	jwtUtil := NewJWTUtil("test-secret")

	signed := signToken(t, "other-secret", jwt.MapClaims{
		"user_id": "user1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	if _, err := jwtUtil.ParseToken(signed); err == nil {
		t.Error("expected error for token signed with wrong secret")
	}
}

func TestParseToken_Expired(t *testing.T) {
	jwtUtil := NewJWTUtil("test-secret")

	signed := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": "user1",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := jwtUtil.ParseToken(signed); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseToken_MissingUserID(t *testing.T) {
	jwtUtil := NewJWTUtil("test-secret")

	signed := signToken(t, "test-secret", jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	if _, err := jwtUtil.ParseToken(signed); err == nil {
		t.Error("expected error for token without user_id")
	}
}
