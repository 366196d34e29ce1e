package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catashop/globals"
	"catashop/middleware"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims *middleware.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func refreshWith(t *testing.T, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/token/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	RefreshToken(rec, req, nil)
	return rec
}

func TestRefreshTokenRejectsMissingExpiry(t *testing.T) {
	token := signToken(t, &middleware.Claims{UserID: "u1", Email: "admin@catashop.cl"})

	rec := refreshWith(t, token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("token without exp: status = %d, want 401", rec.Code)
	}
}

func TestRefreshTokenTooEarly(t *testing.T) {
	token := signToken(t, &middleware.Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(2 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	rec := refreshWith(t, token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("fresh token refresh: status = %d, want 403", rec.Code)
	}
}

func TestRefreshTokenNearExpiry(t *testing.T) {
	token := signToken(t, &middleware.Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-12 * time.Hour)),
		},
	})

	rec := refreshWith(t, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("near-expiry refresh: status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
}
