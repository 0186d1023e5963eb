package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solstice/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signToken(t *testing.T, userID string, roles []string, ttl time.Duration) string {
	t.Helper()
	claims := &Claims{
		Username: "tester",
		UserID:   userID,
		Role:     roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func TestAuthenticateSetsIdentity(t *testing.T) {
	var gotUserID string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reservations/mine", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u42", []string{"user"}, time.Hour))
	rec := httptest.NewRecorder()

	handler(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUserID != "u42" {
		t.Fatalf("expected userID u42 in context, got %q", gotUserID)
	}
}

func TestAuthenticateRejectsMissingOrBadToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not run")
	})

	for _, header := range []string{"", "Bearer garbage", "NotBearer abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/reservations/mine", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler(rec, req, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/reservations/mine", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u42", []string{"user"}, -time.Minute))
	rec := httptest.NewRecorder()

	handler(rec, req, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestValidateJWTAcceptsBareToken(t *testing.T) {
	claims, err := ValidateJWT(signToken(t, "u7", []string{"user"}, time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != "u7" {
		t.Fatalf("expected userID u7, got %q", claims.UserID)
	}
}

func TestValidateJWTRejectsBadTokens(t *testing.T) {
	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"expired", signToken(t, "u7", []string{"user"}, -time.Minute)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ValidateJWT(tc.token); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	called := false
	handler := RequireRole("admin", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/payments/p1/verify", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", []string{"user"}, time.Hour))
	rec := httptest.NewRecorder()
	handler(rec, req, nil)
	if rec.Code != http.StatusForbidden || called {
		t.Fatalf("expected 403 for non-admin, got %d (called=%v)", rec.Code, called)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/admin/payments/p1/verify", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u2", []string{"user", "admin"}, time.Hour))
	rec = httptest.NewRecorder()
	handler(rec, req, nil)
	if rec.Code != http.StatusOK || !called {
		t.Fatalf("expected admin to pass, got %d (called=%v)", rec.Code, called)
	}
}
