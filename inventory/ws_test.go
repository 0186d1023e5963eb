package inventory

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solstice/globals"
	"solstice/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func wsParams() httprouter.Params {
	return httprouter.Params{
		{Key: "resource", Value: "merch"},
		{Key: "id", Value: "abc"},
	}
}

func TestHandleWSRequiresToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ws/capacity/merch/abc", nil)
	rec := httptest.NewRecorder()

	HandleWS(rec, req, wsParams())

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestHandleWSFailedUpgradeWritesOnce(t *testing.T) {
	claims := &middleware.Claims{
		UserID: "u1",
		Role:   []string{"user"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	// A plain GET without upgrade headers makes the upgrader reply 400
	// itself; the handler must not write a second response on top.
	req := httptest.NewRequest(http.MethodGet, "/ws/capacity/merch/abc?token="+token, nil)
	rec := &headerCounter{ResponseRecorder: httptest.NewRecorder()}

	HandleWS(rec, req, wsParams())

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected the upgrader's 400, got %d", rec.Code)
	}
	if rec.writes != 1 {
		t.Fatalf("expected exactly one response, got %d writes", rec.writes)
	}
}

type headerCounter struct {
	*httptest.ResponseRecorder
	writes int
}

func (h *headerCounter) WriteHeader(code int) {
	h.writes++
	h.ResponseRecorder.WriteHeader(code)
}
