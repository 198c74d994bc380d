package middleware

import (
	stdErrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/transcript-search/errors"
	"github.com/johnquangdev/transcript-search/pkg/jwt"
)

func newContext(setup func(r *http.Request)) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/transcripts", nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestEchoAuth(t *testing.T) {
	manager := jwt.NewManager("secret", time.Minute, "transcript-search")
	userID := uuid.New()
	token, err := manager.GenerateAccessToken(userID, "ana@example.com", "member")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	expired, err := jwt.NewManager("secret", -time.Minute, "transcript-search").
		GenerateAccessToken(userID, "ana@example.com", "member")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	tests := []struct {
		name     string
		setup    func(r *http.Request)
		wantCode errors.ErrorCode
	}{
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, 0},
		{"lowercase scheme", func(r *http.Request) { r.Header.Set("Authorization", "bearer "+token) }, 0},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "access_token", Value: token}) }, 0},
		{"missing", nil, errors.ErrorCode_UNAUTHENTICATED},
		{"wrong scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic "+token) }, errors.ErrorCode_UNAUTHENTICATED},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, errors.ErrorCode_AUTH_INVALID_TOKEN},
		{"expired", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+expired) }, errors.ErrorCode_AUTH_TOKEN_EXPIRED},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(tt.setup)
			called := false
			h := EchoAuth(manager)(func(c echo.Context) error {
				called = true
				id, ok := UserID(c)
				if !ok || id != userID {
					t.Errorf("UserID() = %v, %v", id, ok)
				}
				if claims, ok := c.Get(ClaimsKey).(*jwt.Claims); !ok || claims.Email != "ana@example.com" {
					t.Errorf("claims = %v", c.Get(ClaimsKey))
				}
				return nil
			})

			err := h(c)
			if tt.wantCode == 0 {
				if err != nil || !called {
					t.Fatalf("err = %v, called = %v", err, called)
				}
				return
			}

			if called {
				t.Error("next handler called for rejected request")
			}
			var appErr errors.AppError
			if !stdErrors.As(err, &appErr) {
				t.Fatalf("err = %v, want AppError", err)
			}
			if appErr.Code != tt.wantCode || appErr.HTTPCode != http.StatusUnauthorized {
				t.Errorf("got %v/%d, want %v/401", appErr.Code, appErr.HTTPCode, tt.wantCode)
			}
		})
	}
}

func TestUserIDMissing(t *testing.T) {
	c, _ := newContext(nil)
	if _, ok := UserID(c); ok {
		t.Error("UserID() ok on empty context")
	}
	c.Set(UserIDKey, uuid.Nil)
	if _, ok := UserID(c); ok {
		t.Error("UserID() ok on nil uuid")
	}
}
