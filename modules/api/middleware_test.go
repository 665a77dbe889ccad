package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/example/task-api/modules/auth"
)

// probeApp wires the session middleware in front of a probe route that
// reports what was attached to the request context.
func probeApp(authPort auth.AuthPort) *fiber.App {
	app := fiber.New()
	app.Use(SessionMiddleware(authPort))
	app.Get("/probe", func(c *fiber.Ctx) error {
		user := UserFromContext(c)
		session := SessionFromContext(c)
		return c.JSON(fiber.Map{
			"hasUser":    user != nil,
			"hasSession": session != nil,
			"email": func() string {
				if user == nil {
					return ""
				}
				return user.Email
			}(),
		})
	})
	return app
}

func probe(t *testing.T, app *fiber.App, headers map[string]string) map[string]any {
	t.Helper()
	req := httptest.NewRequest("GET", "/probe", nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode probe body: %v", err)
	}
	return body
}

func TestSessionMiddleware(t *testing.T) {
	t.Run("no token attaches nils", func(t *testing.T) {
		resolveCalled := false
		app := probeApp(&mockAuthPort{
			resolveFn: func(context.Context, string) (*auth.ResolvedSession, error) {
				resolveCalled = true
				return nil, nil
			},
		})

		body := probe(t, app, nil)
		if body["hasUser"] != false || body["hasSession"] != false {
			t.Errorf("expected nil user and session, got %v", body)
		}
		if resolveCalled {
			t.Error("resolution must be skipped when no token is present")
		}
	})

	t.Run("valid token attaches user and session", func(t *testing.T) {
		app := probeApp(&mockAuthPort{
			resolveFn: func(_ context.Context, token string) (*auth.ResolvedSession, error) {
				if token != "valid-token" {
					t.Errorf("token = %q, want %q", token, "valid-token")
				}
				return &auth.ResolvedSession{
					User:    auth.UserInfo{ID: "u1", Email: "alice@example.com"},
					Session: auth.SessionInfo{ID: "s1", UserID: "u1"},
				}, nil
			},
		})

		body := probe(t, app, map[string]string{"Authorization": "Bearer valid-token"})
		if body["hasUser"] != true || body["hasSession"] != true {
			t.Fatalf("expected user and session, got %v", body)
		}
		if body["email"] != "alice@example.com" {
			t.Errorf("email = %v, want %q", body["email"], "alice@example.com")
		}
	})

	t.Run("cookie token also resolves", func(t *testing.T) {
		app := probeApp(&mockAuthPort{
			resolveFn: func(_ context.Context, token string) (*auth.ResolvedSession, error) {
				return &auth.ResolvedSession{
					User:    auth.UserInfo{ID: "u1"},
					Session: auth.SessionInfo{ID: "s1"},
				}, nil
			},
		})

		body := probe(t, app, map[string]string{"Cookie": auth.SessionCookieName + "=cookie-token"})
		if body["hasUser"] != true {
			t.Errorf("expected user from cookie token, got %v", body)
		}
	})

	t.Run("unknown token attaches nils", func(t *testing.T) {
		app := probeApp(&mockAuthPort{
			resolveFn: func(context.Context, string) (*auth.ResolvedSession, error) {
				return nil, nil
			},
		})

		body := probe(t, app, map[string]string{"Authorization": "Bearer bogus"})
		if body["hasUser"] != false || body["hasSession"] != false {
			t.Errorf("expected nil user and session, got %v", body)
		}
	})

	t.Run("resolution failure never aborts", func(t *testing.T) {
		app := probeApp(&mockAuthPort{
			resolveFn: func(context.Context, string) (*auth.ResolvedSession, error) {
				return nil, errors.New("auth module unavailable")
			},
		})

		body := probe(t, app, map[string]string{"Authorization": "Bearer any"})
		if body["hasUser"] != false {
			t.Errorf("expected anonymous request on failure, got %v", body)
		}
	})
}

func TestAuthSubpath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/auth/sign-in", "/sign-in"},
		{"/api/auth/session", "/session"},
		{"/api/auth", "/"},
		{"/api/auth/", "/"},
	}
	for _, tt := range tests {
		if got := authSubpath(tt.path); got != tt.want {
			t.Errorf("authSubpath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
