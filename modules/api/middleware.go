package api

import (
	"log/slog"
	"strings"

	"github.com/example/task-api/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey holds the resolved user (*auth.UserInfo) or nil.
	UserContextKey = "user"
	// SessionContextKey holds the resolved session (*auth.SessionInfo) or nil.
	SessionContextKey = "session"
	// AuthPrefix is the mount point of the session collaborator.
	AuthPrefix = "/api/auth"
)

// SessionMiddleware resolves the inbound session, if any, and attaches
// user/session to the request context. Absent or invalid sessions attach
// nil for both; this stage never aborts the request.
func SessionMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(UserContextKey, (*auth.UserInfo)(nil))
		c.Locals(SessionContextKey, (*auth.SessionInfo)(nil))

		token := auth.TokenFromHeaders(map[string]string{
			"Authorization": c.Get(fiber.HeaderAuthorization),
			"Cookie":        c.Get(fiber.HeaderCookie),
		})
		if token == "" {
			return c.Next()
		}

		resolved, err := authPort.ResolveSession(c.UserContext(), token)
		if err != nil {
			// Resolution failures degrade to an anonymous request.
			slog.Warn("session resolution failed", "error", err)
			return c.Next()
		}
		if resolved != nil {
			c.Locals(UserContextKey, &resolved.User)
			c.Locals(SessionContextKey, &resolved.Session)
		}
		return c.Next()
	}
}

// DelegateAuth hands the entire request/response cycle for auth paths to
// the session collaborator and writes its response verbatim.
func DelegateAuth(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		headers := make(map[string]string)
		for key, values := range c.GetReqHeaders() {
			if len(values) > 0 {
				headers[key] = values[0]
			}
		}

		req := auth.ForwardedRequest{
			Method:  c.Method(),
			Path:    authSubpath(c.Path()),
			Headers: headers,
			Body:    append([]byte(nil), c.Body()...),
		}

		resp, err := authPort.Forward(c.UserContext(), &req)
		if err != nil {
			slog.Error("auth delegation failed", "path", c.Path(), "error", err)
			return fiber.ErrInternalServerError
		}

		for key, value := range resp.Headers {
			c.Set(key, value)
		}
		return c.Status(resp.Status).Send(resp.Body)
	}
}

// authSubpath strips the auth mount prefix from a request path.
func authSubpath(path string) string {
	sub := strings.TrimPrefix(path, AuthPrefix)
	if sub == "" {
		sub = "/"
	}
	return sub
}

// UserFromContext returns the resolved user attached to the request, or
// nil for anonymous requests.
func UserFromContext(c *fiber.Ctx) *auth.UserInfo {
	user, _ := c.Locals(UserContextKey).(*auth.UserInfo)
	return user
}

// SessionFromContext returns the resolved session attached to the
// request, or nil.
func SessionFromContext(c *fiber.Ctx) *auth.SessionInfo {
	session, _ := c.Locals(SessionContextKey).(*auth.SessionInfo)
	return session
}
