package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	domain "github.com/example/task-api/domain/account"
	"github.com/go-monolith/mono"
)

// SessionCookieName is the cookie the collaborator issues on sign-in.
const SessionCookieName = "task_api.session_token"

// handleRequest owns the request/response cycle for everything under the
// auth mount prefix. It always returns a response, never an error: the
// shell writes whatever comes back verbatim.
func (m *AuthModule) handleRequest(ctx context.Context, req ForwardedRequest, _ *mono.Msg) (ForwardedResponse, error) {
	path := strings.TrimSuffix(req.Path, "/")
	if path == "" {
		path = "/"
	}

	switch req.Method + " " + path {
	case "POST /sign-up":
		return m.handleSignUp(ctx, req), nil
	case "POST /sign-in":
		return m.handleSignIn(ctx, req), nil
	case "POST /sign-out":
		return m.handleSignOut(ctx, req), nil
	case "GET /session":
		return m.handleGetSession(ctx, req), nil
	}
	return errorResponse(http.StatusNotFound, "not_found", "Unknown auth endpoint"), nil
}

func (m *AuthModule) handleSignUp(ctx context.Context, req ForwardedRequest) ForwardedResponse {
	var body SignUpRequest
	if err := json.Unmarshal(req.Body, &body); err != nil {
		return errorResponse(http.StatusBadRequest, "bad_request", "Invalid request body")
	}

	user, session, err := m.service.SignUp(ctx, body.Email, body.Name, body.Password, clientIP(req), req.Headers["User-Agent"])
	if err != nil {
		return signFlowError(err)
	}
	return sessionResponse(user, session)
}

func (m *AuthModule) handleSignIn(ctx context.Context, req ForwardedRequest) ForwardedResponse {
	var body SignInRequest
	if err := json.Unmarshal(req.Body, &body); err != nil {
		return errorResponse(http.StatusBadRequest, "bad_request", "Invalid request body")
	}

	user, session, err := m.service.SignIn(ctx, body.Email, body.Password, clientIP(req), req.Headers["User-Agent"])
	if err != nil {
		return signFlowError(err)
	}
	return sessionResponse(user, session)
}

func (m *AuthModule) handleSignOut(ctx context.Context, req ForwardedRequest) ForwardedResponse {
	if err := m.service.SignOut(ctx, TokenFromHeaders(req.Headers)); err != nil {
		return errorResponse(http.StatusInternalServerError, "internal_error", "Sign out failed")
	}

	resp := jsonResponse(http.StatusOK, map[string]any{"success": true})
	resp.Headers["Set-Cookie"] = clearSessionCookie()
	return resp
}

func (m *AuthModule) handleGetSession(ctx context.Context, req ForwardedRequest) ForwardedResponse {
	user, session, err := m.service.Resolve(ctx, TokenFromHeaders(req.Headers))
	if err != nil {
		return errorResponse(http.StatusInternalServerError, "internal_error", "Session lookup failed")
	}
	if user == nil {
		// No session is not an error; the body carries explicit nulls.
		return jsonResponse(http.StatusOK, SessionEnvelope{User: nil, Session: nil})
	}
	return jsonResponse(http.StatusOK, SessionEnvelope{
		User:    userInfo(user),
		Session: sessionInfo(session),
	})
}

// signFlowError maps service errors to collaborator-owned statuses.
func signFlowError(err error) ForwardedResponse {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return errorResponse(http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrWeakPassword),
		errors.Is(err, ErrPasswordTooLong),
		errors.Is(err, ErrEmailTaken):
		return errorResponse(http.StatusUnprocessableEntity, "validation_error", err.Error())
	}
	return errorResponse(http.StatusInternalServerError, "internal_error", "Authentication failed")
}

func sessionResponse(user *domain.User, session *domain.Session) ForwardedResponse {
	resp := jsonResponse(http.StatusOK, SessionEnvelope{
		Token:   session.Token,
		User:    userInfo(user),
		Session: sessionInfo(session),
	})
	resp.Headers["Set-Cookie"] = sessionCookie(session)
	return resp
}

func jsonResponse(status int, body any) ForwardedResponse {
	raw, err := json.Marshal(body)
	if err != nil {
		raw = []byte(`{"error":"internal_error"}`)
		status = http.StatusInternalServerError
	}
	return ForwardedResponse{
		Status: status,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: raw,
	}
}

func errorResponse(status int, code, message string) ForwardedResponse {
	return jsonResponse(status, map[string]string{
		"error":   code,
		"message": message,
	})
}

func sessionCookie(session *domain.Session) string {
	cookie := http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return cookie.String()
}

func clearSessionCookie() string {
	cookie := http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return cookie.String()
}

// TokenFromHeaders extracts a session token from an Authorization bearer
// header or the session cookie. Empty string when neither is present.
func TokenFromHeaders(headers map[string]string) string {
	if authHeader := headers["Authorization"]; strings.HasPrefix(authHeader, "Bearer ") {
		if token := strings.TrimPrefix(authHeader, "Bearer "); token != "" {
			return token
		}
	}
	if cookieHeader := headers["Cookie"]; cookieHeader != "" {
		cookies, err := http.ParseCookie(cookieHeader)
		if err == nil {
			for _, c := range cookies {
				if c.Name == SessionCookieName && c.Value != "" {
					return c.Value
				}
			}
		}
	}
	return ""
}

func clientIP(req ForwardedRequest) string {
	if ip := req.Headers["X-Forwarded-For"]; ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	return req.Headers["X-Real-Ip"]
}

func userInfo(user *domain.User) *UserInfo {
	return &UserInfo{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func sessionInfo(session *domain.Session) *SessionInfo {
	return &SessionInfo{
		ID:        session.ID,
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
	}
}
