package auth

import (
	"context"
	"encoding/json"
	"time"
)

// UserInfo is the externally visible read shape of a user.
type UserInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionInfo is the externally visible read shape of a session. The
// token itself is never included here.
type SessionInfo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// ResolveSessionRequest asks for the user/session pair behind a token.
type ResolveSessionRequest struct {
	Token string `json:"token"`
}

// ResolveSessionResponse carries the resolved pair. Found is false for
// missing, invalid or expired sessions; that is not an error.
type ResolveSessionResponse struct {
	Found   bool         `json:"found"`
	User    *UserInfo    `json:"user,omitempty"`
	Session *SessionInfo `json:"session,omitempty"`
}

// ForwardedRequest is a full HTTP request handed over by the application
// shell. Path is relative to the auth mount prefix.
type ForwardedRequest struct {
	Method  string            `json:"method"`
	Path    string            `json:"path"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    json.RawMessage   `json:"body,omitempty"`
}

// ForwardedResponse is the response to write back verbatim.
type ForwardedResponse struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers,omitempty"`
	Body    json.RawMessage   `json:"body,omitempty"`
}

// SignUpRequest is the body of POST /sign-up.
type SignUpRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
}

// SignInRequest is the body of POST /sign-in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionEnvelope is the body returned by sign-up/sign-in and /session.
type SessionEnvelope struct {
	Token   string       `json:"token,omitempty"`
	User    *UserInfo    `json:"user"`
	Session *SessionInfo `json:"session"`
}

// ResolvedSession is the user/session pair attached to a request context.
type ResolvedSession struct {
	User    UserInfo
	Session SessionInfo
}

// AuthPort defines the interface other modules use to reach the session
// collaborator. ResolveSession returns (nil, nil) when no valid session
// exists; Forward owns the entire request/response cycle for auth paths.
type AuthPort interface {
	ResolveSession(ctx context.Context, token string) (*ResolvedSession, error)
	Forward(ctx context.Context, req *ForwardedRequest) (*ForwardedResponse, error)
}
