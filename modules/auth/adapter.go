package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// authAdapter wraps ServiceContainer for type-safe cross-module
// communication. It implements the AuthPort interface.
type authAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates a new adapter for auth services. container is
// the ServiceContainer received via SetDependencyServiceContainer.
func NewAuthAdapter(container mono.ServiceContainer) AuthPort {
	if container == nil {
		panic("auth adapter requires non-nil ServiceContainer")
	}
	return &authAdapter{container: container}
}

// ResolveSession resolves a token into a user/session pair via the
// resolve-session service. Returns (nil, nil) when no valid session
// exists; absence never aborts the caller.
func (a *authAdapter) ResolveSession(ctx context.Context, token string) (*ResolvedSession, error) {
	req := ResolveSessionRequest{Token: token}
	var resp ResolveSessionResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"resolve-session",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("resolve-session service call failed: %w", err)
	}

	if !resp.Found || resp.User == nil || resp.Session == nil {
		return nil, nil
	}
	return &ResolvedSession{
		User:    *resp.User,
		Session: *resp.Session,
	}, nil
}

// Forward delegates a full HTTP request via the handle-request service.
func (a *authAdapter) Forward(ctx context.Context, req *ForwardedRequest) (*ForwardedResponse, error) {
	var resp ForwardedResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"handle-request",
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("handle-request service call failed: %w", err)
	}
	return &resp, nil
}
