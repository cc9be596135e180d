package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/skyreserve/skyreserve/internal/domain"
)

// AuthResult is the normalized outcome of a login or registration call.
type AuthResult struct {
	User domain.User

	// Token is the server-issued credential, or "" when the backend
	// omitted one. The session layer synthesizes a placeholder in that
	// case.
	Token string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against POST /auth/login and normalizes the
// response.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return AuthResult{}, err
	}
	return normalizeAuthResponse(body)
}

// Register creates an account via POST /auth/register. The payload
// field names are the backend's registration contract.
func (c *Client) Register(ctx context.Context, profile domain.RegistrationProfile) (AuthResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/register", profile)
	if err != nil {
		return AuthResult{}, err
	}
	return normalizeAuthResponse(body)
}

// userEnvelope decodes a user object while capturing whether a password
// field was present. The password value itself is discarded: a User
// never carries one.
type userEnvelope struct {
	domain.User
	Password json.RawMessage `json:"password"`
}

// tokenUserEnvelope is response shape (a): {token, user}.
type tokenUserEnvelope struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// normalizeAuthResponse folds the three observed auth response shapes
// into one result:
//
//	(a) {"token": "...", "user": {...}}
//	(b) a bare user object
//	(c) a single-element array of user objects
//
// An empty array signals authentication failure. Anything else is
// rejected rather than duck-typed.
func normalizeAuthResponse(body []byte) (AuthResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return AuthResult{}, NewError(ErrAuthShapeUnrecognized, "empty response body")
	}

	switch trimmed[0] {
	case '[':
		var users []json.RawMessage
		if err := json.Unmarshal(trimmed, &users); err != nil {
			return AuthResult{}, WrapError(ErrAuthShapeUnrecognized, "decode user array", err)
		}
		if len(users) == 0 {
			return AuthResult{}, NewError(ErrAuthEmptyResult, "authentication returned no user")
		}
		user, err := decodeUser(users[0])
		if err != nil {
			return AuthResult{}, err
		}
		return AuthResult{User: user}, nil

	case '{':
		var env tokenUserEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return AuthResult{}, WrapError(ErrAuthShapeUnrecognized, "decode auth object", err)
		}
		if env.Token != "" && len(env.User) > 0 {
			user, err := decodeUser(env.User)
			if err != nil {
				return AuthResult{}, err
			}
			return AuthResult{User: user, Token: env.Token}, nil
		}
		// Shape (b): the object itself is the user.
		user, err := decodeUser(trimmed)
		if err != nil {
			return AuthResult{}, err
		}
		return AuthResult{User: user}, nil

	default:
		return AuthResult{}, NewError(ErrAuthShapeUnrecognized, "auth response is neither object nor array")
	}
}

// decodeUser parses a user object and strips any password field. A
// record with no id and no email does not count as a user.
func decodeUser(raw json.RawMessage) (domain.User, error) {
	var env userEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return domain.User{}, WrapError(ErrAuthShapeUnrecognized, "decode user record", err)
	}
	if env.User.ID == "" && env.User.Email == "" {
		return domain.User{}, NewError(ErrAuthShapeUnrecognized, "user record has neither id nor email")
	}
	return env.User, nil
}
