// Package access carries the caller's portal role through a request.
//
// The session is built from request headers set by the front end. It routes
// callers to the screens of their role; it is not an authentication layer.
package access

import (
	"context"
	"net/http"
	"strings"
)

type Role string

const (
	RoleClient  Role = "client"
	RoleAdviser Role = "adviser"
	RoleAdmin   Role = "admin"
)

const (
	HeaderUser = "X-Portal-User"
	HeaderRole = "X-Portal-Role"
)

// Session identifies the caller of one request.
type Session struct {
	UserID string
	Role   Role
}

// Authenticated reports whether the caller presented a user and a known role.
func (s Session) Authenticated() bool {
	return s.UserID != "" && s.Role.Valid()
}

// HasRole reports whether the caller holds one of roles.
func (s Session) HasRole(roles ...Role) bool {
	if !s.Authenticated() {
		return false
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleAdviser, RoleAdmin:
		return true
	}
	return false
}

// FromRequest reads the session headers of r.
func FromRequest(r *http.Request) Session {
	return Session{
		UserID: strings.TrimSpace(r.Header.Get(HeaderUser)),
		Role:   Role(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderRole)))),
	}
}

type sessionKey struct{}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session stored by WithSession, or the zero session.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey{}).(Session)
	return s
}
