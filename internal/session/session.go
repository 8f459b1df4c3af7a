// Package session supplies the signed-in user's role to the rest of the
// console. Authentication itself happens elsewhere; this package only
// answers whether the current user is privileged.
package session

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Role is the signed-in user's role.
type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ParseRole accepts user, seller or admin, with or without a ROLE_ prefix.
func ParseRole(raw string) (Role, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	v = strings.TrimPrefix(v, "role_")
	switch Role(v) {
	case RoleUser, RoleSeller, RoleAdmin:
		return Role(v), nil
	case "":
		return RoleUser, nil
	}
	return "", errors.Errorf("unknown role %q", raw)
}

// Session holds the current role.
type Session struct {
	mu   sync.RWMutex
	role Role
}

// New returns a session for role.
func New(role Role) *Session {
	return &Session{role: role}
}

// Role returns the current role.
func (s *Session) Role() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// SetRole replaces the current role.
func (s *Session) SetRole(role Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = role
}

// Privileged reports whether the user may use admin-wide endpoints.
func (s *Session) Privileged() bool {
	return s.Role() == RoleAdmin
}

// Dashboard reports whether the user may open the admin panel at all.
func (s *Session) Dashboard() bool {
	r := s.Role()
	return r == RoleAdmin || r == RoleSeller
}
