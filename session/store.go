package session

import (
	"github.com/oren0115/ecommerce-sub000/models"
)

// Store holds the two session slots: the bearer token and the serialized
// user profile. Both are written together by Set and removed together by
// Clear, so a reader never observes a half-populated session.
//
// Writes happen only on login, logout and the auth-failure path of the API
// client; everything else is read-only.
type Store interface {
	// Token returns the stored bearer token, or empty when logged out.
	Token() string
	// User returns the stored profile and whether one is present.
	User() (*models.User, bool)
	// Set stores both slots atomically.
	Set(token string, user *models.User) error
	// Clear removes both slots. Clearing an empty store is a no-op.
	Clear() error
}

// Authenticated reports whether the store holds a complete session.
func Authenticated(s Store) bool {
	if s == nil {
		return false
	}
	_, ok := s.User()
	return s.Token() != "" && ok
}
