package store

import (
	"encoding/json"
	"fmt"

	"nexus/internal/domain"
)

// Keys under which credentials are persisted.
const (
	TokenKey = "token"
	UserKey  = "user"
)

// Credentials keeps the bearer token and the signed-in profile in a
// key/value store.
type Credentials struct {
	kv domain.KeyValueStore
}

// NewCredentials returns a Credentials backed by kv.
func NewCredentials(kv domain.KeyValueStore) *Credentials {
	return &Credentials{kv: kv}
}

// LoadToken returns the persisted token; an empty value counts as absent.
func (c *Credentials) LoadToken() (string, bool, error) {
	b, ok, err := c.kv.Get(TokenKey)
	if err != nil || !ok || len(b) == 0 {
		return "", false, err
	}
	return string(b), true, nil
}

// LoadUser returns the persisted profile.
func (c *Credentials) LoadUser() (domain.UserProfile, bool, error) {
	b, ok, err := c.kv.Get(UserKey)
	if err != nil || !ok {
		return domain.UserProfile{}, false, err
	}
	var u domain.UserProfile
	if err := json.Unmarshal(b, &u); err != nil {
		return domain.UserProfile{}, false, fmt.Errorf("decode user: %w", err)
	}
	return u, true, nil
}

// SaveCredentials persists token and user. The profile is written first so a
// token is never present without one.
func (c *Credentials) SaveCredentials(token string, user domain.UserProfile) error {
	b, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := c.kv.Set(UserKey, b); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if err := c.kv.Set(TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// ClearCredentials removes both token and profile.
func (c *Credentials) ClearCredentials() error {
	return c.kv.Delete(TokenKey, UserKey)
}

var _ domain.CredentialStore = (*Credentials)(nil)
