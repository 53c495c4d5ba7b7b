package interfaces

import domaintypes "nexus/internal/domain/types"

// KeyValueStore is the local persistent key/value area the client keeps its
// credentials in.
type KeyValueStore interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(keys ...string) error
}

// TokenStore is the view of persisted credentials the HTTP client needs.
type TokenStore interface {
	LoadToken() (string, bool, error)
	ClearCredentials() error
}

// CredentialStore persists the bearer token and the signed-in profile.
type CredentialStore interface {
	TokenStore
	LoadUser() (domaintypes.UserProfile, bool, error)
	SaveCredentials(token string, user domaintypes.UserProfile) error
}
