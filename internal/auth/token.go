package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vra-io/catalog-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
)

// TokenManager manages bearer tokens for API requests.
type TokenManager interface {
	// GetToken returns a valid token, obtaining or refreshing one if necessary
	GetToken(ctx context.Context) (string, error)

	// RefreshToken forces obtaining a fresh token
	RefreshToken(ctx context.Context) error

	// SetToken sets the current token directly
	SetToken(token string, expiresAt time.Time)
}

// Token represents a bearer token with its expiry.
type Token struct {
	AccessToken string
	TokenType   string
	Tenant      string
	ExpiresAt   time.Time
}

// Valid reports whether the token exists and does not expire within the
// renewal buffer.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(constants.TokenExpirationBuffer).Before(t.ExpiresAt)
}

// TokenStore provides thread-safe token storage.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates a new token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token, or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set stores a token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}

// StaticTokenManager returns a fixed token and cannot refresh it.
type StaticTokenManager struct {
	store *TokenStore
}

// NewStaticTokenManager creates a token manager around a pre-obtained token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	store := NewTokenStore()
	store.Set(&Token{
		AccessToken: token,
		TokenType:   "Bearer",
	})

	return &StaticTokenManager{store: store}
}

// GetToken returns the static token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token == nil || token.AccessToken == "" {
		return "", ErrStaticTokenCannotRefresh
	}

	return token.AccessToken, nil
}

// RefreshToken always fails for static tokens.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return ErrStaticTokenCannotRefresh
}

// SetToken replaces the static token.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}
