package auth

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/vra-io/catalog-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrCredentialsRequired = errors.New("username and password required for identity token grant")
	ErrEmptyTokenResponse  = errors.New("identity service returned an empty token")
	ErrTokenRequestFailed  = errors.New("identity token request failed")
)

// IdentityConfig configures the identity token grant.
type IdentityConfig struct {
	// TokenURL is the full identity token endpoint,
	// e.g. "https://vra.example.com/identity/api/tokens"
	TokenURL string

	// Tenant is the identity tenant to authenticate against
	Tenant string

	// Username and Password are the account credentials
	Username string
	Password string

	// HTTPClient overrides the HTTP client used for token requests
	HTTPClient *http.Client

	// SkipTLSVerify disables TLS certificate verification for token requests
	SkipTLSVerify bool
}

// tokenRequest is the identity token grant request body.
type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Tenant   string `json:"tenant"`
}

// tokenResponse is the identity token grant response body.
type tokenResponse struct {
	Expires time.Time `json:"expires"`
	ID      string    `json:"id"`
	Tenant  string    `json:"tenant"`
}

// IdentityTokenManager obtains bearer tokens from the identity service and
// renews them shortly before they expire.
type IdentityTokenManager struct {
	config     *IdentityConfig
	httpClient *http.Client
	store      *TokenStore
	mu         sync.Mutex
}

// NewIdentityTokenManager creates a token manager using the identity
// username/password grant.
func NewIdentityTokenManager(config *IdentityConfig) *IdentityTokenManager {
	httpClient := config.HTTPClient
	if httpClient == nil {
		transport := http.DefaultTransport
		if config.SkipTLSVerify {
			transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // opt-in for self-signed appliances
			}
		}

		httpClient = &http.Client{
			Timeout:   constants.ShortHTTPTimeout,
			Transport: transport,
		}
	}

	return &IdentityTokenManager{
		config:     config,
		httpClient: httpClient,
		store:      NewTokenStore(),
	}
}

// GetToken returns a valid token, requesting a new one if the stored token
// is missing or about to expire.
func (m *IdentityTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	err := m.RefreshToken(ctx)
	if err != nil {
		return "", err
	}

	return m.store.Get().AccessToken, nil
}

// RefreshToken requests a fresh token from the identity service.
func (m *IdentityTokenManager) RefreshToken(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have refreshed while we waited for the lock.
	if m.store.Get().Valid() {
		return nil
	}

	token, err := m.requestToken(ctx)
	if err != nil {
		return err
	}

	m.store.Set(token)

	return nil
}

// SetToken sets the current token directly.
func (m *IdentityTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "Bearer",
		Tenant:      m.config.Tenant,
		ExpiresAt:   expiresAt,
	})
}

func (m *IdentityTokenManager) requestToken(ctx context.Context) (*Token, error) {
	if m.config.Username == "" || m.config.Password == "" {
		return nil, ErrCredentialsRequired
	}

	body, err := json.Marshal(tokenRequest{
		Username: m.config.Username,
		Password: m.config.Password,
		Tenant:   m.config.Tenant,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting identity token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status %d: %s", ErrTokenRequestFailed, resp.StatusCode, string(respBody))
	}

	var tr tokenResponse

	err = json.Unmarshal(respBody, &tr)
	if err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if tr.ID == "" {
		return nil, ErrEmptyTokenResponse
	}

	return &Token{
		AccessToken: tr.ID,
		TokenType:   "Bearer",
		Tenant:      tr.Tenant,
		ExpiresAt:   tr.Expires,
	}, nil
}
