package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vra-io/catalog-client/internal/auth"
)

func TestToken_Valid(t *testing.T) {
	t.Parallel()

	tests := getTokenValidityTestCases()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.token.Valid())
		})
	}
}

func getTokenValidityTestCases() []struct {
	name     string
	token    *auth.Token
	expected bool
} {
	return []struct {
		name     string
		token    *auth.Token
		expected bool
	}{
		{
			name:     "nil token",
			token:    nil,
			expected: false,
		},
		{
			name: "empty access token",
			token: &auth.Token{
				AccessToken: "",
			},
			expected: false,
		},
		{
			name: "valid token without expiry",
			token: &auth.Token{
				AccessToken: "test-token",
			},
			expected: true,
		},
		{
			name: "valid token with future expiry",
			token: &auth.Token{
				AccessToken: "test-token",
				ExpiresAt:   time.Now().Add(1 * time.Hour),
			},
			expected: true,
		},
		{
			name: "expired token",
			token: &auth.Token{
				AccessToken: "test-token",
				ExpiresAt:   time.Now().Add(-1 * time.Hour),
			},
			expected: false,
		},
		{
			name: "token expiring within buffer",
			token: &auth.Token{
				AccessToken: "test-token",
				ExpiresAt:   time.Now().Add(15 * time.Second),
			},
			expected: false, // Should be false due to 30 second buffer
		},
		{
			name: "token expiring just outside buffer",
			token: &auth.Token{
				AccessToken: "test-token",
				ExpiresAt:   time.Now().Add(35 * time.Second),
			},
			expected: true,
		},
	}
}

func TestTokenStore(t *testing.T) {
	t.Parallel()
	t.Run("new store is empty", testNewStoreEmpty)
	t.Run("set and get token", testSetAndGetToken)
	t.Run("clear token", testClearToken)
	t.Run("concurrent access", testConcurrentTokenAccess)
}

func testNewStoreEmpty(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	assert.Nil(t, store.Get())
}

func testSetAndGetToken(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	token := &auth.Token{
		AccessToken: "test-token",
		TokenType:   "Bearer",
	}

	store.Set(token)
	retrieved := store.Get()
	assert.NotNil(t, retrieved)
	assert.Equal(t, token.AccessToken, retrieved.AccessToken)
	assert.Equal(t, token.TokenType, retrieved.TokenType)
}

func testClearToken(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	token := &auth.Token{
		AccessToken: "test-token",
	}

	store.Set(token)
	assert.NotNil(t, store.Get())

	store.Clear()
	assert.Nil(t, store.Get())
}

func testConcurrentTokenAccess(t *testing.T) {
	t.Parallel()

	store := auth.NewTokenStore()
	done := make(chan bool)

	startTokenSetters(store, done)
	startTokenGetters(store, done)

	for n := 0; n < 4; n++ {
		<-done
	}

	// Should not panic and should have a token
	finalToken := store.Get()
	assert.NotNil(t, finalToken)
	assert.True(t, finalToken.AccessToken == "token-1" || finalToken.AccessToken == "token-2")
}

func startTokenSetters(store *auth.TokenStore, done chan bool) {
	go func() {
		for n := 0; n < 100; n++ {
			store.Set(&auth.Token{
				AccessToken: "token-1",
			})
		}

		done <- true
	}()

	go func() {
		for n := 0; n < 100; n++ {
			store.Set(&auth.Token{
				AccessToken: "token-2",
			})
		}

		done <- true
	}()
}

func startTokenGetters(store *auth.TokenStore, done chan bool) {
	go func() {
		for n := 0; n < 100; n++ {
			_ = store.Get()
		}

		done <- true
	}()

	go func() {
		for n := 0; n < 100; n++ {
			_ = store.Get()
		}

		done <- true
	}()
}

func TestStaticTokenManager(t *testing.T) {
	t.Parallel()

	manager := auth.NewStaticTokenManager("static-token")

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static-token", token)

	err = manager.RefreshToken(context.Background())
	require.ErrorIs(t, err, auth.ErrStaticTokenCannotRefresh)
}
