package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/vra-io/catalog-client/cmd/vra/commands"
)

func TestSecretStore(t *testing.T) {
	keyring.MockInit()

	store := commands.NewSecretStore()
	server := "https://vra.example.com"

	t.Run("missing token", func(t *testing.T) {
		_, err := store.GetToken(server)
		require.ErrorIs(t, err, commands.ErrTokenNotFound)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, store.SetToken(server, "MTQ0NjM"))

		token, err := store.GetToken(server)
		require.NoError(t, err)
		assert.Equal(t, "MTQ0NjM", token)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteToken(server))

		_, err := store.GetToken(server)
		require.ErrorIs(t, err, commands.ErrTokenNotFound)

		require.ErrorIs(t, store.DeleteToken(server), commands.ErrTokenNotFound)
	})
}
