package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/vra-io/catalog-client/pkg/vra"
	"github.com/vra-io/catalog-client/pkg/vraclient"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"

	// Output formats.
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Common static errors used throughout the commands package.
var (
	ErrServerRequired   = errors.New("appliance URL is required (use --server or login first)")
	ErrUsernameRequired = errors.New("username is required")
	ErrActionNameOrID   = errors.New("action name or ID is required")
	ErrNotLoggedIn      = errors.New("not logged in (use 'vra login' or --token)")
)

// CreateClient builds a catalog client from the effective configuration:
// flags, environment, config file, and the keyring token saved by login.
func CreateClient(ctx context.Context) (vra.Client, error) {
	server := viper.GetString("server")
	if server == "" {
		return nil, ErrServerRequired
	}

	config := &vra.Config{
		BaseURL:       server,
		Tenant:        viper.GetString("tenant"),
		SkipTLSVerify: viper.GetBool("skip-ssl-validation"),
	}

	token := viper.GetString("token")
	if token == "" {
		stored, err := NewSecretStore().GetToken(server)
		if err == nil {
			token = stored
		}
	}

	if token == "" {
		return nil, ErrNotLoggedIn
	}

	config.BearerToken = token

	client, err := vraclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating catalog client: %w", err)
	}

	return client, nil
}

// renderJSON writes data to stdout as indented JSON.
func renderJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding to JSON: %w", err)
	}

	return nil
}

// renderYAML writes data to stdout as YAML.
func renderYAML(data interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding to YAML: %w", err)
	}

	return nil
}

// listParams builds query parameters from the shared list flags.
func listParams(filter string, limit int) *vra.QueryParams {
	params := vra.NewQueryParams()
	if filter != "" {
		params.WithFilter(filter)
	}

	if limit > 0 {
		params.WithLimit(limit)
	}

	return params
}

// valueOr returns value, or fallback when value is empty.
func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
