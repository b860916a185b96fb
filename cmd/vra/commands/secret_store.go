package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"

	"github.com/vra-io/catalog-client/internal/constants"
)

// keyringService is the service name tokens are stored under in the
// operating system keyring.
const keyringService = "vra-catalog-client"

// tokenFileName holds tokens when no keyring backend is available, e.g. on
// headless hosts.
const tokenFileName = "tokens.yml"

// ErrTokenNotFound indicates no token is stored for the given server.
var ErrTokenNotFound = errors.New("no stored token for server")

// SecretStore persists per-server authentication tokens in the OS keyring,
// falling back to a file under the config directory when the keyring is
// unavailable.
type SecretStore struct {
	serviceName string
}

// NewSecretStore creates a store bound to the default service name.
func NewSecretStore() *SecretStore {
	return &SecretStore{serviceName: keyringService}
}

// SetToken stores the token for a server.
func (s *SecretStore) SetToken(server, token string) error {
	err := keyring.Set(s.serviceName, server, token)
	if err == nil {
		return nil
	}

	return s.setFileToken(server, token)
}

// GetToken returns the token stored for a server.
func (s *SecretStore) GetToken(server string) (string, error) {
	token, err := keyring.Get(s.serviceName, server)
	if err == nil {
		return token, nil
	}

	return s.getFileToken(server)
}

// DeleteToken removes the token stored for a server.
func (s *SecretStore) DeleteToken(server string) error {
	keyringErr := keyring.Delete(s.serviceName, server)

	fileErr := s.deleteFileToken(server)

	if keyringErr == nil || fileErr == nil {
		return nil
	}

	if errors.Is(keyringErr, keyring.ErrNotFound) && errors.Is(fileErr, ErrTokenNotFound) {
		return ErrTokenNotFound
	}

	if !errors.Is(keyringErr, keyring.ErrNotFound) {
		return keyringErr
	}

	return fileErr
}

func (s *SecretStore) tokenFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	return filepath.Join(home, ".vra", tokenFileName), nil
}

func (s *SecretStore) loadFileTokens() (map[string]string, error) {
	path, err := s.tokenFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}

		return nil, fmt.Errorf("reading token file: %w", err)
	}

	tokens := map[string]string{}

	err = yaml.Unmarshal(data, &tokens)
	if err != nil {
		return nil, fmt.Errorf("parsing token file: %w", err)
	}

	return tokens, nil
}

func (s *SecretStore) saveFileTokens(tokens map[string]string) error {
	path, err := s.tokenFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("encoding token file: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}

	return nil
}

func (s *SecretStore) setFileToken(server, token string) error {
	tokens, err := s.loadFileTokens()
	if err != nil {
		return err
	}

	tokens[server] = token

	return s.saveFileTokens(tokens)
}

func (s *SecretStore) getFileToken(server string) (string, error) {
	tokens, err := s.loadFileTokens()
	if err != nil {
		return "", err
	}

	token, ok := tokens[server]
	if !ok {
		return "", ErrTokenNotFound
	}

	return token, nil
}

func (s *SecretStore) deleteFileToken(server string) error {
	tokens, err := s.loadFileTokens()
	if err != nil {
		return err
	}

	_, ok := tokens[server]
	if !ok {
		return ErrTokenNotFound
	}

	delete(tokens, server)

	return s.saveFileTokens(tokens)
}
