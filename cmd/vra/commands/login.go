package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/vra-io/catalog-client/internal/auth"
	"github.com/vra-io/catalog-client/pkg/vra"
	"github.com/vra-io/catalog-client/pkg/vraclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		server   string
		tenant   string
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to a vRealize Automation appliance",
		Long:  "Authenticate against the identity service and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if server == "" {
				server = viper.GetString("server")
			}

			if server == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Appliance URL: ")
				server, _ = reader.ReadString('\n')
				server = strings.TrimSpace(server)
			}

			if server == "" {
				return ErrServerRequired
			}

			if tenant == "" {
				tenant = viper.GetString("tenant")
			}

			if tenant == "" {
				tenant = vraclient.DefaultTenant
			}

			if username == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Username: ")
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if username == "" {
				return ErrUsernameRequired
			}

			if password == "" {
				fmt.Print("Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				fmt.Println()
			}

			skipSSL := viper.GetBool("skip-ssl-validation")

			if !strings.Contains(server, "://") {
				server = "https://" + server
			}

			server = strings.TrimSuffix(server, "/")

			tokenManager := auth.NewIdentityTokenManager(&auth.IdentityConfig{
				TokenURL:      server + "/identity/api/tokens",
				Tenant:        tenant,
				Username:      username,
				Password:      password,
				SkipTLSVerify: skipSSL,
			})

			ctx := context.Background()

			token, err := tokenManager.GetToken(ctx)
			if err != nil {
				return fmt.Errorf("authenticating with identity service: %w", err)
			}

			// Verify the token against the catalog before persisting it
			client, err := vraclient.New(ctx, &vra.Config{
				BaseURL:       server,
				Tenant:        tenant,
				BearerToken:   token,
				SkipTLSVerify: skipSSL,
			})
			if err != nil {
				return fmt.Errorf("creating catalog client: %w", err)
			}

			_, err = client.Resources().List(ctx, vra.NewQueryParams().WithLimit(1))
			if err != nil {
				return fmt.Errorf("verifying catalog access: %w", err)
			}

			err = NewSecretStore().SetToken(server, token)
			if err != nil {
				return fmt.Errorf("storing token: %w", err)
			}

			fmt.Printf("Successfully logged in to %s (tenant %s)\n", server, tenant)

			return nil
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "", "appliance URL")
	cmd.Flags().StringVar(&tenant, "tenant", "", "identity tenant")
	cmd.Flags().StringVarP(&username, "username", "u", "", "username for authentication")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password for authentication")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from a vRealize Automation appliance",
		Long:  "Remove the stored session token for the targeted appliance",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := viper.GetString("server")
			if server == "" {
				return ErrServerRequired
			}

			err := NewSecretStore().DeleteToken(server)
			if err != nil {
				return fmt.Errorf("removing stored token: %w", err)
			}

			fmt.Println("Successfully logged out")

			return nil
		},
	}
}
