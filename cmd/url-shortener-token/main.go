// Command url-shortener-token mints bearer tokens for the URL shortener API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/vadimbarashkov/shortlink/internal/adapter/identity"
	"github.com/vadimbarashkov/shortlink/internal/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "url-shortener-token",
		Short:        "Manage bearer tokens for the URL shortener API",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", os.Getenv("CONFIG_PATH"), "path to the config file holding auth.secret")

	root.AddCommand(newIssueCmd())

	return root
}

func newIssueCmd() *cobra.Command {
	var (
		ownerID string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Issue a token for an owner",
		Long: `Issue prints a signed bearer token for the given owner.
A random owner id is generated when --owner is omitted.

Example:
  url-shortener-token issue --config=configs/config.yml --owner=alice`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")

			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			if ownerID == "" {
				ownerID = uuid.NewString()
			}

			if !cmd.Flags().Changed("ttl") {
				ttl = cfg.Auth.TokenTTL
			}

			token, err := identity.NewJWT(cfg.Auth.Secret, ttl).Issue(ownerID)
			if err != nil {
				return fmt.Errorf("failed to issue token: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "owner: %s\ntoken: %s\n", ownerID, token)

			return nil
		},
	}

	cmd.Flags().StringVarP(&ownerID, "owner", "o", "", "owner id the token is issued for")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime, defaults to auth.token_ttl")

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
