package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"catalog-service/internal/config"
	"catalog-service/internal/identity"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	log.SetOutput(os.Stderr)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "grantadmin <email>",
		Short: "Grant catalog admin rights to an identity",
		Long: `Looks up an identity by email in the identity provider and sets
is_admin=true in its user metadata. Requires IDENTITY_URL and
IDENTITY_SERVICE_KEY in the environment or a .env file.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil {
				log.Debug("No .env file loaded.")
			}

			cfg, err := config.LoadIdentity()
			if err != nil {
				log.WithError(err).Error("Could not load identity configuration")
				return err
			}

			admin := identity.NewAdmin(identity.NewClient(cfg.URL, cfg.ServiceKey, cfg.Timeout))
			return grant(cmd.Context(), admin, args[0], dryRun, cmd)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "look up the identity without updating it")
	return cmd
}

func grant(ctx context.Context, admin *identity.Admin, email string, dryRun bool, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	found, err := admin.FindByEmail(ctx, email)
	if errors.Is(err, identity.ErrIdentityNotFound) {
		log.WithField("email", email).Error("No identity with that email")
		return err
	}
	if err != nil {
		log.WithError(err).Error("Could not look up identity")
		return err
	}

	if found.Metadata.Admin() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is already an admin\n", found.Email, found.ID)
		return nil
	}
	if dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "would grant admin to %s (%s)\n", found.Email, found.ID)
		return nil
	}

	if _, err := admin.GrantAdmin(ctx, found.ID); err != nil {
		log.WithError(err).WithField("identity_id", found.ID).Error("Could not grant admin")
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "granted admin to %s (%s)\n", found.Email, found.ID)
	return nil
}
