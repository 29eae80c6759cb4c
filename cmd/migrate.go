package cmd

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"portfolio-photo-sync/db"
	"portfolio-photo-sync/models"
	"portfolio-photo-sync/repository"
)

func newMigrateCmd(rt *runtime) *cobra.Command {
	var (
		seedOwner bool
		ownerName string
		printOnly bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the catalog tables",
		Long: `Applies the embedded schema (users and photos, with a unique index on the
remote asset id). Statements are idempotent.

With --seed-owner the configured SYNC_OWNER_EMAIL is inserted into users when
missing, so a fresh database can run a sync straight away.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printOnly {
				fmt.Fprint(cmd.OutOrStdout(), db.Schema())
				return nil
			}

			cfg := rt.cfg
			if cfg.Database.Driver != "postgres" {
				return fmt.Errorf("migrate needs the postgres driver, got %q", cfg.Database.Driver)
			}

			conn, err := db.Open(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.EnsureSchema(cmd.Context(), conn); err != nil {
				return err
			}

			if !seedOwner {
				return nil
			}
			if cfg.Sync.OwnerEmail == "" {
				return errors.New("--seed-owner requires SYNC_OWNER_EMAIL")
			}
			owner := &models.Owner{
				ID:    uuid.Must(uuid.NewV7()).String(),
				Email: cfg.Sync.OwnerEmail,
				Name:  ownerName,
			}
			return repository.NewUserRepository(conn).EnsureOwner(cmd.Context(), owner)
		},
	}

	cmd.Flags().BoolVar(&seedOwner, "seed-owner", false, "Insert the configured owner when missing")
	cmd.Flags().StringVar(&ownerName, "owner-name", "Owner", "Display name for a seeded owner")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the schema instead of applying it")

	return cmd
}
