package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"portfolio-photo-sync/config"
	"portfolio-photo-sync/logging"
)

// runtime is shared by the subcommands once PersistentPreRunE has run.
type runtime struct {
	configPath string
	cfg        *config.Config
}

func NewRootCmd() *cobra.Command {
	rt := &runtime{}

	cmd := &cobra.Command{
		Use:   "photosync",
		Short: "Synchronize a remote media library into the portfolio photo catalog",
		Long: `photosync imports images from the configured media host (Cloudinary or
Google Drive) into the portfolio's photo catalog.

Assets already in the catalog are skipped, assets tagged or filed as project
screenshots are ignored, and every new photo is published under the owner's
account. Run "serve" for the admin HTTP API or "sync" for a one-shot import.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env overrides the shell outside production so local runs match the file.
			if os.Getenv("ENV") != "production" {
				_ = godotenv.Overload()
			}

			cfg, err := config.Load(rt.configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			rt.cfg = cfg

			logging.Init(logging.Config{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Caller: cfg.Logging.Caller,
			})
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&rt.configPath, "config", "c", "", "Path to a YAML config file (default: $CONFIG_PATH or ./config.yaml)")

	cmd.AddCommand(newServeCmd(rt))
	cmd.AddCommand(newSyncCmd(rt))
	cmd.AddCommand(newMigrateCmd(rt))

	return cmd
}
