package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"portfolio-photo-sync/app"
	"portfolio-photo-sync/service"
)

func newSyncCmd(rt *runtime) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one synchronization and print the report",
		Example: `  # Import new photos
  photosync sync

  # Show what would be imported without writing
  photosync sync --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.Initialize(cmd.Context(), rt.cfg)
			if err != nil {
				return err
			}
			defer application.Close()

			report, err := application.Sync.SyncPhotos(cmd.Context(), service.SyncOptions{DryRun: dryRun})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.Message)
			fmt.Fprintf(out, "  synced:   %d\n", report.Synced)
			fmt.Fprintf(out, "  skipped:  %d\n", report.Skipped)
			fmt.Fprintf(out, "  excluded: %d\n", report.Excluded)
			fmt.Fprintf(out, "  failed:   %d\n", report.Failed)
			fmt.Fprintf(out, "  total:    %d\n", report.Total)
			if report.DryRun {
				fmt.Fprintln(out, "(dry run, nothing was written)")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Classify and check for duplicates without inserting")

	return cmd
}
