package cli

import (
	"fmt"
	"io"

	"taskflow/internal/app"
	"taskflow/internal/config"

	"github.com/spf13/cobra"
)

// NewMigrateCommand applies the bundled SQL migrations.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.PG.MigrationsDir
			}
			if err := app.RunMigrations(cfg.PG.DSN, dir); err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), opts, map[string]string{"status": "ok", "dir": dir}, func(w io.Writer) {
				fmt.Fprintf(w, "migrations applied from %s\n", dir)
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "migrations directory (default PG_MIGRATIONS_DIR)")
	return cmd
}
