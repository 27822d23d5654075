package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openradar/regrid/internal/config"
	"github.com/openradar/regrid/internal/store"
	storemigrations "github.com/openradar/regrid/internal/store/migrations"
	"github.com/openradar/regrid/pkg/migrations"
)

func NewCmdMigrate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bring the ledger schema up to date.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context())
		},
		SilenceUsage: true,
	}
	return cmd
}

func runMigrate(ctx context.Context) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if !cfg.LedgerEnabled() {
		return fmt.Errorf("the ledger is disabled, nothing to migrate")
	}

	db, err := store.InitDB(cfg)
	if err != nil {
		return err
	}
	s := store.NewStore(db)
	defer s.Close()

	if err := migrations.MigrateStore(db, store.GooseDialect(cfg), storemigrations.FS); err != nil {
		return fmt.Errorf("running ledger migrations: %w", err)
	}
	return nil
}
