package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/openradar/regrid/internal/cli"
	"github.com/openradar/regrid/internal/config"
	"github.com/openradar/regrid/pkg/log"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading configuration: %v\n", err)
		os.Exit(1)
	}

	logger := log.InitLog(log.Level(cfg.Service.LogLevel))
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	command := NewRegridCommand()
	if err := command.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func NewRegridCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regrid [flags] [options]",
		Short: "regrid drives batch gridding of weather-radar scans and shapes the PBS jobs that launch it.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdReprocess())
	cmd.AddCommand(cli.NewCmdRun())
	cmd.AddCommand(cli.NewCmdArchive())
	cmd.AddCommand(cli.NewCmdScripts())
	cmd.AddCommand(cli.NewCmdReport())
	cmd.AddCommand(cli.NewCmdMigrate())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
