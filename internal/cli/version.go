package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// Overridden at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
)

type VersionOptions struct{}

func DefaultVersionOptions() *VersionOptions {
	return &VersionOptions{}
}

func NewCmdVersion() *cobra.Command {
	o := DefaultVersionOptions()
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print regrid version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.Run(cmd.Context(), args)
		},
	}
	return cmd
}

func (o *VersionOptions) Run(ctx context.Context, args []string) error {
	fmt.Printf("regrid version: %s (%s)\n", version, commit)
	return nil
}
