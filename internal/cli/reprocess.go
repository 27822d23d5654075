package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/openradar/regrid/internal/config"
	"github.com/openradar/regrid/internal/driver"
	"github.com/openradar/regrid/internal/store"
)

type ReprocessOptions struct {
	GlobalOptions

	Pattern    string
	BadList    string
	FromLedger bool
}

func DefaultReprocessOptions() *ReprocessOptions {
	return &ReprocessOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdReprocess() *cobra.Command {
	o := DefaultReprocessOptions()
	cmd := &cobra.Command{
		Use:   "reprocess --pattern GLOB (--bad-list FILE | --from-ledger) --output DIR",
		Short: "Regrid the known-bad scans found in a candidate pool.",
		Long: `Reprocess expands the glob pattern, keeps exactly the files whose
date.time token appears in the bad list, and runs the gridding entry point
once per surviving file. One corrupt input never aborts the batch; every
failure is reported per item and recorded in the ledger.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(cmd, args); err != nil {
				return err
			}
			if err := o.Validate(args); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
		SilenceUsage: true,
	}
	o.Bind(cmd.Flags())
	return cmd
}

func (o *ReprocessOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Pattern, "pattern", "p", o.Pattern, "Glob pattern selecting the candidate files")
	fs.StringVar(&o.BadList, "bad-list", o.BadList, "File listing known-bad YYYYMMDD.HHMMSS tokens, one per line")
	fs.BoolVar(&o.FromLedger, "from-ledger", o.FromLedger, "Take the bad list from the failures of the most recent recorded run")
}

func (o *ReprocessOptions) Complete(cmd *cobra.Command, args []string) error {
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *ReprocessOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.Pattern == "" {
		return fmt.Errorf("--pattern is required")
	}
	if (o.BadList == "") == !o.FromLedger {
		return fmt.Errorf("exactly one of --bad-list and --from-ledger must be given")
	}
	return nil
}

func (o *ReprocessOptions) Run(ctx context.Context, args []string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if err := startMetrics(ctx, cfg); err != nil {
		return err
	}

	s, recorder, err := openLedger(cfg)
	if err != nil {
		return err
	}
	if s != nil {
		defer s.Close()
	}

	var list driver.ExclusionList
	if o.FromLedger {
		if s == nil {
			return fmt.Errorf("the ledger is disabled, --from-ledger has nothing to read")
		}
		tokens, err := store.LatestFailedTokens(ctx, s)
		if err != nil {
			return fmt.Errorf("reading failed tokens from ledger: %w", err)
		}
		if list, err = driver.NewExclusionList(tokens...); err != nil {
			return err
		}
	} else {
		if list, err = driver.LoadExclusionList(o.BadList); err != nil {
			return err
		}
	}
	if list.Len() == 0 {
		return fmt.Errorf("the bad list is empty, nothing to reprocess")
	}

	// Nothing to do in selective mode is an operator error, so discovery
	// and filtering failures are fatal here.
	candidates, err := driver.Discover(o.Pattern)
	if err != nil {
		return err
	}
	filtered, err := driver.Filter(candidates, list)
	if err != nil {
		return err
	}
	if len(filtered) == 0 {
		return fmt.Errorf("none of the %d candidates match the %d known-bad tokens", len(candidates), list.Len())
	}

	report := o.newDriver(cfg, recorder).Run(ctx, "reprocess", o.Pattern, filtered)
	printReport(report)
	if !report.Clean() {
		return fmt.Errorf("%d of %d items failed", report.Failed, len(report.Outcomes))
	}
	return nil
}
