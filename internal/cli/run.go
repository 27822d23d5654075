package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/openradar/regrid/internal/config"
	"github.com/openradar/regrid/internal/driver"
)

type RunOptions struct {
	GlobalOptions

	Start string
	End   string
	Input string
}

func DefaultRunOptions() *RunOptions {
	return &RunOptions{
		GlobalOptions: DefaultGlobalOptions(),
	}
}

func NewCmdRun() *cobra.Command {
	o := DefaultRunOptions()
	cmd := &cobra.Command{
		Use:   "run --start YYYYMMDD --end YYYYMMDD --input ROOT --output DIR",
		Short: "Grid every scan of a date range, one day at a time.",
		Long: `Run sweeps the date range day by day, expanding
<input>/<year>/<yyyymmdd>/*.nc for each day. Days without files are logged
and skipped; within a day every file is processed and failures are isolated
per item.`,
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

func (o *RunOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Start, "start", "s", o.Start, "First day of the range (YYYYMMDD)")
	fs.StringVarP(&o.End, "end", "e", o.End, "Last day of the range, inclusive (YYYYMMDD)")
	fs.StringVarP(&o.Input, "input", "i", o.Input, "Root of the input tree, laid out as <root>/<year>/<yyyymmdd>/")
}

func (o *RunOptions) Complete(cmd *cobra.Command, args []string) error {
	return o.GlobalOptions.Complete(cmd, args)
}

func (o *RunOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.Input == "" {
		return fmt.Errorf("--input is required")
	}
	start, err := parseDay("start", o.Start)
	if err != nil {
		return err
	}
	end, err := parseDay("end", o.End)
	if err != nil {
		return err
	}
	if start.After(end) {
		return fmt.Errorf("--start %s is after --end %s", o.Start, o.End)
	}
	return nil
}

func (o *RunOptions) Run(ctx context.Context, args []string) error {
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

	start, _ := parseDay("start", o.Start)
	end, _ := parseDay("end", o.End)
	d := o.newDriver(cfg, recorder)
	log := zap.S().Named("cli")

	totalProcessed, totalFailed := 0, 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return err
		}

		pattern := filepath.Join(o.Input, strconv.Itoa(day.Year()), day.Format(dateLayout), "*.nc")
		candidates, err := driver.Discover(pattern)
		if err != nil {
			var noMatch *driver.ErrNoMatch
			if errors.As(err, &noMatch) {
				// An empty day is normal inside a sweep.
				log.Infof("no files for %s, skipping", day.Format(dateLayout))
				continue
			}
			return err
		}

		report := d.Run(ctx, "range", pattern, candidates)
		printReport(report)
		totalProcessed += len(report.Outcomes)
		totalFailed += report.Failed
	}

	if totalFailed > 0 {
		return fmt.Errorf("%d of %d items failed", totalFailed, totalProcessed)
	}
	return nil
}
