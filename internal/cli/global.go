package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/openradar/regrid/internal/config"
	"github.com/openradar/regrid/internal/driver"
	"github.com/openradar/regrid/internal/gridder"
	"github.com/openradar/regrid/internal/monitoring"
	"github.com/openradar/regrid/internal/store"
)

const dateLayout = "20060102"

// GlobalOptions are the flags shared by every driver command. The zero
// values for prefix and workers mean "take the configured default".
type GlobalOptions struct {
	OutputDir string
	Prefix    string
	Workers   int
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.OutputDir, "output", "o", o.OutputDir, "Directory receiving the gridded products")
	fs.StringVar(&o.Prefix, "prefix", o.Prefix, "Filename prefix for the gridded products (default from configuration)")
	fs.IntVar(&o.Workers, "workers", o.Workers, "Number of parallel gridding workers (default from configuration)")
}

func (o *GlobalOptions) Complete(cmd *cobra.Command, args []string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if o.Prefix == "" {
		o.Prefix = cfg.Driver.Prefix
	}
	if o.Workers == 0 {
		o.Workers = cfg.Driver.Workers
	}
	return nil
}

func (o *GlobalOptions) Validate(args []string) error {
	if o.OutputDir == "" {
		return fmt.Errorf("--output is required")
	}
	if o.Workers < 0 {
		return fmt.Errorf("--workers must be positive")
	}
	return nil
}

func (o *GlobalOptions) newDriver(cfg *config.Config, recorder driver.Recorder) *driver.Driver {
	return driver.New(
		gridder.NewExec(cfg.Gridder.Command, cfg.Gridder.Timeout),
		driver.Config{
			OutputDir:      o.OutputDir,
			Prefix:         o.Prefix,
			StandardNaming: cfg.Driver.StandardNaming,
			Workers:        o.Workers,
			Recorder:       recorder,
		},
	)
}

// openLedger returns the store and the driver recorder backed by it. With
// the ledger disabled the store is nil and outcomes are not persisted.
func openLedger(cfg *config.Config) (store.Store, driver.Recorder, error) {
	if !cfg.LedgerEnabled() {
		return nil, driver.NopRecorder{}, nil
	}
	db, err := store.InitDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing ledger: %w", err)
	}
	s := store.NewStore(db)
	return s, store.NewLedger(s), nil
}

// startMetrics serves /metrics for the lifetime of ctx when an address is
// configured.
func startMetrics(ctx context.Context, cfg *config.Config) error {
	if cfg.Service.MetricsAddress == "" {
		return nil
	}
	listener, err := net.Listen("tcp", cfg.Service.MetricsAddress)
	if err != nil {
		return fmt.Errorf("creating metrics listener: %w", err)
	}
	go func() {
		if err := monitoring.NewMetricServer(cfg.Service.MetricsAddress, listener).Run(ctx); err != nil {
			zap.S().Named("cli").Errorf("metrics server: %v", err)
		}
	}()
	return nil
}

func parseDay(flag, value string) (time.Time, error) {
	day, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be a YYYYMMDD date: %w", flag, err)
	}
	return day, nil
}

// printReport writes the per-item failure table and the summary line. The
// final report is the user-visible outcome of a batch; a clean run is the
// only success signal.
func printReport(report *driver.Report) {
	if report.Failed > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
		fmt.Fprintln(w, "TOKEN\tPATH\tERROR")
		for _, o := range report.Failures() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", o.Item, o.Path, o.Err)
		}
		w.Flush()
	}
	fmt.Printf("%d succeeded, %d failed in %s\n", report.Succeeded, report.Failed, report.Duration.Round(time.Second))
}
