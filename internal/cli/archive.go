package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/openradar/regrid/internal/archive"
	"github.com/openradar/regrid/internal/config"
	"github.com/openradar/regrid/internal/driver"
)

type ArchiveOptions struct {
	GlobalOptions

	Start       string
	End         string
	RID         int
	ArchiveRoot string
	ScratchDir  string
}

func DefaultArchiveOptions() *ArchiveOptions {
	return &ArchiveOptions{
		GlobalOptions: DefaultGlobalOptions(),
		ScratchDir:    filepath.Join(os.TempDir(), "regrid-unzip"),
	}
}

func NewCmdArchive() *cobra.Command {
	o := DefaultArchiveOptions()
	cmd := &cobra.Command{
		Use:   "archive --start YYYYMMDD --end YYYYMMDD --rid N --archive-root DIR --output DIR",
		Short: "Grid a radar's national-archive day volumes.",
		Long: `Archive walks the date range and, for each day, unpacks the radar's
day volume <root>/<rid>/<year>/vol/<rid>_<yyyymmdd>.pvol.zip into a scratch
directory, grids every extracted scan, and removes the scratch files. A
missing day archive is logged and skipped.`,
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

func (o *ArchiveOptions) Bind(fs *pflag.FlagSet) {
	o.GlobalOptions.Bind(fs)

	fs.StringVarP(&o.Start, "start", "s", o.Start, "First day of the range (YYYYMMDD)")
	fs.StringVarP(&o.End, "end", "e", o.End, "Last day of the range, inclusive (YYYYMMDD)")
	fs.IntVar(&o.RID, "rid", o.RID, "Radar ID whose archive is processed")
	fs.StringVar(&o.ArchiveRoot, "archive-root", o.ArchiveRoot, "Root of the national archive tree")
	fs.StringVar(&o.ScratchDir, "scratch", o.ScratchDir, "Scratch directory for extracted day volumes")
}

func (o *ArchiveOptions) Complete(cmd *cobra.Command, args []string) error {
	if err := o.GlobalOptions.Complete(cmd, args); err != nil {
		return err
	}
	// The archive convention prefixes products with the radar ID.
	if !cmd.Flags().Changed("prefix") {
		o.Prefix = strconv.Itoa(o.RID)
	}
	return nil
}

func (o *ArchiveOptions) Validate(args []string) error {
	if err := o.GlobalOptions.Validate(args); err != nil {
		return err
	}
	if o.RID <= 0 {
		return fmt.Errorf("--rid is required")
	}
	if o.ArchiveRoot == "" {
		return fmt.Errorf("--archive-root is required")
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

func (o *ArchiveOptions) Run(ctx context.Context, args []string) error {
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

		dayArchive := archive.DayArchivePath(o.ArchiveRoot, o.RID, day)
		if _, err := os.Stat(dayArchive); err != nil {
			log.Infof("no day archive %s, skipping", dayArchive)
			continue
		}

		files, err := archive.Extract(dayArchive, o.ScratchDir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			log.Warnf("day archive %s is empty", dayArchive)
			continue
		}

		report := d.Run(ctx, "archive", dayArchive, driver.CandidateSet(files))
		archive.Cleanup(files)
		printReport(report)
		totalProcessed += len(report.Outcomes)
		totalFailed += report.Failed
	}

	if totalFailed > 0 {
		return fmt.Errorf("%d of %d items failed", totalFailed, totalProcessed)
	}
	return nil
}
