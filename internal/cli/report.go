package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thoas/go-funk"
	"sigs.k8s.io/yaml"

	"github.com/openradar/regrid/internal/config"
	"github.com/openradar/regrid/internal/store"
	"github.com/openradar/regrid/internal/store/model"
)

const (
	tableFormat = "table"
	jsonFormat  = "json"
	yamlFormat  = "yaml"
)

var (
	legalOutputTypes = []string{tableFormat, jsonFormat, yamlFormat}
)

type ReportOptions struct {
	RunID      string
	FailedOnly bool
	Output     string
}

func DefaultReportOptions() *ReportOptions {
	return &ReportOptions{}
}

func NewCmdReport() *cobra.Command {
	o := DefaultReportOptions()
	cmd := &cobra.Command{
		Use:   "report [--run ID]",
		Short: "Display a recorded run, by default the most recent one.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

func (o *ReportOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.RunID, "run", o.RunID, "Run ID to display (default: latest)")
	fs.BoolVar(&o.FailedOnly, "failed-only", o.FailedOnly, "Print only the failed tokens, one per line, usable as a bad-list file")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format. One of: (%s).", strings.Join(legalOutputTypes, ", ")))
}

func (o *ReportOptions) Validate(args []string) error {
	if o.RunID != "" {
		if _, err := uuid.Parse(o.RunID); err != nil {
			return fmt.Errorf("--run must be a run UUID: %w", err)
		}
	}
	if len(o.Output) > 0 && !funk.Contains(legalOutputTypes, o.Output) {
		return fmt.Errorf("output format must be one of %s", strings.Join(legalOutputTypes, ", "))
	}
	return nil
}

func (o *ReportOptions) Run(ctx context.Context, args []string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	if !cfg.LedgerEnabled() {
		return fmt.Errorf("the ledger is disabled, no runs are recorded")
	}

	db, err := store.InitDB(cfg)
	if err != nil {
		return err
	}
	s := store.NewStore(db)
	defer s.Close()

	var run *model.Run
	if o.RunID != "" {
		id, _ := uuid.Parse(o.RunID)
		run, err = s.Run().Get(ctx, id)
	} else {
		run, err = s.Run().Latest(ctx)
	}
	if err != nil {
		return fmt.Errorf("reading run: %w", err)
	}

	items, err := s.Item().List(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("listing run items: %w", err)
	}

	if o.FailedOnly {
		for _, item := range items {
			if item.Status == model.RunItemStatusFailed {
				fmt.Println(item.Token)
			}
		}
		return nil
	}

	record := struct {
		Run   model.Run         `json:"run"`
		Items model.RunItemList `json:"items"`
	}{Run: *run, Items: items}

	switch o.Output {
	case jsonFormat:
		marshalled, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshalling report: %w", err)
		}
		fmt.Printf("%s\n", string(marshalled))
		return nil
	case yamlFormat:
		marshalled, err := yaml.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshalling report: %w", err)
		}
		fmt.Printf("%s\n", string(marshalled))
		return nil
	default:
		printRunTable(run, items)
		return nil
	}
}

func printRunTable(run *model.Run, items model.RunItemList) {
	fmt.Printf("run %s kind=%s input=%s output=%s: %d total, %d succeeded, %d failed\n",
		run.ID, run.Kind, run.Input, run.OutputDir, run.Total, run.Succeeded, run.Failed)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "TOKEN\tSTATUS\tDURATION\tERROR")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.Token, item.Status, (time.Duration(item.DurationMs) * time.Millisecond).String(), item.Error)
	}
	w.Flush()
}
