package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/openradar/regrid/internal/pbs"
)

func NewCmdScripts() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scripts",
		Short: "Generate PBS job scripts for batch gridding runs.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(newCmdScriptsYears())
	cmd.AddCommand(newCmdScriptsDirs())
	return cmd
}

type ScriptsYearsOptions struct {
	Site      string
	StartYear int
	EndYear   int
	SkipYear  int
	InputRoot string
	OutputDir string
	Dir       string
}

func DefaultScriptsYearsOptions() *ScriptsYearsOptions {
	return &ScriptsYearsOptions{
		SkipYear: -1,
		Dir:      ".",
	}
}

func newCmdScriptsYears() *cobra.Command {
	o := DefaultScriptsYearsOptions()
	cmd := &cobra.Command{
		Use:   "years --start-year Y0 --end-year Y1 --input ROOT --output DIR",
		Short: "One job script per calendar year (qgrid_<year>.pbs).",
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

func (o *ScriptsYearsOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.Site, "site", o.Site, "Site configuration file (YAML); defaults apply when omitted")
	fs.IntVar(&o.StartYear, "start-year", o.StartYear, "First year to generate")
	fs.IntVar(&o.EndYear, "end-year", o.EndYear, "Last year to generate, inclusive")
	fs.IntVar(&o.SkipYear, "skip", o.SkipYear, "Single year to leave out of the range")
	fs.StringVarP(&o.InputRoot, "input", "i", o.InputRoot, "Input tree root named in the job command line")
	fs.StringVarP(&o.OutputDir, "output", "o", o.OutputDir, "Output directory named in the job command line")
	fs.StringVar(&o.Dir, "dir", o.Dir, "Directory receiving the generated scripts")
}

func (o *ScriptsYearsOptions) Validate(args []string) error {
	if o.StartYear <= 0 || o.EndYear <= 0 {
		return fmt.Errorf("--start-year and --end-year are required")
	}
	if o.StartYear > o.EndYear {
		return fmt.Errorf("--start-year %d is after --end-year %d", o.StartYear, o.EndYear)
	}
	if o.InputRoot == "" || o.OutputDir == "" {
		return fmt.Errorf("--input and --output are required")
	}
	return nil
}

func (o *ScriptsYearsOptions) Run(ctx context.Context, args []string) error {
	site, err := pbs.LoadSiteConfig(o.Site)
	if err != nil {
		return err
	}
	return pbs.NewGenerator(site, o.Dir).GenerateYears(o.InputRoot, o.OutputDir, o.StartYear, o.EndYear, o.SkipYear)
}

type ScriptsDirsOptions struct {
	Site       string
	InputRoot  string
	OutputBase string
	Dir        string
}

func DefaultScriptsDirsOptions() *ScriptsDirsOptions {
	return &ScriptsDirsOptions{
		Dir: ".",
	}
}

func newCmdScriptsDirs() *cobra.Command {
	o := DefaultScriptsDirsOptions()
	cmd := &cobra.Command{
		Use:   "dirs --input-root ROOT --output-base DIR",
		Short: "One job script per subdirectory pair (qgrid_<dirname>.pbs).",
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

func (o *ScriptsDirsOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.Site, "site", o.Site, "Site configuration file (YAML); defaults apply when omitted")
	fs.StringVar(&o.InputRoot, "input-root", o.InputRoot, "Root whose subdirectories become one job each")
	fs.StringVar(&o.OutputBase, "output-base", o.OutputBase, "Base directory paired with each input subdirectory")
	fs.StringVar(&o.Dir, "dir", o.Dir, "Directory receiving the generated scripts")
}

func (o *ScriptsDirsOptions) Validate(args []string) error {
	if o.InputRoot == "" || o.OutputBase == "" {
		return fmt.Errorf("--input-root and --output-base are required")
	}
	return nil
}

func (o *ScriptsDirsOptions) Run(ctx context.Context, args []string) error {
	site, err := pbs.LoadSiteConfig(o.Site)
	if err != nil {
		return err
	}
	return pbs.NewGenerator(site, o.Dir).GenerateDirPairs(o.InputRoot, o.OutputBase)
}
