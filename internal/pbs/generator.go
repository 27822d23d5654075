package pbs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/openradar/regrid/pkg/metrics"
)

const (
	ModeYears = "years"
	ModeDirs  = "dirs"
)

// Generator writes job scripts into a single output directory, strictly
// sequentially: one file write completes before the next render begins. An
// error leaves the scripts written so far in place; the returned error
// names the script that failed.
type Generator struct {
	site   *SiteConfig
	outDir string
	log    *zap.SugaredLogger
}

func NewGenerator(site *SiteConfig, outDir string) *Generator {
	return &Generator{
		site:   site,
		outDir: outDir,
		log:    zap.S().Named("pbs"),
	}
}

// GenerateYears writes one script per year in [startYear, endYear], pairing
// inputRoot with outputDir and a full-year date range. skipYear < 0 skips
// nothing.
func (g *Generator) GenerateYears(inputRoot, outputDir string, startYear, endYear, skipYear int) error {
	for year := startYear; year <= endYear; year++ {
		if year == skipYear {
			g.log.Infof("skipping year %d", year)
			continue
		}

		script, err := NewScriptBuilder(g.site).
			WithKey(strconv.Itoa(year)).
			WithProfile(g.site.ProfileForYear(year)).
			WithCommand(CommandSpec{
				InputPath:  inputRoot,
				OutputPath: outputDir,
				StartDate:  fmt.Sprintf("%d0101", year),
				EndDate:    fmt.Sprintf("%d1231", year),
			}).
			Render()
		if err != nil {
			return err
		}

		if err := g.write(script, ModeYears); err != nil {
			return err
		}
	}
	return nil
}

// GenerateDirPairs writes one script per subdirectory of inputRoot, pairing
// it with the same-named subdirectory under outputBase. An empty listing
// yields zero scripts and no error.
func (g *Generator) GenerateDirPairs(inputRoot, outputBase string) error {
	entries, err := os.ReadDir(inputRoot)
	if err != nil {
		return fmt.Errorf("listing %s: %w", inputRoot, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()

		script, err := NewScriptBuilder(g.site).
			WithKey(name).
			WithProfile(g.site.DirProfile()).
			WithCommand(CommandSpec{
				InputPath:  filepath.Join(inputRoot, name),
				OutputPath: filepath.Join(outputBase, name),
			}).
			Render()
		if err != nil {
			return err
		}

		if err := g.write(script, ModeDirs); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) write(script Script, mode string) error {
	if err := WriteScript(script, g.outDir); err != nil {
		return err
	}
	metrics.IncreaseScriptsGeneratedMetric(mode)
	g.log.Infof("wrote %s", filepath.Join(g.outDir, script.Filename))
	return nil
}
