package pbs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// scriptTemplate is the fixed PBS skeleton. Plain substitution only; paths
// and dates are assumed well-formed.
const scriptTemplate = `#!/bin/bash
#PBS -P {{.Profile.Project}}
#PBS -q {{.Profile.Queue}}
#PBS -l walltime={{.Profile.Walltime}}
#PBS -l mem={{.Profile.MemGB}}GB
#PBS -l ncpus={{.Profile.NCPUs}}
#PBS -l storage={{.Profile.Storage}}

{{.Activation}}
{{.Command}}
`

var scriptTmpl = template.Must(template.New("pbs").Parse(scriptTemplate))

// CommandSpec is the invocation the job runs: input, output, and optionally
// a date range. Without dates the line is the directory-pair form.
type CommandSpec struct {
	InputPath  string
	OutputPath string
	StartDate  string
	EndDate    string
}

func (s CommandSpec) line(binary string) string {
	if s.StartDate != "" || s.EndDate != "" {
		return fmt.Sprintf("%s -s %s -e %s -i %s -o %s", binary, s.StartDate, s.EndDate, s.InputPath, s.OutputPath)
	}
	return fmt.Sprintf("%s -i %s -o %s", binary, s.InputPath, s.OutputPath)
}

// Script is a rendered job file, write-once. The filename encodes the
// work-unit key.
type Script struct {
	Filename string
	Body     string
}

// ScriptBuilder renders one Script from a site config, a profile and an
// invocation.
type ScriptBuilder struct {
	site    *SiteConfig
	profile ResourceProfile
	command CommandSpec
	key     string
}

func NewScriptBuilder(site *SiteConfig) *ScriptBuilder {
	return &ScriptBuilder{
		site:    site,
		profile: site.ProfileForYear(0),
	}
}

func (b *ScriptBuilder) WithProfile(profile ResourceProfile) *ScriptBuilder {
	b.profile = profile
	return b
}

func (b *ScriptBuilder) WithCommand(command CommandSpec) *ScriptBuilder {
	b.command = command
	return b
}

// WithKey sets the work-unit key encoded in the output filename
// (qgrid_<key>.pbs).
func (b *ScriptBuilder) WithKey(key string) *ScriptBuilder {
	b.key = key
	return b
}

func (b *ScriptBuilder) Render() (Script, error) {
	if b.key == "" {
		return Script{}, fmt.Errorf("rendering job script: no work-unit key set")
	}

	var body strings.Builder
	err := scriptTmpl.Execute(&body, struct {
		Profile    ResourceProfile
		Activation string
		Command    string
	}{
		Profile:    b.profile,
		Activation: b.site.Activation,
		Command:    b.command.line(b.site.DriverBinary),
	})
	if err != nil {
		return Script{}, fmt.Errorf("rendering job script %s: %w", b.key, err)
	}

	return Script{
		Filename: fmt.Sprintf("qgrid_%s.pbs", b.key),
		Body:     body.String(),
	}, nil
}

// WriteScript writes the rendered text under dir. Write and close errors
// are surfaced, never swallowed; on error the partial file is left behind
// and named by the error.
func WriteScript(script Script, dir string) error {
	path := filepath.Join(dir, script.Filename)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating job script %s: %w", path, err)
	}
	if _, err := f.WriteString(script.Body); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing job script %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing job script %s: %w", path, err)
	}
	return nil
}
