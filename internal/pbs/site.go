package pbs

import (
	"fmt"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

var walltimePattern = regexp.MustCompile(`^\d{1,3}:\d{2}:\d{2}$`)

// SiteConfig carries the scheduler-facing settings of one HPC site. Loaded
// once per invocation; the generators treat it as read-only.
type SiteConfig struct {
	// Project is the accounting project charged for the jobs.
	Project string `json:"project" validate:"required"`
	// Queue is the scheduler queue the jobs are submitted to.
	Queue string `json:"queue" validate:"required"`
	// MemGB and NCPUs size every job; the source workloads are uniform
	// enough that only walltime varies per work unit.
	MemGB int `json:"mem-gb" validate:"gt=0"`
	NCPUs int `json:"ncpus" validate:"gt=0"`
	// Storage is the '+'-joined list of mounts the jobs need.
	Storage string `json:"storage" validate:"required"`
	// Activation is the environment-activation line inserted before the
	// invocation command.
	Activation string `json:"activation" validate:"required"`
	// DriverBinary is the batch driver executable named in the invocation
	// line.
	DriverBinary string `json:"driver-binary" validate:"required"`
	// DefaultWalltime applies to every year without an explicit override.
	DefaultWalltime string `json:"default-walltime" validate:"required,walltime"`
	// WalltimeOverrides maps specific years to a different walltime, e.g.
	// a year with a short archive.
	WalltimeOverrides map[int]string `json:"walltime-overrides" validate:"dive,walltime"`
	// DirWalltime applies to directory-pair jobs, which are sized
	// differently than the per-year sweeps.
	DirWalltime string `json:"dir-walltime" validate:"required,walltime"`
}

// DefaultSiteConfig returns the documented defaults of the originating
// deployment.
func DefaultSiteConfig() *SiteConfig {
	return &SiteConfig{
		Project:         "kl02",
		Queue:           "normal",
		MemGB:           32,
		NCPUs:           16,
		Storage:         "gdata/hj10+gdata/rq0+scratch/kl02",
		Activation:      "source activate radar",
		DriverBinary:    "radar_pack",
		DefaultWalltime: "10:00:00",
		WalltimeOverrides: map[int]string{
			2009: "02:00:00",
		},
		DirWalltime: "12:00:00",
	}
}

// LoadSiteConfig overlays a YAML file on top of the defaults and validates
// the result.
func LoadSiteConfig(path string) (*SiteConfig, error) {
	cfg := DefaultSiteConfig()
	if path != "" {
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read site config: %w", err)
		}
		if err := yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal site config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *SiteConfig) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("walltime", func(fl validator.FieldLevel) bool {
		return walltimePattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid site config: %w", err)
	}
	return nil
}
