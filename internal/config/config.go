package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Driver   *driverConfig
	Gridder  *gridderConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"REGRID_DB_TYPE" default:"sqlite"`
	Hostname string `envconfig:"REGRID_DB_HOST" default:"localhost"`
	Port     string `envconfig:"REGRID_DB_PORT" default:"5432"`
	Name     string `envconfig:"REGRID_DB_NAME" default:"regrid.db"`
	User     string `envconfig:"REGRID_DB_USER" default:"admin"`
	Password string `envconfig:"REGRID_DB_PASS" default:"adminpass"`
}

type driverConfig struct {
	Workers        int    `envconfig:"REGRID_WORKERS" default:"16"`
	Prefix         string `envconfig:"REGRID_PREFIX" default:"502"`
	StandardNaming bool   `envconfig:"REGRID_STANDARD_NAMING" default:"true"`
}

type gridderConfig struct {
	Command string        `envconfig:"REGRID_GRIDDER_COMMAND" default:"radar-grids"`
	Timeout time.Duration `envconfig:"REGRID_GRIDDER_TIMEOUT" default:"120s"`
}

type svcConfig struct {
	LogLevel       string `envconfig:"REGRID_LOG_LEVEL" default:"info"`
	MetricsAddress string `envconfig:"REGRID_METRICS_ADDRESS" default:""`
}

// LedgerEnabled reports whether run outcomes should be persisted.
func (c *Config) LedgerEnabled() bool {
	return c.Database.Type != "disabled"
}

// NewDefault builds a fresh configuration from the environment, bypassing
// the process-wide singleton.
func NewDefault() *Config {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		panic(err)
	}
	return cfg
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}
