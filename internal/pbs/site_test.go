package pbs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openradar/regrid/internal/pbs"
)

func TestLoadSiteConfigDefaults(t *testing.T) {
	site, err := pbs.LoadSiteConfig("")
	require.NoError(t, err)
	require.Equal(t, pbs.DefaultSiteConfig(), site)
}

func TestLoadSiteConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	contents := `project: ab12
default-walltime: "05:00:00"
walltime-overrides:
  2013: "01:30:00"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	site, err := pbs.LoadSiteConfig(path)
	require.NoError(t, err)
	require.Equal(t, "ab12", site.Project)
	require.Equal(t, "normal", site.Queue, "unset fields keep their defaults")
	require.Equal(t, "01:30:00", site.ProfileForYear(2013).Walltime)
	require.Equal(t, "05:00:00", site.ProfileForYear(2014).Walltime)
}

func TestLoadSiteConfigRejectsBadWalltime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default-walltime: \"10 hours\"\n"), 0o644))

	_, err := pbs.LoadSiteConfig(path)
	require.Error(t, err)
}

func TestLoadSiteConfigMissingFile(t *testing.T) {
	_, err := pbs.LoadSiteConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
