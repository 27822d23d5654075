package pbs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openradar/regrid/internal/pbs"
)

func TestProfileForYearOverride(t *testing.T) {
	site := pbs.DefaultSiteConfig()

	require.Equal(t, "02:00:00", site.ProfileForYear(2009).Walltime)
	require.Equal(t, "10:00:00", site.ProfileForYear(2015).Walltime)
}

func TestProfileForYearIsTotal(t *testing.T) {
	site := pbs.DefaultSiteConfig()

	// Every year yields exactly one profile with the shared base fields.
	for year := 1998; year <= 2025; year++ {
		profile := site.ProfileForYear(year)
		require.Equal(t, "kl02", profile.Project)
		require.Equal(t, "normal", profile.Queue)
		require.Equal(t, 32, profile.MemGB)
		require.Equal(t, 16, profile.NCPUs)
		require.Equal(t, "gdata/hj10+gdata/rq0+scratch/kl02", profile.Storage)
		require.NotEmpty(t, profile.Walltime)
	}
}

func TestDirProfileWalltimeDistinctFromYearDefault(t *testing.T) {
	site := pbs.DefaultSiteConfig()

	dir := site.DirProfile()
	require.Equal(t, "12:00:00", dir.Walltime)
	require.NotEqual(t, site.ProfileForYear(2015).Walltime, dir.Walltime)
}
