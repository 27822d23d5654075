package driver_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openradar/regrid/internal/driver"
)

func TestExtractWorkItem(t *testing.T) {
	tests := []struct {
		path string
		date string
		time string
	}{
		{"a_20100430.094000.nc", "20100430", "094000"},
		{"/scratch/kl02/2010/20100430/502_20100430_094000.grid.nc", "20100430", "094000"},
		{"radar-19981123T235959.h5", "19981123", "235959"},
	}

	for _, tt := range tests {
		item, err := driver.ExtractWorkItem(tt.path)
		require.NoError(t, err, tt.path)
		require.Equal(t, tt.date, item.Date)
		require.Equal(t, tt.time, item.Time)
		require.Equal(t, tt.date+"."+tt.time, item.String())
	}
}

func TestExtractWorkItemMalformed(t *testing.T) {
	// No partial or garbage token comes back, ever.
	tests := []string{
		"nodate.nc",
		"202104.123456.nc",        // six-digit date
		"20210430123456.nc",       // no separator
		"20210430.1234.nc",        // four-digit time
		"/some/20100430/x.nc",     // token in the directory, not the basename
		"20100430.09400.extra.nc", // five-digit time
		"a_20100430.0940001.nc",   // seven-digit time run, no truncation to 094000
		"a_201004301.094000.nc",   // nine-digit date run, no window inside it
	}

	for _, path := range tests {
		item, err := driver.ExtractWorkItem(path)
		require.Error(t, err, path)

		var malformed *driver.ErrMalformedName
		require.True(t, errors.As(err, &malformed), path)
		require.Equal(t, driver.WorkItem{}, item, path)
	}
}
