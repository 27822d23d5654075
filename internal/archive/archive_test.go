package archive_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openradar/regrid/internal/archive"
)

func writeDayArchive(t *testing.T, path string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	f, err := os.Create(path)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	for _, name := range names {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte("volume data"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func TestDayArchivePath(t *testing.T) {
	day := time.Date(2010, 4, 30, 0, 0, 0, 0, time.UTC)
	got := archive.DayArchivePath("/g/data/rq0", 502, day)
	require.Equal(t, "/g/data/rq0/502/2010/vol/502_20100430.pvol.zip", got)
}

func TestExtract(t *testing.T) {
	root := t.TempDir()
	day := time.Date(2010, 4, 30, 0, 0, 0, 0, time.UTC)
	path := archive.DayArchivePath(root, 502, day)
	writeDayArchive(t, path, "502_20100430.100000.pvol.h5", "502_20100430.094000.pvol.h5")

	scratch := filepath.Join(t.TempDir(), "unzip")
	files, err := archive.Extract(path, scratch)
	require.NoError(t, err)

	require.Equal(t, []string{
		filepath.Join(scratch, "502_20100430.094000.pvol.h5"),
		filepath.Join(scratch, "502_20100430.100000.pvol.h5"),
	}, files)
	for _, f := range files {
		contents, err := os.ReadFile(f)
		require.NoError(t, err)
		require.Equal(t, "volume data", string(contents))
	}

	archive.Cleanup(files)
	for _, f := range files {
		_, err := os.Stat(f)
		require.True(t, os.IsNotExist(err))
	}
}

func TestExtractMissingArchive(t *testing.T) {
	_, err := archive.Extract(filepath.Join(t.TempDir(), "missing.zip"), t.TempDir())
	require.Error(t, err)
}
