// Package archive locates and unpacks national-archive day volumes. Each
// radar publishes one zip per day under
// <root>/<rid>/<year>/vol/<rid>_<yyyymmdd>.pvol.zip.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const dateLayout = "20060102"

// DayArchivePath returns the expected location of the day archive for one
// radar ID.
func DayArchivePath(root string, rid int, day time.Time) string {
	return filepath.Join(
		root,
		strconv.Itoa(rid),
		strconv.Itoa(day.Year()),
		"vol",
		fmt.Sprintf("%d_%s.pvol.zip", rid, day.Format(dateLayout)),
	)
}

// Extract unpacks every file of the archive flat into destDir and returns
// the extracted paths sorted lexicographically. Directory entries inside the
// archive are skipped; the day volumes are flat by convention.
func Extract(archivePath, destDir string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", archivePath, err)
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating scratch dir: %w", err)
	}

	extracted := make([]string, 0, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		dest := filepath.Join(destDir, filepath.Base(f.Name))
		if err := extractOne(f, dest); err != nil {
			return nil, err
		}
		extracted = append(extracted, dest)
	}
	sort.Strings(extracted)
	return extracted, nil
}

// Cleanup removes extracted scratch files. Removal failures are logged, not
// returned; stale scratch never blocks the next day.
func Cleanup(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil {
			zap.S().Named("archive").Warnf("removing %s: %v", p, err)
		}
	}
}

func extractOne(f *zip.File, dest string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("reading %s from archive: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return fmt.Errorf("extracting %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", dest, err)
	}
	return nil
}
