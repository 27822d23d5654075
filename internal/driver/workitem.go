package driver

import (
	"path/filepath"
	"regexp"
)

// Input basenames embed an 8-digit date and a 6-digit time separated by a
// single non-digit character, e.g. "502_20100430.094000.grid.nc". That
// convention is load-bearing: the token is the matching key against bad
// lists and the ledger, and lexicographic order of basenames is assumed
// chronological. Both digit runs are anchored so a 7- or 9-digit run never
// yields a truncated token that matches the wrong item.
var tokenPattern = regexp.MustCompile(`(?:^|\D)(\d{8})\D(\d{6})(?:\D|$)`)

// WorkItem is the identifier extracted from an input filename. Immutable.
type WorkItem struct {
	Date string
	Time string
}

// String returns the canonical token form, regardless of the separator
// found in the filename.
func (w WorkItem) String() string {
	return w.Date + "." + w.Time
}

// ExtractWorkItem applies the naming convention to the basename of path.
// A basename without the token is a hard failure, never a skip: naming
// drift in an input tree must surface, not be silently filtered away.
func ExtractWorkItem(path string) (WorkItem, error) {
	base := filepath.Base(path)
	m := tokenPattern.FindStringSubmatch(base)
	if m == nil {
		return WorkItem{}, NewErrMalformedName(base)
	}
	return WorkItem{Date: m[1], Time: m[2]}, nil
}
