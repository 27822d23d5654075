package driver

import (
	"fmt"
)

type ErrNoMatch struct {
	error
}

func NewErrNoMatch(pattern string) *ErrNoMatch {
	return &ErrNoMatch{fmt.Errorf("no files match pattern %q", pattern)}
}

type ErrMalformedName struct {
	error
}

func NewErrMalformedName(basename string) *ErrMalformedName {
	return &ErrMalformedName{fmt.Errorf("filename %q carries no date.time token", basename)}
}

type ErrBadListEntry struct {
	error
}

func NewErrBadListEntry(line int, entry string) *ErrBadListEntry {
	return &ErrBadListEntry{fmt.Errorf("bad-list entry %d: %q is not a YYYYMMDD.HHMMSS token", line, entry)}
}
