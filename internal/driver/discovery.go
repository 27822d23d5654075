package driver

import (
	"fmt"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// CandidateSet is an ordered snapshot of input paths. It is never mutated
// after discovery.
type CandidateSet []string

// Discover expands a shell-style glob into a sorted candidate set. An empty
// expansion returns ErrNoMatch; whether that is fatal is the caller's call
// (a reprocessing run with nothing to do is an operator error, an empty day
// inside a date-range sweep is not).
func Discover(pattern string) (CandidateSet, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("expanding pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, NewErrNoMatch(pattern)
	}
	sort.Strings(matches)
	return CandidateSet(matches), nil
}

// Filter keeps exactly the candidates whose token is present in list. This
// is the selective-reprocessing direction: only previously failed items
// survive. Order is preserved and the operation is idempotent.
//
// Any candidate violating the naming convention aborts the whole step with
// ErrMalformedName; one bad name means the convention can no longer be
// trusted for the rest of the set either.
func Filter(candidates CandidateSet, list ExclusionList) (CandidateSet, error) {
	kept := make(CandidateSet, 0, len(candidates))
	var prev WorkItem
	for _, path := range candidates {
		item, err := ExtractWorkItem(path)
		if err != nil {
			return nil, err
		}
		if prev != (WorkItem{}) && item.String() < prev.String() {
			zap.S().Named("driver").Warnf("tokens out of order: %s before %s, sorted paths are not chronological", prev, item)
		}
		prev = item
		if list.Has(item) {
			kept = append(kept, path)
		}
	}
	return kept, nil
}
