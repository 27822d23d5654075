package driver

import (
	"time"
)

// Outcome is the result of processing a single input file. A failed gridding
// call lives here as a value; it never crosses the batch boundary as a Go
// error.
type Outcome struct {
	Path     string
	Item     WorkItem
	Err      error
	Duration time.Duration
}

func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Report collects the outcomes of one batch, in candidate order.
type Report struct {
	Outcomes  []Outcome
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// Clean reports whether every item succeeded. A clean run is the only
// success signal a batch has.
func (r *Report) Clean() bool {
	return r.Failed == 0
}

func (r *Report) Failures() []Outcome {
	failures := make([]Outcome, 0, r.Failed)
	for _, o := range r.Outcomes {
		if o.Failed() {
			failures = append(failures, o)
		}
	}
	return failures
}
