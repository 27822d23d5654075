package driver

import (
	"context"

	"github.com/google/uuid"
)

// Recorder persists batch outcomes. The driver only ever talks to this
// narrow surface; the ledger behind it is optional.
type Recorder interface {
	Begin(ctx context.Context, kind, input, outputDir string, total int) (uuid.UUID, error)
	Record(ctx context.Context, runID uuid.UUID, outcome Outcome) error
	Finish(ctx context.Context, runID uuid.UUID, report *Report) error
}

// NopRecorder discards everything. Used when the ledger is disabled.
type NopRecorder struct{}

var _ Recorder = (*NopRecorder)(nil)

func (NopRecorder) Begin(_ context.Context, _, _, _ string, _ int) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (NopRecorder) Record(_ context.Context, _ uuid.UUID, _ Outcome) error {
	return nil
}

func (NopRecorder) Finish(_ context.Context, _ uuid.UUID, _ *Report) error {
	return nil
}
