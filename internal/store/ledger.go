package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/openradar/regrid/internal/driver"
	"github.com/openradar/regrid/internal/store/model"
)

// Ledger adapts the store to the driver's Recorder contract. Failures
// recorded by one run become the bad list of the next.
type Ledger struct {
	store Store
}

var _ driver.Recorder = (*Ledger)(nil)

func NewLedger(s Store) *Ledger {
	return &Ledger{store: s}
}

func (l *Ledger) Begin(ctx context.Context, kind, input, outputDir string, total int) (uuid.UUID, error) {
	run, err := l.store.Run().Create(ctx, model.Run{
		ID:        uuid.New(),
		Kind:      kind,
		Input:     input,
		OutputDir: outputDir,
		StartedAt: time.Now().UTC(),
		Total:     total,
	})
	if err != nil {
		return uuid.Nil, err
	}
	return run.ID, nil
}

func (l *Ledger) Record(ctx context.Context, runID uuid.UUID, outcome driver.Outcome) error {
	item := model.RunItem{
		ID:         uuid.New(),
		RunID:      runID,
		Token:      outcome.Item.String(),
		Path:       outcome.Path,
		Status:     model.RunItemStatusSucceeded,
		DurationMs: outcome.Duration.Milliseconds(),
		CreatedAt:  time.Now().UTC(),
	}
	if outcome.Failed() {
		item.Status = model.RunItemStatusFailed
		item.Error = outcome.Err.Error()
	}
	_, err := l.store.Item().Create(ctx, item)
	return err
}

func (l *Ledger) Finish(ctx context.Context, runID uuid.UUID, report *driver.Report) error {
	_, err := l.store.Run().Finish(ctx, runID, report.Succeeded, report.Failed, time.Now().UTC())
	return err
}

// LatestFailedTokens returns the failed tokens of the most recent run, the
// input to a --from-ledger reprocessing batch.
func LatestFailedTokens(ctx context.Context, s Store) ([]string, error) {
	run, err := s.Run().Latest(ctx)
	if err != nil {
		return nil, err
	}
	return s.Item().FailedTokens(ctx, run.ID)
}
