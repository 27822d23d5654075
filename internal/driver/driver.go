package driver

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	jitterbug "github.com/lthibault/jitterbug/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/openradar/regrid/internal/gridder"
	"github.com/openradar/regrid/pkg/metrics"
)

const progressInterval = 30 * time.Second

// Config carries the per-batch settings. The output directory and prefix
// are handed verbatim to the gridding call for every item.
type Config struct {
	OutputDir      string
	Prefix         string
	StandardNaming bool
	Workers        int
	Recorder       Recorder
}

// Driver runs the gridding entry point once per candidate, isolating
// per-item failures so one corrupt input cannot abort the batch.
type Driver struct {
	gridder  gridder.Gridder
	recorder Recorder
	cfg      Config
	log      *zap.SugaredLogger
}

func New(g gridder.Gridder, cfg Config) *Driver {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = NopRecorder{}
	}
	return &Driver{
		gridder:  g,
		recorder: recorder,
		cfg:      cfg,
		log:      zap.S().Named("driver"),
	}
}

// ProcessOne invokes the gridding entry point for a single file. Errors and
// panics out of the external call are captured into the outcome; nothing
// propagates and the batch never aborts because of one item.
func (d *Driver) ProcessOne(ctx context.Context, path string) (outcome Outcome) {
	outcome.Path = path
	if item, err := ExtractWorkItem(path); err == nil {
		outcome.Item = item
	}

	start := time.Now()
	defer func() {
		outcome.Duration = time.Since(start)
		if r := recover(); r != nil {
			d.log.Errorf("gridding %s panicked: %v\n%s", path, r, debug.Stack())
			outcome.Err = fmt.Errorf("gridding panicked: %v", r)
		}
	}()

	if err := d.gridder.Grid(ctx, path, d.cfg.OutputDir, d.cfg.Prefix, d.cfg.StandardNaming); err != nil {
		d.log.Errorf("gridding %s failed: %v", path, err)
		outcome.Err = err
	}
	return outcome
}

// Run processes every candidate on a pool of Workers goroutines and returns
// one outcome per item. Outcomes are keyed by path while the pool runs and
// re-emitted in candidate order at the end, so the report order matches the
// input regardless of completion order.
func (d *Driver) Run(ctx context.Context, kind, input string, candidates CandidateSet) *Report {
	total := len(candidates)
	d.log.Infof("processing %d files with %d workers into %s", total, d.cfg.Workers, d.cfg.OutputDir)
	metrics.IncreaseRunsTotalMetric(kind)

	runID, err := d.recorder.Begin(ctx, kind, input, d.cfg.OutputDir, total)
	if err != nil {
		d.log.Warnf("ledger unavailable, outcomes will not be recorded: %v", err)
		d.recorder = NopRecorder{}
	}

	var (
		mu        sync.Mutex
		results   = make(map[string]Outcome, total)
		processed atomic.Int64
		failed    atomic.Int64
	)

	progressCtx, stopProgress := context.WithCancel(ctx)
	go d.reportProgress(progressCtx, &processed, &failed, total)

	start := time.Now()
	pool, poolCtx := errgroup.WithContext(ctx)
	pool.SetLimit(d.cfg.Workers)
	for _, path := range candidates {
		path := path
		pool.Go(func() error {
			outcome := d.ProcessOne(poolCtx, path)

			mu.Lock()
			results[outcome.Path] = outcome
			mu.Unlock()

			processed.Add(1)
			result := metrics.ItemResultSuccess
			if outcome.Failed() {
				failed.Add(1)
				result = metrics.ItemResultFailure
			}
			metrics.IncreaseItemsProcessedMetric(result)
			metrics.ObserveItemDurationMetric(outcome.Duration.Seconds())

			if err := d.recorder.Record(ctx, runID, outcome); err != nil {
				d.log.Warnf("recording outcome for %s: %v", outcome.Path, err)
			}
			return nil
		})
	}
	_ = pool.Wait()
	stopProgress()

	report := &Report{
		Outcomes: make([]Outcome, 0, total),
		Duration: time.Since(start),
	}
	for _, path := range candidates {
		outcome := results[path]
		if outcome.Failed() {
			report.Failed++
		} else {
			report.Succeeded++
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	if err := d.recorder.Finish(ctx, runID, report); err != nil {
		d.log.Warnf("closing ledger run %s: %v", runID, err)
	}

	d.log.Infof("batch done: %d succeeded, %d failed in %s", report.Succeeded, report.Failed, report.Duration.Round(time.Second))
	return report
}

func (d *Driver) reportProgress(ctx context.Context, processed, failed *atomic.Int64, total int) {
	ticker := jitterbug.New(progressInterval, &jitterbug.Norm{Stdev: 500 * time.Millisecond})
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.log.Infof("processed %d/%d, failed %d", processed.Load(), total, failed.Load())
		}
	}
}
