package store_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/openradar/regrid/internal/config"
	"github.com/openradar/regrid/internal/driver"
	"github.com/openradar/regrid/internal/store"
	storemigrations "github.com/openradar/regrid/internal/store/migrations"
	"github.com/openradar/regrid/internal/store/model"
	"github.com/openradar/regrid/pkg/migrations"
)

var _ = Describe("run ledger", Ordered, func() {
	var (
		s      store.Store
		gormdb *gorm.DB
		tmpDir string
	)

	BeforeAll(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "regrid-store-test")
		Expect(err).To(BeNil())

		cfg := config.NewDefault()
		cfg.Database.Type = "sqlite"
		cfg.Database.Name = filepath.Join(tmpDir, "regrid.db")

		db, err := store.InitDB(cfg)
		Expect(err).To(BeNil())
		Expect(migrations.MigrateStore(db, store.GooseDialect(cfg), storemigrations.FS)).To(Succeed())

		s = store.NewStore(db)
		gormdb = db
	})

	AfterAll(func() {
		s.Close()
		os.RemoveAll(tmpDir)
	})

	AfterEach(func() {
		gormdb.Exec("DELETE FROM run_items;")
		gormdb.Exec("DELETE FROM runs;")
	})

	Context("runs", func() {
		It("creates and reads back a run", func() {
			id := uuid.New()
			_, err := s.Run().Create(context.TODO(), model.Run{
				ID:        id,
				Kind:      "reprocess",
				Input:     "/data/2010/*.nc",
				OutputDir: "/scratch/grids",
				StartedAt: time.Now().UTC(),
				Total:     3,
			})
			Expect(err).To(BeNil())

			run, err := s.Run().Get(context.TODO(), id)
			Expect(err).To(BeNil())
			Expect(run.Kind).To(Equal("reprocess"))
			Expect(run.Total).To(Equal(3))
			Expect(run.FinishedAt).To(BeNil())
		})

		It("returns ErrRecordNotFound for an unknown run", func() {
			_, err := s.Run().Get(context.TODO(), uuid.New())
			Expect(err).To(MatchError(store.ErrRecordNotFound))
		})

		It("finishes a run with its counters", func() {
			id := uuid.New()
			_, err := s.Run().Create(context.TODO(), model.Run{ID: id, Kind: "range", StartedAt: time.Now().UTC(), Total: 5})
			Expect(err).To(BeNil())

			run, err := s.Run().Finish(context.TODO(), id, 4, 1, time.Now().UTC())
			Expect(err).To(BeNil())
			Expect(run.Succeeded).To(Equal(4))
			Expect(run.Failed).To(Equal(1))
			Expect(run.FinishedAt).ToNot(BeNil())
		})

		It("latest returns the most recently started run", func() {
			older := uuid.New()
			newer := uuid.New()
			_, err := s.Run().Create(context.TODO(), model.Run{ID: older, Kind: "range", StartedAt: time.Now().UTC().Add(-time.Hour)})
			Expect(err).To(BeNil())
			_, err = s.Run().Create(context.TODO(), model.Run{ID: newer, Kind: "reprocess", StartedAt: time.Now().UTC()})
			Expect(err).To(BeNil())

			run, err := s.Run().Latest(context.TODO())
			Expect(err).To(BeNil())
			Expect(run.ID).To(Equal(newer))
		})
	})

	Context("items", func() {
		var runID uuid.UUID

		BeforeEach(func() {
			runID = uuid.New()
			_, err := s.Run().Create(context.TODO(), model.Run{ID: runID, Kind: "reprocess", StartedAt: time.Now().UTC()})
			Expect(err).To(BeNil())
		})

		It("lists the items of a run ordered by path", func() {
			for _, token := range []string{"20100430.100000", "20100430.094000"} {
				_, err := s.Item().Create(context.TODO(), model.RunItem{
					ID:        uuid.New(),
					RunID:     runID,
					Token:     token,
					Path:      fmt.Sprintf("a_%s.nc", token),
					Status:    model.RunItemStatusSucceeded,
					CreatedAt: time.Now().UTC(),
				})
				Expect(err).To(BeNil())
			}

			items, err := s.Item().List(context.TODO(), runID)
			Expect(err).To(BeNil())
			Expect(items).To(HaveLen(2))
			Expect(items[0].Path).To(Equal("a_20100430.094000.nc"))
		})

		It("returns only failed tokens, sorted", func() {
			rows := []struct {
				token  string
				status string
			}{
				{"20100430.110000", model.RunItemStatusFailed},
				{"20100430.094000", model.RunItemStatusFailed},
				{"20100430.100000", model.RunItemStatusSucceeded},
			}
			for _, row := range rows {
				_, err := s.Item().Create(context.TODO(), model.RunItem{
					ID:        uuid.New(),
					RunID:     runID,
					Token:     row.token,
					Path:      fmt.Sprintf("a_%s.nc", row.token),
					Status:    row.status,
					CreatedAt: time.Now().UTC(),
				})
				Expect(err).To(BeNil())
			}

			tokens, err := s.Item().FailedTokens(context.TODO(), runID)
			Expect(err).To(BeNil())
			Expect(tokens).To(Equal([]string{"20100430.094000", "20100430.110000"}))
		})
	})

	Context("ledger recorder", func() {
		It("round-trips a driver report into reusable bad tokens", func() {
			ledger := store.NewLedger(s)

			runID, err := ledger.Begin(context.TODO(), "reprocess", "/data/*.nc", "/scratch/grids", 2)
			Expect(err).To(BeNil())

			good := driver.Outcome{Path: "a_20100430.094000.nc", Item: driver.WorkItem{Date: "20100430", Time: "094000"}, Duration: time.Second}
			bad := driver.Outcome{Path: "a_20100430.100000.nc", Item: driver.WorkItem{Date: "20100430", Time: "100000"}, Err: fmt.Errorf("corrupted volume"), Duration: 2 * time.Second}
			Expect(ledger.Record(context.TODO(), runID, good)).To(Succeed())
			Expect(ledger.Record(context.TODO(), runID, bad)).To(Succeed())

			report := &driver.Report{Outcomes: []driver.Outcome{good, bad}, Succeeded: 1, Failed: 1}
			Expect(ledger.Finish(context.TODO(), runID, report)).To(Succeed())

			tokens, err := store.LatestFailedTokens(context.TODO(), s)
			Expect(err).To(BeNil())
			Expect(tokens).To(Equal([]string{"20100430.100000"}))

			run, err := s.Run().Get(context.TODO(), runID)
			Expect(err).To(BeNil())
			Expect(run.Succeeded).To(Equal(1))
			Expect(run.Failed).To(Equal(1))
			Expect(run.FinishedAt).ToNot(BeNil())
		})
	})
})
