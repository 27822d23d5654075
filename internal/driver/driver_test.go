package driver_test

import (
	"context"
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openradar/regrid/internal/driver"
	"github.com/openradar/regrid/internal/gridder"
)

var _ = Describe("driver run", func() {
	var candidates driver.CandidateSet

	BeforeEach(func() {
		candidates = driver.CandidateSet{
			"a_20100430.094000.nc",
			"a_20100430.100000.nc",
			"a_20100430.110000.nc",
			"a_20100430.120000.nc",
		}
	})

	Context("failure isolation", func() {
		It("processes the other items when one fails", func() {
			var (
				mu   sync.Mutex
				seen []string
			)
			mock := gridder.GridderMock{
				GridFunc: func(_ context.Context, infile, _, _ string, _ bool) error {
					mu.Lock()
					seen = append(seen, infile)
					mu.Unlock()
					if infile == "a_20100430.100000.nc" {
						return fmt.Errorf("corrupted volume")
					}
					return nil
				},
			}

			d := driver.New(&mock, driver.Config{OutputDir: "/tmp/out", Prefix: "502", Workers: 2})
			report := d.Run(context.TODO(), "reprocess", "*.nc", candidates)

			Expect(seen).To(HaveLen(4))
			Expect(report.Succeeded).To(Equal(3))
			Expect(report.Failed).To(Equal(1))
			Expect(report.Clean()).To(BeFalse())

			failures := report.Failures()
			Expect(failures).To(HaveLen(1))
			Expect(failures[0].Path).To(Equal("a_20100430.100000.nc"))
			Expect(failures[0].Err).To(MatchError(ContainSubstring("corrupted volume")))
		})

		It("converts a panicking gridding call into a failed outcome", func() {
			mock := gridder.GridderMock{
				GridFunc: func(_ context.Context, infile, _, _ string, _ bool) error {
					if infile == "a_20100430.094000.nc" {
						panic("index out of range in remapping")
					}
					return nil
				},
			}

			d := driver.New(&mock, driver.Config{OutputDir: "/tmp/out", Prefix: "502", Workers: 1})
			report := d.Run(context.TODO(), "reprocess", "*.nc", candidates)

			Expect(report.Failed).To(Equal(1))
			Expect(report.Succeeded).To(Equal(3))
			Expect(report.Outcomes[0].Err).To(MatchError(ContainSubstring("index out of range")))
		})
	})

	Context("report ordering", func() {
		It("emits outcomes in candidate order under a pooled run", func() {
			d := driver.New(&gridder.GridderMock{}, driver.Config{OutputDir: "/tmp/out", Prefix: "502", Workers: 4})
			report := d.Run(context.TODO(), "reprocess", "*.nc", candidates)

			Expect(report.Outcomes).To(HaveLen(len(candidates)))
			for i, outcome := range report.Outcomes {
				Expect(outcome.Path).To(Equal(candidates[i]))
				Expect(outcome.Failed()).To(BeFalse())
			}
		})

		It("attributes each outcome to its originating path", func() {
			mock := gridder.GridderMock{
				GridFunc: func(_ context.Context, infile, _, _ string, _ bool) error {
					if infile == "a_20100430.120000.nc" {
						return fmt.Errorf("boom")
					}
					return nil
				},
			}

			d := driver.New(&mock, driver.Config{OutputDir: "/tmp/out", Prefix: "502", Workers: 4})
			report := d.Run(context.TODO(), "reprocess", "*.nc", candidates)

			for _, outcome := range report.Outcomes {
				if outcome.Path == "a_20100430.120000.nc" {
					Expect(outcome.Failed()).To(BeTrue())
				} else {
					Expect(outcome.Failed()).To(BeFalse())
				}
				Expect(outcome.Item.String()).To(HavePrefix("20100430."))
			}
		})
	})

	Context("gridding arguments", func() {
		It("hands the configured output dir, prefix and naming flag to every call", func() {
			mock := gridder.GridderMock{
				GridFunc: func(_ context.Context, _, outputDir, prefix string, standardNaming bool) error {
					Expect(outputDir).To(Equal("/scratch/kl02/grids"))
					Expect(prefix).To(Equal("502"))
					Expect(standardNaming).To(BeTrue())
					return nil
				},
			}

			d := driver.New(&mock, driver.Config{
				OutputDir:      "/scratch/kl02/grids",
				Prefix:         "502",
				StandardNaming: true,
				Workers:        2,
			})
			report := d.Run(context.TODO(), "reprocess", "*.nc", candidates)
			Expect(report.Clean()).To(BeTrue())
		})
	})
})
