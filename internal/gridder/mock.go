package gridder

import (
	"context"
)

// GridderMock delegates to GridFunc when set; otherwise every call succeeds.
type GridderMock struct {
	GridFunc func(ctx context.Context, infile, outputDir, prefix string, standardNaming bool) error
}

var _ Gridder = (*GridderMock)(nil)

func (m *GridderMock) Grid(ctx context.Context, infile, outputDir, prefix string, standardNaming bool) error {
	if m.GridFunc != nil {
		return m.GridFunc(ctx, infile, outputDir, prefix, standardNaming)
	}
	return nil
}
