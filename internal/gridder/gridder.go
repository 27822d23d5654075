// Package gridder is the boundary to the external radar-to-grid
// transformation. The driver depends on this single contract and nothing
// else about the gridding implementation.
package gridder

import (
	"context"
)

type Gridder interface {
	// Grid transforms one volumetric scan into a gridded product under
	// outputDir. standardNaming requests the standardized variable and
	// attribute naming convention in the output files.
	Grid(ctx context.Context, infile, outputDir, prefix string, standardNaming bool) error
}
