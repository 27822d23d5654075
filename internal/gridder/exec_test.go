package gridder_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openradar/regrid/internal/gridder"
)

func TestExecGridSuccess(t *testing.T) {
	g := gridder.NewExec("true", time.Minute)
	err := g.Grid(context.Background(), "in.nc", "/tmp/out", "502", true)
	require.NoError(t, err)
}

func TestExecGridFailure(t *testing.T) {
	g := gridder.NewExec("false", time.Minute)
	err := g.Grid(context.Background(), "in.nc", "/tmp/out", "502", true)
	require.Error(t, err)
	require.Contains(t, err.Error(), "in.nc")
}

func TestExecGridMissingBinary(t *testing.T) {
	g := gridder.NewExec("definitely-not-a-binary-on-path", time.Minute)
	err := g.Grid(context.Background(), "in.nc", "/tmp/out", "502", false)
	require.Error(t, err)
}

func TestMockDefaultsToSuccess(t *testing.T) {
	var m gridder.GridderMock
	require.NoError(t, m.Grid(context.Background(), "in.nc", "/tmp/out", "502", true))
}
