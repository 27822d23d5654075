package cli

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestReportOptionsValidateOutputFormats(t *testing.T) {
	for _, format := range []string{"", "table", "json", "yaml"} {
		o := DefaultReportOptions()
		o.Output = format
		require.NoError(t, o.Validate(nil), format)
	}

	o := DefaultReportOptions()
	o.Output = "xml"
	require.Error(t, o.Validate(nil))
}

func TestReportOptionsValidateRunID(t *testing.T) {
	o := DefaultReportOptions()
	o.RunID = uuid.New().String()
	require.NoError(t, o.Validate(nil))

	o.RunID = "not-a-uuid"
	require.Error(t, o.Validate(nil))
}
