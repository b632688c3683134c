package decimals

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadBuildsTableFromJSONArray(t *testing.T) {
	r := strings.NewReader(`[{"mint":"mintA","decimals":6},{"mint":"mintB","decimals":9}]`)
	table, err := Load(r)
	require.NoError(t, err)
	require.Len(t, table, 2)

	d, ok := table.Get("mintA")
	require.True(t, ok)
	require.EqualValues(t, 6, d)
}

func TestGetReportsMissingMint(t *testing.T) {
	table := Table{"mintA": 6}
	_, ok := table.Get("mintZ")
	require.False(t, ok)
}

func TestMustGetErrorsOnMissingMint(t *testing.T) {
	table := Table{"mintA": 6}

	d, err := table.MustGet("mintA")
	require.NoError(t, err)
	require.EqualValues(t, 6, d)

	_, err = table.MustGet("mintZ")
	require.Error(t, err)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`not json`))
	require.Error(t, err)
}
