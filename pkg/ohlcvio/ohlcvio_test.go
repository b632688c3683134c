package ohlcvio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/solana-zh/whirlpool-archive/pkg/ohlcv"
)

func samplePools() map[string]*ohlcv.Record {
	return map[string]*ohlcv.Record{
		"poolB": {Whirlpool: "poolB", Minutely: []ohlcv.DataUnit{{Timestamp: 120}, {Timestamp: 60}}},
		"poolA": {Whirlpool: "poolA"},
	}
}

func readGzipLines(t *testing.T, buf *bytes.Buffer) []string {
	t.Helper()
	gz, err := gzip.NewReader(buf)
	require.NoError(t, err)
	defer gz.Close()

	var lines []string
	scan := bufio.NewScanner(gz)
	for scan.Scan() {
		lines = append(lines, scan.Text())
	}
	require.NoError(t, scan.Err())
	return lines
}

func TestWriteDailyOmitsMinutelyAndSortsByPool(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDaily(&buf, samplePools()))

	lines := readGzipLines(t, &buf)
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.Equal(t, "poolA", first["w"])
	_, hasMinutely := first["m"]
	require.False(t, hasMinutely, "daily output must not carry a minutely vector")

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	require.Equal(t, "poolB", second["w"])
}

func TestWriteMinutelySortsBucketsByTimestamp(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMinutely(&buf, samplePools()))

	lines := readGzipLines(t, &buf)
	require.Len(t, lines, 2)

	var poolB ohlcv.Record
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &poolB))
	require.Len(t, poolB.Minutely, 2)
	require.EqualValues(t, 60, poolB.Minutely[0].Timestamp)
	require.EqualValues(t, 120, poolB.Minutely[1].Timestamp)
}
