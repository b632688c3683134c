// Package ohlcvio implements OhlcvWriter: gzip-compressed
// line-delimited JSON, one record per pool, for both the daily and minutely
// output files.
package ohlcvio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/klauspost/compress/gzip"

	"github.com/solana-zh/whirlpool-archive/pkg/ohlcv"
)

// dailyRecord is the daily file's per-pool shape: no minutely vector.
type dailyRecord struct {
	Whirlpool        string               `json:"w"`
	WhirlpoolsConfig string               `json:"wc"`
	TokenA           ohlcv.Token          `json:"ta"`
	TokenB           ohlcv.Token          `json:"tb"`
	TickSpacing      uint16               `json:"ts"`
	InitialState     ohlcv.InitialState   `json:"is"`
	EstimatedFees    ohlcv.EstimatedFees  `json:"ef"`
	Daily            ohlcv.DataUnit       `json:"d"`
}

// WriteDaily emits one dailyRecord per pool to w, sorted by pool pubkey for
// deterministic output, then closes the gzip stream.
func WriteDaily(w io.Writer, pools map[string]*ohlcv.Record) error {
	keys := sortedKeys(pools)
	gz := gzip.NewWriter(w)
	buf := bufio.NewWriter(gz)
	for _, k := range keys {
		rec := pools[k]
		line, err := json.Marshal(dailyRecord{
			Whirlpool:        rec.Whirlpool,
			WhirlpoolsConfig: rec.WhirlpoolsConfig,
			TokenA:           rec.TokenA,
			TokenB:           rec.TokenB,
			TickSpacing:      rec.TickSpacing,
			InitialState:     rec.InitialState,
			EstimatedFees:    rec.EstimatedFees,
			Daily:            rec.Daily,
		})
		if err != nil {
			return fmt.Errorf("ohlcvio: marshal daily record %s: %w", k, err)
		}
		if _, err := buf.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("ohlcvio: write daily record %s: %w", k, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("ohlcvio: flush daily file: %w", err)
	}
	return gz.Close()
}

// WriteMinutely emits the full Record (daily bucket plus a timestamp-sorted
// minutely vector) per pool to w, then closes the gzip stream.
func WriteMinutely(w io.Writer, pools map[string]*ohlcv.Record) error {
	keys := sortedKeys(pools)
	gz := gzip.NewWriter(w)
	buf := bufio.NewWriter(gz)
	for _, k := range keys {
		rec := *pools[k]
		sort.Slice(rec.Minutely, func(i, j int) bool {
			return rec.Minutely[i].Timestamp < rec.Minutely[j].Timestamp
		})
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("ohlcvio: marshal minutely record %s: %w", k, err)
		}
		if _, err := buf.Write(append(line, '\n')); err != nil {
			return fmt.Errorf("ohlcvio: write minutely record %s: %w", k, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("ohlcvio: flush minutely file: %w", err)
	}
	return gz.Close()
}

func sortedKeys(pools map[string]*ohlcv.Record) []string {
	keys := make([]string, 0, len(pools))
	for k := range pools {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
