// Package decimals holds the mint -> decimals table used by
// PriceMath and EventBuilder to scale raw token amounts into decimal prices.
package decimals

import (
	"encoding/json"
	"fmt"
	"io"
)

// entry mirrors one element of the token file's JSON array:
// [{mint, decimals}, ...].
type entry struct {
	Mint     string `json:"mint"`
	Decimals uint8  `json:"decimals"`
}

// Table is a mint (base58 pubkey) -> decimals lookup.
type Table map[string]uint8

// Load reads a JSON array of {mint, decimals} objects from r.
func Load(r io.Reader) (Table, error) {
	var entries []entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decimals: decode token table: %w", err)
	}
	t := make(Table, len(entries))
	for _, e := range entries {
		t[e.Mint] = e.Decimals
	}
	return t, nil
}

// Get returns the decimals registered for mint, and whether it was found.
func (t Table) Get(mint string) (uint8, bool) {
	d, ok := t[mint]
	return d, ok
}

// MustGet returns the decimals for mint or an error identifying the missing
// mint; used anywhere a missing decimals entry is a fatal precondition
// violation.
func (t Table) MustGet(mint string) (uint8, error) {
	d, ok := t[mint]
	if !ok {
		return 0, fmt.Errorf("decimals: no decimals entry for mint %s", mint)
	}
	return d, nil
}
