// Package statesnapshot loads the state-snapshot input: a slot triple, the
// AMM program's current bytecode, and every on-chain account live at the
// cutoff slot. The exact binary encoding is left to the collaborator that
// produces it, so this package picks a concrete gzip-JSON encoding
// consistent with the rest of this repo's I/O framing.
package statesnapshot

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/mr-tron/base58"

	"github.com/solana-zh/whirlpool-archive/pkg/pubkeyset"
)

// pubkeyByteLen is the fixed length of a Solana ed25519 public key.
const pubkeyByteLen = 32

// wire is the on-disk shape: account bytes and program data are base64,
// since JSON has no native byte-string type.
type wire struct {
	Slot        uint64            `json:"slot"`
	BlockHeight uint64            `json:"block_height"`
	BlockTime   int64             `json:"block_time"`
	ProgramData string            `json:"program_data"`
	Accounts    map[string]string `json:"accounts"`
}

// Snapshot is the decoded state-snapshot input.
type Snapshot struct {
	Slot        uint64
	BlockHeight uint64
	BlockTime   int64
	ProgramData []byte
	Accounts    map[string][]byte
}

// Load reads a gzip-compressed JSON state snapshot from r.
func Load(r io.Reader) (Snapshot, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return Snapshot{}, fmt.Errorf("statesnapshot: open gzip snapshot: %w", err)
	}
	defer gz.Close()

	var w wire
	if err := json.NewDecoder(gz).Decode(&w); err != nil {
		return Snapshot{}, fmt.Errorf("statesnapshot: decode snapshot: %w", err)
	}

	programData, err := base64.StdEncoding.DecodeString(w.ProgramData)
	if err != nil {
		return Snapshot{}, fmt.Errorf("statesnapshot: decode program data: %w", err)
	}

	accounts := make(map[string][]byte, len(w.Accounts))
	for pubkey, b64 := range w.Accounts {
		if raw, err := base58.Decode(pubkey); err != nil || len(raw) != pubkeyByteLen {
			return Snapshot{}, fmt.Errorf("statesnapshot: account key %q is not a valid base58 pubkey", pubkey)
		}
		data, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return Snapshot{}, fmt.Errorf("statesnapshot: decode account %s: %w", pubkey, err)
		}
		accounts[pubkey] = data
	}

	return Snapshot{
		Slot:        w.Slot,
		BlockHeight: w.BlockHeight,
		BlockTime:   w.BlockTime,
		ProgramData: programData,
		Accounts:    accounts,
	}, nil
}

// NewStore builds a pubkeyset.Store seeded with every account in the
// snapshot.
func (s Snapshot) NewStore() *pubkeyset.Store {
	store := pubkeyset.New()
	for pubkey, data := range s.Accounts {
		store.Put(pubkey, data)
	}
	return store
}
