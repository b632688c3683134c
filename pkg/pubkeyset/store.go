// Package pubkeyset implements the account store contract consumed by the
// replay driver and event builder: a mapping from base58 pubkey to account
// bytes, supporting get/put/delete and ordered traversal.
//
// The real replay engine (out of this package's scope) owns mutation; this
// package provides the in-memory store it is assumed to mutate, plus the
// pre-instruction snapshot capture used by EventBuilder.
package pubkeyset

import "sort"

// Store is an in-memory account store keyed by base58 pubkey string.
type Store struct {
	accounts map[string][]byte
}

// New returns an empty store.
func New() *Store {
	return &Store{accounts: make(map[string][]byte)}
}

// Get returns the bytes stored for pubkey and whether it was present.
func (s *Store) Get(pubkey string) ([]byte, bool) {
	b, ok := s.accounts[pubkey]
	return b, ok
}

// Put inserts or overwrites the bytes stored for pubkey.
func (s *Store) Put(pubkey string, data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	s.accounts[pubkey] = cp
}

// Delete removes pubkey from the store, if present.
func (s *Store) Delete(pubkey string) {
	delete(s.accounts, pubkey)
}

// Len returns the number of accounts currently held.
func (s *Store) Len() int {
	return len(s.accounts)
}

// Range calls fn for every account in ascending pubkey order, stopping early
// if fn returns false. Ordering is deterministic so OhlcvSeeder's traversal
// is reproducible across runs over the same snapshot.
func (s *Store) Range(fn func(pubkey string, data []byte) bool) {
	keys := make([]string, 0, len(s.accounts))
	for k := range s.accounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !fn(k, s.accounts[k]) {
			return
		}
	}
}

// Snapshot is an immutable pre-instruction capture of the accounts a
// WhirlpoolInstruction may read before mutation. It is owned by EventBuilder
// for the lifetime of one event-generation case and then discarded.
type Snapshot struct {
	pre    map[string][]byte
	touched map[string]struct{}
}

// NewSnapshot builds a pre-instruction snapshot by capturing the current
// bytes of every key in keys (keys absent from the store are simply omitted,
// mirroring an account that does not yet exist, e.g. a position being
// created by the instruction under replay).
func NewSnapshot(store *Store, keys []string) *Snapshot {
	snap := &Snapshot{
		pre:     make(map[string][]byte, len(keys)),
		touched: make(map[string]struct{}, len(keys)),
	}
	for _, k := range keys {
		snap.touched[k] = struct{}{}
		if b, ok := store.Get(k); ok {
			cp := make([]byte, len(b))
			copy(cp, b)
			snap.pre[k] = cp
		}
	}
	return snap
}

// Old returns the pre-replay bytes for pubkey, as captured before mutation.
func (s *Snapshot) Old(pubkey string) ([]byte, bool) {
	b, ok := s.pre[pubkey]
	return b, ok
}

// Touched reports whether pubkey was part of this snapshot's writable set.
func (s *Snapshot) Touched(pubkey string) bool {
	_, ok := s.touched[pubkey]
	return ok
}
