package pubkeyset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutGetDeleteRoundTrip(t *testing.T) {
	s := New()
	require.Equal(t, 0, s.Len())

	s.Put("poolA", []byte{1, 2, 3})
	require.Equal(t, 1, s.Len())

	got, ok := s.Get("poolA")
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, got)

	s.Delete("poolA")
	require.Equal(t, 0, s.Len())
	_, ok = s.Get("poolA")
	require.False(t, ok)
}

func TestPutCopiesInputBytes(t *testing.T) {
	s := New()
	data := []byte{1, 2, 3}
	s.Put("poolA", data)
	data[0] = 99

	got, _ := s.Get("poolA")
	require.EqualValues(t, 1, got[0], "Put must not alias the caller's backing array")
}

func TestRangeVisitsKeysInAscendingOrder(t *testing.T) {
	s := New()
	s.Put("poolC", []byte{3})
	s.Put("poolA", []byte{1})
	s.Put("poolB", []byte{2})

	var seen []string
	s.Range(func(pubkey string, data []byte) bool {
		seen = append(seen, pubkey)
		return true
	})
	require.Equal(t, []string{"poolA", "poolB", "poolC"}, seen)
}

func TestRangeStopsEarlyWhenFnReturnsFalse(t *testing.T) {
	s := New()
	s.Put("poolA", []byte{1})
	s.Put("poolB", []byte{2})
	s.Put("poolC", []byte{3})

	var seen []string
	s.Range(func(pubkey string, data []byte) bool {
		seen = append(seen, pubkey)
		return false
	})
	require.Len(t, seen, 1)
}

func TestNewSnapshotCapturesOnlyRequestedKeysPresentInStore(t *testing.T) {
	s := New()
	s.Put("poolA", []byte{1, 2, 3})

	snap := NewSnapshot(s, []string{"poolA", "poolMissing"})

	old, ok := snap.Old("poolA")
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, old)

	_, ok = snap.Old("poolMissing")
	require.False(t, ok)

	require.True(t, snap.Touched("poolA"))
	require.True(t, snap.Touched("poolMissing"))
	require.False(t, snap.Touched("poolUnrelated"))
}

func TestNewSnapshotIsIndependentOfLaterStoreMutation(t *testing.T) {
	s := New()
	s.Put("poolA", []byte{1, 2, 3})

	snap := NewSnapshot(s, []string{"poolA"})
	s.Put("poolA", []byte{9, 9, 9})

	old, ok := snap.Old("poolA")
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, old, "snapshot must not observe later mutation")
}
