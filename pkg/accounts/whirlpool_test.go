package accounts

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

// fakePubkey builds a deterministic 32-byte public key filled with b, for
// tests that need distinguishable but arbitrary keys.
func fakePubkey(b byte) solana.PublicKey {
	var raw [32]byte
	for i := range raw {
		raw[i] = b
	}
	return solana.PublicKeyFromBytes(raw[:])
}

// buildWhirlpoolBytes lays out a minimal but fully-sized Whirlpool account
// buffer with a handful of fields set to known values, matching
// DecodeWhirlpool's field offsets exactly.
func buildWhirlpoolBytes(t *testing.T, tickSpacing uint16, feeRate, protocolFeeRate uint16, sqrtPriceLo uint64, mintA, mintB solana.PublicKey) []byte {
	t.Helper()
	buf := make([]byte, WhirlpoolSize)
	copy(buf[0:8], Discriminator(KindWhirlpool)[:])

	config := fakePubkey(0xAA)
	copy(buf[8:40], config[:])
	buf[40] = 1 // bump

	binary.LittleEndian.PutUint16(buf[41:43], tickSpacing)
	binary.LittleEndian.PutUint16(buf[45:47], feeRate)
	binary.LittleEndian.PutUint16(buf[47:49], protocolFeeRate)
	binary.LittleEndian.PutUint64(buf[65:73], sqrtPriceLo) // SqrtPrice low 8 bytes

	copy(buf[101:133], mintA[:])
	copy(buf[181:213], mintB[:])
	return buf
}

func TestIdentifyKindAndDecodeWhirlpool(t *testing.T) {
	mintA := fakePubkey(0x01)
	mintB := fakePubkey(0x02)
	data := buildWhirlpoolBytes(t, 64, 3000, 300, 12345, mintA, mintB)

	kind, ok := IdentifyKind(data)
	require.True(t, ok)
	require.Equal(t, KindWhirlpool, kind)

	pool, err := DecodeWhirlpool(data)
	require.NoError(t, err)
	require.EqualValues(t, 64, pool.TickSpacing)
	require.EqualValues(t, 3000, pool.FeeRate)
	require.EqualValues(t, 300, pool.ProtocolFeeRate)
	require.EqualValues(t, 12345, pool.SqrtPrice.Lo)
	require.Equal(t, mintA.String(), pool.TokenMintA.String())
	require.Equal(t, mintB.String(), pool.TokenMintB.String())
}

func TestIdentifyKindRejectsTooShortData(t *testing.T) {
	_, ok := IdentifyKind([]byte{1, 2, 3})
	require.False(t, ok)
}

func TestIdentifyKindRejectsUnknownDiscriminator(t *testing.T) {
	data := make([]byte, 16)
	_, ok := IdentifyKind(data)
	require.False(t, ok)
}

func TestDecodeWhirlpoolRejectsShortBuffer(t *testing.T) {
	_, err := DecodeWhirlpool(make([]byte, 10))
	require.Error(t, err)
}
