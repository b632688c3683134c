package ohlcv

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/solana-zh/whirlpool-archive/pkg/accounts"
	"github.com/solana-zh/whirlpool-archive/pkg/decimals"
	"github.com/solana-zh/whirlpool-archive/pkg/pubkeyset"
)

func fakePubkey(b byte) solana.PublicKey {
	var raw [32]byte
	for i := range raw {
		raw[i] = b
	}
	return solana.PublicKeyFromBytes(raw[:])
}

func buildWhirlpoolBytes(tickSpacing uint16, mintA, mintB solana.PublicKey) []byte {
	buf := make([]byte, accounts.WhirlpoolSize)
	copy(buf[0:8], accounts.Discriminator(accounts.KindWhirlpool)[:])

	config := fakePubkey(0xAA)
	copy(buf[8:40], config[:])
	binary.LittleEndian.PutUint16(buf[41:43], tickSpacing)
	binary.LittleEndian.PutUint64(buf[65:73], 1<<63) // arbitrary non-zero sqrt_price low bytes
	copy(buf[101:133], mintA[:])
	copy(buf[181:213], mintB[:])
	return buf
}

func TestSeedBuildsOneRecordPerWhirlpoolAccount(t *testing.T) {
	mintA := fakePubkey(0x01)
	mintB := fakePubkey(0x02)

	store := pubkeyset.New()
	store.Put("poolX", buildWhirlpoolBytes(64, mintA, mintB))
	store.Put("not-a-pool", []byte{1, 2, 3, 4})

	decimalsTable := decimals.Table{mintA.String(): 6, mintB.String(): 9}

	seed, err := Seed(store, decimalsTable, 1_700_000_050)
	require.NoError(t, err)
	require.Len(t, seed, 1)

	rec, ok := seed["poolX"]
	require.True(t, ok)
	require.Equal(t, "e", rec.InitialState.Tag)
	require.NotNil(t, rec.InitialState.PreviousCloseSqrtPrice)
	require.EqualValues(t, 6, rec.TokenA.Decimals)
	require.EqualValues(t, 9, rec.TokenB.Decimals)
	require.Equal(t, dailyBucketTimestamp(1_700_000_050), rec.Daily.Timestamp)
}

func TestSeedFailsOnMissingDecimalsEntry(t *testing.T) {
	mintA := fakePubkey(0x01)
	mintB := fakePubkey(0x02)

	store := pubkeyset.New()
	store.Put("poolX", buildWhirlpoolBytes(64, mintA, mintB))

	_, err := Seed(store, decimals.Table{}, 0)
	require.Error(t, err)
}

func TestDailyBucketTimestampIsNextUTCMidnight(t *testing.T) {
	require.EqualValues(t, 86400, dailyBucketTimestamp(0))
	require.EqualValues(t, 86400, dailyBucketTimestamp(86399))
	require.EqualValues(t, 172800, dailyBucketTimestamp(86400))
}
