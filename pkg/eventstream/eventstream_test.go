package eventstream

import (
	"bytes"
	"io"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/solana-zh/whirlpool-archive/pkg/event"
	"github.com/solana-zh/whirlpool-archive/pkg/replay"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	traded := event.Traded{
		Type:            "Traded",
		Origin:          "Swap",
		Whirlpool:       "poolA",
		TokenAuthority:  "authority1",
		Direction:       event.AtoB,
		Mode:            event.ExactIn,
		OldSqrtPrice:    event.NewU128FromBig(big.NewInt(1 << 62)),
		NewSqrtPrice:    event.NewU128FromBig(big.NewInt((1 << 62) - 1)),
		OldTickIndex:    10,
		NewTickIndex:    9,
		OldDecimalPrice: event.NewPrice(decimalFromString(t, "1.000000000e0")),
		NewDecimalPrice: event.NewPrice(decimalFromString(t, "9.999000000e-1")),
		FeeRate:         3000,
		ProtocolFeeRate: 300,
		TransferIn:      event.TransferInfo{Mint: "mintA", Amount: 1_000_000, Decimals: 6},
		TransferOut:     event.TransferInfo{Mint: "mintB", Amount: 999_000, Decimals: 6},
	}

	block := replay.BlockEvents{
		Slot:        100,
		BlockHeight: 90,
		BlockTime:   1_700_000_000,
		Transactions: []replay.TxEvents{
			{Signature: "sig1", Payer: "payer1", Events: []event.Event{&traded}},
		},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteBlock(block))
	require.NoError(t, w.Close())

	r, err := NewReader(&buf)
	require.NoError(t, err)
	defer r.Close()

	got, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, block.Slot, got.Slot)
	require.Equal(t, block.BlockHeight, got.BlockHeight)
	require.Equal(t, block.BlockTime, got.BlockTime)
	require.Len(t, got.Transactions, 1)
	require.Equal(t, "sig1", got.Transactions[0].Signature)

	decoded, err := got.Transactions[0].Decode()
	require.NoError(t, err)
	require.Len(t, decoded.Events, 1)

	roundTripped, ok := decoded.Events[0].(*event.Traded)
	require.True(t, ok)
	require.Equal(t, traded.Whirlpool, roundTripped.Whirlpool)
	require.Equal(t, traded.Direction, roundTripped.Direction)
	require.Equal(t, traded.TransferIn.Amount, roundTripped.TransferIn.Amount)
	require.Zero(t, traded.OldSqrtPrice.Cmp(&roundTripped.OldSqrtPrice.Int))
	require.True(t, traded.OldDecimalPrice.Decimal.Equal(roundTripped.OldDecimalPrice.Decimal))

	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}
