package replay

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/solana-zh/whirlpool-archive/pkg/accounts"
	"github.com/solana-zh/whirlpool-archive/pkg/decimals"
	"github.com/solana-zh/whirlpool-archive/pkg/event"
	"github.com/solana-zh/whirlpool-archive/pkg/pubkeyset"
	"github.com/solana-zh/whirlpool-archive/pkg/txstream"
	"github.com/solana-zh/whirlpool-archive/pkg/whirlpoolerr"
)

func fakePubkey(b byte) solana.PublicKey {
	var raw [32]byte
	for i := range raw {
		raw[i] = b
	}
	return solana.PublicKeyFromBytes(raw[:])
}

func buildWhirlpoolBytes(feeRate uint16) []byte {
	buf := make([]byte, accounts.WhirlpoolSize)
	copy(buf[0:8], accounts.Discriminator(accounts.KindWhirlpool)[:])
	config := fakePubkey(0xAA)
	copy(buf[8:40], config[:])
	binary.LittleEndian.PutUint16(buf[45:47], feeRate)
	mintA, mintB := fakePubkey(0x01), fakePubkey(0x02)
	copy(buf[101:133], mintA[:])
	copy(buf[181:213], mintB[:])
	return buf
}

func gzipLine(t *testing.T, v any) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	enc, err := json.Marshal(v)
	require.NoError(t, err)
	_, err = gz.Write(append(enc, '\n'))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return &buf
}

func TestDriverRunProducesSetFeeRateEvent(t *testing.T) {
	store := pubkeyset.New()
	store.Put("poolA", buildWhirlpoolBytes(3000))

	block := txstream.Block{
		Slot:        1,
		BlockHeight: 1,
		BlockTime:   1_700_000_000,
		Transactions: []txstream.Transaction{
			{
				Signature: "sig1",
				Payer:     "payer1",
				Instructions: []txstream.Instruction{
					{Name: "SetFeeRate", PayloadJSON: `{"accounts":{"whirlpool":"poolA"},"args":{"feeRate":5000}}`},
				},
			},
		},
	}

	r, err := txstream.NewReader(gzipLine(t, block))
	require.NoError(t, err)
	defer r.Close()

	builder := event.NewBuilder(decimals.Table{})
	collaborator := NewPassthroughCollaborator(store)
	driver := NewDriver(store, collaborator, builder, zerolog.Nop())

	var got []BlockEvents
	err = driver.Run(r, func(b BlockEvents) error {
		got = append(got, b)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Transactions, 1)
	require.Len(t, got[0].Transactions[0].Events, 1)

	ev, ok := got[0].Transactions[0].Events[0].(event.PoolFeeRateUpdated)
	require.True(t, ok)
	require.EqualValues(t, 3000, ev.OldRate)
	require.EqualValues(t, 5000, ev.NewRate)
}

func TestDriverRunFailsFatalOnUnknownInstruction(t *testing.T) {
	store := pubkeyset.New()
	block := txstream.Block{
		Slot: 1,
		Transactions: []txstream.Transaction{
			{Signature: "sig1", Instructions: []txstream.Instruction{{Name: "NotReal", PayloadJSON: `{}`}}},
		},
	}
	r, err := txstream.NewReader(gzipLine(t, block))
	require.NoError(t, err)
	defer r.Close()

	builder := event.NewBuilder(decimals.Table{})
	driver := NewDriver(store, NewPassthroughCollaborator(store), builder, zerolog.Nop())

	err = driver.Run(r, func(BlockEvents) error { return nil })
	require.Error(t, err)
	var fatal *whirlpoolerr.FatalError
	require.True(t, errors.As(err, &fatal))
}
