package event

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/solana-zh/whirlpool-archive/pkg/accounts"
	"github.com/solana-zh/whirlpool-archive/pkg/decimals"
	"github.com/solana-zh/whirlpool-archive/pkg/instruction"
	"github.com/solana-zh/whirlpool-archive/pkg/pubkeyset"
)

func fakePubkey(b byte) solana.PublicKey {
	var raw [32]byte
	for i := range raw {
		raw[i] = b
	}
	return solana.PublicKeyFromBytes(raw[:])
}

func buildWhirlpoolBytes(sqrtPriceLo uint64, tickIndex int32, feeRate, protocolFeeRate uint16, mintA, mintB solana.PublicKey) []byte {
	buf := make([]byte, accounts.WhirlpoolSize)
	copy(buf[0:8], accounts.Discriminator(accounts.KindWhirlpool)[:])
	config := fakePubkey(0xAA)
	copy(buf[8:40], config[:])
	binary.LittleEndian.PutUint16(buf[45:47], feeRate)
	binary.LittleEndian.PutUint16(buf[47:49], protocolFeeRate)
	binary.LittleEndian.PutUint64(buf[65:73], sqrtPriceLo)
	binary.LittleEndian.PutUint32(buf[81:85], uint32(tickIndex))
	copy(buf[101:133], mintA[:])
	copy(buf[181:213], mintB[:])
	return buf
}

func buildPositionBytes(whirlpool solana.PublicKey, tickLower, tickUpper int32) []byte {
	buf := make([]byte, accounts.PositionSize)
	copy(buf[0:8], []byte{0, 0, 0, 0, 0, 0, 0, 0})
	copy(buf[8:40], whirlpool[:])
	binary.LittleEndian.PutUint32(buf[88:92], uint32(tickLower))
	binary.LittleEndian.PutUint32(buf[92:96], uint32(tickUpper))
	return buf
}

func newStoreAndSnap(pubkey string, oldData, newData []byte) (*pubkeyset.Store, *pubkeyset.Snapshot) {
	store := pubkeyset.New()
	store.Put(pubkey, oldData)
	snap := pubkeyset.NewSnapshot(store, []string{pubkey})
	store.Put(pubkey, newData)
	return store, snap
}

func TestBuildSwapV1ProducesTradedEvent(t *testing.T) {
	mintA, mintB := fakePubkey(0x01), fakePubkey(0x02)
	old := buildWhirlpoolBytes(1<<63, 0, 3000, 300, mintA, mintB)
	neu := buildWhirlpoolBytes(1<<62, -10, 3000, 300, mintA, mintB)
	store, snap := newStoreAndSnap("poolA", old, neu)

	b := NewBuilder(decimals.Table{mintA.String(): 6, mintB.String(): 9})
	inst := instruction.SwapInstruction{
		Accounts:        instruction.SwapAccounts{Whirlpool: "poolA", TokenAuthority: "authority1"},
		Args:            instruction.SwapArgs{Amount: 1_000_000, AToB: true, AmountSpecifiedIsInput: true},
		TransferAmount0: 1_000_000,
		TransferAmount1: 999_000,
	}

	events, err := b.Build(inst, store, snap)
	require.NoError(t, err)
	require.Len(t, events, 1)

	traded, ok := events[0].(Traded)
	require.True(t, ok)
	require.Equal(t, "Swap", traded.Origin)
	require.Equal(t, AtoB, traded.Direction)
	require.Equal(t, ExactIn, traded.Mode)
	require.Equal(t, mintA.String(), traded.TransferIn.Mint)
	require.EqualValues(t, 1_000_000, traded.TransferIn.Amount)
	require.EqualValues(t, 999_000, traded.TransferOut.Amount)
	require.EqualValues(t, -10, traded.NewTickIndex)
}

func TestBuildSwapFailsWhenDecimalsMissing(t *testing.T) {
	mintA, mintB := fakePubkey(0x01), fakePubkey(0x02)
	data := buildWhirlpoolBytes(1<<63, 0, 3000, 300, mintA, mintB)
	store, snap := newStoreAndSnap("poolA", data, data)

	b := NewBuilder(decimals.Table{})
	inst := instruction.SwapInstruction{
		Accounts: instruction.SwapAccounts{Whirlpool: "poolA"},
		Args:     instruction.SwapArgs{AToB: true, AmountSpecifiedIsInput: true},
	}
	_, err := b.Build(inst, store, snap)
	require.Error(t, err)
}

func TestBuildTwoHopSwapV2SharesMiddleTransfer(t *testing.T) {
	mintA, mintB, mintC := fakePubkey(0x01), fakePubkey(0x02), fakePubkey(0x03)
	oldOne := buildWhirlpoolBytes(1<<63, 0, 3000, 300, mintA, mintB)
	newOne := buildWhirlpoolBytes(1<<62, -5, 3000, 300, mintA, mintB)
	oldTwo := buildWhirlpoolBytes(1<<63, 0, 1000, 200, mintB, mintC)
	newTwo := buildWhirlpoolBytes(1<<60, 5, 1000, 200, mintB, mintC)

	store := pubkeyset.New()
	store.Put("pool1", oldOne)
	store.Put("pool2", oldTwo)
	snap := pubkeyset.NewSnapshot(store, []string{"pool1", "pool2"})
	store.Put("pool1", newOne)
	store.Put("pool2", newTwo)

	b := NewBuilder(decimals.Table{mintA.String(): 6, mintB.String(): 6, mintC.String(): 9})
	inst := instruction.TwoHopSwapInstruction{
		Accounts: instruction.TwoHopSwapAccounts{WhirlpoolOne: "pool1", WhirlpoolTwo: "pool2", TokenAuthority: "authority1"},
		Args:     instruction.TwoHopSwapArgs{AmountSpecifiedIsInput: true, AToBOne: true, AToBTwo: true},
		IsV2:     true,
		Transfer0: instruction.TransferInfo{Amount: 1000},
		Transfer1: instruction.TransferInfo{Amount: 990},
		Transfer2: instruction.TransferInfo{Amount: 980},
	}

	events, err := b.Build(inst, store, snap)
	require.NoError(t, err)
	require.Len(t, events, 2)

	hop1 := events[0].(Traded)
	hop2 := events[1].(Traded)
	require.EqualValues(t, 990, hop1.TransferOut.Amount)
	require.EqualValues(t, 990, hop2.TransferIn.Amount, "hop two's input must equal hop one's output (shared middle transfer)")
}

func TestBuildInitializePoolV2ResolvesTokenPrograms(t *testing.T) {
	mintA, mintB := fakePubkey(0x01), fakePubkey(0x02)
	data := buildWhirlpoolBytes(1<<63, 0, 3000, 300, mintA, mintB)
	store := pubkeyset.New()
	store.Put("poolA", data)

	b := NewBuilder(decimals.Table{mintA.String(): 6, mintB.String(): 9})
	inst := instruction.InitializePoolInstruction{
		Accounts: instruction.InitializePoolAccounts{
			Whirlpool:  "poolA",
			TokenMintA: mintA.String(),
			TokenMintB: mintB.String(),
		},
		Args: instruction.InitializePoolArgs{
			TickSpacing:      64,
			InitialSqrtPrice: instruction.U128{},
		},
		IsV2:          true,
		TokenProgramA: "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA",
		TokenProgramB: "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb",
	}

	events, err := b.Build(inst, store, nil)
	require.NoError(t, err)
	require.Len(t, events, 1)

	pi := events[0].(PoolInitialized)
	require.Equal(t, TokenProgramToken, pi.TokenProgramA)
	require.Equal(t, TokenProgramToken2022, pi.TokenProgramB)
}

func TestBuildInitializePoolRejectsUnknownTokenProgram(t *testing.T) {
	mintA, mintB := fakePubkey(0x01), fakePubkey(0x02)
	data := buildWhirlpoolBytes(1<<63, 0, 3000, 300, mintA, mintB)
	store := pubkeyset.New()
	store.Put("poolA", data)

	b := NewBuilder(decimals.Table{mintA.String(): 6, mintB.String(): 9})
	inst := instruction.InitializePoolInstruction{
		Accounts:      instruction.InitializePoolAccounts{Whirlpool: "poolA", TokenMintA: mintA.String(), TokenMintB: mintB.String()},
		IsV2:          true,
		TokenProgramA: "NotARealTokenProgramId",
		TokenProgramB: "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb",
	}
	_, err := b.Build(inst, store, nil)
	require.Error(t, err)
}

func TestBuildClosePositionFallsBackToPositionWhirlpool(t *testing.T) {
	whirlpool := fakePubkey(0xFE)
	posData := buildPositionBytes(whirlpool, -100, 100)
	store, snap := newStoreAndSnap("positionA", posData, posData)

	b := NewBuilder(decimals.Table{})
	inst := instruction.ClosePositionInstruction{
		Name:     instruction.NameClosePosition,
		Accounts: instruction.PositionAccounts{Position: "positionA"},
	}

	events, err := b.Build(inst, store, snap)
	require.NoError(t, err)
	require.Len(t, events, 1)

	closed := events[0].(PositionClosed)
	require.Equal(t, whirlpool.String(), closed.Whirlpool)
	require.EqualValues(t, -100, closed.TickLowerIndex)
	require.EqualValues(t, 100, closed.TickUpperIndex)
}

func TestBuildSetFeeRateReadsOldRateFromSnapshot(t *testing.T) {
	mintA, mintB := fakePubkey(0x01), fakePubkey(0x02)
	old := buildWhirlpoolBytes(1<<63, 0, 3000, 300, mintA, mintB)
	store, snap := newStoreAndSnap("poolA", old, old)

	b := NewBuilder(decimals.Table{})
	inst := instruction.SetFeeRateInstruction{
		Accounts: instruction.FeeRateAccounts{Whirlpool: "poolA"},
		Args:     instruction.SetFeeRateArgs{FeeRate: 5000},
	}
	events, err := b.Build(inst, store, snap)
	require.NoError(t, err)

	ev := events[0].(PoolFeeRateUpdated)
	require.EqualValues(t, 3000, ev.OldRate)
	require.EqualValues(t, 5000, ev.NewRate)
}

func TestBuildReturnsErrorForUnknownInstructionType(t *testing.T) {
	b := NewBuilder(decimals.Table{})
	_, err := b.Build(struct{ instruction.DecodedInstruction }{}, pubkeyset.New(), nil)
	require.Error(t, err)
}
