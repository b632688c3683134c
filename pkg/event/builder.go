package event

import (
	"fmt"
	"math/big"

	"github.com/solana-zh/whirlpool-archive/pkg/accounts"
	"github.com/solana-zh/whirlpool-archive/pkg/decimals"
	"github.com/solana-zh/whirlpool-archive/pkg/instruction"
	"github.com/solana-zh/whirlpool-archive/pkg/pricemath"
	"github.com/solana-zh/whirlpool-archive/pkg/pubkeyset"
)

// The two SPL token program ids a V2 instruction's token_program account may
// name: any other id is a fatal decode error.
const (
	tokenProgramID     = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	token2022ProgramID = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"
)

func resolveTokenProgram(id string) (TokenProgramKind, error) {
	switch id {
	case tokenProgramID:
		return TokenProgramToken, nil
	case token2022ProgramID:
		return TokenProgramToken2022, nil
	default:
		return "", fmt.Errorf("event: unknown token program id %q", id)
	}
}

// Builder implements the EventBuilder collaborator: one case per
// AMM instruction variant, reading the pre-snapshot for "old" views and the
// live store for "new" views.
type Builder struct {
	Decimals decimals.Table
}

// NewBuilder constructs a Builder over the given mint decimals table.
func NewBuilder(decimalsTable decimals.Table) *Builder {
	return &Builder{Decimals: decimalsTable}
}

// Build turns one decoded instruction into zero or more WhirlpoolEvents.
func (b *Builder) Build(decoded instruction.DecodedInstruction, store *pubkeyset.Store, snap *pubkeyset.Snapshot) ([]Event, error) {
	switch inst := decoded.(type) {
	case instruction.ProgramDeployInstruction:
		return []Event{ProgramDeployed{Type: "ProgramDeployed", Origin: "program-deploy"}}, nil
	case instruction.SwapInstruction:
		return b.buildSwap(inst, store, snap)
	case instruction.TwoHopSwapInstruction:
		return b.buildTwoHopSwap(inst, store, snap)
	case instruction.LiquidityInstruction:
		return b.buildLiquidity(inst, store, snap)
	case instruction.AdminIncreaseLiquidityInstruction:
		return b.buildAdminIncreaseLiquidity(inst, store, snap)
	case instruction.InitializePoolInstruction:
		return b.buildInitializePool(inst, store)
	case instruction.SetFeeRateInstruction:
		return b.buildSetFeeRate(inst, snap)
	case instruction.SetProtocolFeeRateInstruction:
		return b.buildSetProtocolFeeRate(inst, snap)
	case instruction.InitializeRewardInstruction:
		return b.buildInitializeReward(inst, store)
	case instruction.SetRewardEmissionsInstruction:
		return b.buildSetRewardEmissions(inst, snap, store)
	case instruction.SetRewardAuthorityInstruction:
		return b.buildSetRewardAuthority(inst, snap)
	case instruction.OpenPositionInstruction:
		return b.buildOpenPosition(inst, store)
	case instruction.ClosePositionInstruction:
		return b.buildClosePosition(inst, snap)
	case instruction.CollectFeesInstruction:
		return b.buildCollectFees(inst, snap)
	case instruction.CollectRewardInstruction:
		return b.buildCollectReward(inst, snap, store)
	case instruction.CollectProtocolFeesInstruction:
		return b.buildCollectProtocolFees(inst, snap)
	case instruction.UpdateFeesAndRewardsInstruction:
		return []Event{PositionHarvestUpdated{
			Type:      "PositionHarvestUpdated",
			Origin:    string(inst.InstructionName()),
			Whirlpool: inst.Accounts.Whirlpool,
			Position:  inst.Accounts.Position,
		}}, nil
	case instruction.PositionBundleInstruction:
		return b.buildPositionBundle(inst)
	case instruction.InitializeTickArrayInstruction:
		return []Event{TickArrayInitialized{
			Type:           "TickArrayInitialized",
			Origin:         string(inst.InstructionName()),
			Whirlpool:      inst.Accounts.Whirlpool,
			StartTickIndex: inst.Args.StartTickIndex,
			TickArray:      inst.Accounts.TickArray,
		}}, nil
	case instruction.InitializeConfigInstruction:
		return b.buildInitializeConfig(inst)
	case instruction.ConfigUpdateInstruction:
		return b.buildConfigUpdate(inst, snap)
	case instruction.InitializeConfigExtensionInstruction:
		return b.buildInitializeConfigExtension(inst, store)
	case instruction.ConfigExtensionUpdateInstruction:
		return b.buildConfigExtensionUpdate(inst, snap)
	case instruction.InitializeFeeTierInstruction:
		return b.buildInitializeFeeTier(inst)
	case instruction.SetDefaultFeeRateInstruction:
		return b.buildSetDefaultFeeRate(inst, snap)
	case instruction.TokenBadgeInstruction:
		return b.buildTokenBadge(inst, store)
	default:
		return nil, fmt.Errorf("event: no builder case for instruction type %T", decoded)
	}
}

// ---- account view helpers ----

func oldWhirlpool(snap *pubkeyset.Snapshot, pubkey string) (*accounts.Whirlpool, error) {
	data, ok := snap.Old(pubkey)
	if !ok {
		return nil, fmt.Errorf("event: missing pre-snapshot whirlpool %s", pubkey)
	}
	p, err := accounts.DecodeWhirlpool(data)
	if err != nil {
		return nil, fmt.Errorf("event: decode old whirlpool %s: %w", pubkey, err)
	}
	return p, nil
}

func newWhirlpool(store *pubkeyset.Store, pubkey string) (*accounts.Whirlpool, error) {
	data, ok := store.Get(pubkey)
	if !ok {
		return nil, fmt.Errorf("event: missing post-replay whirlpool %s", pubkey)
	}
	p, err := accounts.DecodeWhirlpool(data)
	if err != nil {
		return nil, fmt.Errorf("event: decode new whirlpool %s: %w", pubkey, err)
	}
	return p, nil
}

func oldPosition(snap *pubkeyset.Snapshot, pubkey string) (*accounts.Position, error) {
	data, ok := snap.Old(pubkey)
	if !ok {
		return nil, fmt.Errorf("event: missing pre-snapshot position %s", pubkey)
	}
	p, err := accounts.DecodePosition(data)
	if err != nil {
		return nil, fmt.Errorf("event: decode old position %s: %w", pubkey, err)
	}
	return p, nil
}

func newPosition(store *pubkeyset.Store, pubkey string) (*accounts.Position, error) {
	data, ok := store.Get(pubkey)
	if !ok {
		return nil, fmt.Errorf("event: missing post-replay position %s", pubkey)
	}
	p, err := accounts.DecodePosition(data)
	if err != nil {
		return nil, fmt.Errorf("event: decode new position %s: %w", pubkey, err)
	}
	return p, nil
}

func oldConfig(snap *pubkeyset.Snapshot, pubkey string) (*accounts.Config, error) {
	data, ok := snap.Old(pubkey)
	if !ok {
		return nil, fmt.Errorf("event: missing pre-snapshot config %s", pubkey)
	}
	return accounts.DecodeConfig(data)
}

func newConfig(store *pubkeyset.Store, pubkey string) (*accounts.Config, error) {
	data, ok := store.Get(pubkey)
	if !ok {
		return nil, fmt.Errorf("event: missing post-replay config %s", pubkey)
	}
	return accounts.DecodeConfig(data)
}

func oldConfigExtension(snap *pubkeyset.Snapshot, pubkey string) (*accounts.ConfigExtension, error) {
	data, ok := snap.Old(pubkey)
	if !ok {
		return nil, fmt.Errorf("event: missing pre-snapshot config extension %s", pubkey)
	}
	return accounts.DecodeConfigExtension(data)
}

func newConfigExtension(store *pubkeyset.Store, pubkey string) (*accounts.ConfigExtension, error) {
	data, ok := store.Get(pubkey)
	if !ok {
		return nil, fmt.Errorf("event: missing post-replay config extension %s", pubkey)
	}
	return accounts.DecodeConfigExtension(data)
}

func newFeeTier(store *pubkeyset.Store, pubkey string) (*accounts.FeeTier, error) {
	data, ok := store.Get(pubkey)
	if !ok {
		return nil, fmt.Errorf("event: missing post-replay fee tier %s", pubkey)
	}
	return accounts.DecodeFeeTier(data)
}

func oldFeeTier(snap *pubkeyset.Snapshot, pubkey string) (*accounts.FeeTier, error) {
	data, ok := snap.Old(pubkey)
	if !ok {
		return nil, fmt.Errorf("event: missing pre-snapshot fee tier %s", pubkey)
	}
	return accounts.DecodeFeeTier(data)
}

func newTokenBadge(store *pubkeyset.Store, pubkey string) (*accounts.TokenBadge, error) {
	data, ok := store.Get(pubkey)
	if !ok {
		return nil, fmt.Errorf("event: missing post-replay token badge %s", pubkey)
	}
	return accounts.DecodeTokenBadge(data)
}

func u128(v interface{ Big() *big.Int }) U128 {
	return NewU128FromBig(v.Big())
}

func toTransferInfo(t instruction.TransferInfo, mint string, dec uint8) TransferInfo {
	out := TransferInfo{Mint: mint, Amount: U64(t.Amount), Decimals: dec}
	if t.HasTransferFee {
		bps := t.TransferFeeBps
		max := U64(t.TransferFeeMax)
		out.TransferFeeBps = &bps
		out.TransferFeeMax = &max
	}
	return out
}

// ---- Swap family ----

func (b *Builder) buildSwap(inst instruction.SwapInstruction, store *pubkeyset.Store, snap *pubkeyset.Snapshot) ([]Event, error) {
	pool := inst.Accounts.Whirlpool
	old, err := oldWhirlpool(snap, pool)
	if err != nil {
		return nil, err
	}
	neu, err := newWhirlpool(store, pool)
	if err != nil {
		return nil, err
	}

	decA, err := b.Decimals.MustGet(old.TokenMintA.String())
	if err != nil {
		return nil, err
	}
	decB, err := b.Decimals.MustGet(old.TokenMintB.String())
	if err != nil {
		return nil, err
	}

	dir := AtoB
	if !inst.Args.AToB {
		dir = BtoA
	}
	mode := ExactIn
	if !inst.Args.AmountSpecifiedIsInput {
		mode = ExactOut
	}

	mintIn, mintOut, decIn, decOut := old.TokenMintA.String(), old.TokenMintB.String(), decA, decB
	if dir == BtoA {
		mintIn, mintOut, decIn, decOut = old.TokenMintB.String(), old.TokenMintA.String(), decB, decA
	}

	var transferIn, transferOut TransferInfo
	if inst.IsV2 {
		transferIn = toTransferInfo(inst.TransferA, mintIn, decIn)
		transferOut = toTransferInfo(inst.TransferB, mintOut, decOut)
	} else {
		transferIn = TransferInfo{Mint: mintIn, Amount: U64(inst.TransferAmount0), Decimals: decIn}
		transferOut = TransferInfo{Mint: mintOut, Amount: U64(inst.TransferAmount1), Decimals: decOut}
	}

	return []Event{Traded{
		Type:            "Traded",
		Origin:          string(inst.InstructionName()),
		Whirlpool:       pool,
		TokenAuthority:  inst.Accounts.TokenAuthority,
		Direction:       dir,
		Mode:            mode,
		OldSqrtPrice:    u128(old.SqrtPrice),
		NewSqrtPrice:    u128(neu.SqrtPrice),
		OldTickIndex:    old.TickCurrentIndex,
		NewTickIndex:    neu.TickCurrentIndex,
		OldDecimalPrice: NewPrice(pricemath.DecimalPriceFromSqrtPrice(old.SqrtPrice, decA, decB)),
		NewDecimalPrice: NewPrice(pricemath.DecimalPriceFromSqrtPrice(neu.SqrtPrice, decA, decB)),
		FeeRate:         old.FeeRate,
		ProtocolFeeRate: old.ProtocolFeeRate,
		TransferIn:      transferIn,
		TransferOut:     transferOut,
	}}, nil
}

func (b *Builder) buildTwoHopSwap(inst instruction.TwoHopSwapInstruction, store *pubkeyset.Store, snap *pubkeyset.Snapshot) ([]Event, error) {
	hop := func(pool string, aToB bool, transferIn, transferOut instruction.TransferInfo, hasTyped bool) (Traded, error) {
		old, err := oldWhirlpool(snap, pool)
		if err != nil {
			return Traded{}, err
		}
		neu, err := newWhirlpool(store, pool)
		if err != nil {
			return Traded{}, err
		}
		decA, err := b.Decimals.MustGet(old.TokenMintA.String())
		if err != nil {
			return Traded{}, err
		}
		decB, err := b.Decimals.MustGet(old.TokenMintB.String())
		if err != nil {
			return Traded{}, err
		}
		dir := AtoB
		if !aToB {
			dir = BtoA
		}
		mode := ExactIn
		if !inst.Args.AmountSpecifiedIsInput {
			mode = ExactOut
		}
		mintIn, mintOut, decIn, decOut := old.TokenMintA.String(), old.TokenMintB.String(), decA, decB
		if dir == BtoA {
			mintIn, mintOut, decIn, decOut = old.TokenMintB.String(), old.TokenMintA.String(), decB, decA
		}
		var ti, to TransferInfo
		if hasTyped {
			ti = toTransferInfo(transferIn, mintIn, decIn)
			to = toTransferInfo(transferOut, mintOut, decOut)
		} else {
			ti = TransferInfo{Mint: mintIn, Amount: U64(transferIn.Amount), Decimals: decIn}
			to = TransferInfo{Mint: mintOut, Amount: U64(transferOut.Amount), Decimals: decOut}
		}
		return Traded{
			Type:            "Traded",
			Origin:          string(inst.InstructionName()),
			Whirlpool:       pool,
			TokenAuthority:  inst.Accounts.TokenAuthority,
			Direction:       dir,
			Mode:            mode,
			OldSqrtPrice:    u128(old.SqrtPrice),
			NewSqrtPrice:    u128(neu.SqrtPrice),
			OldTickIndex:    old.TickCurrentIndex,
			NewTickIndex:    neu.TickCurrentIndex,
			OldDecimalPrice: NewPrice(pricemath.DecimalPriceFromSqrtPrice(old.SqrtPrice, decA, decB)),
			NewDecimalPrice: NewPrice(pricemath.DecimalPriceFromSqrtPrice(neu.SqrtPrice, decA, decB)),
			FeeRate:         old.FeeRate,
			ProtocolFeeRate: old.ProtocolFeeRate,
			TransferIn:      ti,
			TransferOut:     to,
		}, nil
	}

	var in1, out1, in2, out2 instruction.TransferInfo
	if inst.IsV2 {
		// transfer_1 is shared: hop one's out and hop two's in, reused
		// verbatim rather than split or duplicated.
		in1, out1 = inst.Transfer0, inst.Transfer1
		in2, out2 = inst.Transfer1, inst.Transfer2
	} else {
		in1, out1 = instruction.TransferInfo{Amount: inst.TransferAmount0}, instruction.TransferInfo{Amount: inst.TransferAmount1}
		in2, out2 = instruction.TransferInfo{Amount: inst.TransferAmount2}, instruction.TransferInfo{Amount: inst.TransferAmount3}
	}

	t1, err := hop(inst.Accounts.WhirlpoolOne, inst.Args.AToBOne, in1, out1, inst.IsV2)
	if err != nil {
		return nil, err
	}
	t2, err := hop(inst.Accounts.WhirlpoolTwo, inst.Args.AToBTwo, in2, out2, inst.IsV2)
	if err != nil {
		return nil, err
	}
	return []Event{t1, t2}, nil
}

// ---- Liquidity family ----

func (b *Builder) buildLiquidity(inst instruction.LiquidityInstruction, store *pubkeyset.Store, snap *pubkeyset.Snapshot) ([]Event, error) {
	pos := inst.Accounts.Position
	oldPos, err := oldPosition(snap, pos)
	if err != nil {
		return nil, err
	}
	newPos, err := newPosition(store, pos)
	if err != nil {
		return nil, err
	}

	pool := inst.Accounts.Whirlpool
	oldPool, err := oldWhirlpool(snap, pool)
	if err != nil {
		return nil, err
	}
	newPool, err := newWhirlpool(store, pool)
	if err != nil {
		return nil, err
	}

	decA, err := b.Decimals.MustGet(oldPool.TokenMintA.String())
	if err != nil {
		return nil, err
	}
	decB, err := b.Decimals.MustGet(oldPool.TokenMintB.String())
	if err != nil {
		return nil, err
	}

	var transferA, transferB TransferInfo
	if inst.IsV2 {
		transferA = toTransferInfo(inst.TransferA, oldPool.TokenMintA.String(), decA)
		transferB = toTransferInfo(inst.TransferB, oldPool.TokenMintB.String(), decB)
	} else {
		transferA = TransferInfo{Mint: oldPool.TokenMintA.String(), Amount: U64(inst.TransferA.Amount), Decimals: decA}
		transferB = TransferInfo{Mint: oldPool.TokenMintB.String(), Amount: U64(inst.TransferB.Amount), Decimals: decB}
	}

	payload := liquidityEvent{
		Origin:               string(inst.Name),
		Whirlpool:            pool,
		Position:             pos,
		LiquidityDelta:       NewU128FromBig(&inst.Args.LiquidityAmount.Int),
		TickLowerIndex:       oldPos.TickLowerIndex,
		TickUpperIndex:       oldPos.TickUpperIndex,
		OldPositionLiquidity: u128(oldPos.Liquidity),
		NewPositionLiquidity: u128(newPos.Liquidity),
		TransferA:            transferA,
		TransferB:            transferB,
		OldPoolLiquidity:     u128(oldPool.Liquidity),
		NewPoolLiquidity:     u128(newPool.Liquidity),
		PoolSqrtPrice:        u128(newPool.SqrtPrice),
		PoolTickIndex:        newPool.TickCurrentIndex,
	}

	switch inst.Name {
	case instruction.NameIncreaseLiquidity, instruction.NameIncreaseLiquidityV2:
		payload.Type = "LiquidityDeposited"
		return []Event{LiquidityDeposited(payload)}, nil
	default:
		payload.Type = "LiquidityWithdrawn"
		return []Event{LiquidityWithdrawn(payload)}, nil
	}
}

func (b *Builder) buildAdminIncreaseLiquidity(inst instruction.AdminIncreaseLiquidityInstruction, store *pubkeyset.Store, snap *pubkeyset.Snapshot) ([]Event, error) {
	pool := inst.Accounts.Whirlpool
	oldPool, err := oldWhirlpool(snap, pool)
	if err != nil {
		return nil, err
	}
	newPool, err := newWhirlpool(store, pool)
	if err != nil {
		return nil, err
	}
	return []Event{LiquidityPatched{
		Type:             "LiquidityPatched",
		Origin:           string(inst.InstructionName()),
		Whirlpool:        pool,
		LiquidityDelta:   NewU128FromBig(&inst.Args.LiquidityAmount.Int),
		OldPoolLiquidity: u128(oldPool.Liquidity),
		NewPoolLiquidity: u128(newPool.Liquidity),
	}}, nil
}

// ---- Pool lifecycle ----

func (b *Builder) buildInitializePool(inst instruction.InitializePoolInstruction, store *pubkeyset.Store) ([]Event, error) {
	pool := inst.Accounts.Whirlpool
	neu, err := newWhirlpool(store, pool)
	if err != nil {
		return nil, err
	}

	mintA, mintB := inst.Accounts.TokenMintA, inst.Accounts.TokenMintB
	decA, err := b.Decimals.MustGet(mintA)
	if err != nil {
		return nil, err
	}
	decB, err := b.Decimals.MustGet(mintB)
	if err != nil {
		return nil, err
	}

	tpA, tpB := TokenProgramToken, TokenProgramToken
	if inst.IsV2 {
		tpA, err = resolveTokenProgram(inst.TokenProgramA)
		if err != nil {
			return nil, err
		}
		tpB, err = resolveTokenProgram(inst.TokenProgramB)
		if err != nil {
			return nil, err
		}
	}

	return []Event{PoolInitialized{
		Type:             "PoolInitialized",
		Origin:           string(inst.InstructionName()),
		Whirlpool:        pool,
		TickSpacing:      inst.Args.TickSpacing,
		InitialSqrtPrice: NewU128FromBig(&inst.Args.InitialSqrtPrice.Int),
		CurrentTickIndex: neu.TickCurrentIndex,
		MintA:            mintA,
		MintB:            mintB,
		DecimalsA:        decA,
		DecimalsB:        decB,
		FeeRate:          neu.FeeRate,
		ProtocolFeeRate:  neu.ProtocolFeeRate,
		TokenProgramA:    tpA,
		TokenProgramB:    tpB,
	}}, nil
}

func (b *Builder) buildSetFeeRate(inst instruction.SetFeeRateInstruction, snap *pubkeyset.Snapshot) ([]Event, error) {
	old, err := oldWhirlpool(snap, inst.Accounts.Whirlpool)
	if err != nil {
		return nil, err
	}
	return []Event{PoolFeeRateUpdated{
		Type:      "PoolFeeRateUpdated",
		Origin:    string(inst.InstructionName()),
		Whirlpool: inst.Accounts.Whirlpool,
		OldRate:   old.FeeRate,
		NewRate:   inst.Args.FeeRate,
	}}, nil
}

func (b *Builder) buildSetProtocolFeeRate(inst instruction.SetProtocolFeeRateInstruction, snap *pubkeyset.Snapshot) ([]Event, error) {
	old, err := oldWhirlpool(snap, inst.Accounts.Whirlpool)
	if err != nil {
		return nil, err
	}
	return []Event{PoolProtocolFeeRateUpdated{
		Type:      "PoolProtocolFeeRateUpdated",
		Origin:    string(inst.InstructionName()),
		Whirlpool: inst.Accounts.Whirlpool,
		OldRate:   old.ProtocolFeeRate,
		NewRate:   inst.Args.ProtocolFeeRate,
	}}, nil
}

// ---- Rewards ----

func (b *Builder) buildInitializeReward(inst instruction.InitializeRewardInstruction, store *pubkeyset.Store) ([]Event, error) {
	tp := TokenProgramToken
	var err error
	if inst.IsV2 {
		tp, err = resolveTokenProgram(inst.TokenProgram)
		if err != nil {
			return nil, err
		}
	}
	dec, err := b.Decimals.MustGet(inst.Accounts.RewardMint)
	if err != nil {
		return nil, err
	}
	return []Event{RewardInitialized{
		Type:         "RewardInitialized",
		Origin:       string(inst.InstructionName()),
		Whirlpool:    inst.Accounts.Whirlpool,
		RewardIndex:  inst.Args.RewardIndex,
		Mint:         inst.Accounts.RewardMint,
		Decimals:     dec,
		TokenProgram: tp,
	}}, nil
}

func (b *Builder) buildSetRewardEmissions(inst instruction.SetRewardEmissionsInstruction, snap *pubkeyset.Snapshot, store *pubkeyset.Store) ([]Event, error) {
	old, err := oldWhirlpool(snap, inst.Accounts.Whirlpool)
	if err != nil {
		return nil, err
	}
	idx := inst.Args.RewardIndex
	if int(idx) >= len(old.RewardInfos) {
		return nil, fmt.Errorf("event: reward index %d out of range", idx)
	}
	return []Event{RewardEmissionsUpdated{
		Type:         "RewardEmissionsUpdated",
		Origin:       string(inst.InstructionName()),
		Whirlpool:    inst.Accounts.Whirlpool,
		RewardIndex:  idx,
		OldEmissions: u128(old.RewardInfos[idx].EmissionsPerSecondX64),
		NewEmissions: NewU128FromBig(&inst.Args.EmissionsPerSecondX64.Int),
	}}, nil
}

func (b *Builder) buildSetRewardAuthority(inst instruction.SetRewardAuthorityInstruction, snap *pubkeyset.Snapshot) ([]Event, error) {
	old, err := oldWhirlpool(snap, inst.Accounts.Whirlpool)
	if err != nil {
		return nil, err
	}
	idx := inst.Args.RewardIndex
	if int(idx) >= len(old.RewardInfos) {
		return nil, fmt.Errorf("event: reward index %d out of range", idx)
	}
	return []Event{RewardAuthorityUpdated{
		Type:         "RewardAuthorityUpdated",
		Origin:       string(inst.InstructionName()),
		Whirlpool:    inst.Accounts.Whirlpool,
		RewardIndex:  idx,
		OldAuthority: old.RewardInfos[idx].Authority.String(),
		NewAuthority: inst.Accounts.NewAuthority,
	}}, nil
}

// ---- Positions ----

func (b *Builder) buildOpenPosition(inst instruction.OpenPositionInstruction, store *pubkeyset.Store) ([]Event, error) {
	payload := positionLifecycleEvent{
		Type:           "PositionOpened",
		Origin:         string(inst.InstructionName()),
		Whirlpool:      inst.Accounts.Whirlpool,
		Position:       inst.Accounts.Position,
		TickLowerIndex: inst.Args.TickLowerIndex,
		TickUpperIndex: inst.Args.TickUpperIndex,
		PositionType:   inst.PositionType,
		PositionMint:   inst.Accounts.PositionMint,
	}
	if inst.PositionType == instruction.PositionTypeBundled {
		payload.PositionBundle = inst.PositionBundle
		idx := inst.BundleIndex
		payload.BundleIndex = &idx
	}
	return []Event{PositionOpened(payload)}, nil
}

func (b *Builder) buildClosePosition(inst instruction.ClosePositionInstruction, snap *pubkeyset.Snapshot) ([]Event, error) {
	old, err := oldPosition(snap, inst.Accounts.Position)
	if err != nil {
		return nil, err
	}
	whirlpool := inst.Accounts.Whirlpool
	if whirlpool == "" {
		whirlpool = old.Whirlpool.String()
	}
	payload := positionLifecycleEvent{
		Type:           "PositionClosed",
		Origin:         string(inst.InstructionName()),
		Whirlpool:      whirlpool,
		Position:       inst.Accounts.Position,
		TickLowerIndex: old.TickLowerIndex,
		TickUpperIndex: old.TickUpperIndex,
		PositionType:   instructionPositionType(inst.PositionType),
	}
	if inst.PositionType == instruction.PositionTypeBundled {
		payload.PositionBundle = inst.PositionBundle
		idx := inst.BundleIndex
		payload.BundleIndex = &idx
	}
	return []Event{PositionClosed(payload)}, nil
}

func instructionPositionType(t instruction.PositionType) PositionType {
	if t == instruction.PositionTypeBundled {
		return PositionTypeBundled
	}
	return PositionTypeStandalone
}

// ---- Fee/reward harvest ----

func (b *Builder) buildCollectFees(inst instruction.CollectFeesInstruction, snap *pubkeyset.Snapshot) ([]Event, error) {
	old, err := oldWhirlpool(snap, inst.Accounts.Whirlpool)
	if err != nil {
		return nil, err
	}
	decA, err := b.Decimals.MustGet(old.TokenMintA.String())
	if err != nil {
		return nil, err
	}
	decB, err := b.Decimals.MustGet(old.TokenMintB.String())
	if err != nil {
		return nil, err
	}
	var ta, tb TransferInfo
	if inst.IsV2 {
		ta = toTransferInfo(inst.TransferA, old.TokenMintA.String(), decA)
		tb = toTransferInfo(inst.TransferB, old.TokenMintB.String(), decB)
	} else {
		ta = TransferInfo{Mint: old.TokenMintA.String(), Amount: U64(inst.TransferA.Amount), Decimals: decA}
		tb = TransferInfo{Mint: old.TokenMintB.String(), Amount: U64(inst.TransferB.Amount), Decimals: decB}
	}
	return []Event{PositionFeesHarvested{
		Type:      "PositionFeesHarvested",
		Origin:    string(inst.InstructionName()),
		Whirlpool: inst.Accounts.Whirlpool,
		Position:  inst.Accounts.Position,
		TransferA: ta,
		TransferB: tb,
	}}, nil
}

func (b *Builder) buildCollectReward(inst instruction.CollectRewardInstruction, snap *pubkeyset.Snapshot, store *pubkeyset.Store) ([]Event, error) {
	old, err := oldWhirlpool(snap, inst.Accounts.Whirlpool)
	if err != nil {
		return nil, err
	}
	idx := inst.Args.RewardIndex
	if int(idx) >= len(old.RewardInfos) {
		return nil, fmt.Errorf("event: reward index %d out of range", idx)
	}
	mint := old.RewardInfos[idx].Mint.String()
	dec, err := b.Decimals.MustGet(mint)
	if err != nil {
		return nil, err
	}
	var tr TransferInfo
	if inst.IsV2 {
		tr = toTransferInfo(inst.TransferReward, mint, dec)
	} else {
		tr = TransferInfo{Mint: mint, Amount: U64(inst.TransferReward.Amount), Decimals: dec}
	}
	return []Event{PositionRewardHarvested{
		Type:           "PositionRewardHarvested",
		Origin:         string(inst.InstructionName()),
		Whirlpool:      inst.Accounts.Whirlpool,
		Position:       inst.Accounts.Position,
		RewardIndex:    idx,
		TransferReward: tr,
	}}, nil
}

func (b *Builder) buildCollectProtocolFees(inst instruction.CollectProtocolFeesInstruction, snap *pubkeyset.Snapshot) ([]Event, error) {
	old, err := oldWhirlpool(snap, inst.Accounts.Whirlpool)
	if err != nil {
		return nil, err
	}
	decA, err := b.Decimals.MustGet(old.TokenMintA.String())
	if err != nil {
		return nil, err
	}
	decB, err := b.Decimals.MustGet(old.TokenMintB.String())
	if err != nil {
		return nil, err
	}
	var ta, tb TransferInfo
	if inst.IsV2 {
		ta = toTransferInfo(inst.TransferA, old.TokenMintA.String(), decA)
		tb = toTransferInfo(inst.TransferB, old.TokenMintB.String(), decB)
	} else {
		ta = TransferInfo{Mint: old.TokenMintA.String(), Amount: U64(inst.TransferA.Amount), Decimals: decA}
		tb = TransferInfo{Mint: old.TokenMintB.String(), Amount: U64(inst.TransferB.Amount), Decimals: decB}
	}
	return []Event{ProtocolFeesCollected{
		Type:      "ProtocolFeesCollected",
		Origin:    string(inst.InstructionName()),
		Whirlpool: inst.Accounts.Whirlpool,
		TransferA: ta,
		TransferB: tb,
	}}, nil
}

// ---- Position bundles ----

func (b *Builder) buildPositionBundle(inst instruction.PositionBundleInstruction) ([]Event, error) {
	payload := positionBundleEvent{
		Origin:         string(inst.InstructionName()),
		PositionBundle: inst.Accounts.PositionBundle,
		Mint:           inst.Accounts.PositionBundleMint,
		Owner:          inst.Accounts.Owner,
	}
	switch inst.Name {
	case instruction.NameDeletePositionBundle:
		payload.Type = "PositionBundleDeleted"
		return []Event{PositionBundleDeleted(payload)}, nil
	default:
		payload.Type = "PositionBundleInitialized"
		return []Event{PositionBundleInitialized(payload)}, nil
	}
}

// ---- Config / fee tier / token badge ----

func (b *Builder) buildInitializeConfig(inst instruction.InitializeConfigInstruction) ([]Event, error) {
	return []Event{ConfigInitialized{
		Type:                          "ConfigInitialized",
		Origin:                        string(inst.InstructionName()),
		Config:                        inst.Accounts.Config,
		FeeAuthority:                  inst.Args.FeeAuthority,
		CollectProtocolFeesAuthority:  inst.Args.CollectProtocolFeesAuthority,
		RewardEmissionsSuperAuthority: inst.Args.RewardEmissionsSuperAuthority,
		DefaultProtocolFeeRate:        inst.Args.DefaultProtocolFeeRate,
	}}, nil
}

func (b *Builder) buildConfigUpdate(inst instruction.ConfigUpdateInstruction, snap *pubkeyset.Snapshot) ([]Event, error) {
	old, err := oldConfig(snap, inst.Accounts.Config)
	if err != nil {
		return nil, err
	}
	out := ConfigUpdated{
		Type:   "ConfigUpdated",
		Origin: string(inst.InstructionName()),
		Config: inst.Accounts.Config,
	}
	switch inst.Name {
	case instruction.NameSetFeeAuthority:
		out.OldFeeAuthority = old.FeeAuthority.String()
		out.NewFeeAuthority = inst.NewFeeAuthority
	case instruction.NameSetCollectProtocolFeesAuthority:
		out.OldCollectProtocolFeesAuthority = old.CollectProtocolFeesAuthority.String()
		out.NewCollectProtocolFeesAuthority = inst.NewCollectProtocolFeesAuthority
	case instruction.NameSetRewardEmissionsSuperAuthority:
		out.OldRewardEmissionsSuperAuthority = old.RewardEmissionsSuperAuthority.String()
		out.NewRewardEmissionsSuperAuthority = inst.NewRewardEmissionsSuperAuthority
	case instruction.NameSetDefaultProtocolFeeRate:
		o := old.DefaultProtocolFeeRate
		n := inst.NewDefaultProtocolFeeRate
		out.OldDefaultProtocolFeeRate = &o
		out.NewDefaultProtocolFeeRate = &n
	}
	return []Event{out}, nil
}

func (b *Builder) buildInitializeConfigExtension(inst instruction.InitializeConfigExtensionInstruction, store *pubkeyset.Store) ([]Event, error) {
	neu, err := newConfigExtension(store, inst.Accounts.ConfigExtension)
	if err != nil {
		return nil, err
	}
	return []Event{ConfigExtensionInitialized{
		Type:                     "ConfigExtensionInitialized",
		Origin:                   string(inst.InstructionName()),
		Config:                   inst.Accounts.WhirlpoolsConfig,
		ConfigExtension:          inst.Accounts.ConfigExtension,
		ConfigExtensionAuthority: neu.ConfigExtensionAuthority.String(),
		TokenBadgeAuthority:      neu.TokenBadgeAuthority.String(),
	}}, nil
}

func (b *Builder) buildConfigExtensionUpdate(inst instruction.ConfigExtensionUpdateInstruction, snap *pubkeyset.Snapshot) ([]Event, error) {
	old, err := oldConfigExtension(snap, inst.Accounts.ConfigExtension)
	if err != nil {
		return nil, err
	}
	out := ConfigExtensionUpdated{
		Type:            "ConfigExtensionUpdated",
		Origin:          string(inst.InstructionName()),
		ConfigExtension: inst.Accounts.ConfigExtension,
		NewAuthority:    inst.NewAuthority,
	}
	switch inst.Name {
	case instruction.NameSetConfigExtensionAuthority:
		out.Which = "ConfigExtensionAuthority"
		out.OldAuthority = old.ConfigExtensionAuthority.String()
	case instruction.NameSetTokenBadgeAuthority:
		out.Which = "TokenBadgeAuthority"
		out.OldAuthority = old.TokenBadgeAuthority.String()
	}
	return []Event{out}, nil
}

func (b *Builder) buildInitializeFeeTier(inst instruction.InitializeFeeTierInstruction) ([]Event, error) {
	return []Event{FeeTierInitialized{
		Type:           "FeeTierInitialized",
		Origin:         string(inst.InstructionName()),
		Config:         inst.Accounts.WhirlpoolsConfig,
		FeeTier:        inst.Accounts.FeeTier,
		TickSpacing:    inst.Args.TickSpacing,
		DefaultFeeRate: inst.Args.DefaultFeeRate,
	}}, nil
}

func (b *Builder) buildSetDefaultFeeRate(inst instruction.SetDefaultFeeRateInstruction, snap *pubkeyset.Snapshot) ([]Event, error) {
	old, err := oldFeeTier(snap, inst.Accounts.FeeTier)
	if err != nil {
		return nil, err
	}
	return []Event{FeeTierUpdated{
		Type:        "FeeTierUpdated",
		Origin:      string(inst.InstructionName()),
		FeeTier:     inst.Accounts.FeeTier,
		TickSpacing: old.TickSpacing,
		OldRate:     old.DefaultFeeRate,
		NewRate:     inst.Args.DefaultFeeRate,
	}}, nil
}

func (b *Builder) buildTokenBadge(inst instruction.TokenBadgeInstruction, store *pubkeyset.Store) ([]Event, error) {
	switch inst.Name {
	case instruction.NameDeleteTokenBadge:
		return []Event{TokenBadgeDeleted{
			Type:       "TokenBadgeDeleted",
			Origin:     string(inst.InstructionName()),
			Config:     inst.Accounts.WhirlpoolsConfig,
			TokenMint:  inst.Accounts.TokenMint,
			TokenBadge: inst.Accounts.TokenBadge,
		}}, nil
	default:
		if _, err := newTokenBadge(store, inst.Accounts.TokenBadge); err != nil {
			return nil, err
		}
		return []Event{TokenBadgeInitialized{
			Type:       "TokenBadgeInitialized",
			Origin:     string(inst.InstructionName()),
			Config:     inst.Accounts.WhirlpoolsConfig,
			TokenMint:  inst.Accounts.TokenMint,
			TokenBadge: inst.Accounts.TokenBadge,
		}}, nil
	}
}
