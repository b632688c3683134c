package accounts

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"
)

// PositionSize is the on-wire size of a Position account.
const PositionSize = 216

// PositionRewardInfo mirrors one slot of a position's reward_infos array.
type PositionRewardInfo struct {
	GrowthInsideCheckpoint uint128.Uint128
	AmountOwed             uint64
}

// Position is the decoded form of a liquidity position account. Tick bounds
// are immutable for the position's lifetime, so callers may read
// them from either a pre- or post-instruction view interchangeably.
type Position struct {
	Whirlpool             solana.PublicKey
	PositionMint           solana.PublicKey
	Liquidity              uint128.Uint128
	TickLowerIndex         int32
	TickUpperIndex         int32
	FeeGrowthCheckpointA   uint128.Uint128
	FeeOwedA               uint64
	FeeGrowthCheckpointB   uint128.Uint128
	FeeOwedB               uint64
	RewardInfos            [3]PositionRewardInfo
}

// DecodePosition decodes a Position account's bytes, including its leading
// discriminator.
func DecodePosition(data []byte) (*Position, error) {
	if len(data) < PositionSize {
		return nil, fmt.Errorf("accounts: position: expected at least %d bytes, got %d", PositionSize, len(data))
	}
	p := &Position{}

	p.Whirlpool = solana.PublicKeyFromBytes(data[8:40])
	p.PositionMint = solana.PublicKeyFromBytes(data[40:72])
	p.Liquidity = uint128.FromBytes(data[72:88])
	p.TickLowerIndex = int32(binary.LittleEndian.Uint32(data[88:92]))
	p.TickUpperIndex = int32(binary.LittleEndian.Uint32(data[92:96]))
	p.FeeGrowthCheckpointA = uint128.FromBytes(data[96:112])
	p.FeeOwedA = binary.LittleEndian.Uint64(data[112:120])
	p.FeeGrowthCheckpointB = uint128.FromBytes(data[120:136])
	p.FeeOwedB = binary.LittleEndian.Uint64(data[136:144])

	off := 144
	const rewardSize = 16 + 8
	for i := 0; i < 3; i++ {
		r := &p.RewardInfos[i]
		r.GrowthInsideCheckpoint = uint128.FromBytes(data[off : off+16])
		r.AmountOwed = binary.LittleEndian.Uint64(data[off+16 : off+24])
		off += rewardSize
	}

	return p, nil
}

// PositionBundleSize is the on-wire size of a PositionBundle account.
const PositionBundleSize = 72

// PositionBundle is the decoded form of a bundled-position container: a
// single mint governing up to 256 bundled positions, tracked with a bitmap.
type PositionBundle struct {
	PositionBundleMint solana.PublicKey
	PositionBitmap     [32]byte
}

// DecodePositionBundle decodes a PositionBundle account's bytes.
func DecodePositionBundle(data []byte) (*PositionBundle, error) {
	if len(data) < PositionBundleSize {
		return nil, fmt.Errorf("accounts: position_bundle: expected at least %d bytes, got %d", PositionBundleSize, len(data))
	}
	b := &PositionBundle{
		PositionBundleMint: solana.PublicKeyFromBytes(data[8:40]),
	}
	copy(b.PositionBitmap[:], data[40:72])
	return b, nil
}
