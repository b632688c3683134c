package accounts

import (
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"
)

// WhirlpoolSize is the on-wire size of a Whirlpool (pool) account, including
// its 8-byte discriminator.
const WhirlpoolSize = 653

// RewardInfo mirrors a single slot of a pool's reward_infos array.
type RewardInfo struct {
	Mint                  solana.PublicKey
	Vault                 solana.PublicKey
	Authority             solana.PublicKey
	EmissionsPerSecondX64 uint128.Uint128
	GrowthGlobalX64       uint128.Uint128
}

// Whirlpool is the decoded form of a concentrated-liquidity pool account.
type Whirlpool struct {
	WhirlpoolsConfig solana.PublicKey
	WhirlpoolBump    uint8
	TickSpacing      uint16
	TickSpacingSeed  [2]uint8
	FeeRate          uint16
	ProtocolFeeRate  uint16
	Liquidity        uint128.Uint128
	SqrtPrice        uint128.Uint128
	TickCurrentIndex int32
	ProtocolFeeOwedA uint64
	ProtocolFeeOwedB uint64
	TokenMintA       solana.PublicKey
	TokenVaultA      solana.PublicKey
	FeeGrowthGlobalA uint128.Uint128
	TokenMintB       solana.PublicKey
	TokenVaultB      solana.PublicKey
	FeeGrowthGlobalB uint128.Uint128

	RewardLastUpdatedTimestamp uint64
	RewardInfos                [3]RewardInfo
}

// DecodeWhirlpool decodes a Whirlpool account's bytes, including its leading
// discriminator. Field offsets follow the canonical Anchor layout (the same
// layout used by the pack's Whirlpool pool decoder).
func DecodeWhirlpool(data []byte) (*Whirlpool, error) {
	if len(data) < WhirlpoolSize {
		return nil, fmt.Errorf("accounts: whirlpool: expected at least %d bytes, got %d", WhirlpoolSize, len(data))
	}
	p := &Whirlpool{}

	p.WhirlpoolsConfig = solana.PublicKeyFromBytes(data[8:40])
	p.WhirlpoolBump = data[40]

	dec := bin.NewBinDecoder(data[41:43])
	if err := dec.Decode(&p.TickSpacing); err != nil {
		return nil, fmt.Errorf("accounts: whirlpool: tick_spacing: %w", err)
	}
	copy(p.TickSpacingSeed[:], data[43:45])

	p.FeeRate = binary.LittleEndian.Uint16(data[45:47])
	p.ProtocolFeeRate = binary.LittleEndian.Uint16(data[47:49])
	p.Liquidity = uint128.FromBytes(data[49:65])
	p.SqrtPrice = uint128.FromBytes(data[65:81])
	p.TickCurrentIndex = int32(binary.LittleEndian.Uint32(data[81:85]))
	p.ProtocolFeeOwedA = binary.LittleEndian.Uint64(data[85:93])
	p.ProtocolFeeOwedB = binary.LittleEndian.Uint64(data[93:101])

	p.TokenMintA = solana.PublicKeyFromBytes(data[101:133])
	p.TokenVaultA = solana.PublicKeyFromBytes(data[133:165])
	p.FeeGrowthGlobalA = uint128.FromBytes(data[165:181])

	p.TokenMintB = solana.PublicKeyFromBytes(data[181:213])
	p.TokenVaultB = solana.PublicKeyFromBytes(data[213:245])
	p.FeeGrowthGlobalB = uint128.FromBytes(data[245:261])

	p.RewardLastUpdatedTimestamp = binary.LittleEndian.Uint64(data[261:269])

	off := 269
	const rewardInfoSize = 32 + 32 + 32 + 16 + 16
	for i := 0; i < 3; i++ {
		r := &p.RewardInfos[i]
		r.Mint = solana.PublicKeyFromBytes(data[off : off+32])
		r.Vault = solana.PublicKeyFromBytes(data[off+32 : off+64])
		r.Authority = solana.PublicKeyFromBytes(data[off+64 : off+96])
		r.EmissionsPerSecondX64 = uint128.FromBytes(data[off+96 : off+112])
		r.GrowthGlobalX64 = uint128.FromBytes(data[off+112 : off+128])
		off += rewardInfoSize
	}

	return p, nil
}
