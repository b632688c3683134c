package accounts

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ConfigSize is the on-wire size of a WhirlpoolsConfig account.
const ConfigSize = 106

// Config is the decoded form of the program-wide WhirlpoolsConfig account.
type Config struct {
	FeeAuthority                    solana.PublicKey
	CollectProtocolFeesAuthority    solana.PublicKey
	RewardEmissionsSuperAuthority   solana.PublicKey
	DefaultProtocolFeeRate          uint16
}

// DecodeConfig decodes a WhirlpoolsConfig account's bytes.
func DecodeConfig(data []byte) (*Config, error) {
	if len(data) < ConfigSize {
		return nil, fmt.Errorf("accounts: whirlpools_config: expected at least %d bytes, got %d", ConfigSize, len(data))
	}
	return &Config{
		FeeAuthority:                  solana.PublicKeyFromBytes(data[8:40]),
		CollectProtocolFeesAuthority:  solana.PublicKeyFromBytes(data[40:72]),
		RewardEmissionsSuperAuthority: solana.PublicKeyFromBytes(data[72:104]),
		DefaultProtocolFeeRate:        binary.LittleEndian.Uint16(data[104:106]),
	}, nil
}

// ConfigExtensionSize is the on-wire size of a WhirlpoolsConfigExtension account.
const ConfigExtensionSize = 104

// ConfigExtension is the decoded form of a config's extension account,
// holding the token-badge and config-extension authorities.
type ConfigExtension struct {
	WhirlpoolsConfig          solana.PublicKey
	ConfigExtensionAuthority solana.PublicKey
	TokenBadgeAuthority      solana.PublicKey
}

// DecodeConfigExtension decodes a WhirlpoolsConfigExtension account's bytes.
func DecodeConfigExtension(data []byte) (*ConfigExtension, error) {
	if len(data) < ConfigExtensionSize {
		return nil, fmt.Errorf("accounts: whirlpools_config_extension: expected at least %d bytes, got %d", ConfigExtensionSize, len(data))
	}
	return &ConfigExtension{
		WhirlpoolsConfig:         solana.PublicKeyFromBytes(data[8:40]),
		ConfigExtensionAuthority: solana.PublicKeyFromBytes(data[40:72]),
		TokenBadgeAuthority:      solana.PublicKeyFromBytes(data[72:104]),
	}, nil
}

// FeeTierSize is the on-wire size of a FeeTier account.
const FeeTierSize = 44

// FeeTier maps a tick spacing to its default fee rate.
type FeeTier struct {
	WhirlpoolsConfig solana.PublicKey
	TickSpacing      uint16
	DefaultFeeRate   uint16
}

// DecodeFeeTier decodes a FeeTier account's bytes.
func DecodeFeeTier(data []byte) (*FeeTier, error) {
	if len(data) < FeeTierSize {
		return nil, fmt.Errorf("accounts: fee_tier: expected at least %d bytes, got %d", FeeTierSize, len(data))
	}
	return &FeeTier{
		WhirlpoolsConfig: solana.PublicKeyFromBytes(data[8:40]),
		TickSpacing:      binary.LittleEndian.Uint16(data[40:42]),
		DefaultFeeRate:   binary.LittleEndian.Uint16(data[42:44]),
	}, nil
}

// TokenBadgeSize is the on-wire size of a TokenBadge account.
const TokenBadgeSize = 72

// TokenBadge marks a mint as explicitly supported under token-extension rules.
type TokenBadge struct {
	WhirlpoolsConfig solana.PublicKey
	TokenMint        solana.PublicKey
}

// DecodeTokenBadge decodes a TokenBadge account's bytes.
func DecodeTokenBadge(data []byte) (*TokenBadge, error) {
	if len(data) < TokenBadgeSize {
		return nil, fmt.Errorf("accounts: token_badge: expected at least %d bytes, got %d", TokenBadgeSize, len(data))
	}
	return &TokenBadge{
		WhirlpoolsConfig: solana.PublicKeyFromBytes(data[8:40]),
		TokenMint:        solana.PublicKeyFromBytes(data[40:72]),
	}, nil
}

// TickArrayHeaderSize is the size of a TickArray account's leading header:
// the 8-byte discriminator plus the 4-byte start_tick_index.
const TickArrayHeaderSize = 8 + 4

// TickArray is a partially-decoded tick array: enough to emit
// TickArrayInitialized without paying for all 88 ticks.
type TickArray struct {
	StartTickIndex int32
	Whirlpool      solana.PublicKey
}

// TickArraySize is the full on-wire size of a TickArray account (88 ticks of
// 113 bytes each, plus header and trailing whirlpool pubkey).
const TickArraySize = 8 + 4 + 88*113 + 32

// DecodeTickArrayHeader decodes only the start_tick_index and whirlpool
// fields of a TickArray account, skipping the 88-tick body.
func DecodeTickArrayHeader(data []byte) (*TickArray, error) {
	if len(data) < TickArraySize {
		return nil, fmt.Errorf("accounts: tick_array: expected at least %d bytes, got %d", TickArraySize, len(data))
	}
	return &TickArray{
		StartTickIndex: int32(binary.LittleEndian.Uint32(data[8:12])),
		Whirlpool:      solana.PublicKeyFromBytes(data[TickArraySize-32 : TickArraySize]),
	}, nil
}
