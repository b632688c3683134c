// Package accounts decodes the on-chain Whirlpool account formats: Whirlpool
// (pool), Position, PositionBundle, WhirlpoolsConfig, WhirlpoolsConfigExtension,
// FeeTier, TokenBadge and TickArray. Each type has a fixed-offset decoder, and
// IdentifyKind selects the type by the account's leading discriminator; these
// are what EventBuilder and OhlcvSeeder depend on.
package accounts

import "github.com/solana-zh/whirlpool-archive/pkg/anchor"

// Kind identifies a decoded account's type by its 8-byte Anchor discriminator.
type Kind string

const (
	KindWhirlpool       Kind = "whirlpool"
	KindPosition        Kind = "position"
	KindPositionBundle  Kind = "position_bundle"
	KindConfig          Kind = "whirlpools_config"
	KindConfigExtension Kind = "whirlpools_config_extension"
	KindFeeTier         Kind = "fee_tier"
	KindTickArray       Kind = "tick_array"
	KindTokenBadge      Kind = "token_badge"
)

var discriminators = map[Kind][8]byte{
	KindWhirlpool:       disc("Whirlpool"),
	KindPosition:        disc("Position"),
	KindPositionBundle:  disc("PositionBundle"),
	KindConfig:          disc("WhirlpoolsConfig"),
	KindConfigExtension: disc("WhirlpoolsConfigExtension"),
	KindFeeTier:         disc("FeeTier"),
	KindTickArray:       disc("TickArray"),
	KindTokenBadge:      disc("TokenBadge"),
}

func disc(name string) [8]byte {
	var out [8]byte
	copy(out[:], anchor.GetDiscriminator("account", name))
	return out
}

// Discriminator returns the 8-byte Anchor account discriminator for kind.
func Discriminator(kind Kind) [8]byte {
	return discriminators[kind]
}

// IdentifyKind inspects the leading 8 bytes of data and returns the matching
// account Kind, or ok=false if data doesn't begin with any known
// discriminator.
func IdentifyKind(data []byte) (Kind, bool) {
	if len(data) < 8 {
		return "", false
	}
	var lead [8]byte
	copy(lead[:], data[:8])
	for kind, d := range discriminators {
		if d == lead {
			return kind, true
		}
	}
	return "", false
}
