package ohlcv

import (
	"fmt"

	"github.com/solana-zh/whirlpool-archive/pkg/accounts"
	"github.com/solana-zh/whirlpool-archive/pkg/decimals"
	"github.com/solana-zh/whirlpool-archive/pkg/event"
	"github.com/solana-zh/whirlpool-archive/pkg/pricemath"
	"github.com/solana-zh/whirlpool-archive/pkg/pubkeyset"
)

const secondsPerDay = 86400

// dailyBucketTimestamp is the UTC midnight *after* blockTime: the snapshot
// is conceptually "end of yesterday".
func dailyBucketTimestamp(blockTime int64) int64 {
	return (blockTime/secondsPerDay)*secondsPerDay + secondsPerDay
}

// Seed walks store for pool accounts and returns one Existing-seeded Record
// per pool, keyed by pool pubkey.
func Seed(store *pubkeyset.Store, decimalsTable decimals.Table, blockTime int64) (map[string]*Record, error) {
	out := make(map[string]*Record)
	var seedErr error
	store.Range(func(pubkey string, data []byte) bool {
		kind, ok := accounts.IdentifyKind(data)
		if !ok || kind != accounts.KindWhirlpool {
			return true
		}
		pool, err := accounts.DecodeWhirlpool(data)
		if err != nil {
			seedErr = fmt.Errorf("ohlcv: decode pool %s: %w", pubkey, err)
			return false
		}
		mintA, mintB := pool.TokenMintA.String(), pool.TokenMintB.String()
		decA, err := decimalsTable.MustGet(mintA)
		if err != nil {
			seedErr = fmt.Errorf("ohlcv: seed pool %s: %w", pubkey, err)
			return false
		}
		decB, err := decimalsTable.MustGet(mintB)
		if err != nil {
			seedErr = fmt.Errorf("ohlcv: seed pool %s: %w", pubkey, err)
			return false
		}

		sqrt := event.NewU128FromBig(pool.SqrtPrice.Big())
		price := event.NewPrice(pricemath.DecimalPriceFromSqrtPrice(pool.SqrtPrice, decA, decB))
		ts := dailyBucketTimestamp(blockTime)

		out[pubkey] = &Record{
			Whirlpool:        pubkey,
			WhirlpoolsConfig: pool.WhirlpoolsConfig.String(),
			TokenA:           Token{Mint: mintA, Decimals: decA},
			TokenB:           Token{Mint: mintB, Decimals: decB},
			TickSpacing:      pool.TickSpacing,
			InitialState: InitialState{
				Tag:                       "e",
				PreviousCloseSqrtPrice:    &sqrt,
				PreviousCloseDecimalPrice: &price,
			},
			Daily: DataUnit{
				Timestamp: ts,
				OHLCV: PriceBucket{
					SqrtPrice:    SqrtOHLC{Open: sqrt, High: sqrt, Low: sqrt, Close: sqrt},
					DecimalPrice: DecimalOHLC{Open: price, High: price, Low: price, Close: price},
				},
			},
		}
		return true
	})
	if seedErr != nil {
		return nil, seedErr
	}
	return out, nil
}
