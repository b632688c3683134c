package ohlcv

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/solana-zh/whirlpool-archive/pkg/event"
	"github.com/solana-zh/whirlpool-archive/pkg/pricemath"
)

// onePrice is sqrt_price = 2^64, i.e. decimal price 1.0 when both mints
// share decimals.
func onePrice() event.U128 {
	return event.NewU128FromBig(new(big.Int).Lsh(big.NewInt(1), 64))
}

func seedPool(pool string, sqrt event.U128, decA, decB uint8) map[string]*Record {
	price := event.NewPrice(pricemath.DecimalPriceFromSqrtPrice(uint128.FromBig(&sqrt.Int), decA, decB))
	return map[string]*Record{
		pool: {
			Whirlpool: pool,
			TokenA:    Token{Mint: "mintA", Decimals: decA},
			TokenB:    Token{Mint: "mintB", Decimals: decB},
			InitialState: InitialState{
				Tag:                    "e",
				PreviousCloseSqrtPrice: &sqrt,
			},
			Daily: DataUnit{
				Timestamp: dailyBucketTimestamp(0),
				OHLCV: PriceBucket{
					SqrtPrice:    SqrtOHLC{Open: sqrt, High: sqrt, Low: sqrt, Close: sqrt},
					DecimalPrice: DecimalOHLC{Open: price, High: price, Low: price, Close: price},
				},
			},
		},
	}
}

// scenario 1: single swap with exact spec-given fee numbers.
func TestSingleSwapFeeDecomposition(t *testing.T) {
	sqrt := onePrice()
	agg := NewAggregator(seedPool("poolP", sqrt, 6, 6))

	newSqrt := event.NewU128FromBig(new(big.Int).Sub(&sqrt.Int, big.NewInt(1)))
	traded := &event.Traded{
		Type:            "Traded",
		Whirlpool:       "poolP",
		Direction:       event.AtoB,
		Mode:            event.ExactIn,
		OldSqrtPrice:    sqrt,
		NewSqrtPrice:    newSqrt,
		FeeRate:         3000,
		ProtocolFeeRate: 300,
		TransferIn:      event.TransferInfo{Mint: "mintA", Amount: 1_000_000, Decimals: 6},
		TransferOut:     event.TransferInfo{Mint: "mintB", Amount: 999_000, Decimals: 6},
	}

	require.NoError(t, agg.Apply(traded, 1, 1_700_000_000))

	rec := agg.Pools()["poolP"]
	require.EqualValues(t, 2_910, rec.EstimatedFees.LpFeeA)
	require.EqualValues(t, 90, rec.EstimatedFees.ProtocolFeeA)
	require.EqualValues(t, 0, rec.EstimatedFees.LpFeeB)
	require.EqualValues(t, 0, rec.EstimatedFees.ProtocolFeeB)

	require.Equal(t, "1.000000000e0", pricemath.FormatScientific(rec.Daily.OHLCV.DecimalPrice.Open.Decimal))
}

// scenario 2: pool created mid-run via PoolInitialized, then traded.
func TestPoolCreatedMidRunThenTraded(t *testing.T) {
	agg := NewAggregator(nil)

	sqrt := onePrice()
	const blockTimeInit = 1_700_000_000
	init := &event.PoolInitialized{
		Type:             "PoolInitialized",
		Whirlpool:        "poolQ",
		InitialSqrtPrice: sqrt,
		MintA:            "mintA",
		MintB:            "mintB",
		DecimalsA:        6,
		DecimalsB:        6,
		FeeRate:          3000,
		ProtocolFeeRate:  300,
	}
	require.NoError(t, agg.Apply(init, 10, blockTimeInit))

	rec, ok := agg.Pools()["poolQ"]
	require.True(t, ok)
	require.Equal(t, "n", rec.InitialState.Tag)
	require.NotNil(t, rec.InitialState.InitializedBlockTime)
	require.EqualValues(t, blockTimeInit, *rec.InitialState.InitializedBlockTime)

	blockTimeSwap := int64(blockTimeInit + 30)
	newSqrt := event.NewU128FromBig(new(big.Int).Sub(&sqrt.Int, big.NewInt(1)))
	traded := &event.Traded{
		Type:            "Traded",
		Whirlpool:       "poolQ",
		Direction:       event.AtoB,
		OldSqrtPrice:    sqrt,
		NewSqrtPrice:    newSqrt,
		FeeRate:         3000,
		ProtocolFeeRate: 300,
		TransferIn:      event.TransferInfo{Mint: "mintA", Amount: 100, Decimals: 6},
		TransferOut:     event.TransferInfo{Mint: "mintB", Amount: 99, Decimals: 6},
	}
	require.NoError(t, agg.Apply(traded, 11, blockTimeSwap))

	rec = agg.Pools()["poolQ"]
	require.Len(t, rec.Minutely, 1)
	expectedBucket := (blockTimeSwap / secondsPerMinute) * secondsPerMinute
	require.Equal(t, expectedBucket, rec.Minutely[0].Timestamp)
	require.EqualValues(t, 1, rec.Daily.Volume.AtoB.Count)
}

// scenario 3: TwoHopSwap produces two Traded events across two distinct pools.
func TestTwoHopSwapUpdatesBothPools(t *testing.T) {
	sqrt := onePrice()
	seed := seedPool("pool1", sqrt, 6, 6)
	for k, v := range seedPool("pool2", sqrt, 6, 6) {
		seed[k] = v
	}
	agg := NewAggregator(seed)

	hop1 := &event.Traded{
		Type: "Traded", Whirlpool: "pool1", Direction: event.AtoB,
		OldSqrtPrice: sqrt, NewSqrtPrice: sqrt, FeeRate: 3000, ProtocolFeeRate: 300,
		TransferIn:  event.TransferInfo{Mint: "mintA", Amount: 1000, Decimals: 6},
		TransferOut: event.TransferInfo{Mint: "mintB", Amount: 999, Decimals: 6},
	}
	hop2 := &event.Traded{
		Type: "Traded", Whirlpool: "pool2", Direction: event.AtoB,
		OldSqrtPrice: sqrt, NewSqrtPrice: sqrt, FeeRate: 3000, ProtocolFeeRate: 300,
		TransferIn:  event.TransferInfo{Mint: "mintB", Amount: 999, Decimals: 6},
		TransferOut: event.TransferInfo{Mint: "mintC", Amount: 998, Decimals: 6},
	}

	require.NoError(t, agg.Apply(hop1, 1, 1_700_000_000))
	require.NoError(t, agg.Apply(hop2, 1, 1_700_000_000))

	require.EqualValues(t, 1, agg.Pools()["pool1"].Daily.Volume.AtoB.Count)
	require.EqualValues(t, 1, agg.Pools()["pool2"].Daily.Volume.AtoB.Count)
}

// scenario 4: a seeded pool with no trades keeps a flat OHLC at seed price
// and empty minutely.
func TestNoTradePoolStaysFlat(t *testing.T) {
	sqrt := onePrice()
	agg := NewAggregator(seedPool("poolR", sqrt, 6, 6))

	rec := agg.Pools()["poolR"]
	sp := rec.Daily.OHLCV.SqrtPrice
	require.Zero(t, sp.Open.Cmp(&sp.High.Int))
	require.Zero(t, sp.Open.Cmp(&sp.Low.Int))
	require.Zero(t, sp.Open.Cmp(&sp.Close.Int))
	require.EqualValues(t, 0, rec.Daily.Volume.AtoB.Count)
	require.EqualValues(t, 0, rec.Daily.Volume.BtoA.Count)
	require.Empty(t, rec.Minutely)
}

// transfer fee present: deducted before trade/protocol fee estimation.
func TestTransferFeeDeduction(t *testing.T) {
	sqrt := onePrice()
	agg := NewAggregator(seedPool("poolS", sqrt, 6, 6))

	bps := uint16(100)
	max := event.U64(500)
	traded := &event.Traded{
		Type: "Traded", Whirlpool: "poolS", Direction: event.AtoB,
		OldSqrtPrice: sqrt, NewSqrtPrice: sqrt, FeeRate: 3000, ProtocolFeeRate: 300,
		TransferIn:  event.TransferInfo{Mint: "mintA", Amount: 10_000, Decimals: 6, TransferFeeBps: &bps, TransferFeeMax: &max},
		TransferOut: event.TransferInfo{Mint: "mintB", Amount: 9_800, Decimals: 6},
	}
	require.NoError(t, agg.Apply(traded, 1, 1_700_000_000))

	rec := agg.Pools()["poolS"]
	// post_transfer = 10_000 - 100 = 9_900; trade_fee = floor(9900*3000/1e6) = 29
	// protocol_fee = floor(29*300/10000) = 0; lp_fee = 29.
	require.EqualValues(t, 29, rec.EstimatedFees.LpFeeA)
	require.EqualValues(t, 0, rec.EstimatedFees.ProtocolFeeA)
}

// scenario: minute boundary splits trades at block_time 59 vs 60.
func TestMinuteBoundarySplitsBuckets(t *testing.T) {
	sqrt := onePrice()
	agg := NewAggregator(seedPool("poolT", sqrt, 6, 6))

	trade := func(bt int64) *event.Traded {
		return &event.Traded{
			Type: "Traded", Whirlpool: "poolT", Direction: event.AtoB,
			OldSqrtPrice: sqrt, NewSqrtPrice: sqrt, FeeRate: 3000, ProtocolFeeRate: 300,
			TransferIn:  event.TransferInfo{Mint: "mintA", Amount: 1000, Decimals: 6},
			TransferOut: event.TransferInfo{Mint: "mintB", Amount: 999, Decimals: 6},
		}
	}
	require.NoError(t, agg.Apply(trade(59), 1, 59))
	require.NoError(t, agg.Apply(trade(60), 2, 60))

	rec := agg.Pools()["poolT"]
	require.Len(t, rec.Minutely, 2)
	require.EqualValues(t, 0, rec.Minutely[0].Timestamp)
	require.EqualValues(t, 60, rec.Minutely[1].Timestamp)
}

func TestTradeOnUnknownPoolFails(t *testing.T) {
	agg := NewAggregator(nil)
	traded := &event.Traded{Type: "Traded", Whirlpool: "ghost", TransferIn: event.TransferInfo{Amount: 1}}
	err := agg.Apply(traded, 1, 1)
	require.Error(t, err)
}
