package ohlcv

import (
	"fmt"

	cosmath "cosmossdk.io/math"
	"lukechampine.com/uint128"

	"github.com/solana-zh/whirlpool-archive/pkg/event"
	"github.com/solana-zh/whirlpool-archive/pkg/pricemath"
)

const (
	feeRateDenom     = 1_000_000
	protocolFeeDenom = 10_000
	secondsPerMinute = 60
)

// Aggregator implements OhlcvAggregator: a streaming per-pool reducer over
// the decoded event stream.
type Aggregator struct {
	pools map[string]*Record
}

// NewAggregator starts from seed (typically ohlcv.Seed's output; may be
// nil/empty for an aggregator seeded entirely by PoolInitialized events).
func NewAggregator(seed map[string]*Record) *Aggregator {
	if seed == nil {
		seed = make(map[string]*Record)
	}
	return &Aggregator{pools: seed}
}

// Pools returns the live per-pool record map.
func (a *Aggregator) Pools() map[string]*Record { return a.pools }

// Apply folds one event, observed in the block at (slot, blockTime), into
// the aggregator's state. Events other than PoolInitialized and Traded are
// intentionally ignored.
func (a *Aggregator) Apply(ev event.Event, slot uint64, blockTime int64) error {
	switch v := ev.(type) {
	case *event.PoolInitialized:
		a.installPool(v, slot, blockTime)
		return nil
	case *event.Traded:
		return a.applyTrade(v, blockTime)
	default:
		return nil
	}
}

func (a *Aggregator) installPool(v *event.PoolInitialized, slot uint64, blockTime int64) {
	sqrt := v.InitialSqrtPrice
	price := event.NewPrice(pricemath.DecimalPriceFromSqrtPrice(
		uint128.FromBig(&sqrt.Int), v.DecimalsA, v.DecimalsB))

	s := slot
	bt := blockTime
	a.pools[v.Whirlpool] = &Record{
		Whirlpool:   v.Whirlpool,
		TokenA:      Token{Mint: v.MintA, Decimals: v.DecimalsA},
		TokenB:      Token{Mint: v.MintB, Decimals: v.DecimalsB},
		TickSpacing: v.TickSpacing,
		InitialState: InitialState{
			Tag:                  "n",
			InitialSqrtPrice:     &sqrt,
			InitialDecimalPrice:  &price,
			InitializedSlot:      &s,
			InitializedBlockTime: &bt,
		},
		Daily: DataUnit{
			Timestamp: dailyBucketTimestamp(blockTime),
			OHLCV: PriceBucket{
				SqrtPrice:    SqrtOHLC{Open: sqrt, High: sqrt, Low: sqrt, Close: sqrt},
				DecimalPrice: DecimalOHLC{Open: price, High: price, Low: price, Close: price},
			},
		},
	}
}

func (a *Aggregator) applyTrade(v *event.Traded, blockTime int64) error {
	rec, ok := a.pools[v.Whirlpool]
	if !ok {
		return fmt.Errorf("ohlcv: traded event for unknown pool %s", v.Whirlpool)
	}

	decA, decB := rec.TokenA.Decimals, rec.TokenB.Decimals
	newDecimalPrice := event.NewPrice(pricemath.DecimalPriceFromSqrtPrice(
		uint128.FromBig(&v.NewSqrtPrice.Int), decA, decB))

	lpA, lpB, protoA, protoB, err := estimateFees(v)
	if err != nil {
		return fmt.Errorf("ohlcv: estimate fees for pool %s: %w", v.Whirlpool, err)
	}
	rec.EstimatedFees.LpFeeA += lpA
	rec.EstimatedFees.LpFeeB += lpB
	rec.EstimatedFees.ProtocolFeeA += protoA
	rec.EstimatedFees.ProtocolFeeB += protoB

	updateBucket(&rec.Daily, v, newDecimalPrice)

	minuteTS := (blockTime / secondsPerMinute) * secondsPerMinute
	idx := -1
	for i := range rec.Minutely {
		if rec.Minutely[i].Timestamp == minuteTS {
			idx = i
			break
		}
	}
	if idx == -1 {
		oldDecimalPrice := event.NewPrice(pricemath.DecimalPriceFromSqrtPrice(
			uint128.FromBig(&v.OldSqrtPrice.Int), decA, decB))
		rec.Minutely = append(rec.Minutely, DataUnit{
			Timestamp: minuteTS,
			OHLCV: PriceBucket{
				SqrtPrice:    SqrtOHLC{Open: v.OldSqrtPrice, High: v.OldSqrtPrice, Low: v.OldSqrtPrice, Close: v.OldSqrtPrice},
				DecimalPrice: DecimalOHLC{Open: oldDecimalPrice, High: oldDecimalPrice, Low: oldDecimalPrice, Close: oldDecimalPrice},
			},
		})
		idx = len(rec.Minutely) - 1
	}
	updateBucket(&rec.Minutely[idx], v, newDecimalPrice)
	return nil
}

// updateBucket applies the high/low/close/volume update shared by daily and
// minute buckets.
func updateBucket(bucket *DataUnit, v *event.Traded, newDecimalPrice event.Price) {
	sp := &bucket.OHLCV.SqrtPrice
	if v.NewSqrtPrice.Cmp(&sp.High.Int) > 0 {
		sp.High = v.NewSqrtPrice
	}
	if v.NewSqrtPrice.Cmp(&sp.Low.Int) < 0 {
		sp.Low = v.NewSqrtPrice
	}
	sp.Close = v.NewSqrtPrice

	dp := &bucket.OHLCV.DecimalPrice
	if newDecimalPrice.Decimal.GreaterThan(dp.High.Decimal) {
		dp.High = newDecimalPrice
	}
	if newDecimalPrice.Decimal.LessThan(dp.Low.Decimal) {
		dp.Low = newDecimalPrice
	}
	dp.Close = newDecimalPrice

	switch v.Direction {
	case event.AtoB:
		bucket.Volume.AtoB.TotalIn += v.TransferIn.Amount
		bucket.Volume.AtoB.TotalOut += v.TransferOut.Amount
		bucket.Volume.AtoB.Count++
	case event.BtoA:
		bucket.Volume.BtoA.TotalIn += v.TransferIn.Amount
		bucket.Volume.BtoA.TotalOut += v.TransferOut.Amount
		bucket.Volume.BtoA.Count++
	}
}

// estimateFees implements the fee decomposition algorithm, crediting side A
// on AtoB trades and side B on BtoA trades.
func estimateFees(v *event.Traded) (lpA, lpB, protoA, protoB event.U64, err error) {
	postTransfer, err := applyTransferFee(v.TransferIn)
	if err != nil {
		return 0, 0, 0, 0, err
	}

	tradeFee := mulDivFloor(cosmath.NewIntFromUint64(uint64(postTransfer)), cosmath.NewIntFromUint64(uint64(v.FeeRate)), cosmath.NewIntFromUint64(feeRateDenom))
	protocolFee := mulDivFloor(tradeFee, cosmath.NewIntFromUint64(uint64(v.ProtocolFeeRate)), cosmath.NewIntFromUint64(protocolFeeDenom))
	lpFee := tradeFee.Sub(protocolFee)

	if !lpFee.IsUint64() || !protocolFee.IsUint64() {
		return 0, 0, 0, 0, fmt.Errorf("fee narrowing overflow: trade_fee=%s protocol_fee=%s", tradeFee, protocolFee)
	}

	lp := event.U64(lpFee.Uint64())
	proto := event.U64(protocolFee.Uint64())
	if v.Direction == event.AtoB {
		return lp, 0, proto, 0, nil
	}
	return 0, lp, 0, proto, nil
}

// applyTransferFee deducts the Token-2022 transfer fee from a transfer's
// amount, if present. Both fee params must be present together; asymmetric
// presence is a precondition error.
func applyTransferFee(t event.TransferInfo) (event.U64, error) {
	if t.TransferFeeBps == nil && t.TransferFeeMax == nil {
		return t.Amount, nil
	}
	if t.TransferFeeBps == nil || t.TransferFeeMax == nil {
		return 0, fmt.Errorf("transfer fee params present asymmetrically")
	}

	amount := cosmath.NewIntFromUint64(uint64(t.Amount))
	bps := cosmath.NewIntFromUint64(uint64(*t.TransferFeeBps))
	fee := mulDivCeil(amount, bps, cosmath.NewIntFromUint64(10_000))
	max := cosmath.NewIntFromUint64(uint64(*t.TransferFeeMax))
	if fee.GT(max) {
		fee = max
	}
	post := amount.Sub(fee)
	if !post.IsUint64() {
		return 0, fmt.Errorf("transfer fee narrowing overflow")
	}
	return event.U64(post.Uint64()), nil
}

// mulDivCeil computes ceil(a*b/denom) without overflowing past 64 bits.
func mulDivCeil(a, b, denom cosmath.Int) cosmath.Int {
	numerator := a.Mul(b).Add(denom.Sub(cosmath.OneInt()))
	return numerator.Quo(denom)
}

func mulDivFloor(a, b, denom cosmath.Int) cosmath.Int {
	return a.Mul(b).Quo(denom)
}
