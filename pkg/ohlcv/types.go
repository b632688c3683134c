// Package ohlcv implements OhlcvSeeder and OhlcvAggregator: a streaming
// per-pool reducer over the decoded event stream, seeded from the account
// store's snapshot state.
package ohlcv

import "github.com/solana-zh/whirlpool-archive/pkg/event"

// Token is a mint/decimals pair.
type Token struct {
	Mint     string `json:"m"`
	Decimals uint8  `json:"d"`
}

// SqrtOHLC is an OHLC bucket over Q64.64 sqrt-prices.
type SqrtOHLC struct {
	Open  event.U128 `json:"o"`
	High  event.U128 `json:"h"`
	Low   event.U128 `json:"l"`
	Close event.U128 `json:"c"`
}

// DecimalOHLC is an OHLC bucket over decimal prices.
type DecimalOHLC struct {
	Open  event.Price `json:"o"`
	High  event.Price `json:"h"`
	Low   event.Price `json:"l"`
	Close event.Price `json:"c"`
}

// DirectionVolume is the volume accumulated for one trade direction.
type DirectionVolume struct {
	TotalIn  event.U64 `json:"ti"`
	TotalOut event.U64 `json:"to"`
	Count    uint64    `json:"c"`
}

// Volume is volume split by trade direction.
type Volume struct {
	AtoB DirectionVolume `json:"ab"`
	BtoA DirectionVolume `json:"ba"`
}

// PriceBucket pairs the sqrt-price and decimal-price OHLC views of one time
// bucket: `ohlcv={sp,dp}` on the wire.
type PriceBucket struct {
	SqrtPrice    SqrtOHLC    `json:"sp"`
	DecimalPrice DecimalOHLC `json:"dp"`
}

// DataUnit is one time bucket: a timestamp, its price OHLC, and its volume
// (`t,ohlcv,v` on the wire).
type DataUnit struct {
	Timestamp int64       `json:"t"`
	OHLCV     PriceBucket `json:"ohlcv"`
	Volume    Volume      `json:"v"`
}

// InitialState is the tagged union seeding a pool's OHLCV record: `Existing`
// for pools already in the snapshot, `New` for pools promoted by a
// PoolInitialized event during the run.
type InitialState struct {
	Tag string `json:"t"` // "e" (existing) or "n" (new)

	PreviousCloseSqrtPrice    *event.U128 `json:"pcsp,omitempty"`
	PreviousCloseDecimalPrice *event.Price `json:"pcdp,omitempty"`

	InitialSqrtPrice    *event.U128  `json:"isp,omitempty"`
	InitialDecimalPrice *event.Price `json:"idp,omitempty"`
	InitializedSlot     *uint64      `json:"is,omitempty"`
	InitializedBlockTime *int64      `json:"ibt,omitempty"`
}

// EstimatedFees accumulates the fee split estimated from trade events.
type EstimatedFees struct {
	LpFeeA       event.U64 `json:"lpfa"`
	LpFeeB       event.U64 `json:"lpfb"`
	ProtocolFeeA event.U64 `json:"pfa"`
	ProtocolFeeB event.U64 `json:"pfb"`
}

// Record is one pool's OHLCV record. Minutely is populated only in the
// minutely output file.
type Record struct {
	Whirlpool        string        `json:"w"`
	WhirlpoolsConfig string        `json:"wc"`
	TokenA           Token         `json:"ta"`
	TokenB           Token         `json:"tb"`
	TickSpacing      uint16        `json:"ts"`
	InitialState     InitialState  `json:"is"`
	EstimatedFees    EstimatedFees `json:"ef"`
	Daily            DataUnit      `json:"d"`
	Minutely         []DataUnit    `json:"m,omitempty"`
}
