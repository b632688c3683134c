package event

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/solana-zh/whirlpool-archive/pkg/pricemath"
)

// U64 and U128 serialize as decimal digit strings on the wire: JSON numbers
// would lose precision in any consumer that parses them as
// float64.
type U64 uint64

func (u U64) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("%d", uint64(u)))
}

func (u *U64) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	var v uint64
	if _, err := fmt.Sscan(s, &v); err != nil {
		return fmt.Errorf("event: invalid u64 %q: %w", s, err)
	}
	*u = U64(v)
	return nil
}

type U128 struct {
	big.Int
}

func NewU128FromBig(v *big.Int) U128 {
	var u U128
	u.Int.Set(v)
	return u
}

func (u U128) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Int.String())
}

func (u *U128) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if _, ok := u.Int.SetString(s, 10); !ok {
		return fmt.Errorf("event: invalid u128 %q", s)
	}
	return nil
}

// Price wraps a decimal price, serialized in scientific notation at 10
// significant digits.
type Price struct {
	decimal.Decimal
}

func NewPrice(d decimal.Decimal) Price {
	return Price{d}
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(pricemath.FormatScientific(p.Decimal))
}

func (p *Price) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	d, err := pricemath.ParseScientific(s)
	if err != nil {
		return fmt.Errorf("event: invalid decimal price %q: %w", s, err)
	}
	p.Decimal = d
	return nil
}
