package event

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestU64RoundTrip(t *testing.T) {
	u := U64(18_446_744_073_709_551_615) // max uint64, would lose precision as a JSON number
	b, err := json.Marshal(u)
	require.NoError(t, err)
	require.Equal(t, `"18446744073709551615"`, string(b))

	var got U64
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, u, got)
}

func TestU128RoundTrip(t *testing.T) {
	big128, ok := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	require.True(t, ok)
	u := NewU128FromBig(big128)

	b, err := json.Marshal(u)
	require.NoError(t, err)
	require.Equal(t, `"340282366920938463463374607431768211455"`, string(b))

	var got U128
	require.NoError(t, json.Unmarshal(b, &got))
	require.Zero(t, u.Cmp(&got.Int))
}

func TestU128UnmarshalRejectsNonDigitString(t *testing.T) {
	var u U128
	err := json.Unmarshal([]byte(`"not-a-number"`), &u)
	require.Error(t, err)
}

func TestPriceRoundTrip(t *testing.T) {
	d := decimal.NewFromFloat(1.2345)
	p := NewPrice(d)

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var got Price
	require.NoError(t, json.Unmarshal(b, &got))
	require.True(t, got.Decimal.Equal(d), "got %s want %s", got.Decimal, d)
}
