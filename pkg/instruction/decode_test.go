package instruction

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeSwapV1(t *testing.T) {
	payload := `{
		"accounts": {"whirlpool": "poolA", "tokenAuthority": "authority1"},
		"args": {"amount": "1000000", "otherAmountThreshold": "990000", "aToB": true, "amountSpecifiedIsInput": true},
		"transfers": [{"amount": "1000000"}, {"amount": "999000"}]
	}`

	decoded, err := Decode(string(NameSwap), payload)
	require.NoError(t, err)

	swap, ok := decoded.(SwapInstruction)
	require.True(t, ok)
	require.False(t, swap.IsV2)
	require.Equal(t, "poolA", swap.Accounts.Whirlpool)
	require.EqualValues(t, 1_000_000, swap.Args.Amount)
	require.True(t, swap.Args.AToB)
	require.EqualValues(t, 1_000_000, swap.TransferAmount0)
	require.EqualValues(t, 999_000, swap.TransferAmount1)
	require.Equal(t, NameSwap, swap.InstructionName())
}

func TestDecodeSwapV2WithTransferFee(t *testing.T) {
	payload := `{
		"accounts": {"whirlpool": "poolA"},
		"args": {"amount": "10000", "otherAmountThreshold": "0", "aToB": true, "amountSpecifiedIsInput": true},
		"transfers": [
			{"amount": "10000", "transferFeeBps": 100, "transferFeeMax": "500"},
			{"amount": "9900"}
		]
	}`

	decoded, err := Decode(string(NameSwapV2), payload)
	require.NoError(t, err)

	swap, ok := decoded.(SwapInstruction)
	require.True(t, ok)
	require.True(t, swap.IsV2)
	require.True(t, swap.TransferA.HasTransferFee)
	require.EqualValues(t, 100, swap.TransferA.TransferFeeBps)
	require.EqualValues(t, 500, swap.TransferA.TransferFeeMax)
	require.False(t, swap.TransferB.HasTransferFee)
	require.Equal(t, NameSwapV2, swap.InstructionName())
}

func TestDecodeUnknownInstructionIsFatal(t *testing.T) {
	_, err := Decode("not_a_real_instruction", `{}`)
	require.Error(t, err)
}

func TestDecodeMalformedPayloadIsFatal(t *testing.T) {
	_, err := Decode(string(NameSwap), `{not json`)
	require.Error(t, err)
}

func TestDecodeTwoHopSwapV1(t *testing.T) {
	payload := `{
		"accounts": {"whirlpoolOne": "pool1", "whirlpoolTwo": "pool2"},
		"args": {"amountSpecifiedIsInput": true, "aToBOne": true, "aToBTwo": true},
		"transfers": [
			{"amount": "1000"}, {"amount": "999"}, {"amount": "999"}, {"amount": "998"}
		]
	}`
	decoded, err := Decode(string(NameTwoHopSwap), payload)
	require.NoError(t, err)

	hop, ok := decoded.(TwoHopSwapInstruction)
	require.True(t, ok)
	require.Equal(t, "pool1", hop.Accounts.WhirlpoolOne)
	require.Equal(t, "pool2", hop.Accounts.WhirlpoolTwo)
	require.EqualValues(t, 999, hop.TransferAmount1)
	require.EqualValues(t, 999, hop.TransferAmount2)
}
