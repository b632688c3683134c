package instruction

import (
	"encoding/json"
	"fmt"
)

// transferWire is the wire shape of one entry in a payload's "transfers"
// array: positional, in the per-instruction order documented on each
// instruction's Decoded type.
type transferWire struct {
	Amount         U64  `json:"amount"`
	TransferFeeBps *uint16 `json:"transferFeeBps,omitempty"`
	TransferFeeMax *U64    `json:"transferFeeMax,omitempty"`
}

func (w transferWire) toTransferInfo() (TransferInfo, error) {
	if (w.TransferFeeBps == nil) != (w.TransferFeeMax == nil) {
		return TransferInfo{}, fmt.Errorf("instruction: transfer fee params must be both present or both absent")
	}
	ti := TransferInfo{Amount: w.Amount}
	if w.TransferFeeBps != nil {
		ti.HasTransferFee = true
		ti.TransferFeeBps = *w.TransferFeeBps
		ti.TransferFeeMax = *w.TransferFeeMax
	}
	return ti, nil
}

type withTransfers struct {
	raw
	Transfers []transferWire `json:"transfers"`
}

func parseWithTransfers(payloadJSON string) (withTransfers, error) {
	var w withTransfers
	if err := json.Unmarshal([]byte(payloadJSON), &w); err != nil {
		return withTransfers{}, fmt.Errorf("instruction: malformed payload json: %w", err)
	}
	return w, nil
}

func nthTransfer(transfers []transferWire, n int) (TransferInfo, error) {
	if n >= len(transfers) {
		return TransferInfo{}, fmt.Errorf("instruction: expected at least %d transfers, got %d", n+1, len(transfers))
	}
	return transfers[n].toTransferInfo()
}

// Decode maps (name, payload_json) to a DecodedInstruction. Any unknown
// instruction name or malformed payload is a fatal precondition violation:
// the caller is expected to abort the run.
func Decode(name string, payloadJSON string) (DecodedInstruction, error) {
	if name == "__program_deploy__" {
		var pd struct {
			ProgramData []byte `json:"programData"`
		}
		if err := json.Unmarshal([]byte(payloadJSON), &pd); err != nil {
			return nil, fmt.Errorf("instruction: malformed program-deploy payload: %w", err)
		}
		return ProgramDeployInstruction{ProgramData: pd.ProgramData}, nil
	}

	switch Name(name) {
	case NameSwap, NameSwapV2:
		return decodeSwap(name, payloadJSON)
	case NameTwoHopSwap, NameTwoHopSwapV2:
		return decodeTwoHopSwap(name, payloadJSON)
	case NameIncreaseLiquidity, NameIncreaseLiquidityV2, NameDecreaseLiquidity, NameDecreaseLiquidityV2:
		return decodeLiquidity(name, payloadJSON)
	case NameAdminIncreaseLiquidity:
		return decodeAdminIncreaseLiquidity(payloadJSON)
	case NameInitializePool, NameInitializePoolV2:
		return decodeInitializePool(name, payloadJSON)
	case NameSetFeeRate:
		return decodeSetFeeRate(payloadJSON)
	case NameSetProtocolFeeRate:
		return decodeSetProtocolFeeRate(payloadJSON)
	case NameInitializeReward, NameInitializeRewardV2:
		return decodeInitializeReward(name, payloadJSON)
	case NameSetRewardEmissions, NameSetRewardEmissionsV2:
		return decodeSetRewardEmissions(name, payloadJSON)
	case NameSetRewardAuthority, NameSetRewardAuthorityBySuperAuthority:
		return decodeSetRewardAuthority(name, payloadJSON)
	case NameOpenPosition, NameOpenPositionWithMetadata, NameOpenBundledPosition, NameOpenPositionWithTokenExtensions:
		return decodeOpenPosition(name, payloadJSON)
	case NameClosePosition, NameCloseBundledPosition, NameClosePositionWithTokenExtensions:
		return decodeClosePosition(name, payloadJSON)
	case NameCollectFees, NameCollectFeesV2:
		return decodeCollectFees(name, payloadJSON)
	case NameCollectReward, NameCollectRewardV2:
		return decodeCollectReward(name, payloadJSON)
	case NameCollectProtocolFees, NameCollectProtocolFeesV2:
		return decodeCollectProtocolFees(name, payloadJSON)
	case NameUpdateFeesAndRewards:
		return decodeUpdateFeesAndRewards(payloadJSON)
	case NameInitializePositionBundle, NameInitializePositionBundleWithMetadata:
		return decodePositionBundle(name, payloadJSON)
	case NameDeletePositionBundle:
		return decodePositionBundle(name, payloadJSON)
	case NameInitializeTickArray:
		return decodeInitializeTickArray(payloadJSON)
	case NameInitializeConfig:
		return decodeInitializeConfig(payloadJSON)
	case NameSetFeeAuthority, NameSetCollectProtocolFeesAuthority, NameSetRewardEmissionsSuperAuthority, NameSetDefaultProtocolFeeRate:
		return decodeConfigUpdate(name, payloadJSON)
	case NameInitializeConfigExtension:
		return decodeInitializeConfigExtension(payloadJSON)
	case NameSetConfigExtensionAuthority, NameSetTokenBadgeAuthority:
		return decodeConfigExtensionUpdate(name, payloadJSON)
	case NameInitializeFeeTier:
		return decodeInitializeFeeTier(payloadJSON)
	case NameSetDefaultFeeRate:
		return decodeSetDefaultFeeRate(payloadJSON)
	case NameInitializeTokenBadge, NameDeleteTokenBadge:
		return decodeTokenBadge(name, payloadJSON)
	default:
		return nil, fmt.Errorf("instruction: unknown instruction variant %q", name)
	}
}

func decodeSwap(name, payloadJSON string) (DecodedInstruction, error) {
	w, err := parseWithTransfers(payloadJSON)
	if err != nil {
		return nil, err
	}
	isV2 := Name(name) == NameSwapV2
	inst := SwapInstruction{IsV2: isV2}
	if err := unmarshalArgs(w.raw, &inst.Args); err != nil {
		return nil, err
	}
	inst.Accounts.Whirlpool, err = w.account("whirlpool")
	if err != nil {
		return nil, err
	}
	inst.Accounts.TokenAuthority = w.optionalAccount("tokenAuthority")
	inst.Accounts.TokenVaultA = w.optionalAccount("tokenVaultA")
	inst.Accounts.TokenVaultB = w.optionalAccount("tokenVaultB")

	if isV2 {
		inst.TransferA, err = nthTransfer(w.Transfers, 0)
		if err != nil {
			return nil, err
		}
		inst.TransferB, err = nthTransfer(w.Transfers, 1)
		if err != nil {
			return nil, err
		}
	} else {
		t0, err := nthTransfer(w.Transfers, 0)
		if err != nil {
			return nil, err
		}
		t1, err := nthTransfer(w.Transfers, 1)
		if err != nil {
			return nil, err
		}
		inst.TransferAmount0 = t0.Amount
		inst.TransferAmount1 = t1.Amount
	}
	return inst, nil
}

func decodeTwoHopSwap(name, payloadJSON string) (DecodedInstruction, error) {
	w, err := parseWithTransfers(payloadJSON)
	if err != nil {
		return nil, err
	}
	isV2 := Name(name) == NameTwoHopSwapV2
	inst := TwoHopSwapInstruction{IsV2: isV2}
	if err := unmarshalArgs(w.raw, &inst.Args); err != nil {
		return nil, err
	}
	inst.Accounts.WhirlpoolOne, err = w.account("whirlpoolOne")
	if err != nil {
		return nil, err
	}
	inst.Accounts.WhirlpoolTwo, err = w.account("whirlpoolTwo")
	if err != nil {
		return nil, err
	}
	inst.Accounts.TokenAuthority = w.optionalAccount("tokenAuthority")

	if isV2 {
		if inst.Transfer0, err = nthTransfer(w.Transfers, 0); err != nil {
			return nil, err
		}
		if inst.Transfer1, err = nthTransfer(w.Transfers, 1); err != nil {
			return nil, err
		}
		if inst.Transfer2, err = nthTransfer(w.Transfers, 2); err != nil {
			return nil, err
		}
	} else {
		t0, err := nthTransfer(w.Transfers, 0)
		if err != nil {
			return nil, err
		}
		t1, err := nthTransfer(w.Transfers, 1)
		if err != nil {
			return nil, err
		}
		t2, err := nthTransfer(w.Transfers, 2)
		if err != nil {
			return nil, err
		}
		t3, err := nthTransfer(w.Transfers, 3)
		if err != nil {
			return nil, err
		}
		inst.TransferAmount0, inst.TransferAmount1 = t0.Amount, t1.Amount
		inst.TransferAmount2, inst.TransferAmount3 = t2.Amount, t3.Amount
	}
	return inst, nil
}

func decodeLiquidity(name, payloadJSON string) (DecodedInstruction, error) {
	w, err := parseWithTransfers(payloadJSON)
	if err != nil {
		return nil, err
	}
	isV2 := Name(name) == NameIncreaseLiquidityV2 || Name(name) == NameDecreaseLiquidityV2
	inst := LiquidityInstruction{Name: Name(name), IsV2: isV2}
	if err := unmarshalArgs(w.raw, &inst.Args); err != nil {
		return nil, err
	}
	inst.Accounts.Whirlpool, err = w.account("whirlpool")
	if err != nil {
		return nil, err
	}
	inst.Accounts.Position, err = w.account("position")
	if err != nil {
		return nil, err
	}
	if inst.TransferA, err = nthTransfer(w.Transfers, 0); err != nil {
		return nil, err
	}
	if inst.TransferB, err = nthTransfer(w.Transfers, 1); err != nil {
		return nil, err
	}
	return inst, nil
}

func decodeAdminIncreaseLiquidity(payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := AdminIncreaseLiquidityInstruction{}
	if err := unmarshalArgs(r, &inst.Args); err != nil {
		return nil, err
	}
	inst.Accounts.Whirlpool, err = r.account("whirlpool")
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func decodeInitializePool(name, payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	isV2 := Name(name) == NameInitializePoolV2
	inst := InitializePoolInstruction{IsV2: isV2}
	if err := unmarshalArgs(r, &inst.Args); err != nil {
		return nil, err
	}
	inst.Accounts.Whirlpool, err = r.account("whirlpool")
	if err != nil {
		return nil, err
	}
	inst.Accounts.WhirlpoolsConfig = r.optionalAccount("whirlpoolsConfig")
	inst.Accounts.TokenMintA, err = r.account("tokenMintA")
	if err != nil {
		return nil, err
	}
	inst.Accounts.TokenMintB, err = r.account("tokenMintB")
	if err != nil {
		return nil, err
	}
	inst.Accounts.FeeTier = r.optionalAccount("feeTier")
	if isV2 {
		inst.TokenProgramA = r.optionalAccount("tokenProgramA")
		inst.TokenProgramB = r.optionalAccount("tokenProgramB")
	}
	return inst, nil
}

func decodeSetFeeRate(payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := SetFeeRateInstruction{}
	if err := unmarshalArgs(r, &inst.Args); err != nil {
		return nil, err
	}
	inst.Accounts.Whirlpool, err = r.account("whirlpool")
	if err != nil {
		return nil, err
	}
	inst.Accounts.WhirlpoolsConfig = r.optionalAccount("whirlpoolsConfig")
	return inst, nil
}

func decodeSetProtocolFeeRate(payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := SetProtocolFeeRateInstruction{}
	if err := unmarshalArgs(r, &inst.Args); err != nil {
		return nil, err
	}
	inst.Accounts.Whirlpool, err = r.account("whirlpool")
	if err != nil {
		return nil, err
	}
	inst.Accounts.WhirlpoolsConfig = r.optionalAccount("whirlpoolsConfig")
	return inst, nil
}

func decodeInitializeReward(name, payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	isV2 := Name(name) == NameInitializeRewardV2
	inst := InitializeRewardInstruction{IsV2: isV2}
	if err := unmarshalArgs(r, &inst.Args); err != nil {
		return nil, err
	}
	inst.Accounts.Whirlpool, err = r.account("whirlpool")
	if err != nil {
		return nil, err
	}
	inst.Accounts.RewardMint, err = r.account("rewardMint")
	if err != nil {
		return nil, err
	}
	inst.Accounts.RewardVault = r.optionalAccount("rewardVault")
	if isV2 {
		inst.TokenProgram = r.optionalAccount("rewardTokenProgram")
	}
	return inst, nil
}

func decodeSetRewardEmissions(name, payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := SetRewardEmissionsInstruction{IsV2: Name(name) == NameSetRewardEmissionsV2}
	if err := unmarshalArgs(r, &inst.Args); err != nil {
		return nil, err
	}
	inst.Accounts.Whirlpool, err = r.account("whirlpool")
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func decodeSetRewardAuthority(name, payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := SetRewardAuthorityInstruction{Name: Name(name)}
	if err := unmarshalArgs(r, &inst.Args); err != nil {
		return nil, err
	}
	inst.Accounts.Whirlpool, err = r.account("whirlpool")
	if err != nil {
		return nil, err
	}
	inst.Accounts.NewAuthority, err = r.account("newRewardAuthority")
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func decodeOpenPosition(name, payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := OpenPositionInstruction{Name: Name(name), PositionType: PositionTypeStandalone}
	if err := unmarshalArgs(r, &inst.Args); err != nil {
		return nil, err
	}
	inst.Accounts.Whirlpool, err = r.account("whirlpool")
	if err != nil {
		return nil, err
	}
	inst.Accounts.Position, err = r.account("position")
	if err != nil {
		return nil, err
	}
	inst.Accounts.PositionMint = r.optionalAccount("positionMint")

	if Name(name) == NameOpenBundledPosition {
		inst.PositionType = PositionTypeBundled
		inst.PositionBundle, err = r.account("positionBundle")
		if err != nil {
			return nil, err
		}
		var args struct {
			BundleIndex uint16 `json:"bundleIndex"`
		}
		if err := unmarshalArgs(r, &args); err != nil {
			return nil, err
		}
		inst.BundleIndex = args.BundleIndex
	}
	return inst, nil
}

func decodeClosePosition(name, payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := ClosePositionInstruction{Name: Name(name), PositionType: PositionTypeStandalone}
	inst.Accounts.Whirlpool = r.optionalAccount("whirlpool")
	inst.Accounts.Position, err = r.account("position")
	if err != nil {
		return nil, err
	}

	if Name(name) == NameCloseBundledPosition {
		inst.PositionType = PositionTypeBundled
		inst.PositionBundle, err = r.account("positionBundle")
		if err != nil {
			return nil, err
		}
		var args struct {
			BundleIndex uint16 `json:"bundleIndex"`
		}
		if err := unmarshalArgs(r, &args); err != nil {
			return nil, err
		}
		inst.BundleIndex = args.BundleIndex
	}
	return inst, nil
}

func decodeCollectFees(name, payloadJSON string) (DecodedInstruction, error) {
	w, err := parseWithTransfers(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := CollectFeesInstruction{IsV2: Name(name) == NameCollectFeesV2}
	inst.Accounts.Whirlpool, err = w.account("whirlpool")
	if err != nil {
		return nil, err
	}
	inst.Accounts.Position, err = w.account("position")
	if err != nil {
		return nil, err
	}
	if inst.TransferA, err = nthTransfer(w.Transfers, 0); err != nil {
		return nil, err
	}
	if inst.TransferB, err = nthTransfer(w.Transfers, 1); err != nil {
		return nil, err
	}
	return inst, nil
}

func decodeCollectReward(name, payloadJSON string) (DecodedInstruction, error) {
	w, err := parseWithTransfers(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := CollectRewardInstruction{IsV2: Name(name) == NameCollectRewardV2}
	if err := unmarshalArgs(w.raw, &inst.Args); err != nil {
		return nil, err
	}
	inst.Accounts.Whirlpool, err = w.account("whirlpool")
	if err != nil {
		return nil, err
	}
	inst.Accounts.Position, err = w.account("position")
	if err != nil {
		return nil, err
	}
	if inst.TransferReward, err = nthTransfer(w.Transfers, 0); err != nil {
		return nil, err
	}
	return inst, nil
}

func decodeCollectProtocolFees(name, payloadJSON string) (DecodedInstruction, error) {
	w, err := parseWithTransfers(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := CollectProtocolFeesInstruction{IsV2: Name(name) == NameCollectProtocolFeesV2}
	inst.Accounts.Whirlpool, err = w.account("whirlpool")
	if err != nil {
		return nil, err
	}
	inst.Accounts.WhirlpoolsConfig = w.optionalAccount("whirlpoolsConfig")
	if inst.TransferA, err = nthTransfer(w.Transfers, 0); err != nil {
		return nil, err
	}
	if inst.TransferB, err = nthTransfer(w.Transfers, 1); err != nil {
		return nil, err
	}
	return inst, nil
}

func decodeUpdateFeesAndRewards(payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := UpdateFeesAndRewardsInstruction{}
	inst.Accounts.Whirlpool, err = r.account("whirlpool")
	if err != nil {
		return nil, err
	}
	inst.Accounts.Position, err = r.account("position")
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func decodePositionBundle(name, payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := PositionBundleInstruction{Name: Name(name)}
	inst.Accounts.PositionBundle, err = r.account("positionBundle")
	if err != nil {
		return nil, err
	}
	inst.Accounts.PositionBundleMint = r.optionalAccount("positionBundleMint")
	inst.Accounts.Owner = r.optionalAccount("positionBundleOwner")
	return inst, nil
}

func decodeInitializeTickArray(payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := InitializeTickArrayInstruction{}
	if err := unmarshalArgs(r, &inst.Args); err != nil {
		return nil, err
	}
	inst.Accounts.Whirlpool, err = r.account("whirlpool")
	if err != nil {
		return nil, err
	}
	inst.Accounts.TickArray, err = r.account("tickArray")
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func decodeInitializeConfig(payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := InitializeConfigInstruction{}
	if err := unmarshalArgs(r, &inst.Args); err != nil {
		return nil, err
	}
	inst.Accounts.Config, err = r.account("config")
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func decodeConfigUpdate(name, payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := ConfigUpdateInstruction{Name: Name(name)}
	inst.Accounts.Config, err = r.account("whirlpoolsConfig")
	if err != nil {
		return nil, err
	}
	switch Name(name) {
	case NameSetFeeAuthority:
		inst.NewFeeAuthority = r.optionalAccount("newFeeAuthority")
	case NameSetCollectProtocolFeesAuthority:
		inst.NewCollectProtocolFeesAuthority = r.optionalAccount("newCollectProtocolFeesAuthority")
	case NameSetRewardEmissionsSuperAuthority:
		inst.NewRewardEmissionsSuperAuthority = r.optionalAccount("newRewardEmissionsSuperAuthority")
	case NameSetDefaultProtocolFeeRate:
		var args struct {
			DefaultProtocolFeeRate uint16 `json:"defaultProtocolFeeRate"`
		}
		if err := unmarshalArgs(r, &args); err != nil {
			return nil, err
		}
		inst.NewDefaultProtocolFeeRate = args.DefaultProtocolFeeRate
		inst.HasDefaultProtocolFeeRate = true
	}
	return inst, nil
}

func decodeInitializeConfigExtension(payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := InitializeConfigExtensionInstruction{}
	inst.Accounts.WhirlpoolsConfig, err = r.account("whirlpoolsConfig")
	if err != nil {
		return nil, err
	}
	inst.Accounts.ConfigExtension, err = r.account("whirlpoolsConfigExtension")
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func decodeConfigExtensionUpdate(name, payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := ConfigExtensionUpdateInstruction{Name: Name(name)}
	inst.Accounts.ConfigExtension, err = r.account("whirlpoolsConfigExtension")
	if err != nil {
		return nil, err
	}
	switch Name(name) {
	case NameSetConfigExtensionAuthority:
		inst.NewAuthority = r.optionalAccount("newConfigExtensionAuthority")
	case NameSetTokenBadgeAuthority:
		inst.NewAuthority = r.optionalAccount("newTokenBadgeAuthority")
	}
	return inst, nil
}

func decodeInitializeFeeTier(payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := InitializeFeeTierInstruction{}
	if err := unmarshalArgs(r, &inst.Args); err != nil {
		return nil, err
	}
	inst.Accounts.WhirlpoolsConfig, err = r.account("whirlpoolsConfig")
	if err != nil {
		return nil, err
	}
	inst.Accounts.FeeTier, err = r.account("feeTier")
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func decodeSetDefaultFeeRate(payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := SetDefaultFeeRateInstruction{}
	if err := unmarshalArgs(r, &inst.Args); err != nil {
		return nil, err
	}
	inst.Accounts.FeeTier, err = r.account("feeTier")
	if err != nil {
		return nil, err
	}
	return inst, nil
}

func decodeTokenBadge(name, payloadJSON string) (DecodedInstruction, error) {
	r, err := parseRaw(payloadJSON)
	if err != nil {
		return nil, err
	}
	inst := TokenBadgeInstruction{Name: Name(name)}
	inst.Accounts.WhirlpoolsConfig, err = r.account("whirlpoolsConfig")
	if err != nil {
		return nil, err
	}
	inst.Accounts.TokenMint, err = r.account("tokenMint")
	if err != nil {
		return nil, err
	}
	inst.Accounts.TokenBadge, err = r.account("tokenBadge")
	if err != nil {
		return nil, err
	}
	return inst, nil
}
