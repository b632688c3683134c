// Package instruction implements the InstructionDecoder collaborator: a pure
// mapping from (name, payload_json) to a tagged DecodedInstruction, covering
// the program-deploy case and the closed ~40-variant taxonomy of Whirlpool
// instructions. Failure to decode is fatal: inputs are assumed canonical.
package instruction

// Name is the instruction's source name, as it appears in the transaction
// stream and in WhirlpoolEvent's origin tag.
type Name string

const (
	NameSwap                              Name = "Swap"
	NameSwapV2                            Name = "SwapV2"
	NameTwoHopSwap                        Name = "TwoHopSwap"
	NameTwoHopSwapV2                      Name = "TwoHopSwapV2"
	NameIncreaseLiquidity                 Name = "IncreaseLiquidity"
	NameIncreaseLiquidityV2               Name = "IncreaseLiquidityV2"
	NameDecreaseLiquidity                 Name = "DecreaseLiquidity"
	NameDecreaseLiquidityV2               Name = "DecreaseLiquidityV2"
	NameAdminIncreaseLiquidity            Name = "AdminIncreaseLiquidity"
	NameInitializePool                    Name = "InitializePool"
	NameInitializePoolV2                  Name = "InitializePoolV2"
	NameSetFeeRate                        Name = "SetFeeRate"
	NameSetProtocolFeeRate                Name = "SetProtocolFeeRate"
	NameInitializeReward                  Name = "InitializeReward"
	NameInitializeRewardV2                Name = "InitializeRewardV2"
	NameSetRewardEmissions                Name = "SetRewardEmissions"
	NameSetRewardEmissionsV2              Name = "SetRewardEmissionsV2"
	NameSetRewardAuthority                Name = "SetRewardAuthority"
	NameSetRewardAuthorityBySuperAuthority Name = "SetRewardAuthorityBySuperAuthority"
	NameOpenPosition                      Name = "OpenPosition"
	NameOpenPositionWithMetadata          Name = "OpenPositionWithMetadata"
	NameOpenBundledPosition               Name = "OpenBundledPosition"
	NameOpenPositionWithTokenExtensions   Name = "OpenPositionWithTokenExtensions"
	NameClosePosition                     Name = "ClosePosition"
	NameCloseBundledPosition              Name = "CloseBundledPosition"
	NameClosePositionWithTokenExtensions  Name = "ClosePositionWithTokenExtensions"
	NameCollectFees                       Name = "CollectFees"
	NameCollectFeesV2                     Name = "CollectFeesV2"
	NameCollectReward                     Name = "CollectReward"
	NameCollectRewardV2                   Name = "CollectRewardV2"
	NameCollectProtocolFees               Name = "CollectProtocolFees"
	NameCollectProtocolFeesV2             Name = "CollectProtocolFeesV2"
	NameUpdateFeesAndRewards              Name = "UpdateFeesAndRewards"
	NameInitializePositionBundle          Name = "InitializePositionBundle"
	NameInitializePositionBundleWithMetadata Name = "InitializePositionBundleWithMetadata"
	NameDeletePositionBundle              Name = "DeletePositionBundle"
	NameInitializeTickArray               Name = "InitializeTickArray"
	NameInitializeConfig                  Name = "InitializeConfig"
	NameSetFeeAuthority                   Name = "SetFeeAuthority"
	NameSetCollectProtocolFeesAuthority   Name = "SetCollectProtocolFeesAuthority"
	NameSetRewardEmissionsSuperAuthority  Name = "SetRewardEmissionsSuperAuthority"
	NameSetDefaultProtocolFeeRate         Name = "SetDefaultProtocolFeeRate"
	NameInitializeConfigExtension         Name = "InitializeConfigExtension"
	NameSetConfigExtensionAuthority       Name = "SetConfigExtensionAuthority"
	NameSetTokenBadgeAuthority            Name = "SetTokenBadgeAuthority"
	NameInitializeFeeTier                 Name = "InitializeFeeTier"
	NameSetDefaultFeeRate                 Name = "SetDefaultFeeRate"
	NameInitializeTokenBadge              Name = "InitializeTokenBadge"
	NameDeleteTokenBadge                  Name = "DeleteTokenBadge"

	nameProgramDeploy Name = "__program_deploy__"
)

// DecodedInstruction is the tagged union InstructionDecoder produces: either
// a program-deploy instruction or one of the Whirlpool instruction variants.
type DecodedInstruction interface {
	InstructionName() Name
}

// ProgramDeployInstruction carries the new program bytes pushed into the
// replay collaborator on an upgrade.
type ProgramDeployInstruction struct {
	ProgramData []byte
}

func (ProgramDeployInstruction) InstructionName() Name { return nameProgramDeploy }

// WritableRefs returns the pubkeys a decoded instruction's event-building
// case needs captured in the pre-instruction snapshot. Accounts
// not present in this instruction are simply omitted from the slice.
type WritableRefs interface {
	WritableAccounts() []string
}

// ---- Swap family ----

type SwapAccounts struct {
	Whirlpool      string
	TokenAuthority string
	TokenVaultA    string
	TokenVaultB    string
}

type SwapArgs struct {
	Amount             U64  `json:"amount"`
	OtherAmountThreshold U64 `json:"otherAmountThreshold"`
	AToB               bool `json:"aToB"`
	AmountSpecifiedIsInput bool `json:"amountSpecifiedIsInput"`
}

type SwapInstruction struct {
	Accounts SwapAccounts
	Args     SwapArgs
	// V1-only transfer amounts, consumed directly from the outer
	// instruction payload alongside args (the runtime's emitted transfer
	// log, not the instruction's own arguments).
	TransferAmount0 U64
	TransferAmount1 U64
	// V2-only typed transfers, populated when the instruction is SwapV2.
	IsV2      bool
	TransferA TransferInfo
	TransferB TransferInfo
}

func (i SwapInstruction) InstructionName() Name {
	if i.IsV2 {
		return NameSwapV2
	}
	return NameSwap
}
func (i SwapInstruction) WritableAccounts() []string {
	return []string{i.Accounts.Whirlpool}
}

// TransferInfo is the decode-time shape of a token transfer: the raw amount
// plus optional Token-2022 transfer-fee parameters (both present together or
// both absent, never one without the other). The mint and decimals on the
// wire TransferInfo are not known at instruction-decode time; they're
// resolved by EventBuilder from pool/decimals-table state, since V1
// instructions carry no token metadata at all.
type TransferInfo struct {
	Amount         U64
	HasTransferFee bool
	TransferFeeBps uint16
	TransferFeeMax U64
}

type TwoHopSwapAccounts struct {
	WhirlpoolOne   string
	WhirlpoolTwo   string
	TokenAuthority string
}

type TwoHopSwapArgs struct {
	AmountSpecifiedIsInput bool `json:"amountSpecifiedIsInput"`
	AToBOne                bool `json:"aToBOne"`
	AToBTwo                bool `json:"aToBTwo"`
}

type TwoHopSwapInstruction struct {
	Accounts TwoHopSwapAccounts
	Args     TwoHopSwapArgs
	IsV2     bool

	// V1 shape: transfer_amount_{0,1} belong to hop one, _{2,3} to hop two.
	TransferAmount0 U64
	TransferAmount1 U64
	TransferAmount2 U64
	TransferAmount3 U64

	// V2 shape: transfer_0 -> in_one, transfer_1 -> out_one & in_two
	// (the same on-chain transfer, shared rather than duplicated), transfer_2 -> out_two.
	Transfer0 TransferInfo
	Transfer1 TransferInfo
	Transfer2 TransferInfo
}

func (i TwoHopSwapInstruction) InstructionName() Name {
	if i.IsV2 {
		return NameTwoHopSwapV2
	}
	return NameTwoHopSwap
}
func (i TwoHopSwapInstruction) WritableAccounts() []string {
	return []string{i.Accounts.WhirlpoolOne, i.Accounts.WhirlpoolTwo}
}

// ---- Liquidity family ----

type LiquidityAccounts struct {
	Whirlpool string
	Position  string
}

type LiquidityArgs struct {
	LiquidityAmount U128 `json:"liquidityAmount"`
}

type LiquidityInstruction struct {
	Name     Name
	Accounts LiquidityAccounts
	Args     LiquidityArgs
	IsV2     bool
	TransferA TransferInfo
	TransferB TransferInfo
}

func (i LiquidityInstruction) InstructionName() Name { return i.Name }
func (i LiquidityInstruction) WritableAccounts() []string {
	return []string{i.Accounts.Whirlpool, i.Accounts.Position}
}

type AdminIncreaseLiquidityAccounts struct {
	Whirlpool string
}

type AdminIncreaseLiquidityArgs struct {
	LiquidityAmount U128 `json:"liquidityAmount"`
}

type AdminIncreaseLiquidityInstruction struct {
	Accounts AdminIncreaseLiquidityAccounts
	Args     AdminIncreaseLiquidityArgs
}

func (AdminIncreaseLiquidityInstruction) InstructionName() Name { return NameAdminIncreaseLiquidity }
func (i AdminIncreaseLiquidityInstruction) WritableAccounts() []string {
	return []string{i.Accounts.Whirlpool}
}

// ---- Pool lifecycle ----

type InitializePoolAccounts struct {
	Whirlpool        string
	WhirlpoolsConfig string
	TokenMintA       string
	TokenMintB       string
	FeeTier          string
}

type InitializePoolArgs struct {
	TickSpacing    uint16 `json:"tickSpacing"`
	InitialSqrtPrice U128 `json:"initialSqrtPrice"`
}

type InitializePoolInstruction struct {
	Accounts        InitializePoolAccounts
	Args            InitializePoolArgs
	IsV2            bool
	TokenProgramA   string
	TokenProgramB   string
}

func (i InitializePoolInstruction) InstructionName() Name {
	if i.IsV2 {
		return NameInitializePoolV2
	}
	return NameInitializePool
}
func (i InitializePoolInstruction) WritableAccounts() []string {
	return []string{i.Accounts.Whirlpool}
}

type FeeRateAccounts struct {
	Whirlpool        string
	WhirlpoolsConfig string
}

type SetFeeRateArgs struct {
	FeeRate uint16 `json:"feeRate"`
}

type SetFeeRateInstruction struct {
	Accounts FeeRateAccounts
	Args     SetFeeRateArgs
}

func (SetFeeRateInstruction) InstructionName() Name { return NameSetFeeRate }
func (i SetFeeRateInstruction) WritableAccounts() []string { return []string{i.Accounts.Whirlpool} }

type SetProtocolFeeRateArgs struct {
	ProtocolFeeRate uint16 `json:"protocolFeeRate"`
}

type SetProtocolFeeRateInstruction struct {
	Accounts FeeRateAccounts
	Args     SetProtocolFeeRateArgs
}

func (SetProtocolFeeRateInstruction) InstructionName() Name { return NameSetProtocolFeeRate }
func (i SetProtocolFeeRateInstruction) WritableAccounts() []string {
	return []string{i.Accounts.Whirlpool}
}

// ---- Rewards ----

type InitializeRewardAccounts struct {
	Whirlpool   string
	RewardMint  string
	RewardVault string
}

type InitializeRewardArgs struct {
	RewardIndex uint8 `json:"rewardIndex"`
}

type InitializeRewardInstruction struct {
	Accounts      InitializeRewardAccounts
	Args          InitializeRewardArgs
	IsV2          bool
	TokenProgram  string
}

func (i InitializeRewardInstruction) InstructionName() Name {
	if i.IsV2 {
		return NameInitializeRewardV2
	}
	return NameInitializeReward
}
func (i InitializeRewardInstruction) WritableAccounts() []string {
	return []string{i.Accounts.Whirlpool}
}

type SetRewardEmissionsAccounts struct {
	Whirlpool string
}

type SetRewardEmissionsArgs struct {
	RewardIndex           uint8 `json:"rewardIndex"`
	EmissionsPerSecondX64 U128  `json:"emissionsPerSecondX64"`
}

type SetRewardEmissionsInstruction struct {
	Accounts SetRewardEmissionsAccounts
	Args     SetRewardEmissionsArgs
	IsV2     bool
}

func (i SetRewardEmissionsInstruction) InstructionName() Name {
	if i.IsV2 {
		return NameSetRewardEmissionsV2
	}
	return NameSetRewardEmissions
}
func (i SetRewardEmissionsInstruction) WritableAccounts() []string {
	return []string{i.Accounts.Whirlpool}
}

type SetRewardAuthorityAccounts struct {
	Whirlpool     string
	NewAuthority  string
}

type SetRewardAuthorityArgs struct {
	RewardIndex uint8 `json:"rewardIndex"`
}

type SetRewardAuthorityInstruction struct {
	Name     Name
	Accounts SetRewardAuthorityAccounts
	Args     SetRewardAuthorityArgs
}

func (i SetRewardAuthorityInstruction) InstructionName() Name { return i.Name }
func (i SetRewardAuthorityInstruction) WritableAccounts() []string {
	return []string{i.Accounts.Whirlpool}
}

// ---- Positions ----

type PositionAccounts struct {
	Whirlpool    string
	Position     string
	PositionMint string
}

type OpenPositionArgs struct {
	TickLowerIndex int32 `json:"tickLowerIndex"`
	TickUpperIndex int32 `json:"tickUpperIndex"`
}

// PositionType distinguishes a standalone Position from one opened under a
// PositionBundle.
type PositionType string

const (
	PositionTypeStandalone PositionType = "Position"
	PositionTypeBundled    PositionType = "BundledPosition"
)

type OpenPositionInstruction struct {
	Name         Name
	Accounts     PositionAccounts
	Args         OpenPositionArgs
	PositionType PositionType
	BundleIndex  uint16
	PositionBundle string
}

func (i OpenPositionInstruction) InstructionName() Name { return i.Name }
func (i OpenPositionInstruction) WritableAccounts() []string {
	return []string{i.Accounts.Whirlpool, i.Accounts.Position}
}

type ClosePositionInstruction struct {
	Name           Name
	Accounts       PositionAccounts
	PositionType   PositionType
	BundleIndex    uint16
	PositionBundle string
}

func (i ClosePositionInstruction) InstructionName() Name { return i.Name }
func (i ClosePositionInstruction) WritableAccounts() []string {
	return []string{i.Accounts.Position, i.Accounts.Whirlpool}
}

// ---- Fee/reward harvest ----

type CollectFeesAccounts struct {
	Whirlpool string
	Position  string
}

type CollectFeesInstruction struct {
	Accounts  CollectFeesAccounts
	IsV2      bool
	TransferA TransferInfo
	TransferB TransferInfo
}

func (i CollectFeesInstruction) InstructionName() Name {
	if i.IsV2 {
		return NameCollectFeesV2
	}
	return NameCollectFees
}
func (i CollectFeesInstruction) WritableAccounts() []string {
	return []string{i.Accounts.Position, i.Accounts.Whirlpool}
}

type CollectRewardAccounts struct {
	Whirlpool string
	Position  string
}

type CollectRewardArgs struct {
	RewardIndex uint8 `json:"rewardIndex"`
}

type CollectRewardInstruction struct {
	Accounts       CollectRewardAccounts
	Args           CollectRewardArgs
	IsV2           bool
	TransferReward TransferInfo
}

func (i CollectRewardInstruction) InstructionName() Name {
	if i.IsV2 {
		return NameCollectRewardV2
	}
	return NameCollectReward
}
func (i CollectRewardInstruction) WritableAccounts() []string {
	return []string{i.Accounts.Position, i.Accounts.Whirlpool}
}

type CollectProtocolFeesAccounts struct {
	Whirlpool        string
	WhirlpoolsConfig string
}

type CollectProtocolFeesInstruction struct {
	Accounts  CollectProtocolFeesAccounts
	IsV2      bool
	TransferA TransferInfo
	TransferB TransferInfo
}

func (i CollectProtocolFeesInstruction) InstructionName() Name {
	if i.IsV2 {
		return NameCollectProtocolFeesV2
	}
	return NameCollectProtocolFees
}
func (i CollectProtocolFeesInstruction) WritableAccounts() []string {
	return []string{i.Accounts.Whirlpool}
}

type UpdateFeesAndRewardsAccounts struct {
	Whirlpool string
	Position  string
}

type UpdateFeesAndRewardsInstruction struct {
	Accounts UpdateFeesAndRewardsAccounts
}

func (UpdateFeesAndRewardsInstruction) InstructionName() Name { return NameUpdateFeesAndRewards }
func (i UpdateFeesAndRewardsInstruction) WritableAccounts() []string {
	return []string{i.Accounts.Position}
}

// ---- Position bundles ----

type PositionBundleAccounts struct {
	PositionBundle     string
	PositionBundleMint string
	Owner              string
}

type PositionBundleInstruction struct {
	Name     Name
	Accounts PositionBundleAccounts
}

func (i PositionBundleInstruction) InstructionName() Name { return i.Name }
func (i PositionBundleInstruction) WritableAccounts() []string {
	return []string{i.Accounts.PositionBundle}
}

// ---- Tick arrays ----

type InitializeTickArrayAccounts struct {
	Whirlpool string
	TickArray string
}

type InitializeTickArrayArgs struct {
	StartTickIndex int32 `json:"startTickIndex"`
}

type InitializeTickArrayInstruction struct {
	Accounts InitializeTickArrayAccounts
	Args     InitializeTickArrayArgs
}

func (InitializeTickArrayInstruction) InstructionName() Name { return NameInitializeTickArray }
func (i InitializeTickArrayInstruction) WritableAccounts() []string {
	return []string{i.Accounts.TickArray}
}

// ---- Config / fee tier / token badge ----

type InitializeConfigAccounts struct {
	Config string
}

type InitializeConfigArgs struct {
	FeeAuthority                  string `json:"feeAuthority"`
	CollectProtocolFeesAuthority  string `json:"collectProtocolFeesAuthority"`
	RewardEmissionsSuperAuthority string `json:"rewardEmissionsSuperAuthority"`
	DefaultProtocolFeeRate        uint16 `json:"defaultProtocolFeeRate"`
}

type InitializeConfigInstruction struct {
	Accounts InitializeConfigAccounts
	Args     InitializeConfigArgs
}

func (InitializeConfigInstruction) InstructionName() Name { return NameInitializeConfig }
func (i InitializeConfigInstruction) WritableAccounts() []string {
	return []string{i.Accounts.Config}
}

type ConfigUpdateAccounts struct {
	Config string
}

type ConfigUpdateInstruction struct {
	Name     Name
	Accounts ConfigUpdateAccounts
	NewFeeAuthority                  string
	NewCollectProtocolFeesAuthority  string
	NewRewardEmissionsSuperAuthority string
	NewDefaultProtocolFeeRate        uint16
	HasDefaultProtocolFeeRate        bool
}

func (i ConfigUpdateInstruction) InstructionName() Name { return i.Name }
func (i ConfigUpdateInstruction) WritableAccounts() []string {
	return []string{i.Accounts.Config}
}

type InitializeConfigExtensionAccounts struct {
	WhirlpoolsConfig string
	ConfigExtension  string
}

type InitializeConfigExtensionInstruction struct {
	Accounts InitializeConfigExtensionAccounts
}

func (InitializeConfigExtensionInstruction) InstructionName() Name {
	return NameInitializeConfigExtension
}
func (i InitializeConfigExtensionInstruction) WritableAccounts() []string {
	return []string{i.Accounts.ConfigExtension}
}

type ConfigExtensionUpdateAccounts struct {
	ConfigExtension string
}

type ConfigExtensionUpdateInstruction struct {
	Name         Name
	Accounts     ConfigExtensionUpdateAccounts
	NewAuthority string
}

func (i ConfigExtensionUpdateInstruction) InstructionName() Name { return i.Name }
func (i ConfigExtensionUpdateInstruction) WritableAccounts() []string {
	return []string{i.Accounts.ConfigExtension}
}

type InitializeFeeTierAccounts struct {
	WhirlpoolsConfig string
	FeeTier          string
}

type InitializeFeeTierArgs struct {
	TickSpacing    uint16 `json:"tickSpacing"`
	DefaultFeeRate uint16 `json:"defaultFeeRate"`
}

type InitializeFeeTierInstruction struct {
	Accounts InitializeFeeTierAccounts
	Args     InitializeFeeTierArgs
}

func (InitializeFeeTierInstruction) InstructionName() Name { return NameInitializeFeeTier }
func (i InitializeFeeTierInstruction) WritableAccounts() []string {
	return []string{i.Accounts.FeeTier}
}

type SetDefaultFeeRateAccounts struct {
	FeeTier string
}

type SetDefaultFeeRateArgs struct {
	DefaultFeeRate uint16 `json:"defaultFeeRate"`
}

type SetDefaultFeeRateInstruction struct {
	Accounts SetDefaultFeeRateAccounts
	Args     SetDefaultFeeRateArgs
}

func (SetDefaultFeeRateInstruction) InstructionName() Name { return NameSetDefaultFeeRate }
func (i SetDefaultFeeRateInstruction) WritableAccounts() []string {
	return []string{i.Accounts.FeeTier}
}

type TokenBadgeAccounts struct {
	WhirlpoolsConfig string
	TokenMint        string
	TokenBadge       string
}

type TokenBadgeInstruction struct {
	Name     Name
	Accounts TokenBadgeAccounts
}

func (i TokenBadgeInstruction) InstructionName() Name { return i.Name }
func (i TokenBadgeInstruction) WritableAccounts() []string { return []string{i.Accounts.TokenBadge} }
