// Package event implements the WhirlpoolEvent taxonomy and the EventBuilder
// collaborator: one case per AMM instruction variant, reading
// pre/post account views and emitting the semantic delta as a typed, tagged
// event.
package event

// Direction is the swap direction of a Traded event.
type Direction string

const (
	AtoB Direction = "AtoB"
	BtoA Direction = "BtoA"
)

// TradeMode distinguishes exact-in from exact-out swaps.
type TradeMode string

const (
	ExactIn  TradeMode = "ExactIn"
	ExactOut TradeMode = "ExactOut"
)

// PositionType distinguishes a standalone position from a bundled one.
type PositionType string

const (
	PositionTypeStandalone PositionType = "Position"
	PositionTypeBundled    PositionType = "BundledPosition"
)

// TokenProgramKind identifies which SPL token program backs a mint:
// resolved for V2 instructions, always Token for V1.
type TokenProgramKind string

const (
	TokenProgramToken     TokenProgramKind = "Token"
	TokenProgramToken2022 TokenProgramKind = "Token2022"
)

// TransferInfo is the wire shape of one token transfer: a
// resolved mint/decimals pair plus the raw amount and, for Token-2022
// transfer-fee-aware transfers, the fee parameters (both present or both
// absent).
type TransferInfo struct {
	Mint           string  `json:"m"`
	Amount         U64     `json:"a"`
	Decimals       uint8   `json:"d"`
	TransferFeeBps *uint16 `json:"fb,omitempty"`
	TransferFeeMax *U64    `json:"fm,omitempty"`
}

// Event is implemented by every WhirlpoolEvent variant. Variant returns the
// tag used for the event's "type" field.
type Event interface {
	Variant() string
}

// Traded is emitted by Swap, SwapV2, and each hop of TwoHopSwap{,V2}.
type Traded struct {
	Type            string    `json:"type"`
	Origin          string    `json:"o"`
	Whirlpool       string    `json:"w"`
	TokenAuthority  string    `json:"ta_auth"`
	Direction       Direction `json:"td"`
	Mode            TradeMode `json:"tm"`
	OldSqrtPrice    U128      `json:"osp"`
	NewSqrtPrice    U128      `json:"nsp"`
	OldTickIndex    int32     `json:"octi"`
	NewTickIndex    int32     `json:"ncti"`
	OldDecimalPrice Price     `json:"odp"`
	NewDecimalPrice Price     `json:"ndp"`
	FeeRate         uint16    `json:"fr"`
	ProtocolFeeRate uint16    `json:"pfr"`
	TransferIn      TransferInfo `json:"ti"`
	TransferOut     TransferInfo `json:"to"`
}

func (Traded) Variant() string { return "Traded" }

// liquidityEvent is the shared payload of LiquidityDeposited and
// LiquidityWithdrawn.
type liquidityEvent struct {
	Type               string `json:"type"`
	Origin             string `json:"o"`
	Whirlpool          string `json:"w"`
	Position           string `json:"pos"`
	LiquidityDelta     U128   `json:"ld"`
	TickLowerIndex     int32  `json:"tl"`
	TickUpperIndex     int32  `json:"tu"`
	OldPositionLiquidity U128 `json:"opl"`
	NewPositionLiquidity U128 `json:"npl"`
	TransferA          TransferInfo `json:"ta"`
	TransferB          TransferInfo `json:"tb"`
	OldPoolLiquidity   U128   `json:"oql"`
	NewPoolLiquidity   U128   `json:"nql"`
	PoolSqrtPrice      U128   `json:"sp"`
	PoolTickIndex      int32  `json:"cti"`
}

type LiquidityDeposited liquidityEvent

func (LiquidityDeposited) Variant() string { return "LiquidityDeposited" }

type LiquidityWithdrawn liquidityEvent

func (LiquidityWithdrawn) Variant() string { return "LiquidityWithdrawn" }

// LiquidityPatched is emitted by AdminIncreaseLiquidity: a pool-level-only
// liquidity delta with no position view.
type LiquidityPatched struct {
	Type             string `json:"type"`
	Origin           string `json:"o"`
	Whirlpool        string `json:"w"`
	LiquidityDelta   U128   `json:"ld"`
	OldPoolLiquidity U128   `json:"opl"`
	NewPoolLiquidity U128   `json:"npl"`
}

func (LiquidityPatched) Variant() string { return "LiquidityPatched" }

// PoolInitialized is emitted by InitializePool{,V2}.
type PoolInitialized struct {
	Type                string            `json:"type"`
	Origin              string            `json:"o"`
	Whirlpool           string            `json:"w"`
	TickSpacing         uint16            `json:"ts"`
	InitialSqrtPrice    U128              `json:"isp"`
	CurrentTickIndex    int32             `json:"cti"`
	MintA               string            `json:"ma"`
	MintB               string            `json:"mb"`
	DecimalsA           uint8             `json:"da"`
	DecimalsB           uint8             `json:"db"`
	FeeRate             uint16            `json:"fr"`
	ProtocolFeeRate     uint16            `json:"pfr"`
	TokenProgramA       TokenProgramKind  `json:"tpa"`
	TokenProgramB       TokenProgramKind  `json:"tpb"`
}

func (PoolInitialized) Variant() string { return "PoolInitialized" }

// PoolFeeRateUpdated is emitted by SetFeeRate.
type PoolFeeRateUpdated struct {
	Type      string `json:"type"`
	Origin    string `json:"o"`
	Whirlpool string `json:"w"`
	OldRate   uint16 `json:"of"`
	NewRate   uint16 `json:"nf"`
}

func (PoolFeeRateUpdated) Variant() string { return "PoolFeeRateUpdated" }

// PoolProtocolFeeRateUpdated is emitted by SetProtocolFeeRate.
type PoolProtocolFeeRateUpdated struct {
	Type      string `json:"type"`
	Origin    string `json:"o"`
	Whirlpool string `json:"w"`
	OldRate   uint16 `json:"opf"`
	NewRate   uint16 `json:"npf"`
}

func (PoolProtocolFeeRateUpdated) Variant() string { return "PoolProtocolFeeRateUpdated" }

// RewardInitialized is emitted by InitializeReward{,V2}.
type RewardInitialized struct {
	Type         string           `json:"type"`
	Origin       string           `json:"o"`
	Whirlpool    string           `json:"w"`
	RewardIndex  uint8            `json:"idx"`
	Mint         string           `json:"m"`
	Decimals     uint8            `json:"d"`
	TokenProgram TokenProgramKind `json:"tp"`
}

func (RewardInitialized) Variant() string { return "RewardInitialized" }

// RewardEmissionsUpdated is emitted by SetRewardEmissions{,V2}.
type RewardEmissionsUpdated struct {
	Type          string `json:"type"`
	Origin        string `json:"o"`
	Whirlpool     string `json:"w"`
	RewardIndex   uint8  `json:"idx"`
	OldEmissions  U128   `json:"oe"`
	NewEmissions  U128   `json:"ne"`
}

func (RewardEmissionsUpdated) Variant() string { return "RewardEmissionsUpdated" }

// RewardAuthorityUpdated is emitted by SetRewardAuthority{,BySuperAuthority}.
type RewardAuthorityUpdated struct {
	Type         string `json:"type"`
	Origin       string `json:"o"`
	Whirlpool    string `json:"w"`
	RewardIndex  uint8  `json:"idx"`
	OldAuthority string `json:"oa"`
	NewAuthority string `json:"na"`
}

func (RewardAuthorityUpdated) Variant() string { return "RewardAuthorityUpdated" }

// positionLifecycleEvent is the shared payload of PositionOpened and
// PositionClosed.
type positionLifecycleEvent struct {
	Type           string       `json:"type"`
	Origin         string       `json:"o"`
	Whirlpool      string       `json:"w"`
	Position       string       `json:"pos"`
	TickLowerIndex int32        `json:"tl"`
	TickUpperIndex int32        `json:"tu"`
	PositionType   PositionType `json:"pt"`
	PositionMint   string       `json:"mint,omitempty"`
	PositionBundle string       `json:"bundle,omitempty"`
	BundleIndex    *uint16      `json:"bidx,omitempty"`
}

type PositionOpened positionLifecycleEvent

func (PositionOpened) Variant() string { return "PositionOpened" }

type PositionClosed positionLifecycleEvent

func (PositionClosed) Variant() string { return "PositionClosed" }

// PositionFeesHarvested is emitted by CollectFees{,V2}.
type PositionFeesHarvested struct {
	Type      string       `json:"type"`
	Origin    string       `json:"o"`
	Whirlpool string       `json:"w"`
	Position  string       `json:"pos"`
	TransferA TransferInfo `json:"ta"`
	TransferB TransferInfo `json:"tb"`
}

func (PositionFeesHarvested) Variant() string { return "PositionFeesHarvested" }

// PositionRewardHarvested is emitted by CollectReward{,V2}.
type PositionRewardHarvested struct {
	Type           string       `json:"type"`
	Origin         string       `json:"o"`
	Whirlpool      string       `json:"w"`
	Position       string       `json:"pos"`
	RewardIndex    uint8        `json:"idx"`
	TransferReward TransferInfo `json:"tr"`
}

func (PositionRewardHarvested) Variant() string { return "PositionRewardHarvested" }

// ProtocolFeesCollected is emitted by CollectProtocolFees{,V2}.
type ProtocolFeesCollected struct {
	Type      string       `json:"type"`
	Origin    string       `json:"o"`
	Whirlpool string       `json:"w"`
	TransferA TransferInfo `json:"ta"`
	TransferB TransferInfo `json:"tb"`
}

func (ProtocolFeesCollected) Variant() string { return "ProtocolFeesCollected" }

// PositionHarvestUpdated is emitted by UpdateFeesAndRewards; it carries no
// payload beyond the origin identifiers.
type PositionHarvestUpdated struct {
	Type      string `json:"type"`
	Origin    string `json:"o"`
	Whirlpool string `json:"w"`
	Position  string `json:"pos"`
}

func (PositionHarvestUpdated) Variant() string { return "PositionHarvestUpdated" }

// positionBundleEvent is the shared payload of PositionBundleInitialized and
// PositionBundleDeleted.
type positionBundleEvent struct {
	Type           string `json:"type"`
	Origin         string `json:"o"`
	PositionBundle string `json:"bundle"`
	Mint           string `json:"mint"`
	Owner          string `json:"owner"`
}

type PositionBundleInitialized positionBundleEvent

func (PositionBundleInitialized) Variant() string { return "PositionBundleInitialized" }

type PositionBundleDeleted positionBundleEvent

func (PositionBundleDeleted) Variant() string { return "PositionBundleDeleted" }

// TickArrayInitialized is emitted by InitializeTickArray.
type TickArrayInitialized struct {
	Type           string `json:"type"`
	Origin         string `json:"o"`
	Whirlpool      string `json:"w"`
	StartTickIndex int32  `json:"sti"`
	TickArray      string `json:"ta"`
}

func (TickArrayInitialized) Variant() string { return "TickArrayInitialized" }

// ConfigInitialized is emitted by InitializeConfig.
type ConfigInitialized struct {
	Type                          string `json:"type"`
	Origin                        string `json:"o"`
	Config                        string `json:"config"`
	FeeAuthority                  string `json:"fa"`
	CollectProtocolFeesAuthority  string `json:"cpfa"`
	RewardEmissionsSuperAuthority string `json:"resa"`
	DefaultProtocolFeeRate        uint16 `json:"dpfr"`
}

func (ConfigInitialized) Variant() string { return "ConfigInitialized" }

// ConfigUpdated is emitted by SetFeeAuthority, SetCollectProtocolFeesAuthority,
// SetRewardEmissionsSuperAuthority, and SetDefaultProtocolFeeRate. Only the
// field that changed carries both old and new values; the others are absent.
type ConfigUpdated struct {
	Type   string `json:"type"`
	Origin string `json:"o"`
	Config string `json:"config"`

	OldFeeAuthority string `json:"ofa,omitempty"`
	NewFeeAuthority string `json:"nfa,omitempty"`

	OldCollectProtocolFeesAuthority string `json:"ocpfa,omitempty"`
	NewCollectProtocolFeesAuthority string `json:"ncpfa,omitempty"`

	OldRewardEmissionsSuperAuthority string `json:"oresa,omitempty"`
	NewRewardEmissionsSuperAuthority string `json:"nresa,omitempty"`

	OldDefaultProtocolFeeRate *uint16 `json:"odpfr,omitempty"`
	NewDefaultProtocolFeeRate *uint16 `json:"ndpfr,omitempty"`
}

func (ConfigUpdated) Variant() string { return "ConfigUpdated" }

// ConfigExtensionInitialized is emitted by InitializeConfigExtension.
type ConfigExtensionInitialized struct {
	Type                     string `json:"type"`
	Origin                   string `json:"o"`
	Config                   string `json:"config"`
	ConfigExtension          string `json:"ext"`
	ConfigExtensionAuthority string `json:"cea"`
	TokenBadgeAuthority      string `json:"tba"`
}

func (ConfigExtensionInitialized) Variant() string { return "ConfigExtensionInitialized" }

// ConfigExtensionUpdated is emitted by SetConfigExtensionAuthority and
// SetTokenBadgeAuthority.
type ConfigExtensionUpdated struct {
	Type            string `json:"type"`
	Origin          string `json:"o"`
	ConfigExtension string `json:"ext"`
	Which           string `json:"which"`
	OldAuthority    string `json:"oa"`
	NewAuthority    string `json:"na"`
}

func (ConfigExtensionUpdated) Variant() string { return "ConfigExtensionUpdated" }

// FeeTierInitialized is emitted by InitializeFeeTier.
type FeeTierInitialized struct {
	Type           string `json:"type"`
	Origin         string `json:"o"`
	Config         string `json:"config"`
	FeeTier        string `json:"fee_tier"`
	TickSpacing    uint16 `json:"ts"`
	DefaultFeeRate uint16 `json:"dfr"`
}

func (FeeTierInitialized) Variant() string { return "FeeTierInitialized" }

// FeeTierUpdated is emitted by SetDefaultFeeRate.
type FeeTierUpdated struct {
	Type        string `json:"type"`
	Origin      string `json:"o"`
	FeeTier     string `json:"fee_tier"`
	TickSpacing uint16 `json:"ts"`
	OldRate     uint16 `json:"odfr"`
	NewRate     uint16 `json:"ndfr"`
}

func (FeeTierUpdated) Variant() string { return "FeeTierUpdated" }

// TokenBadgeInitialized is emitted by InitializeTokenBadge.
type TokenBadgeInitialized struct {
	Type       string `json:"type"`
	Origin     string `json:"o"`
	Config     string `json:"config"`
	TokenMint  string `json:"mint"`
	TokenBadge string `json:"badge"`
}

func (TokenBadgeInitialized) Variant() string { return "TokenBadgeInitialized" }

// TokenBadgeDeleted is emitted by DeleteTokenBadge.
type TokenBadgeDeleted struct {
	Type       string `json:"type"`
	Origin     string `json:"o"`
	Config     string `json:"config"`
	TokenMint  string `json:"mint"`
	TokenBadge string `json:"badge"`
}

func (TokenBadgeDeleted) Variant() string { return "TokenBadgeDeleted" }

// ProgramDeployed is emitted on a program-deploy instruction; it carries no
// payload.
type ProgramDeployed struct {
	Type   string `json:"type"`
	Origin string `json:"o"`
}

func (ProgramDeployed) Variant() string { return "ProgramDeployed" }
