package event

import (
	"encoding/json"
	"fmt"
)

// Decode unmarshals one JSON event object into its concrete Event variant,
// dispatching on its "type" tag. Used by the event stream reader when the
// OHLCV aggregator re-parses the event-reconstruction output.
func Decode(raw json.RawMessage) (Event, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("event: malformed event envelope: %w", err)
	}

	var ev Event
	switch head.Type {
	case "Traded":
		var v Traded
		ev = &v
	case "LiquidityDeposited":
		var v LiquidityDeposited
		ev = &v
	case "LiquidityWithdrawn":
		var v LiquidityWithdrawn
		ev = &v
	case "LiquidityPatched":
		var v LiquidityPatched
		ev = &v
	case "PoolInitialized":
		var v PoolInitialized
		ev = &v
	case "PoolFeeRateUpdated":
		var v PoolFeeRateUpdated
		ev = &v
	case "PoolProtocolFeeRateUpdated":
		var v PoolProtocolFeeRateUpdated
		ev = &v
	case "RewardInitialized":
		var v RewardInitialized
		ev = &v
	case "RewardEmissionsUpdated":
		var v RewardEmissionsUpdated
		ev = &v
	case "RewardAuthorityUpdated":
		var v RewardAuthorityUpdated
		ev = &v
	case "PositionOpened":
		var v PositionOpened
		ev = &v
	case "PositionClosed":
		var v PositionClosed
		ev = &v
	case "PositionFeesHarvested":
		var v PositionFeesHarvested
		ev = &v
	case "PositionRewardHarvested":
		var v PositionRewardHarvested
		ev = &v
	case "ProtocolFeesCollected":
		var v ProtocolFeesCollected
		ev = &v
	case "PositionHarvestUpdated":
		var v PositionHarvestUpdated
		ev = &v
	case "PositionBundleInitialized":
		var v PositionBundleInitialized
		ev = &v
	case "PositionBundleDeleted":
		var v PositionBundleDeleted
		ev = &v
	case "TickArrayInitialized":
		var v TickArrayInitialized
		ev = &v
	case "ConfigInitialized":
		var v ConfigInitialized
		ev = &v
	case "ConfigUpdated":
		var v ConfigUpdated
		ev = &v
	case "ConfigExtensionInitialized":
		var v ConfigExtensionInitialized
		ev = &v
	case "ConfigExtensionUpdated":
		var v ConfigExtensionUpdated
		ev = &v
	case "FeeTierInitialized":
		var v FeeTierInitialized
		ev = &v
	case "FeeTierUpdated":
		var v FeeTierUpdated
		ev = &v
	case "TokenBadgeInitialized":
		var v TokenBadgeInitialized
		ev = &v
	case "TokenBadgeDeleted":
		var v TokenBadgeDeleted
		ev = &v
	case "ProgramDeployed":
		var v ProgramDeployed
		ev = &v
	default:
		return nil, fmt.Errorf("event: unknown event type %q", head.Type)
	}

	if err := json.Unmarshal(raw, ev); err != nil {
		return nil, fmt.Errorf("event: decode %s payload: %w", head.Type, err)
	}
	return ev, nil
}
