package replay

import (
	"github.com/solana-zh/whirlpool-archive/pkg/instruction"
	"github.com/solana-zh/whirlpool-archive/pkg/pubkeyset"
)

// PassthroughCollaborator is a stand-in for the out-of-scope raw replay
// engine: it captures the pre-instruction snapshot of every
// writable account but performs no instruction execution of its own, since
// the AMM's swap/liquidity/admin math is explicitly a collaborator this
// repo consumes rather than implements. Production wiring should replace it
// with a real executor; tests that need post-mutation state construct one
// directly against the Store instead.
type PassthroughCollaborator struct {
	Store *pubkeyset.Store
}

// NewPassthroughCollaborator wraps store.
func NewPassthroughCollaborator(store *pubkeyset.Store) *PassthroughCollaborator {
	return &PassthroughCollaborator{Store: store}
}

// ReplayInstruction captures the pre-instruction snapshot of decoded's
// writable accounts. ProgramDeployInstruction carries no writable refs and
// always returns an empty snapshot.
func (p *PassthroughCollaborator) ReplayInstruction(decoded instruction.DecodedInstruction) (*pubkeyset.Snapshot, error) {
	var keys []string
	if wr, ok := decoded.(instruction.WritableRefs); ok {
		keys = wr.WritableAccounts()
	}
	return pubkeyset.NewSnapshot(p.Store, keys), nil
}
