// Package replay implements ReplayDriver: it walks the
// transaction stream in slot order, decoding and dispatching each
// instruction to the replay collaborator and the event builder. The raw
// replay engine that actually executes an instruction against the account
// store is out of scope here; this package defines only the contract
// it consumes.
package replay

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/solana-zh/whirlpool-archive/pkg/event"
	"github.com/solana-zh/whirlpool-archive/pkg/instruction"
	"github.com/solana-zh/whirlpool-archive/pkg/pubkeyset"
	"github.com/solana-zh/whirlpool-archive/pkg/txstream"
	"github.com/solana-zh/whirlpool-archive/pkg/whirlpoolerr"
)

// Collaborator is the out-of-scope raw replay engine: given a decoded
// instruction it mutates the account store in place and returns the
// pre-instruction snapshot of every account the instruction may write.
// A program-deploy instruction is also routed through it so new program
// bytes land in the store before any later instruction in the same run
// is replayed.
type Collaborator interface {
	ReplayInstruction(decoded instruction.DecodedInstruction) (*pubkeyset.Snapshot, error)
}

// TxEvents is one transaction's worth of events in the output stream.
type TxEvents struct {
	Signature string        `json:"signature"`
	Payer     string        `json:"payer"`
	Events    []event.Event `json:"events"`
}

// BlockEvents is one line of the event stream.
type BlockEvents struct {
	Slot         uint64     `json:"slot"`
	BlockHeight  uint64     `json:"block_height"`
	BlockTime    int64      `json:"block_time"`
	Transactions []TxEvents `json:"transactions"`
}

// Driver is ReplayDriver: it owns the account store and drives both the
// replay collaborator and the event builder over an ordered block stream.
type Driver struct {
	Store        *pubkeyset.Store
	Collaborator Collaborator
	Builder      *event.Builder
	Log          zerolog.Logger
}

// NewDriver constructs a Driver.
func NewDriver(store *pubkeyset.Store, collaborator Collaborator, builder *event.Builder, log zerolog.Logger) *Driver {
	return &Driver{Store: store, Collaborator: collaborator, Builder: builder, Log: log}
}

// Run replays every block read from r, invoking emit once per block in
// source order. It stops and returns nil at end of stream, or a
// *whirlpoolerr.FatalError on the first precondition violation.
func (d *Driver) Run(r *txstream.Reader, emit func(BlockEvents) error) error {
	for {
		block, err := r.Next()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("replay: read block: %w", err)
		}

		out := BlockEvents{Slot: block.Slot, BlockHeight: block.BlockHeight, BlockTime: block.BlockTime}
		for _, tx := range block.Transactions {
			txOut := TxEvents{Signature: tx.Signature, Payer: tx.Payer}
			for _, ins := range tx.Instructions {
				decoded, err := instruction.Decode(ins.Name, ins.PayloadJSON)
				if err != nil {
					return whirlpoolerr.Fatal("replay", block.Slot, tx.Signature, "decode instruction %s: %v", ins.Name, err)
				}

				if pd, ok := decoded.(instruction.ProgramDeployInstruction); ok {
					if _, err := d.Collaborator.ReplayInstruction(pd); err != nil {
						return whirlpoolerr.Fatal("replay", block.Slot, tx.Signature, "replay program-deploy: %v", err)
					}
					txOut.Events = append(txOut.Events, event.ProgramDeployed{Type: "ProgramDeployed", Origin: "program-deploy"})
					continue
				}

				snap, err := d.Collaborator.ReplayInstruction(decoded)
				if err != nil {
					return whirlpoolerr.Fatal("replay", block.Slot, tx.Signature, "replay instruction %s: %v", decoded.InstructionName(), err)
				}

				events, err := d.Builder.Build(decoded, d.Store, snap)
				if err != nil {
					return whirlpoolerr.Fatal("event", block.Slot, tx.Signature, "build events for %s: %v", decoded.InstructionName(), err)
				}
				txOut.Events = append(txOut.Events, events...)

				d.Log.Debug().
					Str("component", "replay").
					Uint64("slot", block.Slot).
					Str("signature", tx.Signature).
					Str("instruction", string(decoded.InstructionName())).
					Int("events", len(events)).
					Msg("instruction replayed")
			}
			out.Transactions = append(out.Transactions, txOut)
		}

		if err := emit(out); err != nil {
			return fmt.Errorf("replay: emit block: %w", err)
		}
		d.Log.Info().
			Str("component", "replay").
			Uint64("slot", block.Slot).
			Int("transactions", len(block.Transactions)).
			Msg("block processed")
	}
}
