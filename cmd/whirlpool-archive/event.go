package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/solana-zh/whirlpool-archive/pkg/decimals"
	"github.com/solana-zh/whirlpool-archive/pkg/event"
	"github.com/solana-zh/whirlpool-archive/pkg/eventstream"
	"github.com/solana-zh/whirlpool-archive/pkg/replay"
	"github.com/solana-zh/whirlpool-archive/pkg/statesnapshot"
	"github.com/solana-zh/whirlpool-archive/pkg/txstream"
)

func newEventCmd() *cobra.Command {
	var statePath, tokenPath, txPath, outPath string

	cmd := &cobra.Command{
		Use:   "event",
		Short: "Reconstruct the event stream from a transaction stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvent(statePath, tokenPath, txPath, outPath)
		},
	}

	cmd.Flags().StringVarP(&statePath, "state", "s", "", "state snapshot file")
	cmd.Flags().StringVarP(&tokenPath, "token", "t", "", "token decimals file")
	cmd.Flags().StringVarP(&txPath, "transaction", "x", "", "transaction stream file")
	cmd.Flags().StringVarP(&outPath, "event-out", "e", "", "event stream output file")
	for _, name := range []string{"state", "token", "transaction", "event-out"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runEvent(statePath, tokenPath, txPath, outPath string) error {
	log := newLogger()

	stateFile, err := os.Open(statePath)
	if err != nil {
		return fmt.Errorf("open state snapshot: %w", err)
	}
	defer stateFile.Close()
	snapshot, err := statesnapshot.Load(stateFile)
	if err != nil {
		return err
	}
	store := snapshot.NewStore()
	log.Info().Int("accounts", len(snapshot.Accounts)).Uint64("slot", snapshot.Slot).Msg("state snapshot loaded")

	tokenFile, err := os.Open(tokenPath)
	if err != nil {
		return fmt.Errorf("open token table: %w", err)
	}
	defer tokenFile.Close()
	decimalsTable, err := decimals.Load(tokenFile)
	if err != nil {
		return err
	}

	txFile, err := os.Open(txPath)
	if err != nil {
		return fmt.Errorf("open transaction stream: %w", err)
	}
	defer txFile.Close()
	txReader, err := txstream.NewReader(txFile)
	if err != nil {
		return err
	}
	defer txReader.Close()

	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create event stream output: %w", err)
	}
	defer outFile.Close()
	writer := eventstream.NewWriter(outFile)

	builder := event.NewBuilder(decimalsTable)
	collaborator := replay.NewPassthroughCollaborator(store)
	driver := replay.NewDriver(store, collaborator, builder, log)

	if err := driver.Run(txReader, func(block replay.BlockEvents) error {
		return writer.WriteBlock(block)
	}); err != nil {
		return err
	}
	return writer.Close()
}
