package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/solana-zh/whirlpool-archive/pkg/decimals"
	"github.com/solana-zh/whirlpool-archive/pkg/eventstream"
	"github.com/solana-zh/whirlpool-archive/pkg/ohlcv"
	"github.com/solana-zh/whirlpool-archive/pkg/ohlcvio"
	"github.com/solana-zh/whirlpool-archive/pkg/statesnapshot"
)

func newOhlcvCmd() *cobra.Command {
	var statePath, tokenPath, eventInPath, dailyOutPath, minutelyOutPath string

	cmd := &cobra.Command{
		Use:   "ohlcv",
		Short: "Aggregate OHLCV archives from an event stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOhlcv(statePath, tokenPath, eventInPath, dailyOutPath, minutelyOutPath)
		},
	}

	cmd.Flags().StringVarP(&statePath, "state", "s", "", "state snapshot file")
	cmd.Flags().StringVarP(&tokenPath, "token", "t", "", "token decimals file")
	cmd.Flags().StringVarP(&eventInPath, "event-in", "e", "", "event stream input file")
	cmd.Flags().StringVarP(&dailyOutPath, "ohlcv-daily-out", "d", "", "daily OHLCV output file")
	cmd.Flags().StringVarP(&minutelyOutPath, "ohlcv-minutely-out", "m", "", "minutely OHLCV output file")
	for _, name := range []string{"state", "token", "event-in", "ohlcv-daily-out", "ohlcv-minutely-out"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runOhlcv(statePath, tokenPath, eventInPath, dailyOutPath, minutelyOutPath string) error {
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

	tokenFile, err := os.Open(tokenPath)
	if err != nil {
		return fmt.Errorf("open token table: %w", err)
	}
	defer tokenFile.Close()
	decimalsTable, err := decimals.Load(tokenFile)
	if err != nil {
		return err
	}

	seed, err := ohlcv.Seed(store, decimalsTable, snapshot.BlockTime)
	if err != nil {
		return err
	}
	log.Info().Int("pools", len(seed)).Msg("OHLCV seed complete")
	aggregator := ohlcv.NewAggregator(seed)

	eventFile, err := os.Open(eventInPath)
	if err != nil {
		return fmt.Errorf("open event stream: %w", err)
	}
	defer eventFile.Close()
	eventReader, err := eventstream.NewReader(eventFile)
	if err != nil {
		return err
	}
	defer eventReader.Close()

	for {
		block, err := eventReader.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("read event stream: %w", err)
		}
		for _, tx := range block.Transactions {
			decodedTx, err := tx.Decode()
			if err != nil {
				return fmt.Errorf("ohlcv: slot=%d sig=%s: %w", block.Slot, tx.Signature, err)
			}
			for _, ev := range decodedTx.Events {
				if err := aggregator.Apply(ev, block.Slot, block.BlockTime); err != nil {
					return fmt.Errorf("ohlcv: slot=%d sig=%s: %w", block.Slot, tx.Signature, err)
				}
			}
		}
	}

	dailyOut, err := os.Create(dailyOutPath)
	if err != nil {
		return fmt.Errorf("create daily output: %w", err)
	}
	defer dailyOut.Close()
	if err := ohlcvio.WriteDaily(dailyOut, aggregator.Pools()); err != nil {
		return err
	}

	minutelyOut, err := os.Create(minutelyOutPath)
	if err != nil {
		return fmt.Errorf("create minutely output: %w", err)
	}
	defer minutelyOut.Close()
	if err := ohlcvio.WriteMinutely(minutelyOut, aggregator.Pools()); err != nil {
		return err
	}

	log.Info().Int("pools", len(aggregator.Pools())).Msg("OHLCV aggregation complete")
	return nil
}
