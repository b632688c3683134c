// Command whirlpool-archive is the thin CLI dispatcher: flag
// parsing, file opening, and gzip I/O framing, wired to the event-reconstruction
// `event` subcommand and the OHLCV-aggregation `ohlcv` subcommand.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/solana-zh/whirlpool-archive/pkg/whirlpoolerr"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var fatal *whirlpoolerr.FatalError
		if errors.As(err, &fatal) {
			fmt.Fprintln(os.Stderr, fatal.Error())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "whirlpool-archive",
		Short:         "Reconstruct Whirlpool events and OHLCV archives from a transaction stream",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newEventCmd(), newOhlcvCmd())
	return cmd
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
