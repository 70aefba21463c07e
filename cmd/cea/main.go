package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	appName = "CEA"
	version = "v1.0.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	configureOutput()

	rootCmd := &cobra.Command{
		Use:     "cea",
		Short:   "Circular Economy AI demo backend",
		Version: version,
		Long: `CEA serves the informational pages plus two small JSON APIs:
sector advice with simulated index trajectories, and company growth simulations.

All state is in memory and lost on restart.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd(), newAdviceCmd(), newProjectCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// configureOutput uses the human console writer on a terminal and JSON lines otherwise
func configureOutput() {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Str("app", appName).Logger()
}
