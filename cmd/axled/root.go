// Command axled is the CLI front end for the Axle proof-of-work ledger
// node: argument parsing and key file layout, kept outside the core
// package so the ledger/block/chain engine stays embeddable.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "axled",
	Short: "Axle proof-of-work ledger node",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		lvl := logLevel
		if lvl == "" {
			lvl = os.Getenv("LOG_LEVEL")
		}
		if lvl == "" {
			lvl = "info"
		}
		parsed, err := logrus.ParseLevel(lvl)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", lvl, err)
		}
		logrus.SetLevel(parsed)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "logrus level (default info, or $LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
