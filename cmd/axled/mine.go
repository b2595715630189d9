package main

import (
	"fmt"

	axle "github.com/HyrumHendrickson/Axel/core"
	"github.com/spf13/cobra"
)

func init() {
	var datadir string

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Mine an empty block to the default address",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDatadir(datadir)
			if err != nil {
				return err
			}

			_, _, minerAddr, err := loadKey(dir, "default")
			if err != nil {
				return err
			}

			store := axle.NewFileStore(dir)
			chain := axle.NewChain(store)
			if err := chain.Load(axle.ChainParams{}); err != nil {
				return fmt.Errorf("mine: %w", err)
			}

			block := chain.BuildBlock(minerAddr, nil)
			return mineAndAccept(chain, block)
		},
	}

	cmd.Flags().StringVar(&datadir, "datadir", "", "data directory (required)")
	rootCmd.AddCommand(cmd)
}
