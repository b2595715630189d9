package main

import (
	"fmt"

	axle "github.com/HyrumHendrickson/Axel/core"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	var datadir, network string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the datadir layout, genesis block and a default key",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDatadir(datadir)
			if err != nil {
				return err
			}

			store := axle.NewFileStore(dir)
			chain := axle.NewChain(store)
			if err := chain.Load(axle.ChainParams{Network: network}); err != nil {
				return fmt.Errorf("init: %w", err)
			}

			kp, err := axle.Keygen()
			if err != nil {
				return fmt.Errorf("init: generate default key: %w", err)
			}
			address, err := saveKey(dir, "default", kp)
			if err != nil {
				return fmt.Errorf("init: save default key: %w", err)
			}

			logrus.Infof("initialized datadir %s, tip height=%d, default address=%s", dir, chain.TipHeight(), address)
			fmt.Printf("Initialized datadir at %s\nDefault address: %s\n", dir, address)
			return nil
		},
	}

	cmd.Flags().StringVar(&datadir, "datadir", "", "data directory (required)")
	cmd.Flags().StringVar(&network, "network", "mainnet", "network label recorded for operator bookkeeping")
	rootCmd.AddCommand(cmd)
}
