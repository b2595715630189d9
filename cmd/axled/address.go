package main

import (
	"fmt"

	axle "github.com/HyrumHendrickson/Axel/core"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	var datadir, name string

	cmd := &cobra.Command{
		Use:   "create-address",
		Short: "Generate and persist a named keypair",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDatadir(datadir)
			if err != nil {
				return err
			}
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			kp, err := axle.Keygen()
			if err != nil {
				return fmt.Errorf("create-address: %w", err)
			}
			address, err := saveKey(dir, name, kp)
			if err != nil {
				return fmt.Errorf("create-address: %w", err)
			}

			logrus.Infof("created key %q address=%s", name, address)
			fmt.Printf("Saved key %q address: %s\n", name, address)
			return nil
		},
	}

	cmd.Flags().StringVar(&datadir, "datadir", "", "data directory (required)")
	cmd.Flags().StringVar(&name, "name", "", "key name (required)")
	rootCmd.AddCommand(cmd)
}
