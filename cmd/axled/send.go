package main

import (
	"fmt"

	axle "github.com/HyrumHendrickson/Axel/core"
	"github.com/spf13/cobra"
)

func init() {
	var datadir, from, to string
	var amount float64

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Build, sign, mine and accept a TRANSFER block of one transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDatadir(datadir)
			if err != nil {
				return err
			}
			if from == "" || to == "" {
				return fmt.Errorf("--from and --to are required")
			}

			priv, _, fromAddr, err := loadKey(dir, from)
			if err != nil {
				return err
			}

			store := axle.NewFileStore(dir)
			chain := axle.NewChain(store)
			if err := chain.Load(axle.ChainParams{}); err != nil {
				return fmt.Errorf("send: %w", err)
			}

			snap := chain.Snapshot()
			nonce := uint64(0)
			if acc, ok := snap.Accounts[fromAddr]; ok {
				nonce = acc.Nonce
			}

			unsigned := &axle.Transaction{
				Type:   axle.Transfer,
				From:   fromAddr,
				To:     to,
				Amount: amountToSubUnits(amount),
				Nonce:  nonce,
			}
			tx := axle.SignTx(unsigned, priv)

			block := chain.BuildBlock(fromAddr, []*axle.Transaction{tx})
			return mineAndAccept(chain, block)
		},
	}

	cmd.Flags().StringVar(&datadir, "datadir", "", "data directory (required)")
	cmd.Flags().StringVar(&from, "from", "", "sender key name (required)")
	cmd.Flags().StringVar(&to, "to", "", "recipient address (required)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "decimal amount of coins to send (required)")
	rootCmd.AddCommand(cmd)
}
