package main

import (
	"fmt"

	axle "github.com/HyrumHendrickson/Axel/core"
	"github.com/spf13/cobra"
)

func init() {
	var datadir, from, name, symbol, uri string

	cmd := &cobra.Command{
		Use:   "mint-nft",
		Short: "Build, sign, mine and accept a MINT_NFT block of one transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDatadir(datadir)
			if err != nil {
				return err
			}
			if from == "" || name == "" {
				return fmt.Errorf("--from and --name are required")
			}

			priv, _, fromAddr, err := loadKey(dir, from)
			if err != nil {
				return err
			}

			store := axle.NewFileStore(dir)
			chain := axle.NewChain(store)
			if err := chain.Load(axle.ChainParams{}); err != nil {
				return fmt.Errorf("mint-nft: %w", err)
			}

			snap := chain.Snapshot()
			nonce := uint64(0)
			if acc, ok := snap.Accounts[fromAddr]; ok {
				nonce = acc.Nonce
			}

			unsigned := &axle.Transaction{
				Type:  axle.MintNFT,
				From:  fromAddr,
				To:    fromAddr,
				Nonce: nonce,
				Meta:  axle.NFTMeta{Name: name, Symbol: symbol, URI: uri},
			}
			tx := axle.SignTx(unsigned, priv)

			block := chain.BuildBlock(fromAddr, []*axle.Transaction{tx})
			return mineAndAccept(chain, block)
		},
	}

	cmd.Flags().StringVar(&datadir, "datadir", "", "data directory (required)")
	cmd.Flags().StringVar(&from, "from", "", "minter key name (required)")
	cmd.Flags().StringVar(&name, "name", "", "NFT name (required)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "NFT symbol")
	cmd.Flags().StringVar(&uri, "uri", "", "NFT metadata URI")
	rootCmd.AddCommand(cmd)
}
