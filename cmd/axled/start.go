package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	axle "github.com/HyrumHendrickson/Axel/core"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func init() {
	var datadir, p2pAddr, rpcAddr, bootstrap string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Launch the gossip and status network surfaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveDatadir(datadir)
			if err != nil {
				return err
			}
			if p2pAddr == "" {
				p2pAddr = envOr("AXLE_P2P_ADDR", "0.0.0.0:9735")
			}
			if rpcAddr == "" {
				rpcAddr = envOr("AXLE_RPC_ADDR", "127.0.0.1:9736")
			}

			store := axle.NewFileStore(dir)
			chain := axle.NewChain(store)
			if err := chain.Load(axle.ChainParams{}); err != nil {
				return fmt.Errorf("start: %w", err)
			}

			p2pLn, err := net.Listen("tcp", p2pAddr)
			if err != nil {
				return fmt.Errorf("start: listen p2p %s: %w", p2pAddr, err)
			}
			rpcLn, err := net.Listen("tcp", rpcAddr)
			if err != nil {
				return fmt.Errorf("start: listen rpc %s: %w", rpcAddr, err)
			}

			gossip := axle.NewGossipServer(chain)
			status := axle.NewStatusServer(chain)

			go func() {
				if err := gossip.Serve(p2pLn); err != nil {
					logrus.Warnf("gossip server stopped: %v", err)
				}
			}()
			go func() {
				if err := status.Serve(rpcLn); err != nil {
					logrus.Warnf("status server stopped: %v", err)
				}
			}()

			if bootstrap != "" {
				logrus.Infof("bootstrapping against peer %s", bootstrap)
				if resp, err := axle.DialStatus(bootstrap, "get_tip"); err != nil {
					logrus.Warnf("bootstrap dial %s: %v", bootstrap, err)
				} else {
					logrus.Infof("bootstrap peer %s reports tip height=%d hash=%s", bootstrap, resp.Height, resp.Hash)
				}
			}

			logrus.Infof("node started: p2p=%s rpc=%s tip height=%d", p2pAddr, rpcAddr, chain.TipHeight())
			fmt.Println("Node started. Press Ctrl+C to exit.")

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			_ = p2pLn.Close()
			_ = rpcLn.Close()
			return nil
		},
	}

	cmd.Flags().StringVar(&datadir, "datadir", "", "data directory (required)")
	cmd.Flags().StringVar(&p2pAddr, "p2p", "", "gossip listen address (default 0.0.0.0:9735 or $AXLE_P2P_ADDR)")
	cmd.Flags().StringVar(&rpcAddr, "rpc", "", "status listen address (default 127.0.0.1:9736 or $AXLE_RPC_ADDR)")
	cmd.Flags().StringVar(&bootstrap, "bootstrap", "", "peer address to query on startup")
	rootCmd.AddCommand(cmd)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
