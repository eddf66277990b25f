// Copyright 2025 Erst Users
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/dotandev/xbfee/internal/config"
	"github.com/dotandev/xbfee/internal/rpc"
	"github.com/spf13/cobra"
)

var (
	listenFlag    string
	publicURLFlag string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve fee quotes over JSON-RPC",
	Long: `Serve the fee policy over JSON-RPC 1.0 at /rpc.

Methods:
  Fee.Quote     {"tx_count": N, "amount": A, "policy": "..."}
  Fee.Invoke    {"args": ["<scval-xdr>", ...], "policy": "..."}
  Fee.Policies  {}`,
	Example: `  xbfee serve --listen 127.0.0.1:8000 --record`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.ValidateServer(); err != nil {
			return err
		}

		runner, closeRunner, err := newRunner()
		if err != nil {
			return err
		}
		defer closeRunner()

		return rpc.Serve(cmd.Context(), cfg.Server(), runner)
	},
}

func applyServeFlags(cmd *cobra.Command, c *config.Config) {
	if cmd != serveCmd {
		return
	}
	if cmd.Flags().Changed("listen") {
		c.ListenAddr = listenFlag
	}
	if cmd.Flags().Changed("public-url") {
		c.PublicURL = publicURLFlag
	}
}

func init() {
	serveCmd.Flags().StringVar(&listenFlag, "listen", config.DefaultListenAddr, "Address to listen on (host:port)")
	serveCmd.Flags().StringVar(&publicURLFlag, "public-url", "", "URL clients use to reach this endpoint")

	rootCmd.AddCommand(serveCmd)
}
