// soldash is the terminal client: it signs locally with a keypair file and
// talks straight to the RPC node, no dashboard server needed.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"soldash/cluster"
	"soldash/faucet"
	"soldash/wallet"
)

var rootFlags = struct {
	network string
	rpcURL  string
	keypair string
	wait    bool
}{}

func main() {
	rootCmd := &cobra.Command{
		Use:          "soldash",
		Short:        "Terminal client for the faucet, collection, and vault programs",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&rootFlags.network, "network", "devnet", "network name or chain id")
	rootCmd.PersistentFlags().StringVar(&rootFlags.rpcURL, "rpc", "", "RPC URL override")
	rootCmd.PersistentFlags().StringVar(&rootFlags.keypair, "keypair", "", "path to a solana-keygen keypair file")
	rootCmd.PersistentFlags().BoolVar(&rootFlags.wait, "wait", false, "poll until the transaction confirms")

	rootCmd.AddCommand(
		balanceCommand(),
		mintCommand(),
		initFaucetCommand(),
		holdersCommand(),
		nftCommand(),
		vaultCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func connect(ctx context.Context) (*cluster.Connection, error) {
	network := cluster.Resolve(rootFlags.network)
	if rootFlags.rpcURL != "" {
		network.RPCURL = rootFlags.rpcURL
	}
	// The CLI polls for confirmations, no websocket needed.
	network.WSURL = ""
	return cluster.Connect(ctx, network)
}

// printTx reports a submitted signature and optionally polls until the node
// confirms it.
func printTx(ctx context.Context, conn *cluster.Connection, sig solana.Signature) error {
	fmt.Printf("Signature: %s\n", sig)
	fmt.Printf("Explorer:  %s\n", conn.Network().ExplorerTxURL(sig.String()))
	if !rootFlags.wait {
		return nil
	}
	if err := conn.WaitForConfirmation(ctx, sig.String(), time.Minute); err != nil {
		return err
	}
	fmt.Println("Confirmed.")
	return nil
}

func loadSigner() (*wallet.Local, error) {
	if rootFlags.keypair == "" {
		return nil, fmt.Errorf("--keypair is required for this command")
	}
	return wallet.LoadLocal(rootFlags.keypair)
}

func balanceCommand() *cobra.Command {
	var owner string
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show a wallet's balance of the faucet token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			ownerKey, err := resolveOwner(owner)
			if err != nil {
				return err
			}
			client, err := faucet.New(conn, conn.Network(), "")
			if err != nil {
				return err
			}
			balance, err := client.Balance(ctx, ownerKey)
			if err != nil {
				return err
			}
			fmt.Printf("Owner:         %s\n", balance.Owner)
			fmt.Printf("Token account: %s\n", balance.TokenAccount)
			fmt.Printf("Balance:       %d (decimals %d)\n", balance.Amount, balance.Decimals)
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "owner address (defaults to the keypair)")
	return cmd
}

func mintCommand() *cobra.Command {
	var amount uint64
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint faucet tokens into the keypair's wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			signer, err := loadSigner()
			if err != nil {
				return err
			}
			client, err := faucet.New(conn, conn.Network(), "")
			if err != nil {
				return err
			}
			sig, err := client.Mint(ctx, signer, amount)
			if err != nil {
				return err
			}
			return printTx(ctx, conn, sig)
		},
	}
	cmd.Flags().Uint64Var(&amount, "amount", 1_000_000, "amount in base units")
	return cmd
}

func initFaucetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init-faucet",
		Short: "One-time faucet setup for the configured mint",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			signer, err := loadSigner()
			if err != nil {
				return err
			}
			client, err := faucet.New(conn, conn.Network(), "")
			if err != nil {
				return err
			}
			sig, err := client.Initialize(ctx, signer)
			if err != nil {
				return err
			}
			return printTx(ctx, conn, sig)
		},
	}
}

func holdersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "holders",
		Short: "List the largest holders of the faucet token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			client, err := faucet.New(conn, conn.Network(), "")
			if err != nil {
				return err
			}
			holders, err := client.Holders(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Mint %s (program %s)\n", client.Mint(), client.ProgramKey())
			for _, h := range holders {
				fmt.Printf("%s  %d\n", h.Address, h.Amount)
			}
			return nil
		},
	}
}

func resolveOwner(owner string) (solana.PublicKey, error) {
	if owner != "" {
		return solana.PublicKeyFromBase58(owner)
	}
	signer, err := loadSigner()
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("pass --owner or --keypair")
	}
	return signer.PublicKey(), nil
}
