package main

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"soldash/cluster"
	"soldash/faucet"
	"soldash/vault"
	"soldash/wallet"
)

func vaultCommand() *cobra.Command {
	var assetMint string
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Vault operations",
	}
	cmd.PersistentFlags().StringVar(&assetMint, "asset-mint", "", "vault asset mint (defaults to the faucet token)")
	cmd.AddCommand(
		vaultStateCommand(&assetMint),
		vaultPositionCommand(&assetMint),
		vaultDepositCommand(&assetMint),
		vaultWithdrawCommand(&assetMint),
		vaultTransferCommand(&assetMint),
	)
	return cmd
}

func vaultClient(conn *cluster.Connection, assetMint string) (*vault.Client, error) {
	var mint solana.PublicKey
	if assetMint != "" {
		var err error
		mint, err = solana.PublicKeyFromBase58(assetMint)
		if err != nil {
			return nil, fmt.Errorf("invalid asset mint: %w", err)
		}
	} else {
		fc, err := faucet.New(conn, conn.Network(), "")
		if err != nil {
			return nil, err
		}
		mint = fc.Mint()
	}
	return vault.New(conn, mint)
}

func vaultStateCommand(assetMint *string) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the vault account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			client, err := vaultClient(conn, *assetMint)
			if err != nil {
				return err
			}
			state, err := client.State(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Program:        %s\n", client.ProgramKey())
			fmt.Printf("Asset mint:     %s\n", state.AssetMint)
			fmt.Printf("Total shares:   %d\n", state.TotalShares)
			fmt.Printf("Total borrowed: %d\n", state.TotalBorrowed)
			fmt.Printf("Reserve factor: %d bps\n", state.ReserveFactorBps)
			fmt.Printf("Borrow index:   %s\n", state.BorrowIndex.String())
			fmt.Printf("Paused:         %v\n", state.Paused)
			return nil
		},
	}
}

func vaultPositionCommand(assetMint *string) *cobra.Command {
	var owner, nftMint string
	cmd := &cobra.Command{
		Use:   "position",
		Short: "Show a position keyed by owner and NFT mint",
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
			nftKey, err := solana.PublicKeyFromBase58(nftMint)
			if err != nil {
				return fmt.Errorf("invalid nft mint: %w", err)
			}
			client, err := vaultClient(conn, *assetMint)
			if err != nil {
				return err
			}
			pos, err := client.Position(ctx, ownerKey, nftKey)
			if err != nil {
				return err
			}
			fmt.Printf("Owner:         %s\n", pos.Owner)
			fmt.Printf("NFT mint:      %s\n", pos.NFTMint)
			fmt.Printf("Shares:        %d\n", pos.Shares)
			fmt.Printf("Deposit value: %d\n", pos.DepositValue)
			return nil
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "owner address (defaults to the keypair)")
	cmd.Flags().StringVar(&nftMint, "nft", "", "NFT mint address")
	cmd.MarkFlagRequired("nft")
	return cmd
}

func vaultDepositCommand(assetMint *string) *cobra.Command {
	var nftMint string
	var amount uint64
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Deposit assets against an NFT position",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVaultTx(cmd.Context(), *assetMint, nftMint, func(ctx context.Context, client *vault.Client, signer signerArg, nft solana.PublicKey) (solana.Signature, error) {
				return client.Deposit(ctx, signer, nft, amount)
			})
		},
	}
	cmd.Flags().StringVar(&nftMint, "nft", "", "NFT mint address")
	cmd.Flags().Uint64Var(&amount, "amount", 0, "amount in base units")
	cmd.MarkFlagRequired("nft")
	cmd.MarkFlagRequired("amount")
	return cmd
}

func vaultWithdrawCommand(assetMint *string) *cobra.Command {
	var nftMint string
	var shares uint64
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Redeem shares from an NFT position",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVaultTx(cmd.Context(), *assetMint, nftMint, func(ctx context.Context, client *vault.Client, signer signerArg, nft solana.PublicKey) (solana.Signature, error) {
				return client.Withdraw(ctx, signer, nft, shares)
			})
		},
	}
	cmd.Flags().StringVar(&nftMint, "nft", "", "NFT mint address")
	cmd.Flags().Uint64Var(&shares, "shares", 0, "shares to redeem")
	cmd.MarkFlagRequired("nft")
	cmd.MarkFlagRequired("shares")
	return cmd
}

func vaultTransferCommand(assetMint *string) *cobra.Command {
	var nftMint, newOwner string
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer a position to a new owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			newOwnerKey, err := solana.PublicKeyFromBase58(newOwner)
			if err != nil {
				return fmt.Errorf("invalid new owner: %w", err)
			}
			return runVaultTx(cmd.Context(), *assetMint, nftMint, func(ctx context.Context, client *vault.Client, signer signerArg, nft solana.PublicKey) (solana.Signature, error) {
				return client.Transfer(ctx, signer, newOwnerKey, nft)
			})
		},
	}
	cmd.Flags().StringVar(&nftMint, "nft", "", "NFT mint address")
	cmd.Flags().StringVar(&newOwner, "to", "", "new owner address")
	cmd.MarkFlagRequired("nft")
	cmd.MarkFlagRequired("to")
	return cmd
}

type signerArg = wallet.Signer

// runVaultTx handles the shared connect/sign/print flow of the mutating
// vault commands.
func runVaultTx(ctx context.Context, assetMint, nftMint string, run func(context.Context, *vault.Client, signerArg, solana.PublicKey) (solana.Signature, error)) error {
	conn, err := connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	signer, err := loadSigner()
	if err != nil {
		return err
	}
	nftKey, err := solana.PublicKeyFromBase58(nftMint)
	if err != nil {
		return fmt.Errorf("invalid nft mint: %w", err)
	}
	client, err := vaultClient(conn, assetMint)
	if err != nil {
		return err
	}
	sig, err := run(ctx, client, signer, nftKey)
	if err != nil {
		return err
	}
	return printTx(ctx, conn, sig)
}
