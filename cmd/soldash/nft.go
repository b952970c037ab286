package main

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"soldash/cluster"
	"soldash/collection"
)

// Matches the authority the dashboard server uses when none is configured.
const defaultCollectionAuthority = "wFuFPgHsLt9t5HALqFQqbdM9WvyQstdKN8NQXB3GWeD"

func nftCommand() *cobra.Command {
	var authority string
	cmd := &cobra.Command{
		Use:   "nft",
		Short: "Collection operations",
	}
	cmd.PersistentFlags().StringVar(&authority, "authority", defaultCollectionAuthority, "collection authority address")
	cmd.AddCommand(
		nftInfoCommand(&authority),
		nftInitCommand(),
		nftMintCommand(&authority),
		nftFindCommand(&authority),
	)
	return cmd
}

func collectionClient(conn *cluster.Connection, authority string) (*collection.Client, error) {
	key, err := solana.PublicKeyFromBase58(authority)
	if err != nil {
		return nil, fmt.Errorf("invalid authority address: %w", err)
	}
	return collection.New(conn, key)
}

func nftInfoCommand(authority *string) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the collection account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			client, err := collectionClient(conn, *authority)
			if err != nil {
				return err
			}
			info, err := client.Info(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Program:       %s\n", client.ProgramKey())
			fmt.Printf("Name:          %s (%s)\n", info.Name, info.Symbol)
			fmt.Printf("URI:           %s\n", info.URI)
			fmt.Printf("Authority:     %s\n", info.Authority)
			fmt.Printf("Next token id: %d\n", info.NextTokenID)
			fmt.Printf("Total minted:  %d\n", info.TotalMinted)
			return nil
		},
	}
}

func nftInitCommand() *cobra.Command {
	var name, symbol, uri string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a collection with the keypair as authority",
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
			client, err := collection.New(conn, signer.PublicKey())
			if err != nil {
				return err
			}
			sig, err := client.Initialize(ctx, signer, name, symbol, uri)
			if err != nil {
				return err
			}
			return printTx(ctx, conn, sig)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "collection name")
	cmd.Flags().StringVar(&symbol, "symbol", "", "collection symbol")
	cmd.Flags().StringVar(&uri, "uri", "", "metadata URI")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("symbol")
	return cmd
}

func nftMintCommand(authority *string) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint one or more unique-id NFTs",
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
			client, err := collectionClient(conn, *authority)
			if err != nil {
				return err
			}
			results, err := client.MintMany(ctx, signer, count)
			for _, r := range results {
				fmt.Printf("token %d  id %s\n", r.TokenID, r.UniqueID)
				fmt.Printf("  %s\n", conn.Network().ExplorerTxURL(r.Signature))
			}
			if err != nil {
				return fmt.Errorf("minted %d of %d: %w", len(results), count, err)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "how many NFTs to mint")
	return cmd
}

func nftFindCommand(authority *string) *cobra.Command {
	return &cobra.Command{
		Use:   "find <unique-id>",
		Short: "Look up an NFT by its unique id (a-b-c-d form)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := collection.ParseUniqueID(args[0])
			if err != nil {
				return err
			}
			conn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer conn.Close()

			client, err := collectionClient(conn, *authority)
			if err != nil {
				return err
			}
			entry, err := client.Find(ctx, id)
			if errors.Is(err, collection.ErrNotFound) {
				fmt.Println("not found")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("Token id: %d\n", entry.TokenID)
			fmt.Printf("Mint:     %s\n", entry.Mint)
			fmt.Printf("Owner:    %s\n", entry.Owner)
			fmt.Printf("Explorer: %s\n", conn.Network().ExplorerAddressURL(entry.Mint.String()))
			return nil
		},
	}
}
