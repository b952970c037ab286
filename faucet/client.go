// Package faucet is the client for the fungible-token faucet program: a
// program-derived mint authority mints a devnet token into any wallet's
// associated token account.
package faucet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"

	"soldash/anchor"
	"soldash/cluster"
)

// ProgramID is the deployed faucet program address.
const ProgramID = "5DXoYSQxaJzQ1W4LqSq2nWZ12PvFsb4FHo4xWgSrchVH"

// Mint addresses per network.
const (
	MintDevnet  = "4zMMC9srt5Ri5X14GAgXhaHii3GnPAEERYPJgZJDncDU"
	MintMainnet = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

// PDA seeds used by the program.
var seedMintAuthority = []byte("mint_authority")

// ProgramErrors maps the program's custom error codes.
var ProgramErrors = map[int]string{
	6000: "Unauthorized - the derived mint authority does not match",
	6001: "AmountTooLarge - requested amount exceeds the faucet limit",
	6002: "MathOverflow - math calculation overflow",
}

// Client talks to the faucet program on one network.
type Client struct {
	endpoint  cluster.Endpoint
	programID solana.PublicKey
	mint      solana.PublicKey
	network   cluster.Network
}

// New builds a faucet client. The mint is selected from the network unless
// overridden.
func New(ep cluster.Endpoint, network cluster.Network, mintOverride string) (*Client, error) {
	programID, err := solana.PublicKeyFromBase58(ProgramID)
	if err != nil {
		return nil, fmt.Errorf("invalid program ID: %w", err)
	}
	mintAddr := mintOverride
	if mintAddr == "" {
		if network.Name == "mainnet" {
			mintAddr = MintMainnet
		} else {
			mintAddr = MintDevnet
		}
	}
	mint, err := solana.PublicKeyFromBase58(mintAddr)
	if err != nil {
		return nil, fmt.Errorf("invalid mint: %w", err)
	}
	return &Client{
		endpoint:  ep,
		programID: programID,
		mint:      mint,
		network:   network,
	}, nil
}

// ProgramKey returns the program address.
func (c *Client) ProgramKey() solana.PublicKey {
	return c.programID
}

// Mint returns the token mint this client serves.
func (c *Client) Mint() solana.PublicKey {
	return c.mint
}

// DeriveMintAuthorityPDA derives the program's mint authority address for
// the configured mint.
func (c *Client) DeriveMintAuthorityPDA() (solana.PublicKey, uint8, error) {
	pda, bump, err := solana.FindProgramAddress(
		[][]byte{
			seedMintAuthority,
			c.mint.Bytes(),
		},
		c.programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive mint authority PDA: %w", err)
	}
	return pda, bump, nil
}

// TokenAddress derives the associated token account holding owner's balance
// of the faucet mint.
func (c *Client) TokenAddress(owner solana.PublicKey) (solana.PublicKey, error) {
	ata, err := anchor.FindAssociatedTokenAddress(owner, c.mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive ATA: %w", err)
	}
	return ata, nil
}

// MintAuthority fetches and parses the mint authority record. The record is
// immutable once created.
func (c *Client) MintAuthority(ctx context.Context) (*MintAuthorityRecord, error) {
	pda, _, err := c.DeriveMintAuthorityPDA()
	if err != nil {
		return nil, err
	}
	data, err := c.endpoint.AccountData(ctx, pda)
	if err != nil {
		if errors.Is(err, cluster.ErrAccountNotFound) {
			return nil, fmt.Errorf("faucet not initialized for mint %s", c.mint)
		}
		return nil, fmt.Errorf("failed to get mint authority: %w", err)
	}
	return parseMintAuthority(data)
}

// Balance fetches owner's balance of the faucet mint. A missing or
// wrongly-owned token account means the wallet simply has no balance yet, so
// both report zero rather than an error.
func (c *Client) Balance(ctx context.Context, owner solana.PublicKey) (*BalanceInfo, error) {
	ata, err := c.TokenAddress(owner)
	if err != nil {
		return nil, err
	}
	amount, decimals, err := c.endpoint.TokenBalance(ctx, ata)
	if err != nil {
		if isMissingTokenAccount(err) {
			return &BalanceInfo{Owner: owner, TokenAccount: ata}, nil
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return &BalanceInfo{
		Owner:        owner,
		TokenAccount: ata,
		Amount:       amount,
		Decimals:     decimals,
	}, nil
}

// Holders enumerates the largest balance-holding accounts for the mint.
func (c *Client) Holders(ctx context.Context) ([]cluster.TokenHolder, error) {
	return c.endpoint.LargestTokenAccounts(ctx, c.mint)
}

// isMissingTokenAccount recognizes the two lookup failures that mean "no
// balance yet" instead of a real error.
func isMissingTokenAccount(err error) bool {
	if errors.Is(err, cluster.ErrAccountNotFound) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "could not find account") ||
		strings.Contains(msg, "not a Token account") ||
		strings.Contains(msg, "AccountOwnedByWrongProgram") ||
		strings.Contains(msg, "Invalid param")
}
