// Package vault is the client for the collateralized vault program: users
// deposit against an NFT, receive proportional shares, and can withdraw or
// hand a whole position to another owner.
package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"soldash/cluster"
)

// ProgramID is the deployed vault program address.
const ProgramID = "spLit2eb13Tz93if6aJM136nUWki5PVUsoEjcUjwpwW"

// PDA seeds used by the program.
var (
	seedVault    = []byte("vault")
	seedPosition = []byte("position")
)

// ProgramErrors maps the program's custom error codes.
var ProgramErrors = map[int]string{
	6000: "VaultPaused - deposits and withdrawals are suspended",
	6001: "InsufficientShares - position holds fewer shares than requested",
	6002: "PositionNotFound - no position exists for this owner and NFT",
	6003: "ZeroAmount - amount must be greater than zero",
	6004: "MathOverflow - math calculation overflow",
}

// Client talks to the vault program for one asset mint.
type Client struct {
	endpoint  cluster.Endpoint
	programID solana.PublicKey
	assetMint solana.PublicKey
	tracker   *Tracker
}

// New builds a vault client for the given asset mint.
func New(ep cluster.Endpoint, assetMint solana.PublicKey) (*Client, error) {
	programID, err := solana.PublicKeyFromBase58(ProgramID)
	if err != nil {
		return nil, fmt.Errorf("invalid program ID: %w", err)
	}
	return &Client{
		endpoint:  ep,
		programID: programID,
		assetMint: assetMint,
		tracker:   NewTracker(),
	}, nil
}

// ProgramKey returns the program address.
func (c *Client) ProgramKey() solana.PublicKey {
	return c.programID
}

// Tracker exposes the submit-phase tracker.
func (c *Client) Tracker() *Tracker {
	return c.tracker
}

// DeriveVaultPDA derives the vault record address for the asset mint.
func (c *Client) DeriveVaultPDA() (solana.PublicKey, uint8, error) {
	pda, bump, err := solana.FindProgramAddress(
		[][]byte{
			seedVault,
			c.assetMint.Bytes(),
		},
		c.programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive vault PDA: %w", err)
	}
	return pda, bump, nil
}

// DerivePositionPDA derives the position address for one (owner, NFT) pair.
func (c *Client) DerivePositionPDA(owner, nftMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	vaultPDA, _, err := c.DeriveVaultPDA()
	if err != nil {
		return solana.PublicKey{}, 0, err
	}
	pda, bump, err := solana.FindProgramAddress(
		[][]byte{
			seedPosition,
			vaultPDA.Bytes(),
			owner.Bytes(),
			nftMint.Bytes(),
		},
		c.programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive position PDA: %w", err)
	}
	return pda, bump, nil
}

// State fetches and parses the vault record.
func (c *Client) State(ctx context.Context) (*State, error) {
	pda, _, err := c.DeriveVaultPDA()
	if err != nil {
		return nil, err
	}
	data, err := c.endpoint.AccountData(ctx, pda)
	if err != nil {
		if errors.Is(err, cluster.ErrAccountNotFound) {
			return nil, fmt.Errorf("vault not initialized for mint %s", c.assetMint)
		}
		return nil, fmt.Errorf("failed to get vault state: %w", err)
	}
	return parseState(data)
}

// Position fetches one position. A missing account is an empty position, not
// an error: the record only exists between first deposit and full withdrawal.
func (c *Client) Position(ctx context.Context, owner, nftMint solana.PublicKey) (*Position, error) {
	pda, _, err := c.DerivePositionPDA(owner, nftMint)
	if err != nil {
		return nil, err
	}
	data, err := c.endpoint.AccountData(ctx, pda)
	if err != nil {
		if errors.Is(err, cluster.ErrAccountNotFound) {
			return &Position{Owner: owner, NFTMint: nftMint}, nil
		}
		return nil, fmt.Errorf("failed to get position: %w", err)
	}
	return parsePosition(data)
}
