// Package collection is the client for the unique-id NFT program: a single
// collection account whose entries map sequential token ids to opaque unique
// ids and mint addresses.
package collection

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"soldash/cluster"
)

// ProgramID is the deployed collection program address.
const ProgramID = "8sVfWmonJAzAQnS4nYcxv3GBSs4rDpvmniRrApwrh1QK"

// PDA seeds used by the program.
var (
	seedCollection = []byte("collection")
	seedEntry      = []byte("entry")
	seedUniqueID   = []byte("unique_id")
	seedNFTMint    = []byte("nft_mint")
)

// ProgramErrors maps the program's custom error codes.
var ProgramErrors = map[int]string{
	6000: "Unauthorized - only the collection authority can do this",
	6001: "DuplicateUniqueID - this unique id was already minted",
	6002: "CollectionFull - the collection reached its maximum size",
	6003: "NotInitialized - the collection record does not exist yet",
}

// ErrNotFound is returned when a searched id has never been minted.
var ErrNotFound = errors.New("unique id not found in collection")

// Client talks to the collection program on one network.
type Client struct {
	endpoint  cluster.Endpoint
	programID solana.PublicKey
	authority solana.PublicKey
}

// New builds a collection client. The authority key roots the collection PDA.
func New(ep cluster.Endpoint, authority solana.PublicKey) (*Client, error) {
	programID, err := solana.PublicKeyFromBase58(ProgramID)
	if err != nil {
		return nil, fmt.Errorf("invalid program ID: %w", err)
	}
	return &Client{
		endpoint:  ep,
		programID: programID,
		authority: authority,
	}, nil
}

// ProgramKey returns the program address.
func (c *Client) ProgramKey() solana.PublicKey {
	return c.programID
}

// DeriveCollectionPDA derives the collection record address.
func (c *Client) DeriveCollectionPDA() (solana.PublicKey, uint8, error) {
	pda, bump, err := solana.FindProgramAddress(
		[][]byte{
			seedCollection,
			c.authority.Bytes(),
		},
		c.programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive collection PDA: %w", err)
	}
	return pda, bump, nil
}

// DeriveEntryPDA derives the entry address for a sequential token id.
func (c *Client) DeriveEntryPDA(tokenID uint64) (solana.PublicKey, uint8, error) {
	collectionPDA, _, err := c.DeriveCollectionPDA()
	if err != nil {
		return solana.PublicKey{}, 0, err
	}
	idBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(idBytes, tokenID)

	pda, bump, err := solana.FindProgramAddress(
		[][]byte{
			seedEntry,
			collectionPDA.Bytes(),
			idBytes,
		},
		c.programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive entry PDA: %w", err)
	}
	return pda, bump, nil
}

// DeriveUniqueIDPDA derives the id-index address for a unique id.
func (c *Client) DeriveUniqueIDPDA(uid UniqueID) (solana.PublicKey, uint8, error) {
	collectionPDA, _, err := c.DeriveCollectionPDA()
	if err != nil {
		return solana.PublicKey{}, 0, err
	}
	pda, bump, err := solana.FindProgramAddress(
		[][]byte{
			seedUniqueID,
			collectionPDA.Bytes(),
			uid.Bytes(),
		},
		c.programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive unique id PDA: %w", err)
	}
	return pda, bump, nil
}

// DeriveNFTMintPDA derives the mint address for a sequential token id. The
// program signs mint operations with these seeds, so no extra mint keypair
// ever has to co-sign.
func (c *Client) DeriveNFTMintPDA(tokenID uint64) (solana.PublicKey, uint8, error) {
	collectionPDA, _, err := c.DeriveCollectionPDA()
	if err != nil {
		return solana.PublicKey{}, 0, err
	}
	idBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(idBytes, tokenID)

	pda, bump, err := solana.FindProgramAddress(
		[][]byte{
			seedNFTMint,
			collectionPDA.Bytes(),
			idBytes,
		},
		c.programID,
	)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive NFT mint PDA: %w", err)
	}
	return pda, bump, nil
}

// Info fetches and parses the collection record.
func (c *Client) Info(ctx context.Context) (*Record, error) {
	pda, _, err := c.DeriveCollectionPDA()
	if err != nil {
		return nil, err
	}
	data, err := c.endpoint.AccountData(ctx, pda)
	if err != nil {
		if errors.Is(err, cluster.ErrAccountNotFound) {
			return nil, fmt.Errorf("collection not initialized")
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return parseRecord(data)
}

// Find resolves a unique id to its entry: id-index lookup first, then the
// entry record. Two dependent reads, no compensation if the second fails.
func (c *Client) Find(ctx context.Context, uid UniqueID) (*Entry, error) {
	indexPDA, _, err := c.DeriveUniqueIDPDA(uid)
	if err != nil {
		return nil, err
	}
	indexData, err := c.endpoint.AccountData(ctx, indexPDA)
	if err != nil {
		if errors.Is(err, cluster.ErrAccountNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get id index: %w", err)
	}
	tokenID, err := parseIDIndex(indexData)
	if err != nil {
		return nil, err
	}

	entryPDA, _, err := c.DeriveEntryPDA(tokenID)
	if err != nil {
		return nil, err
	}
	entryData, err := c.endpoint.AccountData(ctx, entryPDA)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %d: %w", tokenID, err)
	}
	return parseEntry(entryData)
}
