package faucet

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// parseMintAuthority parses the mint authority account data.
func parseMintAuthority(data []byte) (*MintAuthorityRecord, error) {
	if len(data) < 41 { // 8 (discriminator) + 32 (pubkey) + 1 (bump)
		return nil, fmt.Errorf("invalid mint authority data length: %d", len(data))
	}

	// Skip 8-byte discriminator
	offset := 8

	mint := solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	bump := data[offset]

	return &MintAuthorityRecord{
		Mint: mint,
		Bump: bump,
	}, nil
}
