package collection

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// readString reads a borsh string (u32 length prefix) and returns the new
// offset.
func readString(data []byte, offset int) (string, int, error) {
	if offset+4 > len(data) {
		return "", 0, fmt.Errorf("truncated string length at offset %d", offset)
	}
	n := int(binary.LittleEndian.Uint32(data[offset : offset+4]))
	offset += 4
	if offset+n > len(data) {
		return "", 0, fmt.Errorf("truncated string of length %d at offset %d", n, offset)
	}
	return string(data[offset : offset+n]), offset + n, nil
}

// parseRecord parses the collection account data.
// Layout: discriminator(8) + authority(32) + name + symbol + uri (borsh
// strings) + next_token_id(8) + total_minted(8).
func parseRecord(data []byte) (*Record, error) {
	if len(data) < 8+32+4+4+4+8+8 {
		return nil, fmt.Errorf("invalid collection data length: %d", len(data))
	}

	// Skip 8-byte discriminator
	offset := 8

	authority := solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	name, offset, err := readString(data, offset)
	if err != nil {
		return nil, fmt.Errorf("invalid collection name: %w", err)
	}
	symbol, offset, err := readString(data, offset)
	if err != nil {
		return nil, fmt.Errorf("invalid collection symbol: %w", err)
	}
	uri, offset, err := readString(data, offset)
	if err != nil {
		return nil, fmt.Errorf("invalid collection uri: %w", err)
	}

	if offset+16 > len(data) {
		return nil, fmt.Errorf("truncated collection counters at offset %d", offset)
	}
	nextTokenID := binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8
	totalMinted := binary.LittleEndian.Uint64(data[offset : offset+8])

	return &Record{
		Authority:   authority,
		Name:        name,
		Symbol:      symbol,
		URI:         uri,
		NextTokenID: nextTokenID,
		TotalMinted: totalMinted,
	}, nil
}

// parseEntry parses an entry account.
// Layout: discriminator(8) + token_id(8) + unique_id(32) + mint(32) +
// owner(32).
func parseEntry(data []byte) (*Entry, error) {
	if len(data) < 8+8+32+32+32 {
		return nil, fmt.Errorf("invalid entry data length: %d", len(data))
	}

	offset := 8

	tokenID := binary.LittleEndian.Uint64(data[offset : offset+8])
	offset += 8

	uid, err := UniqueIDFromBytes(data[offset : offset+32])
	if err != nil {
		return nil, err
	}
	offset += 32

	mint := solana.PublicKeyFromBytes(data[offset : offset+32])
	offset += 32

	owner := solana.PublicKeyFromBytes(data[offset : offset+32])

	return &Entry{
		TokenID:  tokenID,
		UniqueID: uid,
		Mint:     mint,
		Owner:    owner,
	}, nil
}

// parseIDIndex parses an id-index account.
// Layout: discriminator(8) + token_id(8).
func parseIDIndex(data []byte) (uint64, error) {
	if len(data) < 16 {
		return 0, fmt.Errorf("invalid id index data length: %d", len(data))
	}
	return binary.LittleEndian.Uint64(data[8:16]), nil
}
