package collection

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// UniqueID is the opaque fixed-length numeric tuple attached to each minted
// NFT, distinct from its sequential token id. Wire form is 32 bytes
// little-endian.
type UniqueID [4]uint64

// Bytes returns the 32-byte wire form.
func (u UniqueID) Bytes() []byte {
	b := make([]byte, 32)
	for i, v := range u {
		binary.LittleEndian.PutUint64(b[i*8:], v)
	}
	return b
}

// String renders the tuple as four dash-separated decimal fields.
func (u UniqueID) String() string {
	parts := make([]string, len(u))
	for i, v := range u {
		parts[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(parts, "-")
}

// ParseUniqueID parses the dash-separated form.
func ParseUniqueID(s string) (UniqueID, error) {
	var u UniqueID
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != len(u) {
		return u, fmt.Errorf("unique id must have %d fields, got %d", len(u), len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return u, fmt.Errorf("invalid unique id field %q: %w", p, err)
		}
		u[i] = v
	}
	return u, nil
}

// UniqueIDFromBytes reads the 32-byte wire form.
func UniqueIDFromBytes(b []byte) (UniqueID, error) {
	var u UniqueID
	if len(b) < 32 {
		return u, fmt.Errorf("unique id needs 32 bytes, got %d", len(b))
	}
	for i := range u {
		u[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return u, nil
}

// RandomUniqueID draws a fresh candidate id. The program rejects the mint if
// the id is already taken; the client never proves uniqueness itself.
func RandomUniqueID() (UniqueID, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return UniqueID{}, fmt.Errorf("failed to generate unique id: %w", err)
	}
	return UniqueIDFromBytes(b[:])
}

// Record mirrors the collection account: metadata plus mint counters.
type Record struct {
	Authority   solana.PublicKey `json:"authority"`
	Name        string           `json:"name"`
	Symbol      string           `json:"symbol"`
	URI         string           `json:"uri"`
	NextTokenID uint64           `json:"next_token_id"`
	TotalMinted uint64           `json:"total_minted"`
}

// Entry maps one sequential token id to its unique id and mint.
type Entry struct {
	TokenID  uint64           `json:"token_id"`
	UniqueID UniqueID         `json:"unique_id"`
	Mint     solana.PublicKey `json:"mint"`
	Owner    solana.PublicKey `json:"owner"`
}

// MintResult is one successful mint out of a batch.
type MintResult struct {
	TokenID   uint64   `json:"token_id"`
	UniqueID  UniqueID `json:"unique_id"`
	Signature string   `json:"signature"`
}

// InitRequest creates the collection record.
type InitRequest struct {
	Authority string `json:"authority"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	URI       string `json:"uri"`
}

// MintRequest mints one NFT via the unsigned flow.
type MintRequest struct {
	Payer string `json:"payer"`
}

// UnsignedResponse carries an unsigned transaction back to the wallet.
type UnsignedResponse struct {
	UnsignedTransaction string `json:"unsigned_transaction"`
	RecentBlockhash     string `json:"recent_blockhash"`
	TokenID             uint64 `json:"token_id,omitempty"`
	UniqueID            string `json:"unique_id,omitempty"`
	Message             string `json:"message"`
}
