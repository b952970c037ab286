// Package anchor implements the plumbing shared by the program clients:
// instruction discriminators, positional instruction-data encoding, and
// extraction of custom program error codes from RPC failures.
package anchor

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// Discriminator derives the 8-byte instruction discriminator for a global
// method: sha256("global:<name>")[:8].
func Discriminator(name string) []byte {
	hash := sha256.Sum256([]byte("global:" + name))
	return hash[:8]
}

// AccountDiscriminator derives the 8-byte account discriminator:
// sha256("account:<Name>")[:8].
func AccountDiscriminator(name string) []byte {
	hash := sha256.Sum256([]byte("account:" + name))
	return hash[:8]
}

// Data builds instruction data positionally. Argument order must match the
// deployed program's interface; a mismatch only surfaces as a remote-call
// failure.
type Data struct {
	buf []byte
}

// NewData starts instruction data with the given method discriminator.
func NewData(method string) *Data {
	return &Data{buf: Discriminator(method)}
}

// U64 appends a little-endian uint64.
func (d *Data) U64(v uint64) *Data {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	d.buf = append(d.buf, b...)
	return d
}

// U16 appends a little-endian uint16.
func (d *Data) U16(v uint16) *Data {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	d.buf = append(d.buf, b...)
	return d
}

// U8 appends a single byte.
func (d *Data) U8(v uint8) *Data {
	d.buf = append(d.buf, v)
	return d
}

// PublicKey appends a 32-byte public key.
func (d *Data) PublicKey(pk solana.PublicKey) *Data {
	d.buf = append(d.buf, pk.Bytes()...)
	return d
}

// String appends a borsh string: u32 length prefix plus raw bytes.
func (d *Data) String(s string) *Data {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(len(s)))
	d.buf = append(d.buf, b...)
	d.buf = append(d.buf, []byte(s)...)
	return d
}

// Bytes appends raw bytes as-is.
func (d *Data) Bytes(b []byte) *Data {
	d.buf = append(d.buf, b...)
	return d
}

// Build returns the encoded instruction data.
func (d *Data) Build() []byte {
	return d.buf
}

// Well-known program addresses.
var (
	SystemProgramID       = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")
	TokenProgramID        = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	AssociatedTokenProgID = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	SysVarRentID          = solana.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")
)

// FindAssociatedTokenAddress derives the canonical per-(owner, mint)
// balance-holding account.
func FindAssociatedTokenAddress(owner, mint solana.PublicKey) (solana.PublicKey, error) {
	ata, _, err := solana.FindProgramAddress(
		[][]byte{
			owner.Bytes(),
			TokenProgramID.Bytes(),
			mint.Bytes(),
		},
		AssociatedTokenProgID,
	)
	return ata, err
}
