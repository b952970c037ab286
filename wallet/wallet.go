// Package wallet is the signer boundary. Browser wallets sign outside this
// process (unsigned base64 out, signed base64 back in); the CLI signs locally
// with a keypair file through Local.
package wallet

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"soldash/cluster"
)

// Signer can authorize transactions for one public key.
type Signer interface {
	PublicKey() solana.PublicKey
	Sign(tx *solana.Transaction) error
}

// Local signs with an in-process private key.
type Local struct {
	key solana.PrivateKey
}

// NewLocal wraps a private key.
func NewLocal(key solana.PrivateKey) *Local {
	return &Local{key: key}
}

// LoadLocal reads a solana-keygen JSON keypair file.
func LoadLocal(path string) (*Local, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load keypair %s: %w", path, err)
	}
	return &Local{key: key}, nil
}

// PublicKey returns the signer's address.
func (l *Local) PublicKey() solana.PublicKey {
	return l.key.PublicKey()
}

// Sign signs every input the key controls.
func (l *Local) Sign(tx *solana.Transaction) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if l.key.PublicKey().Equals(key) {
			return &l.key
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}
	return nil
}

// SignAndSend builds a transaction from the instructions, signs it, and
// submits it.
func SignAndSend(ctx context.Context, ep cluster.Endpoint, signer Signer, instructions []solana.Instruction) (solana.Signature, error) {
	tx, err := cluster.BuildTransaction(ctx, ep, instructions, signer.PublicKey())
	if err != nil {
		return solana.Signature{}, err
	}
	if err := signer.Sign(tx); err != nil {
		return solana.Signature{}, err
	}
	return ep.SendTransaction(ctx, tx)
}
