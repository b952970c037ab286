package cluster

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// UnsignedTx is a serialized transaction handed to the wallet for signing.
// The blockhash is echoed so clients know roughly how long it stays valid.
type UnsignedTx struct {
	Transaction string `json:"transaction"`
	Blockhash   string `json:"recent_blockhash"`
}

// BuildUnsigned fetches a recent blockhash, assembles a transaction from the
// given instructions, and serializes it unsigned for client-side signing.
func BuildUnsigned(ctx context.Context, ep Endpoint, instructions []solana.Instruction, payer solana.PublicKey) (*UnsignedTx, error) {
	blockhash, err := ep.LatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := solana.NewTransaction(
		instructions,
		blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	encoded, err := EncodeUnsigned(tx)
	if err != nil {
		return nil, err
	}
	return &UnsignedTx{
		Transaction: encoded,
		Blockhash:   blockhash.String(),
	}, nil
}

// BuildTransaction assembles an unserialized transaction for local signing.
func BuildTransaction(ctx context.Context, ep Endpoint, instructions []solana.Instruction, payer solana.PublicKey) (*solana.Transaction, error) {
	blockhash, err := ep.LatestBlockhash(ctx)
	if err != nil {
		return nil, err
	}
	tx, err := solana.NewTransaction(
		instructions,
		blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return tx, nil
}
