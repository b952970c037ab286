package collection

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"soldash/cluster"
	"soldash/metrics"
	"soldash/wallet"
)

// InitializeUnsigned builds the unsigned collection setup transaction.
func (c *Client) InitializeUnsigned(ctx context.Context, name, symbol, uri string) (*UnsignedResponse, error) {
	instruction, err := c.BuildInitializeInstruction(name, symbol, uri)
	if err != nil {
		return nil, err
	}
	unsigned, err := cluster.BuildUnsigned(ctx, c.endpoint, []solana.Instruction{instruction}, c.authority)
	if err != nil {
		return nil, err
	}
	return &UnsignedResponse{
		UnsignedTransaction: unsigned.Transaction,
		RecentBlockhash:     unsigned.Blockhash,
		Message:             "Unsigned transaction created - sign on client side",
	}, nil
}

// MintOneUnsigned builds one unsigned mint transaction against the current
// collection head.
func (c *Client) MintOneUnsigned(ctx context.Context, payer solana.PublicKey) (*UnsignedResponse, error) {
	record, err := c.Info(ctx)
	if err != nil {
		return nil, err
	}
	uid, err := RandomUniqueID()
	if err != nil {
		return nil, err
	}
	instruction, err := c.BuildMintInstruction(payer, record.NextTokenID, uid)
	if err != nil {
		return nil, err
	}
	unsigned, err := cluster.BuildUnsigned(ctx, c.endpoint, []solana.Instruction{instruction}, payer)
	if err != nil {
		return nil, err
	}
	return &UnsignedResponse{
		UnsignedTransaction: unsigned.Transaction,
		RecentBlockhash:     unsigned.Blockhash,
		TokenID:             record.NextTokenID,
		UniqueID:            uid.String(),
		Message:             "Unsigned transaction created - sign on client side",
	}, nil
}

// MintOne builds, signs, and submits one mint for a local signer.
func (c *Client) MintOne(ctx context.Context, signer wallet.Signer, tokenID uint64, uid UniqueID) (*MintResult, error) {
	instruction, err := c.BuildMintInstruction(signer.PublicKey(), tokenID, uid)
	if err != nil {
		return nil, err
	}
	sig, err := wallet.SignAndSend(ctx, c.endpoint, signer, []solana.Instruction{instruction})
	metrics.TxSubmitted.WithLabelValues("collection").Inc()
	if err != nil {
		metrics.TxFailed.WithLabelValues("collection").Inc()
		return nil, err
	}
	return &MintResult{
		TokenID:   tokenID,
		UniqueID:  uid,
		Signature: sig.String(),
	}, nil
}

// MintMany mints count NFTs one transaction at a time. The loop aborts on
// the first failure and returns the successful prefix together with the
// error; already-minted NFTs are kept, there is no rollback.
func (c *Client) MintMany(ctx context.Context, signer wallet.Signer, count int) ([]MintResult, error) {
	record, err := c.Info(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]MintResult, 0, count)
	for i := 0; i < count; i++ {
		uid, err := RandomUniqueID()
		if err != nil {
			return results, err
		}
		res, err := c.MintOne(ctx, signer, record.NextTokenID+uint64(i), uid)
		if err != nil {
			return results, fmt.Errorf("mint %d of %d failed: %w", i+1, count, err)
		}
		results = append(results, *res)
	}
	return results, nil
}

// Initialize builds, signs, and submits the collection setup for a local
// signer.
func (c *Client) Initialize(ctx context.Context, signer wallet.Signer, name, symbol, uri string) (solana.Signature, error) {
	instruction, err := c.BuildInitializeInstruction(name, symbol, uri)
	if err != nil {
		return solana.Signature{}, err
	}
	sig, err := wallet.SignAndSend(ctx, c.endpoint, signer, []solana.Instruction{instruction})
	metrics.TxSubmitted.WithLabelValues("collection").Inc()
	if err != nil {
		metrics.TxFailed.WithLabelValues("collection").Inc()
		return solana.Signature{}, err
	}
	return sig, nil
}
