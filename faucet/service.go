package faucet

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"soldash/cluster"
	"soldash/metrics"
	"soldash/wallet"
)

// MintUnsigned builds an unsigned mint transaction for the wallet to sign.
func (c *Client) MintUnsigned(ctx context.Context, owner solana.PublicKey, amount uint64) (*MintResponse, error) {
	instruction, err := c.BuildMintInstruction(owner, amount)
	if err != nil {
		return nil, err
	}
	unsigned, err := cluster.BuildUnsigned(ctx, c.endpoint, []solana.Instruction{instruction}, owner)
	if err != nil {
		return nil, err
	}
	destination, err := c.TokenAddress(owner)
	if err != nil {
		return nil, err
	}
	return &MintResponse{
		UnsignedTransaction: unsigned.Transaction,
		RecentBlockhash:     unsigned.Blockhash,
		TokenAccount:        destination.String(),
		Message:             "Unsigned transaction created - sign on client side",
	}, nil
}

// Mint builds, signs, and submits a mint transaction for a local signer.
func (c *Client) Mint(ctx context.Context, signer wallet.Signer, amount uint64) (solana.Signature, error) {
	instruction, err := c.BuildMintInstruction(signer.PublicKey(), amount)
	if err != nil {
		return solana.Signature{}, err
	}
	sig, err := wallet.SignAndSend(ctx, c.endpoint, signer, []solana.Instruction{instruction})
	metrics.TxSubmitted.WithLabelValues("faucet").Inc()
	if err != nil {
		metrics.TxFailed.WithLabelValues("faucet").Inc()
		return solana.Signature{}, err
	}
	return sig, nil
}

// Initialize builds, signs, and submits the one-time faucet setup.
func (c *Client) Initialize(ctx context.Context, signer wallet.Signer) (solana.Signature, error) {
	instruction, err := c.BuildInitializeInstruction(signer.PublicKey())
	if err != nil {
		return solana.Signature{}, err
	}
	sig, err := wallet.SignAndSend(ctx, c.endpoint, signer, []solana.Instruction{instruction})
	metrics.TxSubmitted.WithLabelValues("faucet").Inc()
	if err != nil {
		metrics.TxFailed.WithLabelValues("faucet").Inc()
		return solana.Signature{}, err
	}
	return sig, nil
}
