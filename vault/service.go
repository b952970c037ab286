package vault

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"soldash/cluster"
	"soldash/metrics"
	"soldash/wallet"
)

// DepositUnsigned builds the unsigned deposit transaction.
func (c *Client) DepositUnsigned(ctx context.Context, owner, nftMint solana.PublicKey, amount uint64) (*UnsignedResponse, error) {
	instruction, err := c.BuildDepositInstruction(owner, nftMint, amount)
	if err != nil {
		return nil, err
	}
	return c.unsigned(ctx, instruction, owner)
}

// WithdrawUnsigned builds the unsigned withdraw transaction.
func (c *Client) WithdrawUnsigned(ctx context.Context, owner, nftMint solana.PublicKey, shares uint64) (*UnsignedResponse, error) {
	instruction, err := c.BuildWithdrawInstruction(owner, nftMint, shares)
	if err != nil {
		return nil, err
	}
	return c.unsigned(ctx, instruction, owner)
}

// TransferUnsigned builds the unsigned position-transfer transaction.
func (c *Client) TransferUnsigned(ctx context.Context, owner, newOwner, nftMint solana.PublicKey) (*UnsignedResponse, error) {
	instruction, err := c.BuildTransferInstruction(owner, newOwner, nftMint)
	if err != nil {
		return nil, err
	}
	return c.unsigned(ctx, instruction, owner)
}

func (c *Client) unsigned(ctx context.Context, instruction solana.Instruction, payer solana.PublicKey) (*UnsignedResponse, error) {
	unsigned, err := cluster.BuildUnsigned(ctx, c.endpoint, []solana.Instruction{instruction}, payer)
	if err != nil {
		return nil, err
	}
	return &UnsignedResponse{
		UnsignedTransaction: unsigned.Transaction,
		RecentBlockhash:     unsigned.Blockhash,
		Message:             "Unsigned transaction created - sign on client side",
	}, nil
}

// Deposit builds, signs, and submits a deposit for a local signer, driving
// the phase tracker.
func (c *Client) Deposit(ctx context.Context, signer wallet.Signer, nftMint solana.PublicKey, amount uint64) (solana.Signature, error) {
	return c.submit(ctx, signer, func() (solana.Instruction, error) {
		return c.BuildDepositInstruction(signer.PublicKey(), nftMint, amount)
	})
}

// Withdraw builds, signs, and submits a withdrawal for a local signer.
func (c *Client) Withdraw(ctx context.Context, signer wallet.Signer, nftMint solana.PublicKey, shares uint64) (solana.Signature, error) {
	return c.submit(ctx, signer, func() (solana.Instruction, error) {
		return c.BuildWithdrawInstruction(signer.PublicKey(), nftMint, shares)
	})
}

// Transfer builds, signs, and submits a position transfer for a local signer.
func (c *Client) Transfer(ctx context.Context, signer wallet.Signer, newOwner, nftMint solana.PublicKey) (solana.Signature, error) {
	return c.submit(ctx, signer, func() (solana.Instruction, error) {
		return c.BuildTransferInstruction(signer.PublicKey(), newOwner, nftMint)
	})
}

// submit walks one transaction through building, signing, and submission,
// recording each phase. Every failure path lands the tracker in failed.
func (c *Client) submit(ctx context.Context, signer wallet.Signer, build func() (solana.Instruction, error)) (solana.Signature, error) {
	c.tracker.transition(PhaseBuilding)
	instruction, err := build()
	if err != nil {
		c.tracker.fail(err)
		return solana.Signature{}, err
	}
	tx, err := cluster.BuildTransaction(ctx, c.endpoint, []solana.Instruction{instruction}, signer.PublicKey())
	if err != nil {
		c.tracker.fail(err)
		return solana.Signature{}, err
	}

	c.tracker.transition(PhaseSigning)
	if err := signer.Sign(tx); err != nil {
		c.tracker.fail(err)
		return solana.Signature{}, err
	}

	c.tracker.transition(PhaseConfirming)
	sig, err := c.endpoint.SendTransaction(ctx, tx)
	metrics.TxSubmitted.WithLabelValues("vault").Inc()
	if err != nil {
		metrics.TxFailed.WithLabelValues("vault").Inc()
		c.tracker.fail(err)
		return solana.Signature{}, err
	}

	c.tracker.succeed(sig.String())
	return sig, nil
}
