package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soldash/cluster"
)

type fakeEndpoint struct {
	sendErr error
	lastTx  *solana.Transaction
}

func (f *fakeEndpoint) AccountData(context.Context, solana.PublicKey) ([]byte, error) {
	return nil, cluster.ErrAccountNotFound
}

func (f *fakeEndpoint) LatestBlockhash(context.Context) (solana.Hash, error) {
	return solana.Hash{1}, nil
}

func (f *fakeEndpoint) SendTransaction(_ context.Context, tx *solana.Transaction) (solana.Signature, error) {
	f.lastTx = tx
	if f.sendErr != nil {
		return solana.Signature{}, f.sendErr
	}
	return solana.Signature{1}, nil
}

func (f *fakeEndpoint) TokenBalance(context.Context, solana.PublicKey) (uint64, uint8, error) {
	return 0, 0, errors.New("not implemented")
}

func (f *fakeEndpoint) LargestTokenAccounts(context.Context, solana.PublicKey) ([]cluster.TokenHolder, error) {
	return nil, errors.New("not implemented")
}

func testInstruction(payer solana.PublicKey) solana.Instruction {
	return solana.NewInstruction(
		solana.NewWallet().PublicKey(),
		solana.AccountMetaSlice{solana.Meta(payer).SIGNER().WRITE()},
		[]byte{1, 2, 3},
	)
}

func TestLocalPublicKey(t *testing.T) {
	w := solana.NewWallet()
	signer := NewLocal(w.PrivateKey)
	assert.Equal(t, w.PublicKey(), signer.PublicKey())
}

func TestLocalSign(t *testing.T) {
	w := solana.NewWallet()
	signer := NewLocal(w.PrivateKey)

	tx, err := solana.NewTransaction(
		[]solana.Instruction{testInstruction(w.PublicKey())},
		solana.Hash{1},
		solana.TransactionPayer(w.PublicKey()),
	)
	require.NoError(t, err)

	require.NoError(t, signer.Sign(tx))
	require.NotEmpty(t, tx.Signatures)
	assert.NoError(t, tx.VerifySignatures())
}

func TestLoadLocal(t *testing.T) {
	w := solana.NewWallet()

	// solana-keygen writes the 64-byte secret as a JSON int array.
	raw := make([]int, len(w.PrivateKey))
	for i, b := range w.PrivateKey {
		raw[i] = int(b)
	}
	buf, err := json.Marshal(raw)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, os.WriteFile(path, buf, 0o600))

	signer, err := LoadLocal(path)
	require.NoError(t, err)
	assert.Equal(t, w.PublicKey(), signer.PublicKey())
}

func TestLoadLocalMissingFile(t *testing.T) {
	_, err := LoadLocal(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestSignAndSend(t *testing.T) {
	w := solana.NewWallet()
	signer := NewLocal(w.PrivateKey)
	ep := &fakeEndpoint{}

	sig, err := SignAndSend(context.Background(), ep, signer, []solana.Instruction{testInstruction(w.PublicKey())})
	require.NoError(t, err)
	assert.False(t, sig.IsZero())

	require.NotNil(t, ep.lastTx)
	assert.NoError(t, ep.lastTx.VerifySignatures())
}

func TestSignAndSendPropagatesSendError(t *testing.T) {
	w := solana.NewWallet()
	ep := &fakeEndpoint{sendErr: errors.New("node rejected")}

	_, err := SignAndSend(context.Background(), ep, NewLocal(w.PrivateKey), []solana.Instruction{testInstruction(w.PublicKey())})
	assert.Error(t, err)
}
