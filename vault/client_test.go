package vault

import (
	"context"
	"errors"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soldash/cluster"
	"soldash/wallet"
)

type fakeEndpoint struct {
	accountData  map[solana.PublicKey][]byte
	blockhashErr error
	sendErr      error
	sent         int
}

func (f *fakeEndpoint) AccountData(_ context.Context, account solana.PublicKey) ([]byte, error) {
	data, ok := f.accountData[account]
	if !ok {
		return nil, cluster.ErrAccountNotFound
	}
	return data, nil
}

func (f *fakeEndpoint) LatestBlockhash(context.Context) (solana.Hash, error) {
	if f.blockhashErr != nil {
		return solana.Hash{}, f.blockhashErr
	}
	return solana.Hash{1}, nil
}

func (f *fakeEndpoint) SendTransaction(context.Context, *solana.Transaction) (solana.Signature, error) {
	f.sent++
	if f.sendErr != nil {
		return solana.Signature{}, f.sendErr
	}
	return solana.Signature{byte(f.sent)}, nil
}

func (f *fakeEndpoint) TokenBalance(context.Context, solana.PublicKey) (uint64, uint8, error) {
	return 0, 0, errors.New("not implemented")
}

func (f *fakeEndpoint) LargestTokenAccounts(context.Context, solana.PublicKey) ([]cluster.TokenHolder, error) {
	return nil, errors.New("not implemented")
}

func newTestClient(t *testing.T, ep cluster.Endpoint) *Client {
	t.Helper()
	client, err := New(ep, solana.NewWallet().PublicKey())
	require.NoError(t, err)
	return client
}

// accountBytes prefixes borsh-encoded fields with an 8-byte discriminator.
func accountBytes(t *testing.T, v interface{}) []byte {
	t.Helper()
	fields, err := bin.MarshalBorsh(v)
	require.NoError(t, err)
	return append(make([]byte, 8), fields...)
}

func TestDerivePDAsDeterministic(t *testing.T) {
	client := newTestClient(t, &fakeEndpoint{})

	vault1, bump1, err := client.DeriveVaultPDA()
	require.NoError(t, err)
	vault2, bump2, err := client.DeriveVaultPDA()
	require.NoError(t, err)
	assert.Equal(t, vault1, vault2)
	assert.Equal(t, bump1, bump2)

	owner := solana.NewWallet().PublicKey()
	nft := solana.NewWallet().PublicKey()
	pos1, _, err := client.DerivePositionPDA(owner, nft)
	require.NoError(t, err)
	pos2, _, err := client.DerivePositionPDA(owner, nft)
	require.NoError(t, err)
	assert.Equal(t, pos1, pos2)

	otherPos, _, err := client.DerivePositionPDA(solana.NewWallet().PublicKey(), nft)
	require.NoError(t, err)
	assert.NotEqual(t, pos1, otherPos)
}

func TestState(t *testing.T) {
	ep := &fakeEndpoint{accountData: make(map[solana.PublicKey][]byte)}
	client := newTestClient(t, ep)

	want := State{
		AssetMint:        client.assetMint,
		TotalShares:      1000,
		TotalBorrowed:    250,
		ReserveFactorBps: 500,
		BorrowIndex:      bin.Uint128{Lo: 7, Hi: 0},
		Paused:           true,
	}
	pda, _, err := client.DeriveVaultPDA()
	require.NoError(t, err)
	ep.accountData[pda] = accountBytes(t, want)

	got, err := client.State(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestStateNotInitialized(t *testing.T) {
	client := newTestClient(t, &fakeEndpoint{})
	_, err := client.State(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestPositionMissingAccountIsEmpty(t *testing.T) {
	client := newTestClient(t, &fakeEndpoint{})
	owner := solana.NewWallet().PublicKey()
	nft := solana.NewWallet().PublicKey()

	pos, err := client.Position(context.Background(), owner, nft)
	require.NoError(t, err)
	assert.Equal(t, owner, pos.Owner)
	assert.Equal(t, nft, pos.NFTMint)
	assert.Zero(t, pos.Shares)
	assert.Zero(t, pos.DepositValue)
}

func TestPosition(t *testing.T) {
	ep := &fakeEndpoint{accountData: make(map[solana.PublicKey][]byte)}
	client := newTestClient(t, ep)
	owner := solana.NewWallet().PublicKey()
	nft := solana.NewWallet().PublicKey()

	want := Position{Owner: owner, NFTMint: nft, Shares: 80, DepositValue: 100}
	pda, _, err := client.DerivePositionPDA(owner, nft)
	require.NoError(t, err)
	ep.accountData[pda] = accountBytes(t, want)

	got, err := client.Position(context.Background(), owner, nft)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestDepositDrivesTrackerToSucceeded(t *testing.T) {
	ep := &fakeEndpoint{}
	client := newTestClient(t, ep)
	signer := wallet.NewLocal(solana.NewWallet().PrivateKey)
	nft := solana.NewWallet().PublicKey()

	ch := client.Tracker().Subscribe()

	sig, err := client.Deposit(context.Background(), signer, nft, 100)
	require.NoError(t, err)
	assert.False(t, sig.IsZero())

	snap := client.Tracker().Snapshot()
	assert.Equal(t, PhaseSucceeded, snap.Phase)
	assert.Equal(t, sig.String(), snap.Signature)
	assert.Empty(t, snap.Error)

	// The tracker walked the full phase sequence.
	var phases []Phase
	for i := 0; i < 4; i++ {
		phases = append(phases, (<-ch).Phase)
	}
	assert.Equal(t, []Phase{PhaseBuilding, PhaseSigning, PhaseConfirming, PhaseSucceeded}, phases)
}

func TestSubmitFailureLandsInFailed(t *testing.T) {
	ep := &fakeEndpoint{sendErr: errors.New(`{"Custom":6000}`)}
	client := newTestClient(t, ep)
	signer := wallet.NewLocal(solana.NewWallet().PrivateKey)

	_, err := client.Withdraw(context.Background(), signer, solana.NewWallet().PublicKey(), 10)
	require.Error(t, err)

	snap := client.Tracker().Snapshot()
	assert.Equal(t, PhaseFailed, snap.Phase)
	assert.Contains(t, snap.Error, "6000")
	assert.Empty(t, snap.Signature)
}

func TestBlockhashFailureLandsInFailed(t *testing.T) {
	ep := &fakeEndpoint{blockhashErr: errors.New("rpc down")}
	client := newTestClient(t, ep)
	signer := wallet.NewLocal(solana.NewWallet().PrivateKey)

	_, err := client.Transfer(context.Background(), signer, solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey())
	require.Error(t, err)

	snap := client.Tracker().Snapshot()
	assert.Equal(t, PhaseFailed, snap.Phase)
	assert.Equal(t, "rpc down", snap.Error)
	assert.Equal(t, 0, ep.sent)
}

func TestFailedAttemptThenRetrySucceeds(t *testing.T) {
	ep := &fakeEndpoint{sendErr: errors.New("node rejected")}
	client := newTestClient(t, ep)
	signer := wallet.NewLocal(solana.NewWallet().PrivateKey)
	nft := solana.NewWallet().PublicKey()

	_, err := client.Deposit(context.Background(), signer, nft, 100)
	require.Error(t, err)
	require.Equal(t, PhaseFailed, client.Tracker().Snapshot().Phase)

	ep.sendErr = nil
	sig, err := client.Deposit(context.Background(), signer, nft, 100)
	require.NoError(t, err)

	snap := client.Tracker().Snapshot()
	assert.Equal(t, PhaseSucceeded, snap.Phase)
	assert.Equal(t, sig.String(), snap.Signature)
	assert.Empty(t, snap.Error)
}
