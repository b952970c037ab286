package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soldash/cluster"
	"soldash/wallet"
)

type fakeEndpoint struct {
	accountData map[solana.PublicKey][]byte
	accountErr  error
	sendErr     error
	failAtSend  int // 1-based send that starts failing, 0 = never
	sent        int
}

func (f *fakeEndpoint) AccountData(_ context.Context, account solana.PublicKey) ([]byte, error) {
	if f.accountErr != nil {
		return nil, f.accountErr
	}
	data, ok := f.accountData[account]
	if !ok {
		return nil, cluster.ErrAccountNotFound
	}
	return data, nil
}

func (f *fakeEndpoint) LatestBlockhash(context.Context) (solana.Hash, error) {
	return solana.Hash{1}, nil
}

func (f *fakeEndpoint) SendTransaction(context.Context, *solana.Transaction) (solana.Signature, error) {
	f.sent++
	if f.sendErr != nil {
		return solana.Signature{}, f.sendErr
	}
	if f.failAtSend > 0 && f.sent >= f.failAtSend {
		return solana.Signature{}, errors.New(`{"Custom":6001}`)
	}
	return solana.Signature{byte(f.sent)}, nil
}

func (f *fakeEndpoint) TokenBalance(context.Context, solana.PublicKey) (uint64, uint8, error) {
	return 0, 0, errors.New("not implemented")
}

func (f *fakeEndpoint) LargestTokenAccounts(context.Context, solana.PublicKey) ([]cluster.TokenHolder, error) {
	return nil, errors.New("not implemented")
}

func newTestClient(t *testing.T, ep cluster.Endpoint, authority solana.PublicKey) *Client {
	t.Helper()
	client, err := New(ep, authority)
	require.NoError(t, err)
	return client
}

// seedRecord installs a collection record account behind the collection PDA.
func seedRecord(t *testing.T, ep *fakeEndpoint, client *Client, next, total uint64) {
	t.Helper()
	pda, _, err := client.DeriveCollectionPDA()
	require.NoError(t, err)
	if ep.accountData == nil {
		ep.accountData = make(map[solana.PublicKey][]byte)
	}
	ep.accountData[pda] = recordData(client.authority, "Gadget IDs", "GID", "https://example.com/meta.json", next, total)
}

func TestPDADerivationDeterministic(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	client := newTestClient(t, &fakeEndpoint{}, authority)

	collPDA1, bump1, err := client.DeriveCollectionPDA()
	require.NoError(t, err)
	collPDA2, bump2, err := client.DeriveCollectionPDA()
	require.NoError(t, err)
	assert.Equal(t, collPDA1, collPDA2)
	assert.Equal(t, bump1, bump2)

	// A different authority roots a different collection.
	other := newTestClient(t, &fakeEndpoint{}, solana.NewWallet().PublicKey())
	otherPDA, _, err := other.DeriveCollectionPDA()
	require.NoError(t, err)
	assert.NotEqual(t, collPDA1, otherPDA)

	entry5, _, err := client.DeriveEntryPDA(5)
	require.NoError(t, err)
	entry6, _, err := client.DeriveEntryPDA(6)
	require.NoError(t, err)
	assert.NotEqual(t, entry5, entry6)

	uid := UniqueID{1, 2, 3, 4}
	uidPDA1, _, err := client.DeriveUniqueIDPDA(uid)
	require.NoError(t, err)
	uidPDA2, _, err := client.DeriveUniqueIDPDA(uid)
	require.NoError(t, err)
	assert.Equal(t, uidPDA1, uidPDA2)

	mint5, _, err := client.DeriveNFTMintPDA(5)
	require.NoError(t, err)
	assert.NotEqual(t, entry5, mint5)
}

func TestInfo(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	ep := &fakeEndpoint{}
	client := newTestClient(t, ep, authority)
	seedRecord(t, ep, client, 3, 2)

	record, err := client.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, authority, record.Authority)
	assert.Equal(t, uint64(3), record.NextTokenID)
	assert.Equal(t, uint64(2), record.TotalMinted)
}

func TestInfoNotInitialized(t *testing.T) {
	client := newTestClient(t, &fakeEndpoint{}, solana.NewWallet().PublicKey())
	_, err := client.Info(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestFind(t *testing.T) {
	ep := &fakeEndpoint{accountData: make(map[solana.PublicKey][]byte)}
	client := newTestClient(t, ep, solana.NewWallet().PublicKey())

	uid := UniqueID{10, 20, 30, 40}
	mint := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()

	indexPDA, _, err := client.DeriveUniqueIDPDA(uid)
	require.NoError(t, err)
	ep.accountData[indexPDA] = appendU64(make([]byte, 8), 7)

	entryPDA, _, err := client.DeriveEntryPDA(7)
	require.NoError(t, err)
	entryData := make([]byte, 8)
	entryData = appendU64(entryData, 7)
	entryData = append(entryData, uid.Bytes()...)
	entryData = append(entryData, mint.Bytes()...)
	entryData = append(entryData, owner.Bytes()...)
	ep.accountData[entryPDA] = entryData

	entry, err := client.Find(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), entry.TokenID)
	assert.Equal(t, uid, entry.UniqueID)
	assert.Equal(t, mint, entry.Mint)
	assert.Equal(t, owner, entry.Owner)
}

func TestFindUnknownIDIsNotFound(t *testing.T) {
	client := newTestClient(t, &fakeEndpoint{}, solana.NewWallet().PublicKey())
	_, err := client.Find(context.Background(), UniqueID{9, 9, 9, 9})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindDanglingIndex(t *testing.T) {
	ep := &fakeEndpoint{accountData: make(map[solana.PublicKey][]byte)}
	client := newTestClient(t, ep, solana.NewWallet().PublicKey())

	uid := UniqueID{1, 1, 1, 1}
	indexPDA, _, err := client.DeriveUniqueIDPDA(uid)
	require.NoError(t, err)
	ep.accountData[indexPDA] = appendU64(make([]byte, 8), 3)

	_, err = client.Find(context.Background(), uid)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestMintMany(t *testing.T) {
	wallet1 := solana.NewWallet()
	signer := wallet.NewLocal(wallet1.PrivateKey)

	ep := &fakeEndpoint{}
	client := newTestClient(t, ep, solana.NewWallet().PublicKey())
	seedRecord(t, ep, client, 5, 5)

	results, err := client.MintMany(context.Background(), signer, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, uint64(5+i), r.TokenID)
		assert.NotEmpty(t, r.Signature)
	}
	// Each mint drew a fresh id.
	assert.NotEqual(t, results[0].UniqueID, results[1].UniqueID)
	assert.Equal(t, 3, ep.sent)
}

func TestMintManyStopsAtFirstFailure(t *testing.T) {
	wallet1 := solana.NewWallet()
	signer := wallet.NewLocal(wallet1.PrivateKey)

	ep := &fakeEndpoint{failAtSend: 3}
	client := newTestClient(t, ep, solana.NewWallet().PublicKey())
	seedRecord(t, ep, client, 0, 0)

	results, err := client.MintMany(context.Background(), signer, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mint 3 of 5 failed")

	// The successful prefix is returned, nothing past the failure.
	require.Len(t, results, 2)
	assert.Equal(t, uint64(0), results[0].TokenID)
	assert.Equal(t, uint64(1), results[1].TokenID)
	assert.Equal(t, 3, ep.sent)
}

func TestMintManyWithoutRecordFails(t *testing.T) {
	signer := wallet.NewLocal(solana.NewWallet().PrivateKey)
	client := newTestClient(t, &fakeEndpoint{}, solana.NewWallet().PublicKey())

	_, err := client.MintMany(context.Background(), signer, 2)
	assert.Error(t, err)
}
