package appstate

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"

	"soldash/cluster"
	"soldash/collection"
	"soldash/faucet"
	"soldash/vault"
)

func TestStoreSetters(t *testing.T) {
	s := NewStore()
	assert.Equal(t, Snapshot{}, s.Snapshot())

	owner := solana.NewWallet().PublicKey()
	s.SetNetwork("devnet")
	s.SetBalance(&faucet.BalanceInfo{Owner: owner, Amount: 100})
	s.SetHolders([]cluster.TokenHolder{{Amount: 1}})
	s.SetCollection(&collection.Record{Name: "Gadget IDs", NextTokenID: 3})
	s.SetVault(&vault.State{TotalShares: 10})
	s.SetPosition(&vault.Position{Owner: owner, Shares: 5})

	snap := s.Snapshot()
	assert.Equal(t, "devnet", snap.Network)
	assert.Equal(t, uint64(100), snap.Balance.Amount)
	assert.Len(t, snap.Holders, 1)
	assert.Equal(t, "Gadget IDs", snap.Collection.Name)
	assert.Equal(t, uint64(10), snap.Vault.TotalShares)
	assert.Equal(t, uint64(5), snap.Position.Shares)
}

func TestStoreResetClearsEverything(t *testing.T) {
	s := NewStore()
	s.SetNetwork("devnet")
	s.SetBalance(&faucet.BalanceInfo{Amount: 100})
	s.SetCollection(&collection.Record{Name: "x"})
	s.SetVault(&vault.State{TotalShares: 10})
	s.SetPosition(&vault.Position{Shares: 5})
	s.SetHolders([]cluster.TokenHolder{{Amount: 1}})

	s.Reset()

	assert.Equal(t, Snapshot{}, s.Snapshot())
}

func TestStoreSubscribe(t *testing.T) {
	s := NewStore()
	ch := s.Subscribe()

	s.SetNetwork("testnet")
	snap := <-ch
	assert.Equal(t, "testnet", snap.Network)

	s.Reset()
	snap = <-ch
	assert.Equal(t, Snapshot{}, snap)
}

func TestStoreSlowSubscriberDoesNotBlock(t *testing.T) {
	s := NewStore()
	s.Subscribe() // never drained

	for i := 0; i < 50; i++ {
		s.SetNetwork("devnet")
	}
	assert.Equal(t, "devnet", s.Snapshot().Network)
}
