// Package appstate is the single shared state container for the dashboard:
// derived remote state lives here so every consumer reads one cache instead
// of re-fetching. Writers use explicit setters, readers either snapshot or
// subscribe. Concurrent writers interleave last-write-wins; there is no
// transactional discipline over the cache.
package appstate

import (
	"sync"

	"soldash/cluster"
	"soldash/collection"
	"soldash/faucet"
	"soldash/vault"
)

// Snapshot is the cached view of everything the dashboard renders.
type Snapshot struct {
	Network    string                `json:"network"`
	Balance    *faucet.BalanceInfo   `json:"balance,omitempty"`
	Holders    []cluster.TokenHolder `json:"holders,omitempty"`
	Collection *collection.Record    `json:"collection,omitempty"`
	Vault      *vault.State          `json:"vault,omitempty"`
	Position   *vault.Position       `json:"position,omitempty"`
}

// Store holds the snapshot behind a mutex and notifies subscribers on every
// write.
type Store struct {
	mu   sync.RWMutex
	snap Snapshot
	subs []chan Snapshot
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Subscribe returns a channel receiving the snapshot after every write.
// Slow receivers miss intermediate snapshots.
func (s *Store) Subscribe() <-chan Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan Snapshot, 8)
	s.subs = append(s.subs, ch)
	return ch
}

// SetNetwork records the active network name.
func (s *Store) SetNetwork(name string) {
	s.update(func(snap *Snapshot) { snap.Network = name })
}

// SetBalance caches the faucet balance.
func (s *Store) SetBalance(b *faucet.BalanceInfo) {
	s.update(func(snap *Snapshot) { snap.Balance = b })
}

// SetHolders caches the holder list.
func (s *Store) SetHolders(h []cluster.TokenHolder) {
	s.update(func(snap *Snapshot) { snap.Holders = h })
}

// SetCollection caches the collection record.
func (s *Store) SetCollection(r *collection.Record) {
	s.update(func(snap *Snapshot) { snap.Collection = r })
}

// SetVault caches the vault state.
func (s *Store) SetVault(v *vault.State) {
	s.update(func(snap *Snapshot) { snap.Vault = v })
}

// SetPosition caches the user position.
func (s *Store) SetPosition(p *vault.Position) {
	s.update(func(snap *Snapshot) { snap.Position = p })
}

// Reset clears every cached value. Called when the wallet reports a chain
// that is not Solana at all: stale program state must not survive the switch.
func (s *Store) Reset() {
	s.update(func(snap *Snapshot) { *snap = Snapshot{} })
}

func (s *Store) update(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.snap)
	snap := s.snap
	subs := s.subs
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
