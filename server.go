package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gagliardetto/solana-go"

	"soldash/appstate"
	"soldash/cluster"
	"soldash/collection"
	"soldash/config"
	"soldash/faucet"
	"soldash/httpapi"
	"soldash/vault"
)

// Fallback identities when none are configured.
const defaultCollectionAuthority = "wFuFPgHsLt9t5HALqFQqbdM9WvyQstdKN8NQXB3GWeD"

// app owns the live connection and the program clients. Selecting a new
// chain rebuilds all of them; selecting a non-Solana chain drops all of them.
type app struct {
	mu    sync.Mutex
	cfg   *config.Config
	store *appstate.Store
	prefs *appstate.Prefs

	conn       *cluster.Connection
	faucet     *faucet.Client
	collection *collection.Client
	vault      *vault.Client
}

func newApp(cfg *config.Config, store *appstate.Store, prefs *appstate.Prefs) *app {
	return &app{cfg: cfg, store: store, prefs: prefs}
}

// connect opens a connection to the network and rebuilds the program
// clients against it.
func (a *app) connect(ctx context.Context, network cluster.Network) error {
	if a.cfg.RPCURL != "" {
		network.RPCURL = a.cfg.RPCURL
	}
	if a.cfg.WSURL != "" {
		network.WSURL = a.cfg.WSURL
	}

	conn, err := cluster.Connect(ctx, network)
	if err != nil {
		return err
	}

	faucetClient, err := faucet.New(conn, network, a.cfg.FaucetMint)
	if err != nil {
		return err
	}

	authorityAddr := a.cfg.CollectionAuthority
	if authorityAddr == "" {
		authorityAddr = defaultCollectionAuthority
	}
	authority, err := solana.PublicKeyFromBase58(authorityAddr)
	if err != nil {
		return err
	}
	collectionClient, err := collection.New(conn, authority)
	if err != nil {
		return err
	}

	assetMint := faucetClient.Mint()
	if a.cfg.VaultAssetMint != "" {
		assetMint, err = solana.PublicKeyFromBase58(a.cfg.VaultAssetMint)
		if err != nil {
			return err
		}
	}
	vaultClient, err := vault.New(conn, assetMint)
	if err != nil {
		return err
	}

	a.mu.Lock()
	if a.conn != nil {
		a.conn.Close()
	}
	a.conn = conn
	a.faucet = faucetClient
	a.collection = collectionClient
	a.vault = vaultClient
	a.mu.Unlock()

	a.store.SetNetwork(network.Name)
	return nil
}

// disconnect drops the connection and every program client.
func (a *app) disconnect() {
	a.mu.Lock()
	if a.conn != nil {
		a.conn.Close()
	}
	a.conn = nil
	a.faucet = nil
	a.collection = nil
	a.vault = nil
	a.mu.Unlock()

	a.store.Reset()
}

func (a *app) connection() *cluster.Connection {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.conn
}

// guarded wraps a program handler with a connected-check, so a dropped
// connection reports 503 instead of a nil panic.
func guarded[T any](get func() *T, pick func(*T) http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := get()
		if c == nil {
			httpapi.Error(w, "no Solana network selected", http.StatusServiceUnavailable)
			return
		}
		pick(c)(w, r)
	}
}

// SelectRequest switches the active chain.
type SelectRequest struct {
	ChainID string `json:"chain_id"`
}

// handleSelect - POST /api/v1/cluster/select
//
// A chain id that does not name the Solana platform clears all program
// state instead of connecting anywhere.
func (a *app) handleSelect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpapi.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !cluster.IsSolanaChain(req.ChainID) {
		a.disconnect()
		slog.Info("non-Solana chain reported, cleared program state", "chain_id", req.ChainID)
		httpapi.JSON(w, map[string]string{
			"status":  "cleared",
			"message": "chain is not Solana, program state cleared",
		}, http.StatusOK)
		return
	}

	network := cluster.Resolve(req.ChainID)
	if err := a.connect(r.Context(), network); err != nil {
		httpapi.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if err := a.prefs.SaveNetwork(network.Name); err != nil {
		slog.Warn("failed to persist network preference", "error", err)
	}
	slog.Info("network selected", "network", network.Name, "rpc", network.RPCURL)
	httpapi.JSON(w, map[string]string{
		"status":  "connected",
		"network": network.Name,
	}, http.StatusOK)
}

// handleStatus - GET /api/v1/cluster/status
func (a *app) handleStatus(w http.ResponseWriter, r *http.Request) {
	conn := a.connection()
	if conn == nil {
		httpapi.JSON(w, map[string]string{"status": "disconnected"}, http.StatusOK)
		return
	}
	status := "ok"
	if err := conn.Health(r.Context()); err != nil {
		status = "unhealthy"
	}
	httpapi.JSON(w, map[string]string{
		"status":  status,
		"network": conn.Network().Name,
		"rpc":     conn.Network().RPCURL,
	}, http.StatusOK)
}

// SubmitRequest carries a wallet-signed transaction.
type SubmitRequest struct {
	SignedTransaction string `json:"signed_transaction"`
	Program           string `json:"program"`
}

// handleSubmit - POST /api/v1/tx/submit
func (a *app) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpapi.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	conn := a.connection()
	if conn == nil {
		httpapi.Error(w, "no Solana network selected", http.StatusServiceUnavailable)
		return
	}
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.SignedTransaction == "" {
		httpapi.Error(w, "signed_transaction is required", http.StatusBadRequest)
		return
	}
	sig, err := conn.SubmitSigned(r.Context(), req.SignedTransaction)
	if err != nil {
		if recErr := a.prefs.RecordActivity("", req.Program, "failed", err.Error()); recErr != nil {
			slog.Warn("failed to record activity", "error", recErr)
		}
		httpapi.ProgramError(w, err, nil)
		return
	}
	if err := a.prefs.RecordActivity(sig.String(), req.Program, "pending", ""); err != nil {
		slog.Warn("failed to record activity", "error", err)
	}
	httpapi.JSON(w, map[string]string{
		"signature":    sig.String(),
		"status":       "pending",
		"explorer_url": conn.Network().ExplorerTxURL(sig.String()),
	}, http.StatusOK)
}

// handleTxStatus - GET /api/v1/tx/status?signature=xxx
func (a *app) handleTxStatus(w http.ResponseWriter, r *http.Request) {
	conn := a.connection()
	if conn == nil {
		httpapi.Error(w, "no Solana network selected", http.StatusServiceUnavailable)
		return
	}
	signature := r.URL.Query().Get("signature")
	if signature == "" {
		httpapi.Error(w, "signature parameter required", http.StatusBadRequest)
		return
	}
	status, err := conn.TransactionStatus(r.Context(), signature)
	if err != nil {
		httpapi.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	httpapi.JSON(w, map[string]string{
		"signature":    signature,
		"status":       string(status),
		"explorer_url": conn.Network().ExplorerTxURL(signature),
	}, http.StatusOK)
}

// handleSnapshot - GET /api/v1/state
func (a *app) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	httpapi.JSON(w, a.store.Snapshot(), http.StatusOK)
}

// handleRefresh - POST /api/v1/state/refresh?owner=xxx&nft=yyy
//
// Re-fetches everything the dashboard renders into the shared store. Each
// fetch failure is reported but does not block the others, so one dead
// account never leaves the whole page empty.
func (a *app) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpapi.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.mu.Lock()
	faucetClient, collectionClient, vaultClient := a.faucet, a.collection, a.vault
	a.mu.Unlock()
	if faucetClient == nil {
		httpapi.Error(w, "no Solana network selected", http.StatusServiceUnavailable)
		return
	}

	ctx := r.Context()
	var failures []string
	fail := func(what string, err error) {
		slog.Warn("refresh fetch failed", "what", what, "error", err)
		failures = append(failures, what+": "+err.Error())
	}

	var owner solana.PublicKey
	if ownerParam := r.URL.Query().Get("owner"); ownerParam != "" {
		parsed, err := solana.PublicKeyFromBase58(ownerParam)
		if err != nil {
			httpapi.Error(w, "Invalid owner address", http.StatusBadRequest)
			return
		}
		owner = parsed
		if balance, err := faucetClient.Balance(ctx, owner); err != nil {
			fail("balance", err)
		} else {
			a.store.SetBalance(balance)
		}
	}

	if holders, err := faucetClient.Holders(ctx); err != nil {
		fail("holders", err)
	} else {
		a.store.SetHolders(holders)
	}
	if record, err := collectionClient.Info(ctx); err != nil {
		fail("collection", err)
	} else {
		a.store.SetCollection(record)
	}
	if state, err := vaultClient.State(ctx); err != nil {
		fail("vault", err)
	} else {
		a.store.SetVault(state)
	}

	if nftParam := r.URL.Query().Get("nft"); nftParam != "" && !owner.IsZero() {
		nftMint, err := solana.PublicKeyFromBase58(nftParam)
		if err != nil {
			httpapi.Error(w, "Invalid nft address", http.StatusBadRequest)
			return
		}
		if position, err := vaultClient.Position(ctx, owner, nftMint); err != nil {
			fail("position", err)
		} else {
			a.store.SetPosition(position)
		}
	}

	httpapi.JSON(w, struct {
		State  appstate.Snapshot `json:"state"`
		Errors []string          `json:"errors,omitempty"`
	}{a.store.Snapshot(), failures}, http.StatusOK)
}

// handleActivity - GET /api/v1/activity
func (a *app) handleActivity(w http.ResponseWriter, r *http.Request) {
	entries, err := a.prefs.RecentActivity(50)
	if err != nil {
		httpapi.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	httpapi.JSON(w, entries, http.StatusOK)
}

func (a *app) faucetClient() *faucet.Client {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.faucet
}

func (a *app) collectionClient() *collection.Client {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.collection
}

func (a *app) vaultClient() *vault.Client {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.vault
}
