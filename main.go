package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"

	"soldash/appstate"
	"soldash/cluster"
	"soldash/collection"
	"soldash/config"
	"soldash/faucet"
	"soldash/metrics"
	"soldash/vault"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}),
	)
	slog.SetDefault(logger)

	store := appstate.NewStore()
	prefs, err := appstate.OpenPrefs(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open preference db", "error", err)
		os.Exit(1)
	}

	a := newApp(cfg, store, prefs)

	// Startup network: explicit config wins, then the persisted last-used
	// name, then the default.
	networkName := cfg.Network
	if networkName == "" {
		last, err := prefs.LastNetwork()
		if err != nil {
			slog.Warn("failed to read persisted network", "error", err)
		}
		networkName = last
	}
	if networkName == "" {
		networkName = cluster.DefaultNetwork.Name
	}
	network := cluster.Resolve(networkName)
	if err := a.connect(context.Background(), network); err != nil {
		slog.Error("failed to connect", "network", network.Name, "error", err)
		os.Exit(1)
	}
	slog.Info("connected", "network", network.Name, "rpc", network.RPCURL)

	// Cluster and transaction routes
	http.HandleFunc("/api/v1/cluster/select", a.handleSelect)
	http.HandleFunc("/api/v1/cluster/status", a.handleStatus)
	http.HandleFunc("/api/v1/tx/submit", a.handleSubmit)
	http.HandleFunc("/api/v1/tx/status", a.handleTxStatus)
	http.HandleFunc("/api/v1/state", a.handleSnapshot)
	http.HandleFunc("/api/v1/state/refresh", a.handleRefresh)
	http.HandleFunc("/api/v1/activity", a.handleActivity)

	// Faucet routes
	http.HandleFunc("/api/v1/faucet/mint", guarded(a.faucetClient, func(c *faucet.Client) http.HandlerFunc { return c.HandleMint }))
	http.HandleFunc("/api/v1/faucet/balance", guarded(a.faucetClient, func(c *faucet.Client) http.HandlerFunc { return c.HandleBalance }))
	http.HandleFunc("/api/v1/faucet/holders", guarded(a.faucetClient, func(c *faucet.Client) http.HandlerFunc { return c.HandleHolders }))
	http.HandleFunc("/api/v1/faucet/authority", guarded(a.faucetClient, func(c *faucet.Client) http.HandlerFunc { return c.HandleAuthority }))

	// Collection routes
	http.HandleFunc("/api/v1/collection/init", guarded(a.collectionClient, func(c *collection.Client) http.HandlerFunc { return c.HandleInit }))
	http.HandleFunc("/api/v1/collection/mint", guarded(a.collectionClient, func(c *collection.Client) http.HandlerFunc { return c.HandleMint }))
	http.HandleFunc("/api/v1/collection/search", guarded(a.collectionClient, func(c *collection.Client) http.HandlerFunc { return c.HandleSearch }))
	http.HandleFunc("/api/v1/collection/info", guarded(a.collectionClient, func(c *collection.Client) http.HandlerFunc { return c.HandleInfo }))

	// Vault routes
	http.HandleFunc("/api/v1/vault/state", guarded(a.vaultClient, func(c *vault.Client) http.HandlerFunc { return c.HandleState }))
	http.HandleFunc("/api/v1/vault/position", guarded(a.vaultClient, func(c *vault.Client) http.HandlerFunc { return c.HandlePosition }))
	http.HandleFunc("/api/v1/vault/deposit", guarded(a.vaultClient, func(c *vault.Client) http.HandlerFunc { return c.HandleDeposit }))
	http.HandleFunc("/api/v1/vault/withdraw", guarded(a.vaultClient, func(c *vault.Client) http.HandlerFunc { return c.HandleWithdraw }))
	http.HandleFunc("/api/v1/vault/transfer", guarded(a.vaultClient, func(c *vault.Client) http.HandlerFunc { return c.HandleTransfer }))
	http.HandleFunc("/api/v1/vault/txstate", guarded(a.vaultClient, func(c *vault.Client) http.HandlerFunc { return c.HandleTxState }))

	// Health and metrics
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	http.Handle("/metrics", metrics.Handler())

	slog.Info("server starting", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
