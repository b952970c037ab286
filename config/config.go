// Package config loads service configuration: defaults, then an optional
// YAML file, then environment overrides with the SOLDASH_ prefix.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	ListenAddr          string `yaml:"listenAddr" envconfig:"LISTEN_ADDR"`
	Network             string `yaml:"network" envconfig:"NETWORK"`
	RPCURL              string `yaml:"rpcUrl" envconfig:"RPC_URL"`
	WSURL               string `yaml:"wsUrl" envconfig:"WS_URL"`
	DBPath              string `yaml:"dbPath" envconfig:"DB_PATH"`
	FaucetMint          string `yaml:"faucetMint" envconfig:"FAUCET_MINT"`
	VaultAssetMint      string `yaml:"vaultAssetMint" envconfig:"VAULT_ASSET_MINT"`
	CollectionAuthority string `yaml:"collectionAuthority" envconfig:"COLLECTION_AUTHORITY"`
	Debug               bool   `yaml:"debug" envconfig:"DEBUG"`
}

var defaultConfig = Config{
	ListenAddr: ":8080",
	Network:    "",
	DBPath:     "soldash.db",
}

// Load builds the configuration. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	cfg := defaultConfig
	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, &cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	if err := envconfig.Process("soldash", &cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	return &cfg, nil
}
