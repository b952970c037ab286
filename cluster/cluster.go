// Package cluster resolves wallet-reported chain identifiers to Solana RPC
// endpoints and owns the connection used by the program clients.
//
// The resolver is a static lookup table. Unknown chain identifiers fall back
// to the default network instead of failing; identifiers that do not name the
// Solana platform at all are the caller's signal to drop every program client
// and cached account state.
package cluster

import (
	"strings"

	"github.com/gagliardetto/solana-go/rpc"
)

// Network describes one RPC endpoint entry.
type Network struct {
	Name     string
	RPCURL   string
	WSURL    string
	Explorer string // explorer cluster query suffix, empty for mainnet
}

// Known networks.
var (
	Mainnet = Network{
		Name:   "mainnet",
		RPCURL: rpc.MainNetBeta_RPC,
		WSURL:  rpc.MainNetBeta_WS,
	}
	Devnet = Network{
		Name:     "devnet",
		RPCURL:   rpc.DevNet_RPC,
		WSURL:    rpc.DevNet_WS,
		Explorer: "?cluster=devnet",
	}
	Testnet = Network{
		Name:     "testnet",
		RPCURL:   rpc.TestNet_RPC,
		WSURL:    rpc.TestNet_WS,
		Explorer: "?cluster=testnet",
	}
	Localnet = Network{
		Name:     "localnet",
		RPCURL:   "http://localhost:8899",
		WSURL:    "ws://localhost:8900",
		Explorer: "?cluster=custom&customUrl=http%3A%2F%2Flocalhost%3A8899",
	}
)

// DefaultNetwork is used whenever a chain identifier cannot be resolved.
var DefaultNetwork = Devnet

var networks = map[string]Network{
	"mainnet":      Mainnet,
	"mainnet-beta": Mainnet,
	"devnet":       Devnet,
	"testnet":      Testnet,
	"localnet":     Localnet,
	"localhost":    Localnet,
}

// IsSolanaChain reports whether a wallet-reported chain identifier names the
// Solana platform. Identifiers like "eip155:1" return false; callers must
// treat that as "clear all program state", not as an error.
func IsSolanaChain(chainID string) bool {
	return strings.Contains(strings.ToLower(chainID), "solana")
}

// Resolve maps a wallet-reported chain identifier to a network entry.
// Accepts both bare names ("devnet") and namespaced ids ("solana:devnet").
// Unknown identifiers resolve to DefaultNetwork.
func Resolve(chainID string) Network {
	name := strings.ToLower(strings.TrimSpace(chainID))
	name = strings.TrimPrefix(name, "solana:")
	if n, ok := networks[name]; ok {
		return n
	}
	return DefaultNetwork
}

// ExplorerTxURL builds an explorer link for a transaction signature.
func (n Network) ExplorerTxURL(signature string) string {
	return "https://explorer.solana.com/tx/" + signature + n.Explorer
}

// ExplorerAddressURL builds an explorer link for an account address.
func (n Network) ExplorerAddressURL(address string) string {
	return "https://explorer.solana.com/address/" + address + n.Explorer
}
