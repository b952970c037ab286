package faucet

import (
	"github.com/gagliardetto/solana-go"
)

// MintAuthorityRecord mirrors the program's mint authority account.
// Layout: discriminator(8) + mint(32) + bump(1).
type MintAuthorityRecord struct {
	Mint solana.PublicKey `json:"mint"`
	Bump uint8            `json:"bump"`
}

// BalanceInfo is one wallet's balance of the faucet mint.
type BalanceInfo struct {
	Owner        solana.PublicKey `json:"owner"`
	TokenAccount solana.PublicKey `json:"token_account"`
	Amount       uint64           `json:"amount"`
	Decimals     uint8            `json:"decimals"`
}

// MintRequest asks the faucet to mint into a wallet.
type MintRequest struct {
	Owner  string `json:"owner"`
	Amount uint64 `json:"amount"`
}

// MintResponse carries the unsigned transaction back to the wallet.
type MintResponse struct {
	UnsignedTransaction string `json:"unsigned_transaction"`
	RecentBlockhash     string `json:"recent_blockhash"`
	TokenAccount        string `json:"token_account"`
	Message             string `json:"message"`
}
