package vault

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// State mirrors the vault account: aggregate accounting for one lending pool
// keyed by asset mint. All share-price math happens in the program; these are
// raw fields.
type State struct {
	AssetMint        solana.PublicKey `json:"asset_mint"`
	TotalShares      uint64           `json:"total_shares"`
	TotalBorrowed    uint64           `json:"total_borrowed"`
	ReserveFactorBps uint16           `json:"reserve_factor_bps"`
	BorrowIndex      bin.Uint128      `json:"borrow_index"`
	Paused           bool             `json:"paused"`
}

// Position mirrors a user position account: per-(owner, NFT) share balance.
// Created on first deposit; conceptually gone once shares reach zero.
type Position struct {
	Owner        solana.PublicKey `json:"owner"`
	NFTMint      solana.PublicKey `json:"nft_mint"`
	Shares       uint64           `json:"shares"`
	DepositValue uint64           `json:"deposit_value"`
}

// DepositRequest deposits collateral against an NFT.
type DepositRequest struct {
	Owner   string `json:"owner"`
	NFTMint string `json:"nft_mint"`
	Amount  uint64 `json:"amount"`
}

// WithdrawRequest redeems shares.
type WithdrawRequest struct {
	Owner   string `json:"owner"`
	NFTMint string `json:"nft_mint"`
	Shares  uint64 `json:"shares"`
}

// TransferRequest moves a position to a new owner.
type TransferRequest struct {
	Owner    string `json:"owner"`
	NewOwner string `json:"new_owner"`
	NFTMint  string `json:"nft_mint"`
}

// UnsignedResponse carries an unsigned transaction back to the wallet.
type UnsignedResponse struct {
	UnsignedTransaction string `json:"unsigned_transaction"`
	RecentBlockhash     string `json:"recent_blockhash"`
	Message             string `json:"message"`
}
