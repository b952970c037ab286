package vault

import (
	"encoding/json"
	"net/http"

	"github.com/gagliardetto/solana-go"

	"soldash/httpapi"
)

// HandleState - GET /api/v1/vault/state
func (c *Client) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpapi.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	state, err := c.State(r.Context())
	if err != nil {
		httpapi.ProgramError(w, err, ProgramErrors)
		return
	}
	httpapi.JSON(w, state, http.StatusOK)
}

// HandlePosition - GET /api/v1/vault/position?owner=xxx&nft=yyy
func (c *Client) HandlePosition(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpapi.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	owner, err := solana.PublicKeyFromBase58(r.URL.Query().Get("owner"))
	if err != nil {
		httpapi.Error(w, "Invalid owner address", http.StatusBadRequest)
		return
	}
	nftMint, err := solana.PublicKeyFromBase58(r.URL.Query().Get("nft"))
	if err != nil {
		httpapi.Error(w, "Invalid nft address", http.StatusBadRequest)
		return
	}
	position, err := c.Position(r.Context(), owner, nftMint)
	if err != nil {
		httpapi.ProgramError(w, err, ProgramErrors)
		return
	}
	httpapi.JSON(w, position, http.StatusOK)
}

// HandleDeposit - POST /api/v1/vault/deposit
func (c *Client) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpapi.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Amount == 0 {
		httpapi.Error(w, "amount must be greater than zero", http.StatusBadRequest)
		return
	}
	owner, err := solana.PublicKeyFromBase58(req.Owner)
	if err != nil {
		httpapi.Error(w, "Invalid owner address", http.StatusBadRequest)
		return
	}
	nftMint, err := solana.PublicKeyFromBase58(req.NFTMint)
	if err != nil {
		httpapi.Error(w, "Invalid nft_mint address", http.StatusBadRequest)
		return
	}
	resp, err := c.DepositUnsigned(r.Context(), owner, nftMint, req.Amount)
	if err != nil {
		httpapi.ProgramError(w, err, ProgramErrors)
		return
	}
	httpapi.JSON(w, resp, http.StatusOK)
}

// HandleWithdraw - POST /api/v1/vault/withdraw
func (c *Client) HandleWithdraw(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpapi.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Shares == 0 {
		httpapi.Error(w, "shares must be greater than zero", http.StatusBadRequest)
		return
	}
	owner, err := solana.PublicKeyFromBase58(req.Owner)
	if err != nil {
		httpapi.Error(w, "Invalid owner address", http.StatusBadRequest)
		return
	}
	nftMint, err := solana.PublicKeyFromBase58(req.NFTMint)
	if err != nil {
		httpapi.Error(w, "Invalid nft_mint address", http.StatusBadRequest)
		return
	}
	resp, err := c.WithdrawUnsigned(r.Context(), owner, nftMint, req.Shares)
	if err != nil {
		httpapi.ProgramError(w, err, ProgramErrors)
		return
	}
	httpapi.JSON(w, resp, http.StatusOK)
}

// HandleTransfer - POST /api/v1/vault/transfer
func (c *Client) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpapi.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	owner, err := solana.PublicKeyFromBase58(req.Owner)
	if err != nil {
		httpapi.Error(w, "Invalid owner address", http.StatusBadRequest)
		return
	}
	newOwner, err := solana.PublicKeyFromBase58(req.NewOwner)
	if err != nil {
		httpapi.Error(w, "Invalid new_owner address", http.StatusBadRequest)
		return
	}
	nftMint, err := solana.PublicKeyFromBase58(req.NFTMint)
	if err != nil {
		httpapi.Error(w, "Invalid nft_mint address", http.StatusBadRequest)
		return
	}
	resp, err := c.TransferUnsigned(r.Context(), owner, newOwner, nftMint)
	if err != nil {
		httpapi.ProgramError(w, err, ProgramErrors)
		return
	}
	httpapi.JSON(w, resp, http.StatusOK)
}

// HandleTxState - GET /api/v1/vault/txstate
func (c *Client) HandleTxState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpapi.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	httpapi.JSON(w, c.tracker.Snapshot(), http.StatusOK)
}
