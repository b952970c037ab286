package faucet

import (
	"encoding/json"
	"net/http"

	"github.com/gagliardetto/solana-go"

	"soldash/httpapi"
)

// HandleMint - POST /api/v1/faucet/mint
func (c *Client) HandleMint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpapi.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req MintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Owner == "" || req.Amount == 0 {
		httpapi.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}
	owner, err := solana.PublicKeyFromBase58(req.Owner)
	if err != nil {
		httpapi.Error(w, "Invalid owner address", http.StatusBadRequest)
		return
	}
	resp, err := c.MintUnsigned(r.Context(), owner, req.Amount)
	if err != nil {
		httpapi.ProgramError(w, err, ProgramErrors)
		return
	}
	httpapi.JSON(w, resp, http.StatusOK)
}

// HandleBalance - GET /api/v1/faucet/balance?owner=xxx
func (c *Client) HandleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpapi.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ownerParam := r.URL.Query().Get("owner")
	if ownerParam == "" {
		httpapi.Error(w, "owner parameter required", http.StatusBadRequest)
		return
	}
	owner, err := solana.PublicKeyFromBase58(ownerParam)
	if err != nil {
		httpapi.Error(w, "Invalid owner address", http.StatusBadRequest)
		return
	}
	balance, err := c.Balance(r.Context(), owner)
	if err != nil {
		httpapi.ProgramError(w, err, ProgramErrors)
		return
	}
	httpapi.JSON(w, balance, http.StatusOK)
}

// HandleHolders - GET /api/v1/faucet/holders
func (c *Client) HandleHolders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpapi.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	holders, err := c.Holders(r.Context())
	if err != nil {
		httpapi.ProgramError(w, err, ProgramErrors)
		return
	}
	httpapi.JSON(w, holders, http.StatusOK)
}

// HandleAuthority - GET /api/v1/faucet/authority
func (c *Client) HandleAuthority(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpapi.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	record, err := c.MintAuthority(r.Context())
	if err != nil {
		httpapi.ProgramError(w, err, ProgramErrors)
		return
	}
	httpapi.JSON(w, record, http.StatusOK)
}
