package collection

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gagliardetto/solana-go"

	"soldash/httpapi"
)

// HandleInit - POST /api/v1/collection/init
func (c *Client) HandleInit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpapi.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req InitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Symbol == "" {
		httpapi.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}
	resp, err := c.InitializeUnsigned(r.Context(), req.Name, req.Symbol, req.URI)
	if err != nil {
		httpapi.ProgramError(w, err, ProgramErrors)
		return
	}
	httpapi.JSON(w, resp, http.StatusOK)
}

// HandleMint - POST /api/v1/collection/mint
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
	if req.Payer == "" {
		httpapi.Error(w, "payer is required", http.StatusBadRequest)
		return
	}
	payer, err := solana.PublicKeyFromBase58(req.Payer)
	if err != nil {
		httpapi.Error(w, "Invalid payer address", http.StatusBadRequest)
		return
	}
	resp, err := c.MintOneUnsigned(r.Context(), payer)
	if err != nil {
		httpapi.ProgramError(w, err, ProgramErrors)
		return
	}
	httpapi.JSON(w, resp, http.StatusOK)
}

// HandleSearch - GET /api/v1/collection/search?id=a-b-c-d
func (c *Client) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpapi.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	idParam := r.URL.Query().Get("id")
	if idParam == "" {
		httpapi.Error(w, "id parameter required", http.StatusBadRequest)
		return
	}
	uid, err := ParseUniqueID(idParam)
	if err != nil {
		httpapi.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	entry, err := c.Find(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpapi.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		httpapi.ProgramError(w, err, ProgramErrors)
		return
	}
	httpapi.JSON(w, entry, http.StatusOK)
}

// HandleInfo - GET /api/v1/collection/info
func (c *Client) HandleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpapi.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	record, err := c.Info(r.Context())
	if err != nil {
		httpapi.ProgramError(w, err, ProgramErrors)
		return
	}
	httpapi.JSON(w, record, http.StatusOK)
}
