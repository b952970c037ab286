package faucet

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soldash/httpapi"
)

func TestHandleMint(t *testing.T) {
	client := newTestClient(t, &fakeEndpoint{})
	owner := solana.NewWallet().PublicKey()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/faucet/mint",
		strings.NewReader(`{"owner":"`+owner.String()+`","amount":1000}`))
	rec := httptest.NewRecorder()
	client.HandleMint(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp MintResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.UnsignedTransaction)
	assert.NotEmpty(t, resp.TokenAccount)
}

func TestHandleMintValidation(t *testing.T) {
	client := newTestClient(t, &fakeEndpoint{})
	cases := []struct {
		name string
		body string
	}{
		{"bad json", "{"},
		{"missing owner", `{"amount":1000}`},
		{"zero amount", `{"owner":"` + solana.NewWallet().PublicKey().String() + `"}`},
		{"bad address", `{"owner":"not-a-key","amount":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/faucet/mint", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			client.HandleMint(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleMintRejectsGet(t *testing.T) {
	client := newTestClient(t, &fakeEndpoint{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/faucet/mint", nil)
	rec := httptest.NewRecorder()
	client.HandleMint(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleBalance(t *testing.T) {
	client := newTestClient(t, &fakeEndpoint{balance: 42, decimals: 6})
	owner := solana.NewWallet().PublicKey()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/faucet/balance?owner="+owner.String(), nil)
	rec := httptest.NewRecorder()
	client.HandleBalance(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var info BalanceInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, uint64(42), info.Amount)
}

func TestHandleBalanceRequiresOwner(t *testing.T) {
	client := newTestClient(t, &fakeEndpoint{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/faucet/balance", nil)
	rec := httptest.NewRecorder()
	client.HandleBalance(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleBalanceRemoteFailure(t *testing.T) {
	client := newTestClient(t, &fakeEndpoint{balanceErr: errors.New(`{"Custom":6002}`)})
	owner := solana.NewWallet().PublicKey()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/faucet/balance?owner="+owner.String(), nil)
	rec := httptest.NewRecorder()
	client.HandleBalance(rec, req)

	// The failure surfaces as a notification payload, not a hang or a panic.
	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp httpapi.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, ProgramErrors[6002], resp.Message)
}

func TestHandleHolders(t *testing.T) {
	client := newTestClient(t, &fakeEndpoint{holdersErr: errors.New("rpc down")})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/faucet/holders", nil)
	rec := httptest.NewRecorder()
	client.HandleHolders(rec, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
