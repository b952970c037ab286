package cluster

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"

	"soldash/metrics"
)

// ErrAccountNotFound is returned when an account does not exist on chain.
var ErrAccountNotFound = errors.New("account not found")

// TokenHolder is one balance-holding account for a mint.
type TokenHolder struct {
	Address  solana.PublicKey `json:"address"`
	Amount   uint64           `json:"amount"`
	Decimals uint8            `json:"decimals"`
}

// Endpoint is the RPC surface the program clients consume. *Connection is
// the production implementation; tests substitute fakes.
type Endpoint interface {
	AccountData(ctx context.Context, account solana.PublicKey) ([]byte, error)
	LatestBlockhash(ctx context.Context) (solana.Hash, error)
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	TokenBalance(ctx context.Context, account solana.PublicKey) (uint64, uint8, error)
	LargestTokenAccounts(ctx context.Context, mint solana.PublicKey) ([]TokenHolder, error)
}

// Connection wraps the Solana RPC and websocket clients for one network.
type Connection struct {
	rpc     *rpc.Client
	ws      *ws.Client
	network Network
}

// Connect opens a connection to the given network. The websocket side is
// best effort: if the dial fails the connection still works, confirmation
// just falls back to polling.
func Connect(ctx context.Context, network Network) (*Connection, error) {
	if network.RPCURL == "" {
		return nil, fmt.Errorf("network %q has no RPC URL", network.Name)
	}
	conn := &Connection{
		rpc:     rpc.New(network.RPCURL),
		network: network,
	}
	if network.WSURL != "" {
		wsClient, err := ws.Connect(ctx, network.WSURL)
		if err != nil {
			slog.Warn("websocket connect failed, will poll for confirmations",
				"network", network.Name, "error", err)
		} else {
			conn.ws = wsClient
		}
	}
	return conn, nil
}

// Network returns the network this connection was opened against.
func (c *Connection) Network() Network {
	return c.network
}

// Health pings the RPC node.
func (c *Connection) Health(ctx context.Context) error {
	metrics.RPCRequests.WithLabelValues("getHealth").Inc()
	_, err := c.rpc.GetHealth(ctx)
	return err
}

// Close releases the websocket client, if any.
func (c *Connection) Close() {
	if c.ws != nil {
		c.ws.Close()
	}
}

// AccountData fetches the raw data of an account. A missing account is
// reported as ErrAccountNotFound.
func (c *Connection) AccountData(ctx context.Context, account solana.PublicKey) ([]byte, error) {
	metrics.RPCRequests.WithLabelValues("getAccountInfo").Inc()
	out, err := c.rpc.GetAccountInfo(ctx, account)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}
	if out == nil || out.Value == nil {
		return nil, ErrAccountNotFound
	}
	return out.Value.Data.GetBinary(), nil
}

// LatestBlockhash fetches a recent blockhash for transaction building.
func (c *Connection) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	metrics.RPCRequests.WithLabelValues("getLatestBlockhash").Inc()
	recent, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get blockhash: %w", err)
	}
	return recent.Value.Blockhash, nil
}

// SendTransaction submits a signed transaction.
func (c *Connection) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	metrics.RPCRequests.WithLabelValues("sendTransaction").Inc()
	sig, err := c.rpc.SendTransaction(ctx, tx)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	return sig, nil
}

// TokenBalance fetches the balance of a token account. Errors for missing or
// wrongly-owned accounts are passed through untouched; the faucet client
// decides which of those mean "zero".
func (c *Connection) TokenBalance(ctx context.Context, account solana.PublicKey) (uint64, uint8, error) {
	metrics.RPCRequests.WithLabelValues("getTokenAccountBalance").Inc()
	out, err := c.rpc.GetTokenAccountBalance(ctx, account, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, 0, err
	}
	if out == nil || out.Value == nil {
		return 0, 0, ErrAccountNotFound
	}
	amount, err := strconv.ParseUint(out.Value.Amount, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse token amount %q: %w", out.Value.Amount, err)
	}
	return amount, out.Value.Decimals, nil
}

// LargestTokenAccounts enumerates the largest balance-holding accounts for a
// mint.
func (c *Connection) LargestTokenAccounts(ctx context.Context, mint solana.PublicKey) ([]TokenHolder, error) {
	metrics.RPCRequests.WithLabelValues("getTokenLargestAccounts").Inc()
	out, err := c.rpc.GetTokenLargestAccounts(ctx, mint, rpc.CommitmentConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to get token accounts: %w", err)
	}
	holders := make([]TokenHolder, 0, len(out.Value))
	for _, v := range out.Value {
		if v == nil {
			continue
		}
		amount, err := strconv.ParseUint(v.Amount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse holder amount %q: %w", v.Amount, err)
		}
		holders = append(holders, TokenHolder{
			Address:  v.Address,
			Amount:   amount,
			Decimals: v.Decimals,
		})
	}
	return holders, nil
}

// SubmitSigned decodes a base64 signed transaction from a wallet and sends it.
func (c *Connection) SubmitSigned(ctx context.Context, signedTxBase64 string) (solana.Signature, error) {
	txBytes, err := base64.StdEncoding.DecodeString(signedTxBase64)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to decode transaction: %w", err)
	}
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(txBytes))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to parse transaction: %w", err)
	}
	if len(tx.Signatures) == 0 {
		return solana.Signature{}, fmt.Errorf("transaction is not signed")
	}
	return c.SendTransaction(ctx, tx)
}

// EncodeUnsigned serializes an unsigned transaction to base64 for
// client-side signing.
func EncodeUnsigned(tx *solana.Transaction) (string, error) {
	txBytes, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("failed to serialize transaction: %w", err)
	}
	return base64.StdEncoding.EncodeToString(txBytes), nil
}

// SignatureStatus is the coarse transaction state reported to clients.
type SignatureStatus string

const (
	StatusPending   SignatureStatus = "pending"
	StatusConfirmed SignatureStatus = "confirmed"
	StatusFinalized SignatureStatus = "finalized"
	StatusFailed    SignatureStatus = "failed"
)

// TransactionStatus looks up the current status of a signature.
func (c *Connection) TransactionStatus(ctx context.Context, signature string) (SignatureStatus, error) {
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return "", fmt.Errorf("invalid signature: %w", err)
	}
	metrics.RPCRequests.WithLabelValues("getSignatureStatuses").Inc()
	out, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return "", fmt.Errorf("failed to get signature status: %w", err)
	}
	if out == nil || len(out.Value) == 0 || out.Value[0] == nil {
		return StatusPending, nil
	}
	st := out.Value[0]
	if st.Err != nil {
		return StatusFailed, nil
	}
	switch st.ConfirmationStatus {
	case rpc.ConfirmationStatusFinalized:
		return StatusFinalized, nil
	case rpc.ConfirmationStatusConfirmed:
		return StatusConfirmed, nil
	default:
		return StatusPending, nil
	}
}

// WaitForConfirmation polls signature status every two seconds until the
// transaction confirms, fails, or the timeout elapses.
func (c *Connection) WaitForConfirmation(ctx context.Context, signature string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		status, err := c.TransactionStatus(ctx, signature)
		if err == nil {
			switch status {
			case StatusConfirmed, StatusFinalized:
				return nil
			case StatusFailed:
				return fmt.Errorf("transaction %s failed", signature)
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return fmt.Errorf("timeout waiting for confirmation of %s", signature)
}
