package vault

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// parseState decodes the vault account. The fields after the 8-byte
// discriminator are borsh encoded.
func parseState(data []byte) (*State, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("invalid vault data length: %d", len(data))
	}
	var state State
	if err := bin.NewBorshDecoder(data[8:]).Decode(&state); err != nil {
		return nil, fmt.Errorf("failed to decode vault state: %w", err)
	}
	return &state, nil
}

// parsePosition decodes a position account.
func parsePosition(data []byte) (*Position, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("invalid position data length: %d", len(data))
	}
	var pos Position
	if err := bin.NewBorshDecoder(data[8:]).Decode(&pos); err != nil {
		return nil, fmt.Errorf("failed to decode position: %w", err)
	}
	return &pos, nil
}
