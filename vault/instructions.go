package vault

import (
	"github.com/gagliardetto/solana-go"

	"soldash/anchor"
)

// BuildDepositInstruction deposits amount base units of the asset against an
// NFT. Account order must match the program's Deposit struct:
// 1. vault, 2. position, 3. owner_token_account, 4. vault_token_account,
// 5. nft_mint, 6. owner, 7. token_program, 8. system_program
func (c *Client) BuildDepositInstruction(owner, nftMint solana.PublicKey, amount uint64) (solana.Instruction, error) {
	vaultPDA, _, err := c.DeriveVaultPDA()
	if err != nil {
		return nil, err
	}
	positionPDA, _, err := c.DerivePositionPDA(owner, nftMint)
	if err != nil {
		return nil, err
	}
	ownerToken, err := anchor.FindAssociatedTokenAddress(owner, c.assetMint)
	if err != nil {
		return nil, err
	}
	vaultToken, err := anchor.FindAssociatedTokenAddress(vaultPDA, c.assetMint)
	if err != nil {
		return nil, err
	}

	data := anchor.NewData("deposit").
		U64(amount).
		Build()

	accounts := []*solana.AccountMeta{
		solana.Meta(vaultPDA).WRITE(),
		solana.Meta(positionPDA).WRITE(),
		solana.Meta(ownerToken).WRITE(),
		solana.Meta(vaultToken).WRITE(),
		solana.Meta(nftMint),
		solana.Meta(owner).SIGNER().WRITE(),
		solana.Meta(anchor.TokenProgramID),
		solana.Meta(anchor.SystemProgramID),
	}

	return solana.NewInstruction(c.programID, accounts, data), nil
}

// BuildWithdrawInstruction redeems shares back into the asset. Same account
// order as deposit.
func (c *Client) BuildWithdrawInstruction(owner, nftMint solana.PublicKey, shares uint64) (solana.Instruction, error) {
	vaultPDA, _, err := c.DeriveVaultPDA()
	if err != nil {
		return nil, err
	}
	positionPDA, _, err := c.DerivePositionPDA(owner, nftMint)
	if err != nil {
		return nil, err
	}
	ownerToken, err := anchor.FindAssociatedTokenAddress(owner, c.assetMint)
	if err != nil {
		return nil, err
	}
	vaultToken, err := anchor.FindAssociatedTokenAddress(vaultPDA, c.assetMint)
	if err != nil {
		return nil, err
	}

	data := anchor.NewData("withdraw").
		U64(shares).
		Build()

	accounts := []*solana.AccountMeta{
		solana.Meta(vaultPDA).WRITE(),
		solana.Meta(positionPDA).WRITE(),
		solana.Meta(ownerToken).WRITE(),
		solana.Meta(vaultToken).WRITE(),
		solana.Meta(nftMint),
		solana.Meta(owner).SIGNER().WRITE(),
		solana.Meta(anchor.TokenProgramID),
		solana.Meta(anchor.SystemProgramID),
	}

	return solana.NewInstruction(c.programID, accounts, data), nil
}

// BuildTransferInstruction hands a whole position to a new owner. The
// program closes the old position account and creates the new one.
// Account order must match the program's TransferPosition struct:
// 1. vault, 2. position, 3. new_position, 4. nft_mint, 5. owner,
// 6. new_owner, 7. system_program
func (c *Client) BuildTransferInstruction(owner, newOwner, nftMint solana.PublicKey) (solana.Instruction, error) {
	vaultPDA, _, err := c.DeriveVaultPDA()
	if err != nil {
		return nil, err
	}
	positionPDA, _, err := c.DerivePositionPDA(owner, nftMint)
	if err != nil {
		return nil, err
	}
	newPositionPDA, _, err := c.DerivePositionPDA(newOwner, nftMint)
	if err != nil {
		return nil, err
	}

	data := anchor.NewData("transfer_position").
		PublicKey(newOwner).
		Build()

	accounts := []*solana.AccountMeta{
		solana.Meta(vaultPDA).WRITE(),
		solana.Meta(positionPDA).WRITE(),
		solana.Meta(newPositionPDA).WRITE(),
		solana.Meta(nftMint),
		solana.Meta(owner).SIGNER().WRITE(),
		solana.Meta(newOwner),
		solana.Meta(anchor.SystemProgramID),
	}

	return solana.NewInstruction(c.programID, accounts, data), nil
}
