package faucet

import (
	"github.com/gagliardetto/solana-go"

	"soldash/anchor"
)

// BuildInitializeInstruction creates the mint authority record. Run once per
// mint by whoever deploys the faucet.
func (c *Client) BuildInitializeInstruction(payer solana.PublicKey) (solana.Instruction, error) {
	mintAuthorityPDA, _, err := c.DeriveMintAuthorityPDA()
	if err != nil {
		return nil, err
	}

	data := anchor.NewData("initialize").Build()

	accounts := []*solana.AccountMeta{
		solana.Meta(mintAuthorityPDA).WRITE(),
		solana.Meta(c.mint).WRITE(),
		solana.Meta(payer).SIGNER().WRITE(),
		solana.Meta(anchor.TokenProgramID),
		solana.Meta(anchor.SystemProgramID),
	}

	return solana.NewInstruction(c.programID, accounts, data), nil
}

// BuildMintInstruction mints amount base units into owner's associated token
// account. Account order must match the program's MintTokens struct:
// 1. mint_authority, 2. mint, 3. destination, 4. payer,
// 5. token_program, 6. associated_token_program, 7. system_program
func (c *Client) BuildMintInstruction(owner solana.PublicKey, amount uint64) (solana.Instruction, error) {
	mintAuthorityPDA, _, err := c.DeriveMintAuthorityPDA()
	if err != nil {
		return nil, err
	}
	destination, err := c.TokenAddress(owner)
	if err != nil {
		return nil, err
	}

	data := anchor.NewData("mint_tokens").
		U64(amount).
		Build()

	accounts := []*solana.AccountMeta{
		solana.Meta(mintAuthorityPDA).WRITE(),
		solana.Meta(c.mint).WRITE(),
		solana.Meta(destination).WRITE(),
		solana.Meta(owner).SIGNER().WRITE(),
		solana.Meta(anchor.TokenProgramID),
		solana.Meta(anchor.AssociatedTokenProgID),
		solana.Meta(anchor.SystemProgramID),
	}

	return solana.NewInstruction(c.programID, accounts, data), nil
}
