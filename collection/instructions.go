package collection

import (
	"github.com/gagliardetto/solana-go"

	"soldash/anchor"
)

// BuildInitializeInstruction creates the collection record. Run once by the
// collection authority.
func (c *Client) BuildInitializeInstruction(name, symbol, uri string) (solana.Instruction, error) {
	collectionPDA, _, err := c.DeriveCollectionPDA()
	if err != nil {
		return nil, err
	}

	data := anchor.NewData("initialize_collection").
		String(name).
		String(symbol).
		String(uri).
		Build()

	accounts := []*solana.AccountMeta{
		solana.Meta(collectionPDA).WRITE(),
		solana.Meta(c.authority).SIGNER().WRITE(),
		solana.Meta(anchor.SystemProgramID),
	}

	return solana.NewInstruction(c.programID, accounts, data), nil
}

// BuildMintInstruction mints the NFT for the given sequential token id with
// a client-drawn unique id. The program rejects a duplicate id when the
// id-index account already exists.
//
// Account order must match the program's MintUnique struct:
// 1. collection, 2. entry, 3. id_index, 4. nft_mint, 5. destination,
// 6. payer, 7. token_program, 8. associated_token_program, 9. system_program
func (c *Client) BuildMintInstruction(payer solana.PublicKey, tokenID uint64, uid UniqueID) (solana.Instruction, error) {
	collectionPDA, _, err := c.DeriveCollectionPDA()
	if err != nil {
		return nil, err
	}
	entryPDA, _, err := c.DeriveEntryPDA(tokenID)
	if err != nil {
		return nil, err
	}
	indexPDA, _, err := c.DeriveUniqueIDPDA(uid)
	if err != nil {
		return nil, err
	}
	nftMint, _, err := c.DeriveNFTMintPDA(tokenID)
	if err != nil {
		return nil, err
	}
	destination, err := anchor.FindAssociatedTokenAddress(payer, nftMint)
	if err != nil {
		return nil, err
	}

	data := anchor.NewData("mint_unique").
		Bytes(uid.Bytes()).
		Build()

	accounts := []*solana.AccountMeta{
		solana.Meta(collectionPDA).WRITE(),
		solana.Meta(entryPDA).WRITE(),
		solana.Meta(indexPDA).WRITE(),
		solana.Meta(nftMint).WRITE(),
		solana.Meta(destination).WRITE(),
		solana.Meta(payer).SIGNER().WRITE(),
		solana.Meta(anchor.TokenProgramID),
		solana.Meta(anchor.AssociatedTokenProgID),
		solana.Meta(anchor.SystemProgramID),
	}

	return solana.NewInstruction(c.programID, accounts, data), nil
}
