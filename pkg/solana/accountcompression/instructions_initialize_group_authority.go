package account_compression

import (
	"bytes"
	"crypto/ed25519"

	"github.com/zkc-labs/light-nft-repro/pkg/solana"
)

var initializeGroupAuthorityInstructionDiscriminator = []byte{
	0x7b, 0xed, 0xa1, 0x50, 0xea, 0xd7, 0x43, 0xb7,
}

const (
	InitializeGroupAuthorityInstructionArgsSize = 32 // authority

	InitializeGroupAuthorityInstructionSize = (8 + // discriminator
		InitializeGroupAuthorityInstructionArgsSize) // args
)

type InitializeGroupAuthorityInstructionArgs struct {
	Authority ed25519.PublicKey
}

type InitializeGroupAuthorityInstructionAccounts struct {
	Payer          ed25519.PublicKey
	Seed           ed25519.PublicKey
	GroupAuthority ed25519.PublicKey
}

// NewInitializeGroupAuthorityInstruction creates a group authority account
// at the PDA derived from the seed. The seed account co-signs alongside the
// payer. Creating a group that already exists fails on chain with an
// account-in-use error, which callers treat as benign.
func NewInitializeGroupAuthorityInstruction(
	accounts *InitializeGroupAuthorityInstructionAccounts,
	args *InitializeGroupAuthorityInstructionArgs,
) solana.Instruction {
	var offset int

	data := make([]byte, InitializeGroupAuthorityInstructionSize)

	putDiscriminator(data, initializeGroupAuthorityInstructionDiscriminator, &offset)
	putKey(data, args.Authority, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.Payer, true),
		solana.NewReadonlyAccountMeta(accounts.Seed, true),
		solana.NewAccountMeta(accounts.GroupAuthority, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

func InitializeGroupAuthorityInstructionArgsFromBinary(data []byte) (*InitializeGroupAuthorityInstructionArgs, error) {
	var offset int
	var discriminator []byte

	if len(data) != InitializeGroupAuthorityInstructionSize {
		return nil, ErrInvalidInstructionData
	}

	getDiscriminator(data, &discriminator, &offset)

	if !bytes.Equal(discriminator, initializeGroupAuthorityInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var authority []byte
	getKey(data, &authority, &offset)

	return &InitializeGroupAuthorityInstructionArgs{
		Authority: authority,
	}, nil
}
