package account_compression

import (
	"bytes"
	"crypto/ed25519"

	"github.com/zkc-labs/light-nft-repro/pkg/solana"
)

var registerProgramToGroupInstructionDiscriminator = []byte{
	0xe1, 0x56, 0xcf, 0xd3, 0x15, 0x01, 0x2e, 0x19,
}

const RegisterProgramToGroupInstructionSize = 8 // discriminator only

type RegisterProgramToGroupInstructionAccounts struct {
	Payer                ed25519.PublicKey
	Program              ed25519.PublicKey
	RegisteredProgramPda ed25519.PublicKey
	GroupAuthority       ed25519.PublicKey
}

// NewRegisterProgramToGroupInstruction registers a program with a tree
// group, creating the registration PDA. The program being registered must
// co-sign, proving control of its upgrade keypair.
func NewRegisterProgramToGroupInstruction(
	accounts *RegisterProgramToGroupInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, RegisterProgramToGroupInstructionSize)

	putDiscriminator(data, registerProgramToGroupInstructionDiscriminator, &offset)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.Payer, true),
		solana.NewReadonlyAccountMeta(accounts.Program, true),
		solana.NewAccountMeta(accounts.RegisteredProgramPda, false),
		solana.NewAccountMeta(accounts.GroupAuthority, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

// IsRegisterProgramToGroupInstruction reports whether serialized instruction
// data carries the register_program_to_group discriminator.
func IsRegisterProgramToGroupInstruction(data []byte) bool {
	return len(data) == RegisterProgramToGroupInstructionSize &&
		bytes.Equal(data[:8], registerProgramToGroupInstructionDiscriminator)
}
