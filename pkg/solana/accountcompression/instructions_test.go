package account_compression

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkc-labs/light-nft-repro/pkg/testutil"
)

func TestInstructionDiscriminators(t *testing.T) {
	initialize := sha256.Sum256([]byte("global:initialize_group_authority"))
	assert.Equal(t, initialize[:8], initializeGroupAuthorityInstructionDiscriminator)

	register := sha256.Sum256([]byte("global:register_program_to_group"))
	assert.Equal(t, register[:8], registerProgramToGroupInstructionDiscriminator)
}

func TestNewInitializeGroupAuthorityInstruction(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 4)

	instruction := NewInitializeGroupAuthorityInstruction(
		&InitializeGroupAuthorityInstructionAccounts{
			Payer:          keys[0],
			Seed:           keys[1],
			GroupAuthority: keys[2],
		},
		&InitializeGroupAuthorityInstructionArgs{
			Authority: keys[3],
		},
	)

	assert.Equal(t, PROGRAM_ID, instruction.Program)
	assert.Equal(t, InitializeGroupAuthorityInstructionSize, len(instruction.Data))

	require.Len(t, instruction.Accounts, 4)

	assert.EqualValues(t, keys[0], instruction.Accounts[0].PublicKey)
	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)

	assert.EqualValues(t, keys[1], instruction.Accounts[1].PublicKey)
	assert.True(t, instruction.Accounts[1].IsSigner)
	assert.False(t, instruction.Accounts[1].IsWritable)

	assert.EqualValues(t, keys[2], instruction.Accounts[2].PublicKey)
	assert.False(t, instruction.Accounts[2].IsSigner)
	assert.True(t, instruction.Accounts[2].IsWritable)

	assert.EqualValues(t, SYSTEM_PROGRAM_ID, instruction.Accounts[3].PublicKey)
	assert.False(t, instruction.Accounts[3].IsSigner)
	assert.False(t, instruction.Accounts[3].IsWritable)

	args, err := InitializeGroupAuthorityInstructionArgsFromBinary(instruction.Data)
	require.NoError(t, err)
	assert.EqualValues(t, keys[3], args.Authority)
}

func TestInitializeGroupAuthorityInstructionArgsFromBinary_Invalid(t *testing.T) {
	_, err := InitializeGroupAuthorityInstructionArgsFromBinary(nil)
	assert.Equal(t, ErrInvalidInstructionData, err)

	data := make([]byte, InitializeGroupAuthorityInstructionSize)
	_, err = InitializeGroupAuthorityInstructionArgsFromBinary(data)
	assert.Equal(t, ErrInvalidInstructionData, err)
}

func TestNewRegisterProgramToGroupInstruction(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 4)

	instruction := NewRegisterProgramToGroupInstruction(
		&RegisterProgramToGroupInstructionAccounts{
			Payer:                keys[0],
			Program:              keys[1],
			RegisteredProgramPda: keys[2],
			GroupAuthority:       keys[3],
		},
	)

	assert.Equal(t, PROGRAM_ID, instruction.Program)
	assert.True(t, IsRegisterProgramToGroupInstruction(instruction.Data))

	require.Len(t, instruction.Accounts, 5)

	assert.EqualValues(t, keys[0], instruction.Accounts[0].PublicKey)
	assert.True(t, instruction.Accounts[0].IsSigner)
	assert.True(t, instruction.Accounts[0].IsWritable)

	// the program being registered co-signs but is never written to
	assert.EqualValues(t, keys[1], instruction.Accounts[1].PublicKey)
	assert.True(t, instruction.Accounts[1].IsSigner)
	assert.False(t, instruction.Accounts[1].IsWritable)

	assert.EqualValues(t, keys[2], instruction.Accounts[2].PublicKey)
	assert.False(t, instruction.Accounts[2].IsSigner)
	assert.True(t, instruction.Accounts[2].IsWritable)

	assert.EqualValues(t, keys[3], instruction.Accounts[3].PublicKey)
	assert.False(t, instruction.Accounts[3].IsSigner)
	assert.True(t, instruction.Accounts[3].IsWritable)

	assert.EqualValues(t, SYSTEM_PROGRAM_ID, instruction.Accounts[4].PublicKey)
	assert.False(t, instruction.Accounts[4].IsSigner)
	assert.False(t, instruction.Accounts[4].IsWritable)
}

func TestIsRegisterProgramToGroupInstruction(t *testing.T) {
	assert.False(t, IsRegisterProgramToGroupInstruction(nil))
	assert.False(t, IsRegisterProgramToGroupInstruction(initializeGroupAuthorityInstructionDiscriminator))

	data := make([]byte, RegisterProgramToGroupInstructionSize)
	copy(data, registerProgramToGroupInstructionDiscriminator)
	assert.True(t, IsRegisterProgramToGroupInstruction(data))
}
