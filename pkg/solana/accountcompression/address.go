package account_compression

import (
	"crypto/ed25519"

	"github.com/zkc-labs/light-nft-repro/pkg/solana"
)

var (
	GroupAuthorityPrefix = []byte("group_authority")
	CpiAuthorityPrefix   = []byte("cpi_authority")
)

type GetGroupAuthorityAddressArgs struct {
	Seed ed25519.PublicKey
}

// GetGroupAuthorityAddress derives the group authority PDA for a given seed
// account: seeds ("group_authority", seed) under the account-compression
// program. The seed account must co-sign group creation, which is how the
// program ties a group to its creator.
func GetGroupAuthorityAddress(args *GetGroupAuthorityAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		GroupAuthorityPrefix,
		args.Seed,
	)
}

type GetRegisteredProgramAddressArgs struct {
	Program ed25519.PublicKey
}

// GetRegisteredProgramAddress derives the registration PDA for a program:
// the program's raw identifier bytes as the sole seed, under the
// account-compression program. Existence of this account is what the
// protocol checks before accepting tree writes from the program.
func GetRegisteredProgramAddress(args *GetRegisteredProgramAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		args.Program,
	)
}

// GetCompressionAuthorityAddress derives the PDA the Light system program
// uses to sign its own CPIs into the account-compression program: seed
// "cpi_authority" under the Light system program.
func GetCompressionAuthorityAddress() (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		LIGHT_SYSTEM_PROGRAM_ID,
		CpiAuthorityPrefix,
	)
}
