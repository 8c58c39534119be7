package lightnft

import (
	"crypto/ed25519"

	"github.com/zkc-labs/light-nft-repro/pkg/solana"
)

var (
	CpiAuthorityPrefix = []byte("cpi_authority")
)

type GetCpiAuthorityAddressArgs struct {
	Program ed25519.PublicKey
}

// GetCpiAuthorityAddress derives the PDA the program signs its Light Protocol
// CPIs with: seed "cpi_authority" under the invoking program.
func GetCpiAuthorityAddress(args *GetCpiAuthorityAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		args.Program,
		CpiAuthorityPrefix,
	)
}

type GetRegisteredProgramAddressArgs struct {
	Program ed25519.PublicKey
}

// GetRegisteredProgramAddress derives the account-compression registration
// PDA for the invoking program: the program's raw identifier bytes as the
// sole seed, under the account-compression program.
func GetRegisteredProgramAddress(args *GetRegisteredProgramAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		ACCOUNT_COMPRESSION_PROGRAM_ID,
		args.Program,
	)
}
