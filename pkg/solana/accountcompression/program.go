// Package account_compression provides the client-side binding for the
// subset of the account-compression program used to register a program with
// a state tree group before it may append compressed accounts.
package account_compression

import (
	"crypto/ed25519"
	"errors"
)

var (
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("compr6CUsB5m2jS4Y3831ztGSTnDpnKJTKS95d64XVq")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	LIGHT_SYSTEM_PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("SySTEM1eSU2p4BGQfQpimFEWWSC1XDFeun3Nqzz3rT7"))

	// 11111111111111111111111111111111
	SYSTEM_PROGRAM_ID = ed25519.PublicKey(make([]byte, ed25519.PublicKeySize))
)
