// Package lightnft provides the client-side binding for the compressed-NFT
// reproducer program, which forwards mints to the Light Protocol system
// program over CPI.
package lightnft

import (
	"crypto/ed25519"
	"errors"
)

var (
	ErrInvalidInstructionData = errors.New("unexpected instruction data")

	ErrNameTooLong   = errors.New("name exceeds 32 bytes")
	ErrSymbolTooLong = errors.New("symbol exceeds 10 bytes")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("FqnkaXZkLJfMZbrx36qBnuSZcJAaktguuhp32mqmAKAo")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	LIGHT_SYSTEM_PROGRAM_ID        = ed25519.PublicKey(mustBase58Decode("SySTEM1eSU2p4BGQfQpimFEWWSC1XDFeun3Nqzz3rT7"))
	ACCOUNT_COMPRESSION_PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("compr6CUsB5m2jS4Y3831ztGSTnDpnKJTKS95d64XVq"))

	// 11111111111111111111111111111111
	SYSTEM_PROGRAM_ID = ed25519.PublicKey(make([]byte, ed25519.PublicKeySize))
)

const (
	// Caps enforced by the on-chain program's registry layout.
	MaxNameLength   = 32
	MaxSymbolLength = 10
)
