package lightnft

import (
	"bytes"
	"crypto/ed25519"

	"github.com/zkc-labs/light-nft-repro/pkg/solana"
)

var createCompressedNftInstructionDiscriminator = InstructionDiscriminator("create_compressed_nft")

// CompressedProof is the opaque validity proof triple asserting
// non-membership of the to-be-created address. The zero value is the
// placeholder proof used when the proof service is unavailable; the on-chain
// program will reject it, which is acceptable for a reproducer that wants
// the failing transaction to exist for inspection.
type CompressedProof struct {
	A [32]byte
	B [64]byte
	C [32]byte
}

const compressedProofSize = 32 + 64 + 32

type CreateCompressedNftInstructionArgs struct {
	Name   string
	Symbol string
	Uri    string

	Proof CompressedProof

	// AddressTreeRootIndex selects the accumulator root version the proof
	// was computed against. A stale index is rejected on chain.
	AddressTreeRootIndex uint16

	// Packed (prefix-relative) positions of the address tree and output
	// queue within the system account list, NOT absolute positions in the
	// full invocation account list.
	AddressTreePackedIndex uint8
	OutputQueuePackedIndex uint8

	AddressSeed [32]byte
}

type CreateCompressedNftInstructionAccounts struct {
	Payer          ed25519.PublicKey
	SystemAccounts *SystemAccounts
}

// CreateCompressedNftInstructionDataSize returns the exact serialized length
// of the instruction payload for the given args.
func CreateCompressedNftInstructionDataSize(args *CreateCompressedNftInstructionArgs) int {
	return (8 + // discriminator
		4 + len(args.Name) + // name
		4 + len(args.Symbol) + // symbol
		4 + len(args.Uri) + // uri
		compressedProofSize + // proof_a, proof_b, proof_c
		2 + // address_tree_root_index
		1 + // address_tree_packed_index
		1 + // output_queue_packed_index
		32) // address_seed
}

// MarshalCreateCompressedNftInstructionArgs serializes the instruction
// payload: discriminator, length-prefixed strings, proof triple, root index,
// packed indices, and the address seed, little-endian throughout.
func MarshalCreateCompressedNftInstructionArgs(args *CreateCompressedNftInstructionArgs) []byte {
	var offset int

	data := make([]byte, CreateCompressedNftInstructionDataSize(args))

	putDiscriminator(data, createCompressedNftInstructionDiscriminator, &offset)
	putString(data, args.Name, &offset)
	putString(data, args.Symbol, &offset)
	putString(data, args.Uri, &offset)
	putFixedBytes(data, args.Proof.A[:], &offset)
	putFixedBytes(data, args.Proof.B[:], &offset)
	putFixedBytes(data, args.Proof.C[:], &offset)
	putUint16(data, args.AddressTreeRootIndex, &offset)
	putUint8(data, args.AddressTreePackedIndex, &offset)
	putUint8(data, args.OutputQueuePackedIndex, &offset)
	putFixedBytes(data, args.AddressSeed[:], &offset)

	return data
}

// NewCreateCompressedNftInstruction builds the instruction the reproducer
// program expects: the signer and the native system program lead, followed
// by the Light Protocol system accounts in their fixed order.
func NewCreateCompressedNftInstruction(
	accounts *CreateCompressedNftInstructionAccounts,
	args *CreateCompressedNftInstructionArgs,
) (solana.Instruction, error) {
	if len(args.Name) > MaxNameLength {
		return solana.Instruction{}, ErrNameTooLong
	}
	if len(args.Symbol) > MaxSymbolLength {
		return solana.Instruction{}, ErrSymbolTooLong
	}

	metas := make([]solana.AccountMeta, 0, 2+SystemAccountsLen)
	metas = append(metas,
		solana.NewAccountMeta(accounts.Payer, true),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
	metas = append(metas, accounts.SystemAccounts.Metas()...)

	return solana.NewInstruction(
		PROGRAM_ID,
		MarshalCreateCompressedNftInstructionArgs(args),
		metas...,
	), nil
}

// CreateCompressedNftInstructionArgsFromBinary decodes a serialized payload.
// Used to sanity check round trips in tests and to inspect captured
// transactions.
func CreateCompressedNftInstructionArgsFromBinary(data []byte) (*CreateCompressedNftInstructionArgs, error) {
	var offset int
	var discriminator []byte

	if len(data) < 8 {
		return nil, ErrInvalidInstructionData
	}

	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, createCompressedNftInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var args CreateCompressedNftInstructionArgs
	var err error
	if args.Name, err = getString(data, &offset); err != nil {
		return nil, err
	}
	if args.Symbol, err = getString(data, &offset); err != nil {
		return nil, err
	}
	if args.Uri, err = getString(data, &offset); err != nil {
		return nil, err
	}

	if len(data[offset:]) != compressedProofSize+2+1+1+32 {
		return nil, ErrInvalidInstructionData
	}

	copy(args.Proof.A[:], data[offset:])
	offset += 32
	copy(args.Proof.B[:], data[offset:])
	offset += 64
	copy(args.Proof.C[:], data[offset:])
	offset += 32

	getUint16(data, &args.AddressTreeRootIndex, &offset)
	args.AddressTreePackedIndex = data[offset]
	offset++
	args.OutputQueuePackedIndex = data[offset]
	offset++
	copy(args.AddressSeed[:], data[offset:])

	return &args, nil
}

func getString(src []byte, offset *int) (string, error) {
	if len(src[*offset:]) < 4 {
		return "", ErrInvalidInstructionData
	}

	var length uint32
	getUint32(src, &length, offset)

	if len(src[*offset:]) < int(length) {
		return "", ErrInvalidInstructionData
	}

	s := string(src[*offset : *offset+int(length)])
	*offset += int(length)
	return s, nil
}
