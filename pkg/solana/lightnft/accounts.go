package lightnft

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/zkc-labs/light-nft-repro/pkg/solana"
)

// The Light Protocol V2 CPI convention indexes into the auxiliary account
// list positionally. The first systemAccountPrefixLen entries are fixed
// protocol accounts, the remainder are trees/queues referenced by packed
// (prefix-relative) indices. Any reordering is a breaking change.
const (
	LightSystemProgramPosition = iota
	CpiAuthorityPosition
	RegisteredProgramPosition
	CompressionAuthorityPosition
	CompressionProgramPosition
	SystemProgramPosition
	StateTreePosition
	AddressTreePosition
	OutputQueuePosition

	SystemAccountsLen = iota
)

const systemAccountPrefixLen = 6

var ErrPositionNotPacked = errors.New("position is inside the fixed account prefix")

// PackedIndex maps an absolute position in the system account list onto the
// packed (prefix-relative) index the on-chain program expects for tree and
// queue accounts. The mapping must be recomputed if the fixed prefix ever
// changes length.
func PackedIndex(absolutePosition int) (uint8, error) {
	if absolutePosition < systemAccountPrefixLen {
		return 0, ErrPositionNotPacked
	}

	return uint8(absolutePosition - systemAccountPrefixLen), nil
}

// SystemAccounts is the ordered set of Light Protocol accounts the
// create_compressed_nft instruction requires after the signer and the native
// system program. The fee payer is deliberately excluded: the on-chain CPI
// accounts constructor receives it separately, and including it here would
// shift every packed index by one.
type SystemAccounts struct {
	LightSystemProgram   ed25519.PublicKey
	CpiAuthority         ed25519.PublicKey
	RegisteredProgramPda ed25519.PublicKey
	CompressionAuthority ed25519.PublicKey
	CompressionProgram   ed25519.PublicKey
	SystemProgram        ed25519.PublicKey
	StateTree            ed25519.PublicKey
	AddressTree          ed25519.PublicKey
	OutputQueue          ed25519.PublicKey
}

type NewSystemAccountsArgs struct {
	Program              ed25519.PublicKey
	LightSystemProgram   ed25519.PublicKey
	CompressionProgram   ed25519.PublicKey
	CompressionAuthority ed25519.PublicKey
	StateTree            ed25519.PublicKey
	AddressTree          ed25519.PublicKey
	OutputQueue          ed25519.PublicKey
}

// NewSystemAccounts derives the program-owned addresses and assembles the
// full account set. The list is rebuilt from scratch on every call; it is
// never cached or mutated incrementally.
func NewSystemAccounts(args *NewSystemAccountsArgs) (*SystemAccounts, error) {
	cpiAuthority, _, err := GetCpiAuthorityAddress(&GetCpiAuthorityAddressArgs{
		Program: args.Program,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error deriving cpi authority address")
	}

	registeredProgramPda, _, err := GetRegisteredProgramAddress(&GetRegisteredProgramAddressArgs{
		Program: args.Program,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error deriving registered program address")
	}

	return &SystemAccounts{
		LightSystemProgram:   args.LightSystemProgram,
		CpiAuthority:         cpiAuthority,
		RegisteredProgramPda: registeredProgramPda,
		CompressionAuthority: args.CompressionAuthority,
		CompressionProgram:   args.CompressionProgram,
		SystemProgram:        SYSTEM_PROGRAM_ID,
		StateTree:            args.StateTree,
		AddressTree:          args.AddressTree,
		OutputQueue:          args.OutputQueue,
	}, nil
}

// Metas returns the account metas in the protocol-required order. Only the
// tree and queue accounts are writable; every program account, and in
// particular the native system program, must stay readonly. Marking an
// executable account writable is exactly the fault this reproducer exists
// to demonstrate.
func (a *SystemAccounts) Metas() []solana.AccountMeta {
	return []solana.AccountMeta{
		solana.NewReadonlyAccountMeta(a.LightSystemProgram, false),
		solana.NewReadonlyAccountMeta(a.CpiAuthority, false),
		solana.NewReadonlyAccountMeta(a.RegisteredProgramPda, false),
		solana.NewReadonlyAccountMeta(a.CompressionAuthority, false),
		solana.NewReadonlyAccountMeta(a.CompressionProgram, false),
		solana.NewReadonlyAccountMeta(a.SystemProgram, false),
		solana.NewAccountMeta(a.StateTree, false),
		solana.NewAccountMeta(a.AddressTree, false),
		solana.NewAccountMeta(a.OutputQueue, false),
	}
}
