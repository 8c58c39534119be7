package nft

import (
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/zkc-labs/light-nft-repro/pkg/common"
	"github.com/zkc-labs/light-nft-repro/pkg/solana"
)

const (
	// Enough for fees across several mint attempts on devnet.
	airdropLamports = 1_000_000_000

	feeBudgetLamports = 100_000
)

// EnsureFunded checks that the payer holds enough lamports to stay rent
// exempt and cover transaction fees, requesting a devnet airdrop when it
// does not. Mainnet nodes reject requestAirdrop, so callers gate this on a
// devnet-only flag.
func (m *Minter) EnsureFunded(payer *common.Account) error {
	balance, err := m.solana.GetBalance(payer.PublicKey().ToBytes())
	if err == solana.ErrNoBalance {
		balance = 0
	} else if err != nil {
		return errors.Wrap(err, "error getting payer balance")
	}

	rentFloor, err := m.solana.GetMinimumBalanceForRentExemption(0)
	if err != nil {
		return errors.Wrap(err, "error getting rent exemption floor")
	}

	required := rentFloor + feeBudgetLamports
	if balance >= required {
		m.journal.Debug("payer balance %d covers %d", balance, required)
		return nil
	}

	m.journal.Info("payer balance %d below %d, requesting airdrop", balance, required)

	sig, err := m.solana.RequestAirdrop(payer.PublicKey().ToBytes(), airdropLamports, solana.CommitmentConfirmed)
	if err != nil {
		return errors.Wrap(err, "error requesting airdrop")
	}

	status, err := m.solana.GetSignatureStatus(sig, solana.CommitmentConfirmed)
	if err != nil {
		return errors.Wrap(err, "error confirming airdrop")
	}
	if status.ErrorResult != nil {
		return errors.Wrap(status.ErrorResult, "airdrop failed")
	}

	m.journal.Success("airdrop confirmed: %s", base58.Encode(sig[:]))
	return nil
}
