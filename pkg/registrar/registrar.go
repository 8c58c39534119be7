// Package registrar implements the one-time registration of a program with
// the account-compression tree group, a prerequisite for the program's
// compressed account writes being accepted.
package registrar

import (
	"crypto/ed25519"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zkc-labs/light-nft-repro/pkg/common"
	"github.com/zkc-labs/light-nft-repro/pkg/solana"
	account_compression "github.com/zkc-labs/light-nft-repro/pkg/solana/accountcompression"
)

type Status uint8

const (
	StatusRegistered Status = iota
	StatusAlreadyRegistered
)

func (s Status) String() string {
	switch s {
	case StatusRegistered:
		return "registered"
	case StatusAlreadyRegistered:
		return "already registered"
	}
	return "unknown"
}

// Registrar walks the registration procedure as a linear sequence of steps.
// Each step is checked before it is taken, so re-running against a program
// that is already registered submits nothing.
type Registrar struct {
	log    *logrus.Entry
	solana solana.Client
}

func New(solanaClient solana.Client) *Registrar {
	return &Registrar{
		log:    logrus.StandardLogger().WithField("type", "registrar"),
		solana: solanaClient,
	}
}

// Register registers the program with a tree group, creating the group
// authority if needed. The program account must carry its private key, since
// registration requires the program's own signature. Failures are never
// retried here; the procedure is safe to re-run from the top.
func (r *Registrar) Register(payer, program *common.Account) (Status, error) {
	if !payer.CanSign() {
		return 0, errors.New("payer cannot sign")
	}
	if !program.CanSign() {
		return 0, errors.New("program keypair cannot sign")
	}

	log := r.log.WithField("program", program.PublicKey().ToBase58())

	registeredProgramPda, _, err := account_compression.GetRegisteredProgramAddress(
		&account_compression.GetRegisteredProgramAddressArgs{
			Program: program.PublicKey().ToBytes(),
		},
	)
	if err != nil {
		return 0, errors.Wrap(err, "error deriving registered program address")
	}

	registered, err := r.accountExists(registeredProgramPda)
	if err != nil {
		return 0, errors.Wrap(err, "error checking registration")
	}
	if registered {
		log.Info("program is already registered")
		return StatusAlreadyRegistered, nil
	}

	groupAuthority, err := r.ensureGroupAuthority(payer)
	if err != nil {
		return 0, err
	}

	log.WithField("group_authority", base58.Encode(groupAuthority)).Info("registering program")

	instruction := account_compression.NewRegisterProgramToGroupInstruction(
		&account_compression.RegisterProgramToGroupInstructionAccounts{
			Payer:                payer.PublicKey().ToBytes(),
			Program:              program.PublicKey().ToBytes(),
			RegisteredProgramPda: registeredProgramPda,
			GroupAuthority:       groupAuthority,
		},
	)

	if err := r.submitAndConfirm(payer, instruction, program); err != nil {
		return 0, errors.Wrap(err, "error registering program")
	}

	registered, err = r.accountExists(registeredProgramPda)
	if err != nil {
		return 0, errors.Wrap(err, "error verifying registration")
	}
	if !registered {
		return 0, errors.New("registration confirmed but account does not exist")
	}

	log.Info("program registered")

	return StatusRegistered, nil
}

// ensureGroupAuthority creates the group authority account keyed by the
// payer if it does not exist yet, and returns its address. A creation race
// lost to a concurrent run is benign.
func (r *Registrar) ensureGroupAuthority(payer *common.Account) (ed25519.PublicKey, error) {
	groupAuthority, _, err := account_compression.GetGroupAuthorityAddress(
		&account_compression.GetGroupAuthorityAddressArgs{
			Seed: payer.PublicKey().ToBytes(),
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving group authority address")
	}

	exists, err := r.accountExists(groupAuthority)
	if err != nil {
		return nil, errors.Wrap(err, "error checking group authority")
	}
	if exists {
		return groupAuthority, nil
	}

	r.log.WithField("group_authority", base58.Encode(groupAuthority)).Info("creating group authority")

	instruction := account_compression.NewInitializeGroupAuthorityInstruction(
		&account_compression.InitializeGroupAuthorityInstructionAccounts{
			Payer:          payer.PublicKey().ToBytes(),
			Seed:           payer.PublicKey().ToBytes(),
			GroupAuthority: groupAuthority,
		},
		&account_compression.InitializeGroupAuthorityInstructionArgs{
			Authority: payer.PublicKey().ToBytes(),
		},
	)

	if err := r.submitAndConfirm(payer, instruction); err != nil {
		if isAlreadyInitialized(err) {
			r.log.Info("group authority already exists")
			return groupAuthority, nil
		}
		return nil, errors.Wrap(err, "error creating group authority")
	}

	return groupAuthority, nil
}

func (r *Registrar) accountExists(account ed25519.PublicKey) (bool, error) {
	_, err := r.solana.GetAccountInfo(account, solana.CommitmentConfirmed)
	if err == solana.ErrNoAccountInfo {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Registrar) submitAndConfirm(payer *common.Account, instruction solana.Instruction, cosigners ...*common.Account) error {
	txn := solana.NewTransaction(payer.PublicKey().ToBytes(), instruction)

	blockhash, err := r.solana.GetLatestBlockhash()
	if err != nil {
		return errors.Wrap(err, "error getting latest blockhash")
	}
	txn.SetBlockhash(blockhash)

	signers := []ed25519.PrivateKey{ed25519.PrivateKey(payer.PrivateKey().ToBytes())}
	for _, cosigner := range cosigners {
		signers = append(signers, ed25519.PrivateKey(cosigner.PrivateKey().ToBytes()))
	}
	if err := txn.Sign(signers...); err != nil {
		return errors.Wrap(err, "error signing transaction")
	}

	sig, err := r.solana.SubmitTransaction(txn, solana.CommitmentConfirmed)
	if err != nil {
		var submitErr *solana.SubmitError
		if errors.As(err, &submitErr) {
			for _, line := range submitErr.ProgramLogs {
				r.log.Debug(line)
			}
		}
		return err
	}

	status, err := r.solana.GetSignatureStatus(sig, solana.CommitmentConfirmed)
	if err != nil {
		return errors.Wrap(err, "error confirming transaction")
	}
	if status.ErrorResult != nil {
		return status.ErrorResult
	}

	return nil
}

// isAlreadyInitialized reports whether a submission failure means the target
// account exists, which the creation path treats as success.
func isAlreadyInitialized(err error) bool {
	var txnErr *solana.TransactionError
	if errors.As(err, &txnErr) {
		if instructionErr := txnErr.InstructionError(); instructionErr != nil {
			if instructionErr.ErrorKey() == solana.InstructionErrorAccountAlreadyInitialized {
				return true
			}
		}
	}

	return strings.Contains(err.Error(), "already in use") ||
		strings.Contains(err.Error(), string(solana.InstructionErrorAccountAlreadyInitialized))
}
