package nft

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/zkc-labs/light-nft-repro/pkg/common"
	"github.com/zkc-labs/light-nft-repro/pkg/photon"
	"github.com/zkc-labs/light-nft-repro/pkg/solana"
	compute_budget "github.com/zkc-labs/light-nft-repro/pkg/solana/computebudget"
	"github.com/zkc-labs/light-nft-repro/pkg/solana/lightnft"
)

// ProofFetcher supplies validity proofs for to-be-created compressed
// addresses. Implementations never fail; they degrade to the zero proof.
type ProofFetcher interface {
	GetValidityProof(address [32]byte, addressTree ed25519.PublicKey) *photon.ValidityProof
}

// MintResult is the terminal outcome of a single mint attempt. Failures are
// carried as data rather than surfaced as errors so a front end can render
// them alongside the journal.
type MintResult struct {
	Signature   string
	Success     bool
	Err         string
	ProgramLogs []string
}

// Minter drives the end-to-end compressed NFT mint: seed generation, proof
// retrieval, instruction assembly, signing, submission, and confirmation.
// Each call is independent; a failed mint is never retried, and a fresh
// address seed makes retrying the caller's decision.
type Minter struct {
	log     *logrus.Entry
	conf    *Config
	solana  solana.Client
	proofs  ProofFetcher
	journal *Journal
}

func NewMinter(
	conf *Config,
	solanaClient solana.Client,
	proofs ProofFetcher,
	journal *Journal,
) *Minter {
	return &Minter{
		log:     logrus.StandardLogger().WithField("type", "nft/minter"),
		conf:    conf,
		solana:  solanaClient,
		proofs:  proofs,
		journal: journal,
	}
}

// Mint creates one compressed NFT owned by the payer. The returned result is
// always non-nil; inspect Success and Err rather than an error value.
func (m *Minter) Mint(payer *common.Account, name, symbol, uri string) *MintResult {
	if !payer.CanSign() {
		return m.failure(errors.New("payer cannot sign"), nil)
	}

	m.journal.Info("minting %q (%s)", name, symbol)

	seed, err := lightnft.NewAddressSeed(payer.PublicKey().ToBytes())
	if err != nil {
		return m.failure(errors.Wrap(err, "error generating address seed"), nil)
	}

	address := lightnft.DeriveCompressedAddress(seed, m.conf.AddressTree, m.conf.Program)
	m.journal.Debug("derived compressed address %s", base58.Encode(address[:]))

	proof := m.proofs.GetValidityProof(address, m.conf.AddressTree)
	if *proof == *photon.ZeroProof() {
		m.journal.Info("no validity proof available, submitting with zero proof")
	} else {
		m.journal.Debug("validity proof fetched with root index %d", proof.RootIndex)
	}

	systemAccounts, err := lightnft.NewSystemAccounts(&lightnft.NewSystemAccountsArgs{
		Program:              m.conf.Program,
		LightSystemProgram:   m.conf.LightSystemProgram,
		CompressionProgram:   m.conf.CompressionProgram,
		CompressionAuthority: m.conf.CompressionAuthority,
		StateTree:            m.conf.StateTree,
		AddressTree:          m.conf.AddressTree,
		OutputQueue:          m.conf.OutputQueue,
	})
	if err != nil {
		return m.failure(errors.Wrap(err, "error building system accounts"), nil)
	}

	addressTreeIndex, err := lightnft.PackedIndex(lightnft.AddressTreePosition)
	if err != nil {
		return m.failure(err, nil)
	}
	outputQueueIndex, err := lightnft.PackedIndex(lightnft.OutputQueuePosition)
	if err != nil {
		return m.failure(err, nil)
	}

	createInstruction, err := lightnft.NewCreateCompressedNftInstruction(
		&lightnft.CreateCompressedNftInstructionAccounts{
			Payer:          payer.PublicKey().ToBytes(),
			SystemAccounts: systemAccounts,
		},
		&lightnft.CreateCompressedNftInstructionArgs{
			Name:                   name,
			Symbol:                 symbol,
			Uri:                    uri,
			Proof:                  proof.Proof,
			AddressTreeRootIndex:   proof.RootIndex,
			AddressTreePackedIndex: addressTreeIndex,
			OutputQueuePackedIndex: outputQueueIndex,
			AddressSeed:            seed,
		},
	)
	if err != nil {
		return m.failure(errors.Wrap(err, "error building instruction"), nil)
	}

	txn := solana.NewTransaction(
		payer.PublicKey().ToBytes(),
		compute_budget.SetComputeUnitLimit(m.conf.ComputeUnitLimit),
		createInstruction,
	)

	blockhash, err := m.solana.GetLatestBlockhash()
	if err != nil {
		return m.failure(errors.Wrap(err, "error getting latest blockhash"), nil)
	}
	txn.SetBlockhash(blockhash)

	if err := txn.Sign(ed25519.PrivateKey(payer.PrivateKey().ToBytes())); err != nil {
		return m.failure(errors.Wrap(err, "error signing transaction"), nil)
	}

	m.journal.Info("submitting transaction")

	sig, err := m.solana.SubmitTransaction(txn, solana.CommitmentConfirmed)
	if err != nil {
		var submitErr *solana.SubmitError
		if errors.As(err, &submitErr) {
			return m.failure(err, submitErr.ProgramLogs)
		}
		return m.failure(errors.Wrap(err, "error submitting transaction"), nil)
	}

	signature := base58.Encode(sig[:])
	m.journal.Info("transaction submitted: %s", signature)

	status, err := m.solana.GetSignatureStatus(sig, solana.CommitmentConfirmed)
	if err != nil {
		result := m.failure(errors.Wrap(err, "error confirming transaction"), nil)
		result.Signature = signature
		return result
	}

	if status.ErrorResult != nil {
		logs, logsErr := m.solana.GetTransactionLogs(sig, solana.CommitmentConfirmed)
		if logsErr != nil {
			m.log.WithError(logsErr).Warn("failed to fetch transaction logs")
		}

		result := m.failure(status.ErrorResult, logs)
		result.Signature = signature
		return result
	}

	m.journal.Success("mint confirmed: %s", signature)

	return &MintResult{
		Signature: signature,
		Success:   true,
	}
}

func (m *Minter) failure(err error, programLogs []string) *MintResult {
	m.journal.Error("mint failed: %v", err)
	for _, line := range programLogs {
		m.journal.Debug("%s", line)
	}

	return &MintResult{
		Err:         err.Error(),
		ProgramLogs: programLogs,
	}
}
