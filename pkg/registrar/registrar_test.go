package registrar

import (
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkc-labs/light-nft-repro/pkg/common"
	"github.com/zkc-labs/light-nft-repro/pkg/solana"
	account_compression "github.com/zkc-labs/light-nft-repro/pkg/solana/accountcompression"
	"github.com/zkc-labs/light-nft-repro/pkg/testutil"
)

type fakeSolanaClient struct {
	solana.Client

	existing map[string]bool

	submitted      []solana.Transaction
	initGroupErr   error
	registerStatus *solana.SignatureStatus
}

func newFakeSolanaClient() *fakeSolanaClient {
	return &fakeSolanaClient{
		existing: make(map[string]bool),
	}
}

func (f *fakeSolanaClient) GetAccountInfo(account ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	if f.existing[base58.Encode(account)] {
		return solana.AccountInfo{}, nil
	}
	return solana.AccountInfo{}, solana.ErrNoAccountInfo
}

func (f *fakeSolanaClient) GetLatestBlockhash() (solana.Blockhash, error) {
	return solana.Blockhash{1}, nil
}

func (f *fakeSolanaClient) SubmitTransaction(txn solana.Transaction, _ solana.Commitment) (solana.Signature, error) {
	instruction := txn.Message.Instructions[0]

	if account_compression.IsRegisterProgramToGroupInstruction(instruction.Data) {
		if f.registerStatus == nil || f.registerStatus.ErrorResult == nil {
			// registration PDA is the third instruction account
			pda := txn.Message.Accounts[instruction.Accounts[2]]
			f.existing[base58.Encode(pda)] = true
		}
	} else if f.initGroupErr != nil {
		return solana.Signature{}, f.initGroupErr
	}

	f.submitted = append(f.submitted, txn)
	return solana.Signature{}, nil
}

func (f *fakeSolanaClient) GetSignatureStatus(_ solana.Signature, _ solana.Commitment) (*solana.SignatureStatus, error) {
	instruction := f.submitted[len(f.submitted)-1].Message.Instructions[0]
	if account_compression.IsRegisterProgramToGroupInstruction(instruction.Data) && f.registerStatus != nil {
		return f.registerStatus, nil
	}
	return &solana.SignatureStatus{}, nil
}

func TestRegistrar_Register(t *testing.T) {
	payer := testutil.NewRandomAccount(t)
	program := testutil.NewRandomAccount(t)
	client := newFakeSolanaClient()

	status, err := New(client).Register(payer, program)
	require.NoError(t, err)
	assert.Equal(t, StatusRegistered, status)

	// group authority creation, then registration
	require.Len(t, client.submitted, 2)

	registerTxn := client.submitted[1]
	instruction := registerTxn.Message.Instructions[0]
	assert.True(t, account_compression.IsRegisterProgramToGroupInstruction(instruction.Data))

	// both the payer and the program keypair sign
	require.Len(t, registerTxn.Signatures, 2)
	assert.EqualValues(t, payer.PublicKey().ToBytes(), registerTxn.Message.Accounts[0])
}

func TestRegistrar_Register_Idempotent(t *testing.T) {
	payer := testutil.NewRandomAccount(t)
	program := testutil.NewRandomAccount(t)
	client := newFakeSolanaClient()

	registrar := New(client)

	status, err := registrar.Register(payer, program)
	require.NoError(t, err)
	assert.Equal(t, StatusRegistered, status)

	submitted := len(client.submitted)

	// second run stops at the existence check
	status, err = registrar.Register(payer, program)
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyRegistered, status)
	assert.Len(t, client.submitted, submitted)
}

func TestRegistrar_Register_ExistingGroupAuthority(t *testing.T) {
	payer := testutil.NewRandomAccount(t)
	program := testutil.NewRandomAccount(t)
	client := newFakeSolanaClient()

	groupAuthority, _, err := account_compression.GetGroupAuthorityAddress(
		&account_compression.GetGroupAuthorityAddressArgs{
			Seed: payer.PublicKey().ToBytes(),
		},
	)
	require.NoError(t, err)
	client.existing[base58.Encode(groupAuthority)] = true

	status, err := New(client).Register(payer, program)
	require.NoError(t, err)
	assert.Equal(t, StatusRegistered, status)

	// only the registration itself was submitted
	require.Len(t, client.submitted, 1)
	assert.True(t, account_compression.IsRegisterProgramToGroupInstruction(client.submitted[0].Message.Instructions[0].Data))
}

func TestRegistrar_Register_GroupCreationRaceIsBenign(t *testing.T) {
	payer := testutil.NewRandomAccount(t)
	program := testutil.NewRandomAccount(t)
	client := newFakeSolanaClient()
	client.initGroupErr = &solana.SubmitError{
		Cause: errors.New("Allocate: account Address { address: abc, base: None } already in use"),
	}

	status, err := New(client).Register(payer, program)
	require.NoError(t, err)
	assert.Equal(t, StatusRegistered, status)

	require.Len(t, client.submitted, 1)
	assert.True(t, account_compression.IsRegisterProgramToGroupInstruction(client.submitted[0].Message.Instructions[0].Data))
}

func TestRegistrar_Register_Failure(t *testing.T) {
	payer := testutil.NewRandomAccount(t)
	program := testutil.NewRandomAccount(t)

	client := newFakeSolanaClient()

	txnErr, err := solana.ParseTransactionError(map[string]interface{}{
		"InstructionError": []interface{}{0.0, "MissingRequiredSignature"},
	})
	require.NoError(t, err)
	client.registerStatus = &solana.SignatureStatus{ErrorResult: txnErr}

	_, err = New(client).Register(payer, program)
	assert.Error(t, err)
}

func TestRegistrar_Register_RequiresKeys(t *testing.T) {
	payer := testutil.NewRandomAccount(t)
	program := testutil.NewRandomAccount(t)

	publicOnly, err := common.NewAccountFromPublicKeyBytes(payer.PublicKey().ToBytes())
	require.NoError(t, err)

	_, err = New(newFakeSolanaClient()).Register(publicOnly, program)
	assert.Error(t, err)
}

func TestIsAlreadyInitialized(t *testing.T) {
	assert.False(t, isAlreadyInitialized(errors.New("insufficient funds")))
	assert.True(t, isAlreadyInitialized(errors.New("account abc already in use")))

	txnErr, err := solana.ParseTransactionError(map[string]interface{}{
		"InstructionError": []interface{}{0.0, "AccountAlreadyInitialized"},
	})
	require.NoError(t, err)
	assert.True(t, isAlreadyInitialized(txnErr))

	txnErr, err = solana.ParseTransactionError("BlockhashNotFound")
	require.NoError(t, err)
	assert.False(t, isAlreadyInitialized(txnErr))
}
