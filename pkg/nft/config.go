package nft

import (
	"crypto/ed25519"
	"os"
	"strconv"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	account_compression "github.com/zkc-labs/light-nft-repro/pkg/solana/accountcompression"
	"github.com/zkc-labs/light-nft-repro/pkg/solana/lightnft"
)

const (
	envSolanaRpcEndpoint = "SOLANA_RPC_ENDPOINT"
	envPhotonEndpoint    = "PHOTON_ENDPOINT"
	envPhotonApiKey      = "PHOTON_API_KEY"
	envProgramId         = "NFT_PROGRAM_ID"
	envStateTree         = "STATE_TREE"
	envAddressTree       = "ADDRESS_TREE"
	envOutputQueue       = "OUTPUT_QUEUE"
	envComputeUnitLimit  = "COMPUTE_UNIT_LIMIT"

	defaultSolanaRpcEndpoint = "https://api.devnet.solana.com"
	defaultPhotonEndpoint    = "https://devnet.helius-rpc.com"

	// Devnet shared trees operated by Light Protocol.
	defaultStateTree   = "smt1NamzXdq4AMqS2fS2F1i5KTYPZRhoHgWx38d8WsT"
	defaultAddressTree = "amt1Ayt45jfbdw5YSo7iz6WZxUmnZsQTYXy82hVwyC2"
	defaultOutputQueue = "nfq1NvQDJ2GEgnS8zt9prAe8rjjpAW1zFkrvZoBR148"

	defaultComputeUnitLimit = 1_000_000
)

var ErrMissingPhotonApiKey = errors.Errorf("%s is required", envPhotonApiKey)

// Config carries every externally configurable value the mint and
// registration flows need. It is loaded once at startup and treated as
// immutable afterwards.
type Config struct {
	SolanaRpcEndpoint string
	PhotonEndpoint    string
	PhotonApiKey      string

	Program              ed25519.PublicKey
	LightSystemProgram   ed25519.PublicKey
	CompressionProgram   ed25519.PublicKey
	CompressionAuthority ed25519.PublicKey

	StateTree   ed25519.PublicKey
	AddressTree ed25519.PublicKey
	OutputQueue ed25519.PublicKey

	ComputeUnitLimit uint32
}

// LoadConfig reads configuration from the environment, applying defaults for
// the public constants. The proof-service API key has no default and its
// absence is a hard error.
func LoadConfig() (*Config, error) {
	apiKey := os.Getenv(envPhotonApiKey)
	if len(apiKey) == 0 {
		return nil, ErrMissingPhotonApiKey
	}

	program, err := keyFromEnv(envProgramId, base58.Encode(lightnft.PROGRAM_ID))
	if err != nil {
		return nil, err
	}

	stateTree, err := keyFromEnv(envStateTree, defaultStateTree)
	if err != nil {
		return nil, err
	}

	addressTree, err := keyFromEnv(envAddressTree, defaultAddressTree)
	if err != nil {
		return nil, err
	}

	outputQueue, err := keyFromEnv(envOutputQueue, defaultOutputQueue)
	if err != nil {
		return nil, err
	}

	computeUnitLimit := uint32(defaultComputeUnitLimit)
	if value := os.Getenv(envComputeUnitLimit); len(value) > 0 {
		parsed, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid %s", envComputeUnitLimit)
		}
		computeUnitLimit = uint32(parsed)
	}

	compressionAuthority, _, err := account_compression.GetCompressionAuthorityAddress()
	if err != nil {
		return nil, errors.Wrap(err, "error deriving compression authority")
	}

	return &Config{
		SolanaRpcEndpoint: stringFromEnv(envSolanaRpcEndpoint, defaultSolanaRpcEndpoint),
		PhotonEndpoint:    stringFromEnv(envPhotonEndpoint, defaultPhotonEndpoint),
		PhotonApiKey:      apiKey,

		Program:              program,
		LightSystemProgram:   lightnft.LIGHT_SYSTEM_PROGRAM_ID,
		CompressionProgram:   lightnft.ACCOUNT_COMPRESSION_PROGRAM_ID,
		CompressionAuthority: compressionAuthority,

		StateTree:   stateTree,
		AddressTree: addressTree,
		OutputQueue: outputQueue,

		ComputeUnitLimit: computeUnitLimit,
	}, nil
}

func stringFromEnv(name, defaultValue string) string {
	if value := os.Getenv(name); len(value) > 0 {
		return value
	}
	return defaultValue
}

func keyFromEnv(name, defaultValue string) (ed25519.PublicKey, error) {
	value := stringFromEnv(name, defaultValue)

	decoded, err := base58.Decode(value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid %s", name)
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Errorf("invalid %s: expected %d bytes, got %d", name, ed25519.PublicKeySize, len(decoded))
	}

	return decoded, nil
}
