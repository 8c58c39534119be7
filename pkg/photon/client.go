// Package photon implements a client for the Photon indexer's JSON-RPC API,
// which serves validity proofs for compressed account creation.
package photon

import (
	"crypto/ed25519"
	"net/url"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"

	"github.com/zkc-labs/light-nft-repro/pkg/retry"
	"github.com/zkc-labs/light-nft-repro/pkg/retry/backoff"
	"github.com/zkc-labs/light-nft-repro/pkg/solana/lightnft"
)

var (
	ErrMissingAPIKey = errors.New("photon api key is required")

	errRateLimited  = errors.New("rate limited")
	errServiceError = errors.New("service error")
)

// ValidityProof asserts to the Light system program that an address does not
// yet exist in the address tree, along with the accumulator root version the
// proof was computed against.
type ValidityProof struct {
	Proof     lightnft.CompressedProof
	RootIndex uint16
}

// ZeroProof is the placeholder returned when the indexer cannot produce a
// real proof. The on-chain program rejects it, but the transaction still
// reaches the runtime, which is all a reproducer needs.
func ZeroProof() *ValidityProof {
	return &ValidityProof{}
}

type Client struct {
	log     *logrus.Entry
	client  jsonrpc.RPCClient
	retrier retry.Retrier
}

// NewClient returns a Photon client for the given RPC endpoint. The API key
// is mandatory and is carried as a query parameter on every request.
func NewClient(endpoint, apiKey string) (*Client, error) {
	if len(apiKey) == 0 {
		return nil, ErrMissingAPIKey
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "invalid endpoint")
	}

	query := u.Query()
	query.Set("api-key", apiKey)
	u.RawQuery = query.Encode()

	return &Client{
		log:    logrus.StandardLogger().WithField("type", "photon/client"),
		client: jsonrpc.NewClient(u.String()),
		retrier: retry.NewRetrier(
			retry.RetriableErrors(errRateLimited, errServiceError),
			retry.Limit(3),
			retry.BackoffWithJitter(backoff.BinaryExponential(time.Second), 10*time.Second, 0.1),
		),
	}, nil
}

type newAddressWithTree struct {
	Address string `json:"address"`
	Tree    string `json:"tree"`
}

type getValidityProofParams struct {
	NewAddressesWithTrees []newAddressWithTree `json:"newAddressesWithTrees"`
}

// The indexer encodes proof components as JSON arrays of numbers, so they
// must be decoded as integer slices rather than base64 byte strings.
type getValidityProofResult struct {
	Value struct {
		CompressedProof struct {
			A []int `json:"a"`
			B []int `json:"b"`
			C []int `json:"c"`
		} `json:"compressedProof"`
		RootIndices []uint16 `json:"rootIndices"`
	} `json:"value"`
}

// GetValidityProof fetches a non-inclusion proof for a derived address in the
// given address tree. It never returns an error: any failure, from transport
// to a malformed response, degrades to the zero proof so callers can proceed
// to submission unconditionally.
func (c *Client) GetValidityProof(address [32]byte, addressTree ed25519.PublicKey) *ValidityProof {
	log := c.log.WithField("method", "GetValidityProof")

	params := getValidityProofParams{
		NewAddressesWithTrees: []newAddressWithTree{
			{
				Address: base58.Encode(address[:]),
				Tree:    base58.Encode(addressTree),
			},
		},
	}

	var resp getValidityProofResult
	if err := c.call(&resp, "getValidityProof", params); err != nil {
		log.WithError(err).Warn("proof request failed, falling back to zero proof")
		return ZeroProof()
	}

	proof, err := normalizeProof(&resp)
	if err != nil {
		log.WithError(err).Warn("malformed proof response, falling back to zero proof")
		return ZeroProof()
	}

	return proof
}

func (c *Client) call(out interface{}, method string, params ...interface{}) error {
	_, err := c.retrier.Retry(func() error {
		err := c.client.CallFor(out, method, params...)
		if err == nil {
			return nil
		}

		return c.handleRpcError(method, err)
	})

	return err
}

func (c *Client) handleRpcError(method string, err error) error {
	rpcErr, ok := err.(*jsonrpc.RPCError)
	if !ok {
		return err
	}
	if rpcErr.Code == 429 {
		c.log.WithField("method", method).Warn("rate limited")
		return errRateLimited
	}
	if rpcErr.Code >= 500 {
		return errServiceError
	}

	return err
}

func normalizeProof(resp *getValidityProofResult) (*ValidityProof, error) {
	var proof ValidityProof

	if err := copyProofComponent(proof.Proof.A[:], resp.Value.CompressedProof.A); err != nil {
		return nil, errors.Wrap(err, "invalid proof component a")
	}
	if err := copyProofComponent(proof.Proof.B[:], resp.Value.CompressedProof.B); err != nil {
		return nil, errors.Wrap(err, "invalid proof component b")
	}
	if err := copyProofComponent(proof.Proof.C[:], resp.Value.CompressedProof.C); err != nil {
		return nil, errors.Wrap(err, "invalid proof component c")
	}

	if len(resp.Value.RootIndices) == 0 {
		return nil, errors.New("missing root index")
	}
	proof.RootIndex = resp.Value.RootIndices[0]

	return &proof, nil
}

func copyProofComponent(dst []byte, src []int) error {
	if len(src) != len(dst) {
		return errors.Errorf("expected %d bytes, got %d", len(dst), len(src))
	}

	for i, v := range src {
		if v < 0 || v > 255 {
			return errors.Errorf("value %d at index %d is not a byte", v, i)
		}
		dst[i] = byte(v)
	}

	return nil
}
