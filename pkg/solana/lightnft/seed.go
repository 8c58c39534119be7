package lightnft

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/pkg/errors"
)

// NewAddressSeed generates a fresh 32-byte seed for a to-be-created
// compressed account address by hashing the payer identity together with the
// wall clock and random bytes. The invoking program's identifier is
// deliberately not part of the input; the protocol mixes it in during its
// own address derivation. Seeds must never be reused: a repeated seed maps
// to the same derived address and the creation would collide on chain.
func NewAddressSeed(payer ed25519.PublicKey) ([32]byte, error) {
	var randomness [32]byte
	if _, err := rand.Read(randomness[:]); err != nil {
		return [32]byte{}, errors.Wrap(err, "error reading randomness")
	}

	var nanos [8]byte
	binary.LittleEndian.PutUint64(nanos[:], uint64(time.Now().UnixNano()))

	h := sha256.New()
	_, _ = h.Write(payer)
	_, _ = h.Write(nanos[:])
	_, _ = h.Write(randomness[:])

	var seed [32]byte
	copy(seed[:], h.Sum(nil))
	return seed, nil
}

// DeriveCompressedAddress mirrors the protocol's address derivation closely
// enough for proof requests: the seed, the target address tree, and the
// invoking program identifier are hashed into a field-sized value. The
// leading byte is zeroed so the result fits the proving system's field.
func DeriveCompressedAddress(seed [32]byte, addressTree, program ed25519.PublicKey) [32]byte {
	h := sha256.New()
	_, _ = h.Write(seed[:])
	_, _ = h.Write(addressTree)
	_, _ = h.Write(program)

	var address [32]byte
	copy(address[:], h.Sum(nil))
	address[0] = 0
	return address
}
