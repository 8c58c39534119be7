package account_compression

import (
	"github.com/mr-tron/base58"
)

func putDiscriminator(dst []byte, v []byte, offset *int) {
	copy(dst[*offset:], v)
	*offset += 8
}

func putKey(dst []byte, v []byte, offset *int) {
	copy(dst[*offset:], v)
	*offset += 32
}

func getDiscriminator(src []byte, dst *[]byte, offset *int) {
	*dst = make([]byte, 8)
	copy(*dst, src[*offset:])
	*offset += 8
}

func getKey(src []byte, dst *[]byte, offset *int) {
	*dst = make([]byte, 32)
	copy(*dst, src[*offset:])
	*offset += 32
}

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
