package crypto

import (
	"encoding/binary"
	"fmt"
	"math"

	aerrors "archrypt/internal/errors"
)

// Container layout, in order:
//
//	nonce            12 bytes
//	wrappedKeyLength  2 bytes, big-endian unsigned
//	wrappedKey       wrappedKeyLength bytes
//	ciphertext       remainder, includes the AEAD tag
const containerHeaderSize = NonceSize + 2

// EncodeContainer serializes a sealed archive into the container wire format.
func EncodeContainer(nonce, wrappedKey, ciphertext []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d", NonceSize, len(nonce))
	}
	if len(wrappedKey) > math.MaxUint16 {
		return nil, fmt.Errorf("wrapped key of %d bytes exceeds the length field", len(wrappedKey))
	}

	out := make([]byte, 0, containerHeaderSize+len(wrappedKey)+len(ciphertext))
	out = append(out, nonce...)
	out = binary.BigEndian.AppendUint16(out, uint16(len(wrappedKey)))
	out = append(out, wrappedKey...)
	out = append(out, ciphertext...)
	return out, nil
}

// DecodeContainer splits container bytes back into nonce, wrapped key, and
// ciphertext. It performs no cryptographic validation; that happens in Open.
//
// Returns ErrMalformedContainer if the input is shorter than the fixed header
// or the wrapped-key length field points past the end of the data.
func DecodeContainer(data []byte) (nonce, wrappedKey, ciphertext []byte, err error) {
	if len(data) < containerHeaderSize {
		return nil, nil, nil, fmt.Errorf("container is %d bytes, need at least %d: %w",
			len(data), containerHeaderSize, aerrors.ErrMalformedContainer)
	}

	keyLen := int(binary.BigEndian.Uint16(data[NonceSize:containerHeaderSize]))
	if containerHeaderSize+keyLen > len(data) {
		return nil, nil, nil, fmt.Errorf("wrapped key length %d exceeds container size %d: %w",
			keyLen, len(data), aerrors.ErrMalformedContainer)
	}

	nonce = data[:NonceSize]
	wrappedKey = data[containerHeaderSize : containerHeaderSize+keyLen]
	ciphertext = data[containerHeaderSize+keyLen:]
	return nonce, wrappedKey, ciphertext, nil
}
