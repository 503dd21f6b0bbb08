package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"fmt"
	"io"

	aerrors "archrypt/internal/errors"
)

const (
	// KeySize is the content key size in bytes (AES-256).
	KeySize = 32

	// NonceSize is the AEAD nonce size in bytes (96 bits).
	NonceSize = 12

	// pkcs1v15Overhead is the minimum padding overhead of PKCS#1 v1.5
	// encryption. The recipient key modulus must hold KeySize plus this.
	pkcs1v15Overhead = 11
)

// Seal encrypts plaintext for the holder of the private key matching pub.
//
// A fresh 256-bit content key and a fresh 96-bit nonce are generated per
// call; neither is ever reused. The plaintext is encrypted in one shot with
// AES-256-GCM (no associated data), and the content key is wrapped with
// RSA PKCS#1 v1.5 under pub.
//
// Returns ErrKeyTooSmall if pub cannot hold the wrapped content key.
func Seal(plaintext []byte, pub *rsa.PublicKey) (nonce, wrappedKey, ciphertext []byte, err error) {
	if pub.Size() < KeySize+pkcs1v15Overhead {
		return nil, nil, nil, fmt.Errorf("%d-byte modulus cannot hold a %d-byte key: %w",
			pub.Size(), KeySize, aerrors.ErrKeyTooSmall)
	}

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to generate content key: %w", err)
	}
	defer zero(key)

	nonce = make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	aead, err := newAEAD(key)
	if err != nil {
		return nil, nil, nil, err
	}
	ciphertext = aead.Seal(nil, nonce, plaintext, nil)

	wrappedKey, err = rsa.EncryptPKCS1v15(rand.Reader, pub, key)
	if err != nil {
		if errors.Is(err, rsa.ErrMessageTooLong) {
			return nil, nil, nil, fmt.Errorf("failed to wrap content key: %w", aerrors.ErrKeyTooSmall)
		}
		return nil, nil, nil, fmt.Errorf("failed to wrap content key: %w", err)
	}

	return nonce, wrappedKey, ciphertext, nil
}

// Open recovers the plaintext sealed by Seal.
//
// The wrapped content key is decrypted with priv, then the ciphertext is
// decrypted and authenticated with AES-256-GCM under the recovered key and
// nonce. Returns ErrKeyUnwrapFailed when the key cannot be unwrapped and
// ErrAuthenticationFailed when the AEAD tag check fails; no plaintext is
// ever returned alongside either error.
func Open(nonce, wrappedKey, ciphertext []byte, priv *rsa.PrivateKey) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("nonce must be %d bytes, got %d: %w",
			NonceSize, len(nonce), aerrors.ErrMalformedContainer)
	}

	key, err := rsa.DecryptPKCS1v15(rand.Reader, priv, wrappedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", aerrors.ErrKeyUnwrapFailed, err)
	}
	defer zero(key)

	if len(key) != KeySize {
		return nil, fmt.Errorf("unwrapped key is %d bytes, want %d: %w",
			len(key), KeySize, aerrors.ErrKeyUnwrapFailed)
	}

	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, aerrors.ErrAuthenticationFailed
	}
	return plaintext, nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}
	return aead, nil
}

// zero wipes key material once it is no longer needed.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
