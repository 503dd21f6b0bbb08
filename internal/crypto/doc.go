// Package crypto implements the hybrid cipher and container codec for
// archrypt containers.
//
// # Encryption Architecture
//
// archrypt uses a hybrid encryption scheme:
//
//  1. A random 256-bit content key encrypts the packed archive with
//     AES-256-GCM under a random 96-bit nonce
//  2. The recipient's RSA public key wraps the content key with
//     PKCS#1 v1.5 padding
//  3. The recipient unwraps the content key with their private key, then
//     decrypts and authenticates the archive
//
// Both the content key and the nonce are generated fresh for every Seal
// call and never persisted, so encrypting the same archive twice produces
// different containers.
//
// # Container Format
//
// A container concatenates, in order: the 12-byte nonce, a 2-byte
// big-endian wrapped-key length, the wrapped key, and the ciphertext
// (which carries the GCM tag). EncodeContainer and DecodeContainer are the
// only code that touches this layout.
//
// # Key Material
//
// Key files are supplied by the caller per operation; this package loads
// and parses them but does not generate, rotate, or store keys. PEM
// (PKCS#1, PKCS#8, PKIX) and OpenSSH encodings are supported, including
// passphrase-protected OpenSSH private keys.
//
// # Failure Semantics
//
// Decryption failures are surfaced as ErrKeyUnwrapFailed (wrong or
// mismatched private key) or ErrAuthenticationFailed (tampered or
// truncated ciphertext). Neither is ever downgraded; no partial plaintext
// escapes a failed Open.
package crypto
