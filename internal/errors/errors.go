package errors

import "errors"

// Pipeline errors indicate a compress or extract run was rejected before any
// work was performed.
var (
	// ErrInvalidExtension indicates the container path does not carry the .acrp suffix.
	ErrInvalidExtension = errors.New("path does not have the container extension")

	// ErrInvalidTarget indicates a target path is neither a regular file nor a directory.
	ErrInvalidTarget = errors.New("target is neither a file nor a directory")
)

// Archive errors indicate issues while packing or unpacking entries.
var (
	// ErrDuplicateEntry indicates two targets produced the same archive entry name.
	ErrDuplicateEntry = errors.New("duplicate entry name in archive")

	// ErrUnsafePath indicates an entry name is absolute or contains a ".." segment.
	ErrUnsafePath = errors.New("entry name escapes the output directory")
)

// Container errors indicate a malformed or undecryptable container file.
var (
	// ErrMalformedContainer indicates the container is too short or its
	// wrapped-key length field is inconsistent with the data.
	ErrMalformedContainer = errors.New("malformed container")

	// ErrKeyUnwrapFailed indicates the wrapped content key could not be
	// decrypted with the supplied private key.
	ErrKeyUnwrapFailed = errors.New("failed to unwrap content key")

	// ErrAuthenticationFailed indicates the AEAD tag check failed: the
	// ciphertext was tampered with, truncated, or decrypted with the wrong key.
	ErrAuthenticationFailed = errors.New("ciphertext authentication failed")

	// ErrKeyTooSmall indicates the public key modulus cannot hold the
	// content key plus padding overhead.
	ErrKeyTooSmall = errors.New("public key too small to wrap content key")
)

// Key errors indicate issues loading or selecting key material.
var (
	// ErrKeyParse indicates a key file could not be decoded as a supported format.
	ErrKeyParse = errors.New("invalid or unsupported key format")

	// ErrPassphraseRequired indicates an OpenSSH private key is
	// passphrase-protected and no passphrase was supplied.
	ErrPassphraseRequired = errors.New("private key is passphrase-protected")

	// ErrNoPublicKey indicates no public key was supplied and the registry
	// has no default.
	ErrNoPublicKey = errors.New("no public key specified and no default registered")

	// ErrNoPrivateKey indicates no private key was supplied and the registry
	// has no default.
	ErrNoPrivateKey = errors.New("no private key specified and no default registered")

	// ErrKeyIndexOutOfRange indicates a registry index does not refer to a
	// registered key.
	ErrKeyIndexOutOfRange = errors.New("key index out of range")
)
