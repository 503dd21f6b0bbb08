package crypto

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	aerrors "archrypt/internal/errors"

	"golang.org/x/crypto/ssh"
)

// LoadPublicKey loads an RSA public key from a PEM file.
// Both PKIX ("PUBLIC KEY") and PKCS#1 ("RSA PUBLIC KEY") encodings are accepted.
func LoadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in %s: %w", path, aerrors.ErrKeyParse)
	}

	switch block.Type {
	case "PUBLIC KEY":
		pub, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing public key from %s: %w: %v", path, aerrors.ErrKeyParse, err)
		}
		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("%s is not an RSA public key: %w", path, aerrors.ErrKeyParse)
		}
		return rsaPub, nil
	case "RSA PUBLIC KEY":
		rsaPub, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing public key from %s: %w: %v", path, aerrors.ErrKeyParse, err)
		}
		return rsaPub, nil
	default:
		return nil, fmt.Errorf("unsupported PEM block %q in %s: %w", block.Type, path, aerrors.ErrKeyParse)
	}
}

// LoadPrivateKey loads an RSA private key from a PEM file.
//
// PKCS#1 ("RSA PRIVATE KEY"), PKCS#8 ("PRIVATE KEY"), and OpenSSH
// ("OPENSSH PRIVATE KEY") encodings are accepted. The passphrase is only
// consulted for passphrase-protected OpenSSH keys; pass nil otherwise.
//
// Returns ErrPassphraseRequired if the key is protected and no passphrase
// was supplied.
func LoadPrivateKey(path string, passphrase []byte) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fmt.Errorf("no PEM block in %s: %w", path, aerrors.ErrKeyParse)
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing private key from %s: %w: %v", path, aerrors.ErrKeyParse, err)
		}
		return key, nil
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing private key from %s: %w: %v", path, aerrors.ErrKeyParse, err)
		}
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%s is not an RSA private key: %w", path, aerrors.ErrKeyParse)
		}
		return rsaKey, nil
	case "OPENSSH PRIVATE KEY":
		return parseOpenSSHPrivateKey(data, passphrase)
	default:
		return nil, fmt.Errorf("unsupported PEM block %q in %s: %w", block.Type, path, aerrors.ErrKeyParse)
	}
}

// parseOpenSSHPrivateKey parses an OpenSSH-format RSA private key,
// decrypting it with the passphrase when one is supplied.
func parseOpenSSHPrivateKey(pemBytes, passphrase []byte) (*rsa.PrivateKey, error) {
	var (
		raw interface{}
		err error
	)
	if len(passphrase) > 0 {
		raw, err = ssh.ParseRawPrivateKeyWithPassphrase(pemBytes, passphrase)
	} else {
		raw, err = ssh.ParseRawPrivateKey(pemBytes)
	}
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			return nil, aerrors.ErrPassphraseRequired
		}
		return nil, fmt.Errorf("parsing OpenSSH private key: %w: %v", aerrors.ErrKeyParse, err)
	}

	rsaKey, ok := raw.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("unsupported OpenSSH key type %T, only RSA keys can unwrap containers: %w",
			raw, aerrors.ErrKeyParse)
	}
	return rsaKey, nil
}
