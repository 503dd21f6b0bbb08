package configs

import (
	"fmt"
	"os"
	"path/filepath"

	aerrors "archrypt/internal/errors"
)

// Registry is the persisted list of known key file paths. It is plain
// data: commands load it, mutate it, and save it; the encryption core
// never reads it.
type Registry struct {
	PublicKeys        []string `toml:"public_keys"`
	DefaultPublicKey  *int     `toml:"default_public_key,omitempty"`
	PrivateKeys       []string `toml:"private_keys"`
	DefaultPrivateKey *int     `toml:"default_private_key,omitempty"`
}

// LoadRegistry loads the key registry from the user's config file.
// A missing file yields an empty registry, not an error.
func LoadRegistry() (*Registry, error) {
	configPath := UserArchryptSettings.UserConfigPath

	reg := &Registry{}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return reg, nil
	}

	if err := LoadTOML(configPath, reg); err != nil {
		return nil, fmt.Errorf("failed to load key registry: %w", err)
	}
	return reg, nil
}

// Save writes the registry back to the user's config file.
func (r *Registry) Save() error {
	configPath := UserArchryptSettings.UserConfigPath

	if err := SaveTOML(configPath, r); err != nil {
		return fmt.Errorf("failed to save key registry: %w", err)
	}
	return nil
}

// AddPublicKey registers a public key path, made absolute. The first key
// added becomes the default.
func (r *Registry) AddPublicKey(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	r.PublicKeys = append(r.PublicKeys, abs)
	if r.DefaultPublicKey == nil {
		r.DefaultPublicKey = intPtr(0)
	}
	return abs, nil
}

// AddPrivateKey registers a private key path, made absolute. The first key
// added becomes the default.
func (r *Registry) AddPrivateKey(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	r.PrivateKeys = append(r.PrivateKeys, abs)
	if r.DefaultPrivateKey == nil {
		r.DefaultPrivateKey = intPtr(0)
	}
	return abs, nil
}

// SetDefaultPublicKey marks the public key at index as the default.
func (r *Registry) SetDefaultPublicKey(index int) error {
	if index < 0 || index >= len(r.PublicKeys) {
		return fmt.Errorf("index %d with %d public keys registered: %w",
			index, len(r.PublicKeys), aerrors.ErrKeyIndexOutOfRange)
	}
	r.DefaultPublicKey = intPtr(index)
	return nil
}

// SetDefaultPrivateKey marks the private key at index as the default.
func (r *Registry) SetDefaultPrivateKey(index int) error {
	if index < 0 || index >= len(r.PrivateKeys) {
		return fmt.Errorf("index %d with %d private keys registered: %w",
			index, len(r.PrivateKeys), aerrors.ErrKeyIndexOutOfRange)
	}
	r.DefaultPrivateKey = intPtr(index)
	return nil
}

// RemovePublicKey deletes the public key at index. Removing the default
// clears the default; removing an earlier key shifts the default down.
func (r *Registry) RemovePublicKey(index int) error {
	if index < 0 || index >= len(r.PublicKeys) {
		return fmt.Errorf("index %d with %d public keys registered: %w",
			index, len(r.PublicKeys), aerrors.ErrKeyIndexOutOfRange)
	}
	r.PublicKeys = append(r.PublicKeys[:index], r.PublicKeys[index+1:]...)
	r.DefaultPublicKey = adjustDefault(r.DefaultPublicKey, index)
	return nil
}

// RemovePrivateKey deletes the private key at index. Removing the default
// clears the default; removing an earlier key shifts the default down.
func (r *Registry) RemovePrivateKey(index int) error {
	if index < 0 || index >= len(r.PrivateKeys) {
		return fmt.Errorf("index %d with %d private keys registered: %w",
			index, len(r.PrivateKeys), aerrors.ErrKeyIndexOutOfRange)
	}
	r.PrivateKeys = append(r.PrivateKeys[:index], r.PrivateKeys[index+1:]...)
	r.DefaultPrivateKey = adjustDefault(r.DefaultPrivateKey, index)
	return nil
}

// ClearPublicKeys removes every registered public key and the default.
func (r *Registry) ClearPublicKeys() {
	r.PublicKeys = nil
	r.DefaultPublicKey = nil
}

// ClearPrivateKeys removes every registered private key and the default.
func (r *Registry) ClearPrivateKeys() {
	r.PrivateKeys = nil
	r.DefaultPrivateKey = nil
}

// DefaultPublicKeyPath returns the default public key path, if one is set.
func (r *Registry) DefaultPublicKeyPath() (string, bool) {
	if r.DefaultPublicKey == nil || *r.DefaultPublicKey >= len(r.PublicKeys) {
		return "", false
	}
	return r.PublicKeys[*r.DefaultPublicKey], true
}

// DefaultPrivateKeyPath returns the default private key path, if one is set.
func (r *Registry) DefaultPrivateKeyPath() (string, bool) {
	if r.DefaultPrivateKey == nil || *r.DefaultPrivateKey >= len(r.PrivateKeys) {
		return "", false
	}
	return r.PrivateKeys[*r.DefaultPrivateKey], true
}

func adjustDefault(def *int, removed int) *int {
	switch {
	case def == nil:
		return nil
	case *def == removed:
		return nil
	case *def > removed:
		return intPtr(*def - 1)
	default:
		return def
	}
}

func intPtr(i int) *int { return &i }
