package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"archrypt/internal/archive"
	"archrypt/internal/crypto"
)

// ExtractOptions configures the extract workflow.
type ExtractOptions struct {
	// InputPath is the container file to open. Must end in .acrp.
	InputPath string

	// OutputDir is the directory the archive is unpacked into. It is
	// created if absent.
	OutputDir string

	// PrivateKeyPath is the file holding the recipient's RSA private key.
	PrivateKeyPath string

	// PrivateKeyPassphrase decrypts a passphrase-protected OpenSSH private
	// key. Nil for unprotected keys.
	PrivateKeyPassphrase []byte

	// Observer receives progress signals. Nil means no reporting.
	Observer Observer
}

// ExtractResult contains the outcome of an extract operation.
type ExtractResult struct {
	// OutputDir is the absolute path of the directory written to.
	OutputDir string

	// FileCount is the number of files written.
	FileCount int
}

// Extract opens a container and unpacks its archive under the output
// directory.
//
// The input extension is validated before any other work. Decryption
// failures (ErrKeyUnwrapFailed, ErrAuthenticationFailed) abort the run
// before anything is written; extraction itself is not transactional, so
// a write failure part way through leaves already-written entries on disk.
func Extract(ctx context.Context, opts ExtractOptions) (*ExtractResult, error) {
	if err := CheckExtension(opts.InputPath); err != nil {
		return nil, err
	}

	priv, err := crypto.LoadPrivateKey(opts.PrivateKeyPath, opts.PrivateKeyPassphrase)
	if err != nil {
		return nil, fmt.Errorf("loading private key: %w", err)
	}

	obs := opts.Observer
	if obs == nil {
		obs = NopObserver{}
	}

	data, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("reading container: %w", err)
	}

	nonce, wrappedKey, ciphertext, err := crypto.DecodeContainer(data)
	if err != nil {
		return nil, err
	}

	raw, err := crypto.Open(nonce, wrappedKey, ciphertext, priv)
	if err != nil {
		return nil, err
	}

	// Entry count is only knowable after decryption, so the observer's
	// total includes the already-finished cryptographic stage.
	total, err := archive.CountEntries(raw)
	if err != nil {
		return nil, err
	}
	obs.Begin(total + 1)
	obs.Advance()

	written, err := archive.Extract(raw, opts.OutputDir, obs.Advance)
	if err != nil {
		return nil, fmt.Errorf("extracting archive: %w", err)
	}
	obs.End()

	absDir, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		absDir = opts.OutputDir
	}
	return &ExtractResult{
		OutputDir: absDir,
		FileCount: written,
	}, nil
}
