package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"archrypt/internal/archive"
	"archrypt/internal/crypto"
	aerrors "archrypt/internal/errors"
)

// ContainerExtension is the filename suffix every container carries.
const ContainerExtension = ".acrp"

// CompressOptions configures the compress workflow.
type CompressOptions struct {
	// OutputPath is where the container is written. Must end in .acrp.
	OutputPath string

	// TargetPaths are the files and directories to pack, in order.
	TargetPaths []string

	// PublicKeyPath is the PEM file holding the recipient's RSA public key.
	PublicKeyPath string

	// Observer receives progress signals. Nil means no reporting.
	Observer Observer
}

// CompressResult contains the outcome of a compress operation.
type CompressResult struct {
	// OutputPath is the absolute path of the written container.
	OutputPath string

	// FileCount is the number of files packed into the container.
	FileCount int

	// ContainerSize is the size of the written container in bytes.
	ContainerSize int64
}

// Compress packs the targets into an archive, seals it for the recipient,
// and writes the resulting container to the output path.
//
// The output extension is validated before any other work. The raw archive
// is staged in a temporary file that is removed on every exit path, and
// the container itself is written to a temporary file in the destination
// directory and renamed into place, so a failed run never leaves a partial
// container at the output path.
//
// Returns ErrInvalidExtension if the output path lacks the .acrp suffix,
// ErrInvalidTarget if a target is neither a file nor a directory, and
// ErrKeyTooSmall if the public key cannot wrap the content key.
func Compress(ctx context.Context, opts CompressOptions) (*CompressResult, error) {
	if err := CheckExtension(opts.OutputPath); err != nil {
		return nil, err
	}

	pub, err := crypto.LoadPublicKey(opts.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("loading public key: %w", err)
	}

	obs := opts.Observer
	if obs == nil {
		obs = NopObserver{}
	}

	total, err := archive.CountFiles(opts.TargetPaths)
	if err != nil {
		return nil, fmt.Errorf("counting target files: %w", err)
	}
	obs.Begin(total + 1)

	stagedPath, err := archive.Build(opts.TargetPaths, obs.Advance)
	if err != nil {
		return nil, fmt.Errorf("building archive: %w", err)
	}
	defer os.Remove(stagedPath)

	raw, err := os.ReadFile(stagedPath)
	if err != nil {
		return nil, fmt.Errorf("reading staged archive: %w", err)
	}

	nonce, wrappedKey, ciphertext, err := crypto.Seal(raw, pub)
	if err != nil {
		return nil, fmt.Errorf("sealing archive: %w", err)
	}

	container, err := crypto.EncodeContainer(nonce, wrappedKey, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("encoding container: %w", err)
	}

	if err := writeContainer(opts.OutputPath, container); err != nil {
		return nil, err
	}
	obs.Advance()
	obs.End()

	absOut, err := filepath.Abs(opts.OutputPath)
	if err != nil {
		absOut = opts.OutputPath
	}
	return &CompressResult{
		OutputPath:    absOut,
		FileCount:     total,
		ContainerSize: int64(len(container)),
	}, nil
}

// writeContainer writes the container next to its final path and renames
// it into place, so a crash mid-write cannot leave a truncated container
// under the output name.
func writeContainer(outputPath string, container []byte) error {
	dir := filepath.Dir(outputPath)
	tmp, err := os.CreateTemp(dir, ".archrypt-*")
	if err != nil {
		return fmt.Errorf("creating container file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(container); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing container: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing container: %w", err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("placing container at %s: %w", outputPath, err)
	}
	return nil
}

// CheckExtension validates that a path carries the container extension.
// The comparison is case-insensitive and used identically on the compress
// output path and the extract input path.
func CheckExtension(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ContainerExtension) {
		return fmt.Errorf("%s must end in %s: %w", path, ContainerExtension, aerrors.ErrInvalidExtension)
	}
	return nil
}
