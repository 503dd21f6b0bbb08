package workflows

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/binary"
	"encoding/pem"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"archrypt/internal/crypto"
	aerrors "archrypt/internal/errors"
)

// writeTestKeyPair generates a 2048-bit RSA key pair and writes both halves
// as PEM files, returning their paths.
func writeTestKeyPair(t *testing.T) (publicPath, privatePath string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}

	dir := t.TempDir()

	privatePath = filepath.Join(dir, "key.pem")
	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	if err := os.WriteFile(privatePath, privPEM, 0600); err != nil {
		t.Fatalf("failed to write private key: %v", err)
	}

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("failed to marshal public key: %v", err)
	}
	publicPath = filepath.Join(dir, "key.pub")
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	if err := os.WriteFile(publicPath, pubPEM, 0600); err != nil {
		t.Fatalf("failed to write public key: %v", err)
	}

	return publicPath, privatePath
}

// writeScenarioTree creates notes.txt plus docs/a.txt and docs/b.txt and
// returns the target paths to compress.
func writeScenarioTree(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644); err != nil {
		t.Fatalf("failed to write notes.txt: %v", err)
	}
	docs := filepath.Join(dir, "docs")
	if err := os.MkdirAll(docs, 0755); err != nil {
		t.Fatalf("failed to create docs: %v", err)
	}
	if err := os.WriteFile(filepath.Join(docs, "a.txt"), []byte("alpha"), 0644); err != nil {
		t.Fatalf("failed to write a.txt: %v", err)
	}
	if err := os.WriteFile(filepath.Join(docs, "b.txt"), []byte("bravo"), 0644); err != nil {
		t.Fatalf("failed to write b.txt: %v", err)
	}

	return []string{filepath.Join(dir, "notes.txt"), docs}
}

// countingObserver records progress signals for assertions.
type countingObserver struct {
	began    bool
	total    int
	advances int
	ended    bool
}

func (o *countingObserver) Begin(total int) { o.began = true; o.total = total }
func (o *countingObserver) Advance()        { o.advances++ }
func (o *countingObserver) End()            { o.ended = true }

func TestCompressExtractScenario(t *testing.T) {
	publicPath, privatePath := writeTestKeyPair(t)
	targets := writeScenarioTree(t)
	outPath := filepath.Join(t.TempDir(), "out.acrp")

	compressObs := &countingObserver{}
	result, err := Compress(context.Background(), CompressOptions{
		OutputPath:    outPath,
		TargetPaths:   targets,
		PublicKeyPath: publicPath,
		Observer:      compressObs,
	})
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if result.FileCount != 3 {
		t.Errorf("expected 3 files packed, got %d", result.FileCount)
	}
	if !compressObs.began || compressObs.total != 4 {
		t.Errorf("expected Begin(4), got began=%t total=%d", compressObs.began, compressObs.total)
	}
	if compressObs.advances != 4 {
		t.Errorf("expected 4 advances (3 files + crypto stage), got %d", compressObs.advances)
	}
	if !compressObs.ended {
		t.Error("observer never received End")
	}

	outDir := filepath.Join(t.TempDir(), "extracted")
	extractObs := &countingObserver{}
	extracted, err := Extract(context.Background(), ExtractOptions{
		InputPath:      outPath,
		OutputDir:      outDir,
		PrivateKeyPath: privatePath,
		Observer:       extractObs,
	})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if extracted.FileCount != 3 {
		t.Errorf("expected 3 files extracted, got %d", extracted.FileCount)
	}
	if extractObs.total != 4 || extractObs.advances != 4 || !extractObs.ended {
		t.Errorf("unexpected extract progress: %+v", extractObs)
	}

	want := map[string]string{
		"notes.txt":  "hello",
		"docs/a.txt": "alpha",
		"docs/b.txt": "bravo",
	}
	for name, content := range want {
		got, err := os.ReadFile(filepath.Join(outDir, filepath.FromSlash(name)))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if string(got) != content {
			t.Errorf("%s: got %q, want %q", name, got, content)
		}
	}
}

func TestCompressRunsWithNoObserver(t *testing.T) {
	publicPath, privatePath := writeTestKeyPair(t)
	targets := writeScenarioTree(t)
	outPath := filepath.Join(t.TempDir(), "out.acrp")

	if _, err := Compress(context.Background(), CompressOptions{
		OutputPath:    outPath,
		TargetPaths:   targets,
		PublicKeyPath: publicPath,
	}); err != nil {
		t.Fatalf("Compress without observer failed: %v", err)
	}

	if _, err := Extract(context.Background(), ExtractOptions{
		InputPath:      outPath,
		OutputDir:      filepath.Join(t.TempDir(), "out"),
		PrivateKeyPath: privatePath,
	}); err != nil {
		t.Fatalf("Extract without observer failed: %v", err)
	}
}

func TestCompressRejectsWrongExtension(t *testing.T) {
	publicPath, _ := writeTestKeyPair(t)
	targets := writeScenarioTree(t)
	outPath := filepath.Join(t.TempDir(), "out.zip")

	obs := &countingObserver{}
	_, err := Compress(context.Background(), CompressOptions{
		OutputPath:    outPath,
		TargetPaths:   targets,
		PublicKeyPath: publicPath,
		Observer:      obs,
	})
	if !errors.Is(err, aerrors.ErrInvalidExtension) {
		t.Fatalf("expected ErrInvalidExtension, got %v", err)
	}
	if obs.began || obs.advances > 0 {
		t.Error("extension gate must fire before any work")
	}
	if _, statErr := os.Stat(outPath); statErr == nil {
		t.Error("no output file may exist after a rejected compress")
	}
}

func TestCompressAcceptsUppercaseExtension(t *testing.T) {
	publicPath, _ := writeTestKeyPair(t)
	targets := writeScenarioTree(t)
	outPath := filepath.Join(t.TempDir(), "OUT.ACRP")

	if _, err := Compress(context.Background(), CompressOptions{
		OutputPath:    outPath,
		TargetPaths:   targets,
		PublicKeyPath: publicPath,
	}); err != nil {
		t.Fatalf("Compress failed for uppercase extension: %v", err)
	}
}

func TestExtractRejectsWrongExtension(t *testing.T) {
	_, privatePath := writeTestKeyPair(t)
	input := filepath.Join(t.TempDir(), "container.bin")
	if err := os.WriteFile(input, []byte("irrelevant"), 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	_, err := Extract(context.Background(), ExtractOptions{
		InputPath:      input,
		OutputDir:      t.TempDir(),
		PrivateKeyPath: privatePath,
	})
	if !errors.Is(err, aerrors.ErrInvalidExtension) {
		t.Errorf("expected ErrInvalidExtension, got %v", err)
	}
}

func TestExtractRejectsMalformedContainer(t *testing.T) {
	_, privatePath := writeTestKeyPair(t)
	input := filepath.Join(t.TempDir(), "short.acrp")
	if err := os.WriteFile(input, []byte{1, 2, 3}, 0644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	_, err := Extract(context.Background(), ExtractOptions{
		InputPath:      input,
		OutputDir:      t.TempDir(),
		PrivateKeyPath: privatePath,
	})
	if !errors.Is(err, aerrors.ErrMalformedContainer) {
		t.Errorf("expected ErrMalformedContainer, got %v", err)
	}
}

func TestExtractRejectsWrongKey(t *testing.T) {
	publicPath, _ := writeTestKeyPair(t)
	_, wrongPrivatePath := writeTestKeyPair(t)
	targets := writeScenarioTree(t)
	outPath := filepath.Join(t.TempDir(), "out.acrp")

	if _, err := Compress(context.Background(), CompressOptions{
		OutputPath:    outPath,
		TargetPaths:   targets,
		PublicKeyPath: publicPath,
	}); err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	parent := t.TempDir()
	outDir := filepath.Join(parent, "out")
	_, err := Extract(context.Background(), ExtractOptions{
		InputPath:      outPath,
		OutputDir:      outDir,
		PrivateKeyPath: wrongPrivatePath,
	})
	if !errors.Is(err, aerrors.ErrKeyUnwrapFailed) && !errors.Is(err, aerrors.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrKeyUnwrapFailed or ErrAuthenticationFailed, got %v", err)
	}
	if _, statErr := os.Stat(outDir); statErr == nil {
		t.Error("nothing may be written after a failed decryption")
	}
}

func TestExtractRejectsTamperedContainer(t *testing.T) {
	publicPath, privatePath := writeTestKeyPair(t)
	targets := writeScenarioTree(t)
	outPath := filepath.Join(t.TempDir(), "out.acrp")

	if _, err := Compress(context.Background(), CompressOptions{
		OutputPath:    outPath,
		TargetPaths:   targets,
		PublicKeyPath: publicPath,
	}); err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read container: %v", err)
	}
	// Flip a byte inside the ciphertext region, past the wrapped key.
	keyLen := int(binary.BigEndian.Uint16(data[crypto.NonceSize:]))
	data[crypto.NonceSize+2+keyLen] ^= 0x01
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		t.Fatalf("failed to write tampered container: %v", err)
	}

	parent := t.TempDir()
	outDir := filepath.Join(parent, "out")
	_, err = Extract(context.Background(), ExtractOptions{
		InputPath:      outPath,
		OutputDir:      outDir,
		PrivateKeyPath: privatePath,
	})
	if !errors.Is(err, aerrors.ErrAuthenticationFailed) {
		t.Fatalf("expected ErrAuthenticationFailed, got %v", err)
	}
	if _, statErr := os.Stat(outDir); statErr == nil {
		t.Error("nothing may be written after a failed authentication")
	}
}

func TestContainerWireFormat(t *testing.T) {
	publicPath, _ := writeTestKeyPair(t)
	targets := writeScenarioTree(t)
	outPath := filepath.Join(t.TempDir(), "out.acrp")

	if _, err := Compress(context.Background(), CompressOptions{
		OutputPath:    outPath,
		TargetPaths:   targets,
		PublicKeyPath: publicPath,
	}); err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read container: %v", err)
	}

	// A 2048-bit key wraps to exactly 256 bytes.
	keyLen := binary.BigEndian.Uint16(data[crypto.NonceSize:])
	if keyLen != 256 {
		t.Errorf("wrapped key length field is %d, want 256", keyLen)
	}
	if len(data) <= crypto.NonceSize+2+int(keyLen) {
		t.Error("container has no ciphertext after the wrapped key")
	}
}

func TestCompressCleansUpStaging(t *testing.T) {
	publicPath, _ := writeTestKeyPair(t)
	targets := writeScenarioTree(t)
	outPath := filepath.Join(t.TempDir(), "out.acrp")

	if _, err := Compress(context.Background(), CompressOptions{
		OutputPath:    outPath,
		TargetPaths:   targets,
		PublicKeyPath: publicPath,
	}); err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	staged, err := filepath.Glob(filepath.Join(os.TempDir(), "archrypt-*.zip"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(staged) != 0 {
		t.Errorf("staging files left behind: %v", staged)
	}
}

func TestCheckExtension(t *testing.T) {
	cases := []struct {
		path string
		ok   bool
	}{
		{"out.acrp", true},
		{"OUT.ACRP", true},
		{"dir/out.acrp", true},
		{"out.zip", false},
		{"out", false},
		{"out.acrp.bak", false},
	}
	for _, tc := range cases {
		err := CheckExtension(tc.path)
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tc.path, err)
		}
		if !tc.ok && !errors.Is(err, aerrors.ErrInvalidExtension) {
			t.Errorf("%s: expected ErrInvalidExtension, got %v", tc.path, err)
		}
	}
}
