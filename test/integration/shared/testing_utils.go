// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and running the CLI against temporary state.
package shared

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"archrypt/cmd"
	"archrypt/internal/configs"
	logger "archrypt/internal/logging"

	"github.com/spf13/cobra"
)

// SetupTestEnvironment points the key registry at a temporary directory and
// resets all command state, restoring everything when the test ends.
func SetupTestEnvironment(t *testing.T, tempUserDir string) {
	t.Helper()

	originalUserSettings := configs.UserArchryptSettings
	configs.UserArchryptSettings = &configs.UserSettings{
		UserConfigPath: filepath.Join(tempUserDir, "config", "config.toml"),
	}

	cmd.ResetGlobalState()

	t.Cleanup(func() {
		configs.UserArchryptSettings = originalUserSettings
		cmd.ResetGlobalState()
	})
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// CreateTestCLI prepares the real root command to run with the given
// arguments and flags.
func CreateTestCLI(args []string, verboseFlag, debugFlag bool) *cobra.Command {
	cmd.SetVerbose(verboseFlag)
	cmd.SetDebug(debugFlag)
	cmd.SetLogger(logger.Logger{
		Verbose: verboseFlag,
		Debug:   debugFlag,
	})

	cmd.RootCmd.SetArgs(args)
	return cmd.RootCmd
}
