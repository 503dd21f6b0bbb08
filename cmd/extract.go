package cmd

import (
	"errors"
	"fmt"
	"os"

	"archrypt/internal/configs"
	aerrors "archrypt/internal/errors"
	"archrypt/internal/ui"
	"archrypt/internal/workflows"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	extractOutput     string
	extractPrivateKey string
)

var extractCmd = &cobra.Command{
	Use:   "extract [container]",
	Short: "Unpacks an encrypted .acrp container into a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting extract command")
		s, cleanup := startSpinner("Decrypting and unpacking...")
		defer cleanup()

		privateKeyPath := extractPrivateKey
		if privateKeyPath == "" {
			Logger.Debugf("No --private-key flag, checking registry default")
			registry, err := configs.LoadRegistry()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to load key registry: %v", err)
			}
			defaultPath, ok := registry.DefaultPrivateKeyPath()
			if !ok {
				s.FinalMSG = ui.Error.Sprint("✗") + " No private key specified and no default registered\n" +
					ui.Info.Sprint("→") + " Pass " + ui.Code.Sprint("--private-key") + " or register one with " +
					ui.Code.Sprint("archrypt privkey add <path>")
				return aerrors.ErrNoPrivateKey
			}
			privateKeyPath = defaultPath
		}
		Logger.Debugf("Using private key: %s", privateKeyPath)

		opts := workflows.ExtractOptions{
			InputPath:      args[0],
			OutputDir:      extractOutput,
			PrivateKeyPath: privateKeyPath,
			Observer:       newSpinnerObserver(s, "Decrypting and unpacking..."),
		}

		result, err := workflows.Extract(cmd.Context(), opts)
		if errors.Is(err, aerrors.ErrPassphraseRequired) {
			passphrase, promptErr := promptPassphrase(s, privateKeyPath)
			if promptErr != nil {
				return Logger.ErrorfAndReturn("failed to read passphrase: %v", promptErr)
			}
			opts.PrivateKeyPassphrase = passphrase
			result, err = workflows.Extract(cmd.Context(), opts)
		}
		if err != nil {
			Logger.Errorf("Extract failed: %v", err)
			s.FinalMSG = extractFailureMessage(err)
			return err
		}

		Logger.Infof("Extract command completed: %d files written", result.FileCount)
		s.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Extracted %d files into ", result.FileCount) +
			ui.Path.Sprint(result.OutputDir)
		return nil
	},
}

// promptPassphrase pauses the spinner and reads a passphrase from the
// terminal without echoing it.
func promptPassphrase(s *spinner.Spinner, keyPath string) ([]byte, error) {
	if !verbose && !debug {
		s.Stop()
	}
	fmt.Printf("Enter passphrase for %s: ", ui.Path.Sprint(keyPath))
	passphrase, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if !verbose && !debug {
		s.Start()
	}
	return passphrase, err
}

// extractFailureMessage maps decryption failures to actionable messages.
func extractFailureMessage(err error) string {
	switch {
	case errors.Is(err, aerrors.ErrKeyUnwrapFailed):
		return ui.Error.Sprint("✗") + " This private key cannot open the container\n" +
			ui.Info.Sprint("→") + " Was it encrypted for a different key pair?\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	case errors.Is(err, aerrors.ErrAuthenticationFailed):
		return ui.Error.Sprint("✗") + " The container failed authentication\n" +
			ui.Info.Sprint("→") + " It was modified, truncated, or encrypted for a different key pair\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	default:
		return ui.Error.Sprint("✗") + " Failed to extract the container\n" +
			ui.Error.Sprint("Error: ") + err.Error()
	}
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", ".", "directory to extract into")
	extractCmd.Flags().StringVarP(&extractPrivateKey, "private-key", "k", "", "path to the private key used for decryption")
}
