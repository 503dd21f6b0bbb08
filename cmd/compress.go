package cmd

import (
	"fmt"

	"archrypt/internal/configs"
	aerrors "archrypt/internal/errors"
	"archrypt/internal/ui"
	"archrypt/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	compressOutput    string
	compressPublicKey string
)

var compressCmd = &cobra.Command{
	Use:   "compress [targets...]",
	Short: "Packs files and directories into an encrypted .acrp container",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting compress command")
		s, cleanup := startSpinner("Packing and encrypting...")
		defer cleanup()

		publicKeyPath := compressPublicKey
		if publicKeyPath == "" {
			Logger.Debugf("No --public-key flag, checking registry default")
			registry, err := configs.LoadRegistry()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to load key registry: %v", err)
			}
			defaultPath, ok := registry.DefaultPublicKeyPath()
			if !ok {
				s.FinalMSG = ui.Error.Sprint("✗") + " No public key specified and no default registered\n" +
					ui.Info.Sprint("→") + " Pass " + ui.Code.Sprint("--public-key") + " or register one with " +
					ui.Code.Sprint("archrypt pubkey add <path>")
				return aerrors.ErrNoPublicKey
			}
			publicKeyPath = defaultPath
		}
		Logger.Debugf("Using public key: %s", publicKeyPath)

		result, err := workflows.Compress(cmd.Context(), workflows.CompressOptions{
			OutputPath:    compressOutput,
			TargetPaths:   args,
			PublicKeyPath: publicKeyPath,
			Observer:      newSpinnerObserver(s, "Packing and encrypting..."),
		})
		if err != nil {
			Logger.Errorf("Compress failed: %v", err)
			s.FinalMSG = ui.Error.Sprint("✗") + " Failed to create the container\n" +
				ui.Error.Sprint("Error: ") + err.Error()
			return err
		}

		Logger.Infof("Compress command completed: %d files, %d bytes", result.FileCount, result.ContainerSize)
		s.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Packed %d files into ", result.FileCount) +
			ui.Path.Sprint(result.OutputPath) + "\n" +
			ui.Info.Sprint("→") + " Only the matching private key can extract it"
		return nil
	},
}

func init() {
	compressCmd.Flags().StringVarP(&compressOutput, "output", "o", "", "output path for the container (must end in .acrp)")
	compressCmd.Flags().StringVarP(&compressPublicKey, "public-key", "p", "", "path to the public key used for encryption")
	if err := compressCmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}
}
