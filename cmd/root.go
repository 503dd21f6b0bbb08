package cmd

import (
	"fmt"

	logger "archrypt/internal/logging"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "archrypt",
		Short: "archrypt - Pack files into an encrypted, portable container",
		Long: `archrypt packs files and directories into a single archive and protects
it with hybrid public-key encryption, producing a self-contained .acrp
container. Only the holder of the matching private key can extract it.

Usage:
  archrypt <command> [flags]

Available Commands:
  compress   Pack targets into an encrypted .acrp container
  extract    Unpack an .acrp container into a directory
  pubkey     Manage registered public keys
  privkey    Manage registered private keys

Run 'archrypt help <command>' for more details on a specific command.
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing archrypt with verbose=%t, debug=%t", verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			banner := figure.NewColorFigure("archrypt", "alligator2", "green", true)
			banner.Print()
			fmt.Println("Run 'archrypt --help' to see available commands.")
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(compressCmd)
	RootCmd.AddCommand(extractCmd)
	RootCmd.AddCommand(pubkeyCmd)
	RootCmd.AddCommand(privkeyCmd)
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}
