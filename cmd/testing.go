package cmd

import (
	logger "archrypt/internal/logging"

	"github.com/spf13/pflag"
)

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	compressOutput = ""
	compressPublicKey = ""
	extractOutput = "."
	extractPrivateKey = ""
	resetCobraFlagState()
}

// resetCobraFlagState clears the Changed marker cobra sets on parsed flags,
// so a command can be executed again with fresh arguments.
func resetCobraFlagState() {
	for _, c := range RootCmd.Commands() {
		c.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
