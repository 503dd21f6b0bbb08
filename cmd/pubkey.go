package cmd

import (
	"fmt"
	"strconv"

	"archrypt/internal/configs"
	"archrypt/internal/ui"

	"github.com/spf13/cobra"
)

var pubkeyCmd = &cobra.Command{
	Use:   "pubkey",
	Short: "Manage registered public keys",
	Long:  `Lists, adds, removes, and selects the default among registered public key paths.`,
}

var pubkeyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered public keys and the current default",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := configs.LoadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load key registry: %v", err)
		}

		if len(registry.PublicKeys) == 0 {
			fmt.Println("No public keys registered.")
			return nil
		}

		fmt.Println("Registered public keys:")
		printKeyList(registry.PublicKeys, registry.DefaultPublicKey)
		return nil
	},
}

var pubkeyAddCmd = &cobra.Command{
	Use:   "add [path]",
	Short: "Add a public key to the registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := configs.LoadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load key registry: %v", err)
		}

		abs, err := registry.AddPublicKey(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("failed to add public key: %v", err)
		}
		if err := registry.Save(); err != nil {
			return Logger.ErrorfAndReturn("failed to save key registry: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Added public key " + ui.Path.Sprint(abs))
		return nil
	},
}

var pubkeyDefaultCmd = &cobra.Command{
	Use:   "default [index]",
	Short: "Set the default public key by index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("invalid index %q: %v", args[0], err)
		}

		registry, err := configs.LoadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load key registry: %v", err)
		}
		if err := registry.SetDefaultPublicKey(index); err != nil {
			return Logger.ErrorfAndReturn("failed to set default public key: %v", err)
		}
		if err := registry.Save(); err != nil {
			return Logger.ErrorfAndReturn("failed to save key registry: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Default public key set to index " + ui.Highlight.Sprint(index))
		return nil
	},
}

var pubkeyRemoveCmd = &cobra.Command{
	Use:   "remove [index]",
	Short: "Remove a public key from the registry by index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("invalid index %q: %v", args[0], err)
		}

		registry, err := configs.LoadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load key registry: %v", err)
		}
		if err := registry.RemovePublicKey(index); err != nil {
			return Logger.ErrorfAndReturn("failed to remove public key: %v", err)
		}
		if err := registry.Save(); err != nil {
			return Logger.ErrorfAndReturn("failed to save key registry: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Removed public key at index " + ui.Highlight.Sprint(index))
		return nil
	},
}

var pubkeyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all registered public keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := configs.LoadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load key registry: %v", err)
		}
		registry.ClearPublicKeys()
		if err := registry.Save(); err != nil {
			return Logger.ErrorfAndReturn("failed to save key registry: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Cleared all registered public keys")
		return nil
	},
}

// printKeyList prints registered key paths with their indices, marking the
// default.
func printKeyList(paths []string, defaultIndex *int) {
	for i, path := range paths {
		marker := ""
		if defaultIndex != nil && *defaultIndex == i {
			marker = " " + ui.Info.Sprint("[default]")
		}
		fmt.Printf("  %d: %s%s\n", i, ui.Path.Sprint(path), marker)
	}
}

func init() {
	pubkeyCmd.AddCommand(pubkeyListCmd)
	pubkeyCmd.AddCommand(pubkeyAddCmd)
	pubkeyCmd.AddCommand(pubkeyDefaultCmd)
	pubkeyCmd.AddCommand(pubkeyRemoveCmd)
	pubkeyCmd.AddCommand(pubkeyClearCmd)
}
