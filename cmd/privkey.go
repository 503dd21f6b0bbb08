package cmd

import (
	"fmt"
	"strconv"

	"archrypt/internal/configs"
	"archrypt/internal/ui"

	"github.com/spf13/cobra"
)

var privkeyCmd = &cobra.Command{
	Use:   "privkey",
	Short: "Manage registered private keys",
	Long:  `Lists, adds, removes, and selects the default among registered private key paths.`,
}

var privkeyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered private keys and the current default",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := configs.LoadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load key registry: %v", err)
		}

		if len(registry.PrivateKeys) == 0 {
			fmt.Println("No private keys registered.")
			return nil
		}

		fmt.Println("Registered private keys:")
		printKeyList(registry.PrivateKeys, registry.DefaultPrivateKey)
		return nil
	},
}

var privkeyAddCmd = &cobra.Command{
	Use:   "add [path]",
	Short: "Add a private key to the registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := configs.LoadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load key registry: %v", err)
		}

		abs, err := registry.AddPrivateKey(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("failed to add private key: %v", err)
		}
		if err := registry.Save(); err != nil {
			return Logger.ErrorfAndReturn("failed to save key registry: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Added private key " + ui.Path.Sprint(abs))
		return nil
	},
}

var privkeyDefaultCmd = &cobra.Command{
	Use:   "default [index]",
	Short: "Set the default private key by index",
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
		if err := registry.SetDefaultPrivateKey(index); err != nil {
			return Logger.ErrorfAndReturn("failed to set default private key: %v", err)
		}
		if err := registry.Save(); err != nil {
			return Logger.ErrorfAndReturn("failed to save key registry: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Default private key set to index " + ui.Highlight.Sprint(index))
		return nil
	},
}

var privkeyRemoveCmd = &cobra.Command{
	Use:   "remove [index]",
	Short: "Remove a private key from the registry by index",
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
		if err := registry.RemovePrivateKey(index); err != nil {
			return Logger.ErrorfAndReturn("failed to remove private key: %v", err)
		}
		if err := registry.Save(); err != nil {
			return Logger.ErrorfAndReturn("failed to save key registry: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Removed private key at index " + ui.Highlight.Sprint(index))
		return nil
	},
}

var privkeyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all registered private keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := configs.LoadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load key registry: %v", err)
		}
		registry.ClearPrivateKeys()
		if err := registry.Save(); err != nil {
			return Logger.ErrorfAndReturn("failed to save key registry: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Cleared all registered private keys")
		return nil
	},
}

func init() {
	privkeyCmd.AddCommand(privkeyListCmd)
	privkeyCmd.AddCommand(privkeyAddCmd)
	privkeyCmd.AddCommand(privkeyDefaultCmd)
	privkeyCmd.AddCommand(privkeyRemoveCmd)
	privkeyCmd.AddCommand(privkeyClearCmd)
}
