package main

import (
	"os"

	"archrypt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Commands print their own failure messages; just exit non-zero.
		os.Exit(1)
	}
}
