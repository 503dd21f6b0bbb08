package configs

import (
	"log"
	"os"
	"path/filepath"
)

type UserSettings struct {
	// UserConfigPath is the path of the registry file, config.toml inside
	// the user's archrypt config directory.
	UserConfigPath string
}

// UserArchryptSettings holds where the key registry lives. Tests override
// it to point at a temporary directory.
var UserArchryptSettings *UserSettings

func init() {
	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	UserArchryptSettings = &UserSettings{
		UserConfigPath: filepath.Join(configDir, "archrypt", "config.toml"),
	}
}
