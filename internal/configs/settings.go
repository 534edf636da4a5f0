package configs

import (
	"log"
	"os"
	"path/filepath"
)

type VaultSettings struct {
	// StorageRoot holds the encrypted data file, the auth record, and
	// imported databases.
	StorageRoot string

	// ConfigPath holds the plaintext metadata and template files.
	ConfigPath string
}

var UserVaultSettings *VaultSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	UserVaultSettings = &VaultSettings{
		StorageRoot: filepath.Join(dataDir, "opsvault"),
		ConfigPath:  filepath.Join(configDir, "opsvault"),
	}
}
