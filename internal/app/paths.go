package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	appDirName = "fitlog"
	dbFileName = "fitlog.db"
	envFile    = ".env"

	USDAKeyEnv = "FITLOG_USDA_API_KEY"
)

func DefaultDBPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName, dbFileName), nil
}

func EnsureDBDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return nil
}

// LoadEnv reads .env from the working directory and then from the fitlog
// config dir. Variables already set in the process environment win.
func LoadEnv() error {
	candidates := []string{envFile}
	if base, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(base, appDirName, envFile))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// USDAAPIKey returns the configured key or an empty string.
func USDAAPIKey() string {
	return os.Getenv(USDAKeyEnv)
}
