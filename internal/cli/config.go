package cli

import (
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	DataPath  string
	StoreType string
	RedisURL  string
	Lang      string
	Yes       bool
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		DataPath:  getEnvOrDefault("BD2SWITCH_DATA", defaultDataPath()),
		StoreType: getEnvOrDefault("BD2SWITCH_STORE", "file"),
		RedisURL:  os.Getenv("BD2SWITCH_REDIS_URL"),
	}
}

// defaultDataPath places accounts.json next to the executable, falling back
// to the working directory.
func defaultDataPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "accounts.json"
	}
	return filepath.Join(filepath.Dir(exe), "accounts.json")
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
