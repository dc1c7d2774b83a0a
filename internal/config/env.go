package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// envFiles are loaded, in order, from the declaration file's directory.
var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env files next to the declaration. Variables already
// present in the process environment are not overwritten, so the first file
// to define a key wins.
func loadEnvFiles(dir string) []string {
	var loaded []string
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load env file", "path", path, "error", err)
			continue
		}
		loaded = append(loaded, path)
	}
	return loaded
}
