package config

import (
	"os"
	"path/filepath"
)

const repoSearchDepth = 6

// ResolveRepoRoot finds the platform repository. An existing override wins;
// otherwise the search walks up from start looking for a directory holding
// both ROADMAP.md and shoulders-cli/. The fallback is start itself.
func ResolveRepoRoot(override, start string) string {
	if override != "" {
		if _, err := os.Stat(override); err == nil {
			return override
		}
	}

	dir := start
	for i := 0; i < repoSearchDepth; i++ {
		if exists(filepath.Join(dir, "ROADMAP.md")) && exists(filepath.Join(dir, "shoulders-cli")) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return start
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
