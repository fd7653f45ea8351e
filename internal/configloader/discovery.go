package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths holds the configuration files found for one invocation. An
// empty field means no file at that level.
type ConfigPaths struct {
	// System is /etc/bonsai/config.yaml, or %ProgramData%\bonsai on Windows.
	System string

	// User is $XDG_CONFIG_HOME/bonsai/config.yaml.
	User string

	// Project is the nearest .bonsai.yml above the working directory.
	Project string

	// Explicit is the --config path.
	Explicit string
}

//nolint:gochecknoglobals // Read-only lookup tables.
var (
	// projectConfigFiles are tried in order in each directory.
	projectConfigFiles = []string{".bonsai.yml", ".bonsai.yaml", "bonsai.yml", "bonsai.yaml"}

	// levelConfigFiles are tried in the system and user directories.
	levelConfigFiles = []string{"config.yaml", "config.yml"}

	// vcsRootMarkers end the project search.
	vcsRootMarkers = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths locates the system, user and project configuration files.
// Missing files are not errors.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	paths := &ConfigPaths{
		System:  firstFile(systemConfigDir(), levelConfigFiles),
		Project: project,
	}
	if dir := UserConfigDir(); dir != "" {
		paths.User = firstFile(dir, levelConfigFiles)
	}
	return paths, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return "/etc/bonsai"
	}
	programData := os.Getenv("ProgramData")
	if programData == "" {
		programData = `C:\ProgramData`
	}
	return filepath.Join(programData, "bonsai")
}

// UserConfigDir returns the directory holding the user config, honoring
// XDG_CONFIG_HOME. It returns "" when no home directory is known.
func UserConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "bonsai")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bonsai")
}

// FindProjectConfig looks for a project config file in startDir and its
// parents. The search ends at a VCS root, the home directory or the
// filesystem root, whichever comes first. It returns "" if nothing is found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}

		if path := firstFile(dir, projectConfigFiles); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isVCSRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
