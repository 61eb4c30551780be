package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExecutableDir returns the directory where the current executable resides.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err == nil && strings.TrimSpace(exe) != "" {
		if resolved, resolveErr := filepath.EvalSymlinks(exe); resolveErr == nil && strings.TrimSpace(resolved) != "" {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, wdErr := os.Getwd(); wdErr == nil && strings.TrimSpace(wd) != "" {
		return wd
	}
	return "."
}

// ResolvePath makes a relative path absolute against the working directory,
// which is where the content tree and data files live in every deployment.
func ResolvePath(raw string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = "."
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, target)
	}
	return filepath.Clean(target)
}

// LogDir resolves the log directory; empty means next to the executable.
func (c *AppConfig) LogDir() string {
	if c.Paths.Logs == "" {
		return filepath.Join(ExecutableDir(), "logs")
	}
	if filepath.IsAbs(c.Paths.Logs) {
		return filepath.Clean(c.Paths.Logs)
	}
	return filepath.Join(ExecutableDir(), c.Paths.Logs)
}

// ContentRoot is the absolute root of the category folders.
func (c *AppConfig) ContentRoot() string { return ResolvePath(c.Content.Root) }

// ViewsFile is the absolute path of the flat-file counter store.
func (c *AppConfig) ViewsFile() string { return ResolvePath(c.Views.FilePath) }
