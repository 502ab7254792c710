// Package paths resolves output database and configuration file locations.
package paths

import (
	"os"
	"path/filepath"
)

// Environment variable names for path overrides.
const (
	EnvOutputPath = "DSCONVERT_DB"
	EnvConfigFile = "DSCONVERT_CONFIG"
)

// ResolveOutputPath returns the output database path following the
// precedence chain: --db flag > configured value > DSCONVERT_DB env >
// $(CWD)/defaultName. Each converter passes its own default filename.
func ResolveOutputPath(flag, configValue, defaultName string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvOutputPath); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, defaultName), nil
}

// ResolveConfigFile returns the converter configuration file path following
// the precedence chain: --config flag > DSCONVERT_CONFIG env. An empty
// result means no config file; the converter runs on built-in defaults.
func ResolveConfigFile(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigFile); env != "" {
		return filepath.Abs(env)
	}
	return "", nil
}
