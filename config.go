package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
)

// ConfigGlobal holds tool-wide defaults. Command-line flags always win over
// configuration values.
type ConfigGlobal struct {
	Quiet    bool   `toml:"quiet"`
	Output   string `toml:"output"`
	Registry string `toml:"registry"`
}

// A ConfigCrate customizes handling of crates whose name matches the section
// key, which may be a glob pattern (e.g. [crates."serde*"]).
type ConfigCrate struct {
	Output     string `toml:"output"`
	Extract    bool   `toml:"extract"`
	FileFilter string `toml:"file_filter"`
}

type Config struct {
	Global ConfigGlobal           `toml:"global"`
	Crates map[string]ConfigCrate `toml:"crates"`
}

func LoadConfigurationFile(path string) (Config, error) {
	var conf Config
	_, err := toml.DecodeFile(path, &conf)
	return conf, err
}

func GetOSConfigPath(homePath string) string {
	var configDir string

	defaultConfig := map[string]string{
		"windows": "LocalAppData",
		"default": ".config",
	}

	var goos string
	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("LOCALAPPDATA")
		goos = "windows"
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		goos = "default"
	}

	if configDir == "" {
		configDir = filepath.Join(homePath, defaultConfig[goos])
	}

	return filepath.Join(configDir, "crget", "crget.toml")
}

// InitializeConfig locates and loads the configuration file: $CRGET_CONFIG
// if set, then ~/.crget.toml, then ./crget.toml, then the OS config
// directory. A missing file is not an error; an unreadable or malformed one
// is.
func InitializeConfig() (*Config, error) {
	homePath, _ := os.UserHomeDir()

	candidates := []string{
		filepath.Join(homePath, ".crget.toml"),
		"crget.toml",
		GetOSConfigPath(homePath),
	}
	if path, ok := os.LookupEnv("CRGET_CONFIG"); ok {
		candidates = []string{path}
	}

	for _, path := range candidates {
		config, err := LoadConfigurationFile(path)
		if err == nil {
			if config.Crates == nil {
				config.Crates = make(map[string]ConfigCrate)
			}
			return &config, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	return &Config{Crates: make(map[string]ConfigCrate)}, nil
}

// CrateConfig returns the section applying to the named crate, or nil. An
// exact key wins over glob patterns; among several matching patterns the
// lexicographically first applies, so lookup is deterministic.
func (c *Config) CrateConfig(name string) *ConfigCrate {
	if section, ok := c.Crates[name]; ok {
		return &section
	}

	keys := make([]string, 0, len(c.Crates))
	for key := range c.Crates {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		g, err := glob.Compile(key)
		if err != nil {
			continue
		}
		if g.Match(name) {
			section := c.Crates[key]
			return &section
		}
	}
	return nil
}
