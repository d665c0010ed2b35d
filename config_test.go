package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[global]
quiet = true
output = "/tmp/crates"
registry = "https://registry.example.com"

[crates.serde]
extract = true
file_filter = "*.rs"

[crates."tokio*"]
output = "/tmp/tokio"
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crget.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadConfigurationFile(t *testing.T) {
	config, err := LoadConfigurationFile(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.True(t, config.Global.Quiet)
	assert.Equal(t, "/tmp/crates", config.Global.Output)
	assert.Equal(t, "https://registry.example.com", config.Global.Registry)

	require.Contains(t, config.Crates, "serde")
	assert.True(t, config.Crates["serde"].Extract)
	assert.Equal(t, "*.rs", config.Crates["serde"].FileFilter)
}

func TestInitializeConfigFromEnv(t *testing.T) {
	t.Setenv("CRGET_CONFIG", writeConfig(t, sampleConfig))

	config, err := InitializeConfig()
	require.NoError(t, err)
	assert.True(t, config.Global.Quiet)
}

func TestInitializeConfigMalformed(t *testing.T) {
	t.Setenv("CRGET_CONFIG", writeConfig(t, "global = {{"))

	_, err := InitializeConfig()
	assert.Error(t, err)
}

func TestCrateConfigLookup(t *testing.T) {
	config, err := LoadConfigurationFile(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	section := config.CrateConfig("serde")
	require.NotNil(t, section)
	assert.True(t, section.Extract)

	// glob sections apply to matching names
	section = config.CrateConfig("tokio-util")
	require.NotNil(t, section)
	assert.Equal(t, "/tmp/tokio", section.Output)

	assert.Nil(t, config.CrateConfig("anyhow"))
}

func TestApplyConfig(t *testing.T) {
	config, err := LoadConfigurationFile(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	// config supplies the default output and per-crate extraction
	opts, err := ParseArgs([]string{"crget", "serde==1.0.0"})
	require.NoError(t, err)
	filter, err := applyConfig(opts, &config)
	require.NoError(t, err)
	require.NotNil(t, opts.Output)
	assert.Equal(t, "/tmp/crates", opts.Output.Path())
	assert.True(t, opts.Extract)
	require.NotNil(t, filter)
	assert.True(t, filter.Match("demo-1.0.0/src/lib.rs"))
	assert.False(t, filter.Match("demo-1.0.0/Cargo.toml"))

	// a per-crate output wins over the global one
	opts, err = ParseArgs([]string{"crget", "tokio"})
	require.NoError(t, err)
	_, err = applyConfig(opts, &config)
	require.NoError(t, err)
	require.NotNil(t, opts.Output)
	assert.Equal(t, "/tmp/tokio", opts.Output.Path())

	// flags always win over the configuration
	opts, err = ParseArgs([]string{"crget", "serde", "-o", "here.crate"})
	require.NoError(t, err)
	_, err = applyConfig(opts, &config)
	require.NoError(t, err)
	assert.Equal(t, "here.crate", opts.Output.Path())
}
