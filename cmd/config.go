package cmd

import (
	"fmt"
	"os"

	"github.com/Electron-Labs/quantum-proof-schemes/backends"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config mirrors the persistent flags and carries backend options that have
// no flag.
type Config struct {
	Out           string          `yaml:"out"`
	LogLevel      string          `yaml:"log_level"`
	Seed          string          `yaml:"seed"`
	Profile       bool            `yaml:"profile"`
	RegistryDepth int             `yaml:"registry_depth"`
	Backends      backends.Config `yaml:"backends"`
}

// Backends holds the backend options of the loaded config.
var Backends = DefaultBackends()

func DefaultBackends() backends.Config {
	return backends.DefaultConfig()
}

func readConfig(path string) (Config, error) {
	cfg := Config{Backends: backends.DefaultConfig()}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(bytes, &cfg); err != nil {
		return cfg, fmt.Errorf("yaml.Unmarshal(%s)::%w", path, err)
	}
	return cfg, nil
}

// loadConfig applies the config file to every persistent flag that was not
// set on the command line.
func loadConfig(cmd *cobra.Command) error {
	if ConfigFile == "" {
		return nil
	}
	cfg, err := readConfig(ConfigFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if cfg.Out != "" && !flags.Changed("out") {
		OutputDir = cfg.Out
	}
	if cfg.LogLevel != "" && !flags.Changed("log-level") {
		LogLevel = cfg.LogLevel
	}
	if cfg.Seed != "" && !flags.Changed("seed") {
		Seed = cfg.Seed
	}
	if cfg.Profile && !flags.Changed("profile") {
		Profile = true
	}
	if cfg.RegistryDepth != 0 && !flags.Changed("registry-depth") {
		RegistryDepth = cfg.RegistryDepth
	}
	Backends = cfg.Backends
	return nil
}
