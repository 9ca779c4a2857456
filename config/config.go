package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Proc ProcConfig `yaml:"proc"`
	Tmux TmuxConfig `yaml:"tmux"`
}

type ProcConfig struct {
	Root       string `yaml:"root"`
	TTYDrivers string `yaml:"tty_drivers"`
}

type TmuxConfig struct {
	Binary string `yaml:"binary"`
	Socket string `yaml:"socket"`
}

// Default returns the settings used when no config file is given.
func Default() *Config {
	return &Config{
		Proc: ProcConfig{
			Root:       "/proc",
			TTYDrivers: "/proc/tty/drivers",
		},
		Tmux: TmuxConfig{
			Binary: "tmux",
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
