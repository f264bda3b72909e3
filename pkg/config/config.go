package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all studyassist CLI configuration. The library itself takes
// functional options; this only feeds the command-line tool.
type Config struct {
	BaseURL   string `toml:"base_url"`
	APIKeyEnv string `toml:"api_key_env"`
	DataDir   string `toml:"data_dir"`
	StateDir  string `toml:"state_dir"`

	PollIntervalSeconds int `toml:"poll_interval_seconds"`
	AskTimeoutSeconds   int `toml:"ask_timeout_seconds"`

	Assistant AssistantConfig `toml:"assistant"`
	Notes     NotesConfig     `toml:"notes"`
}

// AssistantConfig describes the assistant created at bootstrap
type AssistantConfig struct {
	Name         string `toml:"name"`
	Model        string `toml:"model"`
	Instructions string `toml:"instructions"`
}

// NotesConfig describes the structured notes generation
type NotesConfig struct {
	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:             "https://api.openai.com/v1",
		APIKeyEnv:           "OPENAI_API_KEY",
		DataDir:             "data",
		StateDir:            ".",
		PollIntervalSeconds: 1,
		AskTimeoutSeconds:   0,
		Assistant: AssistantConfig{
			Name:  "Study Q&A Assistant",
			Model: "gpt-4o-mini",
			Instructions: "You are a helpful tutor. " +
				"Use the knowledge in the attached files to answer questions. " +
				"Cite sources where possible. " +
				"Provide clear, concise explanations suitable for studying.",
		},
		Notes: NotesConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.7,
		},
	}
}

// Load reads config from path when given, otherwise from the standard
// locations, falling back to defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	paths := configPaths()
	if path != "" {
		paths = []string{path}
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if _, err := toml.DecodeFile(p, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", p, err)
			}
			break
		} else if path != "" {
			return cfg, fmt.Errorf("config %s: %w", p, err)
		}
	}

	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.StateDir = expandHome(cfg.StateDir)

	return cfg, nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "studyassist", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "studyassist", "config.toml"))
	}

	paths = append(paths, "studyassist.toml")

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
