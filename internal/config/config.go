// Package config loads service configuration from YAML files and the
// environment. A global file under the user's home directory is read first,
// then a project-local file overrides it, then environment variables win.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the service needs at startup.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `mapstructure:"addr"`

	// OpenAIAPIKey enables the remote advisor when set. Empty means the
	// built-in rule engine serves all AI endpoints.
	OpenAIAPIKey string `mapstructure:"openai_api_key"`

	// OpenAIModel overrides the default chat model.
	OpenAIModel string `mapstructure:"openai_model"`

	// OpenAIBaseURL overrides the provider endpoint, mainly for tests.
	OpenAIBaseURL string `mapstructure:"openai_base_url"`

	// ThinkDelay is the simulated latency of the rule engine.
	ThinkDelay time.Duration `mapstructure:"think_delay"`

	// SeedDemo seeds the built-in demo tasks on startup.
	SeedDemo bool `mapstructure:"seed_demo"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		Addr:       ":8000",
		ThinkDelay: 0,
		SeedDemo:   true,
	}
}

// Load merges configuration from the global file, the project file, and the
// environment. Missing files are not an error.
func Load() (*Config, error) {
	cfg := Default()

	if home, err := os.UserHomeDir(); err == nil {
		loadFile(filepath.Join(home, ".taskpilot", "config.yaml"), cfg)
	}
	if cwd, err := os.Getwd(); err == nil {
		loadFile(filepath.Join(cwd, "taskpilot.yaml"), cfg)
	}

	if v := os.Getenv("TASKD_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAIModel = v
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// UseRemoteAdvisor reports whether the remote provider should serve priority
// analysis. This is the one branch point between the rule-based and
// provider-backed engines.
func (c *Config) UseRemoteAdvisor() bool {
	return c.OpenAIAPIKey != ""
}
