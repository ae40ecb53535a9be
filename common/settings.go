package common

import (
	"fmt"
	"os"
	"time"

	"github.com/bitrise-io/genai-prompt-form/logger"
	"gopkg.in/yaml.v3"
)

// DefaultSettingsFiles are looked up in the working directory when no explicit path is given
var DefaultSettingsFiles = []string{"prompt-form.yml", "prompt-form.yaml"}

type Server struct {
	Addr  string `yaml:"addr"`
	Debug bool   `yaml:"debug"`
}

type OpenAI struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	// Request deadline in seconds, 0 disables it
	APITimeout   int           `yaml:"api_timeout"`
	RetryMax     int           `yaml:"retry_max"`
	RetryWaitMin time.Duration `yaml:"retry_wait_min"`
	RetryWaitMax time.Duration `yaml:"retry_wait_max"`
}

type Settings struct {
	LogLevel string `yaml:"log_level"`
	Server   Server `yaml:"server"`
	OpenAI   OpenAI `yaml:"openai"`
}

func WithDefaultSettings() Settings {
	return Settings{
		LogLevel: "info",
		Server: Server{
			Addr:  "127.0.0.1:5000",
			Debug: true,
		},
		OpenAI: OpenAI{
			Model:        "gpt-4o-mini",
			RetryMax:     0,
			RetryWaitMin: 1 * time.Second,
			RetryWaitMax: 5 * time.Second,
		},
	}
}

// RetryConfig maps the OpenAI retry settings onto the HTTP retry configuration
func (o OpenAI) RetryConfig() RetryConfig {
	config := DefaultRetryConfig()
	config.RetryMax = o.RetryMax
	if o.RetryWaitMin > 0 {
		config.RetryWaitMin = o.RetryWaitMin
	}
	if o.RetryWaitMax > 0 {
		config.RetryWaitMax = o.RetryWaitMax
	}
	return config
}

// WithYamlFile loads settings from path on top of the defaults. An empty path
// falls back to DefaultSettingsFiles in the working directory; finding none of
// them is not an error.
func WithYamlFile(path string) (Settings, error) {
	settings := WithDefaultSettings()

	explicit := path != ""
	if !explicit {
		for _, name := range DefaultSettingsFiles {
			if _, err := os.Stat(name); err == nil {
				path = name
				break
			}
		}
	}

	if path == "" {
		logger.Debug("No settings file found. Using default settings.")
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return WithDefaultSettings(), fmt.Errorf("failed to parse YAML file %s: %w", path, err)
	}

	logger.Infof("Using settings from YAML file: %s", path)
	return settings, nil
}
