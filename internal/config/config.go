package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	ControlAPIURL   string
	ArtifactsAPIURL string
	ModelsAPIURL    string
	SessionFile     string
}

func New() *Config {
	return &Config{
		ControlAPIURL:   viper.GetString("control_api_url"),
		ArtifactsAPIURL: viper.GetString("artifacts_api_url"),
		ModelsAPIURL:    viper.GetString("models_api_url"),
		SessionFile:     viper.GetString("session_file"),
	}
}

func (c *Config) Validate() error {
	if err := validateURL("control API URL", c.ControlAPIURL); err != nil {
		return err
	}
	if err := validateURL("artifacts API URL", c.ArtifactsAPIURL); err != nil {
		return err
	}
	// The model catalog is served by the train service in some deployments
	// and proxied through the control API in others.
	if c.ModelsAPIURL != "" {
		if err := validateURL("models API URL", c.ModelsAPIURL); err != nil {
			return err
		}
	}
	return nil
}

// ModelsURL resolves the model-catalog origin, falling back to the control
// API when no dedicated endpoint is configured.
func (c *Config) ModelsURL() string {
	if c.ModelsAPIURL != "" {
		return c.ModelsAPIURL
	}
	return c.ControlAPIURL
}

// SessionPath resolves the session file location, defaulting to the user
// config directory.
func (c *Config) SessionPath() (string, error) {
	if c.SessionFile != "" {
		return c.SessionFile, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "trainctl", "session.yaml"), nil
}

func validateURL(what, s string) error {
	if s == "" {
		return fmt.Errorf("%s is required", what)
	}
	// "host:port/path" parses as an opaque URL with a bogus scheme, so
	// checking IsAbs alone is not enough
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s is not an absolute URL: %s", what, s)
	}
	return nil
}
