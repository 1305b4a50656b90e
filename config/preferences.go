package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/agile-ai-hub/intake-api/pkg/errors"
	"github.com/spf13/viper"
)

const endpointPreferenceKey = "notion-endpoint"

// Preferences is the locally persisted client preference file
type Preferences struct {
	v    *viper.Viper
	path string
}

// DefaultPreferencesPath returns the per-user preferences file location
func DefaultPreferencesPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "agile-ai-hub", "preferences.yaml")
}

// OpenPreferences loads the preference file at path; a missing file is an empty set
func OpenPreferences(path string) (*Preferences, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read preferences %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat preferences %s: %w", path, err)
	}

	return &Preferences{v: v, path: path}, nil
}

// Path returns the backing file
func (p *Preferences) Path() string {
	return p.path
}

// Endpoint returns the saved intake endpoint, or "" when none is saved
func (p *Preferences) Endpoint() string {
	return p.v.GetString(endpointPreferenceKey)
}

// SetEndpoint saves a new intake endpoint. Values that do not parse as a URL are refused.
func (p *Preferences) SetEndpoint(endpoint string) error {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return apperrors.InvalidInputError("endpoint", "must not be empty")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return apperrors.InvalidInputError("endpoint", err.Error())
	}

	p.v.Set(endpointPreferenceKey, endpoint)

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}
	if err := p.v.WriteConfigAs(p.path); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}
