package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// DefaultIntakeEndpoint is where the site posts contact submissions
const DefaultIntakeEndpoint = "/api/notion-intake"

// EndpointSource records which layer supplied the intake endpoint
type EndpointSource string

const (
	EndpointFromOverride   EndpointSource = "override"
	EndpointFromPreference EndpointSource = "preference"
	EndpointFromDefault    EndpointSource = "default"
)

// ClientConfig is resolved once at startup and handed to the submission client
type ClientConfig struct {
	Endpoint        string
	EndpointSource  EndpointSource
	FallbackEmail   string
	PreferencesPath string
}

// ResolveEndpoint picks the runtime override, then the saved preference, then the default
func ResolveEndpoint(override, saved string) (string, EndpointSource) {
	if s := strings.TrimSpace(override); s != "" {
		return s, EndpointFromOverride
	}
	if s := strings.TrimSpace(saved); s != "" {
		return s, EndpointFromPreference
	}
	return DefaultIntakeEndpoint, EndpointFromDefault
}

// AbsoluteEndpoint resolves a relative endpoint such as /api/notion-intake against baseURL
func AbsoluteEndpoint(baseURL, endpoint string) (string, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid intake endpoint %q: %w", endpoint, err)
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}

	base, err := url.Parse(baseURL)
	if err != nil || !base.IsAbs() {
		return "", fmt.Errorf("CONTACT_BASE_URL must be an absolute URL, got %q", baseURL)
	}
	return base.ResolveReference(ref).String(), nil
}

// clientViper returns the client settings source with its defaults applied
func clientViper() *viper.Viper {
	v := newViper()

	v.SetDefault("CONTACT_BASE_URL", "http://localhost:8081")
	v.SetDefault("CONTACT_FALLBACK_EMAIL", "ortalgr@gmail.com")
	v.SetDefault("CONTACT_PREFERENCES_FILE", DefaultPreferencesPath())

	return v
}

// ClientPreferencesPath returns the preference file the client reads and writes
func ClientPreferencesPath() string {
	return clientViper().GetString("CONTACT_PREFERENCES_FILE")
}

// EndpointOverride returns the NOTION_ENDPOINT runtime override, or ""
func EndpointOverride() string {
	return strings.TrimSpace(clientViper().GetString("NOTION_ENDPOINT"))
}

// LoadClient resolves the submission client configuration.
// override is the runtime endpoint override (the --endpoint flag); NOTION_ENDPOINT is used when it is empty.
func LoadClient(override string) (*ClientConfig, error) {
	v := clientViper()

	if override == "" {
		override = v.GetString("NOTION_ENDPOINT")
	}

	prefs, err := OpenPreferences(v.GetString("CONTACT_PREFERENCES_FILE"))
	if err != nil {
		return nil, err
	}

	endpoint, source := ResolveEndpoint(override, prefs.Endpoint())
	endpoint, err = AbsoluteEndpoint(v.GetString("CONTACT_BASE_URL"), endpoint)
	if err != nil {
		return nil, err
	}

	return &ClientConfig{
		Endpoint:        endpoint,
		EndpointSource:  source,
		FallbackEmail:   v.GetString("CONTACT_FALLBACK_EMAIL"),
		PreferencesPath: prefs.Path(),
	}, nil
}
