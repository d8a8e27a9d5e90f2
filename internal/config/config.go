package config

import (
	"time"

	"github.com/spf13/viper"
)

// GetBaseURL returns the backend base URL
func GetBaseURL() string {
	return viper.GetString("api.base_url")
}

// GetTimeout returns the per-request timeout
func GetTimeout() time.Duration {
	return time.Duration(viper.GetInt("api.timeout_seconds")) * time.Second
}

// GetSessionPath returns the location of the session file
func GetSessionPath() string {
	return viper.GetString("session.path")
}

// GetGeoURL returns the position-source URL, empty when GPS assist is off
func GetGeoURL() string {
	return viper.GetString("geo.url")
}

// GetDefaultTheme returns the theme used before the user picks one
func GetDefaultTheme() string {
	return viper.GetString("ui.theme")
}
