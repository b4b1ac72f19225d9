package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/vsxtools/vsce/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyGalleryURL     = "gallery_url"
	KeyReportURL      = "report_url"
	KeyMarketplaceURL = "marketplace_url"
	KeyPackageManager = "package_manager"
	KeyPAT            = "pat"
)

// Dir returns the path to the config directory (~/.vsce/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.vsce/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyGalleryURL, branding.GalleryURL())
	viper.SetDefault(KeyReportURL, branding.ReportURL())
	viper.SetDefault(KeyMarketplaceURL, branding.GalleryURL())
	viper.SetDefault(KeyPackageManager, "npm")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GalleryURL returns the Marketplace base URL.
func GalleryURL() string { return Get(KeyGalleryURL) }

// ReportURL returns the extensions report URL.
func ReportURL() string { return Get(KeyReportURL) }

// MarketplaceURL returns the public site linked after a publish.
func MarketplaceURL() string { return Get(KeyMarketplaceURL) }

// PackageManager returns the default dependency manager ("npm", "yarn" or "none").
func PackageManager() string { return Get(KeyPackageManager) }

// PAT returns the personal access token from the environment or config file.
// Empty when neither sets one.
func PAT() string { return Get(KeyPAT) }

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
