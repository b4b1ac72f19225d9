// Package branding provides compile-time identity values for the CLI.
//
// Values come from branding.yaml, embedded into the binary with //go:embed.
// Hard defaults apply to any key the file leaves out.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	HomeDir         string `yaml:"home_dir"`
	EnvPrefix       string `yaml:"env_prefix"`
	GoModule        string `yaml:"go_module"`
	KeychainService string `yaml:"keychain_service"`
	GalleryURL      string `yaml:"gallery_url"`
	ReportURL       string `yaml:"report_url"`
	PATHelpURL      string `yaml:"pat_help_url"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:         "vsce",
			DisplayName:     "VS Code Extension Manager",
			Description:     "Package and publish VS Code extensions",
			HomeDir:         ".vsce",
			EnvPrefix:       "VSCE",
			GoModule:        "github.com/vsxtools/vsce",
			KeychainService: "vsce",
			GalleryURL:      "https://marketplace.visualstudio.com",
			ReportURL:       "https://az764295.vo.msecnd.net/extensions/marketplace.json",
			PATHelpURL:      "https://aka.ms/vscodepat",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "vsce").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".vsce").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "VSCE").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// KeychainService returns the OS keychain service name PATs are stored under.
func KeychainService() string { load(); return defaults.KeychainService }

// GalleryURL returns the default Marketplace base URL.
func GalleryURL() string { load(); return defaults.GalleryURL }

// ReportURL returns the default location of the public extensions report.
func ReportURL() string { load(); return defaults.ReportURL }

// PATHelpURL returns the page explaining how to create a new PAT.
func PATHelpURL() string { load(); return defaults.PATHelpURL }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("pat") → "VSCE_PAT".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
