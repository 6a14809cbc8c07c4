// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded with //go:embed; editing it and rebuilding is
// enough to rename the tool or point it at another proxy deployment.
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
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	SourceURL   string `yaml:"source_url"`
	CatalogPath string `yaml:"catalog_path"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is empty.
		defaults = brand{
			CLIName:     "regui",
			DisplayName: "Registry UI",
			Description: "Catalog listing for pull-through registry proxies",
			HomeDir:     ".regui",
			EnvPrefix:   "REGUI",
			SourceURL:   "https://registry.np.dotnot.pl/",
			CatalogPath: "registries",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "regui").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".regui").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "REGUI").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// SourceURL returns the default registry-proxy base URL used by the
// enriched listing.
func SourceURL() string { load(); return defaults.SourceURL }

// CatalogPath returns the default catalog path appended to SourceURL.
func CatalogPath() string { load(); return defaults.CatalogPath }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("DEBUG") → "REGUI_DEBUG".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
