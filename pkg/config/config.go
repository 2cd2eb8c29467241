// Package config holds the explicit configuration value passed into every
// pika API that needs one: destination roots, package feeds, supported
// architectures and the global operation flags. Configuration is loaded
// from YAML files and carries sensible defaults so the zero-config case
// works on a live root filesystem.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pika-pm/pika/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Dest is a destination root packages are installed into. Records hold
// non-owning pointers into the Config's Dest table; the Config owns them.
type Dest struct {
	Name    string `yaml:"name"`
	RootDir string `yaml:"root_dir"`
	// InfoDir is the metadata directory holding per-package list files
	// and maintainer scripts.
	InfoDir string `yaml:"info_dir"`
}

// Feed is a remote package source. Like Dest, owned by the Config.
type Feed struct {
	Name string `yaml:"name"`
	URI  string `yaml:"uri"`
}

// Arch is a supported architecture with its resolution tie-break weight.
type Arch struct {
	Name     string `yaml:"name"`
	Priority int    `yaml:"priority"`
}

// Settings represents the global operation flags.
type Settings struct {
	// TempDir is where scratch files (control extraction, file-list
	// extraction) are created. Defaults to the system temp directory.
	TempDir string `yaml:"temp_dir,omitempty"`

	// OfflineRoot is an alternate filesystem root used when managing a
	// target system that is not currently running. Empty means none.
	OfflineRoot string `yaml:"offline_root,omitempty"`

	// ForceChecksum downgrades verification failures to warnings and
	// keeps the archive. Never the default.
	ForceChecksum bool `yaml:"force_checksum"`

	// ForcePostinstall runs maintainer hooks even under an offline root.
	ForcePostinstall bool `yaml:"force_postinstall"`

	// CheckSignature enables detached-signature verification of archives.
	CheckSignature bool `yaml:"check_signature"`

	// KeyringPath is the armored OpenPGP keyring trusted for signatures.
	KeyringPath string `yaml:"keyring_path,omitempty"`

	// VerboseStatus includes the full field set and user fields when
	// writing the status database.
	VerboseStatus bool `yaml:"verbose_status"`

	// ShortDescription truncates descriptions to their first line in
	// info output.
	ShortDescription bool `yaml:"short_description"`

	// NoAction reports what would be done without touching the system.
	NoAction bool `yaml:"no_action"`

	LogLevel string `yaml:"log_level"`
}

// Config represents the application configuration.
type Config struct {
	Dests  []*Dest `yaml:"dests"`
	Feeds  []*Feed `yaml:"feeds"`
	Arches []*Arch `yaml:"arches,omitempty"`

	Settings Settings `yaml:"settings"`
}

// DefaultInfoDir is the metadata directory relative to a destination root.
const DefaultInfoDir = "usr/lib/pika/info"

// DefaultConfig returns a configuration with sensible defaults: a single
// destination at the filesystem root and the architecture-independent
// "all" architecture.
func DefaultConfig() *Config {
	return &Config{
		Dests: []*Dest{
			{
				Name:    "root",
				RootDir: "/",
				InfoDir: filepath.Join("/", DefaultInfoDir),
			},
		},
		Arches: []*Arch{
			{Name: "all", Priority: 1},
		},
		Settings: Settings{
			TempDir:  os.TempDir(),
			LogLevel: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file, filling unset settings
// from the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", absPath)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if len(c.Dests) == 0 {
		c.Dests = def.Dests
	}
	if len(c.Arches) == 0 {
		c.Arches = def.Arches
	}
	if c.Settings.TempDir == "" {
		c.Settings.TempDir = def.Settings.TempDir
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = def.Settings.LogLevel
	}
	for _, d := range c.Dests {
		if d.InfoDir == "" {
			d.InfoDir = filepath.Join(d.RootDir, DefaultInfoDir)
		}
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Dests))
	for _, d := range c.Dests {
		if d.Name == "" || d.RootDir == "" {
			return errors.Wrap(errors.ErrConfigValidation,
				"dest needs both a name and a root_dir")
		}
		if seen[d.Name] {
			return errors.Wrap(errors.ErrConfigValidation,
				fmt.Sprintf("duplicate dest %q", d.Name))
		}
		seen[d.Name] = true
	}
	for _, f := range c.Feeds {
		if f.Name == "" || f.URI == "" {
			return errors.Wrap(errors.ErrConfigValidation,
				"feed needs both a name and a uri")
		}
	}
	return nil
}

// DefaultDest returns the destination used when a package has none bound.
func (c *Config) DefaultDest() *Dest {
	if len(c.Dests) == 0 {
		return nil
	}
	return c.Dests[0]
}

// DestByName looks up a destination by name.
func (c *Config) DestByName(name string) *Dest {
	for _, d := range c.Dests {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// FeedByName looks up a feed by name.
func (c *Config) FeedByName(name string) *Feed {
	for _, f := range c.Feeds {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ArchPriority returns the tie-break weight for an architecture, or 0 if
// the architecture is not supported.
func (c *Config) ArchPriority(arch string) int {
	for _, a := range c.Arches {
		if a.Name == arch {
			return a.Priority
		}
	}
	return 0
}
