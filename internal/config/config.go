// Package config loads passkit settings from a YAML file with optional profiles.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Skpow1234/passkit/internal/passopt"
	"github.com/spf13/viper"
)

const (
	// EnvConfigPath is the environment variable for the config file path.
	EnvConfigPath = "PASSKIT_CONFIG"
	// EnvProfile is the environment variable for the profile name.
	EnvProfile = "PASSKIT_PROFILE"
	// EnvPluginDir overrides plugin_dir.
	EnvPluginDir = "PASSKIT_PLUGIN_DIR"
	// EnvAuditLog overrides audit_log.
	EnvAuditLog = "PASSKIT_AUDIT_LOG"
)

// Settings is the set of keys shared by the file root and each profile.
type Settings struct {
	PluginDir   string   `mapstructure:"plugin_dir" json:"plugin_dir"`
	AuditLog    string   `mapstructure:"audit_log" json:"audit_log"`
	// AllowPasses accepts a list or a single string such as "-dse -adce";
	// Load reduces either to bare pass arguments.
	AllowPasses []string `mapstructure:"allow_passes" json:"allow_passes,omitempty"`
	HelpWidth   int      `mapstructure:"help_width" json:"help_width"`
	OutputDir   string   `mapstructure:"output_dir" json:"output_dir"`
}

type file struct {
	Settings `mapstructure:",squash"`
	Profiles map[string]Settings `mapstructure:"profiles"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		HelpWidth: 12,
		OutputDir: ".",
	}
}

// Load reads the config file, applies profile, then environment overrides.
//
// The file is configPath if set, else $PASSKIT_CONFIG, else the first of
// ~/.passkit.yaml, ~/.passkit.yml, ./.passkit.yaml, ./.passkit.yml that exists.
// A missing file is not an error. The profile is profile if set, else
// $PASSKIT_PROFILE.
func Load(configPath, profile string) (*Settings, error) {
	s := Default()

	if configPath == "" {
		configPath = os.Getenv(EnvConfigPath)
	}
	if profile == "" {
		profile = os.Getenv(EnvProfile)
	}
	if configPath == "" {
		configPath = discover()
	}
	if configPath != "" {
		if err := readAndMerge(configPath, profile, &s); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv(EnvPluginDir); v != "" {
		s.PluginDir = v
	}
	if v := os.Getenv(EnvAuditLog); v != "" {
		s.AuditLog = v
	}

	return &s, nil
}

func discover() string {
	var candidates []string
	if home, _ := os.UserHomeDir(); home != "" {
		candidates = append(candidates, filepath.Join(home, ".passkit.yaml"), filepath.Join(home, ".passkit.yml"))
	}
	if wd, _ := os.Getwd(); wd != "" {
		candidates = append(candidates, filepath.Join(wd, ".passkit.yaml"), filepath.Join(wd, ".passkit.yml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func readAndMerge(path, profile string, s *Settings) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) && errors.Is(pathErr.Err, fs.ErrNotExist) {
			return nil
		}
		if errors.As(err, new(viper.ConfigFileNotFoundError)) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var f file
	if err := v.Unmarshal(&f); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	merge(s, f.Settings)

	if profile != "" {
		p, ok := f.Profiles[profile]
		if !ok {
			return fmt.Errorf("config %s: unknown profile %q", path, profile)
		}
		merge(s, p)
	}
	return nil
}

// merge copies every non-zero field of over into s.
func merge(s *Settings, over Settings) {
	if over.PluginDir != "" {
		s.PluginDir = over.PluginDir
	}
	if over.AuditLog != "" {
		s.AuditLog = over.AuditLog
	}
	if allow := normalizeAllow(over.AllowPasses); len(allow) > 0 {
		s.AllowPasses = allow
	}
	if over.HelpWidth > 0 {
		s.HelpWidth = over.HelpWidth
	}
	if over.OutputDir != "" {
		s.OutputDir = over.OutputDir
	}
}

// normalizeAllow splits every entry the way a command-line allow-list is
// written, so "hex base64", "-hex -base64" and [-hex, -base64] agree.
func normalizeAllow(entries []string) []string {
	var out []string
	for _, e := range entries {
		out = append(out, passopt.ParseAllowList(e)...)
	}
	return out
}
