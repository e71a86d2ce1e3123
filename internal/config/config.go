// Package config loads optional TOML defaults for the strmatch CLI. Values
// from the file apply only to flags the user did not set explicitly.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is looked up under the user config directory.
const FileName = "strmatch.toml"

// Config mirrors the CLI flags. A nil field means "not set in the file".
type Config struct {
	Input           *string  `toml:"input"`
	Unknowns        *string  `toml:"unknowns"`
	Output          *string  `toml:"output"`
	Only            *string  `toml:"only"`
	Remove          []string `toml:"remove"`
	NoFlag          *bool    `toml:"no-flag"`
	Cleanup         *bool    `toml:"cleanup"`
	CacheSize       *int     `toml:"cache-size"`
	LogLevel        *string  `toml:"log-level"`
	Quiet           *bool    `toml:"quiet"`
	NoHeader        *bool    `toml:"no-header"`
	NoMatchExitCode *int     `toml:"no-match-exit-code"`
}

// Load decodes path. Unknown keys are rejected so typos do not pass silently.
func Load(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return &cfg, nil
}

// Search returns custom if it exists (an error if it does not), otherwise the
// first existing path in lookup, otherwise "".
func Search(custom string, lookup []string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err != nil {
			return "", fmt.Errorf("no such config file: %s", custom)
		}
		return custom, nil
	}
	for _, p := range lookup {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// DefaultLookup lists the implicit config locations.
func DefaultLookup() []string {
	var dirs []string
	if v := os.Getenv("STRMATCH_CONFIG"); v != "" {
		dirs = append(dirs, v)
	}
	if d, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(d, "strmatch", FileName))
	}
	return dirs
}
