// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"strmatch/internal/config"
	"strmatch/internal/logging"
	"strmatch/internal/report"
	"strmatch/internal/version"
	"strmatch/internal/writers"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	Input      string
	Unknowns   string
	ConfigPath string

	// Registry operations, in the order they run
	Remove  []string
	NoFlag  bool
	Cleanup bool

	// Matching
	CacheSize int

	// Output
	Output          string
	Only            string
	Header          bool // true unless --no-header
	NoMatchExitCode int

	// Diagnostics
	LogLevel string
	Quiet    bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: STR profile registry and evidence matcher

Version: %s

Usage: %s [flags] <database>

Reads a profile database, flags profiles whose STR counts match the two
unknown sequences, and reports the registry in level order.

Flags:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, merges config file defaults under
// them, and returns a validated Options struct. lookup lists implicit config
// locations (config.DefaultLookup in production).
func ParseArgs(fs *pflag.FlagSet, argv []string, lookup []string) (Options, error) {
	var opt Options
	var help, noHeader bool

	// Input
	fs.StringVarP(&opt.Input, "input", "i", "", "profile database file ('-' for stdin, .gz ok) [*]")
	fs.StringVarP(&opt.Unknowns, "unknowns", "u", "", "FASTA file whose first two records replace the database's unknown sequences")
	fs.StringVar(&opt.ConfigPath, "config", "", "TOML config file with flag defaults")

	// Registry operations
	fs.StringArrayVarP(&opt.Remove, "remove", "r", nil, "remove profile \"Last, First\" before matching (repeatable)")
	fs.BoolVar(&opt.NoFlag, "no-flag", false, "skip the matching pass")
	fs.BoolVar(&opt.Cleanup, "cleanup", false, "remove every unflagged profile after matching")

	// Matching
	fs.IntVar(&opt.CacheSize, "cache-size", 4096, "marker count cache entries (0 = no cache)")

	// Output
	fs.StringVarP(&opt.Output, "output", "o", "text", "output: "+strings.Join(writers.Formats(), " | "))
	fs.StringVar(&opt.Only, "only", report.OnlyAll, "profiles to report: all | flagged | unflagged")
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/table output")
	fs.IntVar(&opt.NoMatchExitCode, "no-match-exit-code", 1, "exit code when no profile is flagged")

	// Diagnostics
	fs.StringVar(&opt.LogLevel, "log-level", "info", "log level: trace | debug | info | warn | error")
	fs.BoolVarP(&opt.Quiet, "quiet", "q", false, "only log errors")

	fs.BoolVarP(&opt.Version, "version", "v", false, "print version and exit")
	fs.BoolVarP(&help, "help", "h", false, "show this help message")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, pflag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}

	if err := applyConfig(fs, &opt, &noHeader, lookup); err != nil {
		return opt, err
	}
	opt.Header = !noHeader

	switch args := fs.Args(); {
	case len(args) > 1:
		return opt, fmt.Errorf("expected one database, got %d", len(args))
	case len(args) == 1 && fs.Changed("input"):
		return opt, errors.New("database given both as --input and as an argument")
	case len(args) == 1:
		opt.Input = args[0]
	}

	return opt, Validate(&opt)
}

// applyConfig copies config file values into flags the user left unset.
func applyConfig(fs *pflag.FlagSet, opt *Options, noHeader *bool, lookup []string) error {
	path, err := config.Search(opt.ConfigPath, lookup)
	if err != nil || path == "" {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	setString := func(flag string, dst *string, v *string) {
		if v != nil && !fs.Changed(flag) {
			*dst = *v
		}
	}
	setBool := func(flag string, dst *bool, v *bool) {
		if v != nil && !fs.Changed(flag) {
			*dst = *v
		}
	}
	setInt := func(flag string, dst *int, v *int) {
		if v != nil && !fs.Changed(flag) {
			*dst = *v
		}
	}

	setString("input", &opt.Input, cfg.Input)
	setString("unknowns", &opt.Unknowns, cfg.Unknowns)
	setString("output", &opt.Output, cfg.Output)
	setString("only", &opt.Only, cfg.Only)
	setString("log-level", &opt.LogLevel, cfg.LogLevel)
	setBool("no-flag", &opt.NoFlag, cfg.NoFlag)
	setBool("cleanup", &opt.Cleanup, cfg.Cleanup)
	setBool("quiet", &opt.Quiet, cfg.Quiet)
	setBool("no-header", noHeader, cfg.NoHeader)
	setInt("cache-size", &opt.CacheSize, cfg.CacheSize)
	setInt("no-match-exit-code", &opt.NoMatchExitCode, cfg.NoMatchExitCode)
	if len(cfg.Remove) > 0 && !fs.Changed("remove") {
		opt.Remove = append([]string(nil), cfg.Remove...)
	}
	return nil
}

// Validate applies CLI invariants.
func Validate(o *Options) error {
	if o.Input == "" {
		return errors.New("a profile database is required (argument or --input)")
	}
	if !writers.Known(o.Output) {
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if !report.ValidOnly(o.Only) {
		return fmt.Errorf("invalid --only %q", o.Only)
	}
	if o.CacheSize < 0 {
		return errors.New("--cache-size must be ≥ 0")
	}
	if o.NoMatchExitCode < 0 || o.NoMatchExitCode > 255 {
		return errors.New("--no-match-exit-code must be between 0 and 255")
	}
	if o.NoFlag && o.Cleanup {
		return errors.New("--cleanup needs the matching pass; drop --no-flag")
	}
	if _, err := logging.ParseLevel(o.LogLevel); err != nil {
		return err
	}
	for _, k := range o.Remove {
		if strings.TrimSpace(k) == "" {
			return errors.New("--remove needs a non-empty name")
		}
	}
	return nil
}
