// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"strmatch-core/dnafile"
	"strmatch/internal/cli"
	"strmatch/internal/config"
	"strmatch/internal/logging"
	"strmatch/internal/markercache"
	"strmatch/internal/report"
	"strmatch/internal/version"
	"strmatch/internal/writers"
)

// Exit codes. NoMatch is only the default; --no-match-exit-code overrides it.
const (
	ExitOK       = 0
	ExitNoMatch  = 1
	ExitUsage    = 2
	ExitIO       = 3
	ExitCanceled = 130
)

// lookup is swapped by tests so a developer's own config file cannot leak in.
var lookup = config.DefaultLookup

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("strmatch")
	fs.SetOutput(io.Discard)

	usage := func(code int) int {
		fs.SetOutput(outw)
		fs.Usage()
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return ExitOK
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return ExitIO
		}
		return code
	}

	if len(argv) == 0 {
		return usage(ExitOK)
	}

	opts, err := cli.ParseArgs(fs, argv, lookup())
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return usage(ExitOK)
		}
		_, _ = fmt.Fprintln(stderr, err)
		return usage(ExitUsage)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "strmatch version %s\n", version.Version)
		if e := outw.Flush(); writers.IsBrokenPipe(e) {
			return ExitOK
		} else if e != nil {
			_, _ = fmt.Fprintln(stderr, e)
			return ExitIO
		}
		return ExitOK
	}

	logger, err := logging.New(stderr, opts.LogLevel, opts.Quiet)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	return run(ctx, opts, outw, logger)
}

func run(ctx context.Context, opts cli.Options, outw *bufio.Writer, logger zerolog.Logger) int {
	log := logging.WithScope(logger, "registry")

	ds, err := dnafile.Load(opts.Input)
	if err != nil {
		log.Error().Err(err).Msg("cannot load profile database")
		return ExitUsage
	}
	if opts.Unknowns != "" {
		first, second, err := dnafile.LoadUnknowns(opts.Unknowns)
		if err != nil {
			log.Error().Err(err).Msg("cannot load unknown sequences")
			return ExitUsage
		}
		ds.FirstUnknown, ds.SecondUnknown = first, second
		log.Debug().Str("file", opts.Unknowns).Msg("unknown sequences replaced from FASTA")
	}
	if ctx.Err() != nil {
		return ExitCanceled
	}

	reg, dups := ds.Registry()
	for _, k := range dups {
		log.Warn().Str("name", k).Msg("duplicate profile ignored; first entry kept")
	}
	log.Debug().
		Int("profiles", reg.Len()).
		Int("height", reg.Height()).
		Int("first_unknown_len", len(reg.FirstUnknown())).
		Int("second_unknown_len", len(reg.SecondUnknown())).
		Msg("registry built")

	for _, k := range opts.Remove {
		if reg.Remove(k) {
			log.Info().Str("name", k).Msg("profile removed")
		} else {
			log.Warn().Str("name", k).Msg("no such profile to remove")
		}
	}

	cache, err := markercache.New(opts.CacheSize)
	if err != nil {
		log.Error().Err(err).Msg("cannot create marker cache")
		return ExitUsage
	}
	reg.SetCounter(cache)

	if !opts.NoFlag {
		n := reg.FlagMatches()
		st := cache.Stats()
		log.Info().
			Int("flagged", n).
			Int("unflagged", reg.CountByInterest(false)).
			Int("cache_hits", st.Hits).
			Int("cache_misses", st.Misses).
			Msg("matching pass done")
	}
	if ctx.Err() != nil {
		return ExitCanceled
	}

	var removed []string
	if opts.Cleanup {
		removed = reg.CleanupUnflagged()
		log.Info().Int("removed", len(removed)).Int("remaining", reg.Len()).Msg("cleanup done")
	}

	rep, err := report.Build(reg, report.Options{
		Only:       opts.Only,
		Counter:    cache,
		Removed:    removed,
		Duplicates: dups,
	})
	if err != nil {
		log.Error().Err(err).Msg("cannot build report")
		return ExitUsage
	}
	if ctx.Err() != nil {
		return ExitCanceled
	}

	wlog := logging.WithScope(logger, "writer")
	if err := writers.Write(opts.Output, outw, rep, writers.Options{Header: opts.Header}); writers.IsBrokenPipe(err) {
		return ExitOK
	} else if err != nil {
		wlog.Error().Err(err).Str("format", opts.Output).Msg("write failed")
		return ExitIO
	}
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return ExitOK
	} else if err != nil {
		wlog.Error().Err(err).Msg("flush failed")
		return ExitIO
	}

	if !opts.NoFlag && reg.CountByInterest(true) == 0 {
		return opts.NoMatchExitCode
	}
	return ExitOK
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
