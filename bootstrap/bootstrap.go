package bootstrap

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/michalbiesek/lsmem/config"
	"github.com/michalbiesek/lsmem/memory"
	"github.com/michalbiesek/lsmem/report"
	"github.com/michalbiesek/lsmem/sysfs"
)

// Options is the parsed command line.
type Options struct {
	ConfigFilename string
	All            bool
	Bytes          bool
	NoHeadings     bool
	Columns        []string
	JSON           bool
	Pairs          bool
	Raw            bool
	Sysroot        string
}

// Run wires the whole pipeline: config file, logger, attribute store,
// scanner, coalescer, report. Every failure is fatal, a partial
// topology snapshot must never be presented as complete.
func Run(opts Options) {
	cfg, err := config.Parse(opts.ConfigFilename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: unknown log level %q\n", cfg.LogLevel)
		os.Exit(1)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)

	format := report.FormatTable
	selected := 0
	if opts.JSON {
		format = report.FormatJSON
		selected++
	}
	if opts.Pairs {
		format = report.FormatPairs
		selected++
	}
	if opts.Raw {
		format = report.FormatRaw
		selected++
	}
	if selected > 1 {
		fmt.Fprintln(os.Stderr, "options --json, --pairs and --raw are mutually exclusive")
		os.Exit(1)
	}

	columns := opts.Columns
	if len(columns) == 0 {
		columns = cfg.Columns
	}
	sel, err := memory.ResolveColumns(columns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}

	sysroot := opts.Sysroot
	if sysroot == "" {
		sysroot = cfg.Sysroot
	}
	store := sysfs.NewStore(sysroot)
	scanner := memory.NewScanner(store, logger.With().Str("component", "memory-scanner").Logger())

	snapshot, err := scanner.Snapshot(sel, opts.All)
	if err != nil {
		logger.Error().Err(err).Msg("memory scan failed")
		fmt.Fprintf(os.Stderr, "lsmem: %s\n", err)
		os.Exit(1)
	}
	logger.Debug().
		Str("online", humanize.IBytes(snapshot.Totals.Online)).
		Str("offline", humanize.IBytes(snapshot.Totals.Offline)).
		Int("ranges", len(snapshot.Ranges)).
		Msg("scan complete")

	model := &report.Model{
		Selection: sel,
		BlockSize: snapshot.BlockSize,
		Ranges:    snapshot.Ranges,
		Totals:    snapshot.Totals,
		Bytes:     opts.Bytes,
		HaveNodes: snapshot.HaveNodes,
	}
	renderer := report.NewRenderer(os.Stdout, format, opts.NoHeadings)
	if err := renderer.Render(model); err != nil {
		logger.Error().Err(err).Msg("render failed")
		os.Exit(1)
	}
	fmt.Println()
	for _, line := range model.Summary() {
		fmt.Println(line)
	}
}
