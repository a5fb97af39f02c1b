package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/rostertools/converter"
	"github.com/erraggy/rostertools/dedupe"
	"github.com/erraggy/rostertools/parser"
)

// DedupeFlags contains flags for the dedupe command
type DedupeFlags struct {
	Key      string
	Strategy string
	Output   string
	Format   string
}

// SetupDedupeFlags creates and configures a FlagSet for the dedupe command
func SetupDedupeFlags() (*flag.FlagSet, *DedupeFlags) {
	fs := flag.NewFlagSet("dedupe", flag.ContinueOnError)
	flags := &DedupeFlags{}

	fs.StringVar(&flags.Key, "key", "", `identifier column to dedupe on (default "EMP ID")`)
	fs.StringVar(&flags.Strategy, "strategy", string(dedupe.StrategyKeepFirst), "which record wins: keep-first, keep-last, or fail")
	fs.StringVar(&flags.Output, "o", "", "output file path (default stdout)")
	fs.StringVar(&flags.Format, "format", "", "output roster format: json, ndjson, csv, or yaml (default: source format)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: rostertools dedupe [flags] <file|url|->\n\n")
		Writef(fs.Output(), "Remove records that share an identifier value, keeping one record per\n")
		Writef(fs.Output(), "value. The cleaned roster goes to stdout or -o; a removal summary goes\n")
		Writef(fs.Output(), "to stderr.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  rostertools dedupe roster.json > clean.json\n")
		Writef(fs.Output(), "  rostertools dedupe -strategy keep-last -o clean.csv roster.csv\n")
		Writef(fs.Output(), "  rostertools dedupe -strategy fail roster.json\n")
	}

	return fs, flags
}

// HandleDedupe executes the dedupe command
func HandleDedupe(args []string) error {
	fs, flags := SetupDedupeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("dedupe command requires exactly one file path, URL, or '-' for stdin")
	}

	ApplyDefault(&flags.Key, checkKeyField)

	if !dedupe.IsValidStrategy(flags.Strategy) {
		return fmt.Errorf("invalid strategy '%s'. Valid strategies: %v", flags.Strategy, dedupe.ValidStrategies())
	}
	if flags.Format != "" && !parser.IsValidFormat(flags.Format) {
		return fmt.Errorf("invalid roster format '%s'. Valid formats: %v", flags.Format, parser.ValidFormats())
	}

	parseResult, err := LoadRoster(fs.Arg(0))
	if err != nil {
		return err
	}

	opts := []dedupe.Option{
		dedupe.WithParsed(*parseResult),
		dedupe.WithStrategy(dedupe.Strategy(flags.Strategy)),
	}
	if flags.Key != "" {
		opts = append(opts, dedupe.WithKeyField(flags.Key))
	}
	result, err := dedupe.DedupeWithOptions(opts...)
	if err != nil {
		return err
	}

	targetFormat := parseResult.SourceFormat
	if flags.Format != "" {
		targetFormat = parser.SourceFormat(flags.Format)
	}
	cleaned := *parseResult
	cleaned.Records = result.Records
	cleaned.Fields = result.Fields
	converted, err := converter.ConvertWithOptions(
		converter.WithParsed(cleaned),
		converter.WithTargetFormat(targetFormat),
	)
	if err != nil {
		return err
	}

	if err := WriteOutput(flags.Output, converted.Data); err != nil {
		return err
	}

	Writef(os.Stderr, "Removed %d of %d records (%d duplicated %s values)\n",
		result.RemovedCount(), result.TotalRecords, result.DuplicateValues, result.KeyField)
	return nil
}
