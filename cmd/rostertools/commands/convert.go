package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/rostertools/converter"
	"github.com/erraggy/rostertools/parser"
)

// ConvertFlags contains flags for the convert command
type ConvertFlags struct {
	To     string
	Output string
}

// SetupConvertFlags creates and configures a FlagSet for the convert command
func SetupConvertFlags() (*flag.FlagSet, *ConvertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags := &ConvertFlags{}

	fs.StringVar(&flags.To, "to", "", "target roster format: json, ndjson, csv, or yaml (required)")
	fs.StringVar(&flags.Output, "o", "", "output file path (default stdout)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: rostertools convert -to <format> [flags] <file|url|->\n\n")
		Writef(fs.Output(), "Convert a roster between JSON, NDJSON, CSV, and YAML. Records and\n")
		Writef(fs.Output(), "column order are preserved.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  rostertools convert -to csv roster.json > roster.csv\n")
		Writef(fs.Output(), "  rostertools convert -to yaml -o roster.yaml roster.csv\n")
	}

	return fs, flags
}

// HandleConvert executes the convert command
func HandleConvert(args []string) error {
	fs, flags := SetupConvertFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("convert command requires exactly one file path, URL, or '-' for stdin")
	}
	if flags.To == "" {
		fs.Usage()
		return fmt.Errorf("convert command requires -to")
	}
	if !parser.IsValidFormat(flags.To) {
		return fmt.Errorf("invalid roster format '%s'. Valid formats: %v", flags.To, parser.ValidFormats())
	}

	parseResult, err := LoadRoster(fs.Arg(0))
	if err != nil {
		return err
	}

	result, err := converter.ConvertWithOptions(
		converter.WithParsed(*parseResult),
		converter.WithTargetFormat(parser.SourceFormat(flags.To)),
	)
	if err != nil {
		return err
	}

	if err := WriteOutput(flags.Output, result.Data); err != nil {
		return err
	}

	Writef(os.Stderr, "Converted %d records: %s (%s) -> %s (%s)\n",
		result.RecordCount,
		result.SourceFormat, parser.FormatBytes(result.SourceSize),
		result.TargetFormat, parser.FormatBytes(result.TargetSize))
	return nil
}
