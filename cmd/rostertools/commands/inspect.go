package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/rostertools/parser"
)

// InspectFlags contains flags for the inspect command
type InspectFlags struct {
	Format string
}

// SetupInspectFlags creates and configures a FlagSet for the inspect command
func SetupInspectFlags() (*flag.FlagSet, *InspectFlags) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	flags := &InspectFlags{}

	fs.StringVar(&flags.Format, "f", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: rostertools inspect [flags] <file|url|->\n\n")
		Writef(fs.Output(), "Parse a roster and print a structural summary: format, size, record\n")
		Writef(fs.Output(), "and field counts, column names, and any parse warnings.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  rostertools inspect roster.json\n")
		Writef(fs.Output(), "  rostertools inspect -f json roster.csv\n")
		Writef(fs.Output(), "  cat roster.json | rostertools inspect -\n")
	}

	return fs, flags
}

type inspectSummary struct {
	Source       string   `json:"source" yaml:"source"`
	Format       string   `json:"format" yaml:"format"`
	Size         int64    `json:"size" yaml:"size"`
	LoadTime     string   `json:"loadTime" yaml:"loadTime"`
	RecordCount  int      `json:"recordCount" yaml:"recordCount"`
	FieldCount   int      `json:"fieldCount" yaml:"fieldCount"`
	EmptyRecords int      `json:"emptyRecords" yaml:"emptyRecords"`
	Fields       []string `json:"fields" yaml:"fields"`
	Warnings     []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// HandleInspect executes the inspect command
func HandleInspect(args []string) error {
	fs, flags := SetupInspectFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("inspect command requires exactly one file path, URL, or '-' for stdin")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	result, err := LoadRoster(fs.Arg(0))
	if err != nil {
		return err
	}

	summary := inspectSummary{
		Source:       FormatRosterPath(fs.Arg(0)),
		Format:       string(result.SourceFormat),
		Size:         result.SourceSize,
		LoadTime:     result.LoadTime.Round(time.Microsecond).String(),
		RecordCount:  result.Stats.RecordCount,
		FieldCount:   result.Stats.FieldCount,
		EmptyRecords: result.Stats.EmptyRecords,
		Fields:       result.Fields,
		Warnings:     result.Warnings,
	}

	if flags.Format != FormatText {
		return OutputStructured(summary, flags.Format)
	}

	out := os.Stdout
	Writef(out, "Source:  %s\n", summary.Source)
	Writef(out, "Format:  %s\n", summary.Format)
	Writef(out, "Size:    %s\n", parser.FormatBytes(summary.Size))
	Writef(out, "Loaded:  %s\n", summary.LoadTime)
	Writef(out, "Records: %d (%d empty)\n", summary.RecordCount, summary.EmptyRecords)
	Writef(out, "Fields:  %d\n", summary.FieldCount)
	for _, f := range summary.Fields {
		Writef(out, "  - %s\n", f)
	}
	if len(summary.Warnings) > 0 {
		Writef(out, "Warnings:\n")
		for _, w := range summary.Warnings {
			Writef(out, "  - %s\n", w)
		}
	}
	return nil
}
