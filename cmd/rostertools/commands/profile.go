package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/erraggy/rostertools/profiler"
)

// ProfileFlags contains flags for the profile command
type ProfileFlags struct {
	Format        string
	ByDuplication bool
	SampleSize    int
	Timestamps    bool
}

// SetupProfileFlags creates and configures a FlagSet for the profile command
func SetupProfileFlags() (*flag.FlagSet, *ProfileFlags) {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	flags := &ProfileFlags{}

	fs.StringVar(&flags.Format, "f", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.ByDuplication, "by-duplication", false, "order columns by how duplicated their values are")
	fs.IntVar(&flags.SampleSize, "samples", 0, "sample values to retain per column (default 5)")
	fs.BoolVar(&flags.Timestamps, "timestamps", false, "detect timestamp-valued columns")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: rostertools profile [flags] <file|url|->\n\n")
		Writef(fs.Output(), "Print per-column statistics for a roster: presence, distinct values,\n")
		Writef(fs.Output(), "the most frequent value, and inferred type. Columns whose top value\n")
		Writef(fs.Output(), "repeats are candidates for a duplicate check.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  rostertools profile roster.json\n")
		Writef(fs.Output(), "  rostertools profile -by-duplication -f json roster.csv\n")
	}

	return fs, flags
}

// HandleProfile executes the profile command
func HandleProfile(args []string) error {
	fs, flags := SetupProfileFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("profile command requires exactly one file path, URL, or '-' for stdin")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	parseResult, err := LoadRoster(fs.Arg(0))
	if err != nil {
		return err
	}

	p := profiler.New()
	if flags.SampleSize > 0 {
		p.SampleSize = flags.SampleSize
	}
	p.DetectTimestamps = flags.Timestamps
	result := p.Profile(parseResult)

	fields := result.Fields
	if flags.ByDuplication {
		fields = result.FieldsByDuplication()
	}

	if flags.Format != FormatText {
		return OutputStructured(fields, flags.Format)
	}

	Writef(os.Stdout, "Profiled %d records from %s\n\n", result.RecordCount, FormatRosterPath(fs.Arg(0)))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	Writef(w, "COLUMN\tPRESENT\tMISSING\tDISTINCT\tTOP VALUE\tCOUNT\tTYPE\n")
	for _, fp := range fields {
		Writef(w, "%s\t%d\t%d\t%d\t%s\t%d\t%s\n",
			fp.Name, fp.Present, fp.Missing, fp.Distinct, fp.TopValue, fp.MaxCount, fp.Type)
	}
	return w.Flush()
}
