package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	iofs "io/fs"
	"os"

	"github.com/erraggy/rostertools/checker"
	"github.com/erraggy/rostertools/history"
	"github.com/erraggy/rostertools/parser"
	"github.com/erraggy/rostertools/report"
)

// DefaultRosterFile is checked when no file argument is given, preserving
// the tool's original invocation surface.
const DefaultRosterFile = "membercsvjson.json"

// CheckFlags contains flags for the check command
type CheckFlags struct {
	Key        string
	Format     string
	Style      string
	MinCount   int
	Missing    string
	Rows       bool
	StoreURI   string
	FailOnDups bool
}

// SetupCheckFlags creates and configures a FlagSet for the check command.
// Returns the FlagSet and a CheckFlags struct with bound flag variables.
func SetupCheckFlags() (*flag.FlagSet, *CheckFlags) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	flags := &CheckFlags{}

	fs.StringVar(&flags.Key, "key", "", `identifier column to check (default "EMP ID")`)
	fs.StringVar(&flags.Format, "f", "", "output format: text, json, or yaml (default text)")
	fs.StringVar(&flags.Style, "style", "", "table style for text output: markdown or aligned (default markdown)")
	fs.IntVar(&flags.MinCount, "min", 2, "duplicate threshold: report values with at least this many records")
	fs.StringVar(&flags.Missing, "missing", "", "handling of records without a key value: report, skip, or fail (default report)")
	fs.BoolVar(&flags.Rows, "rows", false, "include the record indexes of each duplicate")
	fs.StringVar(&flags.StoreURI, "store-uri", "", "PostgreSQL URI; record this scan in the history store")
	fs.BoolVar(&flags.FailOnDups, "fail-on-dups", false, "exit with status 1 when duplicates are found")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: rostertools check [flags] [file|url|-]\n\n")
		Writef(fs.Output(), "Check a roster for duplicate identifiers. With no file argument the\n")
		Writef(fs.Output(), "default roster %q in the working directory is checked.\n\n", DefaultRosterFile)
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  rostertools check\n")
		Writef(fs.Output(), "  rostertools check roster.csv\n")
		Writef(fs.Output(), "  rostertools check -key \"Badge\" -min 3 roster.json\n")
		Writef(fs.Output(), "  rostertools check -f json roster.json | jq '.Duplicates'\n")
		Writef(fs.Output(), "  cat roster.json | rostertools check -\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Check completed (also when the roster file does not exist)\n")
		Writef(fs.Output(), "  1    Check failed, or duplicates found with -fail-on-dups\n")
	}

	return fs, flags
}

// HandleCheck executes the check command
func HandleCheck(args []string) error {
	fs, flags := SetupCheckFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("check command accepts at most one file path, URL, or '-' for stdin")
	}

	// Config file defaults fill flags the user left unset.
	ApplyDefault(&flags.Key, checkKeyField)
	ApplyDefault(&flags.Format, checkFormat)
	ApplyDefault(&flags.Style, checkStyle)
	ApplyDefault(&flags.Missing, checkMissing)
	ApplyDefault(&flags.StoreURI, checkStoreURI)
	if flags.Format == "" {
		flags.Format = FormatText
	}
	if flags.Style == "" {
		flags.Style = string(report.StyleMarkdown)
	}
	if flags.Missing == "" {
		flags.Missing = string(checker.MissingKeyReport)
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if !report.IsValidStyle(flags.Style) {
		return fmt.Errorf("invalid style '%s'. Valid styles: %v", flags.Style, report.ValidStyles())
	}
	if !checker.IsValidMissingKeyPolicy(flags.Missing) {
		return fmt.Errorf("invalid missing-key policy '%s'. Valid policies: %v", flags.Missing, checker.ValidMissingKeyPolicies())
	}

	rosterPath := DefaultRosterFile
	if fs.NArg() == 1 {
		rosterPath = fs.Arg(0)
	}

	result, err := runCheck(rosterPath, flags)
	if err != nil {
		// A missing roster is the expected quiet outcome, reported on stdout
		// the way the original tool always has.
		if errors.Is(err, iofs.ErrNotExist) {
			fmt.Printf("Error: File '%s' not found.\n", rosterPath)
			return nil
		}
		return err
	}

	if flags.StoreURI != "" {
		if err := recordScan(flags.StoreURI, result); err != nil {
			return err
		}
	}

	if flags.Format != FormatText {
		if err := OutputStructured(result, flags.Format); err != nil {
			return err
		}
	} else {
		r := report.New()
		r.Style = report.Style(flags.Style)
		if err := r.RenderCheck(result); err != nil {
			return err
		}
	}

	if flags.FailOnDups && result.HasDuplicates() {
		return fmt.Errorf("found %d duplicated %s values", len(result.Duplicates), result.KeyField)
	}
	return nil
}

func runCheck(rosterPath string, flags *CheckFlags) (*checker.CheckResult, error) {
	opts := []checker.Option{
		checker.WithMinCount(flags.MinCount),
		checker.WithMissingKeyPolicy(checker.MissingKeyPolicy(flags.Missing)),
		checker.WithIncludeRows(flags.Rows),
	}
	if flags.Key != "" {
		opts = append(opts, checker.WithKeyField(flags.Key))
	}

	if rosterPath == StdinFilePath {
		parseResult, err := parser.ParseWithOptions(parser.WithStdin())
		if err != nil {
			return nil, err
		}
		opts = append(opts, checker.WithParsed(*parseResult))
	} else {
		opts = append(opts, checker.WithFilePath(rosterPath))
	}
	return checker.CheckWithOptions(opts...)
}

// recordScan persists a check result to the history store.
func recordScan(databaseURI string, result *checker.CheckResult) error {
	ctx := context.Background()
	store, err := history.Open(ctx, databaseURI)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	scan, err := store.RecordScan(ctx, result)
	if err != nil {
		return err
	}
	Writef(os.Stderr, "Recorded scan %s\n", scan.ID)
	return nil
}
