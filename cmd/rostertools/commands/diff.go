package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/rostertools/differ"
)

// DiffFlags contains flags for the diff command
type DiffFlags struct {
	Key           string
	Format        string
	FailOnChanges bool
}

// SetupDiffFlags creates and configures a FlagSet for the diff command
func SetupDiffFlags() (*flag.FlagSet, *DiffFlags) {
	fs := flag.NewFlagSet("diff", flag.ContinueOnError)
	flags := &DiffFlags{}

	fs.StringVar(&flags.Key, "key", "", `identifier column to match records on (default "EMP ID")`)
	fs.StringVar(&flags.Format, "f", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.FailOnChanges, "fail-on-changes", false, "exit with status 1 when the rosters differ")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: rostertools diff [flags] <old-file> <new-file>\n\n")
		Writef(fs.Output(), "Compare two rosters keyed by an identifier column and report added,\n")
		Writef(fs.Output(), "removed, and changed identifiers, plus shifts in duplication.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  rostertools diff old.json new.json\n")
		Writef(fs.Output(), "  rostertools diff -key \"Badge\" -f json old.csv new.csv\n")
	}

	return fs, flags
}

// HandleDiff executes the diff command
func HandleDiff(args []string) error {
	fs, flags := SetupDiffFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("diff command requires exactly two file paths")
	}

	ApplyDefault(&flags.Key, checkKeyField)
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	d := differ.New()
	if flags.Key != "" {
		d.KeyField = flags.Key
	}
	result, err := d.DiffFiles(fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}

	if flags.Format != FormatText {
		if err := OutputStructured(result, flags.Format); err != nil {
			return err
		}
	} else {
		renderDiff(result)
	}

	if flags.FailOnChanges && result.HasChanges() {
		return fmt.Errorf("rosters differ")
	}
	return nil
}

func renderDiff(result *differ.DiffResult) {
	out := os.Stdout
	Writef(out, "Compared %d -> %d records on %q\n", result.OldRecords, result.NewRecords, result.KeyField)
	if !result.HasChanges() {
		Writef(out, "No differences found.\n")
		return
	}
	if len(result.Added) > 0 {
		Writef(out, "Added (%d):\n", len(result.Added))
		for _, v := range result.Added {
			Writef(out, "  + %s\n", v)
		}
	}
	if len(result.Removed) > 0 {
		Writef(out, "Removed (%d):\n", len(result.Removed))
		for _, v := range result.Removed {
			Writef(out, "  - %s\n", v)
		}
	}
	if len(result.Changed) > 0 {
		Writef(out, "Changed (%d):\n", len(result.Changed))
		for _, v := range result.Changed {
			Writef(out, "  ~ %s\n", v)
		}
	}
	if len(result.DuplicateDelta) > 0 {
		Writef(out, "Duplication changes (%d):\n", len(result.DuplicateDelta))
		for _, d := range result.DuplicateDelta {
			Writef(out, "  %s: %d -> %d\n", d.Value, d.OldCount, d.NewCount)
		}
	}
}
