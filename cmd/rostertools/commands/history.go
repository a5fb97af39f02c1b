package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/erraggy/rostertools/history"
)

// HistoryFlags contains flags for the history command
type HistoryFlags struct {
	DatabaseURI string
	Limit       int
	Format      string
}

// SetupHistoryFlags creates and configures a FlagSet for the history command
func SetupHistoryFlags() (*flag.FlagSet, *HistoryFlags) {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	flags := &HistoryFlags{}

	fs.StringVar(&flags.DatabaseURI, "database-uri", "", "PostgreSQL URI of the history store (default $ROSTERTOOLS_DATABASE_URI)")
	fs.IntVar(&flags.Limit, "n", 20, "number of scans to list (0 for all)")
	fs.StringVar(&flags.Format, "f", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: rostertools history [flags]\n\n")
		Writef(fs.Output(), "List past scans recorded with 'check -store-uri' or by the HTTP daemon,\n")
		Writef(fs.Output(), "most recent first.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  rostertools history -database-uri postgres://localhost/rostertools\n")
		Writef(fs.Output(), "  ROSTERTOOLS_DATABASE_URI=postgres://localhost/rostertools rostertools history -n 5\n")
	}

	return fs, flags
}

// HandleHistory executes the history command
func HandleHistory(args []string) error {
	fs, flags := SetupHistoryFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("history command takes no arguments")
	}

	ApplyDefault(&flags.DatabaseURI, historyDatabase)
	if flags.DatabaseURI == "" {
		flags.DatabaseURI = os.Getenv("ROSTERTOOLS_DATABASE_URI")
	}
	if flags.DatabaseURI == "" {
		return fmt.Errorf("no history store configured: pass -database-uri or set ROSTERTOOLS_DATABASE_URI")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	ctx := context.Background()
	store, err := history.Open(ctx, flags.DatabaseURI)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	scans, err := store.ListScans(ctx, flags.Limit)
	if err != nil {
		return err
	}

	if flags.Format != FormatText {
		return OutputStructured(scans, flags.Format)
	}

	if len(scans) == 0 {
		fmt.Println("No scans recorded.")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	Writef(w, "WHEN\tSOURCE\tKEY\tRECORDS\tDISTINCT\tDUP VALUES\tDUP RECORDS\tID\n")
	for _, s := range scans {
		Writef(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			s.CreatedAt.Local().Format(time.RFC3339), s.Source, s.KeyField,
			s.RecordCount, s.DistinctValues, s.DuplicateValues, s.DuplicateRecords, s.ID)
	}
	return w.Flush()
}
