package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/rostertools/generator"
	"github.com/erraggy/rostertools/profiler"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	TypeName    string
	PackageName string
	Output      string
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.TypeName, "type", "", `name for the generated struct type (default "RosterRecord")`)
	fs.StringVar(&flags.PackageName, "package", "", `package name for the generated file (default "roster")`)
	fs.StringVar(&flags.Output, "o", "", "output file path (default stdout)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: rostertools generate [flags] <file|url|->\n\n")
		Writef(fs.Output(), "Generate a Go struct type from a roster's columns and inferred types.\n")
		Writef(fs.Output(), "Columns missing from some records become pointer fields.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  rostertools generate roster.json\n")
		Writef(fs.Output(), "  rostertools generate -type Employee -package hr -o employee.go roster.csv\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path, URL, or '-' for stdin")
	}

	parseResult, err := LoadRoster(fs.Arg(0))
	if err != nil {
		return err
	}

	p := profiler.New()
	p.DetectTimestamps = true
	profile := p.Profile(parseResult)

	g := generator.New()
	if flags.TypeName != "" {
		g.TypeName = flags.TypeName
	}
	if flags.PackageName != "" {
		g.PackageName = flags.PackageName
	}
	src, err := g.Generate(profile)
	if err != nil {
		return err
	}

	return WriteOutput(flags.Output, src)
}
