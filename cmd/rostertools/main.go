// Command rostertools checks employee rosters for duplicate identifiers and
// provides supporting roster data-quality tools.
package main

import (
	"fmt"
	"os"

	"github.com/erraggy/rostertools"
	"github.com/erraggy/rostertools/cmd/rostertools/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("rostertools v%s\n", rostertools.Version())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "check":
		err = commands.HandleCheck(args)
	case "inspect":
		err = commands.HandleInspect(args)
	case "profile":
		err = commands.HandleProfile(args)
	case "dedupe":
		err = commands.HandleDedupe(args)
	case "convert":
		err = commands.HandleConvert(args)
	case "diff":
		err = commands.HandleDiff(args)
	case "generate":
		err = commands.HandleGenerate(args)
	case "history":
		err = commands.HandleHistory(args)
	case "serve":
		err = commands.HandleServe(args)
	case "mcp":
		err = commands.HandleMCP(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when
// nothing is within edit distance 2.
func suggestCommand(input string) string {
	known := []string{
		"check", "inspect", "profile", "dedupe", "convert", "diff",
		"generate", "history", "serve", "mcp", "version", "help",
	}

	best := ""
	bestDist := 3
	for _, cmd := range known {
		if d := editDistance(input, cmd); d < bestDist {
			best = cmd
			bestDist = d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Printf(`rostertools v%s - employee roster data-quality toolkit

Usage: rostertools <command> [flags] [arguments]

Commands:
  check      Check a roster for duplicate identifiers
  inspect    Parse a roster and print a structural summary
  profile    Print per-column statistics for a roster
  dedupe     Remove duplicate-identifier records from a roster
  convert    Convert a roster between JSON, NDJSON, CSV, and YAML
  diff       Compare two rosters keyed by an identifier
  generate   Generate a Go struct type from a roster's schema
  history    List past scans recorded in the history store
  serve      Run the HTTP daemon
  mcp        Run the MCP server on stdio
  version    Print version information
  help       Show this help message

Run 'rostertools <command> -h' for command-specific flags.

Examples:
  rostertools check membercsvjson.json
  rostertools check -key "EMP ID" -min 3 roster.csv
  rostertools dedupe -strategy keep-last -o clean.json roster.json
  rostertools diff -key "EMP ID" old.json new.json
`, rostertools.Version())
}
