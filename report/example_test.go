package report_test

import (
	"fmt"

	"github.com/erraggy/rostertools/checker"
	"github.com/erraggy/rostertools/parser"
	"github.com/erraggy/rostertools/report"
)

// ExampleRenderer_RenderCheck demonstrates the default duplicate report.
func ExampleRenderer_RenderCheck() {
	records := []parser.Record{
		{"EMP ID": "A", "Name": "Ada Park"},
		{"EMP ID": "A", "Name": "Ada P."},
		{"EMP ID": "B", "Name": "Ben Ito"},
	}

	result, err := checker.New().CheckRecords(records)
	if err != nil {
		fmt.Println("check failed:", err)
		return
	}

	r := report.New()
	if err := r.RenderCheck(result); err != nil {
		fmt.Println("render failed:", err)
	}
	// Output:
	// --- EMP IDs with more than 1 entry (1 IDs found) ---
	// | EMP ID   |   Count of Entries |
	// |:---------|-------------------:|
	// | A        |                  2 |
}

// ExampleRenderer_RenderCheck_clean shows the message for a roster without
// duplicate identifiers.
func ExampleRenderer_RenderCheck_clean() {
	records := []parser.Record{
		{"EMP ID": "E001"},
		{"EMP ID": "E002"},
	}

	result, err := checker.New().CheckRecords(records)
	if err != nil {
		fmt.Println("check failed:", err)
		return
	}

	if err := report.New().RenderCheck(result); err != nil {
		fmt.Println("render failed:", err)
	}
	// Output:
	// No EMP IDs were found with more than one entry in the data.
}
