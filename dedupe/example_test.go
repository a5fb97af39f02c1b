package dedupe_test

import (
	"fmt"
	"log"

	"github.com/erraggy/rostertools/dedupe"
	"github.com/erraggy/rostertools/parser"
)

// ExampleDeduper_DedupeRecords demonstrates keep-first deduplication
func ExampleDeduper_DedupeRecords() {
	records := []parser.Record{
		{"EMP ID": "E001", "Name": "Ada Park"},
		{"EMP ID": "E002", "Name": "Ben Ito"},
		{"EMP ID": "E001", "Name": "Ada P."},
	}

	d := dedupe.New()
	result, err := d.DedupeRecords(records)
	if err != nil {
		log.Fatalf("Dedupe failed: %v", err)
	}

	fmt.Printf("Kept: %d of %d\n", len(result.Records), result.TotalRecords)
	for _, r := range result.Removed {
		fmt.Printf("Removed row %d (%s)\n", r.Row, r.Value)
	}
	// Output:
	// Kept: 2 of 3
	// Removed row 3 (E001)
}

// ExampleDedupeWithOptions demonstrates keep-last deduplication via options
func ExampleDedupeWithOptions() {
	records := []parser.Record{
		{"EMP ID": "E001", "Name": "stale"},
		{"EMP ID": "E001", "Name": "current"},
	}

	result, err := dedupe.DedupeWithOptions(
		dedupe.WithRecords(records),
		dedupe.WithStrategy(dedupe.StrategyKeepLast),
	)
	if err != nil {
		log.Fatalf("Dedupe failed: %v", err)
	}

	fmt.Println(result.Records[0]["Name"])
	// Output:
	// current
}
