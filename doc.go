// Package rostertools provides tools for checking the quality of employee
// roster exports, centered on finding records that share an identifier.
//
// # Overview
//
// The library consists of these primary packages:
//
//   - parser: Load rosters from JSON, NDJSON, CSV, or YAML files, URLs, or streams
//   - checker: Count identifier values and report the ones that repeat
//   - report: Render duplicate reports as markdown or aligned tables
//   - profiler: Per-column statistics to find identifier candidates
//   - dedupe: Remove duplicate-identifier records
//   - converter: Convert rosters between supported formats
//   - differ: Compare two rosters keyed by an identifier
//   - generator: Generate Go struct types from a roster's schema
//   - history: Record scans in PostgreSQL
//   - service: HTTP daemon exposing checks, metrics, and Kafka ingest
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/erraggy/rostertools
//
// # Quick Start
//
// Check a roster for duplicate identifiers:
//
//	import "github.com/erraggy/rostertools/checker"
//
//	result, err := checker.CheckWithOptions(
//		checker.WithFilePath("membercsvjson.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, d := range result.Duplicates {
//		fmt.Printf("%s appears %d times\n", d.Value, d.Count)
//	}
//
// Render the classic report:
//
//	import "github.com/erraggy/rostertools/report"
//
//	r := report.New()
//	if err := r.RenderCheck(result); err != nil {
//		log.Fatal(err)
//	}
//
// Remove the duplicates:
//
//	import "github.com/erraggy/rostertools/dedupe"
//
//	cleaned, err := dedupe.DedupeWithOptions(
//		dedupe.WithFilePath("membercsvjson.json"),
//		dedupe.WithStrategy(dedupe.StrategyKeepLast),
//	)
//
// # Command Line
//
// The rostertools command wraps every package:
//
//	rostertools check membercsvjson.json
//	rostertools check -key "EMP ID" -min 3 -f json roster.csv
//	rostertools dedupe -strategy keep-last -o clean.json roster.json
//	rostertools serve -l :8020
//
// Run "rostertools help" for the full command list.
package rostertools
