// Package checker provides duplicate-identifier analysis for rosters.
//
// The checker groups roster records on an identifier column (the key field,
// "EMP ID" by default), builds a frequency table of value occurrence counts,
// and reports the duplicate subset: every value shared by more than one
// record. It is the analytical core behind the rostertools check command,
// the HTTP service, and the MCP server.
//
// # Frequency Table
//
// The frequency table maps each distinct identifier value to the number of
// records sharing it. Two invariants hold for every result:
//
//   - The count for a value equals the number of records carrying that value.
//   - The counts sum to exactly CheckResult.KeyedRecords, the number of
//     records with a non-null key value.
//
// The table is ordered by count descending, then value ascending, so results
// are deterministic across runs and platforms.
//
// # Missing Keys
//
// Records lacking the key field, or carrying an explicit null for it, are
// excluded from the frequency table the same way a tabular group-and-count
// drops null keys. The MissingKeyPolicy decides what else happens:
//
//   - MissingKeyReport (default): a warning issue per affected record
//   - MissingKeySkip: silently excluded
//   - MissingKeyFail: an error issue per affected record; the check fails
//
// # Usage
//
// Check a file directly:
//
//	result, err := checker.CheckWithOptions(
//	    checker.WithFilePath("membercsvjson.json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range result.Duplicates {
//	    fmt.Printf("%s appears %d times\n", d.Value, d.Count)
//	}
//
// Or chain from an existing parse for repeated analysis:
//
//	parsed, _ := parser.ParseWithOptions(parser.WithFilePath("roster.json"))
//	byID, _ := checker.CheckWithOptions(checker.WithParsed(*parsed))
//	byEmail, _ := checker.CheckWithOptions(
//	    checker.WithParsed(*parsed),
//	    checker.WithKeyField("Email"),
//	)
package checker
