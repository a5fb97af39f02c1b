// Package parser provides roster file loading for rostertools.
//
// A roster is an ordered collection of records, each record a mapping from
// column name to value. The parser loads rosters from local files, URLs,
// readers, byte slices, or standard input, in any of four formats:
//
//   - JSON: an array of objects (the primary interchange format)
//   - NDJSON: newline-delimited JSON, one object per line
//   - CSV: comma-separated values with a header row
//   - YAML: a sequence of mappings
//
// Format is detected from the file extension where available, then from the
// content. CSV cannot be reliably sniffed from content, so CSV input arriving
// without a .csv path requires WithFormat (or Parser.Format).
//
// # Structure Validation
//
// With ValidateStructure enabled (the default), the roster root must be a
// collection and every element a mapping; anything else is an explicit error
// rather than a silently mangled roster. Disabling it degrades unparseable
// elements to warnings where possible.
//
// # Field Order
//
// ParseResult.Fields lists column names in first-seen source order. Go maps
// do not preserve key order, so the parser recovers it from a token-level
// pass (JSON/NDJSON), the header row (CSV), or the node tree (YAML). The
// converter package depends on this order for round-trip output.
//
// # Usage
//
//	result, err := parser.ParseWithOptions(
//	    parser.WithFilePath("membercsvjson.json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d records, %d fields\n", result.Stats.RecordCount, result.Stats.FieldCount)
package parser
