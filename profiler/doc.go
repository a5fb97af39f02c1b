// Package profiler computes per-column statistics for rosters.
//
// The profiler answers the questions that come up before running a duplicate
// check: which columns exist, how complete they are, whether a column's
// values repeat, and whether a string column is really a timestamp. Each
// column produces a FieldProfile with presence counts, distinct-value counts,
// the highest single-value occurrence count, a type classification, and a few
// sample values.
//
// # Usage
//
//	result, err := parser.New().Parse("membercsvjson.json")
//	if err != nil {
//	    return err
//	}
//	profile := profiler.New().Profile(result)
//	for _, fp := range profile.FieldsByDuplication() {
//	    fmt.Printf("%s: %d distinct over %d present (max %d)\n",
//	        fp.Name, fp.Distinct, fp.Present, fp.MaxCount)
//	}
//
// FieldsByDuplication orders columns by value concentration, so identifier
// columns with duplicates surface first. Timestamp detection runs every
// non-empty string value through a lenient date parser; short pure-digit
// values never qualify, keeping numeric identifier columns out of the
// timestamp bucket.
package profiler
