// Package differ compares two rosters keyed by an identifier field.
//
// A diff answers "what changed between yesterday's export and today's":
// which identifiers appeared, which disappeared, which kept their identifier
// but changed record content, and how duplicate counts moved. Duplicated
// identifiers are compared as multisets of records, so reordering the same
// records is never reported as a change.
//
// # Usage
//
//	result, err := differ.New().DiffFiles("roster-old.json", "roster-new.json")
//	if err != nil {
//	    return err
//	}
//	if result.HasChanges() {
//	    fmt.Printf("+%d -%d ~%d\n", len(result.Added), len(result.Removed), len(result.Changed))
//	}
//
// All result lists are ordered by key ascending, so output is deterministic
// and diffable itself.
package differ
