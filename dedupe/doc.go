// Package dedupe removes duplicate-identifier records from rosters.
//
// Deduplication is the remediation step after a checker run: once duplicates
// are known, the deduper drops the redundant records so that each identifier
// value keeps exactly one. The surviving records preserve their relative
// input order.
//
// # Strategies
//
//   - StrategyKeepFirst (default): the earliest record per identifier survives
//   - StrategyKeepLast: the latest record per identifier survives
//   - StrategyFail: any duplicate aborts with an error naming the identifier
//
// Records missing the key field, or carrying null for it, are never removed;
// they cannot be grouped, so dropping them would silently lose data.
//
// # Usage
//
//	result, err := dedupe.DedupeWithOptions(
//	    dedupe.WithFilePath("membercsvjson.json"),
//	    dedupe.WithStrategy(dedupe.StrategyKeepLast),
//	)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("removed %d of %d records\n", result.RemovedCount(), result.TotalRecords)
package dedupe
