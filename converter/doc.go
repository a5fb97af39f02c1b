// Package converter converts rosters between encodings.
//
// Rosters arrive as JSON arrays, NDJSON streams, CSV exports, or YAML
// sequences; the converter re-encodes a parsed roster into any of those
// formats. CSV output preserves the source's first-seen column order (the
// ParseResult's Fields); the object encodings order keys alphabetically per
// their marshalers.
//
// # Usage
//
//	result, err := converter.ConvertWithOptions(
//	    converter.WithFilePath("membercsvjson.json"),
//	    converter.WithTargetFormat(parser.SourceFormatCSV),
//	)
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Data)
//
// Nested values in CSV cells are embedded as JSON rather than dropped, so a
// conversion can always be inspected for what it flattened.
package converter
