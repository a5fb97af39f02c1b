package generator

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser title-cases the words of a roster column name.
// English casing covers the exports this tool sees; identifiers like
// "EMP ID" title to "Emp Id" before the words are joined.
var titleCaser = cases.Title(language.English)

// fieldName derives an exported Go identifier from a roster column name.
// Words split on any non-alphanumeric rune, each word is title-cased, and a
// leading digit gets a "Field" prefix so the result is always a legal
// identifier.
func fieldName(column string) string {
	words := strings.FieldsFunc(column, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var sb strings.Builder
	for _, word := range words {
		sb.WriteString(titleCaser.String(strings.ToLower(word)))
	}

	name := sb.String()
	if name == "" {
		return "Field"
	}
	if unicode.IsDigit(rune(name[0])) {
		return "Field" + name
	}
	return name
}
