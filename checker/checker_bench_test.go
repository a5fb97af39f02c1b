package checker

import (
	"fmt"
	"testing"

	"github.com/erraggy/rostertools/parser"
)

// benchRoster builds a synthetic roster where every tenth identifier repeats.
func benchRoster(n int) []parser.Record {
	records := make([]parser.Record, n)
	for i := range records {
		id := i
		if i%10 == 0 {
			id = i / 10
		}
		records[i] = parser.Record{
			"EMP ID": fmt.Sprintf("E%05d", id),
			"Name":   fmt.Sprintf("Person %d", i),
		}
	}
	return records
}

// BenchmarkCheckRecordsSmall benchmarks checking a 1k-record roster
func BenchmarkCheckRecordsSmall(b *testing.B) {
	records := benchRoster(1_000)
	c := New()

	for b.Loop() {
		_, err := c.CheckRecords(records)
		if err != nil {
			b.Fatalf("Failed to check: %v", err)
		}
	}
}

// BenchmarkCheckRecordsLarge benchmarks checking a 100k-record roster
func BenchmarkCheckRecordsLarge(b *testing.B) {
	records := benchRoster(100_000)
	c := New()

	for b.Loop() {
		_, err := c.CheckRecords(records)
		if err != nil {
			b.Fatalf("Failed to check: %v", err)
		}
	}
}

// BenchmarkCheckRecordsWithRows benchmarks row collection on a 100k-record roster
func BenchmarkCheckRecordsWithRows(b *testing.B) {
	records := benchRoster(100_000)
	c := New()
	c.IncludeRows = true

	for b.Loop() {
		_, err := c.CheckRecords(records)
		if err != nil {
			b.Fatalf("Failed to check: %v", err)
		}
	}
}
