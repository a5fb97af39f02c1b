package parser

import (
	"bytes"
	"fmt"
	"testing"
)

// benchJSON builds a JSON roster with n records and a few duplicate IDs.
func benchJSON(n int) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, `{"EMP ID":"E%04d","Name":"Employee %d","Dept":"Dept %d"}`, i%(n/2+1), i, i%7)
	}
	buf.WriteByte(']')
	return buf.Bytes()
}

func BenchmarkParseBytesSmall(b *testing.B) {
	data := benchJSON(100)
	p := New()
	b.ReportAllocs()
	for b.Loop() {
		if _, err := p.ParseBytes(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseBytesLarge(b *testing.B) {
	data := benchJSON(10000)
	p := New()
	b.ReportAllocs()
	for b.Loop() {
		if _, err := p.ParseBytes(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkOrderedFieldsJSONArray(b *testing.B) {
	data := benchJSON(1000)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := orderedFieldsJSONArray(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParseCSV(b *testing.B) {
	var buf bytes.Buffer
	buf.WriteString("EMP ID,Name,Dept\n")
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&buf, "E%04d,Employee %d,Dept %d\n", i%500, i, i%7)
	}
	data := buf.Bytes()

	p := New()
	p.Format = SourceFormatCSV
	b.ReportAllocs()
	for b.Loop() {
		if _, err := p.ParseBytes(data); err != nil {
			b.Fatal(err)
		}
	}
}
