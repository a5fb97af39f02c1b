package converter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/rostertools/parser"
)

// defaultIndent is the JSON indentation used when Converter.Indent is empty.
const defaultIndent = "  "

// ConversionResult contains the results of converting a roster between formats
type ConversionResult struct {
	// Data is the converted roster encoding
	Data []byte
	// SourceFormat is the format the roster was parsed from
	SourceFormat parser.SourceFormat
	// TargetFormat is the format the roster was converted to
	TargetFormat parser.SourceFormat
	// RecordCount is the number of records converted
	RecordCount int
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// TargetSize is the size of the converted data in bytes
	TargetSize int64
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// SourcePath is the original source path from the parsed roster
	SourcePath string
}

// Converter converts rosters between encodings
type Converter struct {
	// Format is the target encoding.
	// Defaults to parser.SourceFormatJSON if not set.
	Format parser.SourceFormat
	// Indent is the JSON indentation string.
	// Defaults to two spaces if not set.
	Indent string
	// UserAgent is the User-Agent string used when fetching URLs
	// Defaults to "rostertools" if not set
	UserAgent string
}

// New creates a new Converter instance with default settings
func New() *Converter {
	return &Converter{
		Format: parser.SourceFormatJSON,
		Indent: defaultIndent,
	}
}

// ConvertFile parses a roster file or URL and converts it to the given format.
func ConvertFile(path string, format parser.SourceFormat) (*ConversionResult, error) {
	c := New()
	c.Format = format
	return c.Convert(path)
}

// ConvertWithOptions converts a roster using functional options.
//
// Example:
//
//	result, err := converter.ConvertWithOptions(
//	    converter.WithFilePath("membercsvjson.json"),
//	    converter.WithTargetFormat(parser.SourceFormatCSV),
//	)
func ConvertWithOptions(opts ...Option) (*ConversionResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("converter: invalid options: %w", err)
	}

	c := &Converter{
		Format:    cfg.format,
		Indent:    cfg.indent,
		UserAgent: cfg.userAgent,
	}

	if cfg.parsed != nil {
		return c.ConvertParsed(*cfg.parsed)
	}
	// cfg.filePath must be non-nil here (validated by applyOptions)
	return c.Convert(*cfg.filePath)
}

// format returns the configured target format or the default.
func (c *Converter) format() parser.SourceFormat {
	if c.Format != "" {
		return c.Format
	}
	return parser.SourceFormatJSON
}

// indent returns the configured JSON indentation or the default.
func (c *Converter) indent() string {
	if c.Indent != "" {
		return c.Indent
	}
	return defaultIndent
}

// Convert parses a roster file or URL and converts it to the target format.
func (c *Converter) Convert(path string) (*ConversionResult, error) {
	p := parser.New()
	p.UserAgent = c.UserAgent

	parseResult, err := p.Parse(path)
	if err != nil {
		return nil, err
	}
	return c.ConvertParsed(*parseResult)
}

// ConvertParsed converts an already parsed roster to the target format.
func (c *Converter) ConvertParsed(parseResult parser.ParseResult) (*ConversionResult, error) {
	data, err := c.encode(parseResult.Records, parseResult.Fields)
	if err != nil {
		return nil, err
	}

	return &ConversionResult{
		Data:         data,
		SourceFormat: parseResult.SourceFormat,
		TargetFormat: c.format(),
		RecordCount:  len(parseResult.Records),
		SourceSize:   parseResult.SourceSize,
		TargetSize:   int64(len(data)),
		LoadTime:     parseResult.LoadTime,
		SourcePath:   parseResult.SourcePath,
	}, nil
}

// encode renders records in the target format. fields fixes the CSV column
// order; the other encodings order object keys alphabetically per their
// marshalers.
func (c *Converter) encode(records []parser.Record, fields []string) ([]byte, error) {
	switch c.format() {
	case parser.SourceFormatJSON:
		return c.encodeJSON(records)
	case parser.SourceFormatNDJSON:
		return encodeNDJSON(records)
	case parser.SourceFormatCSV:
		return encodeCSV(records, fields)
	case parser.SourceFormatYAML:
		return encodeYAML(records)
	default:
		return nil, fmt.Errorf("converter: unsupported target format %q (valid: %v)", string(c.Format), parser.ValidFormats())
	}
}

func (c *Converter) encodeJSON(records []parser.Record) ([]byte, error) {
	data, err := json.MarshalIndent(records, "", c.indent())
	if err != nil {
		return nil, fmt.Errorf("converter: failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// encodeNDJSON writes one compact JSON object per line.
func encodeNDJSON(records []parser.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return nil, fmt.Errorf("converter: failed to marshal record %d: %w", i+1, err)
		}
	}
	return buf.Bytes(), nil
}

// encodeCSV writes a header row from fields followed by one row per record.
// Scalar values use their canonical string form; nested values are embedded
// as JSON so the conversion stays lossless enough to inspect.
func encodeCSV(records []parser.Record, fields []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(fields); err != nil {
		return nil, fmt.Errorf("converter: failed to write CSV header: %w", err)
	}

	row := make([]string, len(fields))
	for i, rec := range records {
		for j, field := range fields {
			cell, err := csvCell(rec[field])
			if err != nil {
				return nil, fmt.Errorf("converter: failed to encode record %d field %q: %w", i+1, field, err)
			}
			row[j] = cell
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("converter: failed to write record %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("converter: failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// csvCell renders one value as a CSV cell.
func csvCell(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return parser.CanonicalString(val), nil
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func encodeYAML(records []parser.Record) ([]byte, error) {
	data, err := yaml.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("converter: failed to marshal YAML: %w", err)
	}
	return data, nil
}
