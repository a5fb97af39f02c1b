package parser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/rostertools"
)

// defaultMaxInputSize is the input size cap applied when Parser.MaxInputSize
// is zero. Roster files are small; anything near this limit is almost
// certainly the wrong file.
const defaultMaxInputSize = 25 * 1024 * 1024

// Parser handles roster file parsing
type Parser struct {
	// ValidateStructure determines whether to perform basic structure validation
	// (root must be a collection of records, every element a mapping)
	ValidateStructure bool
	// Format forces the input format instead of detecting it from the
	// path or content. Required for CSV input that does not arrive via
	// a .csv path, since CSV cannot be reliably sniffed.
	Format SourceFormat
	// UserAgent is the User-Agent string used when fetching URLs
	// Defaults to "rostertools" if not set
	UserAgent string
	// HTTPClient is the HTTP client used for fetching URLs.
	// If nil, a default client with 30-second timeout is created.
	HTTPClient *http.Client
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger

	// Resource limits (0 means use default)

	// MaxInputSize is the maximum input size in bytes.
	// Default: 25 MiB
	MaxInputSize int64
	// MaxRecords is the maximum number of records accepted.
	// Default: 0 (unlimited)
	MaxRecords int
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		ValidateStructure: true,
		Format:            SourceFormatUnknown,
		UserAgent:         rostertools.UserAgent(),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

// SourceFormat represents the format of the source roster file
type SourceFormat string

const (
	// SourceFormatJSON indicates a JSON array of objects
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatNDJSON indicates newline-delimited JSON objects
	SourceFormatNDJSON SourceFormat = "ndjson"
	// SourceFormatCSV indicates comma-separated values with a header row
	SourceFormatCSV SourceFormat = "csv"
	// SourceFormatYAML indicates a YAML sequence of mappings
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// RosterStats contains statistical information about a parsed roster
type RosterStats struct {
	// RecordCount is the number of records in the roster
	RecordCount int
	// FieldCount is the number of distinct fields across all records
	FieldCount int
	// EmptyRecords is the number of records with no fields at all
	EmptyRecords int
}

// ParseResult contains the parsed roster and metadata.
//
// Callers should treat ParseResult as read-only after parsing. The checker,
// profiler, and differ packages share results freely; modifying Records in
// place may corrupt concurrent analysis. The dedupe and converter packages
// build new slices rather than mutating the input.
type ParseResult struct {
	// SourcePath is the roster's input source path that it was read from.
	// Note: if the source was not a file path, this will be set to the name
	// of the method and end in an extension matching the detected format
	SourcePath string
	// SourceFormat is the format of the source file
	SourceFormat SourceFormat
	// Records contains the roster rows in input order
	Records []Record
	// Fields contains the column names in first-seen order
	Fields []string
	// Warnings contains non-fatal issues found while parsing
	Warnings []string
	// LoadTime is the time taken to load the source data (file, URL, etc.)
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the roster
	Stats RosterStats
}

// Parse parses a roster file or URL.
// For URLs (http:// or https://), the content is fetched and parsed.
// For local files, the file is read and parsed.
//
// A missing local file returns an error satisfying errors.Is(err, fs.ErrNotExist)
// so callers can branch on the expected not-found condition.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	var data []byte
	var err error
	var format SourceFormat
	var loadStart time.Time
	var loadTime time.Duration

	if isURL(path) {
		var contentType string
		loadStart = time.Now()
		data, contentType, err = p.fetchURL(path)
		loadTime = time.Since(loadStart)
		if err != nil {
			return nil, err
		}
		format = detectFormatFromURL(path, contentType)
	} else {
		loadStart = time.Now()
		data, err = os.ReadFile(path)
		loadTime = time.Since(loadStart)
		if err != nil {
			return nil, fmt.Errorf("parser: failed to read file: %w", err)
		}
		format = detectFormatFromPath(path)
	}

	res, err := p.parseBytes(data, format)
	if err != nil {
		return nil, err
	}

	res.SourcePath = path
	res.LoadTime = loadTime
	return res, nil
}

// ParseReader parses a roster from an io.Reader.
// Note: since there is no actual source path, ParseResult.SourcePath is set
// to "ParseReader." plus the detected format's extension.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := io.ReadAll(io.LimitReader(r, p.maxInputSize()+1))
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read data: %w", err)
	}
	res, err := p.parseBytes(data, SourceFormatUnknown)
	if err != nil {
		return nil, err
	}
	res.LoadTime = loadTime
	res.SourcePath = "ParseReader." + formatExtension(res.SourceFormat)
	return res, nil
}

// ParseBytes parses a roster from a byte slice.
// Note: since there is no actual source path, ParseResult.SourcePath is set
// to "ParseBytes." plus the detected format's extension.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	res, err := p.parseBytes(data, SourceFormatUnknown)
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseBytes." + formatExtension(res.SourceFormat)
	return res, nil
}

// maxInputSize returns the configured input size cap or the default.
func (p *Parser) maxInputSize() int64 {
	if p.MaxInputSize > 0 {
		return p.MaxInputSize
	}
	return defaultMaxInputSize
}

// parseBytes decodes data in the given format (or a detected one) into a
// ParseResult. hint carries the format detected from the path or URL;
// Parser.Format overrides it when set.
func (p *Parser) parseBytes(data []byte, hint SourceFormat) (*ParseResult, error) {
	if int64(len(data)) > p.maxInputSize() {
		return nil, fmt.Errorf("parser: input exceeds %d bytes", p.maxInputSize())
	}

	format := p.Format
	if format == SourceFormatUnknown || format == "" {
		format = hint
	}
	if format == SourceFormatUnknown || format == "" {
		format = detectFormatFromContent(data)
	}

	result := &ParseResult{
		SourceFormat: format,
		Warnings:     make([]string, 0),
		SourceSize:   int64(len(data)),
	}

	var err error
	switch format {
	case SourceFormatJSON:
		err = p.parseJSON(data, result)
	case SourceFormatNDJSON:
		err = p.parseNDJSON(data, result)
	case SourceFormatCSV:
		err = p.parseCSV(data, result)
	case SourceFormatYAML:
		err = p.parseYAML(data, result)
	default:
		err = fmt.Errorf("parser: unable to detect input format (use WithFormat for CSV or headerless input)")
	}
	if err != nil {
		return nil, err
	}

	if p.MaxRecords > 0 && len(result.Records) > p.MaxRecords {
		return nil, fmt.Errorf("parser: input exceeds %d records", p.MaxRecords)
	}

	result.Stats = computeStats(result)
	p.log().Debug("parsed roster",
		"format", string(result.SourceFormat),
		"records", result.Stats.RecordCount,
		"fields", result.Stats.FieldCount)

	return result, nil
}

// parseJSON decodes a JSON array of objects. This is the primary roster
// format and uses encoding/json directly rather than the YAML decoder;
// roster files are routinely machine-generated JSON and the YAML AST
// overhead is wasted on them.
func (p *Parser) parseJSON(data []byte, result *ParseResult) error {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("parser: failed to parse JSON: %w", err)
	}

	items, ok := root.([]any)
	if !ok {
		if p.ValidateStructure {
			return fmt.Errorf("parser: root must be a JSON array of objects, got %s", jsonTypeName(root))
		}
		items = []any{root}
	}

	result.Records = make([]Record, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			if p.ValidateStructure {
				return fmt.Errorf("parser: records[%d] is not an object, got %s", i+1, jsonTypeName(item))
			}
			result.Warnings = append(result.Warnings, fmt.Sprintf("records[%d]: skipped non-object element", i+1))
			continue
		}
		result.Records = append(result.Records, Record(obj))
	}

	fields, err := orderedFieldsJSONArray(data)
	if err != nil {
		// Field order is cosmetic; fall back to sorted order rather than fail.
		result.Warnings = append(result.Warnings, fmt.Sprintf("field ordering: %v", err))
		result.Fields = sortedFields(result.Records)
		return nil
	}
	result.Fields = fields
	return nil
}

// parseNDJSON decodes newline-delimited JSON, one object per non-empty line.
func (p *Parser) parseNDJSON(data []byte, result *ParseResult) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), int(p.maxInputSize()))

	result.Records = make([]Record, 0)
	var fields []string
	seen := make(map[string]bool)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("parser: line %d: failed to parse JSON object: %w", line, err)
		}
		result.Records = append(result.Records, Record(rec))
		if err := collectObjectFields(json.NewDecoder(bytes.NewReader(raw)), &fields, seen); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("line %d: field ordering: %v", line, err))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("parser: failed to scan input: %w", err)
	}

	result.Fields = fields
	return nil
}

// parseCSV decodes comma-separated values. The first row is the header;
// every subsequent row becomes a record with string values.
func (p *Parser) parseCSV(data []byte, result *ParseResult) error {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return fmt.Errorf("parser: CSV input has no header row")
	}
	if err != nil {
		return fmt.Errorf("parser: failed to read CSV header: %w", err)
	}

	result.Fields = header
	result.Records = make([]Record, 0)

	row := 1
	for {
		row++
		values, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("parser: row %d: failed to read CSV: %w", row, err)
		}
		if len(values) != len(header) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %d values for %d header columns", row, len(values), len(header)))
		}
		rec := make(Record, len(header))
		for i, v := range values {
			if i >= len(header) {
				break
			}
			rec[header[i]] = v
		}
		result.Records = append(result.Records, rec)
	}
	return nil
}

// parseYAML decodes a YAML sequence of mappings. The node tree is decoded
// first so field order can be taken from the source rather than from Go's
// randomized map iteration.
func (p *Parser) parseYAML(data []byte, result *ParseResult) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("parser: failed to parse YAML: %w", err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			result.Records = []Record{}
			result.Fields = []string{}
			return nil
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.SequenceNode {
		if p.ValidateStructure {
			return fmt.Errorf("parser: root must be a YAML sequence of mappings")
		}
	}

	var records []Record
	if err := node.Decode(&records); err != nil {
		return fmt.Errorf("parser: failed to decode YAML records: %w", err)
	}
	result.Records = records

	var fields []string
	seen := make(map[string]bool)
	for i, item := range node.Content {
		if item.Kind != yaml.MappingNode {
			if p.ValidateStructure {
				return fmt.Errorf("parser: records[%d] is not a mapping", i+1)
			}
			continue
		}
		for j := 0; j+1 < len(item.Content); j += 2 {
			key := item.Content[j].Value
			if !seen[key] {
				seen[key] = true
				fields = append(fields, key)
			}
		}
	}
	result.Fields = fields
	return nil
}

// computeStats calculates roster statistics from a decoded result.
func computeStats(result *ParseResult) RosterStats {
	stats := RosterStats{
		RecordCount: len(result.Records),
		FieldCount:  len(result.Fields),
	}
	for _, rec := range result.Records {
		if len(rec) == 0 {
			stats.EmptyRecords++
		}
	}
	return stats
}

// jsonTypeName names a decoded JSON value's type for error messages.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	case string:
		return "a string"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
