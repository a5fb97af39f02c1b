package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/rostertools/profiler"
)

type profileInput struct {
	Roster        rosterInput `json:"roster"                   jsonschema:"The roster to profile"`
	ByDuplication bool        `json:"by_duplication,omitempty" jsonschema:"Order columns by value concentration (highest repeat count first) instead of roster column order"`
	SampleSize    int         `json:"sample_size,omitempty"    jsonschema:"Number of distinct sample values to retain per column (default 3)"`
	Offset        int         `json:"offset,omitempty"         jsonschema:"Skip the first N columns (for pagination)"`
	Limit         int         `json:"limit,omitempty"          jsonschema:"Maximum number of columns to return (default 100)"`
}

type fieldProfileEntry struct {
	Name      string   `json:"name"`
	Present   int      `json:"present"`
	Missing   int      `json:"missing,omitempty"`
	Distinct  int      `json:"distinct"`
	MaxCount  int      `json:"max_count"`
	TopValue  string   `json:"top_value,omitempty"`
	Type      string   `json:"type"`
	Timestamp bool     `json:"timestamp,omitempty"`
	Samples   []string `json:"samples,omitempty"`
}

type profileOutput struct {
	RecordCount int                 `json:"record_count"`
	FieldCount  int                 `json:"field_count"`
	Returned    int                 `json:"returned"`
	Fields      []fieldProfileEntry `json:"fields,omitempty"`
}

func handleProfileFields(_ context.Context, _ *mcp.CallToolRequest, input profileInput) (*mcp.CallToolResult, profileOutput, error) {
	parseResult, err := input.Roster.resolve()
	if err != nil {
		return errResult(err), profileOutput{}, nil
	}

	p := profiler.New()
	if input.SampleSize > 0 {
		p.SampleSize = input.SampleSize
	}
	result := p.Profile(parseResult)

	fields := result.Fields
	if input.ByDuplication {
		fields = result.FieldsByDuplication()
	}

	output := profileOutput{
		RecordCount: result.RecordCount,
		FieldCount:  len(result.Fields),
	}

	output.Fields = makeSlice[fieldProfileEntry](len(fields))
	for _, fp := range fields {
		output.Fields = append(output.Fields, fieldProfileEntry{
			Name:      fp.Name,
			Present:   fp.Present,
			Missing:   fp.Missing,
			Distinct:  fp.Distinct,
			MaxCount:  fp.MaxCount,
			TopValue:  fp.TopValue,
			Type:      string(fp.Type),
			Timestamp: fp.Timestamp,
			Samples:   fp.Samples,
		})
	}

	output.Fields = paginate(output.Fields, input.Offset, input.Limit)
	output.Returned = len(output.Fields)

	return nil, output, nil
}
