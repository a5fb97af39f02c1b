package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type inspectInput struct {
	Roster rosterInput `json:"roster"           jsonschema:"The roster to inspect"`
	Offset int         `json:"offset,omitempty" jsonschema:"Skip the first N field names (for pagination)"`
	Limit  int         `json:"limit,omitempty"  jsonschema:"Maximum number of field names to return (default 100)"`
}

type inspectOutput struct {
	SourcePath   string   `json:"source_path"`
	SourceFormat string   `json:"source_format"`
	SourceSize   int64    `json:"source_size"`
	RecordCount  int      `json:"record_count"`
	FieldCount   int      `json:"field_count"`
	EmptyRecords int      `json:"empty_records,omitempty"`
	Returned     int      `json:"returned"`
	Fields       []string `json:"fields,omitempty"`
	Warnings     []string `json:"warnings,omitempty"`
}

func handleInspectRoster(_ context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	parseResult, err := input.Roster.resolve()
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	output := inspectOutput{
		SourcePath:   parseResult.SourcePath,
		SourceFormat: string(parseResult.SourceFormat),
		SourceSize:   parseResult.SourceSize,
		RecordCount:  parseResult.Stats.RecordCount,
		FieldCount:   parseResult.Stats.FieldCount,
		EmptyRecords: parseResult.Stats.EmptyRecords,
		Warnings:     parseResult.Warnings,
	}

	output.Fields = paginate(parseResult.Fields, input.Offset, input.Limit)
	output.Returned = len(output.Fields)

	return nil, output, nil
}
