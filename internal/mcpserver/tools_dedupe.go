package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/rostertools/dedupe"
)

type previewDedupeInput struct {
	Roster   rosterInput `json:"roster"             jsonschema:"The roster to preview deduplication for"`
	KeyField string      `json:"key_field,omitempty" jsonschema:"Identifier column to deduplicate on (default \"EMP ID\")"`
	Strategy string      `json:"strategy,omitempty"  jsonschema:"Which record survives per duplicated identifier: keep-first (default), keep-last, or fail"`
	Offset   int         `json:"offset,omitempty"    jsonschema:"Skip the first N removed rows (for pagination)"`
	Limit    int         `json:"limit,omitempty"     jsonschema:"Maximum number of removed rows to return (default 100)"`
}

type removedEntry struct {
	Value string `json:"value"`
	Row   int    `json:"row"`
}

type previewDedupeOutput struct {
	KeyField        string         `json:"key_field"`
	Strategy        string         `json:"strategy"`
	TotalRecords    int            `json:"total_records"`
	KeptRecords     int            `json:"kept_records"`
	RemovedCount    int            `json:"removed_count"`
	DuplicateValues int            `json:"duplicate_values"`
	Returned        int            `json:"returned"`
	Removed         []removedEntry `json:"removed,omitempty"`
}

func handlePreviewDedupe(_ context.Context, _ *mcp.CallToolRequest, input previewDedupeInput) (*mcp.CallToolResult, previewDedupeOutput, error) {
	keyField := cfg.KeyField
	if input.KeyField != "" {
		keyField = input.KeyField
	}
	strategy := dedupe.StrategyKeepFirst
	if input.Strategy != "" {
		strategy = dedupe.Strategy(input.Strategy)
	}

	parseResult, err := input.Roster.resolve()
	if err != nil {
		return errResult(err), previewDedupeOutput{}, nil
	}

	result, err := dedupe.DedupeWithOptions(
		dedupe.WithParsed(*parseResult),
		dedupe.WithKeyField(keyField),
		dedupe.WithStrategy(strategy),
	)
	if err != nil {
		return errResult(err), previewDedupeOutput{}, nil
	}

	output := previewDedupeOutput{
		KeyField:        result.KeyField,
		Strategy:        string(result.Strategy),
		TotalRecords:    result.TotalRecords,
		KeptRecords:     len(result.Records),
		RemovedCount:    result.RemovedCount(),
		DuplicateValues: result.DuplicateValues,
	}

	output.Removed = makeSlice[removedEntry](len(result.Removed))
	for _, r := range result.Removed {
		output.Removed = append(output.Removed, removedEntry{Value: r.Value, Row: r.Row})
	}

	output.Removed = paginate(output.Removed, input.Offset, input.Limit)
	output.Returned = len(output.Removed)

	return nil, output, nil
}
