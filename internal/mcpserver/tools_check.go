package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/rostertools/checker"
)

type checkInput struct {
	Roster      rosterInput `json:"roster"                  jsonschema:"The roster to check"`
	KeyField    string      `json:"key_field,omitempty"     jsonschema:"Identifier column to group on (default \"EMP ID\")"`
	MinCount    *int        `json:"min_count,omitempty"     jsonschema:"Duplicate threshold: values with at least this many records are reported (default 2)"`
	IncludeRows bool        `json:"include_rows,omitempty"  jsonschema:"Include the 1-based record indexes per duplicate"`
	Offset      int         `json:"offset,omitempty"        jsonschema:"Skip the first N duplicates (for pagination)"`
	Limit       int         `json:"limit,omitempty"         jsonschema:"Maximum number of duplicates to return (default 100)"`
}

type duplicateEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
	Rows  []int  `json:"rows,omitempty"`
}

type checkOutput struct {
	KeyField       string           `json:"key_field"`
	MinCount       int              `json:"min_count"`
	TotalRecords   int              `json:"total_records"`
	KeyedRecords   int              `json:"keyed_records"`
	MissingKey     int              `json:"missing_key,omitempty"`
	DistinctValues int              `json:"distinct_values"`
	DuplicateCount int              `json:"duplicate_count"`
	Returned       int              `json:"returned"`
	Duplicates     []duplicateEntry `json:"duplicates,omitempty"`
}

func handleCheckDuplicates(_ context.Context, _ *mcp.CallToolRequest, input checkInput) (*mcp.CallToolResult, checkOutput, error) {
	// Apply config defaults when input fields are omitted.
	keyField := cfg.KeyField
	if input.KeyField != "" {
		keyField = input.KeyField
	}
	minCount := cfg.MinCount
	if input.MinCount != nil {
		minCount = *input.MinCount
	}

	parseResult, err := input.Roster.resolve()
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}

	result, err := checker.CheckWithOptions(
		checker.WithParsed(*parseResult),
		checker.WithKeyField(keyField),
		checker.WithMinCount(minCount),
		checker.WithIncludeRows(input.IncludeRows),
	)
	if err != nil {
		return errResult(err), checkOutput{}, nil
	}

	output := checkOutput{
		KeyField:       result.KeyField,
		MinCount:       result.MinCount,
		TotalRecords:   result.TotalRecords,
		KeyedRecords:   result.KeyedRecords,
		MissingKey:     result.MissingKey,
		DistinctValues: result.DistinctValues,
		DuplicateCount: len(result.Duplicates),
	}

	output.Duplicates = makeSlice[duplicateEntry](len(result.Duplicates))
	for _, d := range result.Duplicates {
		output.Duplicates = append(output.Duplicates, duplicateEntry{
			Value: d.Value,
			Count: d.Count,
			Rows:  d.Rows,
		})
	}

	output.Duplicates = paginate(output.Duplicates, input.Offset, input.Limit)
	output.Returned = len(output.Duplicates)

	return nil, output, nil
}
