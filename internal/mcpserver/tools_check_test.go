package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rostertools/internal/testutil"
)

const dupRoster = `[
  {"EMP ID": "E001", "Name": "Ada Park"},
  {"EMP ID": "E002", "Name": "Ben Ito"},
  {"EMP ID": "E001", "Name": "Ada Park"},
  {"EMP ID": "E003", "Name": "Cam Diaz"},
  {"EMP ID": "E001", "Name": "Ada Park"},
  {"EMP ID": "E002", "Name": "Ben Ito"},
  {"EMP ID": "E004", "Name": "Dee Lin"}
]`

func TestCheckTool_FindsDuplicates(t *testing.T) {
	rosterCache.reset()
	input := checkInput{
		Roster: rosterInput{Content: dupRoster},
	}
	result, output, err := handleCheckDuplicates(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "EMP ID", output.KeyField)
	assert.Equal(t, 2, output.MinCount)
	assert.Equal(t, 7, output.TotalRecords)
	assert.Equal(t, 7, output.KeyedRecords)
	assert.Equal(t, 4, output.DistinctValues)
	assert.Equal(t, 2, output.DuplicateCount)
	assert.Equal(t, 2, output.Returned)

	require.Len(t, output.Duplicates, 2)
	assert.Equal(t, duplicateEntry{Value: "E001", Count: 3}, output.Duplicates[0])
	assert.Equal(t, duplicateEntry{Value: "E002", Count: 2}, output.Duplicates[1])
}

func TestCheckTool_CleanRoster(t *testing.T) {
	rosterCache.reset()
	path := testutil.WriteTempJSON(t, testutil.NewCleanRoster())

	_, output, err := handleCheckDuplicates(context.Background(), &mcp.CallToolRequest{}, checkInput{
		Roster: rosterInput{File: path},
	})
	require.NoError(t, err)
	assert.Zero(t, output.DuplicateCount)
	assert.Empty(t, output.Duplicates)
}

func TestCheckTool_IncludeRows(t *testing.T) {
	rosterCache.reset()
	_, output, err := handleCheckDuplicates(context.Background(), &mcp.CallToolRequest{}, checkInput{
		Roster:      rosterInput{Content: dupRoster},
		IncludeRows: true,
	})
	require.NoError(t, err)
	require.Len(t, output.Duplicates, 2)
	assert.Equal(t, []int{1, 3, 5}, output.Duplicates[0].Rows)
	assert.Equal(t, []int{2, 6}, output.Duplicates[1].Rows)
}

func TestCheckTool_MinCountOverride(t *testing.T) {
	rosterCache.reset()
	three := 3
	_, output, err := handleCheckDuplicates(context.Background(), &mcp.CallToolRequest{}, checkInput{
		Roster:   rosterInput{Content: dupRoster},
		MinCount: &three,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, output.MinCount)
	require.Len(t, output.Duplicates, 1)
	assert.Equal(t, "E001", output.Duplicates[0].Value)
}

func TestCheckTool_CustomKeyField(t *testing.T) {
	rosterCache.reset()
	_, output, err := handleCheckDuplicates(context.Background(), &mcp.CallToolRequest{}, checkInput{
		Roster:   rosterInput{Content: dupRoster},
		KeyField: "Name",
	})
	require.NoError(t, err)
	assert.Equal(t, "Name", output.KeyField)
	assert.Equal(t, 2, output.DuplicateCount)
}

func TestCheckTool_Pagination(t *testing.T) {
	rosterCache.reset()
	_, output, err := handleCheckDuplicates(context.Background(), &mcp.CallToolRequest{}, checkInput{
		Roster: rosterInput{Content: dupRoster},
		Offset: 1,
		Limit:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, output.DuplicateCount, "count reflects the full table")
	assert.Equal(t, 1, output.Returned)
	require.Len(t, output.Duplicates, 1)
	assert.Equal(t, "E002", output.Duplicates[0].Value)
}

func TestCheckTool_BadInput(t *testing.T) {
	result, _, err := handleCheckDuplicates(context.Background(), &mcp.CallToolRequest{}, checkInput{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
