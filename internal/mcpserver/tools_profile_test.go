package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileTool_Basic(t *testing.T) {
	rosterCache.reset()
	_, output, err := handleProfileFields(context.Background(), &mcp.CallToolRequest{}, profileInput{
		Roster: rosterInput{Content: dupRoster},
	})
	require.NoError(t, err)

	assert.Equal(t, 7, output.RecordCount)
	assert.Equal(t, 2, output.FieldCount)
	require.Len(t, output.Fields, 2)

	// Roster column order by default.
	assert.Equal(t, "EMP ID", output.Fields[0].Name)
	assert.Equal(t, 7, output.Fields[0].Present)
	assert.Equal(t, 4, output.Fields[0].Distinct)
	assert.Equal(t, 3, output.Fields[0].MaxCount)
	assert.Equal(t, "E001", output.Fields[0].TopValue)
	assert.Equal(t, "string", output.Fields[0].Type)
}

func TestProfileTool_ByDuplication(t *testing.T) {
	rosterCache.reset()
	content := `[
  {"id": "A", "dept": "eng"},
  {"id": "B", "dept": "eng"},
  {"id": "C", "dept": "eng"}
]`
	_, output, err := handleProfileFields(context.Background(), &mcp.CallToolRequest{}, profileInput{
		Roster:        rosterInput{Content: content},
		ByDuplication: true,
	})
	require.NoError(t, err)
	require.Len(t, output.Fields, 2)
	assert.Equal(t, "dept", output.Fields[0].Name, "most concentrated column first")
	assert.Equal(t, 3, output.Fields[0].MaxCount)
}

func TestProfileTool_Pagination(t *testing.T) {
	rosterCache.reset()
	_, output, err := handleProfileFields(context.Background(), &mcp.CallToolRequest{}, profileInput{
		Roster: rosterInput{Content: dupRoster},
		Offset: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, output.FieldCount)
	assert.Equal(t, 1, output.Returned)
	assert.Equal(t, "Name", output.Fields[0].Name)
}

func TestProfileTool_BadInput(t *testing.T) {
	result, _, err := handleProfileFields(context.Background(), &mcp.CallToolRequest{}, profileInput{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
