package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hexsim/internal/dto"
	"github.com/aretw0/hexsim/pkg/registry"
)

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestSimulate_JSON(t *testing.T) {
	s := NewServer(registry.Default())

	res, err := s.handleSimulate(context.Background(), call(map[string]any{
		"program": `{"stack": [13, 8.5], "actions": ["add"]}`,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var got dto.Holder
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	require.Len(t, got.Branches, 1)
	assert.Equal(t, "21.5", got.Branches[0].Stack[0].Text)
}

func TestSimulate_Outputs(t *testing.T) {
	s := NewServer(registry.Default())
	prog := "stack: [1, unknown]\nactions: [div]\n"

	res, err := s.handleSimulate(context.Background(), call(map[string]any{"program": prog, "output": "markdown"}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "> error: division by zero")

	res, err = s.handleSimulate(context.Background(), call(map[string]any{"program": prog, "output": "mermaid"}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), `s0_b0 -- "div" --> s1_b1`)

	res, err = s.handleSimulate(context.Background(), call(map[string]any{"program": prog, "output": "svg"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestSimulate_Errors(t *testing.T) {
	s := NewServer(registry.Default())

	for name, args := range map[string]map[string]any{
		"missing program": {},
		"bad document":    {"program": "stack: [hello]"},
		"unknown action":  {"program": "stack: []\nactions: [fly]"},
		"bad value":       {"program": "stack: [{type: matrix}]"},
	} {
		t.Run(name, func(t *testing.T) {
			res, err := s.handleSimulate(context.Background(), call(args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
		})
	}
}

func TestListActions(t *testing.T) {
	s := NewServer(registry.Default())
	res, err := s.handleListActions(context.Background(), call(nil))
	require.NoError(t, err)

	var names []string
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &names))
	assert.Equal(t, registry.Default().Names(), names)
}
