package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hexsim/internal/dto"
	"github.com/aretw0/hexsim/pkg/domain"
)

func TestFromHolder(t *testing.T) {
	h := domain.NewStackHolder(
		domain.Ok(domain.NewStackState(
			[]domain.Iota{domain.KnownDouble(2), domain.UnknownVector(true), domain.UnknownListOfLength(3)},
			domain.Widget{},
		)),
		domain.Fail(domain.ErrOutOfBounds),
	)

	got := dto.FromHolder(h, 4)
	assert.Equal(t, 4, got.Steps)
	assert.Equal(t, 1, got.Live)
	assert.Equal(t, 1, got.Failed)
	require.Len(t, got.Branches, 2)

	live := got.Branches[0]
	assert.Equal(t, []dto.Iota{
		{Kind: "double", Known: true, Text: "2"},
		{Kind: "vector", Known: false, Text: "(UNKNOWN, UNKNOWN, UNKNOWN ; guaranteed in range: true)"},
		{Kind: "list", Known: false, Text: "[UNKNOWN, len=3]"},
	}, live.Stack)
	require.NotNil(t, live.Ravenmind)
	assert.Equal(t, "widget", live.Ravenmind.Kind)

	failed := got.Branches[1]
	assert.Equal(t, "out_of_bounds", failed.Error)
	assert.Equal(t, "out of bounds", failed.Message)
	assert.Empty(t, failed.Stack)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"error":"out_of_bounds"`)
}
