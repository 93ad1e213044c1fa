package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/hexsim/internal/dto"
	"github.com/aretw0/hexsim/pkg/domain"
	"github.com/aretw0/hexsim/pkg/registry"
)

func writeProgram(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExecute_Formats(t *testing.T) {
	path := writeProgram(t, "prog.yaml", "name: demo\nstack: [13, unknown]\nactions: [div]\n")

	tests := []struct {
		format   string
		contains []string
	}{
		{FormatText, []string{"branch 0:\nUNKNOWN", "error: division by zero"}},
		{FormatMarkdown, []string{"# demo", "**Branches:** 2 (1 live, 1 failed)"}},
		{FormatMermaid, []string{"graph TD", `s0_b0 -- "div" --> s1_b1`}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := Execute(context.Background(), RunOptions{ProgramPath: path, Format: tt.format, Out: &buf})
			require.NoError(t, err)
			for _, c := range tt.contains {
				assert.Contains(t, buf.String(), c)
			}
		})
	}
}

func TestExecute_JSON(t *testing.T) {
	path := writeProgram(t, "prog.json", `{"stack": [13, 8.5], "actions": ["add"]}`)

	var buf bytes.Buffer
	require.NoError(t, Execute(context.Background(), RunOptions{ProgramPath: path, Format: FormatJSON, Parallelism: 4, Out: &buf}))

	var got dto.Holder
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 1, got.Steps)
	assert.Equal(t, "21.5", got.Branches[0].Stack[0].Text)
}

func TestExecute_Errors(t *testing.T) {
	var buf bytes.Buffer

	err := Execute(context.Background(), RunOptions{ProgramPath: filepath.Join(t.TempDir(), "missing.yaml"), Out: &buf})
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeProgram(t, "prog.yaml", "stack: []\nactions: [jump]\n")
	err = Execute(context.Background(), RunOptions{ProgramPath: path, Out: &buf})
	assert.ErrorIs(t, err, domain.ErrUnknownAction)

	path = writeProgram(t, "ok.yaml", "stack: [1]\nactions: [dup]\n")
	err = Execute(context.Background(), RunOptions{ProgramPath: path, Format: "svg", Out: &buf})
	assert.ErrorContains(t, err, "unknown format")

	err = Execute(context.Background(), RunOptions{ProgramPath: path, Log: LogOptions{Level: "loud"}, Out: &buf})
	assert.ErrorContains(t, err, "invalid log level")
}

func TestCreateLogger(t *testing.T) {
	tests := []struct {
		name     string
		opts     LogOptions
		enabled  slog.Level
		disabled slog.Level
		json     bool
	}{
		{"silent by default", LogOptions{}, slog.LevelError + 1, slog.LevelDebug, false},
		{"debug", LogOptions{Debug: true}, slog.LevelDebug, slog.LevelDebug - 1, false},
		{"level overrides debug", LogOptions{Debug: true, Level: "warn"}, slog.LevelWarn, slog.LevelInfo, false},
		{"json", LogOptions{Level: "info", JSON: true}, slog.LevelInfo, slog.LevelDebug, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := CreateLogger(tt.opts)
			require.NoError(t, err)
			ctx := context.Background()
			assert.True(t, logger.Enabled(ctx, tt.enabled))
			assert.False(t, logger.Enabled(ctx, tt.disabled))
			_, isJSON := logger.Handler().(*slog.JSONHandler)
			assert.Equal(t, tt.json, isJSON)
		})
	}

	_, err := CreateLogger(LogOptions{Level: "loud"})
	assert.Error(t, err)
}

func TestExecute_Cancelled(t *testing.T) {
	path := writeProgram(t, "prog.yaml", "stack: [1]\nactions: [dup]\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	assert.NoError(t, Execute(ctx, RunOptions{ProgramPath: path, Out: &buf}))
	assert.Empty(t, buf.String())
}

func TestREPL(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"13 8.5 add",
		"teleport",
		"? div",
		":actions",
		":show",
		":reset",
		"2 dup mul",
		":quit",
		"99",
	}, "\n"))
	var out bytes.Buffer

	r := NewREPL(in, &out, registry.Default())
	require.NoError(t, r.Run(context.Background()))

	s := out.String()
	assert.Contains(t, s, "branch 0:\n21.5")
	assert.Contains(t, s, "Error: unknown action: teleport")
	assert.Contains(t, s, "error: division by zero")
	assert.Contains(t, s, "read_ravenmind")
	assert.Contains(t, s, ">>> Stack cleared.")
	assert.Equal(t, "branch 0:\n4", r.Manager().String())
}

func TestREPL_EOF(t *testing.T) {
	var out bytes.Buffer
	r := NewREPL(strings.NewReader("?v"), &out, registry.Default())
	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, 1, r.Manager().Steps())
}
