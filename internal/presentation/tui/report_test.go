package tui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/hexsim/internal/presentation/tui"
	"github.com/aretw0/hexsim/pkg/domain"
)

func sampleHolder() *domain.StackHolder {
	return domain.NewStackHolder(
		domain.Ok(domain.NewStackState([]domain.Iota{domain.KnownDouble(21.5)}, domain.Widget{})),
		domain.Ok(domain.NewStackState(nil, nil)),
		domain.Fail(domain.ErrDivByZero),
	)
}

func TestReport(t *testing.T) {
	md := tui.Report("Result", sampleHolder())

	assert.Contains(t, md, "# Result")
	assert.Contains(t, md, "**Branches:** 3 (2 live, 1 failed)")
	assert.Contains(t, md, "## Branch 0\n\n```\n21.5\n```\n")
	assert.Contains(t, md, "ravenmind: `Null`")
	assert.Contains(t, md, "## Branch 1\n\n_empty stack_")
	assert.Contains(t, md, "> error: division by zero")
}

func TestPrintBranches(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBranches(&buf, sampleHolder())

	out := buf.String()
	assert.Contains(t, out, "branch 2")
	assert.Contains(t, out, "21.5")
	assert.Contains(t, out, "error: division by zero")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}

func TestNewRenderer(t *testing.T) {
	render, err := tui.NewRenderer()
	if assert.NoError(t, err) {
		out, err := render("# Title")
		assert.NoError(t, err)
		assert.Contains(t, out, "Title")
	}
}
