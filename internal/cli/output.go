package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/hexsim/internal/dto"
	"github.com/aretw0/hexsim/internal/presentation/graph"
	"github.com/aretw0/hexsim/internal/presentation/tui"
	"github.com/aretw0/hexsim/pkg/domain"
	"github.com/aretw0/hexsim/pkg/observability"
)

// Output formats accepted by --format.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatMermaid  = "mermaid"
	FormatJSON     = "json"
)

// Result is everything a finished run can be rendered from.
type Result struct {
	Title   string
	Initial *domain.StackHolder
	Final   *domain.StackHolder
	Steps   []observability.StepRecord
}

// WriteResult renders r in the given format. Plain disables colours and
// markdown styling even on a terminal.
func WriteResult(w io.Writer, format string, plain bool, r Result) error {
	switch format {
	case "", FormatText:
		if plain || !isTerminal(w) {
			_, err := fmt.Fprintln(w, r.Final.String())
			return err
		}
		tui.PrintBranches(w, r.Final)
		return nil

	case FormatMarkdown:
		md := tui.Report(r.Title, r.Final)
		if !plain && isTerminal(w) {
			render, err := tui.NewRenderer()
			if err != nil {
				return err
			}
			if md, err = render(md); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, md)
		return err

	case FormatMermaid:
		_, err := io.WriteString(w, graph.GenerateMermaid(r.Initial, r.Steps))
		return err

	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.FromHolder(r.Final, len(r.Steps)))
	}
	return fmt.Errorf("unknown format %q (want text, markdown, mermaid or json)", format)
}
