package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/aretw0/hexsim/pkg/domain"
)

// Report renders a holder as a markdown document.
func Report(title string, holder *domain.StackHolder) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "**Branches:** %d (%d live, %d failed)\n", holder.Len(), holder.Live(), holder.Failed())

	for i, b := range holder.Branches() {
		fmt.Fprintf(&sb, "\n## Branch %d\n\n", i)
		if !b.Live() {
			fmt.Fprintf(&sb, "> error: %v\n", b.Err)
			continue
		}
		if b.State.Len() == 0 {
			sb.WriteString("_empty stack_\n")
		} else {
			sb.WriteString("```\n")
			sb.WriteString(b.State.String())
			sb.WriteString("\n```\n")
		}
		if r, ok := b.State.Ravenmind(); ok {
			fmt.Fprintf(&sb, "\nravenmind: `%s`\n", r)
		}
	}
	return sb.String()
}

// PrintBranches writes each branch on its own block, failures in red.
func PrintBranches(w io.Writer, holder *domain.StackHolder) {
	p := termenv.ColorProfile()
	for i, b := range holder.Branches() {
		header := termenv.String(fmt.Sprintf("branch %d", i)).Bold()
		fmt.Fprintln(w, header)
		if !b.Live() {
			fmt.Fprintln(w, termenv.String("  error: "+b.Err.Error()).Foreground(p.Color("#ef4444")))
			continue
		}
		for _, v := range b.State.Stack() {
			fmt.Fprintf(w, "  %s\n", v)
		}
		if r, ok := b.State.Ravenmind(); ok {
			fmt.Fprintln(w, termenv.String(fmt.Sprintf("  ravenmind: %s", r)).Faint())
		}
	}
}
