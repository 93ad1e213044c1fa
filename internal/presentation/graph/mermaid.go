package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/hexsim/pkg/domain"
	"github.com/aretw0/hexsim/pkg/observability"
)

// GenerateMermaid produces a Mermaid flowchart of how branches evolved.
// Each column is the holder after one step; edges follow the recorded lineage.
// Shapes:
// - Live branch: [Rectangle]
// - Failed branch: {{Hexagon}}
// Branches carried over unchanged from an earlier failure use dotted edges.
func GenerateMermaid(initial *domain.StackHolder, steps []observability.StepRecord) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	prev := initial.Branches()
	for i, b := range prev {
		writeBranch(&sb, nodeID(0, i), b)
	}

	var failed []string
	for i, b := range prev {
		if !b.Live() {
			failed = append(failed, nodeID(0, i))
		}
	}

	for k, step := range steps {
		col := k + 1
		out := step.Output.Branches()
		for j, b := range out {
			writeBranch(&sb, nodeID(col, j), b)
			if !b.Live() {
				failed = append(failed, nodeID(col, j))
			}
		}
		for parent, children := range step.Lineage {
			for _, child := range children {
				arrow := fmt.Sprintf("-- \"%s\" -->", sanitizeLabel(step.Action))
				if parent < len(prev) && !prev[parent].Live() {
					arrow = "-.->"
				}
				sb.WriteString(fmt.Sprintf("    %s %s %s\n", nodeID(col-1, parent), arrow, nodeID(col, child)))
			}
		}
		prev = out
	}

	sb.WriteString("\n    %% Overlay Styles\n")
	sb.WriteString("    classDef failed fill:#ffebee,stroke:#b71c1c,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef current fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	for _, id := range failed {
		sb.WriteString(fmt.Sprintf("    class %s failed;\n", id))
	}
	for j, b := range prev {
		if b.Live() {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(len(steps), j)))
		}
	}

	return sb.String()
}

func writeBranch(sb *strings.Builder, id string, b domain.Branch) {
	opener, closer := "[", "]"
	label := "(empty)"
	if !b.Live() {
		opener, closer = "{{", "}}"
		label = b.String()
	} else if b.State.Len() > 0 {
		label = b.State.String()
	}
	sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, sanitizeLabel(label), closer))
}

func nodeID(step, branch int) string {
	return fmt.Sprintf("s%d_b%d", step, branch)
}

func sanitizeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	return strings.ReplaceAll(s, "\n", "<br/>")
}
