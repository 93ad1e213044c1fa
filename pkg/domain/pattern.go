package domain

import (
	"fmt"
	"strings"
)

// Turn is a relative direction taken at each step of a pattern.
type Turn int

const (
	TurnA Turn = iota // sharp left
	TurnQ             // left
	TurnW             // straight
	TurnE             // right
	TurnD             // sharp right
)

func (t Turn) String() string {
	switch t {
	case TurnA:
		return "A"
	case TurnQ:
		return "Q"
	case TurnW:
		return "W"
	case TurnE:
		return "E"
	case TurnD:
		return "D"
	default:
		return fmt.Sprintf("Turn(%d)", int(t))
	}
}

// ParseTurns converts a string such as "aqweqad" into turns. Case is ignored.
func ParseTurns(s string) ([]Turn, error) {
	turns := make([]Turn, 0, len(s))
	for _, r := range strings.ToUpper(s) {
		switch r {
		case 'A':
			turns = append(turns, TurnA)
		case 'Q':
			turns = append(turns, TurnQ)
		case 'W':
			turns = append(turns, TurnW)
		case 'E':
			turns = append(turns, TurnE)
		case 'D':
			turns = append(turns, TurnD)
		default:
			return nil, fmt.Errorf("invalid turn %q", r)
		}
	}
	return turns, nil
}

// Heading is the absolute direction a pattern starts in.
type Heading int

const (
	East Heading = iota
	SouthEast
	SouthWest
	West
	NorthWest
	NorthEast
)

var headingNames = [...]string{"East", "SouthEast", "SouthWest", "West", "NorthWest", "NorthEast"}

func (h Heading) String() string {
	if h < 0 || int(h) >= len(headingNames) {
		return fmt.Sprintf("Heading(%d)", int(h))
	}
	return headingNames[h]
}

// ParseHeading accepts "NorthWest", "north_west" or "NORTH_WEST".
func ParseHeading(s string) (Heading, error) {
	norm := strings.ToLower(strings.ReplaceAll(s, "_", ""))
	for i, name := range headingNames {
		if strings.ToLower(name) == norm {
			return Heading(i), nil
		}
	}
	return 0, fmt.Errorf("invalid heading %q", s)
}

// Pattern is the opaque payload produced by the geometry subsystem.
// The engine never interprets it; no arithmetic is defined on patterns.
type Pattern struct {
	Start Heading
	Turns []Turn
}

// NewPattern creates a Pattern, copying turns.
func NewPattern(start Heading, turns ...Turn) Pattern {
	cp := make([]Turn, len(turns))
	copy(cp, turns)
	return Pattern{Start: start, Turns: cp}
}

func (Pattern) Kind() Kind { return KindPattern }
func (Pattern) isIota()    {}

func (p Pattern) String() string {
	var sb strings.Builder
	for _, t := range p.Turns {
		sb.WriteString(t.String())
	}
	return fmt.Sprintf("HexPattern(%s, %s)", sb.String(), p.Start)
}
