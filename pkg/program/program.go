package program

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/hexsim/pkg/domain"
	"github.com/aretw0/hexsim/pkg/registry"
)

// Format selects the encoding of a program document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks JSON for ".json" files and YAML otherwise.
func FormatFromPath(path string) Format {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return FormatJSON
	}
	return FormatYAML
}

// Program is a starting stack plus the actions to run against it.
type Program struct {
	Name      string     `json:"name,omitempty" mapstructure:"name"`
	Stack     []IotaSpec `json:"stack" mapstructure:"stack"`
	Ravenmind *IotaSpec  `json:"ravenmind,omitempty" mapstructure:"ravenmind"`
	Actions   []string   `json:"actions" mapstructure:"actions"`
}

// IotaSpec describes one value. Which fields apply depends on Type.
// A bare number in a document is shorthand for a known double, and the
// string "unknown" for an unknown double.
type IotaSpec struct {
	Type string `json:"type" mapstructure:"type"`

	// double
	Value *float64 `json:"value,omitempty" mapstructure:"value"`

	// vector
	XYZ     []float64 `json:"xyz,omitempty" mapstructure:"xyz"`
	InRange *bool     `json:"in_range,omitempty" mapstructure:"in_range"`

	// list
	Items   []IotaSpec `json:"items,omitempty" mapstructure:"items"`
	Unknown bool       `json:"unknown,omitempty" mapstructure:"unknown"`
	Length  *int       `json:"length,omitempty" mapstructure:"length"`

	// pattern
	Start string `json:"start,omitempty" mapstructure:"start"`
	Turns string `json:"turns,omitempty" mapstructure:"turns"`

	// entity
	Name       string   `json:"name,omitempty" mapstructure:"name"`
	UUID       string   `json:"uuid,omitempty" mapstructure:"uuid"`
	Guaranteed []string `json:"guaranteed,omitempty" mapstructure:"guaranteed"`
	Impossible []string `json:"impossible,omitempty" mapstructure:"impossible"`
}

// DecodeError reports a program document that could not be understood.
type DecodeError struct {
	Source string
	Field  string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("program %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("program %s: %s: %v", e.Source, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Load reads a program file, YAML or JSON by extension.
func Load(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}
	p, err := Parse(data, FormatFromPath(path))
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Source = path
		}
		return nil, err
	}
	return p, nil
}

// Parse decodes a program document.
func Parse(data []byte, format Format) (*Program, error) {
	raw := map[string]interface{}{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, &DecodeError{Source: "<input>", Err: err}
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &DecodeError{Source: "<input>", Err: err}
		}
	}
	return Decode(raw)
}

// Decode converts an already parsed document, as found in request bodies
// and MCP tool arguments, into a Program.
func Decode(raw map[string]interface{}) (*Program, error) {
	var p Program
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  expandShorthand,
		ErrorUnused: true,
		Result:      &p,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, &DecodeError{Source: "<input>", Err: err}
	}
	return &p, nil
}

var specType = reflect.TypeOf(IotaSpec{})

func expandShorthand(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if to != specType && to != reflect.PointerTo(specType) {
		return data, nil
	}
	switch v := data.(type) {
	case int:
		f := float64(v)
		return map[string]interface{}{"type": "double", "value": f}, nil
	case float64:
		return map[string]interface{}{"type": "double", "value": v}, nil
	case string:
		if strings.EqualFold(v, domain.UnknownMarker) {
			return map[string]interface{}{"type": "double"}, nil
		}
		return nil, fmt.Errorf("unexpected value %q", v)
	}
	return data, nil
}

// State builds the starting stack.
func (p *Program) State() (domain.StackState, error) {
	stack := make([]domain.Iota, len(p.Stack))
	for i, s := range p.Stack {
		v, err := s.Iota()
		if err != nil {
			return domain.StackState{}, &DecodeError{Source: p.source(), Field: fmt.Sprintf("stack[%d]", i), Err: err}
		}
		stack[i] = v
	}

	var raven domain.Iota
	if p.Ravenmind != nil {
		v, err := p.Ravenmind.Iota()
		if err != nil {
			return domain.StackState{}, &DecodeError{Source: p.source(), Field: "ravenmind", Err: err}
		}
		raven = v
	}
	return domain.NewStackState(stack, raven), nil
}

// Resolve looks up every action name in reg.
func (p *Program) Resolve(reg *registry.Registry) ([]domain.Action, error) {
	return reg.Resolve(p.Actions)
}

func (p *Program) source() string {
	if p.Name != "" {
		return p.Name
	}
	return "<input>"
}

// Iota builds the value described by s.
func (s IotaSpec) Iota() (domain.Iota, error) {
	switch strings.ToLower(s.Type) {
	case "double":
		if s.Value == nil {
			return domain.UnknownDouble(), nil
		}
		return domain.KnownDouble(*s.Value), nil

	case "vector":
		if len(s.XYZ) == 0 {
			return domain.UnknownVector(s.InRange != nil && *s.InRange), nil
		}
		if len(s.XYZ) != 3 {
			return nil, fmt.Errorf("vector needs 3 components, got %d", len(s.XYZ))
		}
		return domain.KnownVector(s.XYZ[0], s.XYZ[1], s.XYZ[2]), nil

	case "list":
		if s.Unknown {
			if s.Length != nil {
				if *s.Length < 0 {
					return nil, fmt.Errorf("negative list length %d", *s.Length)
				}
				return domain.UnknownListOfLength(*s.Length), nil
			}
			return domain.UnknownList(), nil
		}
		items := make([]domain.Iota, len(s.Items))
		for i, item := range s.Items {
			v, err := item.Iota()
			if err != nil {
				return nil, fmt.Errorf("items[%d]: %w", i, err)
			}
			items[i] = v
		}
		return domain.KnownList(items...), nil

	case "pattern":
		start, err := domain.ParseHeading(s.Start)
		if err != nil {
			return nil, err
		}
		turns, err := domain.ParseTurns(s.Turns)
		if err != nil {
			return nil, err
		}
		return domain.NewPattern(start, turns...), nil

	case "entity":
		b := domain.NewEntity(s.Name)
		if s.UUID != "" {
			b.UUID(s.UUID)
		}
		for _, name := range s.Guaranteed {
			t, err := domain.ParseEntityType(name)
			if err != nil {
				return nil, err
			}
			b.AddGuaranteed(t)
		}
		for _, name := range s.Impossible {
			t, err := domain.ParseEntityType(name)
			if err != nil {
				return nil, err
			}
			b.RemovePossible(t)
		}
		if s.InRange != nil {
			b.GuaranteedInRange(*s.InRange)
		}
		e, err := b.Build()
		if err != nil {
			return nil, err
		}
		return e, nil

	case "widget", "null":
		return domain.Widget{}, nil

	case "":
		return nil, fmt.Errorf("missing type")
	}
	return nil, fmt.Errorf("unknown type %q", s.Type)
}
