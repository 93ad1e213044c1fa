package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// UnknownMarker is the canonical text of a value that is not known at analysis time.
const UnknownMarker = "UNKNOWN"

// Kind is the tag of an Iota. It never changes after construction.
type Kind int

const (
	KindDouble Kind = iota + 1
	KindVector
	KindPattern
	KindList
	KindEntity
	KindWidget
)

func (k Kind) String() string {
	switch k {
	case KindDouble:
		return "double"
	case KindVector:
		return "vector"
	case KindPattern:
		return "pattern"
	case KindList:
		return "list"
	case KindEntity:
		return "entity"
	case KindWidget:
		return "widget"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Iota is a value of the modeled instruction language.
// The set of implementations is closed: Double, Vector, Pattern, List, IotaEntity and Widget.
type Iota interface {
	fmt.Stringer
	Kind() Kind
	isIota()
}

// Double is a real number that may be unknown.
type Double struct {
	value float64
	known bool
}

// KnownDouble creates a Double with a concrete value.
func KnownDouble(v float64) Double { return Double{value: v, known: true} }

// UnknownDouble creates a Double whose value is concealed.
func UnknownDouble() Double { return Double{} }

// Value returns the concrete value and whether it is known.
func (d Double) Value() (float64, bool) { return d.value, d.known }

func (Double) Kind() Kind { return KindDouble }
func (Double) isIota()    {}

func (d Double) String() string {
	if !d.known {
		return UnknownMarker
	}
	return formatFloat(d.value)
}

// Vec3 is a concrete three-component vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the component-wise difference.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Offset adds d to every component.
func (v Vec3) Offset(d float64) Vec3 { return Vec3{v.X + d, v.Y + d, v.Z + d} }

// Scale multiplies every component by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the scalar product.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the vector product.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Vector is a three-component vector that may be unknown.
// An unknown vector records whether it is guaranteed to lie within the valid range.
type Vector struct {
	v       Vec3
	known   bool
	inRange bool
}

// KnownVector creates a Vector with concrete components.
func KnownVector(x, y, z float64) Vector { return Vector{v: Vec3{x, y, z}, known: true} }

// VectorOf wraps a Vec3.
func VectorOf(v Vec3) Vector { return Vector{v: v, known: true} }

// UnknownVector creates a Vector whose components are concealed.
func UnknownVector(guaranteedInRange bool) Vector { return Vector{inRange: guaranteedInRange} }

// Components returns the concrete components and whether they are known.
func (v Vector) Components() (Vec3, bool) { return v.v, v.known }

// GuaranteedInRange reports the range guarantee of an unknown vector.
// It is always false for known vectors; their range is decided by their components.
func (v Vector) GuaranteedInRange() bool { return !v.known && v.inRange }

func (Vector) Kind() Kind { return KindVector }
func (Vector) isIota()    {}

func (v Vector) String() string {
	if !v.known {
		return fmt.Sprintf("(%s, %s, %s ; guaranteed in range: %t)", UnknownMarker, UnknownMarker, UnknownMarker, v.inRange)
	}
	return fmt.Sprintf("(%s, %s, %s)", formatFloat(v.v.X), formatFloat(v.v.Y), formatFloat(v.v.Z))
}

// List is an ordered sequence of iotas, or an unknown list with an optional known length.
type List struct {
	items       []Iota
	known       bool
	length      int
	lengthKnown bool
}

// KnownList creates a List with concrete elements. The slice is copied.
func KnownList(items ...Iota) List {
	cp := make([]Iota, len(items))
	copy(cp, items)
	return List{items: cp, known: true}
}

// UnknownList creates a List whose elements and length are concealed.
func UnknownList() List { return List{} }

// UnknownListOfLength creates a List whose elements are concealed but whose length is n.
func UnknownListOfLength(n int) List { return List{length: n, lengthKnown: true} }

// Items returns a copy of the elements and whether they are known.
func (l List) Items() ([]Iota, bool) {
	if !l.known {
		return nil, false
	}
	cp := make([]Iota, len(l.items))
	copy(cp, l.items)
	return cp, true
}

// Len returns the length and whether it is known.
func (l List) Len() (int, bool) {
	if l.known {
		return len(l.items), true
	}
	return l.length, l.lengthKnown
}

func (List) Kind() Kind { return KindList }
func (List) isIota()    {}

func (l List) String() string {
	if !l.known {
		length := UnknownMarker
		if l.lengthKnown {
			length = strconv.Itoa(l.length)
		}
		return fmt.Sprintf("[%s, len=%s]", UnknownMarker, length)
	}
	parts := make([]string, len(l.items))
	for i, it := range l.items {
		parts[i] = it.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Widget is the unit value (rendered as Null).
type Widget struct{}

func (Widget) Kind() Kind     { return KindWidget }
func (Widget) isIota()        {}
func (Widget) String() string { return "Null" }

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
