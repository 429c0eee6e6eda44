// Package timeline loads declarative keyframe timelines from YAML and compiles
// them onto a scrolltween Controller.
//
// A timeline names its tracks, the host each one drives and the property it
// writes, plus any boundaries to observe:
//
//	name: intro
//	viewport: {width: 414, height: 736}
//	tracks:
//	  - name: logo-fade
//	    target: logo
//	    property: alpha
//	    from: {value: 1, at: 0}
//	    steps:
//	      - {to: 0, at: 1w, ease: out-cubic}
//	      - {hold: 3w}
//	boundaries:
//	  - {name: loop, at: 5w, action: reset}
//
// Positions and rect components accept plain numbers or multiples of the
// viewport size: "2w" is twice the viewport width, "0.5h" half its height.
package timeline

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/phanxgames/scrolltween"
	"gopkg.in/yaml.v3"
)

// Document is a parsed timeline file.
type Document struct {
	// Name identifies the timeline in output and logs.
	Name string `yaml:"name"`

	// Description is free text.
	Description string `yaml:"description,omitempty"`

	// Viewport is the size "w" and "h" units refer to.
	Viewport Size `yaml:"viewport"`

	// Tracks are registered in order; that order is also dispatch order.
	Tracks []TrackSpec `yaml:"tracks"`

	// Boundaries are observed in order.
	Boundaries []BoundarySpec `yaml:"boundaries,omitempty"`
}

// Size is a width and height in points.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Property names what a track writes on its host.
type Property string

// Supported properties.
const (
	PropertyAlpha        Property = "alpha"
	PropertyFrame        Property = "frame"
	PropertySlidingFrame Property = "sliding-frame"
)

// valueKind reports which value kind a property animates.
func (p Property) valueKind() (ValueKind, bool) {
	switch p {
	case PropertyAlpha:
		return ValueScalar, true
	case PropertyFrame, PropertySlidingFrame:
		return ValueRect, true
	default:
		return 0, false
	}
}

// TrackSpec describes one track.
type TrackSpec struct {
	Name     string   `yaml:"name"`
	Target   string   `yaml:"target"`
	Property Property `yaml:"property"`
	From     Keyframe `yaml:"from"`
	Steps    []Step   `yaml:"steps,omitempty"`
}

// Keyframe is a value at a position.
type Keyframe struct {
	Value Value    `yaml:"value"`
	At    Position `yaml:"at"`
}

// Step extends a track. Exactly one of To or Hold must be set; To requires At.
type Step struct {
	To   *Value    `yaml:"to,omitempty"`
	At   *Position `yaml:"at,omitempty"`
	Ease string    `yaml:"ease,omitempty"`
	Hold *Position `yaml:"hold,omitempty"`
}

// BoundarySpec describes a boundary observer. Direction defaults to forward.
// Action names a registered action; "reset" resets the controller's progress.
type BoundarySpec struct {
	Name      string   `yaml:"name"`
	At        Position `yaml:"at"`
	Direction string   `yaml:"direction,omitempty"`
	Action    string   `yaml:"action"`
}

// Boundary directions and built-in actions.
const (
	DirectionForward  = "forward"
	DirectionBackward = "backward"

	ActionReset = "reset"
)

// direction returns the effective direction.
func (b BoundarySpec) direction() string {
	if b.Direction == "" {
		return DirectionForward
	}
	return b.Direction
}

// --- Positions ---

// Unit says what a Position's number is measured in.
type Unit uint8

const (
	UnitPoints Unit = iota // plain number
	UnitWidth              // multiple of the viewport width
	UnitHeight             // multiple of the viewport height
)

// Position is a number, optionally in viewport units.
type Position struct {
	N    float64
	Unit Unit
}

// Points returns a plain Position.
func Points(n float64) Position {
	return Position{N: n}
}

// Resolve converts p to points against the viewport.
func (p Position) Resolve(vp Size) float64 {
	switch p.Unit {
	case UnitWidth:
		return p.N * vp.Width
	case UnitHeight:
		return p.N * vp.Height
	default:
		return p.N
	}
}

// String formats p the way it is written in YAML.
func (p Position) String() string {
	n := strconv.FormatFloat(p.N, 'g', -1, 64)
	switch p.Unit {
	case UnitWidth:
		return n + "w"
	case UnitHeight:
		return n + "h"
	default:
		return n
	}
}

// ParsePosition parses "120", "2w" or "0.5h".
func ParsePosition(s string) (Position, error) {
	s = strings.TrimSpace(s)
	unit := UnitPoints
	switch {
	case strings.HasSuffix(s, "w"):
		unit = UnitWidth
		s = strings.TrimSuffix(s, "w")
	case strings.HasSuffix(s, "h"):
		unit = UnitHeight
		s = strings.TrimSuffix(s, "h")
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return Position{}, fmt.Errorf("invalid position %q", s)
	}
	return Position{N: n, Unit: unit}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Position) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: position must be a number or a string like \"2w\"", node.Line)
	}
	pos, err := ParsePosition(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*p = pos
	return nil
}

// --- Values ---

// ValueKind distinguishes scalar and rect values.
type ValueKind uint8

const (
	ValueScalar ValueKind = iota
	ValueRect
)

func (k ValueKind) String() string {
	if k == ValueRect {
		return "rect"
	}
	return "scalar"
}

// Value is a keyframe value: a scalar, or a rect written as [x, y, w, h] or
// {x, y, width, height}. Every component may use viewport units.
type Value struct {
	Kind   ValueKind
	Scalar Position
	Rect   [4]Position
}

// ScalarValue returns a plain scalar Value.
func ScalarValue(n float64) Value {
	return Value{Kind: ValueScalar, Scalar: Points(n)}
}

// RectValue returns a plain rect Value.
func RectValue(r scrolltween.Rect) Value {
	return Value{Kind: ValueRect, Rect: [4]Position{
		Points(r.X), Points(r.Y), Points(r.Width), Points(r.Height),
	}}
}

// ResolveScalar converts v to a Scalar against the viewport.
func (v Value) ResolveScalar(vp Size) scrolltween.Scalar {
	return scrolltween.Scalar(v.Scalar.Resolve(vp))
}

// ResolveRect converts v to a Rect against the viewport.
func (v Value) ResolveRect(vp Size) scrolltween.Rect {
	return scrolltween.Rect{
		X:      v.Rect[0].Resolve(vp),
		Y:      v.Rect[1].Resolve(vp),
		Width:  v.Rect[2].Resolve(vp),
		Height: v.Rect[3].Resolve(vp),
	}
}

// rectKeys maps rect mapping keys to their component index.
var rectKeys = map[string]int{"x": 0, "y": 1, "width": 2, "height": 3}

// decodeRectMapping decodes {x, y, width, height}. Every key is required and
// no others are allowed.
func decodeRectMapping(node *yaml.Node) (Value, error) {
	out := Value{Kind: ValueRect}
	var seen [4]bool
	for i := 0; i+1 < len(node.Content); i += 2 {
		k, val := node.Content[i], node.Content[i+1]
		idx, ok := rectKeys[k.Value]
		if !ok {
			return Value{}, fmt.Errorf("line %d: unknown rect field %q (want x, y, width, height)", k.Line, k.Value)
		}
		if seen[idx] {
			return Value{}, fmt.Errorf("line %d: duplicate rect field %q", k.Line, k.Value)
		}
		if err := val.Decode(&out.Rect[idx]); err != nil {
			return Value{}, err
		}
		seen[idx] = true
	}
	for idx, key := range [4]string{"x", "y", "width", "height"} {
		if !seen[idx] {
			return Value{}, fmt.Errorf("line %d: rect is missing %q", node.Line, key)
		}
	}
	return out, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var p Position
		if err := node.Decode(&p); err != nil {
			return err
		}
		*v = Value{Kind: ValueScalar, Scalar: p}
		return nil

	case yaml.SequenceNode:
		if len(node.Content) != 4 {
			return fmt.Errorf("line %d: rect needs 4 components [x, y, width, height], got %d",
				node.Line, len(node.Content))
		}
		out := Value{Kind: ValueRect}
		for i, c := range node.Content {
			if err := c.Decode(&out.Rect[i]); err != nil {
				return err
			}
		}
		*v = out
		return nil

	case yaml.MappingNode:
		out, err := decodeRectMapping(node)
		if err != nil {
			return err
		}
		*v = out
		return nil

	default:
		return fmt.Errorf("line %d: value must be a number, a 4-element list or a rect mapping", node.Line)
	}
}

// --- Loading ---

// Load reads and parses a timeline file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timeline: %w", err)
	}
	return Parse(data)
}

// Parse decodes a timeline and validates it. Unknown fields are rejected so
// typos surface as errors.
func Parse(data []byte) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}
