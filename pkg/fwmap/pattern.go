package fwmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// SegmentType represents the kind of a pattern segment
type SegmentType int

// Ordered from most to least specific.
const (
	StaticSegment SegmentType = iota
	TypedParamSegment
	ParamSegment
	WildcardSegment
)

// Parameter types understood in {name:type} segments
const (
	ParamTypeString = "string"
	ParamTypeInt    = "int"
	ParamTypeUUID   = "uuid"
)

// WildcardParam is the parameter name under which a {*} segment stores the rest of the path
const WildcardParam = "*"

// Segment is one slash-separated element of a Pattern
type Segment struct {
	Type      SegmentType
	Value     string // literal text for static segments, parameter name otherwise
	ParamType string // for typed parameters
}

// Pattern is a parsed mapping path such as /users/{id:int}/files/{*}
type Pattern struct {
	raw      string
	segments []Segment
}

// ParsePattern parses and validates a mapping path
func ParsePattern(path string) (Pattern, error) {
	if !strings.HasPrefix(path, "/") {
		return Pattern{}, fmt.Errorf("%w: %q must start with '/'", ErrInvalidPattern, path)
	}

	parts := splitPath(path)
	segments := make([]Segment, 0, len(parts))
	for i, part := range parts {
		seg, err := parseSegment(part)
		if err != nil {
			return Pattern{}, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, path, err)
		}
		if seg.Type == WildcardSegment && i != len(parts)-1 {
			return Pattern{}, fmt.Errorf("%w: %q: wildcard must be the last segment", ErrInvalidPattern, path)
		}
		segments = append(segments, seg)
	}

	return Pattern{raw: path, segments: segments}, nil
}

// MustParsePattern is like ParsePattern but panics on error
func MustParsePattern(path string) Pattern {
	p, err := ParsePattern(path)
	if err != nil {
		panic(err)
	}
	return p
}

func parseSegment(part string) (Segment, error) {
	open := strings.Count(part, "{")
	closing := strings.Count(part, "}")
	if open == 0 && closing == 0 {
		return Segment{Type: StaticSegment, Value: part}, nil
	}
	if open != 1 || closing != 1 || part[0] != '{' || part[len(part)-1] != '}' {
		return Segment{}, fmt.Errorf("segment %q must be a literal or a single {name[:type]} placeholder", part)
	}

	content := part[1 : len(part)-1]
	if content == WildcardParam {
		return Segment{Type: WildcardSegment, Value: WildcardParam}, nil
	}

	name, typ, hasType := strings.Cut(content, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return Segment{}, fmt.Errorf("empty parameter name in %q", part)
	}
	if !hasType {
		return Segment{Type: ParamSegment, Value: name}, nil
	}

	typ = strings.TrimSpace(typ)
	switch typ {
	case ParamTypeString:
		return Segment{Type: ParamSegment, Value: name, ParamType: typ}, nil
	case ParamTypeInt, ParamTypeUUID:
		return Segment{Type: TypedParamSegment, Value: name, ParamType: typ}, nil
	default:
		return Segment{}, fmt.Errorf("unknown parameter type %q in %q", typ, part)
	}
}

// splitPath splits a request path into segments, ignoring empty elements
func splitPath(path string) []string {
	fields := strings.Split(path, "/")
	parts := fields[:0]
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return parts
}

// Raw returns the pattern as written
func (p Pattern) Raw() string {
	return p.raw
}

// String returns the normalized pattern
func (p Pattern) String() string {
	if len(p.segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		switch seg.Type {
		case StaticSegment:
			b.WriteString(seg.Value)
		case WildcardSegment:
			b.WriteString("{*}")
		default:
			b.WriteByte('{')
			b.WriteString(seg.Value)
			if seg.ParamType != "" {
				b.WriteByte(':')
				b.WriteString(seg.ParamType)
			}
			b.WriteByte('}')
		}
	}
	return b.String()
}

// Segments returns a copy of the parsed segments
func (p Pattern) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// IsStatic reports whether the pattern has no parameters
func (p Pattern) IsStatic() bool {
	for _, seg := range p.segments {
		if seg.Type != StaticSegment {
			return false
		}
	}
	return true
}

// Key returns a form of the pattern with parameter names erased.
// Patterns with equal keys match exactly the same paths.
func (p Pattern) Key() string {
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		switch seg.Type {
		case StaticSegment:
			b.WriteString(seg.Value)
		case TypedParamSegment:
			b.WriteString("{:" + seg.ParamType + "}")
		case ParamSegment:
			b.WriteString("{}")
		case WildcardSegment:
			b.WriteString("{*}")
		}
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// Equivalent reports whether both patterns match the same set of paths
func (p Pattern) Equivalent(other Pattern) bool {
	return p.Key() == other.Key()
}

// Match matches a request path against the pattern and returns its parameters
func (p Pattern) Match(path string) (map[string]string, bool) {
	parts := splitPath(path)
	params := make(map[string]string)

	for i, seg := range p.segments {
		if seg.Type == WildcardSegment {
			if i >= len(parts) {
				return nil, false
			}
			params[WildcardParam] = strings.Join(parts[i:], "/")
			return params, true
		}
		if i >= len(parts) {
			return nil, false
		}
		part := parts[i]
		switch seg.Type {
		case StaticSegment:
			if part != seg.Value {
				return nil, false
			}
		case TypedParamSegment:
			if !matchesType(seg.ParamType, part) {
				return nil, false
			}
			params[seg.Value] = part
		case ParamSegment:
			params[seg.Value] = part
		}
	}

	if len(parts) != len(p.segments) {
		return nil, false
	}
	return params, true
}

func matchesType(paramType, value string) bool {
	switch paramType {
	case ParamTypeInt:
		_, err := strconv.Atoi(value)
		return err == nil
	case ParamTypeUUID:
		_, err := uuid.Parse(value)
		return err == nil
	default:
		return true
	}
}

// MoreSpecific reports whether p should win over other when both match a path
func (p Pattern) MoreSpecific(other Pattern) bool {
	n := len(p.segments)
	if len(other.segments) < n {
		n = len(other.segments)
	}
	for i := 0; i < n; i++ {
		a, b := p.segments[i].Type, other.segments[i].Type
		if a != b {
			return a < b
		}
	}
	if len(p.segments) != len(other.segments) {
		return len(p.segments) > len(other.segments)
	}
	return false
}
