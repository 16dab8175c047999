package annotations

import (
	"fmt"
	"sort"
	"strings"
)

// Prefix marks a comment line as an annotation
const Prefix = "axon::"

// Parser parses //axon:: comment lines and validates them against schemas
type Parser struct {
	registry AnnotationRegistry
}

// NewParser creates a parser validating against registry.
// A nil registry uses DefaultRegistry.
func NewParser(registry AnnotationRegistry) *Parser {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Parser{registry: registry}
}

// IsAnnotation reports whether a comment line is meant as an annotation
func IsAnnotation(comment string) bool {
	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), "//"))
	return strings.HasPrefix(text, Prefix)
}

// ParseAnnotation parses a comment line such as
//
//	//axon::component_scan -BasePackages=example.com/shop -UseDefaultFilters=false
func (p *Parser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	comment = strings.TrimSpace(comment)

	tree, err := annotationGrammar.ParseString("", comment)
	if err != nil {
		return nil, fmt.Errorf("syntax: %w", err)
	}

	annotationType, err := ParseAnnotationType(tree.Name)
	if err != nil {
		return nil, err
	}
	schema, err := p.registry.GetSchema(annotationType)
	if err != nil {
		return nil, err
	}

	parsed := &ParsedAnnotation{
		Type:       annotationType,
		Parameters: make(map[string]any),
		Location:   location,
		Raw:        comment,
	}
	for _, arg := range tree.Args {
		parsed.Args = append(parsed.Args, arg.text())
	}

	if err := checkArgs(schema, parsed.Args); err != nil {
		return nil, fmt.Errorf("%s: %w", annotationType, err)
	}

	for _, param := range tree.Params {
		name := strings.TrimPrefix(param.Key, "-")
		spec, ok := schema.Parameters[name]
		if !ok {
			return nil, fmt.Errorf("%s: unknown parameter -%s%s", annotationType, name, knownParameters(schema))
		}
		if parsed.HasParameter(name) {
			return nil, fmt.Errorf("%s: parameter -%s given twice", annotationType, name)
		}

		var raw *string
		if param.Value != nil {
			text := param.Value.text()
			raw = &text
		}
		value, err := spec.Type.convert(raw, spec.DefaultValue)
		if err != nil {
			return nil, fmt.Errorf("%s: parameter -%s %w", annotationType, name, err)
		}
		if spec.Validator != nil {
			if err := spec.Validator(value); err != nil {
				return nil, fmt.Errorf("%s: parameter -%s: %w", annotationType, name, err)
			}
		}
		parsed.Parameters[name] = value
	}

	return parsed, nil
}

// Schema returns the schema for t
func (p *Parser) Schema(t AnnotationType) (AnnotationSchema, error) {
	return p.registry.GetSchema(t)
}

func checkArgs(schema AnnotationSchema, args []string) error {
	if len(args) < schema.MinArgs {
		missing := schema.ArgNames[len(args)]
		return fmt.Errorf("missing %s argument (e.g. %s)", missing, strings.Join(schema.Examples, ", "))
	}
	if len(args) > schema.MaxArgs {
		if schema.MaxArgs == 0 {
			return fmt.Errorf("takes no arguments, got %q", strings.Join(args, " "))
		}
		return fmt.Errorf("takes at most %d argument(s), got %d", schema.MaxArgs, len(args))
	}
	for i, arg := range args {
		if validate, ok := schema.ArgValidators[i]; ok {
			if err := validate(arg); err != nil {
				return err
			}
		}
	}
	return nil
}

func knownParameters(schema AnnotationSchema) string {
	if len(schema.Parameters) == 0 {
		return " (no parameters are accepted)"
	}
	names := make([]string, 0, len(schema.Parameters))
	for name := range schema.Parameters {
		names = append(names, "-"+name)
	}
	sort.Strings(names)
	return " (expected one of " + strings.Join(names, ", ") + ")"
}
