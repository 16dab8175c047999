package annotations

import (
	"fmt"
	"sort"
	"sync"
)

// AnnotationRegistry holds the schemas annotations are validated against
type AnnotationRegistry interface {
	Register(schema AnnotationSchema) error
	GetSchema(t AnnotationType) (AnnotationSchema, error)
	IsRegistered(t AnnotationType) bool
	ListTypes() []AnnotationType
}

type schemaRegistry struct {
	mu      sync.RWMutex
	schemas map[AnnotationType]AnnotationSchema
}

// NewRegistry creates an empty schema registry
func NewRegistry() AnnotationRegistry {
	return &schemaRegistry{schemas: make(map[AnnotationType]AnnotationSchema)}
}

// DefaultRegistry returns a registry holding DefaultSchemas
func DefaultRegistry() AnnotationRegistry {
	r := NewRegistry()
	for _, schema := range DefaultSchemas() {
		if err := r.Register(schema); err != nil {
			panic(err)
		}
	}
	return r
}

func (r *schemaRegistry) Register(schema AnnotationSchema) error {
	if schema.Type == UnknownAnnotation {
		return fmt.Errorf("schema has no annotation type")
	}
	if schema.MaxArgs < schema.MinArgs {
		return fmt.Errorf("schema %s: MaxArgs below MinArgs", schema.Type)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schemas[schema.Type]; exists {
		return fmt.Errorf("annotation type %s is already registered", schema.Type)
	}
	r.schemas[schema.Type] = schema
	return nil
}

func (r *schemaRegistry) GetSchema(t AnnotationType) (AnnotationSchema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, ok := r.schemas[t]
	if !ok {
		return AnnotationSchema{}, fmt.Errorf("no schema registered for annotation type %s", t)
	}
	return schema, nil
}

func (r *schemaRegistry) IsRegistered(t AnnotationType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.schemas[t]
	return ok
}

func (r *schemaRegistry) ListTypes() []AnnotationType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]AnnotationType, 0, len(r.schemas))
	for t := range r.schemas {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
