package models

// GeneratedFileName is the file fwmap writes into each annotated package
const GeneratedFileName = "autogen_mappings.go"

// PackageMetadata represents all fwmap annotations found in a package
type PackageMetadata struct {
	PackageName    string                  // name of the Go package
	PackagePath    string                  // file system path to the package
	ImportPath     string                  // import path, resolved from go.mod
	Components     []ComponentMetadata     // annotated controller types
	Configurations []ConfigurationMetadata // types carrying a scan directive
}

// IsEmpty reports whether the package has nothing to register
func (p *PackageMetadata) IsEmpty() bool {
	return len(p.Components) == 0 && len(p.Configurations) == 0
}

// MappingCount returns the number of mappings across all components
func (p *PackageMetadata) MappingCount() int {
	n := 0
	for _, c := range p.Components {
		n += len(c.Mappings)
	}
	return n
}

// ComponentMetadata represents an annotated controller type
type ComponentMetadata struct {
	TypeName   string            // struct name
	Stereotype string            // annotation name, e.g. framework_controller
	Value      string            // optional marker value
	Framework  bool              // framework_controller or framework_rest_controller
	Mappings   []MappingMetadata // annotated handler methods
	FileName   string
	Line       int
}

// MappingMetadata represents an annotated handler method
type MappingMetadata struct {
	Method      string // HTTP method
	Path        string // mapping pattern
	HandlerName string // method name on the controller
	Signature   HandlerSignature
	ResultType  string // T in (T, error), as written in source
	FileName    string
	Line        int
}

// HandlerSignature describes the shape of a handler method
type HandlerSignature int

const (
	// SignatureUnsupported cannot be bound
	SignatureUnsupported HandlerSignature = iota
	// SignatureResult is func() (T, error)
	SignatureResult
	// SignatureContextResult is func(fwmap.RequestContext) (T, error)
	SignatureContextResult
	// SignatureContext is func(fwmap.RequestContext) error
	SignatureContext
)

// String returns the signature as Go source
func (s HandlerSignature) String() string {
	switch s {
	case SignatureResult:
		return "func() (T, error)"
	case SignatureContextResult:
		return "func(fwmap.RequestContext) (T, error)"
	case SignatureContext:
		return "func(fwmap.RequestContext) error"
	default:
		return "unsupported"
	}
}

// ConfigurationMetadata represents a type carrying a scan directive
type ConfigurationMetadata struct {
	TypeName string
	Scan     ScanMetadata
	FileName string
	Line     int
}

// ScanMetadata represents one scan directive
type ScanMetadata struct {
	Directive         string   // annotation name
	BasePackages      []string // empty: directive default
	Include           []string // stereotype names
	Exclude           []string // regular expressions on qualified names
	UseDefaultFilters bool
}

// GeneratedFile is the output of the generator for one package
type GeneratedFile struct {
	PackageName string
	ImportPath  string
	FilePath    string
	Content     string
}
