package templates

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/toyz/fwmap/internal/models"
)

// FrameworkImport is the import path of the runtime package used by generated code
const FrameworkImport = "github.com/toyz/fwmap/pkg/fwmap"

// MappingsTemplate renders the registrations of one package
const MappingsTemplate = `// Code generated by fwmap. DO NOT EDIT.

package {{.PackageName}}

import (
	"{{.FrameworkImport}}"
)

func init() {
{{- range $c := .Components}}
	fwmap.RegisterComponent(fwmap.Component{
		PackagePath: {{quote $.ImportPath}},
		TypeName:    {{quote $c.TypeName}},
		Marker:      fwmap.Marker{Stereotype: {{stereotype $c.Stereotype}}{{if $c.Value}}, Value: {{quote $c.Value}}{{end}}},
		New:         func() any { return &{{$c.TypeName}}{} },
		Mappings: []fwmap.MappingDefinition{
{{- range $m := $c.Mappings}}
			{
				Method:      {{quote $m.Method}},
				Path:        {{quote $m.Path}},
				HandlerName: {{quote $m.HandlerName}},
				Bind:        func(i any) fwmap.HandlerFunc { return {{bind $c $m}} },
			},
{{- end}}
		},
	})
{{- end}}
{{- range $cfg := .Configurations}}
	fwmap.RegisterConfiguration(fwmap.Configuration{
		PackagePath: {{quote $.ImportPath}},
		TypeName:    {{quote $cfg.TypeName}},
		Scans:       []fwmap.ComponentScan{ {{scan $cfg.Scan}} },
	})
{{- end}}
}
`

// MappingsData is the input of MappingsTemplate
type MappingsData struct {
	PackageName     string
	ImportPath      string
	FrameworkImport string
	Components      []models.ComponentMetadata
	Configurations  []models.ConfigurationMetadata
}

var funcs = template.FuncMap{
	"quote":      strconv.Quote,
	"stereotype": StereotypeIdent,
	"bind":       BindExpr,
	"scan":       ScanExpr,
}

var mappingsTemplate = template.Must(template.New("mappings").Funcs(funcs).Parse(MappingsTemplate))

// RenderMappings renders the unformatted registration file for a package
func RenderMappings(metadata *models.PackageMetadata, importPath string) (string, error) {
	data := MappingsData{
		PackageName:     metadata.PackageName,
		ImportPath:      importPath,
		FrameworkImport: FrameworkImport,
		Components:      metadata.Components,
		Configurations:  metadata.Configurations,
	}

	var buf bytes.Buffer
	if err := mappingsTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute mappings template: %w", err)
	}
	return buf.String(), nil
}

// StereotypeIdent converts an annotation name such as framework_rest_controller
// to the fwmap constant naming it
func StereotypeIdent(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return "fwmap." + strings.Join(parts, "")
}

// BindExpr returns the expression turning a component instance into the
// handler of mapping
func BindExpr(component models.ComponentMetadata, mapping models.MappingMetadata) string {
	method := fmt.Sprintf("i.(*%s).%s", component.TypeName, mapping.HandlerName)
	switch mapping.Signature {
	case models.SignatureResult:
		return "fwmap.Bind(" + method + ")"
	case models.SignatureContextResult:
		return "fwmap.BindContext(" + method + ")"
	default:
		return method
	}
}

// ScanExpr returns the Go expression building the scan directive
func ScanExpr(scan models.ScanMetadata) string {
	switch scan.Directive {
	case "enable_all_framework_controllers":
		return "fwmap.EnableAllFrameworkControllers()"
	case "enable_framework_controllers":
		return "fwmap.EnableFrameworkControllers(" + strings.Join(scanOptions(scan), ", ") + ")"
	case "enable_framework_rest_controllers":
		return "fwmap.EnableFrameworkRestControllers(" + strings.Join(scanOptions(scan), ", ") + ")"
	}

	var b strings.Builder
	b.WriteString("{Name: " + strconv.Quote(scan.Directive))
	if len(scan.BasePackages) > 0 {
		b.WriteString(", BasePackages: []string{" + quoteAll(scan.BasePackages) + "}")
	}
	if len(scan.Include) > 0 {
		idents := make([]string, len(scan.Include))
		for i, name := range scan.Include {
			idents[i] = StereotypeIdent(name)
		}
		b.WriteString(", IncludeFilters: []fwmap.TypeFilter{fwmap.NewAnnotationFilter(" + strings.Join(idents, ", ") + ")}")
	}
	if len(scan.Exclude) > 0 {
		b.WriteString(", ExcludeFilters: []fwmap.TypeFilter{" + strings.Join(regexFilters(scan.Exclude), ", ") + "}")
	}
	b.WriteString(", UseDefaultFilters: " + strconv.FormatBool(scan.UseDefaultFilters) + "}")
	return b.String()
}

func scanOptions(scan models.ScanMetadata) []string {
	var opts []string
	if len(scan.Exclude) > 0 {
		opts = append(opts, "fwmap.WithExcludeFilters("+strings.Join(regexFilters(scan.Exclude), ", ")+")")
	}
	if len(scan.BasePackages) > 0 {
		opts = append(opts, "fwmap.WithBasePackages("+quoteAll(scan.BasePackages)+")")
	}
	return opts
}

func regexFilters(exprs []string) []string {
	filters := make([]string, len(exprs))
	for i, expr := range exprs {
		filters[i] = "fwmap.MustRegexFilter(" + strconv.Quote(expr) + ")"
	}
	return filters
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = strconv.Quote(v)
	}
	return strings.Join(quoted, ", ")
}
