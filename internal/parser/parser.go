package parser

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"io/fs"
	"sort"
	"strings"

	"github.com/toyz/fwmap/internal/annotations"
	"github.com/toyz/fwmap/internal/errors"
	"github.com/toyz/fwmap/internal/models"
	"github.com/toyz/fwmap/pkg/fwmap"
)

// Parser extracts fwmap annotations from Go source
type Parser struct {
	fileSet     *token.FileSet
	annotations *annotations.Parser
}

// NewParser creates a new annotation parser
func NewParser() *Parser {
	return &Parser{
		fileSet:     token.NewFileSet(),
		annotations: annotations.NewParser(nil),
	}
}

// ParseSource parses source code from a string for testing purposes
func (p *Parser) ParseSource(filename, source string) (*models.PackageMetadata, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	metadata := &models.PackageMetadata{
		PackageName: file.Name.Name,
		PackagePath: "./",
	}
	if err := p.process(map[string]*ast.File{filename: file}, metadata); err != nil {
		return nil, err
	}
	return metadata, nil
}

// ParseDirectory parses the non-test Go files of one package directory.
// Previously generated files are skipped.
func (p *Parser) ParseDirectory(path string) (*models.PackageMetadata, error) {
	filter := func(fi fs.FileInfo) bool {
		name := fi.Name()
		return !strings.HasSuffix(name, "_test.go") && name != models.GeneratedFileName
	}

	pkgs, err := parser.ParseDir(p.fileSet, path, filter, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory %s: %w", path, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages found in directory %s", path)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found in directory %s", path)
	}

	var metadata *models.PackageMetadata
	for name, pkg := range pkgs {
		metadata = &models.PackageMetadata{PackageName: name, PackagePath: path}
		if err := p.process(pkg.Files, metadata); err != nil {
			return nil, err
		}
	}
	return metadata, nil
}

// typeAnnotations are the annotations found on one type declaration
type typeAnnotations struct {
	name       string
	pos        token.Position
	stereotype *annotations.ParsedAnnotation
	scans      []*annotations.ParsedAnnotation
}

// methodAnnotation is a mapping found on a method declaration
type methodAnnotation struct {
	receiver   string
	annotation *annotations.ParsedAnnotation
	decl       *ast.FuncDecl
}

// process walks files in name order and fills metadata.
// All problems are collected and returned together.
func (p *Parser) process(files map[string]*ast.File, metadata *models.PackageMetadata) error {
	problems := errors.NewMultipleErrors()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var typesFound []*typeAnnotations
	var methods []methodAnnotation

	for _, name := range names {
		for _, decl := range files[name].Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}
				for _, spec := range d.Specs {
					ts := spec.(*ast.TypeSpec)
					doc := ts.Doc
					if doc == nil && len(d.Specs) == 1 {
						doc = d.Doc
					}
					if ta := p.typeAnnotations(ts, doc, problems); ta != nil {
						typesFound = append(typesFound, ta)
					}
				}
			case *ast.FuncDecl:
				methods = append(methods, p.methodAnnotations(d, problems)...)
			}
		}
	}

	components := make(map[string]int)
	for _, ta := range typesFound {
		if ta.stereotype != nil {
			a := ta.stereotype
			components[ta.name] = len(metadata.Components)
			metadata.Components = append(metadata.Components, models.ComponentMetadata{
				TypeName:   ta.name,
				Stereotype: a.Type.String(),
				Value:      a.Arg(0),
				Framework:  a.Type.IsFramework(),
				FileName:   ta.pos.Filename,
				Line:       ta.pos.Line,
			})
		}

		if len(ta.scans) > 1 {
			directives := make([]string, len(ta.scans))
			for i, s := range ta.scans {
				directives[i] = s.Type.String()
			}
			problems.Add(errors.CompositionError(location(ta.pos), ta.name, directives))
			continue
		}
		if len(ta.scans) == 1 {
			metadata.Configurations = append(metadata.Configurations, models.ConfigurationMetadata{
				TypeName: ta.name,
				Scan:     scanMetadata(ta.scans[0]),
				FileName: ta.pos.Filename,
				Line:     ta.pos.Line,
			})
		}
	}

	for _, m := range methods {
		p.addMapping(m, metadata, components, problems)
	}

	return problems.ErrOrNil()
}

func (p *Parser) typeAnnotations(ts *ast.TypeSpec, doc *ast.CommentGroup, problems *errors.MultipleErrors) *typeAnnotations {
	parsed := p.parseComments(doc, ts.Name.Name, problems)
	if len(parsed) == 0 {
		return nil
	}

	ta := &typeAnnotations{name: ts.Name.Name, pos: p.fileSet.Position(ts.Pos())}
	if _, ok := ts.Type.(*ast.StructType); !ok {
		problems.Add(errors.ValidationError(location(ta.pos),
			fmt.Sprintf("%s annotations must be attached to a struct type", ts.Name.Name)))
		return nil
	}

	for _, a := range parsed {
		loc := toLocation(a.Location)
		switch {
		case a.Type.IsStereotype():
			if ta.stereotype != nil {
				problems.Add(errors.ValidationError(loc,
					fmt.Sprintf("%s is already annotated as %s", ta.name, ta.stereotype.Type),
					"a controller type carries exactly one stereotype"))
				continue
			}
			ta.stereotype = a
		case a.Type.IsScan():
			ta.scans = append(ta.scans, a)
		case a.Type.IsMapping():
			problems.Add(errors.ValidationError(loc,
				fmt.Sprintf("%s must be attached to a method, not type %s", a.Type, ta.name)))
		}
	}
	return ta
}

func (p *Parser) methodAnnotations(fd *ast.FuncDecl, problems *errors.MultipleErrors) []methodAnnotation {
	target := fd.Name.Name
	receiver := receiverName(fd)
	if receiver != "" {
		target = receiver + "." + target
	}

	var result []methodAnnotation
	for _, a := range p.parseComments(fd.Doc, target, problems) {
		loc := toLocation(a.Location)
		if !a.Type.IsMapping() {
			problems.Add(errors.ValidationError(loc,
				fmt.Sprintf("%s must be attached to a type, not %s", a.Type, target)))
			continue
		}
		if receiver == "" {
			problems.Add(errors.ValidationError(loc,
				fmt.Sprintf("%s must be attached to a controller method, %s is a function", a.Type, target)))
			continue
		}
		result = append(result, methodAnnotation{receiver: receiver, annotation: a, decl: fd})
	}
	return result
}

func (p *Parser) addMapping(m methodAnnotation, metadata *models.PackageMetadata, components map[string]int, problems *errors.MultipleErrors) {
	a := m.annotation
	loc := toLocation(a.Location)

	idx, ok := components[m.receiver]
	if !ok {
		problems.Add(errors.ValidationError(loc,
			fmt.Sprintf("%s on %s.%s but %s has no controller annotation", a.Type, m.receiver, m.decl.Name.Name, m.receiver),
			"annotate the type with //axon::controller or //axon::framework_controller"))
		return
	}
	component := &metadata.Components[idx]

	if component.Framework && a.Type == annotations.RouteAnnotation {
		problems.Add(errors.ValidationError(loc,
			fmt.Sprintf("%s is a %s; use framework_mapping instead of route", component.TypeName, component.Stereotype)))
		return
	}
	if !component.Framework && a.Type == annotations.FrameworkMappingAnnotation {
		problems.Add(errors.ValidationError(loc,
			fmt.Sprintf("%s is a %s; use route instead of framework_mapping", component.TypeName, component.Stereotype)))
		return
	}

	pattern, err := fwmap.ParsePattern(a.Arg(1))
	if err != nil {
		problems.Add(errors.ValidationError(loc, err.Error()))
		return
	}

	signature, resultType := classifySignature(m.decl.Type)
	if signature == models.SignatureUnsupported {
		problems.Add(errors.ValidationError(loc,
			fmt.Sprintf("handler %s.%s has an unsupported signature", m.receiver, m.decl.Name.Name),
			models.SignatureResult.String(),
			models.SignatureContextResult.String(),
			models.SignatureContext.String()))
		return
	}

	for _, existing := range component.Mappings {
		if existing.Method == a.Arg(0) && fwmap.MustParsePattern(existing.Path).Equivalent(pattern) {
			problems.Add(errors.ValidationError(loc,
				fmt.Sprintf("ambiguous mapping: %s.%s and %s.%s both map %s %s",
					m.receiver, existing.HandlerName, m.receiver, m.decl.Name.Name, a.Arg(0), pattern)))
			return
		}
	}

	component.Mappings = append(component.Mappings, models.MappingMetadata{
		Method:      a.Arg(0),
		Path:        a.Arg(1),
		HandlerName: m.decl.Name.Name,
		Signature:   signature,
		ResultType:  resultType,
		FileName:    a.Location.File,
		Line:        a.Location.Line,
	})
}

// parseComments parses every annotation line of doc
func (p *Parser) parseComments(doc *ast.CommentGroup, target string, problems *errors.MultipleErrors) []*annotations.ParsedAnnotation {
	if doc == nil {
		return nil
	}

	var result []*annotations.ParsedAnnotation
	for _, c := range doc.List {
		if !annotations.IsAnnotation(c.Text) {
			continue
		}
		pos := p.fileSet.Position(c.Pos())
		loc := annotations.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}

		parsed, err := p.annotations.ParseAnnotation(c.Text, loc)
		if err != nil {
			problems.Add(errors.SyntaxError(toLocation(loc), c.Text, err))
			continue
		}
		parsed.Target = target
		result = append(result, parsed)
	}
	return result
}

func scanMetadata(a *annotations.ParsedAnnotation) models.ScanMetadata {
	scan := models.ScanMetadata{
		Directive:    a.Type.String(),
		BasePackages: a.GetStringSlice("BasePackages"),
		Exclude:      a.GetStringSlice("Exclude"),
	}
	if a.Type == annotations.ComponentScanAnnotation {
		scan.Include = a.GetStringSlice("Include")
		scan.UseDefaultFilters = a.GetBool("UseDefaultFilters", true)
	}
	return scan
}

// classifySignature matches a handler method against the supported shapes
func classifySignature(ft *ast.FuncType) (models.HandlerSignature, string) {
	params := fieldTypes(ft.Params)
	results := fieldTypes(ft.Results)

	takesContext := false
	switch len(params) {
	case 0:
	case 1:
		if !isRequestContext(params[0]) {
			return models.SignatureUnsupported, ""
		}
		takesContext = true
	default:
		return models.SignatureUnsupported, ""
	}

	switch {
	case len(results) == 2 && isError(results[1]):
		resultType := types.ExprString(results[0])
		if takesContext {
			return models.SignatureContextResult, resultType
		}
		return models.SignatureResult, resultType
	case len(results) == 1 && isError(results[0]) && takesContext:
		return models.SignatureContext, ""
	default:
		return models.SignatureUnsupported, ""
	}
}

// fieldTypes expands a field list so that "a, b int" yields two entries
func fieldTypes(fl *ast.FieldList) []ast.Expr {
	if fl == nil {
		return nil
	}
	var result []ast.Expr
	for _, f := range fl.List {
		n := len(f.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			result = append(result, f.Type)
		}
	}
	return result
}

func isError(expr ast.Expr) bool {
	ident, ok := expr.(*ast.Ident)
	return ok && ident.Name == "error"
}

func isRequestContext(expr ast.Expr) bool {
	sel, ok := expr.(*ast.SelectorExpr)
	return ok && sel.Sel.Name == "RequestContext"
}

func receiverName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return ""
	}
	expr := fd.Recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}

func location(pos token.Position) errors.SourceLocation {
	return errors.SourceLocation{File: pos.Filename, Line: pos.Line, Column: pos.Column}
}

func toLocation(loc annotations.SourceLocation) errors.SourceLocation {
	return errors.SourceLocation{File: loc.File, Line: loc.Line, Column: loc.Column}
}
