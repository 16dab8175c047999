package annotations

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// annotationLexer tokenizes a single //axon:: comment line.
// Rules are tried in order, so Flag and Equals win over Value.
var annotationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Comment", Pattern: `//`},
	{Name: "Prefix", Pattern: `axon::`},
	{Name: "Flag", Pattern: `-[A-Za-z][A-Za-z0-9_]*`},
	{Name: "Equals", Pattern: `=`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Value", Pattern: `[^\s="-][^\s=]*`},
})

// annotationAST is the grammar of an annotation:
//
//	//axon::name [arg ...] [-Param[=value] ...]
type annotationAST struct {
	Pos lexer.Position

	Name   string      `parser:"Comment Prefix @Value"`
	Args   []*valueAST `parser:"@@*"`
	Params []*paramAST `parser:"@@*"`
}

type paramAST struct {
	Pos lexer.Position

	Key   string    `parser:"@Flag"`
	Value *valueAST `parser:"( Equals @@ )?"`
}

type valueAST struct {
	Quoted *string `parser:"  @String"`
	Bare   *string `parser:"| @Value"`
}

func (v *valueAST) text() string {
	if v.Quoted != nil {
		if s, err := strconv.Unquote(*v.Quoted); err == nil {
			return s
		}
		return *v.Quoted
	}
	if v.Bare != nil {
		return *v.Bare
	}
	return ""
}

var annotationGrammar = participle.MustBuild[annotationAST](
	participle.Lexer(annotationLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)
