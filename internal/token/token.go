// Package token defines the lexical token kinds produced by internal/lexer.
package token

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF
	COMMENT

	IDENT       // lowercase/underscore-led identifier
	CONSTRUCTOR // uppercase-led identifier
	NUMBER      // integer literal
	BOOL        // true | false
	CHAR        // 'a'
	STRING      // "abc"
	OPERATOR    // user-definable operator symbol sequence

	// Keywords
	LET
	REC
	AND
	TYPE
	MATCH
	IMPORT
	EXPORT
	FROM
	AS
	INFIX
	INFIXL
	INFIXR
	PREFIX

	// Symbols
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LT
	GT
	COMMA
	COLON
	SEMICOLON
	ASSIGN // '='
	FARROW // '=>'
	PIPE   // '|'
	UNDERSCORE
	STAR
	WILDCARD_IMPORT // '*'
	DOT
)

var names = map[Kind]string{
	ILLEGAL:     "ILLEGAL",
	EOF:         "EOF",
	COMMENT:     "COMMENT",
	IDENT:       "IDENT",
	CONSTRUCTOR: "CONSTRUCTOR",
	NUMBER:      "NUMBER",
	BOOL:        "BOOL",
	CHAR:        "CHAR",
	STRING:      "STRING",
	OPERATOR:    "OPERATOR",
	LET:         "let",
	REC:         "rec",
	AND:         "and",
	TYPE:        "type",
	MATCH:       "match",
	IMPORT:      "import",
	EXPORT:      "export",
	FROM:        "from",
	AS:          "as",
	INFIX:       "infix",
	INFIXL:      "infixl",
	INFIXR:      "infixr",
	PREFIX:      "prefix",
	LPAREN:      "(",
	RPAREN:      ")",
	LBRACE:      "{",
	RBRACE:      "}",
	LT:          "<",
	GT:          ">",
	COMMA:       ",",
	COLON:       ":",
	SEMICOLON:   ";",
	ASSIGN:      "=",
	FARROW:      "=>",
	PIPE:        "|",
	UNDERSCORE:  "_",
	STAR:        "*",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps keyword spelling to its Kind.
var Keywords = map[string]Kind{
	"let":    LET,
	"rec":    REC,
	"and":    AND,
	"type":   TYPE,
	"match":  MATCH,
	"import": IMPORT,
	"export": EXPORT,
	"from":   FROM,
	"as":     AS,
	"infix":  INFIX,
	"infixl": INFIXL,
	"infixr": INFIXR,
	"prefix": PREFIX,
	"true":   BOOL,
	"false":  BOOL,
}

// Span is a byte-offset range [Start, End) into the original source.
type Span struct {
	Start int
	End   int
}

// Token is a single lexical token with its source span.
type Token struct {
	Kind    Kind
	Literal string
	Span    Span
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@[%d,%d)", t.Kind, t.Literal, t.Span.Start, t.Span.End)
}

// OperatorSymbols is the alphabet user-defined operators are built from.
const OperatorSymbols = "+-*/<>=!&|?^~%"
