package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/workman-lang/workman/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestLexBasicDecl(t *testing.T) {
	toks := New(`let id = (x) => { x };`, "t.wm").Tokenize()
	require.Equal(t, []token.Kind{
		token.LET, token.IDENT, token.ASSIGN, token.LPAREN, token.IDENT, token.RPAREN,
		token.FARROW, token.LBRACE, token.IDENT, token.RBRACE, token.SEMICOLON, token.EOF,
	}, kinds(toks))
}

func TestLexConstructorVsIdentifier(t *testing.T) {
	toks := New(`Some none`, "t.wm").Tokenize()
	require.Equal(t, token.CONSTRUCTOR, toks[0].Kind)
	require.Equal(t, token.IDENT, toks[1].Kind)
}

func TestLexUserOperator(t *testing.T) {
	toks := New(`a <+> b`, "t.wm").Tokenize()
	require.Equal(t, token.OPERATOR, toks[1].Kind)
	require.Equal(t, "<+>", toks[1].Literal)
}

func TestLexStringEscapes(t *testing.T) {
	toks := New(`"a\nb\"c"`, "t.wm").Tokenize()
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, "a\nb\"c", toks[0].Literal)
}

func TestLexUnterminatedString(t *testing.T) {
	l := New(`"abc`, "t.wm")
	l.Tokenize()
	require.Len(t, l.Errors(), 1)
	require.Equal(t, "unterminated_string", l.Errors()[0].(*Error).Kind)
}

func TestLexComments(t *testing.T) {
	toks := New("// hi\nlet x = 1;", "t.wm").Tokenize()
	require.Equal(t, token.LET, toks[0].Kind)

	withComments := New("// hi\nlet", "t.wm", WithComments()).Tokenize()
	require.Equal(t, token.COMMENT, withComments[0].Kind)
}

func TestLexBlockComment(t *testing.T) {
	toks := New("/* block\ncomment */let x = 1;", "t.wm").Tokenize()
	require.Equal(t, token.LET, toks[0].Kind)
}

func TestLexSpans(t *testing.T) {
	toks := New(`abc`, "t.wm").Tokenize()
	require.Equal(t, token.Span{Start: 0, End: 3}, toks[0].Span)
}

func TestLexIllegalCharacter(t *testing.T) {
	l := New("`", "t.wm")
	l.Tokenize()
	require.Len(t, l.Errors(), 1)
	require.Equal(t, "unexpected_character", l.Errors()[0].(*Error).Kind)
}
