package parser

import "github.com/workman-lang/workman/internal/ast"

// StandardOperators returns the precedence/associativity table a prelude
// module's infix/infixl/infixr declarations would install before user code
// runs. Precedence numbers follow the usual arithmetic-then-comparison-
// then-boolean layering. Arithmetic is left-associative; the comparisons
// are marked non-associative, which the parser groups like left-
// associative operators; boolean and/or are right-associative so chains
// short-circuit from the right.
func StandardOperators() map[string]OpInfo {
	return map[string]OpInfo{
		"*":  {Prec: 70, Assoc: ast.LeftAssoc, FuncName: "__op_mul"},
		"/":  {Prec: 70, Assoc: ast.LeftAssoc, FuncName: "__op_div"},
		"+":  {Prec: 60, Assoc: ast.LeftAssoc, FuncName: "__op_add"},
		"-":  {Prec: 60, Assoc: ast.LeftAssoc, FuncName: "__op_sub"},
		"<":  {Prec: 40, Assoc: ast.NonAssoc, FuncName: "__op_lt"},
		">":  {Prec: 40, Assoc: ast.NonAssoc, FuncName: "__op_gt"},
		"<=": {Prec: 40, Assoc: ast.NonAssoc, FuncName: "__op_le"},
		">=": {Prec: 40, Assoc: ast.NonAssoc, FuncName: "__op_ge"},
		"==": {Prec: 40, Assoc: ast.NonAssoc, FuncName: "__op_eq"},
		"!=": {Prec: 40, Assoc: ast.NonAssoc, FuncName: "__op_ne"},
		"&&": {Prec: 30, Assoc: ast.RightAssoc, FuncName: "__op_and"},
		"||": {Prec: 20, Assoc: ast.RightAssoc, FuncName: "__op_or"},
	}
}

// StandardPrefixOperators returns the prefix operator table for unary
// negation and boolean not.
func StandardPrefixOperators() map[string]string {
	return map[string]string{
		"-": "__prefix_neg",
		"!": "__prefix_not",
	}
}
