// Package diagnostic defines the structured diagnostic report emitted by
// every compiler phase, a stable code registry, and source-snippet
// rendering for terminal output.
package diagnostic

// Code is a short, stable identifier for one specific diagnostic
// condition, grouped by the phase that raises it: LEX (lexer), PAR
// (parser), MOD (module resolution), TC (type inference), SLV (constraint
// solver), ELB (elaboration / lowering to Core), MIR (MIR lowering).
type Code string

const (
	LEX001 Code = "LEX001" // unterminated string or char literal
	LEX002 Code = "LEX002" // invalid escape sequence
	LEX003 Code = "LEX003" // unrecognized character

	PAR001 Code = "PAR001" // unexpected token
	PAR002 Code = "PAR002" // missing closing delimiter
	PAR003 Code = "PAR003" // invalid declaration syntax
	PAR004 Code = "PAR004" // invalid pattern syntax
	PAR005 Code = "PAR005" // invalid type annotation syntax
	PAR006 Code = "PAR006" // arrow body or match arm body must be a block
	PAR007 Code = "PAR007" // first-class match parameter must be a bare name

	MOD001 Code = "MOD001" // module not found on disk
	MOD002 Code = "MOD002" // circular module dependency
	MOD003 Code = "MOD003" // unsupported module specifier
	MOD004 Code = "MOD004" // import of a name the module does not export
	MOD005 Code = "MOD005" // re-export of a type the dependency does not export

	TC001 Code = "TC001" // type mismatch
	TC002 Code = "TC002" // unbound variable
	TC003 Code = "TC003" // occurs check failed
	TC004 Code = "TC004" // non-exhaustive match
	TC005 Code = "TC005" // unknown constructor
	TC006 Code = "TC006" // wrong constructor arity
	TC007 Code = "TC007" // duplicate constructor or type declaration

	SLV001 Code = "SLV001" // conflicting constraints on the same hole
	SLV002 Code = "SLV002" // error row escapes a declared boundary
	SLV003 Code = "SLV003" // infectious call result used without acknowledging its error row

	ELB001 Code = "ELB001" // invalid Core AST after elaboration
	ELB002 Code = "ELB002" // non-exhaustive pattern at lowering time

	MIR001 Code = "MIR001" // string pattern reached MIR lowering (rejected, unlike inference)
	MIR002 Code = "MIR002" // duplicate constructor tag
)

// Phase names, used for grouping diagnostics by the phase that raised them.
const (
	PhaseLexer    = "lexer"
	PhaseParser   = "parser"
	PhaseModule   = "module"
	PhaseInfer    = "typecheck"
	PhaseSolver   = "solve"
	PhaseElaborate = "elaborate"
	PhaseMIR      = "mir"
)

func (c Code) Phase() string {
	switch c[:3] {
	case "LEX":
		return PhaseLexer
	case "PAR":
		return PhaseParser
	case "MOD":
		return PhaseModule
	case "TC0":
		return PhaseInfer
	case "SLV":
		return PhaseSolver
	case "ELB":
		return PhaseElaborate
	case "MIR":
		return PhaseMIR
	default:
		return "unknown"
	}
}
