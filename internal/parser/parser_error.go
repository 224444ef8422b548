package parser

import (
	"fmt"

	"github.com/workman-lang/workman/internal/token"
)

// ParseError is a fatal syntax error. Parsing aborts the current module on
// the first one.
type ParseError struct {
	Offending token.Token
	Message   string
	Hint      string
}

func (e *ParseError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s (near %s): %s", e.Message, e.Offending, e.Hint)
	}
	return fmt.Sprintf("%s (near %s)", e.Message, e.Offending)
}
