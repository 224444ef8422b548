package diagnostic

import (
	"fmt"
	"strings"

	"github.com/workman-lang/workman/internal/token"
)

// Diagnostic is the structured report produced by every compiler phase:
// a stable code, a human-readable message, the source span it concerns,
// and any extra structured details a presenter might want (the two
// competing types in a TC001, the missing constructor names in a TC004).
type Diagnostic struct {
	Code    Code
	Message string
	Span    token.Span
	File    string
	Details map[string]any
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// New builds a Diagnostic with its message formatted from args and an
// empty Details map.
func New(code Code, span token.Span, message string, args ...any) *Diagnostic {
	return &Diagnostic{
		Code:    code,
		Message: fmt.Sprintf(message, args...),
		Span:    span,
		Details: map[string]any{},
	}
}

// WithDetail attaches a structured key/value pair and returns the same
// diagnostic, for chaining at the construction site.
func (d *Diagnostic) WithDetail(key string, value any) *Diagnostic {
	if d.Details == nil {
		d.Details = map[string]any{}
	}
	d.Details[key] = value
	return d
}

// WithFile records which source file the diagnostic's span is relative to.
func (d *Diagnostic) WithFile(file string) *Diagnostic {
	d.File = file
	return d
}

// Position is a 1-based line and column, computed from a byte offset
// against a specific source text (spans themselves carry no line/column
// information, only offsets, so rendering needs the original source).
type Position struct {
	Line, Column int
}

// LineCol converts a byte offset in src into a 1-based line and column.
func LineCol(src string, offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	line := 1
	lastNewline := -1
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			lastNewline = i
		}
	}
	return Position{Line: line, Column: offset - lastNewline}
}

// Render produces a terminal-ready snippet: the offending line, one line
// of context before and after when available, and a caret line
// underlining the span.
func Render(d *Diagnostic, src string) string {
	lines := strings.Split(src, "\n")
	pos := LineCol(src, d.Span.Start)
	endPos := LineCol(src, d.Span.End)

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", d.Code, d.Message)
	if d.File != "" {
		fmt.Fprintf(&b, "  --> %s:%d:%d\n", d.File, pos.Line, pos.Column)
	}

	lineIdx := pos.Line - 1
	for i := lineIdx - 1; i <= lineIdx+1; i++ {
		if i < 0 || i >= len(lines) {
			continue
		}
		fmt.Fprintf(&b, "%4d | %s\n", i+1, lines[i])
		if i == lineIdx {
			width := pos.Column - 1
			carets := endPos.Column - pos.Column
			if endPos.Line != pos.Line || carets < 1 {
				carets = 1
			}
			fmt.Fprintf(&b, "     | %s%s\n", strings.Repeat(" ", width), strings.Repeat("^", carets))
		}
	}
	return b.String()
}
