package lexer

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

// bomUTF8 is the UTF-8 byte order mark some editors prepend to source files.
var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// Normalize strips a leading UTF-8 BOM and applies Unicode NFC
// normalization, so that two source files differing only in how they
// encode the same text (composed vs. decomposed accents, a stray BOM)
// lex to identical token streams. Every span the lexer reports is a byte
// offset into the result of this call, not into whatever bytes the
// caller originally read off disk.
func Normalize(src []byte) []byte {
	src = bytes.TrimPrefix(src, bomUTF8)
	if !norm.NFC.IsNormal(src) {
		src = norm.NFC.Bytes(src)
	}
	return src
}
