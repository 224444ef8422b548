package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/unicode/norm"

	"github.com/workman-lang/workman/internal/token"
)

func TestNormalizeStripsBOM(t *testing.T) {
	input := append(append([]byte{}, bomUTF8...), []byte("let x = 1;")...)
	assert.Equal(t, []byte("let x = 1;"), Normalize(input))
}

func TestNormalizeLeavesPlainSourceAlone(t *testing.T) {
	assert.Equal(t, []byte("let x = 1;"), Normalize([]byte("let x = 1;")))
}

func TestNormalizeFoldsNFDToNFC(t *testing.T) {
	nfd := "café" // e + combining acute accent (NFD)
	result := string(Normalize([]byte(nfd)))
	assert.Equal(t, "café", result) // precomposed e-acute (NFC)
	assert.True(t, norm.NFC.IsNormalString(result))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	once := Normalize([]byte("﻿café"))
	twice := Normalize(once)
	assert.Equal(t, once, twice)
}

func TestLexerNormalizesBOMAndNFDBeforeScanning(t *testing.T) {
	withBOM := append(append([]byte{}, bomUTF8...), []byte("let café = 1;")...)
	plain := "let café = 1;"

	gotWithBOM := New(string(withBOM), "t.wm").Tokenize()
	gotPlain := New(plain, "t.wm").Tokenize()

	assert.Equal(t, kinds(gotPlain), kinds(gotWithBOM))
	assert.Equal(t, token.IDENT, gotWithBOM[1].Kind)
}
