package charclass_test

import (
	"testing"

	"github.com/dsrosen/htmlreader/internal/charclass"
)

func TestSpaceClass(t *testing.T) {
	for _, b := range []byte{' ', '\t', '\r', '\n'} {
		if !charclass.Is(b, charclass.Space) {
			t.Errorf("byte %q should be classified as space", b)
		}
	}
	if charclass.Is('x', charclass.Space) {
		t.Error("'x' should not be classified as space")
	}
}

func TestStartSymbolClass(t *testing.T) {
	for _, b := range []byte{'a', 'Z', '_', ':'} {
		if !charclass.Is(b, charclass.StartSymbol) {
			t.Errorf("byte %q should be a start symbol", b)
		}
	}
	for _, b := range []byte{'0', '9', '-', '.'} {
		if charclass.Is(b, charclass.StartSymbol) {
			t.Errorf("byte %q should not be a start symbol", b)
		}
		if !charclass.Is(b, charclass.Symbol) {
			t.Errorf("byte %q should still be a symbol-continuation char", b)
		}
	}
}

func TestHighBytesFoldIntoSymbol(t *testing.T) {
	for _, b := range []byte{0x80, 0xC3, 0xA9, 0xFF} {
		if !charclass.Is(b, charclass.Symbol|charclass.StartSymbol) {
			t.Errorf("high byte 0x%X should be both symbol and start symbol", b)
		}
	}
}

func TestPCDataStopSet(t *testing.T) {
	if !charclass.Is(0, charclass.ParsePCData) {
		t.Error("NUL should stop a pcdata scan")
	}
	if !charclass.Is('<', charclass.ParsePCData) {
		t.Error("'<' should stop a pcdata scan")
	}
	if charclass.Is('a', charclass.ParsePCData) {
		t.Error("'a' should not stop a pcdata scan")
	}
}

func TestAttrStopSet(t *testing.T) {
	for _, b := range []byte{0, '\r', ' ', '>'} {
		if !charclass.Is(b, charclass.ParseAttr) {
			t.Errorf("byte %q should stop an unquoted attribute scan", b)
		}
	}
}
