// Package charclass classifies bytes the way the HTML scanner needs them
// classified: as whitespace, as name characters, or as characters that
// terminate one of the scanner's raw-text spans. It is a pure lookup table,
// no state, no error mode.
package charclass

// Mask is a bitset of chartype_t classes a byte can belong to simultaneously.
type Mask uint8

const (
	// ParsePCData marks bytes that stop an ordinary text scan: NUL and '<'.
	ParsePCData Mask = 1 << iota
	// ParseAttr marks bytes that stop an unquoted attribute-value scan.
	ParseAttr
	// ParseAttrWS marks bytes that stop a quoted attribute-value scan.
	ParseAttrWS
	// Space marks whitespace: space, tab, CR, LF.
	Space
	// ParseCData marks bytes that stop a CDATA section scan.
	ParseCData
	// ParseComment marks bytes that stop a comment scan.
	ParseComment
	// Symbol marks bytes that may continue a tag or attribute name.
	Symbol
	// StartSymbol marks bytes that may start a tag or attribute name.
	StartSymbol
)

// table holds, for every possible byte value, the set of classes it belongs
// to. It is the byte-for-byte equivalent of the original scanner's
// chartype_table[256]: values above 127 (UTF-8 lead and continuation bytes)
// are folded into the same class as ASCII letters, so multi-byte names
// parse as ordinary symbol characters without a second, wide-character
// build of the table.
var table = [256]Mask{
	// 0-15
	55, 0, 0, 0, 0, 0, 0, 0, 0, 12, 12, 0, 0, 62, 0, 0,
	// 16-31
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	// 32-47
	10, 0, 4, 0, 0, 0, 4, 4, 0, 0, 0, 0, 0, 96, 64, 0,
	// 48-63
	64, 64, 64, 64, 64, 64, 64, 64, 64, 64, 192, 0, 1, 0, 50, 0,
	// 64-79
	0, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192,
	// 80-95
	192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 0, 0, 16, 0, 192,
	// 96-111
	0, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192,
	// 112-127
	192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 0, 0, 0, 0, 0,
	// 128-255: every high byte is both a symbol and a start symbol.
	192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192,
	192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192,
	192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192,
	192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192,
	192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192,
	192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192,
	192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192,
	192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192, 192,
}

// Of returns the full class set for a byte.
func Of(b byte) Mask {
	return table[b]
}

// Is reports whether b belongs to any class in m.
func Is(b byte, m Mask) bool {
	return table[b]&m != 0
}
