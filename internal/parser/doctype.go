package parser

import (
	"bytes"

	"github.com/dsrosen/htmlreader/internal/diagnostics"
)

// advanceDoctypeGroup scans a top-level "<!...>" group: DOCTYPE itself, or
// any nested "<!ENTITY ...>"-style control group inside its internal
// subset. It returns the index just past the group's closing '>'.
//
// Unlike the source this is ported from, reaching end-of-input without a
// closing '>' is always an error here, even for the outermost call: the
// source's lenient top-level EOF path is gated on a sentinel comparison
// that its own doctype-value extraction does not safely support, so it is
// not reproduced.
func (st *parseState) advanceDoctypeGroup(s int) (int, error) {
	return st.advanceDoctypeGroupImpl(s)
}

func (st *parseState) advanceDoctypeGroupImpl(s int) (int, error) {
	s++ // skip the leading '<', leaving s at '!'
	for s < len(st.input) {
		switch {
		case hasPrefixAt(st.input, s, "<!["):
			ns, err := st.advanceDoctypeIgnore(s)
			if err != nil {
				return 0, err
			}
			s = ns
		case hasPrefixAt(st.input, s, "<!") && !hasPrefixAt(st.input, s, "<!--"):
			ns, err := st.advanceDoctypeGroupImpl(s)
			if err != nil {
				return 0, err
			}
			s = ns
		case st.input[s] == '<' || st.input[s] == '"' || st.input[s] == '\'':
			ns, err := st.advanceDoctypePrimitive(s)
			if err != nil {
				return 0, err
			}
			s = ns
		case st.input[s] == '>':
			return s + 1, nil
		default:
			s++
		}
	}
	return 0, st.errorf(diagnostics.BadDoctype, s, "")
}

// advanceDoctypeIgnore scans a self-nesting "<![ ... ]]>" ignore/include
// section inside a DOCTYPE internal subset.
func (st *parseState) advanceDoctypeIgnore(s int) (int, error) {
	s++
	for s < len(st.input) {
		switch {
		case hasPrefixAt(st.input, s, "<!["):
			ns, err := st.advanceDoctypeIgnore(s)
			if err != nil {
				return 0, err
			}
			s = ns
		case hasPrefixAt(st.input, s, "]]>"):
			return s + 3, nil
		default:
			s++
		}
	}
	return 0, st.errorf(diagnostics.BadDoctype, s, "")
}

// advanceDoctypePrimitive scans a single non-nesting unit that may appear
// inside a DOCTYPE group: a quoted string, a "<? ... ?>" processing
// instruction, or a "<!-- ... -->" comment.
func (st *parseState) advanceDoctypePrimitive(s int) (int, error) {
	switch {
	case st.input[s] == '"' || st.input[s] == '\'':
		quote := st.input[s]
		s++
		for s < len(st.input) && st.input[s] != quote {
			s++
		}
		if s >= len(st.input) {
			return 0, st.errorf(diagnostics.BadDoctype, s, "")
		}
		return s + 1, nil
	case hasPrefixAt(st.input, s, "<?"):
		s += 2
		idx := indexFrom(st.input, s, "?>")
		if idx < 0 {
			return 0, st.errorf(diagnostics.BadDoctype, len(st.input), "")
		}
		return idx + 2, nil
	case hasPrefixAt(st.input, s, "<!--"):
		s += 4
		idx := indexFrom(st.input, s, "-->")
		if idx < 0 {
			return 0, st.errorf(diagnostics.BadDoctype, len(st.input), "")
		}
		return idx + 3, nil
	default:
		return 0, st.errorf(diagnostics.BadDoctype, s, "")
	}
}

func hasPrefixAt(input []byte, pos int, prefix string) bool {
	end := pos + len(prefix)
	if end > len(input) {
		return false
	}
	return string(input[pos:end]) == prefix
}

func indexFrom(input []byte, from int, sub string) int {
	if from > len(input) {
		return -1
	}
	idx := bytes.Index(input[from:], []byte(sub))
	if idx < 0 {
		return -1
	}
	return from + idx
}
