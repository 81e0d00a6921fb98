// Package htmlspec carries the small, fixed HTML element tables the parser
// and the DOM serializer both need: which elements are void, and which
// start/end tags may be implied rather than written out.
package htmlspec

// voidElements never have content and are never explicitly self-closed or
// explicitly closed with an end tag.
var voidElements = map[string]bool{
	"AREA": true, "BASE": true, "BR": true, "COL": true, "EMBED": true,
	"HR": true, "IMG": true, "INPUT": true, "KEYGEN": true, "LINK": true,
	"MENUITEM": true, "META": true, "PARAM": true, "SOURCE": true,
	"TRACK": true, "WBR": true,
}

// IsVoidElement reports whether tagName (already upper-cased) is void.
func IsVoidElement(tagName string) bool {
	return voidElements[tagName]
}

// autoclosePrevSibling lists, for a newly opened tag, which previous sibling
// tags it implicitly closes. E.g. a new LI closes a still-open sibling LI.
var autoclosePrevSibling = map[string]map[string]bool{
	"LI":    {"LI": true},
	"TD":    {"TD": true},
	"TR":    {"TR": true, "TD": true},
	"TH":    {"TH": true},
	"TBODY": {"THEAD": true},
	"DD":    {"DD": true, "DT": true},
	"DT":    {"DT": true},
	"P":     {"P": true},
}

// AutoclosePrevSibling reports whether opening newTag should implicitly
// close a preceding, still-open sibling named prevSiblingName.
func AutoclosePrevSibling(newTag, prevSiblingName string) bool {
	siblings, ok := autoclosePrevSibling[newTag]
	return ok && siblings[prevSiblingName]
}

// autocloseLastChild lists tags that may be implicitly closed by their
// parent's end tag when they are still open as the last child.
var autocloseLastChild = map[string]bool{
	"LI": true, "P": true, "TD": true, "TR": true, "TBODY": true,
	"THEAD": true, "TH": true, "DD": true,
}

// AutocloseLastChild reports whether tagName may be implicitly closed when
// it is still the open, innermost element at the time its parent's end tag
// (or an unrelated end tag) is encountered.
func AutocloseLastChild(tagName string) bool {
	return autocloseLastChild[tagName]
}
