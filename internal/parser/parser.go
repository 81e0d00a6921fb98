// Package parser implements the primary, byte-at-a-time HTML parser: the
// one that actually builds the DOM tree the rest of the module works with.
// It walks the input once, left to right, dispatching on each '<' to a
// start tag, end tag, or "<!" handler, and otherwise scanning a run of text.
// There is no backtracking and no lookahead beyond what each handler reads
// directly off the byte slice.
package parser

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dsrosen/htmlreader/internal/charclass"
	"github.com/dsrosen/htmlreader/internal/diagnostics"
	"github.com/dsrosen/htmlreader/internal/dom"
	"github.com/dsrosen/htmlreader/internal/htmlspec"
)

// Parser holds configuration only. Parse keeps all per-call state in a
// fresh parseState and never mutates the Parser, so a Parser can be reused
// across sequential Parse calls. The concurrency test in parser_test.go
// runs two distinct Parser instances in parallel.
type Parser struct {
	options Options
	log     *zap.SugaredLogger
}

// New builds a Parser. With no options, DefaultOptions applies.
func New(opts ...Option) *Parser {
	p := &Parser{options: DefaultOptions}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Parser) optionSet(o Options) bool { return p.options&o != 0 }

// parseState is the per-call mutable cursor: byte position, the node
// currently being built into, and the numbering counter. It is allocated
// fresh on every Parse call, so nothing about a parse is shared across
// calls or goroutines.
type parseState struct {
	p        *Parser
	input    []byte
	pos      int
	current  *dom.Node
	lastVoid bool
	number   int
}

// Parse scans input and returns the resulting document tree, or the first
// error encountered. An empty input yields an empty document, not an error.
func (p *Parser) Parse(input string) (*dom.Document, error) {
	doc := dom.NewDocument()
	if len(input) == 0 {
		return doc, nil
	}

	st := &parseState{p: p, input: []byte(input), pos: 0, current: doc.Node, number: 1}
	if err := st.run(); err != nil {
		return nil, err
	}

	if st.current != doc.Node {
		return nil, diagnostics.New(diagnostics.EndElementMismatch, st.input, len(st.input),
			fmt.Sprintf("Expected: '%s', found: end of input", st.current.Name()))
	}
	return doc, nil
}

func (st *parseState) run() error {
	for st.pos < len(st.input) {
		if st.input[st.pos] == '<' {
			if err := st.tagOpen(); err != nil {
				return err
			}
			continue
		}
		if st.current.Name() == "SCRIPT" {
			st.scriptBody()
			continue
		}
		st.pcdata()
	}
	return nil
}

func (st *parseState) errorf(status diagnostics.Status, pos int, extra string) error {
	return diagnostics.New(status, st.input, pos, extra)
}

func (st *parseState) skipSpaces() {
	for st.pos < len(st.input) && charclass.Is(st.input[st.pos], charclass.Space) {
		st.pos++
	}
}

// popVoidIfNeeded closes an element left open by a preceding void start tag
// (e.g. the IMG in "<img>text") before attaching a new sibling to its parent.
func (st *parseState) popVoidIfNeeded() {
	if st.lastVoid {
		if parent := st.current.Parent(); parent != nil {
			st.current = parent
		}
		st.lastVoid = false
	}
}

// pcdata collects a run of ordinary text up to the next '<' and attaches it
// as a CData-typed child of the current node. (The source emits CData for
// ordinary text too, not PCData; this preserves that.)
func (st *parseState) pcdata() {
	start := st.pos
	for st.pos < len(st.input) && !charclass.Is(st.input[st.pos], charclass.ParsePCData) {
		st.pos++
	}
	text := string(st.input[start:st.pos])
	st.popVoidIfNeeded()
	if text == "" {
		return
	}
	if !st.p.optionSet(OptWSPCData) && strings.TrimSpace(text) == "" {
		return
	}
	node := dom.NewCData(text)
	_ = st.current.AppendChild(node)
}

// scriptBody collects everything up to the next literal "</script>" as a
// single text child, bypassing ordinary tag scanning so markup-looking
// bytes inside inline scripts are not misread as tags.
func (st *parseState) scriptBody() {
	start := st.pos
	end := indexFrom(st.input, st.pos, "</script>")
	if end < 0 {
		end = len(st.input)
	}
	st.pos = end
	text := string(st.input[start:end])
	st.popVoidIfNeeded()
	if text != "" {
		node := dom.NewCData(text)
		_ = st.current.AppendChild(node)
	}
}

func (st *parseState) tagOpen() error {
	if st.pos+1 >= len(st.input) {
		return st.errorf(diagnostics.UnrecognizedTag, st.pos, "")
	}
	next := st.input[st.pos+1]
	switch {
	case charclass.Is(next, charclass.StartSymbol):
		return st.startTag()
	case next == '/':
		return st.endTag()
	case next == '!':
		return st.exclamation()
	default:
		return st.errorf(diagnostics.UnrecognizedTag, st.pos, "")
	}
}

func (st *parseState) beginElement(name string) {
	st.popVoidIfNeeded()

	node := dom.NewElement(name)
	node.SetNumber(st.number)
	st.number++

	parent := st.findParentForNewTag(name)
	_ = parent.AppendChild(node)
	st.current = node

	if st.p.log != nil {
		st.log().Debugw("open element", "name", name, "parent", parent.Name())
	}
}

// findParentForNewTag implements autoclose-on-open: if the new tag implies
// closing the currently open element as a sibling (e.g. a new LI closing a
// still-open LI), walk up past every such implied-closed ancestor.
func (st *parseState) findParentForNewTag(newTag string) *dom.Node {
	parent := st.current.Parent()
	newParent := st.current
	if parent != nil && htmlspec.AutoclosePrevSibling(newTag, st.current.Name()) {
		for parent.Parent() != nil && htmlspec.AutoclosePrevSibling(newTag, parent.Name()) {
			parent = parent.Parent()
		}
		newParent = parent
	}
	return newParent
}

func (st *parseState) log() *zap.SugaredLogger { return st.p.log }

func (st *parseState) startTag() error {
	st.pos++ // consume '<'
	start := st.pos
	for st.pos < len(st.input) && charclass.Is(st.input[st.pos], charclass.Symbol) {
		st.pos++
	}
	name := strings.ToUpper(string(st.input[start:st.pos]))
	st.beginElement(name)

	if st.pos >= len(st.input) {
		return st.errorf(diagnostics.BadStartElement, st.pos, "")
	}

	switch {
	case st.input[st.pos] == '>':
		st.lastVoid = htmlspec.IsVoidElement(st.current.Name())
	case charclass.Is(st.input[st.pos], charclass.Space):
		if err := st.attributeLoop(); err != nil {
			return err
		}
	case st.input[st.pos] == '/':
		if err := st.selfClosing(); err != nil {
			return err
		}
	default:
		return st.errorf(diagnostics.BadStartElement, st.pos, "")
	}
	st.pos++ // step over the tag's terminating '>', shared by every path above
	return nil
}

func (st *parseState) selfClosing() error {
	st.pos++ // consume '/'
	if st.pos >= len(st.input) || st.input[st.pos] != '>' {
		return st.errorf(diagnostics.BadStartElement, st.pos, "")
	}
	st.lastVoid = true
	return nil
}

func (st *parseState) attributeLoop() error {
	for {
		st.skipSpaces()
		if st.pos >= len(st.input) {
			return st.errorf(diagnostics.BadAttribute, st.pos, "")
		}
		switch {
		case charclass.Is(st.input[st.pos], charclass.StartSymbol):
			if err := st.attribute(); err != nil {
				return err
			}
		case st.input[st.pos] == '/':
			return st.selfClosing()
		case st.input[st.pos] == '>':
			st.lastVoid = htmlspec.IsVoidElement(st.current.Name())
			return nil
		default:
			return st.errorf(diagnostics.BadStartElement, st.pos, "")
		}
	}
}

func (st *parseState) attribute() error {
	start := st.pos
	for st.pos < len(st.input) && charclass.Is(st.input[st.pos], charclass.Symbol) {
		st.pos++
	}
	if st.pos >= len(st.input) {
		return st.errorf(diagnostics.BadAttribute, st.pos, "")
	}
	name := strings.ToUpper(string(st.input[start:st.pos]))

	st.skipSpaces()
	if st.pos >= len(st.input) {
		return st.errorf(diagnostics.BadAttribute, st.pos, "")
	}

	var value string
	if st.input[st.pos] == '=' {
		st.pos++
		st.skipSpaces()

		var quote byte
		if st.pos < len(st.input) && (st.input[st.pos] == '"' || st.input[st.pos] == '\'') {
			quote = st.input[st.pos]
			st.pos++
		}
		valStart := st.pos
		if quote != 0 {
			for st.pos < len(st.input) && st.input[st.pos] != quote {
				st.pos++
			}
			if st.pos >= len(st.input) {
				return st.errorf(diagnostics.BadAttribute, st.pos, "Bad attribute value closing symbol.")
			}
			value = string(st.input[valStart:st.pos])
			st.pos++ // consume the closing quote
		} else {
			for st.pos < len(st.input) && !charclass.Is(st.input[st.pos], charclass.ParseAttr) {
				st.pos++
			}
			value = string(st.input[valStart:st.pos])
		}
		if st.p.optionSet(OptWConvAttribute) {
			value = collapseWhitespace(value)
		}
		if st.p.optionSet(OptWNormAttribute) {
			value = strings.TrimSpace(value)
		}
	}

	st.current.AppendAttribute(name, value)
	return nil
}

func collapseWhitespace(s string) string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\r' || r == '\n'
	})
	return strings.Join(fields, " ")
}

func (st *parseState) endTag() error {
	st.pos += 2 // consume '</'
	start := st.pos
	for st.pos < len(st.input) && charclass.Is(st.input[st.pos], charclass.Symbol) {
		st.pos++
	}
	name := strings.ToUpper(string(st.input[start:st.pos]))

	if err := st.closeTag(name); err != nil {
		return err
	}

	st.skipSpaces()
	if st.pos >= len(st.input) || st.input[st.pos] != '>' {
		return st.errorf(diagnostics.BadEndElement, st.pos, "")
	}
	st.pos++
	return nil
}

// closeTag implements autoclose-on-close: if the currently open element is
// still marked void (a preceding void start tag never got popped), pop it
// unconditionally, since a void element is never the one an end tag names,
// even when its name happens to coincide with the end tag's (e.g. the
// self-closed inner "a" in `<a id="x"><a id="y"/></a>`). Otherwise, if the
// end tag's name doesn't match the open element and that element is one of
// the ones allowed to close implicitly as a last child, walk up until a
// match is found or no further implicit close applies; then require an
// exact match.
func (st *parseState) closeTag(name string) error {
	if st.lastVoid {
		if parent := st.current.Parent(); parent != nil {
			st.current = parent
		}
		st.lastVoid = false
	} else if name != st.current.Name() && htmlspec.AutocloseLastChild(st.current.Name()) {
		for htmlspec.AutocloseLastChild(st.current.Name()) {
			parent := st.current.Parent()
			if parent == nil {
				break
			}
			st.current = parent
			if name == st.current.Name() {
				break
			}
		}
	}

	if st.current.Name() != name {
		return st.errorf(diagnostics.EndElementMismatch, st.pos,
			fmt.Sprintf("Expected: '%s', found: '%s'", st.current.Name(), name))
	}

	if parent := st.current.Parent(); parent != nil {
		st.current = parent
		st.lastVoid = false
	}
	return nil
}

func (st *parseState) exclamation() error {
	st.pos += 2 // consume '<!'
	if st.pos >= len(st.input) {
		return st.errorf(diagnostics.UnrecognizedTag, st.pos, "")
	}
	switch {
	case st.input[st.pos] == '-':
		return st.comment()
	case st.input[st.pos] == '[':
		return st.cdataSection()
	case hasPrefixAt(st.input, st.pos, "DOCTYPE"):
		return st.doctype()
	default:
		return st.errorf(diagnostics.UnrecognizedTag, st.pos, "")
	}
}

func (st *parseState) comment() error {
	st.pos++ // consume first '-'
	if st.pos >= len(st.input) || st.input[st.pos] != '-' {
		return st.errorf(diagnostics.BadComment, st.pos, "")
	}
	st.pos++ // consume second '-'

	start := st.pos
	end := indexFrom(st.input, st.pos, "-->")
	if end < 0 {
		return st.errorf(diagnostics.BadComment, len(st.input), "")
	}
	if st.p.optionSet(OptComments) {
		node := dom.NewNode(dom.Comment)
		node.SetValue(string(st.input[start:end]))
		_ = st.current.AppendChild(node)
	}
	st.pos = end + 3
	return nil
}

func (st *parseState) cdataSection() error {
	if !hasPrefixAt(st.input, st.pos, "[CDATA[") {
		return st.errorf(diagnostics.BadCData, st.pos, "")
	}
	st.pos += len("[CDATA[")
	start := st.pos
	end := indexFrom(st.input, st.pos, "]]>")
	if end < 0 {
		return st.errorf(diagnostics.BadCData, len(st.input), "")
	}
	if st.p.optionSet(OptCData) {
		node := dom.NewNode(dom.CData)
		node.SetValue(string(st.input[start:end]))
		_ = st.current.AppendChild(node)
	}
	st.pos = end + 3
	return nil
}

// doctype scans a, possibly nested, <!DOCTYPE ...> declaration. DOCTYPE
// internal subsets may themselves contain "<!...>" groups and "<![...]]>"
// sections, which may nest, and quoted strings, processing instructions,
// and comments, which do not; advanceDoctypeGroup implements that grammar.
func (st *parseState) doctype() error {
	groupStart := st.pos - 2 // back up over the already-consumed '<!'
	payloadStart := st.pos + len("DOCTYPE")

	end, err := st.advanceDoctypeGroup(groupStart)
	if err != nil {
		return err
	}

	if st.p.optionSet(OptDoctype) {
		ps := payloadStart
		for ps < len(st.input) && charclass.Is(st.input[ps], charclass.Space) {
			ps++
		}
		payload := ""
		if ps < end-1 {
			payload = string(st.input[ps : end-1])
		}
		node := dom.NewNode(dom.DocType)
		node.SetValue(payload)
		_ = st.current.AppendChild(node)
	}

	st.pos = end
	return nil
}
