// Package token implements the tokenizer: a second, independent front end
// over the same byte classifier used by the parser. It recognizes start
// tags, end tags, and unquoted attributes only; it does not understand
// comments, CDATA, or quoted attribute values, and it is not used by the
// parser. It emits no text tokens: a name character met between tags begins
// a StartTag token, so text content is read as part of a tag name. It
// exists as a lighter-weight, streaming alternative for callers
// that only need a flat token sequence (see cmd/htmlreader's tokenize
// subcommand).
package token

import (
	"fmt"

	"github.com/dsrosen/htmlreader/internal/charclass"
)

// Type discriminates the kinds of token the tokenizer can emit. The full
// taxonomy has seven kinds; the state machine below only ever produces
// Illegal, StartTag, EndTag, and EOF. Doctype, Comment, and String are
// declared for forward-compatibility with a fuller state machine and are
// never emitted by the current handlers.
type Type int

const (
	Illegal Type = iota
	Doctype
	StartTag
	EndTag
	Comment
	String
	EOF
)

func (t Type) String() string {
	switch t {
	case Doctype:
		return "Doctype"
	case StartTag:
		return "StartTag"
	case EndTag:
		return "EndTag"
	case Comment:
		return "Comment"
	case String:
		return "String"
	case EOF:
		return "EOF"
	default:
		return "Illegal"
	}
}

// Token is one emitted unit: a tag name plus any unquoted attributes seen
// before its closing '>'.
type Token struct {
	Type       Type
	Value      string
	Attributes map[string]string
}

type state int

const (
	stateData state = iota
	stateTagOpen
	stateEndTagOpen
	stateTagName
	stateBeforeAttributeName
	stateAttributeName
	stateBeforeAttributeValue
	stateUnquotedAttributeValue
)

// Tokenizer scans one input buffer and yields a sequence of Tokens.
type Tokenizer struct {
	input   []byte
	pos     int
	state   state
	current Token
	attrN   string
	attrV   string
	err     error
}

// New creates a tokenizer over input and scans its first token.
func New(input string) *Tokenizer {
	t := &Tokenizer{input: []byte(input), pos: -1, state: stateData}
	t.current, t.err = t.advance()
	return t
}

// Token returns the most recently scanned token.
func (t *Tokenizer) Token() Token { return t.current }

// HasNext reports whether the tokenizer has not yet reached the end of its
// input. (The original scanner's equivalent check compared its iterator to
// end-of-input with == instead of !=, which made it report false almost
// immediately; this is the corrected reading.)
func (t *Tokenizer) HasNext() bool { return t.pos < len(t.input) }

// Next advances to and returns the next token.
func (t *Tokenizer) Next() (Token, error) {
	if t.err != nil {
		return Token{}, t.err
	}
	tok, err := t.advance()
	t.current = tok
	t.err = err
	return tok, err
}

func (t *Tokenizer) byteAt(i int) byte {
	if i < 0 || i >= len(t.input) {
		return 0
	}
	return t.byteAtUnchecked(i)
}

func (t *Tokenizer) byteAtUnchecked(i int) byte { return t.input[i] }

func (t *Tokenizer) cur() byte { return t.byteAt(t.pos) }

func (t *Tokenizer) isEOF() bool { return t.pos >= len(t.input) }

func (t *Tokenizer) advance() (Token, error) {
	for {
		var emitted bool
		var err error
		switch t.state {
		case stateData:
			emitted = t.onData()
		case stateTagOpen:
			emitted = t.onTagOpen()
		case stateEndTagOpen:
			emitted = t.onEndTagOpen()
		case stateTagName:
			emitted = t.onTagName()
		case stateBeforeAttributeName:
			emitted, err = t.onBeforeAttributeName()
		case stateAttributeName:
			emitted = t.onAttributeName()
		case stateBeforeAttributeValue:
			emitted = t.onBeforeAttributeValue()
		case stateUnquotedAttributeValue:
			emitted = t.onUnquotedAttributeValue()
		default:
			return Token{}, fmt.Errorf("token: unknown state %d", t.state)
		}
		if err != nil {
			return Token{}, err
		}
		if emitted {
			return t.current, nil
		}
		if t.isEOF() {
			if t.state == stateData {
				return Token{Type: EOF}, nil
			}
			return Token{}, errUnexpectedEOF
		}
	}
}

func (t *Tokenizer) startTagToken(typ Type) {
	t.current = Token{Type: typ, Value: string(t.cur())}
}

func (t *Tokenizer) onData() bool {
	t.pos++
	switch {
	case t.cur() == '<':
		t.state = stateTagOpen
	case charclass.Is(t.cur(), charclass.StartSymbol):
		t.startTagToken(StartTag)
		t.state = stateTagName
	}
	return false
}

func (t *Tokenizer) onTagOpen() bool {
	t.pos++
	switch {
	case t.cur() == '/':
		t.state = stateEndTagOpen
	case charclass.Is(t.cur(), charclass.StartSymbol):
		t.startTagToken(StartTag)
		t.state = stateTagName
	}
	return false
}

func (t *Tokenizer) onEndTagOpen() bool {
	t.pos++
	if charclass.Is(t.cur(), charclass.StartSymbol) {
		t.startTagToken(EndTag)
		t.state = stateTagName
	}
	return false
}

func (t *Tokenizer) onTagName() bool {
	t.pos++
	for charclass.Is(t.cur(), charclass.StartSymbol) {
		t.current.Value += string(t.cur())
		t.pos++
	}
	switch {
	case t.cur() == '>':
		t.state = stateData
		return true
	case charclass.Is(t.cur(), charclass.Space):
		t.state = stateBeforeAttributeName
	}
	return false
}

var errUnexpectedEOF = fmt.Errorf("token: unexpected end of input")

func (t *Tokenizer) onBeforeAttributeName() (bool, error) {
	t.pos++
	if t.isEOF() {
		return false, errUnexpectedEOF
	}
	for charclass.Is(t.cur(), charclass.Space) {
		t.pos++
		if t.isEOF() {
			return false, errUnexpectedEOF
		}
	}
	switch {
	case t.cur() == '>':
		t.state = stateData
		return true, nil
	case charclass.Is(t.cur(), charclass.StartSymbol):
		if t.current.Attributes == nil {
			t.current.Attributes = map[string]string{}
		}
		t.attrN = string(t.cur())
		t.attrV = ""
		t.state = stateAttributeName
	}
	return false, nil
}

func (t *Tokenizer) onAttributeName() bool {
	t.pos++
	switch {
	case charclass.Is(t.cur(), charclass.StartSymbol):
		t.attrN += string(t.cur())
	case t.cur() == '=':
		t.state = stateBeforeAttributeValue
	}
	return false
}

func (t *Tokenizer) onBeforeAttributeValue() bool {
	t.pos++
	if charclass.Is(t.cur(), charclass.StartSymbol) {
		t.attrV = string(t.cur())
		t.state = stateUnquotedAttributeValue
	}
	return false
}

func (t *Tokenizer) onUnquotedAttributeValue() bool {
	t.pos++
	switch {
	case charclass.Is(t.cur(), charclass.StartSymbol):
		t.attrV += string(t.cur())
	case t.cur() == '>':
		t.current.Attributes[t.attrN] = t.attrV
		t.state = stateData
		return true
	}
	return false
}
