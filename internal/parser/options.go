package parser

import "go.uber.org/zap"

// Options is a bitmask of optional parsing features. The zero-value
// behavior (none set) scans the minimum needed to build a tree; individual
// bits add comments, CDATA sections, doctype nodes, and so on.
type Options uint32

const (
	// OptPI is reserved for processing-instruction nodes. The parser has no
	// processing-instruction handling ("<?" is an UnrecognizedTag error), so
	// this bit has no effect.
	OptPI Options = 1 << iota
	// OptComments keeps comment nodes instead of discarding them.
	OptComments
	// OptCData keeps CDATA section nodes instead of discarding them.
	OptCData
	// OptWSPCData keeps whitespace-only text nodes instead of discarding them.
	OptWSPCData
	// OptEscapes is reserved for character/entity escape decoding. The parser
	// does not decode escapes, so this bit has no effect.
	OptEscapes
	// OptEOL is reserved for line-ending normalization. The parser does not
	// rewrite line endings, so this bit has no effect.
	OptEOL
	// OptWConvAttribute converts whitespace runs in attribute values to single spaces.
	OptWConvAttribute
	// OptWNormAttribute trims leading/trailing whitespace from attribute values.
	OptWNormAttribute
	// OptDeclaration is reserved for XML declaration nodes. The parser never
	// creates one ("<?xml" is an UnrecognizedTag error), so this bit has no
	// effect.
	OptDeclaration
	// OptDoctype keeps a DOCTYPE node instead of discarding it.
	OptDoctype
)

// DefaultOptions is a practical default: keep CDATA and collapse attribute
// whitespace, but drop comments and doctypes. It also sets the reserved
// OptEscapes and OptEOL bits, which have no effect.
const DefaultOptions = OptCData | OptEscapes | OptWConvAttribute | OptEOL

// FullOptions is parse_full = default | pi | comments | declaration | doctype.
const FullOptions = DefaultOptions | OptPI | OptComments | OptDeclaration | OptDoctype

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithOptions replaces the parser's option bitmask wholesale.
func WithOptions(o Options) Option {
	return func(p *Parser) { p.options = o }
}

// WithPI turns on processing-instruction nodes.
func WithPI() Option { return func(p *Parser) { p.options |= OptPI } }

// WithComments turns on comment nodes.
func WithComments() Option { return func(p *Parser) { p.options |= OptComments } }

// WithoutCData turns off CDATA nodes.
func WithoutCData() Option { return func(p *Parser) { p.options &^= OptCData } }

// WithDeclaration turns on XML declaration nodes.
func WithDeclaration() Option { return func(p *Parser) { p.options |= OptDeclaration } }

// WithDoctype turns on DOCTYPE nodes.
func WithDoctype() Option { return func(p *Parser) { p.options |= OptDoctype } }

// WithLogger attaches a structured logger the parser uses for debug tracing
// of implicit-close decisions. A nil logger (the default) disables tracing.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *Parser) { p.log = log }
}
