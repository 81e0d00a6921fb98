// Package dom implements the parsed document tree: nodes, attributes, and
// the navigation, mutation, and serialization operations defined over them.
// It has no knowledge of how a tree was built; the parser is the only
// producer, but the API is usable standalone to build or edit a tree by
// hand.
package dom

import (
	"errors"
	"strings"

	"github.com/dsrosen/htmlreader/internal/htmlspec"
)

// NodeType is the discriminant of a Node.
type NodeType int

const (
	Null NodeType = iota
	DocumentNode
	ElementNode
	AttributeNode
	PCData
	CData
	Comment
	ProcessingInstruction
	Declaration
	DocType
)

func (t NodeType) String() string {
	switch t {
	case Null:
		return "null"
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case AttributeNode:
		return "attribute"
	case PCData:
		return "pcdata"
	case CData:
		return "cdata"
	case Comment:
		return "comment"
	case ProcessingInstruction:
		return "pi"
	case Declaration:
		return "declaration"
	case DocType:
		return "doctype"
	default:
		return "unknown"
	}
}

// Errors returned by the child/attribute mutation methods.
var (
	ErrCannotHaveChildren = errors.New("dom: this node type cannot hold children")
	ErrChildTypeForbidden = errors.New("dom: this child type is not permitted here")
)

// Attribute is a name/value pair attached to an Element. Names are stored
// as given; the parser upper-cases them before attaching, matching
// Element name canonicalization.
type Attribute struct {
	name  string
	value string
}

// NewAttribute builds a detached attribute.
func NewAttribute(name, value string) *Attribute {
	return &Attribute{name: name, value: value}
}

func (a *Attribute) Name() string  { return a.name }
func (a *Attribute) Value() string { return a.value }
func (a *Attribute) SetValue(v string) {
	a.value = v
}

// Node is one entry in the tree: an element, a text/CDATA/comment/PI/doctype
// leaf, or the document root. Children are held in an append-ordered slice;
// a child's index in that slice is its stable position handle, used for
// O(1) sibling navigation.
type Node struct {
	typ         NodeType
	name        string
	value       string
	attrs       []*Attribute
	children    []*Node
	parent      *Node
	posInParent int
	number      int
	line        int
	column      int
}

// NewNode creates a detached node of the given type.
func NewNode(t NodeType) *Node {
	return &Node{typ: t}
}

// NewText creates a detached PCData node carrying value.
func NewText(value string) *Node {
	n := &Node{typ: PCData}
	n.value = value
	return n
}

// NewCData creates a detached CData node carrying value.
func NewCData(value string) *Node {
	n := &Node{typ: CData}
	n.value = value
	return n
}

// NewElement creates a detached element node named name.
func NewElement(name string) *Node {
	n := &Node{typ: ElementNode}
	n.name = name
	return n
}

func (n *Node) Type() NodeType { return n.typ }
func (n *Node) Name() string   { return n.name }

// SetName sets the node's name, truncating at the first whitespace byte
// (a malformed name never produces a name containing whitespace).
func (n *Node) SetName(name string) {
	if i := strings.IndexAny(name, " \t\r\n"); i >= 0 {
		name = name[:i]
	}
	n.name = name
}

func (n *Node) Value() string { return n.value }

// SetValue sets the node's value. It is a no-op for node types that cannot
// carry a value (Element, Document, Attribute, Null).
func (n *Node) SetValue(v string) {
	switch n.typ {
	case ProcessingInstruction, CData, PCData, Comment, DocType:
		n.value = v
	}
}

func (n *Node) Number() int { return n.number }
func (n *Node) SetNumber(v int) {
	n.number = v
}

func (n *Node) Line() int   { return n.line }
func (n *Node) Column() int { return n.column }

// SetPosition records the source line/column a node was created at.
func (n *Node) SetPosition(line, column int) {
	n.line = line
	n.column = column
}

// PositionInParent is the stable index handle used for O(1) sibling lookup.
func (n *Node) PositionInParent() int { return n.posInParent }

// Parent returns the node's parent, or nil if detached or the document root.
func (n *Node) Parent() *Node { return n.parent }

// Root walks up to the topmost ancestor (the Document node, for any node
// attached to a parsed tree).
func (n *Node) Root() *Node {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

func canHaveChildren(t NodeType) bool {
	return t == ElementNode || t == DocumentNode
}

func childAllowedIn(parentType NodeType, childType NodeType) bool {
	if childType == DocumentNode || childType == Null {
		return false
	}
	if (childType == Declaration || childType == DocType) && parentType != DocumentNode {
		return false
	}
	return true
}

// AppendChild attaches child as the new last child of n.
func (n *Node) AppendChild(child *Node) error {
	if !canHaveChildren(n.typ) {
		return ErrCannotHaveChildren
	}
	if !childAllowedIn(n.typ, child.typ) {
		return ErrChildTypeForbidden
	}
	child.parent = n
	child.posInParent = len(n.children)
	n.children = append(n.children, child)
	return nil
}

// PrependChild attaches child as the new first child of n, reindexing the
// position handles of every sibling that follows it.
func (n *Node) PrependChild(child *Node) error {
	if !canHaveChildren(n.typ) {
		return ErrCannotHaveChildren
	}
	if !childAllowedIn(n.typ, child.typ) {
		return ErrChildTypeForbidden
	}
	child.parent = n
	n.children = append([]*Node{child}, n.children...)
	for i, c := range n.children {
		c.posInParent = i
	}
	return nil
}

func (n *Node) removeChildAt(i int) {
	removed := n.children[i]
	removed.parent = nil
	removed.posInParent = 0
	n.children = append(n.children[:i], n.children[i+1:]...)
	for j := i; j < len(n.children); j++ {
		n.children[j].posInParent = j
	}
}

// RemoveChild removes the first direct child named name and reports
// whether a child was actually removed.
func (n *Node) RemoveChild(name string) bool {
	for i, c := range n.children {
		if c.name == name {
			n.removeChildAt(i)
			return true
		}
	}
	return false
}

// RemoveChildNode removes target if it is a direct child of n, and reports
// whether it was found.
func (n *Node) RemoveChildNode(target *Node) bool {
	for i, c := range n.children {
		if c == target {
			n.removeChildAt(i)
			return true
		}
	}
	return false
}

// Children returns the direct children of n, in document order. The
// returned slice is owned by n; callers must not mutate it.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// Child returns the first direct child named name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// NextSibling returns the sibling immediately after n, using its stable
// position handle (O(1)).
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	siblings := n.parent.children
	if n.posInParent+1 >= len(siblings) {
		return nil
	}
	return siblings[n.posInParent+1]
}

// PreviousSibling returns the sibling immediately before n (O(1)).
func (n *Node) PreviousSibling() *Node {
	if n.parent == nil || n.posInParent == 0 {
		return nil
	}
	return n.parent.children[n.posInParent-1]
}

// PreviousSiblingNamed scans from the start of the sibling list and returns
// the last match before n (the one closest to n), or nil.
func (n *Node) PreviousSiblingNamed(name string) *Node {
	if n.parent == nil {
		return nil
	}
	siblings := n.parent.children
	var found *Node
	for i := 0; i < n.posInParent; i++ {
		if siblings[i].name == name {
			found = siblings[i]
		}
	}
	return found
}

// NextSiblingNamed scans forward from n and returns the first match after
// it, or nil. Provided for symmetry with PreviousSiblingNamed.
func (n *Node) NextSiblingNamed(name string) *Node {
	if n.parent == nil {
		return nil
	}
	siblings := n.parent.children
	for i := n.posInParent + 1; i < len(siblings); i++ {
		if siblings[i].name == name {
			return siblings[i]
		}
	}
	return nil
}

// AppendAttribute appends a new attribute; duplicate names are not
// deduplicated, matching insertion-ordered append semantics.
func (n *Node) AppendAttribute(name, value string) *Attribute {
	a := &Attribute{name: name, value: value}
	n.attrs = append(n.attrs, a)
	return a
}

// PrependAttribute inserts a new attribute before any existing ones.
func (n *Node) PrependAttribute(name, value string) *Attribute {
	a := &Attribute{name: name, value: value}
	n.attrs = append([]*Attribute{a}, n.attrs...)
	return a
}

// Attribute returns the first attribute named name, or nil.
func (n *Node) Attribute(name string) *Attribute {
	for _, a := range n.attrs {
		if a.name == name {
			return a
		}
	}
	return nil
}

// Attributes returns all attributes, in document order. The returned slice
// is owned by n; callers must not mutate it.
func (n *Node) Attributes() []*Attribute { return n.attrs }

// AttributeList returns every attribute named name, in document order.
// AppendAttribute never deduplicates by name, so a node can carry more than
// one attribute with the same name; Attribute returns only the first.
func (n *Node) AttributeList(name string) []*Attribute {
	var result []*Attribute
	for _, a := range n.attrs {
		if a.name == name {
			result = append(result, a)
		}
	}
	return result
}

// RemoveAttribute removes the first attribute named name and reports
// whether one was found.
func (n *Node) RemoveAttribute(name string) bool {
	for i, a := range n.attrs {
		if a.name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return true
		}
	}
	return false
}

// TextContent concatenates the value of n and every descendant, depth
// first, pre-order. Element/Document/Attribute nodes contribute nothing of
// their own but their descendants still do.
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.writeTextContent(&sb)
	return sb.String()
}

func (n *Node) writeTextContent(sb *strings.Builder) {
	if n.value != "" {
		sb.WriteString(n.value)
	}
	for _, c := range n.children {
		c.writeTextContent(sb)
	}
}

// ChildValue returns the value of the first PCData/CData child, or "".
func (n *Node) ChildValue() string {
	for _, c := range n.children {
		if c.typ == PCData || c.typ == CData {
			return c.value
		}
	}
	return ""
}

// ChildValueOf returns ChildValue() of the first direct child named name.
func (n *Node) ChildValueOf(name string) string {
	c := n.Child(name)
	if c == nil {
		return ""
	}
	return c.ChildValue()
}

// Predicate is a test applied to a candidate node during a search.
type Predicate func(*Node) bool

// FindChild scans direct children only and returns the first match.
func (n *Node) FindChild(pred Predicate) *Node {
	for _, c := range n.children {
		if pred(c) {
			return c
		}
	}
	return nil
}

// FindChildByAttribute scans direct children only for one named tag (or any
// tag, if tag is "") carrying attrName with value attrValue.
func (n *Node) FindChildByAttribute(tag, attrName, attrValue string) *Node {
	for _, c := range n.children {
		if tag != "" && c.name != tag {
			continue
		}
		if a := c.Attribute(attrName); a != nil && a.value == attrValue {
			return c
		}
	}
	return nil
}

// FindNode performs an iterative, explicitly-stacked pre-order depth-first
// search of n's descendants (n itself is not tested) and returns the first
// match. The explicit stack keeps the walk bounded to the subtree rooted at
// n; it never ascends through parent links, unlike the parent-pointer walk
// the search was originally modeled on.
func (n *Node) FindNode(pred Predicate) *Node {
	stack := make([]*Node, 0, len(n.children))
	for i := len(n.children) - 1; i >= 0; i-- {
		stack = append(stack, n.children[i])
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if pred(cur) {
			return cur
		}
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i])
		}
	}
	return nil
}

// FindNodes is FindNode's all-matches counterpart, in pre-order.
func (n *Node) FindNodes(pred Predicate) []*Node {
	var result []*Node
	stack := make([]*Node, 0, len(n.children))
	for i := len(n.children) - 1; i >= 0; i-- {
		stack = append(stack, n.children[i])
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if pred(cur) {
			result = append(result, cur)
		}
		for i := len(cur.children) - 1; i >= 0; i-- {
			stack = append(stack, cur.children[i])
		}
	}
	return result
}

// Path renders the chain of ancestor names from the document root (exclusive)
// down to and including n, joined by delim.
func (n *Node) Path(delim string) string {
	var parts []string
	for cur := n; cur != nil; cur = cur.parent {
		if cur.typ == DocumentNode {
			continue
		}
		parts = append(parts, cur.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, delim)
}

// Walker holds the optional callbacks for Traverse. ForEach returning false
// aborts the walk; the abort propagates out of Traverse as a false return.
type Walker struct {
	Begin   func(*Node) bool
	ForEach func(node *Node, depth int) bool
	End     func(*Node) bool
}

type traverseFrame struct {
	node  *Node
	depth int
}

// Traverse performs an iterative, explicitly-stacked pre-order depth-first
// walk of n's descendants, invoking Begin once before, ForEach per visited
// descendant (with its depth below n, starting at 1), and End once after.
func (n *Node) Traverse(w Walker) bool {
	if w.Begin != nil && !w.Begin(n) {
		return false
	}
	stack := make([]traverseFrame, 0, len(n.children))
	for i := len(n.children) - 1; i >= 0; i-- {
		stack = append(stack, traverseFrame{n.children[i], 1})
	}
	ok := true
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if w.ForEach != nil && !w.ForEach(f.node, f.depth) {
			ok = false
			break
		}
		for i := len(f.node.children) - 1; i >= 0; i-- {
			stack = append(stack, traverseFrame{f.node.children[i], f.depth + 1})
		}
	}
	if w.End != nil && !w.End(n) {
		return false
	}
	return ok
}

// ToString renders n as an indented, human-readable markup tree. It is a
// minimal pretty printer, not a round-trippable serializer: it escapes text
// content, writes attributes in order, and self-closes void elements that
// have no children.
func (n *Node) ToString(indent string) string {
	var sb strings.Builder
	n.writeString(&sb, indent, 0)
	return sb.String()
}

func (n *Node) writeString(sb *strings.Builder, indent string, depth int) {
	pad := strings.Repeat(indent, depth)
	switch n.typ {
	case DocumentNode:
		for _, c := range n.children {
			c.writeString(sb, indent, depth)
		}
	case ElementNode:
		sb.WriteString(pad)
		sb.WriteString("<")
		sb.WriteString(n.name)
		for _, a := range n.attrs {
			sb.WriteString(" ")
			sb.WriteString(a.name)
			sb.WriteString(`="`)
			sb.WriteString(escapeAttribute(a.value))
			sb.WriteString(`"`)
		}
		if len(n.children) == 0 && htmlspec.IsVoidElement(n.name) {
			sb.WriteString("/>\n")
			return
		}
		sb.WriteString(">\n")
		for _, c := range n.children {
			c.writeString(sb, indent, depth+1)
		}
		sb.WriteString(pad)
		sb.WriteString("</")
		sb.WriteString(n.name)
		sb.WriteString(">\n")
	case PCData, CData:
		text := strings.TrimSpace(n.value)
		if text == "" {
			return
		}
		sb.WriteString(pad)
		sb.WriteString(escapeText(text))
		sb.WriteString("\n")
	case Comment:
		sb.WriteString(pad)
		sb.WriteString("<!--")
		sb.WriteString(n.value)
		sb.WriteString("-->\n")
	case DocType:
		sb.WriteString(pad)
		sb.WriteString("<!DOCTYPE ")
		sb.WriteString(n.value)
		sb.WriteString(">\n")
	case ProcessingInstruction:
		sb.WriteString(pad)
		sb.WriteString("<?")
		sb.WriteString(n.value)
		sb.WriteString("?>\n")
	}
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttribute(s string) string {
	r := strings.NewReplacer("&", "&amp;", `"`, "&quot;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
