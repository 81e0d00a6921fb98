package dom

// Document is the unique root container of a parsed tree: a Node variant
// whose type is DocumentNode. It has no parent and no value, and only it
// may hold Declaration or DocType children directly.
type Document struct {
	*Node
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{Node: &Node{typ: DocumentNode}}
}
