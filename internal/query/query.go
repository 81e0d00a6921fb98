// Package query is the convenience surface over a parsed document: the
// small set of lookups a consumer reaches for instead of hand-rolling a
// tree walk — links, element lookup by id/tag, and the GetNode/ChildrenByName
// family of tag-and-attribute scoped child lookups.
package query

import (
	"strings"

	"github.com/dsrosen/htmlreader/internal/dom"
)

// Links returns every A and AREA element in the document, in document order.
func Links(doc *dom.Document) []*dom.Node {
	return doc.FindNodes(func(n *dom.Node) bool {
		return n.Type() == dom.ElementNode && (n.Name() == "A" || n.Name() == "AREA")
	})
}

// GetElementByID returns the first element anywhere in the document whose
// ID attribute equals id, or nil.
func GetElementByID(doc *dom.Document, id string) *dom.Node {
	return doc.FindNode(func(n *dom.Node) bool {
		if n.Type() != dom.ElementNode {
			return false
		}
		a := n.Attribute("ID")
		return a != nil && a.Value() == id
	})
}

// GetElementsByTagName returns every element anywhere in the document named
// name (case-insensitively), in document order.
func GetElementsByTagName(doc *dom.Document, name string) []*dom.Node {
	upper := strings.ToUpper(name)
	return doc.FindNodes(func(n *dom.Node) bool {
		return n.Type() == dom.ElementNode && n.Name() == upper
	})
}

// Body returns the document's BODY element, or nil if there is no HTML
// element or it has no BODY child.
func Body(doc *dom.Document) *dom.Node {
	html := doc.FindChild(func(n *dom.Node) bool {
		return n.Type() == dom.ElementNode && n.Name() == "HTML"
	})
	if html == nil {
		return nil
	}
	return html.Child("BODY")
}

// GetNode returns the first direct child of parent named tag
// (case-insensitively).
func GetNode(parent *dom.Node, tag string) *dom.Node {
	return parent.Child(strings.ToUpper(tag))
}

// GetNodeByAttribute returns the first direct child of parent named tag
// (or any tag, if tag is "") carrying attrName with value attrValue.
func GetNodeByAttribute(parent *dom.Node, tag, attrName, attrValue string) *dom.Node {
	upperTag := ""
	if tag != "" {
		upperTag = strings.ToUpper(tag)
	}
	return parent.FindChildByAttribute(upperTag, strings.ToUpper(attrName), attrValue)
}

// ChildrenByName returns every direct child of parent named tag.
func ChildrenByName(parent *dom.Node, tag string) []*dom.Node {
	upper := strings.ToUpper(tag)
	var result []*dom.Node
	for _, c := range parent.Children() {
		if c.Type() == dom.ElementNode && c.Name() == upper {
			result = append(result, c)
		}
	}
	return result
}

// ChildrenByNameAndAttribute returns every direct child of parent named tag
// (or any tag, if tag is "") carrying attrName with value attrValue.
func ChildrenByNameAndAttribute(parent *dom.Node, tag, attrName, attrValue string) []*dom.Node {
	upperTag := ""
	if tag != "" {
		upperTag = strings.ToUpper(tag)
	}
	upperAttr := strings.ToUpper(attrName)
	var result []*dom.Node
	for _, c := range parent.Children() {
		if c.Type() != dom.ElementNode {
			continue
		}
		if upperTag != "" && c.Name() != upperTag {
			continue
		}
		if a := c.Attribute(upperAttr); a != nil && a.Value() == attrValue {
			result = append(result, c)
		}
	}
	return result
}

// GetAttribute returns the named attribute of n, or nil.
func GetAttribute(n *dom.Node, name string) *dom.Attribute {
	return n.Attribute(strings.ToUpper(name))
}

// GetAttributeList returns every attribute of n named name, in document
// order. Attribute names are not deduplicated on append, so a node can
// legitimately carry the same attribute name more than once.
func GetAttributeList(n *dom.Node, name string) []*dom.Attribute {
	return n.AttributeList(strings.ToUpper(name))
}

// FindDescendantByAttribute scans the whole document (not just one node's
// direct children) for the first element named tag (or any tag, if tag is
// "") carrying attrName with value attrValue.
func FindDescendantByAttribute(doc *dom.Document, tag, attrName, attrValue string) *dom.Node {
	upperTag := ""
	if tag != "" {
		upperTag = strings.ToUpper(tag)
	}
	upperAttr := strings.ToUpper(attrName)
	return doc.FindNode(func(n *dom.Node) bool {
		if n.Type() != dom.ElementNode {
			return false
		}
		if upperTag != "" && n.Name() != upperTag {
			return false
		}
		a := n.Attribute(upperAttr)
		return a != nil && a.Value() == attrValue
	})
}
