// Package dom is a small in-memory page document built on golang.org/x/net/html.
// It covers the parts of a browser DOM the page needs: element creation, text,
// classes, data attributes, fragments, selector lookups and event listeners.
package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const defaultTag = "p"

// CreateElement returns a detached element node.
func CreateElement(tag string) *html.Node {
	tag = strings.ToLower(tag)
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// CreateElemWithText builds a detached element with text as its content.
// An empty tag means a paragraph; class is only set when non-empty.
func CreateElemWithText(tag, text, class string) *html.Node {
	if tag == "" {
		tag = defaultTag
	}
	el := CreateElement(tag)
	SetTextContent(el, text)
	if class != "" {
		SetAttr(el, "class", class)
	}
	return el
}

// NewFragment returns a batch container. Appending a fragment moves its children
// into the parent and leaves the fragment empty.
func NewFragment() *html.Node {
	return &html.Node{Type: html.DocumentNode}
}

func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// Append appends children to parent in order. Nodes attached elsewhere are moved.
func Append(parent *html.Node, children ...*html.Node) {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.Type == html.DocumentNode {
			for _, moved := range ChildNodes(c) {
				c.RemoveChild(moved)
				parent.AppendChild(moved)
			}
			continue
		}
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		parent.AppendChild(c)
	}
}

// ChildNodes returns a snapshot of n's children.
func ChildNodes(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Children returns a snapshot of n's element children.
func Children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// DeleteChildElements empties parent, removing from the tail until no child is
// left. It returns nil when parent is not an element.
func DeleteChildElements(parent *html.Node) *html.Node {
	if !IsElement(parent) {
		return nil
	}
	for c := parent.LastChild; c != nil; c = parent.LastChild {
		parent.RemoveChild(c)
	}
	return parent
}

func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(TextContent(c))
	}
	return sb.String()
}

// SetTextContent replaces all children of n with a single text node.
func SetTextContent(n *html.Node, text string) {
	for c := n.LastChild; c != nil; c = n.LastChild {
		n.RemoveChild(c)
	}
	if text == "" {
		return
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func RemoveAttr(n *html.Node, key string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}

// Data reads a data-* attribute; name is given without the prefix ("post-id").
func Data(n *html.Node, name string) (string, bool) {
	return Attr(n, "data-"+name)
}

func SetData(n *html.Node, name, val string) {
	SetAttr(n, "data-"+name, val)
}

func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

func AddClass(n *html.Node, classes ...string) {
	current := Classes(n)
	for _, c := range classes {
		if c != "" && !HasClass(n, c) {
			current = append(current, c)
			SetAttr(n, "class", strings.Join(current, " "))
		}
	}
}

func RemoveClass(n *html.Node, class string) {
	current := Classes(n)
	kept := current[:0]
	for _, c := range current {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(kept, " "))
}

// ToggleClass flips class on n and reports whether it is present afterwards.
func ToggleClass(n *html.Node, class string) bool {
	if HasClass(n, class) {
		RemoveClass(n, class)
		return false
	}
	AddClass(n, class)
	return true
}
