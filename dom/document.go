package dom

import (
	"context"
	"errors"
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const EventDOMContentLoaded = "DOMContentLoaded"

var ErrAlreadyLoaded = errors.New("document already loaded")

// Document is a page tree plus the listeners registered on its nodes.
// It is not safe for concurrent use; callers serialize access.
type Document struct {
	root       *html.Node
	loaded     bool
	listeners  map[*html.Node]map[string][]*Listener
	interacted map[*html.Node]bool
}

func NewDocument() *Document {
	return &Document{
		root:       &html.Node{Type: html.DocumentNode},
		listeners:  make(map[*html.Node]map[string][]*Listener),
		interacted: make(map[*html.Node]bool),
	}
}

// Root is the document node. Listeners for DOMContentLoaded go here.
func (d *Document) Root() *html.Node {
	return d.root
}

func (d *Document) Loaded() bool {
	return d.loaded
}

// Load parses the page markup into the document and then fires
// DOMContentLoaded on the root. It runs at most once per document.
func (d *Document) Load(ctx context.Context, r io.Reader) error {
	if d.loaded {
		return ErrAlreadyLoaded
	}
	parsed, err := html.Parse(r)
	if err != nil {
		return err
	}
	Append(d.root, parsed)
	d.loaded = true

	return d.DispatchEvent(ctx, &Event{Type: EventDOMContentLoaded, Target: d.root})
}

// QuerySelector returns the first element under the root matching sel, or nil.
func (d *Document) QuerySelector(sel string) *html.Node {
	return QuerySelector(d.root, sel)
}

func (d *Document) QuerySelectorAll(sel string) []*html.Node {
	return QuerySelectorAll(d.root, sel)
}

func (d *Document) GetElementByID(id string) *html.Node {
	return d.QuerySelector("#" + id)
}

// QuerySelector returns the first descendant of scope matching sel, or nil.
func QuerySelector(scope *html.Node, sel string) *html.Node {
	if scope == nil {
		return nil
	}
	found := goquery.NewDocumentFromNode(scope).Find(sel).First()
	if found.Length() == 0 {
		return nil
	}
	return found.Nodes[0]
}

// QuerySelectorAll returns every descendant of scope matching sel in document
// order. The result is never nil.
func QuerySelectorAll(scope *html.Node, sel string) []*html.Node {
	if scope == nil {
		return []*html.Node{}
	}
	nodes := goquery.NewDocumentFromNode(scope).Find(sel).Nodes
	out := make([]*html.Node, len(nodes))
	copy(out, nodes)
	return out
}

// MarkInteracted flags n as the target of a handled event. It is diagnostic only.
func (d *Document) MarkInteracted(n *html.Node) {
	if n != nil {
		d.interacted[n] = true
	}
}

func (d *Document) Interacted(n *html.Node) bool {
	return d.interacted[n]
}

// PruneDetached drops interaction flags and listeners held for nodes that are
// no longer in the tree, and returns how many nodes were dropped.
func (d *Document) PruneDetached() int {
	n := 0
	for node := range d.interacted {
		if !d.contains(node) {
			delete(d.interacted, node)
			n++
		}
	}
	for node := range d.listeners {
		if !d.contains(node) {
			delete(d.listeners, node)
			n++
		}
	}
	return n
}

func (d *Document) contains(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == d.root {
			return true
		}
	}
	return false
}

func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}
