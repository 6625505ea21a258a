package page

import (
	"context"
	"strconv"

	"github.com/kova98/postboard/dom"
	"github.com/kova98/postboard/metrics"
	"golang.org/x/net/html"
)

type buttonClickFunc func(ctx context.Context, ev *dom.Event, postID int) error

// ButtonListeners owns the click listeners attached to post buttons. Entries are
// added only by Add and removed only by Remove.
type ButtonListeners struct {
	doc        *dom.Document
	onClick    buttonClickFunc
	registered map[*html.Node]*dom.Listener
}

func newButtonListeners(doc *dom.Document, onClick buttonClickFunc) *ButtonListeners {
	return &ButtonListeners{
		doc:        doc,
		onClick:    onClick,
		registered: make(map[*html.Node]*dom.Listener),
	}
}

// Add attaches one click listener to every button under main that carries a
// post id. Buttons that already have one are left alone. It returns the
// buttons found, empty when main is nil.
func (b *ButtonListeners) Add(main *html.Node) []*html.Node {
	if main == nil {
		return []*html.Node{}
	}

	buttons := dom.QuerySelectorAll(main, "button")
	for _, button := range buttons {
		if _, ok := b.registered[button]; ok {
			continue
		}
		raw, ok := dom.Data(button, "post-id")
		if !ok || raw == "" {
			continue
		}
		postID, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}

		l := b.doc.AddEventListener(button, dom.EventClick, func(ctx context.Context, ev *dom.Event) error {
			return b.onClick(ctx, ev, postID)
		})
		b.registered[button] = l
		metrics.ClickListeners.Inc()
	}
	return buttons
}

// Remove detaches the listeners Add registered. Buttons no longer under main
// are detached as well so no entry outlives its button. It returns the
// buttons found under main.
func (b *ButtonListeners) Remove(main *html.Node) []*html.Node {
	buttons := []*html.Node{}
	if main != nil {
		buttons = dom.QuerySelectorAll(main, "button")
	}

	for _, button := range buttons {
		b.detach(button)
	}
	for button := range b.registered {
		b.detach(button)
	}
	return buttons
}

func (b *ButtonListeners) detach(button *html.Node) {
	l, ok := b.registered[button]
	if !ok {
		return
	}
	b.doc.RemoveEventListener(button, dom.EventClick, l)
	delete(b.registered, button)
	metrics.ClickListeners.Dec()
}

// Len is the number of buttons with an attached listener.
func (b *ButtonListeners) Len() int {
	return len(b.registered)
}
