package dom

import (
	"context"
	"errors"

	"golang.org/x/net/html"
)

const (
	EventClick  = "click"
	EventChange = "change"
)

// Event is delivered to the listeners registered on Target.
// Value carries the control value for change events.
type Event struct {
	Type   string
	Target *html.Node
	Value  string
}

type ListenerFunc func(ctx context.Context, ev *Event) error

// Listener is the handle returned by AddEventListener. Removal goes by handle
// identity since funcs are not comparable.
type Listener struct {
	fn ListenerFunc
}

func (d *Document) AddEventListener(target *html.Node, eventType string, fn ListenerFunc) *Listener {
	l := &Listener{fn: fn}
	byType, ok := d.listeners[target]
	if !ok {
		byType = make(map[string][]*Listener)
		d.listeners[target] = byType
	}
	byType[eventType] = append(byType[eventType], l)
	return l
}

// RemoveEventListener unregisters l and reports whether it was registered.
func (d *Document) RemoveEventListener(target *html.Node, eventType string, l *Listener) bool {
	byType, ok := d.listeners[target]
	if !ok {
		return false
	}
	list := byType[eventType]
	for i, registered := range list {
		if registered != l {
			continue
		}
		byType[eventType] = append(list[:i:i], list[i+1:]...)
		if len(byType[eventType]) == 0 {
			delete(byType, eventType)
		}
		if len(byType) == 0 {
			delete(d.listeners, target)
		}
		return true
	}
	return false
}

// ListenerCount returns how many eventType listeners target has.
func (d *Document) ListenerCount(target *html.Node, eventType string) int {
	return len(d.listeners[target][eventType])
}

// ActiveListeners counts eventType listeners across all nodes.
func (d *Document) ActiveListeners(eventType string) int {
	n := 0
	for _, byType := range d.listeners {
		n += len(byType[eventType])
	}
	return n
}

// DispatchEvent runs the listeners registered on ev.Target for ev.Type in
// registration order. Listeners added or removed during dispatch take effect on
// the next event. Listener errors are joined.
func (d *Document) DispatchEvent(ctx context.Context, ev *Event) error {
	if ev == nil || ev.Target == nil {
		return nil
	}
	snapshot := append([]*Listener(nil), d.listeners[ev.Target][ev.Type]...)

	var errs []error
	for _, l := range snapshot {
		if err := l.fn(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
