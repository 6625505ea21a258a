package page

import (
	"context"

	"github.com/kova98/postboard/dom"
	"github.com/kova98/postboard/enums"
	"github.com/kova98/postboard/metrics"
	"github.com/kova98/postboard/views"
	"golang.org/x/net/html"
)

// ToggleCommentSection flips the hidden class of the comment section for postID.
// It returns the section, or nil when postID is zero or no section matches.
func (p *Page) ToggleCommentSection(postID int) *html.Node {
	if postID == 0 {
		return nil
	}
	section := p.doc.QuerySelector(postSelector("section", postID))
	if section != nil {
		dom.ToggleClass(section, views.HiddenClass)
	}
	return section
}

// ToggleCommentButton flips the label of the comment button for postID.
// It returns the button, or nil when postID is zero or no button matches.
func (p *Page) ToggleCommentButton(postID int) *html.Node {
	if postID == 0 {
		return nil
	}
	button := p.doc.QuerySelector(postSelector("button", postID))
	if button != nil {
		label := enums.CommentLabel(dom.TextContent(button))
		dom.SetTextContent(button, label.Next().String())
	}
	return button
}

// ToggleComments shows or hides the comments of postID and flips its button.
func (p *Page) ToggleComments(ev *dom.Event, postID int) (section, button *html.Node) {
	if ev == nil || postID == 0 {
		return nil, nil
	}
	p.doc.MarkInteracted(ev.Target)

	section = p.ToggleCommentSection(postID)
	button = p.ToggleCommentButton(postID)
	metrics.CommentToggles.Inc()
	return section, button
}

func (p *Page) onButtonClick(_ context.Context, ev *dom.Event, postID int) error {
	section, button := p.ToggleComments(ev, postID)
	p.logger.Debug("toggled comments", "post_id", postID, "section", section != nil, "button", button != nil)
	return nil
}

// AddButtonListeners wires a click listener to each post button under main.
func (p *Page) AddButtonListeners() []*html.Node {
	return p.buttons.Add(p.main)
}

// RemoveButtonListeners unwires every listener AddButtonListeners attached.
func (p *Page) RemoveButtonListeners() []*html.Node {
	return p.buttons.Remove(p.main)
}
