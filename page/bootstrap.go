package page

import (
	"context"

	"github.com/kova98/postboard/dom"
	"github.com/kova98/postboard/models"
	"github.com/kova98/postboard/views"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// InitPage fills the user menu with every user.
func (p *Page) InitPage(ctx context.Context) ([]models.User, *html.Node, error) {
	users, err := p.src.GetUsers(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "init page")
	}
	return users, views.PopulateSelectMenu(p.selectMenu, users), nil
}

// InitApp arranges for the page to initialize once its markup is loaded: the
// menu gets its users and starts reacting to changes. A failed user fetch leaves
// the menu empty but the change handler is still attached.
func (p *Page) InitApp() {
	p.doc.AddEventListener(p.doc.Root(), dom.EventDOMContentLoaded, func(ctx context.Context, _ *dom.Event) error {
		if _, _, err := p.InitPage(ctx); err != nil {
			p.logger.Error("failed to initialize page", "error", err)
		}

		if p.selectMenu == nil {
			p.logger.Error("page has no user menu", "id", views.SelectMenuID)
			return nil
		}
		p.doc.AddEventListener(p.selectMenu, dom.EventChange, func(ctx context.Context, ev *dom.Event) error {
			_, err := p.SelectMenuChangeEventHandler(ctx, ev)
			return err
		})
		return nil
	})
}
