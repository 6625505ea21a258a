package page

import (
	"context"
	"strconv"

	"github.com/kova98/postboard/dom"
	"github.com/kova98/postboard/models"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// RefreshResult holds what each refresh step returned.
type RefreshResult struct {
	Removed   []*html.Node
	Main      *html.Node
	Displayed []*html.Node
	Added     []*html.Node
}

// RefreshPosts replaces the content of main with posts: listeners off, main
// cleared, posts rendered, listeners on. A nil slice does nothing.
// When rendering fails main is left empty and the error is returned.
func (p *Page) RefreshPosts(ctx context.Context, posts []models.Post) (*RefreshResult, error) {
	if posts == nil {
		return nil, nil
	}

	res := &RefreshResult{}
	res.Removed = p.RemoveButtonListeners()
	res.Main = dom.DeleteChildElements(p.main)
	p.doc.PruneDetached()

	displayed, err := p.renderer.DisplayPosts(ctx, p.main, posts)
	if err != nil {
		return res, errors.Wrap(err, "refresh posts")
	}
	res.Displayed = displayed
	res.Added = p.AddButtonListeners()
	return res, nil
}

// MenuChangeResult holds what the menu change handler resolved and rendered.
type MenuChangeResult struct {
	UserID  int
	Posts   []models.Post
	Refresh *RefreshResult
}

// SelectMenuChangeEventHandler loads the posts of the selected user and
// refreshes main with them. An empty value selects the default user.
func (p *Page) SelectMenuChangeEventHandler(ctx context.Context, ev *dom.Event) (*MenuChangeResult, error) {
	if ev == nil {
		return nil, nil
	}

	userID, err := p.parseUserID(ev.Value)
	if err != nil {
		return nil, err
	}
	res := &MenuChangeResult{UserID: userID}

	posts, err := p.src.GetUserPosts(ctx, res.UserID)
	if err != nil {
		return res, errors.Wrap(err, "menu change")
	}
	res.Posts = posts

	res.Refresh, err = p.RefreshPosts(ctx, posts)
	if err != nil {
		return res, err
	}
	p.logger.Info("showing posts", "user_id", res.UserID, "count", len(posts))
	return res, nil
}

// parseUserID resolves a menu value to a user id. Empty means the default user.
func (p *Page) parseUserID(value string) (int, error) {
	if value == "" {
		return p.opts.DefaultUserID, nil
	}
	userID, err := strconv.Atoi(value)
	if err != nil || userID <= 0 {
		return 0, errors.Wrapf(ErrInvalidUserID, "%q", value)
	}
	return userID, nil
}
