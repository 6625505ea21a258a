// Package page holds one browser session's page: its document, the button
// listener registry and the orchestrators that react to menu changes and
// comment toggle clicks.
package page

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kova98/postboard/dom"
	"github.com/kova98/postboard/models"
	"github.com/kova98/postboard/views"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

var (
	ErrNotLoaded     = errors.New("page not loaded")
	ErrNoSuchPost    = errors.New("no toggle button for post")
	ErrInvalidUserID = errors.New("invalid user id")
)

// DataSource is everything the page fetches.
type DataSource interface {
	views.PostSource
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUserPosts(ctx context.Context, userID int) ([]models.Post, error)
}

type Options struct {
	Title            string
	SourceURL        string
	DefaultUserID    int
	FetchConcurrency int
}

// Page is a single page document and its behavior. Exported entry points take
// the page lock, so events for one page run one at a time in arrival order.
type Page struct {
	mu       sync.Mutex
	logger   *slog.Logger
	src      DataSource
	opts     Options
	doc      *dom.Document
	renderer *views.Renderer
	buttons  *ButtonListeners
	// unix nanos; read without the page lock so the session janitor never
	// waits on a running refresh
	lastUsed atomic.Int64

	main       *html.Node
	selectMenu *html.Node
}

func New(logger *slog.Logger, src DataSource, opts Options) *Page {
	if opts.DefaultUserID == 0 {
		opts.DefaultUserID = 1
	}
	p := &Page{
		logger:   logger,
		src:      src,
		opts:     opts,
		doc:      dom.NewDocument(),
		renderer: views.NewRenderer(logger, src, opts.FetchConcurrency),
	}
	p.touch()
	p.buttons = newButtonListeners(p.doc, p.onButtonClick)

	// Registered first so the structure is bound before any other load listener.
	p.doc.AddEventListener(p.doc.Root(), dom.EventDOMContentLoaded, p.bindStructure)
	return p
}

func (p *Page) bindStructure(_ context.Context, _ *dom.Event) error {
	p.main = p.doc.QuerySelector("main")
	p.selectMenu = p.doc.GetElementByID(views.SelectMenuID)
	return nil
}

// Load parses the page shell into the document, which fires DOMContentLoaded.
func (p *Page) Load(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	shell, err := views.Shell(p.opts.Title, p.opts.SourceURL)
	if err != nil {
		return errors.Wrap(err, "render shell")
	}
	return p.doc.Load(ctx, bytes.NewReader(shell))
}

// SelectUser picks the menu option with value and dispatches a change event on
// the menu, as a user choosing from the list would.
func (p *Page) SelectUser(ctx context.Context, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.touch()

	if p.selectMenu == nil {
		return ErrNotLoaded
	}
	if _, err := p.parseUserID(value); err != nil {
		return err
	}
	views.SelectOption(p.selectMenu, value)
	return p.doc.DispatchEvent(ctx, &dom.Event{
		Type:   dom.EventChange,
		Target: p.selectMenu,
		Value:  value,
	})
}

// ClickToggle dispatches a click on the comment button of postID.
func (p *Page) ClickToggle(ctx context.Context, postID int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.touch()

	if !p.doc.Loaded() {
		return ErrNotLoaded
	}
	button := p.doc.QuerySelector(postSelector("button", postID))
	if button == nil {
		return errors.Wrapf(ErrNoSuchPost, "post %d", postID)
	}
	return p.doc.DispatchEvent(ctx, &dom.Event{Type: dom.EventClick, Target: button})
}

func (p *Page) Render(w io.Writer) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.touch()
	return p.doc.Render(w)
}

func (p *Page) LastUsed() time.Time {
	return time.Unix(0, p.lastUsed.Load())
}

func (p *Page) touch() {
	p.lastUsed.Store(time.Now().UnixNano())
}

// Close detaches every button listener so the registry holds nothing.
func (p *Page) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buttons.Remove(p.main)
	p.doc.PruneDetached()
}

// Document exposes the page tree for inspection.
func (p *Page) Document() *dom.Document {
	return p.doc
}

func postSelector(tag string, postID int) string {
	return tag + `[data-post-id="` + strconv.Itoa(postID) + `"]`
}
