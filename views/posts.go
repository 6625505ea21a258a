package views

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/kova98/postboard/dom"
	"github.com/kova98/postboard/enums"
	"github.com/kova98/postboard/metrics"
	"github.com/kova98/postboard/models"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

const (
	HiddenClass   = "hide"
	commentsClass = "comments"
	postIDData    = "post-id"
)

// PostSource resolves the data a post needs beyond its own record.
type PostSource interface {
	GetUser(ctx context.Context, userID int) (*models.User, error)
	GetPostComments(ctx context.Context, postID int) ([]models.Comment, error)
}

// Renderer builds post articles, fetching authors and comments as it goes.
type Renderer struct {
	logger      *slog.Logger
	src         PostSource
	concurrency int
}

// NewRenderer returns a Renderer. concurrency > 1 assembles that many posts at
// once; output order always follows input order.
func NewRenderer(logger *slog.Logger, src PostSource, concurrency int) *Renderer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Renderer{logger: logger, src: src, concurrency: concurrency}
}

// DisplayComments builds the hidden comment section for postID with its comments
// already fetched and appended. A zero postID yields nil.
func (r *Renderer) DisplayComments(ctx context.Context, postID int) (*html.Node, error) {
	if postID == 0 {
		return nil, nil
	}

	section := dom.CreateElement("section")
	dom.SetData(section, postIDData, strconv.Itoa(postID))
	dom.AddClass(section, commentsClass, HiddenClass)

	comments, err := r.src.GetPostComments(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(err, "display comments")
	}
	dom.Append(section, CreateComments(comments))
	return section, nil
}

// CreatePosts builds one article per post into a fragment. Any author or comment
// fetch failure aborts the whole batch. A nil slice yields nil.
func (r *Renderer) CreatePosts(ctx context.Context, posts []models.Post) (*html.Node, error) {
	if posts == nil {
		return nil, nil
	}

	articles := make([]*html.Node, len(posts))
	if r.concurrency == 1 {
		for i, post := range posts {
			article, err := r.createPost(ctx, post)
			if err != nil {
				return nil, err
			}
			articles[i] = article
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.concurrency)
		for i, post := range posts {
			g.Go(func() error {
				article, err := r.createPost(gctx, post)
				if err != nil {
					return err
				}
				articles[i] = article
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	fragment := dom.NewFragment()
	dom.Append(fragment, articles...)
	return fragment, nil
}

func (r *Renderer) createPost(ctx context.Context, post models.Post) (*html.Node, error) {
	author, err := r.src.GetUser(ctx, post.UserID)
	if err != nil {
		return nil, errors.Wrapf(err, "create post %d: author", post.ID)
	}

	button := dom.CreateElemWithText("button", enums.CommentLabelShow.String(), "")
	dom.SetData(button, postIDData, strconv.Itoa(post.ID))
	dom.SetAttr(button, "type", "submit")
	dom.SetAttr(button, "form", ToggleFormID)
	dom.SetAttr(button, "formaction", ToggleAction(post.ID))

	section, err := r.DisplayComments(ctx, post.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "create post %d", post.ID)
	}

	article := dom.CreateElement("article")
	dom.Append(article,
		dom.CreateElemWithText("h2", post.Title, ""),
		dom.CreateElemWithText("p", post.Body, ""),
		dom.CreateElemWithText("p", fmt.Sprintf("Post ID: %d", post.ID), ""),
		dom.CreateElemWithText("p", fmt.Sprintf("Author: %s with %s", author.Name, author.Company.Name), ""),
		dom.CreateElemWithText("p", author.Company.CatchPhrase, ""),
		button,
		section,
	)
	return article, nil
}

// DisplayPosts appends the articles for posts to main and returns them. With nil
// posts it shows the empty state instead: the existing placeholder paragraph
// under main, or a new one when main has none.
func (r *Renderer) DisplayPosts(ctx context.Context, main *html.Node, posts []models.Post) ([]*html.Node, error) {
	if main == nil {
		return nil, nil
	}

	if posts == nil {
		placeholder := dom.QuerySelector(main, "p")
		if placeholder == nil {
			placeholder = dom.CreateElemWithText("p", PlaceholderText, "")
		}
		dom.Append(main, placeholder)
		return []*html.Node{placeholder}, nil
	}

	start := time.Now()
	fragment, err := r.CreatePosts(ctx, posts)
	if err != nil {
		return nil, err
	}
	metrics.RenderDuration.Observe(time.Since(start).Seconds())

	articles := dom.Children(fragment)
	dom.Append(main, fragment)
	r.logger.Debug("displayed posts", "count", len(articles), "elapsed_ms", time.Since(start).Milliseconds())
	return articles, nil
}
