package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/kova98/postboard/dom"
	"github.com/kova98/postboard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

type fakeSource struct {
	mu          sync.Mutex
	users       map[int]models.User
	comments    map[int][]models.Comment
	userErr     error
	commentsErr error
	calls       []string
}

func (f *fakeSource) GetUser(ctx context.Context, userID int) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("user:%d", userID))
	if f.userErr != nil {
		return nil, f.userErr
	}
	u := f.users[userID]
	return &u, nil
}

func (f *fakeSource) GetPostComments(ctx context.Context, postID int) ([]models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("comments:%d", postID))
	if f.commentsErr != nil {
		return nil, f.commentsErr
	}
	return f.comments[postID], nil
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		users: map[int]models.User{
			3: {ID: 3, Name: "Clementine Bauch", Company: models.Company{Name: "Romaguera-Jacobson", CatchPhrase: "Face to face bifurcated interface"}},
		},
		comments: map[int][]models.Comment{
			21: {{PostID: 21, Name: "first", Email: "a@x.io", Body: "one"}, {PostID: 21, Name: "second", Email: "b@x.io", Body: "two"}},
			22: {},
		},
	}
}

func testRenderer(src PostSource, concurrency int) *Renderer {
	return NewRenderer(slog.New(slog.NewTextHandler(io.Discard, nil)), src, concurrency)
}

func testPosts() []models.Post {
	return []models.Post{
		{ID: 21, UserID: 3, Title: "first title", Body: "first body"},
		{ID: 22, UserID: 3, Title: "second title", Body: "second body"},
	}
}

func texts(nodes []*html.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, dom.TextContent(n))
	}
	return out
}

func TestCreateSelectOptions_Nil(t *testing.T) {
	assert.Nil(t, CreateSelectOptions(nil))
}

func TestCreateSelectOptions_OnePerUser(t *testing.T) {
	users := []models.User{{ID: 1, Name: "Leanne"}, {ID: 2, Name: "Ervin"}}

	options := CreateSelectOptions(users)

	require.Len(t, options, 2)
	for i, option := range options {
		assert.Equal(t, "option", option.Data)
		v, _ := dom.Attr(option, "value")
		assert.Equal(t, fmt.Sprint(users[i].ID), v)
		assert.Equal(t, users[i].Name, dom.TextContent(option))
	}
}

func TestPopulateSelectMenu(t *testing.T) {
	menu := dom.CreateElement("select")

	assert.Nil(t, PopulateSelectMenu(menu, nil))
	assert.Nil(t, menu.FirstChild)

	out := PopulateSelectMenu(menu, []models.User{{ID: 1, Name: "Leanne"}, {ID: 2, Name: "Ervin"}})
	assert.Same(t, menu, out)
	assert.Equal(t, []string{"Leanne", "Ervin"}, texts(dom.Children(menu)))
}

func TestSelectOption(t *testing.T) {
	menu := PopulateSelectMenu(dom.CreateElement("select"), []models.User{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}})

	assert.True(t, SelectOption(menu, "2"))
	assert.True(t, SelectOption(menu, "1"))

	options := dom.Children(menu)
	_, first := dom.Attr(options[0], "selected")
	_, second := dom.Attr(options[1], "selected")
	assert.True(t, first)
	assert.False(t, second)
	assert.False(t, SelectOption(menu, "9"))
}

func TestCreateComments(t *testing.T) {
	assert.Nil(t, CreateComments(nil))

	fragment := CreateComments([]models.Comment{{Name: "n1", Body: "b1", Email: "e1@x.io"}, {Name: "n2", Body: "b2", Email: "e2@x.io"}})

	articles := dom.Children(fragment)
	require.Len(t, articles, 2)
	assert.Equal(t, []string{"n1", "b1", "From: e1@x.io"}, texts(dom.Children(articles[0])))
	assert.Equal(t, "h3", dom.Children(articles[1])[0].Data)
}

func TestDisplayComments_HiddenSectionWithComments(t *testing.T) {
	r := testRenderer(newFakeSource(), 1)

	section, err := r.DisplayComments(context.Background(), 21)
	require.NoError(t, err)

	v, _ := dom.Data(section, "post-id")
	assert.Equal(t, "21", v)
	assert.True(t, dom.HasClass(section, HiddenClass))
	assert.True(t, dom.HasClass(section, "comments"))
	assert.Len(t, dom.Children(section), 2)
}

func TestDisplayComments_ZeroID(t *testing.T) {
	src := newFakeSource()
	r := testRenderer(src, 1)

	section, err := r.DisplayComments(context.Background(), 0)
	assert.NoError(t, err)
	assert.Nil(t, section)
	assert.Empty(t, src.calls)
}

func TestCreatePosts_ArticleStructure(t *testing.T) {
	src := newFakeSource()
	r := testRenderer(src, 1)

	fragment, err := r.CreatePosts(context.Background(), testPosts())
	require.NoError(t, err)

	articles := dom.Children(fragment)
	require.Len(t, articles, 2)

	parts := dom.Children(articles[0])
	require.Len(t, parts, 7)
	assert.Equal(t, []string{"h2", "p", "p", "p", "p", "button", "section"}, tags(parts))
	assert.Equal(t, "first title", dom.TextContent(parts[0]))
	assert.Equal(t, "first body", dom.TextContent(parts[1]))
	assert.Equal(t, "Post ID: 21", dom.TextContent(parts[2]))
	assert.Equal(t, "Author: Clementine Bauch with Romaguera-Jacobson", dom.TextContent(parts[3]))
	assert.Equal(t, "Face to face bifurcated interface", dom.TextContent(parts[4]))
	assert.Equal(t, "Show Comments", dom.TextContent(parts[5]))
	id, _ := dom.Data(parts[5], "post-id")
	assert.Equal(t, "21", id)
	assert.True(t, dom.HasClass(parts[6], HiddenClass))

	assert.Equal(t, []string{"user:3", "comments:21", "user:3", "comments:22"}, src.calls)
}

func TestCreatePosts_ConcurrentKeepsOrder(t *testing.T) {
	posts := make([]models.Post, 0, 10)
	for i := 1; i <= 10; i++ {
		posts = append(posts, models.Post{ID: i, UserID: 3, Title: fmt.Sprintf("post %d", i)})
	}
	r := testRenderer(newFakeSource(), 4)

	fragment, err := r.CreatePosts(context.Background(), posts)
	require.NoError(t, err)

	articles := dom.Children(fragment)
	require.Len(t, articles, 10)
	for i, article := range articles {
		assert.Equal(t, fmt.Sprintf("post %d", i+1), dom.TextContent(dom.Children(article)[0]))
	}
}

func TestCreatePosts_Nil(t *testing.T) {
	fragment, err := testRenderer(newFakeSource(), 1).CreatePosts(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, fragment)
}

func TestCreatePosts_AuthorFailureAborts(t *testing.T) {
	src := newFakeSource()
	src.userErr = errors.New("upstream down")

	fragment, err := testRenderer(src, 1).CreatePosts(context.Background(), testPosts())
	assert.ErrorIs(t, err, src.userErr)
	assert.Nil(t, fragment)
	assert.Equal(t, []string{"user:3"}, src.calls)
}

func TestCreatePosts_CommentFailureAborts(t *testing.T) {
	src := newFakeSource()
	src.commentsErr = errors.New("upstream down")

	_, err := testRenderer(src, 2).CreatePosts(context.Background(), testPosts())
	assert.ErrorIs(t, err, src.commentsErr)
}

func TestDisplayPosts_AppendsArticles(t *testing.T) {
	main := dom.CreateElement("main")

	displayed, err := testRenderer(newFakeSource(), 1).DisplayPosts(context.Background(), main, testPosts())
	require.NoError(t, err)

	assert.Len(t, displayed, 2)
	assert.Equal(t, displayed, dom.Children(main))
}

func TestDisplayPosts_EmptyStateReusesPlaceholder(t *testing.T) {
	main := dom.CreateElement("main")
	existing := dom.CreateElemWithText("p", "pick one", "")
	dom.Append(main, existing, dom.CreateElement("div"))

	displayed, err := testRenderer(newFakeSource(), 1).DisplayPosts(context.Background(), main, nil)
	require.NoError(t, err)

	require.Len(t, displayed, 1)
	assert.Same(t, existing, displayed[0])
	assert.Same(t, existing, main.LastChild)
}

func TestDisplayPosts_EmptyStateCreatesPlaceholder(t *testing.T) {
	main := dom.CreateElement("main")

	displayed, err := testRenderer(newFakeSource(), 1).DisplayPosts(context.Background(), main, nil)
	require.NoError(t, err)

	require.Len(t, displayed, 1)
	assert.Equal(t, PlaceholderText, dom.TextContent(displayed[0]))
}

func TestShell(t *testing.T) {
	shell, err := Shell("Employee Posts", "https://jsonplaceholder.typicode.com")
	require.NoError(t, err)

	markup := string(shell)
	assert.True(t, strings.Contains(markup, `<select id="selectMenu" name="userId">`))
	assert.True(t, strings.Contains(markup, "<main>"))
	assert.True(t, strings.Contains(markup, PlaceholderText))
	assert.True(t, strings.Contains(markup, `<form id="toggleForm" method="post">`))
}

func tags(nodes []*html.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Data)
	}
	return out
}
