package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kova98/postboard/metrics"
	"github.com/kova98/postboard/models"
	"github.com/pkg/errors"
)

const (
	endpointUsers    = "users"
	endpointUser     = "user"
	endpointPosts    = "user_posts"
	endpointComments = "post_comments"
)

// ErrMissingID is returned without issuing a request when a required id is zero.
var ErrMissingID = errors.New("missing id")

// PlaceholderClient reads users, posts and comments from a JSONPlaceholder API.
// Nothing is cached; every call is one GET.
type PlaceholderClient struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
}

func NewPlaceholderClient(logger *slog.Logger, httpClient *http.Client, baseURL string) *PlaceholderClient {
	return &PlaceholderClient{
		logger:     logger,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *PlaceholderClient) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.fetch(ctx, endpointUsers, c.baseURL+"/users", &users); err != nil {
		return nil, errors.Wrap(err, "get users")
	}
	return users, nil
}

func (c *PlaceholderClient) GetUser(ctx context.Context, userID int) (*models.User, error) {
	if userID == 0 {
		return nil, ErrMissingID
	}
	var user models.User
	url := fmt.Sprintf("%s/users/%d", c.baseURL, userID)
	if err := c.fetch(ctx, endpointUser, url, &user); err != nil {
		return nil, errors.Wrapf(err, "get user %d", userID)
	}
	return &user, nil
}

func (c *PlaceholderClient) GetUserPosts(ctx context.Context, userID int) ([]models.Post, error) {
	if userID == 0 {
		return nil, ErrMissingID
	}
	var posts []models.Post
	url := fmt.Sprintf("%s/users/%d/posts", c.baseURL, userID)
	if err := c.fetch(ctx, endpointPosts, url, &posts); err != nil {
		return nil, errors.Wrapf(err, "get posts for user %d", userID)
	}
	return posts, nil
}

func (c *PlaceholderClient) GetPostComments(ctx context.Context, postID int) ([]models.Comment, error) {
	if postID == 0 {
		return nil, ErrMissingID
	}
	var comments []models.Comment
	query := neturl.Values{"postId": {strconv.Itoa(postID)}}
	url := c.baseURL + "/comments?" + query.Encode()
	if err := c.fetch(ctx, endpointComments, url, &comments); err != nil {
		return nil, errors.Wrapf(err, "get comments for post %d", postID)
	}
	return comments, nil
}

func (c *PlaceholderClient) fetch(ctx context.Context, endpoint, url string, out any) error {
	start := time.Now()
	err := c.do(ctx, url, out)
	metrics.FetchDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.FetchRequests.WithLabelValues(endpoint, metrics.OutcomeError).Inc()
		c.logger.Error("fetch failed", "endpoint", endpoint, "url", url, "error", truncateError(err))
		return err
	}
	metrics.FetchRequests.WithLabelValues(endpoint, metrics.OutcomeOK).Inc()
	c.logger.Debug("fetched", "endpoint", endpoint, "elapsed_ms", time.Since(start).Milliseconds())
	return nil
}

func (c *PlaceholderClient) do(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("placeholder returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

func truncateError(err error) string {
	msg := err.Error()
	if len(msg) > 300 {
		return msg[:300] + "..."
	}
	return msg
}
