package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/kova98/postboard/page"
)

type PageHandler struct {
	sessions *Sessions
}

func NewPageHandler(sessions *Sessions) *PageHandler {
	return &PageHandler{sessions}
}

func (h *PageHandler) GetPage(w http.ResponseWriter, r *http.Request) Result {
	p, err := h.sessions.Open(w, r)
	if err != nil {
		return InternalError(err, "open page: ")
	}

	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		return InternalError(err, "render page: ")
	}
	return HTML(buf.Bytes())
}

func (h *PageHandler) SelectUser(w http.ResponseWriter, r *http.Request) Result {
	p, err := h.sessions.Open(w, r)
	if err != nil {
		return InternalError(err, "open page: ")
	}
	if err := r.ParseForm(); err != nil {
		return BadRequest("Invalid form.")
	}

	if err := p.SelectUser(r.Context(), r.PostFormValue("userId")); err != nil {
		if errors.Is(err, page.ErrInvalidUserID) {
			return BadRequest("Invalid user ID.")
		}
		slog.Error("select user", "error", err)
	}
	return SeeOther("/")
}

func (h *PageHandler) ToggleComments(w http.ResponseWriter, r *http.Request) Result {
	postID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || postID <= 0 {
		return BadRequest("Invalid post ID.")
	}

	p := h.sessions.Lookup(r)
	if p == nil {
		return SeeOther("/")
	}

	if err := p.ClickToggle(r.Context(), postID); err != nil {
		if errors.Is(err, page.ErrNoSuchPost) {
			return NotFound("Post not found.")
		}
		return InternalError(err, "toggle comments: ")
	}
	return SeeOther("/")
}

type HealthHandler struct {
	startedAt time.Time
	sessions  *Sessions
}

func NewHealthHandler(sessions *Sessions) *HealthHandler {
	return &HealthHandler{startedAt: time.Now(), sessions: sessions}
}

func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) Result {
	return Ok(map[string]interface{}{
		"app":       "postboard",
		"status":    "ok",
		"startedAt": h.startedAt.Format(time.RFC3339),
		"sessions":  h.sessions.Len(),
	})
}
