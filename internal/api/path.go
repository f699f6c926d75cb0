package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pfrederiksen/six-degrees/internal/output"
	"github.com/pfrederiksen/six-degrees/internal/search"
	"github.com/pfrederiksen/six-degrees/internal/wiki"
)

// PathHandler serves path searches
type PathHandler struct {
	engine   *search.Engine
	checker  *search.Checker
	language string
	timeout  time.Duration
}

// NewPathHandler creates a PathHandler
func NewPathHandler(engine *search.Engine, checker *search.Checker, language string, timeout time.Duration) *PathHandler {
	if language == "" {
		language = wiki.DefaultLanguage
	}
	return &PathHandler{engine: engine, checker: checker, language: language, timeout: timeout}
}

type pathResponse struct {
	RunID   string   `json:"run_id"`
	From    string   `json:"from"`
	To      string   `json:"to"`
	Lang    string   `json:"lang"`
	State   string   `json:"state"`
	Levels  int      `json:"levels"`
	Meeting string   `json:"meeting,omitempty"`
	Hops    int      `json:"hops,omitempty"`
	Path    []string `json:"path"`
	URLs    []string `json:"urls,omitempty"`
}

// Path handles GET /api/v1/path?from=&to=&lang=
func (h *PathHandler) Path(c *gin.Context) {
	from, to, ok := h.refs(c, "from", "to")
	if !ok {
		return
	}

	ctx, cancel := h.context(c)
	defer cancel()

	out, err := h.engine.Search(ctx, from.Title, to.Title, from.Lang)
	if err != nil {
		h.searchError(c, err)
		return
	}
	searchOutcomes.WithLabelValues(out.State.String()).Inc()

	resp := pathResponse{
		RunID:   out.RunID,
		From:    from.Title,
		To:      to.Title,
		Lang:    from.Lang,
		State:   out.State.String(),
		Levels:  out.Levels,
		Meeting: out.Meeting,
		Path:    []string{},
	}
	if out.State == search.Found {
		leg := output.Leg{From: from, To: to, Path: out.Path}
		resp.Hops = out.Path.Hops()
		resp.Path = out.Path
		resp.URLs = leg.URLs()
	}

	c.JSON(http.StatusOK, resp)
}

// Degrees handles GET /api/v1/degrees?a=&b=&lang=
func (h *PathHandler) Degrees(c *gin.Context) {
	a, b, ok := h.refs(c, "a", "b")
	if !ok {
		return
	}

	ctx, cancel := h.context(c)
	defer cancel()

	start := time.Now()
	res := h.checker.Check(ctx, a.Title, b.Title, a.Lang)
	if invalidInput(res.ErrAtoB) {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, res.ErrAtoB.Error())
		return
	}

	report := output.NewReport(a, b, res, h.engine.Options().MaxDepth, time.Since(start))
	c.JSON(http.StatusOK, output.ToJSON(report))
}

// refs parses two article parameters. Both must resolve to the same wiki.
func (h *PathHandler) refs(c *gin.Context, first, second string) (wiki.Ref, wiki.Ref, bool) {
	rawA, rawB := c.Query(first), c.Query(second)
	if rawA == "" || rawB == "" {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, first+" and "+second+" are required")
		return wiki.Ref{}, wiki.Ref{}, false
	}

	lang := c.DefaultQuery("lang", h.language)
	a, b := wiki.ParseRef(rawA, lang), wiki.ParseRef(rawB, lang)
	if a.Lang != b.Lang {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "articles must be on the same wiki")
		return wiki.Ref{}, wiki.Ref{}, false
	}
	return a, b, true
}

func (h *PathHandler) context(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout > 0 {
		return context.WithTimeout(c.Request.Context(), h.timeout)
	}
	return context.WithCancel(c.Request.Context())
}

func (h *PathHandler) searchError(c *gin.Context, err error) {
	switch {
	case invalidInput(err):
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		searchOutcomes.WithLabelValues("cancelled").Inc()
		respondError(c, http.StatusServiceUnavailable, ErrCodeCancelled, "search cancelled before completion")
	default:
		slog.Error("Search failed", "request_id", c.GetString(RequestIDKey), "error", err)
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}

func invalidInput(err error) bool {
	return errors.Is(err, search.ErrInvalidNode) || errors.Is(err, search.ErrInvalidLocale)
}
