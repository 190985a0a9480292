package httpapi

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/corpchat/internal/common"
)

// ListMessages handles GET /api/messages/?limit&offset, newest first.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := positiveInt(q.Get("limit"), common.DefaultPageLimit, true)
	if limit > common.MaxPageLimit {
		limit = common.MaxPageLimit
	}
	offset := positiveInt(q.Get("offset"), 0, false)

	page, err := h.messages.List(r.Context(), limit, offset)
	if err != nil {
		h.writeInternal(w, r, err)
		return
	}

	results := make([]messageResponse, 0, len(page.Messages))
	for i := range page.Messages {
		results = append(results, newMessageResponse(&page.Messages[i]))
	}

	h.writeJSON(w, r, http.StatusOK, pageResponse{
		Count:    page.Count,
		Next:     nextLink(r, page.Count, limit, offset),
		Previous: previousLink(r, limit, offset),
		Results:  results,
	})
}

// CreateMessage handles POST /api/messages/.
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if !h.decode(w, r, &req) {
		return
	}

	msg, err := h.messages.Post(r.Context(), MemberFromContext(r.Context()), req.Content)
	if err != nil {
		h.writeInternal(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, newMessageResponse(msg))
}

// positiveInt parses a non-negative query value, falling back to def when
// the value is missing, malformed, negative, or zero under strict.
func positiveInt(raw string, def int, strict bool) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || (strict && n == 0) {
		return def
	}
	return n
}

func nextLink(r *http.Request, count, limit, offset int) *string {
	if offset+limit >= count {
		return nil
	}
	return pageLink(r, func(q url.Values) {
		q.Set("limit", strconv.Itoa(limit))
		q.Set("offset", strconv.Itoa(offset+limit))
	})
}

func previousLink(r *http.Request, limit, offset int) *string {
	if offset <= 0 {
		return nil
	}
	return pageLink(r, func(q url.Values) {
		q.Set("limit", strconv.Itoa(limit))
		if offset-limit <= 0 {
			q.Del("offset")
			return
		}
		q.Set("offset", strconv.Itoa(offset-limit))
	})
}

func pageLink(r *http.Request, edit func(url.Values)) *string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	q := r.URL.Query()
	edit(q)
	u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: q.Encode()}
	s := u.String()
	return &s
}
