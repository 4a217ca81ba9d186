package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"myblog/pkg/pagination"

	"github.com/go-chi/chi/v5"
)

type pageResponse[T any] struct {
	Items           []T     `json:"items"`
	Count           int     `json:"count"`
	StartCursor     *string `json:"start_cursor,omitempty"`
	EndCursor       *string `json:"end_cursor,omitempty"`
	HasNextPage     bool    `json:"has_next_page"`
	HasPreviousPage bool    `json:"has_previous_page"`
}

func toPageResponse[T any](p pagination.Page[T]) pageResponse[T] {
	return pageResponse[T]{
		Items:           p.Items,
		Count:           p.Count,
		StartCursor:     p.StartCursor,
		EndCursor:       p.EndCursor,
		HasNextPage:     p.HasNextPage,
		HasPreviousPage: p.HasPreviousPage,
	}
}

func toPageRequest(r *http.Request) (pagination.PageRequest, error) {
	q := r.URL.Query()

	var out pagination.PageRequest
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return out, fmt.Errorf("limit must be an integer")
		}
		out.Limit = limit
	}
	if after := q.Get("after"); after != "" {
		out.AfterCursor = &after
	}
	if before := q.Get("before"); before != "" {
		out.BeforeCursor = &before
	}
	return out, nil
}

func postIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "postID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q", raw)
	}
	return id, nil
}
