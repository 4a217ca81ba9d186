package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"myblog/internal/service"
	"myblog/pkg/logger"
)

type createCommentRequest struct {
	Body string `json:"body"`
}

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID, err := postIDParam(r)
	if err != nil {
		respondError(ctx, w, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err))
		return
	}

	var in createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(ctx, w, fmt.Errorf("%w: malformed json", service.ErrInvalidRequest))
		return
	}

	comment, err := h.comments.CreateComment(ctx, service.CreateCommentRequest{
		PostID: postID,
		Body:   in.Body,
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, comment)
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID, err := postIDParam(r)
	if err != nil {
		respondError(ctx, w, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err))
		return
	}

	in, err := toPageRequest(r)
	if err != nil {
		respondError(ctx, w, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err))
		return
	}

	page, err := h.comments.GetCommentsByPost(ctx, in, postID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toPageResponse(page))
}

// StreamComments serves a server-sent-events feed of new comments on a post.
// The stream stays open until the client disconnects; a comment event is sent
// per published comment and a keep-alive line at the configured interval.
func (h *Handler) StreamComments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID, err := postIDParam(r)
	if err != nil {
		respondError(ctx, w, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(ctx, w, fmt.Errorf("streaming unsupported by connection"))
		return
	}

	ch, err := h.comments.Listen(ctx, postID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	keepAlive := time.NewTicker(h.keepAlive)
	defer keepAlive.Stop()

	log := logger.FromContext(ctx)
	for {
		select {
		case <-ctx.Done():
			return

		case c, open := <-ch:
			if !open {
				return
			}
			data, err := json.Marshal(c)
			if err != nil {
				log.Error("marshal comment event", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: comment\ndata: %s\n\n", data)
			flusher.Flush()

		case <-keepAlive.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		}
	}
}
