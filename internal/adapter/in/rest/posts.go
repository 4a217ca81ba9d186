package rest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"myblog/internal/service"
)

type createPostRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	// CommentsEnabled defaults to true when the field is omitted.
	CommentsEnabled *bool `json:"comments_enabled"`
}

type setCommentsEnabledRequest struct {
	Enabled bool `json:"enabled"`
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(ctx, w, fmt.Errorf("%w: malformed json", service.ErrInvalidRequest))
		return
	}

	commentsEnabled := true
	if in.CommentsEnabled != nil {
		commentsEnabled = *in.CommentsEnabled
	}

	post, err := h.posts.CreatePost(ctx, service.CreatePostRequest{
		Title:           in.Title,
		Body:            in.Body,
		CommentsEnabled: commentsEnabled,
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusCreated, post)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID, err := postIDParam(r)
	if err != nil {
		respondError(ctx, w, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err))
		return
	}

	post, err := h.posts.GetPostByID(ctx, postID)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, post)
}

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	in, err := toPageRequest(r)
	if err != nil {
		respondError(ctx, w, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err))
		return
	}

	page, err := h.posts.GetPosts(ctx, in)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respondJSON(ctx, w, http.StatusOK, toPageResponse(page))
}

func (h *Handler) SetCommentsEnabled(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID, err := postIDParam(r)
	if err != nil {
		respondError(ctx, w, fmt.Errorf("%w: %v", service.ErrInvalidRequest, err))
		return
	}

	var in setCommentsEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(ctx, w, fmt.Errorf("%w: malformed json", service.ErrInvalidRequest))
		return
	}

	if err := h.posts.SetCommentsEnabled(ctx, postID, in.Enabled); err != nil {
		respondError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
