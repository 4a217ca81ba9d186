package inmemory

import (
	"context"
	"slices"
	"sync"
	"time"

	"myblog/internal/adapter/out/storage"
	"myblog/internal/model"
	"myblog/internal/service"
)

// PostStorage keeps posts in an append-only slice. Index 0 is a zero-value
// sentinel so slice index and post ID coincide.
type PostStorage struct {
	mu    sync.RWMutex
	posts []model.Post
	byID  map[int64]model.Post
}

func NewPostStorage() *PostStorage {
	return &PostStorage{
		posts: []model.Post{{}},
		byID:  make(map[int64]model.Post),
	}
}

func (s *PostStorage) CreatePost(_ context.Context, in model.Post) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ID = int64(len(s.posts))
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	s.posts = append(s.posts, in)
	s.byID[in.ID] = in
	return in, nil
}

func (s *PostStorage) GetPostByID(_ context.Context, postID int64) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if post, ok := s.byID[postID]; ok {
		return post, nil
	}
	return model.Post{}, service.ErrNotFound
}

func (s *PostStorage) SetCommentsEnabled(_ context.Context, postID int64, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[postID]
	if !ok {
		return service.ErrNotFound
	}
	p.CommentsEnabled = enabled
	s.byID[postID] = p
	s.posts[postID] = p
	return nil
}

func (s *PostStorage) GetPosts(_ context.Context, limit int) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.posts) - 1
	if n <= 0 {
		return nil, nil
	}

	out := make([]model.Post, 0, min(limit, n))
	for id := n; id >= 1 && len(out) < limit; id-- {
		out = append(out, s.posts[id])
	}
	return out, nil
}

func (s *PostStorage) GetPostsWithCursor(_ context.Context, params storage.GetPostsParams) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := params.Limit
	if limit <= 0 {
		limit = service.DefaultPostsLimit
	}

	out := make([]model.Post, 0, limit)

	switch params.Direction {
	case storage.DirectionAfter:
		for id := min(int(params.Cursor.ID)-1, len(s.posts)-1); id >= 1 && len(out) < limit; id-- {
			out = append(out, s.posts[id])
		}
		return out, nil

	case storage.DirectionBefore:
		for id := max(int(params.Cursor.ID)+1, 1); id <= len(s.posts)-1 && len(out) < limit; id++ {
			out = append(out, s.posts[id])
		}
		slices.Reverse(out)
		return out, nil

	default:
		return nil, storage.ErrDirectionUnset
	}
}
