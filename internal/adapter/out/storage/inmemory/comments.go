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

type CommentStorage struct {
	mu sync.RWMutex

	comments []model.Comment
	byPost   map[int64][]int64
}

func NewCommentStorage() *CommentStorage {
	return &CommentStorage{
		comments: []model.Comment{{}},
		byPost:   make(map[int64][]int64),
	}
}

func (s *CommentStorage) CreateComment(_ context.Context, in model.Comment) (model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in.ID = int64(len(s.comments))
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}

	s.comments = append(s.comments, in)
	s.byPost[in.PostID] = append(s.byPost[in.PostID], in.ID)
	return in, nil
}

func (s *CommentStorage) GetCommentByID(_ context.Context, commentID int64) (model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if commentID <= 0 || int(commentID) >= len(s.comments) {
		return model.Comment{}, service.ErrNotFound
	}
	return s.comments[commentID], nil
}

func (s *CommentStorage) GetCommentsByPost(_ context.Context, postID int64, limit int) ([]model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byPost[postID]
	if len(ids) == 0 {
		return nil, nil
	}

	out := make([]model.Comment, 0, min(limit, len(ids)))
	for i := len(ids) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.comments[ids[i]])
	}
	return out, nil
}

func (s *CommentStorage) GetCommentsByPostWithCursor(_ context.Context, p storage.GetCommentsParams) ([]model.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byPost[p.PostID]
	if len(ids) == 0 {
		return nil, nil
	}

	limit := p.Limit
	if limit <= 0 {
		limit = service.DefaultCommentsLimit
	}

	out := make([]model.Comment, 0, limit)
	switch p.Direction {
	case storage.DirectionAfter:
		for i := len(ids) - 1; i >= 0 && len(out) < limit; i-- {
			if ids[i] < p.Cursor.ID {
				out = append(out, s.comments[ids[i]])
			}
		}
		return out, nil

	case storage.DirectionBefore:
		for i := 0; i < len(ids) && len(out) < limit; i++ {
			if ids[i] > p.Cursor.ID {
				out = append(out, s.comments[ids[i]])
			}
		}
		slices.Reverse(out)
		return out, nil

	default:
		return nil, storage.ErrDirectionUnset
	}
}
