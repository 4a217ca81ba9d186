package service

import (
	"context"
	"fmt"

	"myblog/internal/adapter/out/storage"
	"myblog/internal/model"
	"myblog/pkg/pagination"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultPostsLimit = 50
	MaxPostsLimit     = 250
)

//go:generate mockgen -source=posts.go -destination=./post_storage_mock.go -package=service myblog/internal/service PostStorage
type PostStorage interface {
	CreatePost(ctx context.Context, post model.Post) (model.Post, error)
	GetPostByID(ctx context.Context, postID int64) (model.Post, error)
	GetPosts(ctx context.Context, limit int) ([]model.Post, error)
	GetPostsWithCursor(ctx context.Context, params storage.GetPostsParams) ([]model.Post, error)
	SetCommentsEnabled(ctx context.Context, postID int64, enabled bool) error
}

type PostService struct {
	postStorage PostStorage
}

func NewPostService(postStorage PostStorage) *PostService {
	return &PostService{
		postStorage: postStorage,
	}
}

func (s *PostService) CreatePost(ctx context.Context, req CreatePostRequest) (model.Post, error) {
	if err := validator.New().Struct(req); err != nil {
		return model.Post{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return s.postStorage.CreatePost(ctx, model.Post{
		Title:           req.Title,
		Body:            req.Body,
		CommentsEnabled: req.CommentsEnabled,
	})
}

func (s *PostService) GetPostByID(ctx context.Context, postID int64) (model.Post, error) {
	if postID <= 0 {
		return model.Post{}, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}
	return s.postStorage.GetPostByID(ctx, postID)
}

func (s *PostService) GetPosts(ctx context.Context, in pagination.PageRequest) (pagination.Page[model.Post], error) {
	var page pagination.Page[model.Post]

	if err := validatePagination(in); err != nil {
		return page, err
	}

	limit := in.Limit
	if limit <= 0 {
		limit = DefaultPostsLimit
	}
	if limit > MaxPostsLimit {
		limit = MaxPostsLimit
	}
	peek := limit + 1

	var (
		posts []model.Post
		err   error
	)

	afterProvided := in.AfterCursor != nil && *in.AfterCursor != ""
	beforeProvided := in.BeforeCursor != nil && *in.BeforeCursor != ""

	switch {
	case !afterProvided && !beforeProvided:
		posts, err = s.postStorage.GetPosts(ctx, peek)
		if err != nil {
			return page, err
		}

	default:
		params, err := toGetPostsParams(in)
		if err != nil {
			return page, err
		}
		params.Limit = peek
		posts, err = s.postStorage.GetPostsWithCursor(ctx, params)
		if err != nil {
			return page, err
		}
	}

	posts, peeked := trimPeek(posts, limit, beforeProvided)

	page = newPage(posts, func(p model.Post) pagination.Cursor {
		return pagination.Cursor{CreatedAt: p.CreatedAt, ID: p.ID}
	})

	switch {
	case beforeProvided:
		page.HasPreviousPage = peeked
		page.HasNextPage = len(posts) > 0
	case afterProvided:
		page.HasNextPage = peeked
		page.HasPreviousPage = len(posts) > 0
	default:
		page.HasNextPage = peeked
	}
	return page, nil
}

func (s *PostService) SetCommentsEnabled(ctx context.Context, postID int64, enabled bool) error {
	if postID <= 0 {
		return fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}
	return s.postStorage.SetCommentsEnabled(ctx, postID, enabled)
}
