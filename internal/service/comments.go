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
	DefaultCommentsLimit = 50
	MaxCommentsLimit     = 250
)

//go:generate mockgen -source=comments.go -destination=./comment_storage_mock.go -package=service myblog/internal/service CommentStorage,CommentBus
type CommentStorage interface {
	CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error)
	GetCommentByID(ctx context.Context, commentID int64) (model.Comment, error)
	GetCommentsByPost(ctx context.Context, postID int64, limit int) ([]model.Comment, error)
	GetCommentsByPostWithCursor(ctx context.Context, params storage.GetCommentsParams) ([]model.Comment, error)
}

type CommentBus interface {
	Subscribe(ctx context.Context, postID int64) (<-chan model.Comment, error)
	Publish(ctx context.Context, postID int64, c model.Comment) error
}

type CommentService struct {
	commentStorage CommentStorage
	postStorage    PostStorage
	commentBus     CommentBus
}

func NewCommentService(commentStorage CommentStorage, postStorage PostStorage, commentBus CommentBus) *CommentService {
	return &CommentService{
		commentStorage: commentStorage,
		postStorage:    postStorage,
		commentBus:     commentBus,
	}
}

// CreateComment inserts a comment after checking that the target post exists
// and still accepts comments. The created comment is fanned out to live
// subscribers on a best-effort basis.
func (s *CommentService) CreateComment(ctx context.Context, req CreateCommentRequest) (model.Comment, error) {
	if err := validator.New().Struct(req); err != nil {
		return model.Comment{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	post, err := s.postStorage.GetPostByID(ctx, req.PostID)
	if err != nil {
		return model.Comment{}, err
	}
	if !post.CommentsEnabled {
		return model.Comment{}, ErrCommentsDisabled
	}

	comment, err := s.commentStorage.CreateComment(ctx, model.Comment{
		PostID: req.PostID,
		Body:   req.Body,
	})
	if err != nil {
		return model.Comment{}, err
	}

	if s.commentBus != nil {
		_ = s.commentBus.Publish(ctx, req.PostID, comment)
	}
	return comment, nil
}

func (s *CommentService) GetCommentByID(ctx context.Context, commentID int64) (model.Comment, error) {
	if commentID <= 0 {
		return model.Comment{}, fmt.Errorf("commentID must be > 0: %w", ErrInvalidRequest)
	}
	return s.commentStorage.GetCommentByID(ctx, commentID)
}

func (s *CommentService) GetCommentsByPost(ctx context.Context, in pagination.PageRequest, postID int64) (pagination.Page[model.Comment], error) {
	var page pagination.Page[model.Comment]

	if postID <= 0 {
		return page, fmt.Errorf("postID must be > 0: %w", ErrInvalidRequest)
	}
	if err := validatePagination(in); err != nil {
		return page, err
	}

	limit := in.Limit
	if limit <= 0 {
		limit = DefaultCommentsLimit
	}
	if limit > MaxCommentsLimit {
		limit = MaxCommentsLimit
	}
	peek := limit + 1

	var (
		items []model.Comment
		err   error
	)

	afterProvided := in.AfterCursor != nil && *in.AfterCursor != ""
	beforeProvided := in.BeforeCursor != nil && *in.BeforeCursor != ""

	switch {
	case !afterProvided && !beforeProvided:
		items, err = s.commentStorage.GetCommentsByPost(ctx, postID, peek)
		if err != nil {
			return page, err
		}

	default:
		params, err := toGetCommentsParams(postID, in)
		if err != nil {
			return page, err
		}
		params.Limit = peek
		items, err = s.commentStorage.GetCommentsByPostWithCursor(ctx, params)
		if err != nil {
			return page, err
		}
	}

	items, peeked := trimPeek(items, limit, beforeProvided)

	page = newPage(items, func(c model.Comment) pagination.Cursor {
		return pagination.Cursor{CreatedAt: c.CreatedAt, ID: c.ID}
	})

	switch {
	case beforeProvided:
		page.HasPreviousPage = peeked
		page.HasNextPage = len(items) > 0
	case afterProvided:
		page.HasNextPage = peeked
		page.HasPreviousPage = len(items) > 0
	default:
		page.HasNextPage = peeked
	}
	return page, nil
}

// Listen subscribes to the live comment feed of a post. The post must exist.
func (s *CommentService) Listen(ctx context.Context, postID int64) (<-chan model.Comment, error) {
	if s.commentBus == nil {
		return nil, fmt.Errorf("no bus configured")
	}
	if _, err := s.postStorage.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentBus.Subscribe(ctx, postID)
}
