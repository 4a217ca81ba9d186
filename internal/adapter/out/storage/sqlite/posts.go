package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"myblog/internal/adapter/out/storage"
	"myblog/internal/model"
	"myblog/internal/service"
	"myblog/pkg/tableinfo"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type PostStorage struct {
	db *sqlx.DB
}

func NewPostStorage(db *sqlx.DB) *PostStorage {
	return &PostStorage{db: db}
}

var postColumns = []string{
	tableinfo.PostIDColumn,
	tableinfo.PostTitleColumn,
	tableinfo.PostBodyColumn,
	tableinfo.PostCommentsEnabledColumn,
	tableinfo.PostCreatedAtColumn,
}

func (s *PostStorage) CreatePost(ctx context.Context, post model.Post) (model.Post, error) {
	var out model.Post

	query, args, err := sq.
		Insert(tableinfo.PostsTableName).
		Columns(
			tableinfo.PostTitleColumn,
			tableinfo.PostBodyColumn,
			tableinfo.PostCommentsEnabledColumn,
		).
		Values(post.Title, post.Body, post.CommentsEnabled).
		Suffix(fmt.Sprintf("RETURNING %s, %s, %s, %s, %s",
			tableinfo.PostIDColumn,
			tableinfo.PostTitleColumn,
			tableinfo.PostBodyColumn,
			tableinfo.PostCommentsEnabledColumn,
			tableinfo.PostCreatedAtColumn,
		)).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	if err := s.db.QueryRowxContext(ctx, query, args...).StructScan(&out); err != nil {
		return out, fmt.Errorf("exec insert post: %w", err)
	}
	return out, nil
}

func (s *PostStorage) GetPostByID(ctx context.Context, postID int64) (model.Post, error) {
	var out model.Post

	query, args, err := sq.
		Select(postColumns...).
		From(tableinfo.PostsTableName).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	if err := s.db.GetContext(ctx, &out, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return out, service.ErrNotFound
		}
		return out, fmt.Errorf("exec select post by id: %w", err)
	}
	return out, nil
}

func (s *PostStorage) GetPosts(ctx context.Context, limit int) ([]model.Post, error) {
	if limit <= 0 {
		limit = service.DefaultPostsLimit
	}

	query, args, err := sq.
		Select(postColumns...).
		From(tableinfo.PostsTableName).
		OrderBy(
			tableinfo.PostCreatedAtColumn+" DESC",
			tableinfo.PostIDColumn+" DESC",
		).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	out := make([]model.Post, 0, limit)
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("exec select posts: %w", err)
	}
	return out, nil
}

func getPostsQueryBuilder(params storage.GetPostsParams) (sq.SelectBuilder, error) {
	base := sq.
		Select(postColumns...).
		From(tableinfo.PostsTableName)

	bound := params.Cursor.CreatedAt.UTC().Format(timeLayout)

	switch params.Direction {
	case storage.DirectionAfter:
		base = base.
			Where(sq.Expr(
				fmt.Sprintf("(%s, %s) < (?, ?)", tableinfo.PostCreatedAtColumn, tableinfo.PostIDColumn),
				bound, params.Cursor.ID,
			)).
			OrderBy(
				tableinfo.PostCreatedAtColumn+" DESC",
				tableinfo.PostIDColumn+" DESC",
			)

	case storage.DirectionBefore:
		base = base.
			Where(sq.Expr(
				fmt.Sprintf("(%s, %s) > (?, ?)", tableinfo.PostCreatedAtColumn, tableinfo.PostIDColumn),
				bound, params.Cursor.ID,
			)).
			OrderBy(
				tableinfo.PostCreatedAtColumn+" ASC",
				tableinfo.PostIDColumn+" ASC",
			)

	default:
		return base, storage.ErrDirectionUnset
	}

	return base.Limit(uint64(params.Limit)), nil
}

func (s *PostStorage) GetPostsWithCursor(ctx context.Context, params storage.GetPostsParams) ([]model.Post, error) {
	if params.Limit <= 0 {
		params.Limit = service.DefaultPostsLimit
	}

	qb, err := getPostsQueryBuilder(params)
	if err != nil {
		return nil, err
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	out := make([]model.Post, 0, params.Limit)
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("exec select posts with cursor: %w", err)
	}

	// Before-pages are fetched in ascending order; callers expect newest first.
	if params.Direction == storage.DirectionBefore {
		slices.Reverse(out)
	}
	return out, nil
}

func (s *PostStorage) SetCommentsEnabled(ctx context.Context, postID int64, enabled bool) error {
	query, args, err := sq.
		Update(tableinfo.PostsTableName).
		Set(tableinfo.PostCommentsEnabledColumn, enabled).
		Where(sq.Eq{tableinfo.PostIDColumn: postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec update comments_enabled: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return service.ErrNotFound
	}
	return nil
}
