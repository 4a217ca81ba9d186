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

type CommentStorage struct {
	db *sqlx.DB
}

func NewCommentStorage(db *sqlx.DB) *CommentStorage {
	return &CommentStorage{db: db}
}

var commentColumns = []string{
	tableinfo.CommentIDColumn,
	tableinfo.CommentPostIDColumn,
	tableinfo.CommentBodyColumn,
	tableinfo.CommentCreatedAtColumn,
}

func (s *CommentStorage) CreateComment(ctx context.Context, comment model.Comment) (model.Comment, error) {
	var out model.Comment

	query, args, err := sq.
		Insert(tableinfo.CommentsTableName).
		Columns(
			tableinfo.CommentPostIDColumn,
			tableinfo.CommentBodyColumn,
		).
		Values(comment.PostID, comment.Body).
		Suffix(fmt.Sprintf("RETURNING %s, %s, %s, %s",
			tableinfo.CommentIDColumn,
			tableinfo.CommentPostIDColumn,
			tableinfo.CommentBodyColumn,
			tableinfo.CommentCreatedAtColumn,
		)).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	if err := s.db.QueryRowxContext(ctx, query, args...).StructScan(&out); err != nil {
		if isForeignKeyViolation(err) {
			return out, service.ErrNotFound
		}
		return out, fmt.Errorf("exec insert comment: %w", err)
	}
	return out, nil
}

func (s *CommentStorage) GetCommentByID(ctx context.Context, commentID int64) (model.Comment, error) {
	var out model.Comment

	query, args, err := sq.
		Select(commentColumns...).
		From(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentIDColumn: commentID}).
		ToSql()
	if err != nil {
		return out, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	if err := s.db.GetContext(ctx, &out, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return out, service.ErrNotFound
		}
		return out, fmt.Errorf("exec select comment by id: %w", err)
	}
	return out, nil
}

func (s *CommentStorage) GetCommentsByPost(ctx context.Context, postID int64, limit int) ([]model.Comment, error) {
	if limit <= 0 {
		limit = service.DefaultCommentsLimit
	}

	query, args, err := sq.
		Select(commentColumns...).
		From(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentPostIDColumn: postID}).
		OrderBy(
			tableinfo.CommentCreatedAtColumn+" DESC",
			tableinfo.CommentIDColumn+" DESC",
		).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	out := make([]model.Comment, 0, limit)
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("exec select comments: %w", err)
	}
	return out, nil
}

func getCommentsQueryBuilder(params storage.GetCommentsParams) (sq.SelectBuilder, error) {
	base := sq.
		Select(commentColumns...).
		From(tableinfo.CommentsTableName).
		Where(sq.Eq{tableinfo.CommentPostIDColumn: params.PostID})

	bound := params.Cursor.CreatedAt.UTC().Format(timeLayout)

	switch params.Direction {
	case storage.DirectionAfter:
		base = base.
			Where(sq.Expr(
				fmt.Sprintf("(%s, %s) < (?, ?)", tableinfo.CommentCreatedAtColumn, tableinfo.CommentIDColumn),
				bound, params.Cursor.ID,
			)).
			OrderBy(
				tableinfo.CommentCreatedAtColumn+" DESC",
				tableinfo.CommentIDColumn+" DESC",
			)

	case storage.DirectionBefore:
		base = base.
			Where(sq.Expr(
				fmt.Sprintf("(%s, %s) > (?, ?)", tableinfo.CommentCreatedAtColumn, tableinfo.CommentIDColumn),
				bound, params.Cursor.ID,
			)).
			OrderBy(
				tableinfo.CommentCreatedAtColumn+" ASC",
				tableinfo.CommentIDColumn+" ASC",
			)

	default:
		return base, storage.ErrDirectionUnset
	}

	return base.Limit(uint64(params.Limit)), nil
}

func (s *CommentStorage) GetCommentsByPostWithCursor(ctx context.Context, params storage.GetCommentsParams) ([]model.Comment, error) {
	if params.Limit <= 0 {
		params.Limit = service.DefaultCommentsLimit
	}

	qb, err := getCommentsQueryBuilder(params)
	if err != nil {
		return nil, err
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildingQuery, err)
	}

	out := make([]model.Comment, 0, params.Limit)
	if err := s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("exec select comments with cursor: %w", err)
	}

	if params.Direction == storage.DirectionBefore {
		slices.Reverse(out)
	}
	return out, nil
}
