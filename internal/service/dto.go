package service

import (
	"fmt"

	"myblog/internal/adapter/out/storage"
	"myblog/pkg/pagination"
)

type CreatePostRequest struct {
	Title           string `validate:"required"`
	Body            string `validate:"required"`
	CommentsEnabled bool
}

type CreateCommentRequest struct {
	PostID int64  `validate:"required,gt=0"`
	Body   string `validate:"required"`
}

func validatePagination(in pagination.PageRequest) error {
	beforeCursorProvided := in.BeforeCursor != nil && *in.BeforeCursor != ""
	afterCursorProvided := in.AfterCursor != nil && *in.AfterCursor != ""

	if beforeCursorProvided && afterCursorProvided {
		return fmt.Errorf("both cursors provided: %w", ErrInvalidRequest)
	}
	return nil
}

func toKeyset(in pagination.PageRequest) (pagination.Cursor, storage.Direction, error) {
	before, err := pagination.Decode(in.BeforeCursor)
	if err != nil {
		return pagination.Cursor{}, storage.DirectionUnspecified, fmt.Errorf("decoding before-cursor: %w: %v", ErrInvalidRequest, err)
	}

	after, err := pagination.Decode(in.AfterCursor)
	if err != nil {
		return pagination.Cursor{}, storage.DirectionUnspecified, fmt.Errorf("decoding after-cursor: %w: %v", ErrInvalidRequest, err)
	}

	if before == nil && after == nil {
		return pagination.Cursor{}, storage.DirectionUnspecified, fmt.Errorf("cursor is required: %w", ErrInvalidRequest)
	}

	if before != nil {
		return *before, storage.DirectionBefore, nil
	}
	return *after, storage.DirectionAfter, nil
}

func toGetPostsParams(in pagination.PageRequest) (storage.GetPostsParams, error) {
	cursor, dir, err := toKeyset(in)
	if err != nil {
		return storage.GetPostsParams{}, err
	}
	return storage.GetPostsParams{
		Cursor:    cursor,
		Direction: dir,
		Limit:     in.Limit,
	}, nil
}

func toGetCommentsParams(postID int64, in pagination.PageRequest) (storage.GetCommentsParams, error) {
	cursor, dir, err := toKeyset(in)
	if err != nil {
		return storage.GetCommentsParams{}, err
	}
	return storage.GetCommentsParams{
		PostID:    postID,
		Cursor:    cursor,
		Direction: dir,
		Limit:     in.Limit,
	}, nil
}

// newPage assembles Items, Count and the boundary cursors from an
// already-trimmed, newest-first result set. Callers set the page flags.
func newPage[T any](items []T, cursorOf func(T) pagination.Cursor) pagination.Page[T] {
	var page pagination.Page[T]

	if len(items) == 0 {
		return page
	}

	page.Items = items
	page.Count = len(items)

	startCursor := cursorOf(items[0])
	endCursor := cursorOf(items[len(items)-1])
	page.StartCursor, page.EndCursor = startCursor.Encode(), endCursor.Encode()
	return page
}

// trimPeek removes the extra row fetched to detect an adjacent page.
// Items arrive newest first; on a before-page the extra row is the newest
// one, so it is dropped from the front.
func trimPeek[T any](items []T, limit int, before bool) ([]T, bool) {
	if len(items) <= limit {
		return items, false
	}
	if before {
		return items[len(items)-limit:], true
	}
	return items[:limit], true
}
