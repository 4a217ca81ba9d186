package sqlite

import (
	"context"
	"testing"
	"time"

	"myblog/internal/adapter/out/storage"
	"myblog/internal/model"
	"myblog/internal/service"
	"myblog/pkg/pagination"
	"myblog/pkg/tableinfo"

	"github.com/stretchr/testify/require"
)

func TestPostStorage_CreateAndGetByID(t *testing.T) {
	db := newTestDB(t)
	st := NewPostStorage(db)
	ctx := context.Background()

	tests := []struct {
		name   string
		input  model.Post
		wantID int64
	}{
		{
			name:   "first post",
			input:  model.Post{Title: "t1", Body: "b1", CommentsEnabled: true},
			wantID: 1,
		},
		{
			name:   "second post",
			input:  model.Post{Title: "t2", Body: "b2", CommentsEnabled: false},
			wantID: 2,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			out, err := st.CreatePost(ctx, tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.wantID, out.ID)
			require.Equal(t, tt.input.Title, out.Title)
			require.Equal(t, tt.input.Body, out.Body)
			require.Equal(t, tt.input.CommentsEnabled, out.CommentsEnabled)
			require.WithinDuration(t, time.Now(), out.CreatedAt, 2*time.Second)

			got, err := st.GetPostByID(ctx, tt.wantID)
			require.NoError(t, err)
			require.Equal(t, out, got)
		})
	}
}

func TestPostStorage_GetPostByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	st := NewPostStorage(db)

	_, err := st.GetPostByID(context.Background(), 404)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestPostStorage_GetPosts_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	st := NewPostStorage(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := st.CreatePost(ctx, model.Post{Title: "t", Body: "b"})
		require.NoError(t, err)
	}

	out, err := st.GetPosts(ctx, 3)
	require.NoError(t, err)
	require.Len(t, out, 3)
	require.Equal(t, []int64{5, 4, 3}, []int64{out[0].ID, out[1].ID, out[2].ID})
}

func TestPostStorage_GetPostsWithCursor(t *testing.T) {
	db := newTestDB(t)
	st := NewPostStorage(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := st.CreatePost(ctx, model.Post{Title: "t", Body: "b"})
		require.NoError(t, err)
	}

	all, err := st.GetPosts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 5)

	cursorAt := func(p model.Post) pagination.Cursor {
		return pagination.Cursor{CreatedAt: p.CreatedAt, ID: p.ID}
	}

	t.Run("after", func(t *testing.T) {
		// all[1] is post 4; rows strictly older follow.
		out, err := st.GetPostsWithCursor(ctx, storage.GetPostsParams{
			Cursor:    cursorAt(all[1]),
			Direction: storage.DirectionAfter,
			Limit:     2,
		})
		require.NoError(t, err)
		require.Len(t, out, 2)
		require.Equal(t, int64(3), out[0].ID)
		require.Equal(t, int64(2), out[1].ID)
	})

	t.Run("before", func(t *testing.T) {
		// all[3] is post 2; rows strictly newer, returned newest first.
		out, err := st.GetPostsWithCursor(ctx, storage.GetPostsParams{
			Cursor:    cursorAt(all[3]),
			Direction: storage.DirectionBefore,
			Limit:     2,
		})
		require.NoError(t, err)
		require.Len(t, out, 2)
		require.Equal(t, int64(4), out[0].ID)
		require.Equal(t, int64(3), out[1].ID)
	})

	t.Run("direction unset", func(t *testing.T) {
		_, err := st.GetPostsWithCursor(ctx, storage.GetPostsParams{
			Cursor: cursorAt(all[0]),
			Limit:  2,
		})
		require.ErrorIs(t, err, storage.ErrDirectionUnset)
	})
}

func TestPostStorage_SetCommentsEnabled(t *testing.T) {
	db := newTestDB(t)
	st := NewPostStorage(db)
	ctx := context.Background()

	post, err := st.CreatePost(ctx, model.Post{Title: "t", Body: "b", CommentsEnabled: true})
	require.NoError(t, err)

	require.NoError(t, st.SetCommentsEnabled(ctx, post.ID, false))

	got, err := st.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	require.False(t, got.CommentsEnabled)

	require.ErrorIs(t, st.SetCommentsEnabled(ctx, 404, true), service.ErrNotFound)
}

func Test_getPostsQueryBuilder(t *testing.T) {
	cur := pagination.Cursor{
		ID:        321,
		CreatedAt: time.Date(2025, 9, 24, 12, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name      string
		params    storage.GetPostsParams
		wantOrder string
		wantOp    string
		wantErr   bool
	}{
		{
			name: "after",
			params: storage.GetPostsParams{
				Cursor:    cur,
				Direction: storage.DirectionAfter,
				Limit:     20,
			},
			wantOrder: "ORDER BY " + tableinfo.PostCreatedAtColumn + " DESC, " + tableinfo.PostIDColumn + " DESC",
			wantOp:    "<",
		},
		{
			name: "before",
			params: storage.GetPostsParams{
				Cursor:    cur,
				Direction: storage.DirectionBefore,
				Limit:     5,
			},
			wantOrder: "ORDER BY " + tableinfo.PostCreatedAtColumn + " ASC, " + tableinfo.PostIDColumn + " ASC",
			wantOp:    ">",
		},
		{
			name:    "invalid direction",
			params:  storage.GetPostsParams{Cursor: cur, Limit: 3},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			qb, err := getPostsQueryBuilder(tt.params)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			sql, _, err := qb.ToSql()
			require.NoError(t, err)

			require.Contains(t, sql, tt.wantOrder)
			require.Contains(t, sql, tt.wantOp)
		})
	}
}
