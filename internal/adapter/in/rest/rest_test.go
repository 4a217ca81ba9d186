package rest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	businmemory "myblog/internal/adapter/out/pubsub/inmemory"
	memstore "myblog/internal/adapter/out/storage/inmemory"
	"myblog/internal/model"
	"myblog/internal/service"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	posts := memstore.NewPostStorage()
	comments := memstore.NewCommentStorage()
	bus := businmemory.New(4)

	postSvc := service.NewPostService(posts)
	commentSvc := service.NewCommentService(comments, posts, bus)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(postSvc, commentSvc, 100*time.Millisecond, log))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createPost(t *testing.T, srv *httptest.Server, title, body string) model.Post {
	t.Helper()

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/posts", map[string]any{
		"title": title,
		"body":  body,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[model.Post](t, resp)
}

func TestCreatePost(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	t.Run("created with defaults", func(t *testing.T) {
		post := createPost(t, srv, "hello", "world")
		require.NotZero(t, post.ID)
		require.Equal(t, "hello", post.Title)
		require.Equal(t, "world", post.Body)
		require.True(t, post.CommentsEnabled)
		require.False(t, post.CreatedAt.IsZero())
	})

	t.Run("missing title rejected", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/posts", map[string]any{"body": "b"})
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed json rejected", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/posts", "application/json", strings.NewReader("{"))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetPost(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	post := createPost(t, srv, "t", "b")

	t.Run("found", func(t *testing.T) {
		resp, err := http.Get(fmt.Sprintf("%s/api/posts/%d", srv.URL, post.ID))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := decode[model.Post](t, resp)
		require.Equal(t, post.ID, got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/posts/404")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("bad id", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/posts/abc")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

type postPage struct {
	Items           []model.Post `json:"items"`
	Count           int          `json:"count"`
	StartCursor     *string      `json:"start_cursor"`
	EndCursor       *string      `json:"end_cursor"`
	HasNextPage     bool         `json:"has_next_page"`
	HasPreviousPage bool         `json:"has_previous_page"`
}

func TestListPosts_Pagination(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	for i := 1; i <= 5; i++ {
		createPost(t, srv, fmt.Sprintf("t%d", i), "b")
	}

	resp, err := http.Get(srv.URL + "/api/posts?limit=2")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decode[postPage](t, resp)

	require.Equal(t, 2, first.Count)
	require.True(t, first.HasNextPage)
	require.False(t, first.HasPreviousPage)
	require.NotNil(t, first.EndCursor)
	require.Equal(t, int64(5), first.Items[0].ID)
	require.Equal(t, int64(4), first.Items[1].ID)

	resp, err = http.Get(srv.URL + "/api/posts?limit=2&after=" + *first.EndCursor)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	second := decode[postPage](t, resp)

	require.Equal(t, 2, second.Count)
	require.True(t, second.HasPreviousPage)
	require.Equal(t, int64(3), second.Items[0].ID)
	require.Equal(t, int64(2), second.Items[1].ID)

	t.Run("both cursors rejected", func(t *testing.T) {
		url := fmt.Sprintf("%s/api/posts?after=%s&before=%s", srv.URL, *first.EndCursor, *first.EndCursor)
		resp, err := http.Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad limit rejected", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/posts?limit=abc")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestComments(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	post := createPost(t, srv, "t", "b")
	commentsURL := fmt.Sprintf("%s/api/posts/%d/comments", srv.URL, post.ID)

	t.Run("create", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, commentsURL, map[string]any{"body": "nice post"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		c := decode[model.Comment](t, resp)
		require.Equal(t, post.ID, c.PostID)
		require.Equal(t, "nice post", c.Body)
	})

	t.Run("missing post", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, srv.URL+"/api/posts/404/comments", map[string]any{"body": "x"})
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("empty body rejected", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, commentsURL, map[string]any{})
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("list", func(t *testing.T) {
		resp, err := http.Get(commentsURL)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var page struct {
			Items []model.Comment `json:"items"`
			Count int             `json:"count"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
		resp.Body.Close()
		require.Equal(t, 1, page.Count)
	})

	t.Run("disabled returns conflict", func(t *testing.T) {
		resp := doJSON(t, http.MethodPut,
			fmt.Sprintf("%s/api/posts/%d/comments-enabled", srv.URL, post.ID),
			map[string]any{"enabled": false},
		)
		resp.Body.Close()
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp = doJSON(t, http.MethodPost, commentsURL, map[string]any{"body": "too late"})
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestStreamComments(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	post := createPost(t, srv, "t", "b")

	resp, err := http.Get(fmt.Sprintf("%s/api/posts/%d/comments/stream", srv.URL, post.ID))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	created := doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/api/posts/%d/comments", srv.URL, post.ID),
		map[string]any{"body": "live"},
	)
	require.Equal(t, http.StatusCreated, created.StatusCode)
	created.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	deadline := time.After(5 * time.Second)
	events := make(chan string, 1)
	go func() {
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, "data: ") {
				events <- strings.TrimPrefix(line, "data: ")
				return
			}
		}
	}()

	select {
	case data := <-events:
		var c model.Comment
		require.NoError(t, json.Unmarshal([]byte(data), &c))
		require.Equal(t, post.ID, c.PostID)
		require.Equal(t, "live", c.Body)
	case <-deadline:
		t.Fatal("no comment event received")
	}
}

func TestStreamComments_MissingPost(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/posts/404/comments/stream")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
