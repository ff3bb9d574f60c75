package instagramimpl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/orgball2608/insta-post-exporter/internal/instagram"
	mock_instagram "github.com/orgball2608/insta-post-exporter/internal/instagram/mocks"
	"github.com/orgball2608/insta-post-exporter/pkg/errors"
	"github.com/orgball2608/insta-post-exporter/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestClient(t *testing.T) (*InstaImpl, *mock_instagram.MockPageFetcher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	fetcher := mock_instagram.NewMockPageFetcher(ctrl)
	return New(Opts{Fetcher: fetcher, Logger: logger.NewNop()}), fetcher
}

func shortCodes(t *testing.T, from, n int) []string {
	t.Helper()
	codes := make([]string, 0, n)
	for i := from; i < from+n; i++ {
		codes = append(codes, fmt.Sprintf("C%03d", i))
	}
	return codes
}

func TestFetchPosts_StopsAtCap(t *testing.T) {
	t.Parallel()
	ig, fetcher := newTestClient(t)

	// A third page exists but must never be requested.
	gomock.InOrder(
		fetcher.EXPECT().FetchPage(gomock.Any(), "nasa", "").
			Return(jsonPage(t, postNodes(0, 10), true, "c1"), nil),
		fetcher.EXPECT().FetchPage(gomock.Any(), "nasa", "c1").
			Return(jsonPage(t, postNodes(10, 10), true, "c2"), nil),
	)

	posts, err := ig.FetchPosts(context.Background(), "nasa", 15)
	require.NoError(t, err)
	require.Len(t, posts, 15)

	got := make([]string, 0, len(posts))
	for _, p := range posts {
		got = append(got, *p.ShortCode)
	}
	assert.Equal(t, shortCodes(t, 0, 15), got)
}

func TestFetchPosts_CapOnPageBoundary(t *testing.T) {
	t.Parallel()
	ig, fetcher := newTestClient(t)

	fetcher.EXPECT().FetchPage(gomock.Any(), "nasa", "").
		Return(jsonPage(t, postNodes(0, 10), true, "c1"), nil)

	posts, err := ig.FetchPosts(context.Background(), "nasa", 10)
	require.NoError(t, err)
	assert.Len(t, posts, 10)
}

func TestFetchPosts_Exhaustion(t *testing.T) {
	t.Parallel()
	ig, fetcher := newTestClient(t)

	gomock.InOrder(
		fetcher.EXPECT().FetchPage(gomock.Any(), "nasa", "").
			Return(jsonPage(t, postNodes(0, 10), true, "c1"), nil),
		fetcher.EXPECT().FetchPage(gomock.Any(), "nasa", "c1").
			Return(jsonPage(t, postNodes(10, 7), false, nil), nil),
	)

	posts, err := ig.FetchPosts(context.Background(), "nasa", 0)
	require.NoError(t, err)
	require.Len(t, posts, 17)

	got := make([]string, 0, len(posts))
	for _, p := range posts {
		got = append(got, *p.ShortCode)
	}
	assert.Equal(t, shortCodes(t, 0, 17), got)
	for _, p := range posts {
		assert.Equal(t, "nasa", *p.OwnerUsername)
	}
}

func TestFetchPosts_DefensiveStops(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		cursor any
	}{
		{"null cursor", nil},
		{"empty cursor", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ig, fetcher := newTestClient(t)

			fetcher.EXPECT().FetchPage(gomock.Any(), "nasa", "").
				Return(jsonPage(t, postNodes(0, 10), true, tt.cursor), nil)

			posts, err := ig.FetchPosts(context.Background(), "nasa", 0)
			require.NoError(t, err)
			assert.Len(t, posts, 10)
		})
	}
}

func TestFetchPosts_StalledCursor(t *testing.T) {
	t.Parallel()
	ig, fetcher := newTestClient(t)

	gomock.InOrder(
		fetcher.EXPECT().FetchPage(gomock.Any(), "nasa", "").
			Return(jsonPage(t, postNodes(0, 10), true, "c1"), nil),
		fetcher.EXPECT().FetchPage(gomock.Any(), "nasa", "c1").
			Return(jsonPage(t, postNodes(10, 10), true, "c1"), nil),
	)

	posts, err := ig.FetchPosts(context.Background(), "nasa", 0)
	require.NoError(t, err)
	assert.Len(t, posts, 20)
}

func TestFetchPosts_EmptyPageStops(t *testing.T) {
	t.Parallel()
	ig, fetcher := newTestClient(t)

	gomock.InOrder(
		fetcher.EXPECT().FetchPage(gomock.Any(), "nasa", "").
			Return(jsonPage(t, postNodes(0, 10), true, "c1"), nil),
		fetcher.EXPECT().FetchPage(gomock.Any(), "nasa", "c1").
			Return(jsonPage(t, nil, true, "c2"), nil),
	)

	posts, err := ig.FetchPosts(context.Background(), "nasa", 0)
	require.NoError(t, err)
	assert.Len(t, posts, 10)
}

func TestFetchPosts_EmptyProfile(t *testing.T) {
	t.Parallel()
	ig, fetcher := newTestClient(t)

	fetcher.EXPECT().FetchPage(gomock.Any(), "nasa", "").
		Return(jsonPage(t, nil, false, nil), nil)

	posts, err := ig.FetchPosts(context.Background(), "nasa", 5)
	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestFetchPosts_EmbeddedPage(t *testing.T) {
	t.Parallel()
	ig, fetcher := newTestClient(t)

	blob := string(mustJSON(t, profileDoc(postNodes(0, 4), false, nil)))
	fetcher.EXPECT().FetchPage(gomock.Any(), "nasa", "").
		Return(htmlPage(t, `<script type="application/json">`+blob+`</script>`), nil)

	posts, err := ig.FetchPosts(context.Background(), "nasa", 0)
	require.NoError(t, err)
	assert.Len(t, posts, 4)
}

func TestFetchPosts_Errors(t *testing.T) {
	t.Parallel()

	t.Run("first page error", func(t *testing.T) {
		t.Parallel()
		ig, fetcher := newTestClient(t)

		fetcher.EXPECT().FetchPage(gomock.Any(), "ghost", "").
			Return(nil, instagram.ProfileNotFound("ghost"))

		posts, err := ig.FetchPosts(context.Background(), "ghost", 0)
		require.Error(t, err)
		assert.Nil(t, posts)
		assert.True(t, errors.IsProfileNotFound(err))
	})

	t.Run("second page error discards earlier pages", func(t *testing.T) {
		t.Parallel()
		ig, fetcher := newTestClient(t)

		gomock.InOrder(
			fetcher.EXPECT().FetchPage(gomock.Any(), "nasa", "").
				Return(jsonPage(t, postNodes(0, 10), true, "c1"), nil),
			fetcher.EXPECT().FetchPage(gomock.Any(), "nasa", "c1").
				Return(nil, instagram.NetworkFailure("nasa", fmt.Errorf("connection reset by peer"))),
		)

		posts, err := ig.FetchPosts(context.Background(), "nasa", 0)
		require.Error(t, err)
		assert.Nil(t, posts)
		assert.True(t, errors.IsNetworkFailure(err))
	})

	t.Run("unparseable page", func(t *testing.T) {
		t.Parallel()
		ig, fetcher := newTestClient(t)

		fetcher.EXPECT().FetchPage(gomock.Any(), "nasa", "").
			Return(htmlPage(t, `<p>Log in to see photos</p>`), nil)

		_, err := ig.FetchPosts(context.Background(), "nasa", 0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrUnparseableResponse))
	})
}

func TestFetchPosts_InvalidInput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		maxPosts int
	}{
		{"empty handle", "", 0},
		{"leading at sign", "@nasa", 0},
		{"whitespace", "na sa", 0},
		{"path separator", "nasa/../x", 0},
		{"too long", strings.Repeat("a", 31), 0},
		{"negative cap", "nasa", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			// No expectations: any fetch fails the test.
			ig, _ := newTestClient(t)

			posts, err := ig.FetchPosts(context.Background(), tt.username, tt.maxPosts)
			require.Error(t, err)
			assert.Nil(t, posts)
			assert.True(t, errors.IsInvalidInput(err))
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"nasa", "natgeo", "the.rock", "_under_score_", "a", strings.Repeat("z", 30)} {
		assert.NoError(t, ValidateUsername(name), name)
	}
}

func TestFetchPosts_OverHTTP(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get(cursorParam) {
		case "":
			w.Write(mustJSON(t, profileDoc(postNodes(0, 12), true, "page-2")))
		case "page-2":
			w.Write(mustJSON(t, profileDoc(postNodes(12, 12), true, "page-3")))
		default:
			w.Write(mustJSON(t, profileDoc(postNodes(24, 12), false, nil)))
		}
	}))
	defer srv.Close()

	fetcher, err := NewAcquirer(AcquirerOpts{BaseURL: srv.URL, Timeout: time.Second}, logger.NewNop())
	require.NoError(t, err)
	ig := New(Opts{Fetcher: fetcher, Logger: logger.NewNop()})

	posts, err := ig.FetchPosts(context.Background(), "nasa", 0)
	require.NoError(t, err)
	assert.Len(t, posts, 36)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "https://www.instagram.com/p/C035/", *posts[35].PostURL)
}
