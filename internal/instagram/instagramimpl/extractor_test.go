package instagramimpl

import (
	"testing"

	"github.com/orgball2608/insta-post-exporter/internal/domain"
	"github.com/orgball2608/insta-post-exporter/internal/instagram/jsonpath"
	"github.com/orgball2608/insta-post-exporter/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeDoc(t *testing.T, doc any) any {
	t.Helper()
	v, err := decodeJSON(mustJSON(t, doc))
	require.NoError(t, err)
	return v
}

func TestExtractUser(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		doc     any
		wantErr string
	}{
		{"nil document", nil, `"data"`},
		{"not an object", []any{1, 2}, `"data"`},
		{"no data", map[string]any{"graphql": map[string]any{}}, `"data"`},
		{"null data", map[string]any{"data": nil}, `"data"`},
		{"no user", map[string]any{"data": map[string]any{}}, `"data.user"`},
		{"null user", map[string]any{"data": map[string]any{"user": nil}}, `"data.user"`},
		{"user not an object", map[string]any{"data": map[string]any{"user": "nasa"}}, `"data.user"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ExtractUser(tt.doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrMissingUserData))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		user, err := ExtractUser(decodeDoc(t, profileDoc(postNodes(0, 2), false, nil)))
		require.NoError(t, err)
		assert.Equal(t, ptr("nasa"), user.Get("username").String())
	})
}

func TestExtractPageInfo(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		user map[string]any
		want domain.PageInfo
	}{
		{
			name: "next page",
			user: map[string]any{timelineKey: map[string]any{
				"page_info": map[string]any{"has_next_page": true, "end_cursor": "QVFB"},
			}},
			want: domain.PageInfo{HasNextPage: true, EndCursor: "QVFB"},
		},
		{
			name: "null cursor",
			user: map[string]any{timelineKey: map[string]any{
				"page_info": map[string]any{"has_next_page": true, "end_cursor": nil},
			}},
			want: domain.PageInfo{HasNextPage: true},
		},
		{
			name: "last page",
			user: map[string]any{timelineKey: map[string]any{
				"page_info": map[string]any{"has_next_page": false, "end_cursor": "QVFB"},
			}},
			want: domain.PageInfo{EndCursor: "QVFB"},
		},
		{
			name: "no page info",
			user: map[string]any{timelineKey: map[string]any{"edges": []any{}}},
			want: domain.PageInfo{},
		},
		{
			name: "no timeline",
			user: map[string]any{"id": "1"},
			want: domain.PageInfo{},
		},
		{
			name: "mistyped flag",
			user: map[string]any{timelineKey: map[string]any{
				"page_info": map[string]any{"has_next_page": "yes"},
			}},
			want: domain.PageInfo{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExtractPageInfo(jsonpath.Get(tt.user)))
		})
	}
}

func TestExtractEdges(t *testing.T) {
	t.Parallel()

	t.Run("page order", func(t *testing.T) {
		t.Parallel()
		user, err := ExtractUser(decodeDoc(t, profileDoc(postNodes(0, 3), false, nil)))
		require.NoError(t, err)

		nodes := ExtractEdges(user)
		require.Len(t, nodes, 3)
		for i, n := range nodes {
			assert.Equal(t, ptr(postNode(i)["shortcode"].(string)), n.Get("shortcode").String())
		}
	})

	t.Run("malformed edges skipped", func(t *testing.T) {
		t.Parallel()
		user := jsonpath.Get(map[string]any{timelineKey: map[string]any{
			"edges": []any{
				map[string]any{"node": map[string]any{"shortcode": "A"}},
				map[string]any{"node": nil},
				"garbage",
				map[string]any{"cursor": "x"},
				map[string]any{"node": map[string]any{"shortcode": "B"}},
			},
		}})

		nodes := ExtractEdges(user)
		require.Len(t, nodes, 2)
		assert.Equal(t, ptr("A"), nodes[0].Get("shortcode").String())
		assert.Equal(t, ptr("B"), nodes[1].Get("shortcode").String())
	})

	t.Run("no edges", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, ExtractEdges(jsonpath.Get(map[string]any{})))
		assert.Empty(t, ExtractEdges(jsonpath.Get(map[string]any{timelineKey: map[string]any{"edges": nil}})))
	})
}

func TestExtractOwner(t *testing.T) {
	t.Parallel()
	assert.Equal(t, domain.Owner{Username: "nasa"}, ExtractOwner("nasa"))
}
