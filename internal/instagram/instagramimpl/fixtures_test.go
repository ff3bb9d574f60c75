package instagramimpl

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/orgball2608/insta-post-exporter/internal/instagram"
	"github.com/orgball2608/insta-post-exporter/internal/instagram/jsonpath"
	"github.com/stretchr/testify/require"
)

// postNode returns a raw timeline node with every known field populated.
func postNode(i int) map[string]any {
	return map[string]any{
		"__typename":         "GraphImage",
		"id":                 fmt.Sprintf("%d", 3000+i),
		"shortcode":          fmt.Sprintf("C%03d", i),
		"is_video":           false,
		"has_audio":          false,
		"display_url":        fmt.Sprintf("https://cdn.example.com/%d.jpg", i),
		"dimensions":         map[string]any{"width": 1080, "height": 1350},
		"owner":              map[string]any{"id": "528817151", "username": "nasa"},
		"taken_at_timestamp": 1706000000 + i,
		"edge_media_to_caption": map[string]any{
			"edges": []any{map[string]any{"node": map[string]any{"text": fmt.Sprintf("post %d #space", i)}}},
		},
		"edge_liked_by":         map[string]any{"count": 100 + i},
		"edge_media_to_comment": map[string]any{"count": 10 + i},
		"comments_disabled":     false,
		"is_affiliate":          false,
		"is_paid_partnership":   false,
		"location":              map[string]any{"name": "Houston, Texas"},
		"viewer_can_reshare":    true,
		"product_type":          "feed",
	}
}

func postNodes(from, n int) []map[string]any {
	nodes := make([]map[string]any, 0, n)
	for i := from; i < from+n; i++ {
		nodes = append(nodes, postNode(i))
	}
	return nodes
}

// profileDoc builds a profile document. A nil cursor is encoded as JSON null.
func profileDoc(nodes []map[string]any, hasNext bool, cursor any) map[string]any {
	edges := make([]any, 0, len(nodes))
	for _, n := range nodes {
		edges = append(edges, map[string]any{"node": n})
	}
	return map[string]any{
		"data": map[string]any{
			"user": map[string]any{
				"id":       "528817151",
				"username": "nasa",
				"edge_owner_to_timeline_media": map[string]any{
					"count": 4000,
					"page_info": map[string]any{
						"has_next_page": hasNext,
						"end_cursor":    cursor,
					},
					"edges": edges,
				},
			},
		},
	}
}

func mustJSON(t testing.TB, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func jsonPage(t testing.TB, nodes []map[string]any, hasNext bool, cursor any) *instagram.RawResponse {
	t.Helper()
	return &instagram.RawResponse{
		Username:    "nasa",
		StatusCode:  200,
		ContentType: "application/json",
		Body:        mustJSON(t, profileDoc(nodes, hasNext, cursor)),
	}
}

func htmlPage(t testing.TB, script string) *instagram.RawResponse {
	t.Helper()
	return &instagram.RawResponse{
		Username:    "nasa",
		StatusCode:  200,
		ContentType: "text/html; charset=utf-8",
		Body: []byte(`<!DOCTYPE html><html><head><title>NASA</title>` +
			`<script>console.log("boot")</script></head><body>` + script + `</body></html>`),
	}
}

// nodeValue round-trips a fixture through the production decoder so numbers
// arrive as json.Number, as they do from a real page.
func nodeValue(t testing.TB, node map[string]any) jsonpath.Value {
	t.Helper()
	v, err := decodeJSON(mustJSON(t, node))
	require.NoError(t, err)
	return jsonpath.Get(v)
}

func ptr[T any](v T) *T {
	return &v
}
