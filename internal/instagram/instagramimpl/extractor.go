package instagramimpl

import (
	"github.com/orgball2608/insta-post-exporter/internal/domain"
	"github.com/orgball2608/insta-post-exporter/internal/instagram"
	"github.com/orgball2608/insta-post-exporter/internal/instagram/jsonpath"
)

// timelineKey is the edge container holding the profile's posts.
const timelineKey = "edge_owner_to_timeline_media"

// ExtractUser locates document -> data -> user. Every missing step is reported
// as MissingUserData so the resolver can probe arbitrary documents safely.
func ExtractUser(doc any) (jsonpath.Value, error) {
	data := jsonpath.Get(doc, "data")
	if !data.Present() {
		return jsonpath.Value{}, instagram.MissingUserData("data")
	}
	user := data.Get("user")
	if _, ok := user.Object(); !ok {
		return jsonpath.Value{}, instagram.MissingUserData("data.user")
	}
	return user, nil
}

// ExtractPageInfo reads the pagination node. A missing node means a single page.
func ExtractPageInfo(user jsonpath.Value) domain.PageInfo {
	pageInfo := user.Get(timelineKey, "page_info")

	var info domain.PageInfo
	if b := pageInfo.Get("has_next_page").Bool(); b != nil {
		info.HasNextPage = *b
	}
	if c := pageInfo.Get("end_cursor").String(); c != nil {
		info.EndCursor = *c
	}
	return info
}

// ExtractEdges returns the post node of every edge, in page order. Edges
// without a node object are skipped.
func ExtractEdges(user jsonpath.Value) []jsonpath.Value {
	edges, ok := user.Get(timelineKey, "edges").Array()
	if !ok {
		return nil
	}

	nodes := make([]jsonpath.Value, 0, len(edges))
	for i := range edges {
		node := jsonpath.Get(edges, i, "node")
		if _, ok := node.Object(); !ok {
			continue
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// ExtractOwner builds the owner context for the posts of a page. The handle
// being fetched is authoritative, whatever the user node reports.
func ExtractOwner(username string) domain.Owner {
	return domain.Owner{Username: username}
}
