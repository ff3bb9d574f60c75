package instagramimpl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/orgball2608/insta-post-exporter/internal/instagram"
	"github.com/orgball2608/insta-post-exporter/internal/instagram/jsonpath"
	"github.com/orgball2608/insta-post-exporter/pkg/logger"
)

// Document is a decoded profile payload in canonical {"data":{"user":...}} form.
type Document = map[string]any

// Source records which transport shape a document was resolved from.
type Source string

const (
	SourceDirect   Source = "json"
	SourceEmbedded Source = "html"
)

type attemptKind int

const (
	attemptDirect attemptKind = iota
	attemptNeedsFallback
	attemptFailed
)

// attempt is the outcome of decoding the body as a JSON document.
type attempt struct {
	kind attemptKind
	doc  Document
	err  error
}

var (
	sharedDataPattern = regexp.MustCompile(`(?s)window\._sharedData\s*=\s*(\{.*?\})\s*;\s*</script>`)

	errNoEmbeddedJSON = errors.New("no embedded JSON blob with profile data")
)

type Resolver struct {
	logger logger.Logger
}

func NewResolver(log logger.Logger) *Resolver {
	return &Resolver{logger: log.WithComponent("Resolver")}
}

// Resolve turns a raw page response into a validated document. The body is
// first decoded as JSON; only when that fails to decode or lacks the user node
// is it scanned as HTML for an embedded JSON blob.
func (r *Resolver) Resolve(raw *instagram.RawResponse) (Document, Source, error) {
	direct := decodeDirect(raw.Body)
	if direct.kind == attemptDirect {
		return direct.doc, SourceDirect, nil
	}

	r.logger.Debug("JSON endpoint parsing failed, falling back to HTML parsing",
		"username", raw.Username,
		"content_type", raw.ContentType,
		"reason", direct.err,
	)

	doc, err := findEmbeddedDocument(raw.Body)
	if err != nil {
		return nil, "", instagram.UnparseableResponse(raw.Username, err)
	}
	return doc, SourceEmbedded, nil
}

func decodeDirect(body []byte) attempt {
	v, err := decodeJSON(body)
	if err != nil {
		return attempt{kind: attemptFailed, err: err}
	}
	doc, err := canonicalize(v)
	if err != nil {
		return attempt{kind: attemptNeedsFallback, err: err}
	}
	return attempt{kind: attemptDirect, doc: doc}
}

// findEmbeddedDocument checks the window._sharedData assignment first, then
// every <script> body that looks like a JSON object.
func findEmbeddedDocument(body []byte) (Document, error) {
	if m := sharedDataPattern.FindSubmatch(body); m != nil {
		if v, err := decodeJSON(m[1]); err == nil {
			if doc, err := canonicalize(v); err == nil {
				return doc, nil
			}
		}
	}

	html, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var found Document
	html.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		if !strings.HasPrefix(text, "{") {
			return true
		}
		v, err := decodeJSON([]byte(text))
		if err != nil {
			return true
		}
		doc, err := canonicalize(v)
		if err != nil {
			return true
		}
		found = doc
		return false
	})

	if found == nil {
		return nil, errNoEmbeddedJSON
	}
	return found, nil
}

// canonicalize accepts the known roots of the user node and rewrites them to
// data.user, then validates the result with ExtractUser.
func canonicalize(v any) (Document, error) {
	root, ok := v.(map[string]any)
	if !ok {
		return nil, instagram.MissingUserData("document object")
	}

	for _, path := range [][]any{
		{"graphql", "user"},
		{"entry_data", "ProfilePage", 0, "graphql", "user"},
	} {
		if jsonpath.Get(root, "data", "user").Present() {
			break
		}
		if user, ok := jsonpath.Get(root, path...).Object(); ok {
			root = Document{"data": map[string]any{"user": user}}
		}
	}

	if _, err := ExtractUser(root); err != nil {
		return nil, err
	}
	return root, nil
}

// decodeJSON decodes exactly one JSON value, keeping numbers as json.Number.
func decodeJSON(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("decode json: trailing data after document")
	}
	return v, nil
}
