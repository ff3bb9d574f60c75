package instagramimpl

import (
	"context"
	"regexp"

	"github.com/orgball2608/insta-post-exporter/internal/domain"
	"github.com/orgball2608/insta-post-exporter/internal/instagram"
	"github.com/orgball2608/insta-post-exporter/pkg/config"
	"github.com/orgball2608/insta-post-exporter/pkg/logger"
	"go.uber.org/fx"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._]{1,30}$`)

type Opts struct {
	fx.In

	Fetcher instagram.PageFetcher
	Logger  logger.Logger
}

type InstaImpl struct {
	fetcher  instagram.PageFetcher
	resolver *Resolver
	logger   logger.Logger
}

func New(opts Opts) *InstaImpl {
	return &InstaImpl{
		fetcher:  opts.Fetcher,
		resolver: NewResolver(opts.Logger),
		logger:   opts.Logger.WithComponent("Instagram"),
	}
}

var _ instagram.Client = (*InstaImpl)(nil)

type FetcherOpts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// NewFetcher builds the HTTP page fetcher from the scraper settings.
func NewFetcher(opts FetcherOpts) (instagram.PageFetcher, error) {
	sc := opts.Config.Scraper
	return NewAcquirer(AcquirerOpts{
		BaseURL:   sc.BaseURL,
		UserAgent: sc.UserAgent,
		Timeout:   opts.Config.RequestTimeout(),
		Proxy:     sc.Proxy,
	}, opts.Logger)
}

// ValidateUsername rejects handles that cannot name a public profile.
func ValidateUsername(username string) error {
	if username == "" {
		return instagram.InvalidInput("username must not be empty")
	}
	if !usernamePattern.MatchString(username) {
		return instagram.InvalidInput("invalid username '%s'", username)
	}
	return nil
}

// FetchPosts requests pages strictly in sequence, since each cursor is only
// known once the previous page is parsed. Pagination stops when the page
// reports no next page, has no usable cursor, yields no posts, or maxPosts is
// reached. Any page error aborts the whole fetch; no partial result is returned.
func (ig *InstaImpl) FetchPosts(ctx context.Context, username string, maxPosts int) ([]domain.PostRecord, error) {
	if err := ValidateUsername(username); err != nil {
		return nil, err
	}
	if maxPosts < 0 {
		return nil, instagram.InvalidInput("max posts must not be negative, got %d", maxPosts)
	}

	posts := []domain.PostRecord{}
	cursor := ""

	for page := 1; ; page++ {
		ig.logger.Debug("Fetching page", "username", username, "page", page, "cursor", cursor)

		records, info, err := ig.fetchPage(ctx, username, cursor)
		if err != nil {
			return nil, err
		}
		posts = append(posts, records...)

		if maxPosts > 0 && len(posts) >= maxPosts {
			ig.logger.Info("Reached max posts limit", "username", username, "max_posts", maxPosts)
			break
		}
		if !info.HasNextPage {
			break
		}
		if info.EndCursor == "" || info.EndCursor == cursor {
			ig.logger.Debug("No usable end cursor despite has_next_page, stopping", "username", username, "page", page)
			break
		}
		if len(records) == 0 {
			ig.logger.Debug("No new posts returned, stopping pagination", "username", username, "page", page)
			break
		}
		cursor = info.EndCursor
	}

	if maxPosts > 0 && len(posts) > maxPosts {
		posts = posts[:maxPosts]
	}
	return posts, nil
}

func (ig *InstaImpl) fetchPage(ctx context.Context, username, cursor string) ([]domain.PostRecord, domain.PageInfo, error) {
	raw, err := ig.fetcher.FetchPage(ctx, username, cursor)
	if err != nil {
		return nil, domain.PageInfo{}, err
	}

	doc, source, err := ig.resolver.Resolve(raw)
	if err != nil {
		return nil, domain.PageInfo{}, err
	}

	user, err := ExtractUser(doc)
	if err != nil {
		return nil, domain.PageInfo{}, err
	}

	info := ExtractPageInfo(user)
	owner := ExtractOwner(username)
	nodes := ExtractEdges(user)

	records := make([]domain.PostRecord, 0, len(nodes))
	for _, node := range nodes {
		records = append(records, NormalizePost(node, owner))
	}

	ig.logger.Debug("Parsed page",
		"username", username,
		"source", string(source),
		"posts", len(records),
		"has_next_page", info.HasNextPage,
	)
	return records, info, nil
}
