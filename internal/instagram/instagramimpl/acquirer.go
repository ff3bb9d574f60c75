package instagramimpl

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/orgball2608/insta-post-exporter/internal/instagram"
	"github.com/orgball2608/insta-post-exporter/pkg/logger"
	"golang.org/x/net/proxy"
)

const (
	DefaultBaseURL   = "https://www.instagram.com"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	DefaultTimeout   = 10 * time.Second

	acceptHeader         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguageHeader = "en-US,en;q=0.9"

	// cursorParam carries the pagination cursor on follow-up page requests.
	cursorParam = "max_id"
)

// pageQuery selects the JSON rendering of the profile page.
var pageQuery = map[string]string{
	"__a": "1",
	"__d": "dis",
}

type AcquirerOpts struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Proxy     string
}

// Acquirer performs one GET per profile page. It never retries; callers own retry policy.
type Acquirer struct {
	client *resty.Client
	logger logger.Logger
}

var _ instagram.PageFetcher = (*Acquirer)(nil)

func NewAcquirer(opts AcquirerOpts, log logger.Logger) (*Acquirer, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	log = log.WithComponent("Acquirer")

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetLogger(restyLogger{log}).
		SetHeaders(map[string]string{
			"User-Agent":      opts.UserAgent,
			"Accept":          acceptHeader,
			"Accept-Language": acceptLanguageHeader,
		})

	if err := setProxy(client, opts.Proxy); err != nil {
		return nil, err
	}

	return &Acquirer{
		client: client,
		logger: log,
	}, nil
}

// FetchPage classifies the outcome: 200 is returned as-is, 404 becomes
// ProfileNotFound, any other status UnexpectedStatus, and transport errors
// NetworkFailure.
func (a *Acquirer) FetchPage(ctx context.Context, username, cursor string) (*instagram.RawResponse, error) {
	req := a.client.R().
		SetContext(ctx).
		SetQueryParams(pageQuery)
	if cursor != "" {
		req.SetQueryParam(cursorParam, cursor)
	}

	resp, err := req.Get("/" + url.PathEscape(username) + "/")
	if err != nil {
		return nil, instagram.NetworkFailure(username, err)
	}

	a.logger.Debug("Fetched profile page",
		"username", username,
		"status", resp.StatusCode(),
		"bytes", len(resp.Body()),
		"elapsed", resp.Time().Round(time.Millisecond).String(),
	)

	switch resp.StatusCode() {
	case http.StatusOK:
		return &instagram.RawResponse{
			Username:    username,
			StatusCode:  resp.StatusCode(),
			ContentType: resp.Header().Get("Content-Type"),
			Body:        resp.Body(),
		}, nil
	case http.StatusNotFound:
		return nil, instagram.ProfileNotFound(username)
	default:
		return nil, instagram.UnexpectedStatus(username, resp.StatusCode())
	}
}

// setProxy accepts http, https and socks5 proxy URLs. An empty address keeps a direct connection.
func setProxy(client *resty.Client, proxyAddr string) error {
	if proxyAddr == "" {
		return nil
	}

	u, err := url.Parse(proxyAddr)
	if err != nil {
		return fmt.Errorf("parse proxy url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		client.SetProxy(proxyAddr)
	case "socks5":
		var auth *proxy.Auth
		if u.User != nil {
			pass, _ := u.User.Password()
			auth = &proxy.Auth{User: u.User.Username(), Password: pass}
		}
		dialer, err := proxy.SOCKS5("tcp", u.Host, auth, &net.Dialer{Timeout: 10 * time.Second})
		if err != nil {
			return fmt.Errorf("socks5 proxy: %w", err)
		}
		dc, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return fmt.Errorf("socks5: context dialer not supported")
		}
		client.SetTransport(&http.Transport{
			DialContext:         dc.DialContext,
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		})
	default:
		return fmt.Errorf("unsupported proxy scheme: %s", u.Scheme)
	}
	return nil
}

// restyLogger routes resty's internal warnings through the application logger.
type restyLogger struct {
	log logger.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, v...))
}
