package release

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v52/github"

	"github.com/zedfetch/zedfetch/internal/fault"
	"github.com/zedfetch/zedfetch/internal/logging"
)

// Locator fetches release metadata from the GitHub releases API
type Locator struct {
	client *github.Client
	owner  string
	repo   string
	log    logging.Logger
}

type locatorConfig struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	owner      string
	repo       string
	log        logging.Logger
}

// Option configures a Locator
type Option func(*locatorConfig)

// WithHTTPClient sets the HTTP client used for API calls
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *locatorConfig) { cfg.httpClient = c }
}

// WithBaseURL points the Locator at a different API root (tests, GitHub Enterprise)
func WithBaseURL(u string) Option {
	return func(cfg *locatorConfig) { cfg.baseURL = u }
}

// WithUserAgent sets the User-Agent header sent with API calls
func WithUserAgent(ua string) Option {
	return func(cfg *locatorConfig) { cfg.userAgent = ua }
}

// WithRepository overrides the owner/name pair
func WithRepository(owner, repo string) Option {
	return func(cfg *locatorConfig) {
		cfg.owner = owner
		cfg.repo = repo
	}
}

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(cfg *locatorConfig) { cfg.log = l }
}

// NewLocator creates a Locator for DefaultOwner/DefaultRepo unless overridden
func NewLocator(opts ...Option) (*Locator, error) {
	cfg := locatorConfig{
		owner: DefaultOwner,
		repo:  DefaultRepo,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.owner == "" || cfg.repo == "" {
		return nil, fmt.Errorf("repository owner and name are required")
	}

	client := github.NewClient(cfg.httpClient)

	if cfg.baseURL != "" {
		base := cfg.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse base URL: %w", err)
		}
		client.BaseURL = u
	}

	if cfg.userAgent != "" {
		client.UserAgent = cfg.userAgent
	}

	return &Locator{
		client: client,
		owner:  cfg.owner,
		repo:   cfg.repo,
		log:    logging.OrNop(cfg.log),
	}, nil
}

// Repository returns the "owner/name" pair the Locator queries
func (l *Locator) Repository() string {
	return l.owner + "/" + l.repo
}

// Latest returns the most recently published release.
// A missing release wraps fault.ErrNotFound; any other API failure wraps
// fault.ErrNetwork.
func (l *Locator) Latest(ctx context.Context) (*Release, error) {
	l.log.Debug("fetching latest release", "repository", l.Repository())

	rel, resp, err := l.client.Repositories.GetLatestRelease(ctx, l.owner, l.repo)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("no release found for %s: %w", l.Repository(), fault.ErrNotFound)
		}
		return nil, fmt.Errorf("fetch latest release of %s: %w: %w", l.Repository(), fault.ErrNetwork, err)
	}

	return fromGitHub(rel), nil
}

// fromGitHub keeps the fields the pipeline uses
func fromGitHub(rel *github.RepositoryRelease) *Release {
	out := &Release{
		Tag:    rel.GetTagName(),
		Body:   rel.Body,
		Assets: make([]Asset, 0, len(rel.Assets)),
	}

	for _, a := range rel.Assets {
		if a == nil {
			continue
		}
		out.Assets = append(out.Assets, Asset{
			Name: a.GetName(),
			URL:  a.GetBrowserDownloadURL(),
			Size: a.GetSize(),
		})
	}

	return out
}
