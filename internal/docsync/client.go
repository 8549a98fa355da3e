// Package docsync talks to the GitHub REST API on behalf of the generator:
// pull request metadata, file contents, the docs branch and pull request,
// batched commits, and comments. Every request goes through a rate-limited
// transport.
package docsync

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/doxai/doxai/internal/errors"
	"github.com/doxai/doxai/internal/logging"
)

const defaultRequestsPerSecond = 5

// Options configures a Client.
type Options struct {
	Token             string
	BaseURL           string
	RequestsPerSecond float64
	HTTPClient        *http.Client
	Logger            *zap.SugaredLogger
}

// Client is a GitHub client scoped to one repository.
type Client struct {
	gh     *github.Client
	owner  string
	repo   string
	logger *zap.SugaredLogger
	now    func() time.Time
}

// limitedTransport waits on a token bucket before each request.
type limitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// New creates a Client for repository, given as "owner/name".
func New(repository string, opts Options) (*Client, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, errors.Newf("invalid repository %q: want owner/name", repository)
	}

	base := http.DefaultTransport
	if opts.HTTPClient != nil && opts.HTTPClient.Transport != nil {
		base = opts.HTTPClient.Transport
	}
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}
	httpClient := &http.Client{
		Transport: &limitedTransport{base: base, limiter: rate.NewLimiter(rate.Limit(rps), 1)},
	}
	if opts.HTTPClient != nil {
		httpClient.Timeout = opts.HTTPClient.Timeout
	}

	gh := github.NewClient(httpClient)
	if opts.Token != "" {
		gh = gh.WithAuthToken(opts.Token)
	}
	if opts.BaseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
		if err != nil {
			return nil, errors.Wrapf(err, "parsing GitHub API URL %q", opts.BaseURL)
		}
		gh.BaseURL = u
	}
	return newClient(gh, owner, repo, opts.Logger), nil
}

func newClient(gh *github.Client, owner, repo string, logger *zap.SugaredLogger) *Client {
	return &Client{
		gh:     gh,
		owner:  owner,
		repo:   repo,
		logger: logging.OrNop(logger),
		now:    time.Now,
	}
}

// Repository returns "owner/name".
func (c *Client) Repository() string {
	return c.owner + "/" + c.repo
}
