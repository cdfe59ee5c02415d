// Package github fetches and aggregates the configured identity's public
// GitHub profile into the view model served to the portfolio frontend.
package github

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v45/github"
	"golang.org/x/oauth2"

	"portfolio-backend/pkg/config"
)

const (
	defaultBaseURL    = "https://api.github.com/"
	defaultGraphQLURL = "https://api.github.com/graphql"
)

// Client wraps the GitHub REST and GraphQL APIs for a single identity.
type Client struct {
	rest       *gh.Client
	httpClient *http.Client
	graphQLURL string
	token      string
	logger     *log.Logger
}

// NewClient creates a GitHub client authenticated with a personal access
// token. An empty token yields an unauthenticated client.
func NewClient(token, baseURL string, transport http.RoundTripper, logger *log.Logger) (*Client, error) {
	if transport == nil {
		transport = http.DefaultTransport
	}

	restTransport := transport
	if token != "" {
		restTransport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   transport,
		}
	}

	rest, err := newRESTClient(baseURL, &http.Client{Transport: restTransport, Timeout: 30 * time.Second})
	if err != nil {
		return nil, err
	}

	return &Client{
		rest:       rest,
		httpClient: &http.Client{Transport: transport, Timeout: 30 * time.Second},
		graphQLURL: defaultGraphQLURL,
		token:      token,
		logger:     logger,
	}, nil
}

// NewAppClient creates a GitHub client using GitHub App installation
// authentication. App installations cannot query the contribution calendar,
// so the GraphQL step is skipped for clients built this way.
func NewAppClient(appID, installationID int64, privateKeyPath, baseURL string, transport http.RoundTripper, logger *log.Logger) (*Client, error) {
	if _, err := os.Stat(privateKeyPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("GitHub App private key not found at %s: %w", privateKeyPath, err)
	}
	if transport == nil {
		transport = http.DefaultTransport
	}

	itr, err := ghinstallation.NewKeyFromFile(transport, appID, installationID, privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("error creating GitHub App transport: %w", err)
	}
	if baseURL != "" && baseURL != defaultBaseURL {
		itr.BaseURL = strings.TrimSuffix(baseURL, "/")
	}

	rest, err := newRESTClient(baseURL, &http.Client{Transport: itr, Timeout: 30 * time.Second})
	if err != nil {
		return nil, err
	}

	logger.Printf("Initialized GitHub App client for App ID %d, Installation ID %d", appID, installationID)
	return &Client{
		rest:       rest,
		httpClient: &http.Client{Transport: transport, Timeout: 30 * time.Second},
		graphQLURL: defaultGraphQLURL,
		logger:     logger,
	}, nil
}

// FromConfig selects an authentication method based on the available
// credentials. A personal token takes precedence over a GitHub App
// installation; with neither, requests go out unauthenticated and are
// subject to the low anonymous rate limit.
func FromConfig(cfg *config.Config, transport http.RoundTripper, logger *log.Logger) (*Client, error) {
	switch {
	case cfg.GitHubToken != "":
		logger.Println("Using GitHub token authentication")
		return NewClient(cfg.GitHubToken, cfg.GitHubBaseURL, transport, logger)
	case cfg.GitHubAppID != 0 && cfg.GitHubInstallID != 0 && cfg.GitHubKeyPath != "":
		logger.Println("Using GitHub App authentication")
		return NewAppClient(cfg.GitHubAppID, cfg.GitHubInstallID, cfg.GitHubKeyPath, cfg.GitHubBaseURL, transport, logger)
	default:
		logger.Println("Warning: no GitHub credentials configured, using unauthenticated API (rate limited)")
		return NewClient("", cfg.GitHubBaseURL, transport, logger)
	}
}

func newRESTClient(baseURL string, httpClient *http.Client) (*gh.Client, error) {
	if baseURL == "" || baseURL == defaultBaseURL {
		return gh.NewClient(httpClient), nil
	}

	baseEndpoint, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub base URL: %w", err)
	}
	client, err := gh.NewEnterpriseClient(baseEndpoint.String(), baseEndpoint.String(), httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub Enterprise client: %w", err)
	}
	return client, nil
}

// HasToken reports whether a personal access token is configured. Only
// token-authenticated clients may query the contribution calendar.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// User fetches the identity's public profile.
func (c *Client) User(ctx context.Context, username string) (*gh.User, error) {
	user, _, err := c.rest.Users.Get(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("fetching user %s: %w", username, err)
	}
	return user, nil
}

// TopRepos fetches up to 20 repositories owned by the identity, most
// starred first.
func (c *Client) TopRepos(ctx context.Context, username string) ([]*gh.Repository, error) {
	opts := &gh.RepositoryListOptions{
		Type:        "owner",
		Sort:        "stars",
		Direction:   "desc",
		ListOptions: gh.ListOptions{PerPage: 20},
	}
	repos, _, err := c.rest.Repositories.List(ctx, username, opts)
	if err != nil {
		return nil, fmt.Errorf("fetching repositories for %s: %w", username, err)
	}
	return repos, nil
}

// PublicEvents fetches the identity's 30 most recent public events.
func (c *Client) PublicEvents(ctx context.Context, username string) ([]*gh.Event, error) {
	events, _, err := c.rest.Activity.ListEventsPerformedByUser(ctx, username, true, &gh.ListOptions{PerPage: 30})
	if err != nil {
		return nil, fmt.Errorf("fetching public events for %s: %w", username, err)
	}
	return events, nil
}
