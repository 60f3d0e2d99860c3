package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	sierrors "github.com/chazuruo/stratum-installer/internal/errors"
)

// TokenHeader is the header GitLab reads personal access tokens from.
const TokenHeader = "Private-Token"

// project is the subset of a GitLab project record the catalog needs.
type project struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Client queries the project host for available bundle tiers.
type Client struct {
	baseURL    string
	userAgent  string
	bundle     *Bundle
	httpClient *http.Client
	logger     *log.Logger
}

// NewClient creates a new Client for the host at baseURL.
func NewClient(baseURL, userAgent string, bundle *Bundle) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		bundle:     bundle,
		httpClient: http.DefaultClient,
		logger:     log.New(io.Discard),
	}
}

// SetHTTPClient sets the HTTP client (useful for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// SetLogger sets the diagnostic logger.
func (c *Client) SetLogger(logger *log.Logger) {
	c.logger = logger
}

// ProjectsURL is the catalog endpoint.
func (c *Client) ProjectsURL() string {
	return c.baseURL + "/api/v4/projects/"
}

// ListTiers fetches the project list and returns the bundle tiers in server order.
// An empty credential queries anonymously. An empty result is not an error.
func (c *Client) ListTiers(ctx context.Context, credential string) ([]Entry, error) {
	url := c.ProjectsURL()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &sierrors.CatalogError{Kind: sierrors.ErrCatalogUnreachable, URL: url, Err: err}
	}

	if credential != "" {
		req.Header.Set(TokenHeader, credential)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debug("querying catalog", "url", url, "authenticated", credential != "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", sierrors.ErrCanceled, err)
		}
		return nil, &sierrors.CatalogError{Kind: sierrors.ErrCatalogUnreachable, URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &sierrors.CatalogError{
			Kind:   sierrors.ErrCatalogUnreachable,
			URL:    url,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s", msg),
		}
	}

	var projects []project
	if err := json.NewDecoder(resp.Body).Decode(&projects); err != nil {
		return nil, &sierrors.CatalogError{Kind: sierrors.ErrCatalogMalformed, URL: url, Err: err}
	}

	entries := make([]Entry, 0, len(projects))
	for _, p := range projects {
		if !c.bundle.IsProjectName(p.Name) {
			continue
		}
		entries = append(entries, Entry{
			ID:   p.ID,
			Name: p.Name,
			URL:  ArchiveURL(c.baseURL, p.ID),
		})
	}

	c.logger.Debug("catalog fetched", "projects", len(projects), "tiers", len(entries))

	return entries, nil
}
