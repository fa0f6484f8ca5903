package skills

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is where the published registry and documents live.
	DefaultBaseURL = "https://raw.githubusercontent.com/julianshen/skillbox/main"
	// DefaultTimeout bounds every remote request.
	DefaultTimeout = 30 * time.Second

	maxResponseSize = 1 << 20 // 1 MB
)

// RemoteClient fetches the published registry and skill documents over HTTP.
type RemoteClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewRemoteClient creates a client for baseURL. A nil httpClient uses one
// with the given timeout, or DefaultTimeout when timeout is zero.
func NewRemoteClient(baseURL string, httpClient *http.Client, timeout time.Duration) *RemoteClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &RemoteClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

// SetToken sends token as a bearer credential on every request. An empty
// token disables authentication.
func (c *RemoteClient) SetToken(token string) {
	c.token = token
}

// BaseURL returns the normalized base URL.
func (c *RemoteClient) BaseURL() string { return c.baseURL }

// RegistryURL returns the address of the published registry artifact.
func (c *RemoteClient) RegistryURL() string {
	return c.baseURL + "/" + RegistryFile
}

// DocumentURL returns the address of one skill document. Both segments are
// checked against NamePattern so a record cannot escape the skills tree.
func (c *RemoteClient) DocumentURL(category, name string) (string, error) {
	if err := ValidateName(category); err != nil {
		return "", fmt.Errorf("category: %w", err)
	}
	if err := ValidateName(name); err != nil {
		return "", fmt.Errorf("skill: %w", err)
	}
	return fmt.Sprintf("%s/skills/%s/%s/%s", c.baseURL, category, name, DocumentFile), nil
}

// FetchRegistry downloads and decodes the published registry. Network and
// HTTP failures wrap ErrRegistryUnavailable; a bad payload wraps
// ErrRegistryCorrupt.
func (c *RemoteClient) FetchRegistry(ctx context.Context) ([]Record, error) {
	data, err := c.get(ctx, c.RegistryURL())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}
	records, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if u, err := c.DocumentURL(records[i].Category, records[i].Name); err == nil {
			records[i].SourcePath = u
		}
	}
	return records, nil
}

// FetchDocument downloads the SKILL.md text for one skill.
func (c *RemoteClient) FetchDocument(ctx context.Context, category, name string) (string, error) {
	u, err := c.DocumentURL(category, name)
	if err != nil {
		return "", err
	}
	data, err := c.get(ctx, u)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return string(data), nil
}

func (c *RemoteClient) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %q: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(body) > maxResponseSize {
		return nil, fmt.Errorf("fetch %q: response exceeds %d bytes", url, maxResponseSize)
	}
	return body, nil
}
