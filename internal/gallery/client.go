package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	apiVersion = "3.0-preview.1"
	userAgent  = "vsce-go"

	// flagIncludeVersions asks the lookup to return version history.
	flagIncludeVersions = 0x1
)

// Client talks to the Marketplace gallery API on behalf of one PAT.
type Client struct {
	baseURL    string
	pat        string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// New creates a Client for the Marketplace at baseURL authenticating with pat.
func New(baseURL, pat string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		pat:        pat,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetExtension looks up publisher.name. A missing extension is reported as
// an *APIError with status 404; see IsNotFound.
func (c *Client) GetExtension(ctx context.Context, publisher, name string, includeVersions bool) (*PublishedExtension, error) {
	q := url.Values{}
	if includeVersions {
		q.Set("flags", fmt.Sprint(flagIncludeVersions))
	}

	var ext PublishedExtension
	if err := c.do(ctx, http.MethodGet, extensionPath(publisher, name), q, nil, &ext); err != nil {
		return nil, err
	}
	return &ext, nil
}

// CreateExtension uploads a package for an extension that does not exist yet.
func (c *Client) CreateExtension(ctx context.Context, pkg io.Reader) (*PublishedExtension, error) {
	var ext PublishedExtension
	if err := c.do(ctx, http.MethodPost, "/_apis/gallery/extensions", nil, pkg, &ext); err != nil {
		return nil, err
	}
	return &ext, nil
}

// UpdateExtension uploads a new version of an existing extension.
func (c *Client) UpdateExtension(ctx context.Context, pkg io.Reader, publisher, name string) (*PublishedExtension, error) {
	var ext PublishedExtension
	if err := c.do(ctx, http.MethodPut, extensionPath(publisher, name), nil, pkg, &ext); err != nil {
		return nil, err
	}
	return &ext, nil
}

// DeleteExtension removes an extension and all of its versions.
func (c *Client) DeleteExtension(ctx context.Context, publisher, name string) error {
	return c.do(ctx, http.MethodDelete, extensionPath(publisher, name), nil, nil, nil)
}

// GetPublisher looks up a publisher. It doubles as a PAT check.
func (c *Client) GetPublisher(ctx context.Context, name string) (*Publisher, error) {
	var p Publisher
	if err := c.do(ctx, http.MethodGet, "/_apis/gallery/publishers/"+url.PathEscape(name), nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func extensionPath(publisher, name string) string {
	return fmt.Sprintf("/_apis/gallery/publishers/%s/extensions/%s", url.PathEscape(publisher), url.PathEscape(name))
}

// do sends one request. body, when non-nil, is sent as an octet stream;
// out, when non-nil, receives the decoded JSON response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json;api-version="+apiVersion)
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/octet-stream")
	}
	req.SetBasicAuth("", c.pat)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing response JSON: %w", err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	apiErr := &APIError{StatusCode: status}
	if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(data))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
	}
	return apiErr
}
