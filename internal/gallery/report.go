package gallery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Report is the public extensions report published alongside the
// Marketplace. Only the parts the CLI consults are decoded.
type Report struct {
	Malicious []string  `json:"malicious"`
	Web       WebReport `json:"web"`
}

// WebReport lists publishers and extensions allowed to ship as web extensions.
type WebReport struct {
	Publishers []string `json:"publishers"`
	Extensions []string `json:"extensions"`
}

// SupportsWeb reports whether publisher.name may be published as a web
// extension, either on its own or because its publisher is allowed.
func (r *Report) SupportsWeb(publisher, name string) bool {
	for _, p := range r.Web.Publishers {
		if p == publisher {
			return true
		}
	}
	id := publisher + "." + name
	for _, e := range r.Web.Extensions {
		if e == id {
			return true
		}
	}
	return false
}

// ReportClient fetches the extensions report. It needs no credentials.
type ReportClient struct {
	url        string
	httpClient *http.Client
}

// NewReportClient returns a ReportClient reading from reportURL.
func NewReportClient(reportURL string, httpClient *http.Client) *ReportClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ReportClient{url: reportURL, httpClient: httpClient}
}

// GetExtensionsReport downloads and decodes the report.
func (c *ReportClient) GetExtensionsReport(ctx context.Context) (*Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching extensions report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extensions report returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading extensions report: %w", err)
	}

	var report Report
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("parsing extensions report: %w", err)
	}
	return &report, nil
}
