// Package splunk implements a minimal client for the Splunk REST search API.
//
// Only the blocking export endpoint is covered: the tool issues one search
// per endpoint refresh and consumes the streamed results. Authentication is
// either a bearer token or username/password, matching what the Splunk
// management port accepts.
package splunk

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jaysuzi5/api-load-tester/internal/config"
)

const (
	// SearchTimeout bounds one blocking export call end to end
	SearchTimeout = 30 * time.Second
)

// Client talks to a single Splunk instance over its management port
type Client struct {
	baseURL    string
	app        string
	token      string
	username   string
	password   string
	httpClient *http.Client
}

// NewClient creates a client from the application's Splunk settings
func NewClient(settings config.SplunkSettings) *Client {
	transport := &http.Transport{}
	if settings.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	app := settings.App
	if app == "" {
		app = "search"
	}

	return &Client{
		baseURL:  fmt.Sprintf("https://%s:%d", settings.Host, settings.Port),
		app:      app,
		token:    settings.Token,
		username: settings.Username,
		password: settings.Password,
		httpClient: &http.Client{
			Timeout:   SearchTimeout,
			Transport: transport,
		},
	}
}

// exportRow is one newline-delimited JSON object from the export stream
type exportRow struct {
	Preview bool                   `json:"preview"`
	Result  map[string]interface{} `json:"result"`
	LastRow bool                   `json:"lastrow"`
}

// Search runs a blocking export search and returns one field map per result
// row. Preview rows are skipped; only finalized results are returned.
func (c *Client) Search(ctx context.Context, query string) ([]map[string]string, error) {
	endpoint := fmt.Sprintf("%s/servicesNS/-/%s/search/jobs/export", c.baseURL, c.app)

	form := url.Values{}
	form.Set("search", query)
	form.Set("output_mode", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return parseExportStream(resp.Body)
}

// parseExportStream decodes the newline-delimited JSON export format
func parseExportStream(r io.Reader) ([]map[string]string, error) {
	var rows []map[string]string

	decoder := json.NewDecoder(r)
	for {
		var row exportRow
		if err := decoder.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to decode export row: %w", err)
		}

		if row.Preview || row.Result == nil {
			continue
		}

		fields := make(map[string]string, len(row.Result))
		for key, value := range row.Result {
			switch v := value.(type) {
			case string:
				fields[key] = v
			default:
				fields[key] = fmt.Sprintf("%v", v)
			}
		}
		rows = append(rows, fields)
	}

	return rows, nil
}
