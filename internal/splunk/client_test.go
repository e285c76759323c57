package splunk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/jaysuzi5/api-load-tester/internal/config"
)

// newTestClient points a Client at an httptest server
func newTestClient(t *testing.T, server *httptest.Server, settings config.SplunkSettings) *Client {
	t.Helper()

	parsed, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("Failed to parse server URL: %v", err)
	}

	port, err := strconv.Atoi(parsed.Port())
	if err != nil {
		t.Fatalf("Failed to parse server port: %v", err)
	}

	settings.Host = parsed.Hostname()
	settings.Port = port
	settings.InsecureSkipVerify = true

	client := NewClient(settings)
	// httptest.NewServer is plain HTTP
	client.baseURL = server.URL
	return client
}

func TestSearchParsesExportStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if !strings.Contains(r.URL.Path, "/search/jobs/export") {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("Failed to parse form: %v", err)
		}
		if got := r.PostForm.Get("output_mode"); got != "json" {
			t.Errorf("Expected output_mode=json, got %q", got)
		}

		w.Write([]byte(`{"preview":true,"result":{"path":"/api/preview"}}
{"preview":false,"result":{"path":"/api/flask-test/v1/info"}}
{"preview":false,"result":{"path":"/api/robert/v1/info"},"lastrow":true}
`))
	}))
	defer server.Close()

	client := newTestClient(t, server, config.SplunkSettings{App: "search"})

	rows, err := client.Search(context.Background(), `search index="otel_logging" | table path`)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 finalized rows, got %d", len(rows))
	}
	if rows[0]["path"] != "/api/flask-test/v1/info" {
		t.Errorf("Unexpected first row: %v", rows[0])
	}
	if rows[1]["path"] != "/api/robert/v1/info" {
		t.Errorf("Unexpected second row: %v", rows[1])
	}
}

func TestSearchTokenAuth(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("\n"))
	}))
	defer server.Close()

	client := newTestClient(t, server, config.SplunkSettings{Token: "secret-token"})

	if _, err := client.Search(context.Background(), "search *"); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if gotAuth != "Bearer secret-token" {
		t.Errorf("Expected bearer token header, got %q", gotAuth)
	}
}

func TestSearchBasicAuth(t *testing.T) {
	var gotUser, gotPass string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		w.Write([]byte("\n"))
	}))
	defer server.Close()

	client := newTestClient(t, server, config.SplunkSettings{Username: "admin", Password: "changeme"})

	if _, err := client.Search(context.Background(), "search *"); err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if gotUser != "admin" || gotPass != "changeme" {
		t.Errorf("Expected basic auth admin/changeme, got %s/%s", gotUser, gotPass)
	}
}

func TestSearchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid token", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(t, server, config.SplunkSettings{Token: "bad"})

	if _, err := client.Search(context.Background(), "search *"); err == nil {
		t.Fatal("Expected error for 401 response, got nil")
	}
}

func TestParseExportStreamNonStringFields(t *testing.T) {
	input := strings.NewReader(`{"preview":false,"result":{"count":42,"path":"/api/x"}}`)

	rows, err := parseExportStream(input)
	if err != nil {
		t.Fatalf("parseExportStream returned error: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0]["count"] != "42" {
		t.Errorf("Expected numeric field coerced to string, got %q", rows[0]["count"])
	}
}
