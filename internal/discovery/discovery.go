// Package discovery populates the list of candidate target URLs from the
// paths observed in the Splunk access logs, with a hardcoded fallback so the
// tool stays usable when the log service is unreachable.
package discovery

import (
	"context"
	"fmt"
	"sync"
)

// Searcher is the part of the Splunk client discovery depends on
type Searcher interface {
	Search(ctx context.Context, query string) ([]map[string]string, error)
}

// FallbackURLs is returned whenever the log service query fails or comes
// back empty. Discovery must never leave the user without a target list.
var FallbackURLs = []string{
	"http://home.dev.com/api/flask-test/v1/info",
	"http://home.dev.com/api/fastapi-test/v1/info",
	"http://home.dev.com/api/fastapi-test-revert/v1/info",
	"http://home.dev.com/api/robert/v1/info",
	"http://home.dev.com/api/flask-test/v1/sample",
	"http://home.dev.com/api/fastapi-test/v1/sample",
	"http://home.dev.com/api/fastapi-test-revert/v1/sample",
	"http://home.dev.com/api/robert/v1/sample",
}

// Service maintains the current endpoint list and the default selection.
// Refresh replaces the list wholesale; readers see either the old list or
// the new one, never a partial update.
type Service struct {
	client  Searcher
	baseURL string
	index   string

	mu        sync.RWMutex
	endpoints []string
	selected  int
}

// NewService creates a discovery service. baseURL is prefixed onto each
// discovered path; index is the Splunk index holding the access logs.
func NewService(client Searcher, baseURL, index string) *Service {
	if index == "" {
		index = "otel_logging"
	}
	return &Service{
		client:  client,
		baseURL: baseURL,
		index:   index,
	}
}

// query returns the SPL search for distinct paths seen in the trailing day
func (s *Service) query() string {
	return fmt.Sprintf("search index=%q earliest=-1d | dedup path | table path | sort path", s.index)
}

// Refresh queries the log service for known request paths and replaces the
// current endpoint list. It never fails: on any error or an empty result it
// installs the fallback list instead. The first entry becomes the default
// selection.
func (s *Service) Refresh(ctx context.Context) []string {
	urls := s.fetch(ctx)
	if len(urls) == 0 {
		urls = make([]string, len(FallbackURLs))
		copy(urls, FallbackURLs)
	}

	s.mu.Lock()
	s.endpoints = urls
	s.selected = 0
	s.mu.Unlock()

	return urls
}

// fetch runs the path search and builds full URLs; errors collapse to nil
func (s *Service) fetch(ctx context.Context) []string {
	if s.client == nil {
		return nil
	}

	rows, err := s.client.Search(ctx, s.query())
	if err != nil {
		return nil
	}

	var urls []string
	for _, row := range rows {
		path, ok := row["path"]
		if !ok || path == "" {
			continue
		}
		urls = append(urls, s.baseURL+path)
	}

	return urls
}

// Endpoints returns the current endpoint list
func (s *Service) Endpoints() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.endpoints
}

// Selected returns the currently selected endpoint URL, or "" if the list
// has not been populated yet
func (s *Service) Selected() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected < 0 || s.selected >= len(s.endpoints) {
		return ""
	}
	return s.endpoints[s.selected]
}

// Select sets the selected endpoint by index; out-of-range indices are ignored
func (s *Service) Select(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx >= 0 && idx < len(s.endpoints) {
		s.selected = idx
	}
}

// SelectedIndex returns the index of the current selection
func (s *Service) SelectedIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}
