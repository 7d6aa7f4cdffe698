// Package testutil provides testing utilities for the BDR collector.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"
)

// SearchPath is the path the mock serves search results on.
const SearchPath = "/api/search/"

// MockPage defines one mock search response.
type MockPage struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockBDR is a mock BDR search server that serves queued pages in order.
type MockBDR struct {
	server   *httptest.Server
	mu       sync.Mutex
	pages    []MockPage
	fallback MockPage

	requests          []url.Values
	lastRequestHeader http.Header
}

// NewMockBDR creates a new mock server. Once the queue is drained it serves
// an empty page.
func NewMockBDR() *MockBDR {
	mock := &MockBDR{
		fallback: NewEmptyPage(),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != SearchPath {
			http.NotFound(w, r)
			return
		}

		mock.mu.Lock()
		mock.requests = append(mock.requests, r.URL.Query())
		mock.lastRequestHeader = r.Header.Clone()

		page := mock.fallback
		if len(mock.pages) > 0 {
			page = mock.pages[0]
			mock.pages = mock.pages[1:]
		}
		mock.mu.Unlock()

		if page.Delay > 0 {
			time.Sleep(page.Delay)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(page.StatusCode)
		if page.Body != "" {
			w.Write([]byte(page.Body))
		}
	}))

	return mock
}

// URL returns the search endpoint URL.
func (m *MockBDR) URL() string {
	return m.server.URL + SearchPath
}

// Close shuts down the mock server.
func (m *MockBDR) Close() {
	m.server.Close()
}

// Reset clears queued pages and tracking.
func (m *MockBDR) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages = nil
	m.requests = nil
	m.lastRequestHeader = nil
}

// QueuePages appends pages to be served in order.
func (m *MockBDR) QueuePages(pages ...MockPage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages = append(m.pages, pages...)
}

// SetFallback sets the page served once the queue is empty.
func (m *MockBDR) SetFallback(page MockPage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback = page
}

// GetRequestCount returns the number of search requests received.
func (m *MockBDR) GetRequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns the query parameters of every request, in order.
func (m *MockBDR) Requests() []url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]url.Values, len(m.requests))
	copy(out, m.requests)
	return out
}

// LastRequestHeader returns the headers of the most recent request.
func (m *MockBDR) LastRequestHeader() http.Header {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequestHeader
}

// NewDocsPage creates a 200 OK page holding the given JSON documents.
func NewDocsPage(docs ...string) MockPage {
	return MockPage{
		StatusCode: http.StatusOK,
		Body: fmt.Sprintf(`{"responseHeader":{"status":0},"response":{"numFound":%d,"start":0,"docs":[%s]}}`,
			len(docs), strings.Join(docs, ",")),
	}
}

// NewPIDPage creates a 200 OK page with one minimal document per pid.
func NewPIDPage(pids ...string) MockPage {
	docs := make([]string, len(pids))
	for i, pid := range pids {
		docs[i] = fmt.Sprintf(`{"pid":%q,"primary_title":"Letter %d"}`, pid, i+1)
	}
	return NewDocsPage(docs...)
}

// NewEmptyPage creates a 200 OK page with no documents.
func NewEmptyPage() MockPage {
	return NewDocsPage()
}

// NewServerErrorPage creates a 500 Internal Server Error response.
func NewServerErrorPage() MockPage {
	return MockPage{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
	}
}

// NewMalformedPage creates a 200 OK response that is not valid JSON.
func NewMalformedPage() MockPage {
	return MockPage{
		StatusCode: http.StatusOK,
		Body:       `<html>maintenance</html>`,
	}
}

// NewMissingDocsPage creates a 200 OK JSON response without response.docs.
func NewMissingDocsPage() MockPage {
	return MockPage{
		StatusCode: http.StatusOK,
		Body:       `{"response":{"numFound":0}}`,
	}
}
