package cache

import (
	"time"
)

// Page is a cached search response body. Only bodies of 200 responses that
// decoded cleanly are stored, so no status code is kept.
type Page struct {
	Body      []byte    `json:"body"`
	FetchedAt time.Time `json:"fetched_at"`
	Expires   time.Time `json:"expires"`
}

// NewPage wraps body in a Page that expires after ttl.
func NewPage(body []byte, ttl time.Duration) *Page {
	now := time.Now()
	return &Page{
		Body:      body,
		FetchedAt: now,
		Expires:   now.Add(ttl),
	}
}

// IsExpired reports whether the page is past its expiry.
func (p *Page) IsExpired() bool {
	return time.Now().After(p.Expires)
}

// TTL returns the time left until expiry, or 0 once expired.
func (p *Page) TTL() time.Duration {
	if ttl := time.Until(p.Expires); ttl > 0 {
		return ttl
	}
	return 0
}

// Age returns how long ago the page was fetched.
func (p *Page) Age() time.Duration {
	return time.Since(p.FetchedAt)
}
