package provider

import (
	"net/http/httptest"
	"testing"
)

// NewTestServer starts a provider behind an httptest server that is closed
// when the test ends. It returns the provider and its gateway URL.
func NewTestServer(t testing.TB) (*Provider, string) {
	t.Helper()

	p, err := New()
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	ts := httptest.NewServer(p)
	t.Cleanup(ts.Close)
	return p, ts.URL + "/openapi.do"
}
