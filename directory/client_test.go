package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupEmailExactMatch(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "Key secret", r.Header.Get("Authorization"))
		assert.Equal(t, "jane", r.URL.Query().Get("prefix"))

		w.Header().Set("Content-Type", "application/json")
		// Prefix search also returns jane.smith; only the exact match counts
		w.Write([]byte(`{"results": [
			{"username": "jane.smith", "email": "jane.smith@example.com"},
			{"username": "jane", "email": "jane@example.com"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")

	email := client.LookupEmail(context.Background(), "jane")
	assert.Equal(t, "jane@example.com", email)

	// Second lookup is served from cache
	email = client.LookupEmail(context.Background(), "jane")
	assert.Equal(t, "jane@example.com", email)
	assert.Equal(t, 1, requests)
}

func TestLookupEmailFallsBackToUsername(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	assert.Equal(t, "jane", client.LookupEmail(context.Background(), "jane"))
}

func TestLookupEmailUnknownUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	assert.Equal(t, "ghost", client.LookupEmail(context.Background(), "ghost"))
}

func TestLookupEmailUnconfigured(t *testing.T) {
	client := NewClient("", "")
	assert.Equal(t, "jane", client.LookupEmail(context.Background(), "jane"))
}
