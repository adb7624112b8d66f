package webhook

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delorenj/claude-notifications/internal/config"
)

func TestFirePostsFixedPayload(t *testing.T) {
	var got map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer ts.Close()

	NewNotifier(config.Webhook{Enabled: true, URL: ts.URL}).Fire()

	assert.Equal(t, map[string]string{"message": FixedMessage}, got)
}

func TestFireDisabledIsNoop(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	NewNotifier(config.Webhook{Enabled: false, URL: ts.URL}).Fire()
	assert.False(t, called)
}

func TestFireSwallowsConnectionError(t *testing.T) {
	// Must not panic or propagate.
	NewNotifier(config.Webhook{Enabled: true, URL: "http://127.0.0.1:1/hook"}).Fire()
}

func TestFireIgnoresErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	NewNotifier(config.Webhook{Enabled: true, URL: ts.URL}).Fire()
}
