package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetSetsUserAgent(t *testing.T) {
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		io.WriteString(w, "<rss/>")
	}))
	defer srv.Close()

	body, err := NewClient(time.Second).Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<rss/>", string(body))
	assert.Equal(t, defaultUserAgent, ua)
}

func TestClient_GetRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(time.Second).Get(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "502")
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewClient(20 * time.Millisecond).Get(context.Background(), srv.URL)
	assert.Error(t, err)
}
