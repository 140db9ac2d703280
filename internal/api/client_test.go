package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hireloop-client/internal/apierr"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"/jobs", "/jobs"},
		{"jobs", "/jobs"},
		{"/api/jobs", "/jobs"},
		{"/api/applications/1/messages", "/applications/1/messages"},
		{"/api", "/"},
		{"/apiary", "/apiary"}, // only a real /api segment is stripped
	}
	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.out {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}

func TestTokenReadAtDispatchTime(t *testing.T) {
	var got []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	token := "first"
	c := New(server.URL, WithTokenSource(TokenSourceFunc(func() string { return token })))

	require.NoError(t, c.do(context.Background(), http.MethodGet, "/users/me", nil, nil))
	token = "second"
	require.NoError(t, c.do(context.Background(), http.MethodGet, "/users/me", nil, nil))

	// The interceptor reads the source per request; a token swap between two
	// requests is always picked up.
	assert.Equal(t, []string{"Bearer first", "Bearer second"}, got)
}

func TestUnauthorizedHandlerFires(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	var fired int32
	c := New(server.URL, WithUnauthorizedHandler(func() { atomic.AddInt32(&fired, 1) }))

	err := c.do(context.Background(), http.MethodGet, "/jobs", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apierr.ErrUnauthorized))
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestStatusTaxonomy(t *testing.T) {
	tests := []struct {
		status int
		kind   apierr.Kind
	}{
		{http.StatusForbidden, apierr.KindForbidden},
		{http.StatusNotFound, apierr.KindNotFound},
		{http.StatusBadRequest, apierr.KindValidation},
		{http.StatusUnprocessableEntity, apierr.KindValidation},
		{http.StatusInternalServerError, apierr.KindServer},
	}
	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"nope"}`, tt.status)
		}))
		c := New(server.URL)
		err := c.do(context.Background(), http.MethodGet, "/jobs", nil, nil)
		server.Close()

		require.Error(t, err)
		assert.Equal(t, tt.kind, apierr.KindOf(err), "status %d", tt.status)
	}
}

func TestRetriesNetworkFailureOnce(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			// Kill the connection mid-request to force a transport error.
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		w.Write([]byte(`{"id":"j1"}`))
	}))
	defer server.Close()

	c := New(server.URL)
	var out struct {
		ID string `json:"id"`
	}
	err := c.do(context.Background(), http.MethodGet, "/jobs/j1", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "j1", out.ID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDoesNotRetryStatusErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	c := New(server.URL)
	err := c.do(context.Background(), http.MethodGet, "/jobs", nil, nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
