package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RegisterResume rides the shared request path, so it gets the bearer token,
// the one-shot network retry and the error mapping like every other endpoint.
func TestRegisterResumeSharesClientPath(t *testing.T) {
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

		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/resumes", r.URL.Path)
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "My resume", r.FormValue("name"))
		assert.Equal(t, "https://cdn.example.com/r.pdf", r.FormValue("fileUrl"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "r.pdf", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "pdf bytes", string(content))

		fmt.Fprint(w, `{"id":"r1","name":"My resume","fileUrl":"https://cdn.example.com/r.pdf"}`)
	}))
	defer server.Close()

	c := New(server.URL, WithTokenSource(TokenSourceFunc(func() string { return "tok-1" })))
	resume, err := c.RegisterResume(context.Background(), "My resume", "https://cdn.example.com/r.pdf", "r.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, "r1", resume.ID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "the dropped first attempt is retried once")
}
