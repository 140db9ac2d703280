package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-hireloop-client/internal/models"
)

func TestApplyCarriesScreeningResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/applications", r.URL.Path)

		var req ApplyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "j1", req.JobID)
		require.Equal(t, "r1", req.ResumeID)
		require.Len(t, req.ScreeningResponses, 1)
		assert.Equal(t, "Years of Go experience?", req.ScreeningResponses[0].Question)
		assert.Equal(t, "5", req.ScreeningResponses[0].Response)

		fmt.Fprint(w, `{"id":"a1","status":"pending","screeningResponses":[{"question":"Years of Go experience?","response":"5"}]}`)
	}))
	defer server.Close()

	c := New(server.URL)
	app, err := c.Apply(context.Background(), ApplyRequest{
		JobID:    "j1",
		ResumeID: "r1",
		ScreeningResponses: []models.ScreeningResponse{
			{Question: "Years of Go experience?", Response: "5"},
		},
	})
	require.NoError(t, err)

	// A fresh application always comes back pending, answers attached.
	assert.Equal(t, models.StatusPending, app.Status)
	require.Len(t, app.ScreeningResponses, 1)
	assert.Equal(t, "5", app.ScreeningResponses[0].Response)
}
