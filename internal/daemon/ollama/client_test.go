package ollama

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second)
}

func TestNewNormalizesBaseURL(t *testing.T) {
	client := New("http://127.0.0.1:11434/", time.Second)
	assert.Equal(t, "http://127.0.0.1:11434", client.BaseURL())
}

func TestListModels(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/tags", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[
			{"name":"llama2:latest","size":3826793677},
			{"name":"mistral:7b","size":4109865159},
			{"name":"embedder","size":274302450}
		]}`))
	})

	list, err := client.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)

	assert.Equal(t, "llama2", list[0].Name)
	assert.Equal(t, []string{"latest"}, list[0].Tags)
	assert.Equal(t, int64(3826793677), list[0].SizeBytes)

	assert.Equal(t, "mistral", list[1].Name)
	assert.Equal(t, []string{"7b"}, list[1].Tags)

	assert.Equal(t, "embedder", list[2].Name)
	assert.Empty(t, list[2].Tags)
}

func TestListModelsHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.ListModels(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindHTTPStatus, apiErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestListModelsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	client := New(srv.URL, time.Second)

	_, err := client.ListModels(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindUnreachable, apiErr.Kind)
}

func TestListModelsBadPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := client.ListModels(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindBadPayload, apiErr.Kind)
}

func TestDeleteModel(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantErr    bool
		wantStatus int
	}{
		{name: "success", status: http.StatusOK},
		{name: "not found", status: http.StatusNotFound, wantErr: true, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodDelete, r.Method)
				require.Equal(t, "/api/delete", r.URL.Path)
				w.WriteHeader(tt.status)
			})

			err := client.DeleteModel(context.Background(), "x")
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, KindHTTPStatus, apiErr.Kind)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
		})
	}
}

func TestShowModel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/show", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"license":"MIT","parameters":"num_ctx 4096"}`))
	})

	detail, err := client.ShowModel(context.Background(), "llama2")
	require.NoError(t, err)
	assert.Equal(t, "MIT", detail["license"])
}

func TestContextUsage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate/status", r.URL.Path)
		_, _ = w.Write([]byte(`{"context_size":4096,"context_used":812}`))
	})

	used, size, err := client.ContextUsage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 812, used)
	assert.Equal(t, 4096, size)
}

func TestContextUsageMissingEndpoint(t *testing.T) {
	// Older daemons don't serve the endpoint at all.
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, _, err := client.ContextUsage(context.Background())
	require.Error(t, err)
}

func TestSplitTag(t *testing.T) {
	tests := []struct {
		full     string
		wantName string
		wantTags []string
	}{
		{"llama2:latest", "llama2", []string{"latest"}},
		{"mistral", "mistral", nil},
		{"repo/model:q4", "repo/model", []string{"q4"}},
	}

	for _, tt := range tests {
		name, tags := splitTag(tt.full)
		assert.Equal(t, tt.wantName, name)
		assert.Equal(t, tt.wantTags, tags)
	}
}
