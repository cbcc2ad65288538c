package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dabbsLondon/rdata/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/query", r.URL.Path)
		require.Equal(t, api.MediaTypeJSON, r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req api.QueryRequest
		require.NoError(t, json.Unmarshal(body, &req))
		require.Equal(t, "df = load_parquet(\"people.parquet\")", req.Query)
		w.Header().Set("Content-Type", api.MediaTypeJSON)
		json.NewEncoder(w).Encode(api.QueryResponse{
			JobID:      "23TPGfystzh3tuXaUtYbTvGqMLC",
			Status:     api.StatusRunning,
			DurationMS: 12,
			Cost:       10,
			Output:     &api.Output{Kind: api.OutputInline, RowCount: 5},
		})
	}))
	defer ts.Close()
	conn := NewConnectionTo(ts.URL)
	res, err := conn.Query(context.Background(), `df = load_parquet("people.parquet")`)
	require.NoError(t, err)
	assert.Equal(t, "23TPGfystzh3tuXaUtYbTvGqMLC", res.JobID)
	assert.Equal(t, api.StatusRunning, res.Status)
	assert.Equal(t, int64(10), res.Cost)
	require.NotNil(t, res.Output)
	assert.Equal(t, int64(5), res.Output.RowCount)
}

func TestQueryError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", api.MediaTypeJSON)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(api.Error{
			Type:    "Error",
			Kind:    "parse",
			Message: "parse error at line 1: unknown function",
		})
	}))
	defer ts.Close()
	conn := NewConnectionTo(ts.URL)
	_, err := conn.Query(context.Background(), "df = frobnicate()")
	var errRes *ErrorResponse
	require.ErrorAs(t, err, &errRes)
	assert.Equal(t, http.StatusBadRequest, errRes.StatusCode)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "parse", apiErr.Kind)
	assert.Equal(t, "parse error at line 1: unknown function", apiErr.Message)
}

func TestVersionAndPing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/version":
			w.Header().Set("Content-Type", api.MediaTypeJSON)
			json.NewEncoder(w).Encode(api.VersionResponse{Version: "v0.1.0"})
		case "/status":
			io.WriteString(w, "ok")
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()
	conn := NewConnectionTo(ts.URL)
	version, err := conn.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v0.1.0", version)
	d, err := conn.Ping(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, d)
}

func TestErrorBodyNotJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer ts.Close()
	conn := NewConnectionTo(ts.URL)
	_, err := conn.Query(context.Background(), "df = x")
	var errRes *ErrorResponse
	require.ErrorAs(t, err, &errRes)
	assert.Equal(t, http.StatusBadGateway, errRes.StatusCode)
	var apiErr *api.Error
	assert.False(t, errors.As(err, &apiErr))
}
