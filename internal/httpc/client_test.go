package httpc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok","count":7}`))
		case "/bad":
			w.Write([]byte(`{"status":`))
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	var got struct {
		Status string `json:"status"`
		Count  int    `json:"count"`
	}
	require.NoError(t, GetJSON(ctx, srv.URL+"/ok", &got))
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, 7, got.Count)

	err := GetJSON(ctx, srv.URL+"/missing", &got)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.Contains(t, se.Body, "nope")

	assert.Error(t, GetJSON(ctx, srv.URL+"/bad", &got))
}

func TestGetJSONCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var v map[string]any
	assert.Error(t, GetJSON(ctx, "http://127.0.0.1:1/", &v))
}
