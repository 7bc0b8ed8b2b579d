package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePlaceName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lon"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name": "Jl. Sudirman No. 1, Jakarta"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second)
	place, err := client.ResolvePlaceName(context.Background(), -6.2, 106.8)

	require.NoError(t, err)
	assert.Equal(t, "Jl. Sudirman No. 1, Jakarta", place)
}

func TestResolvePlaceName_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second)
	_, err := client.ResolvePlaceName(context.Background(), -6.2, 106.8)
	assert.Error(t, err)
}

func TestResolvePlaceName_EmptyDisplayName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second)
	_, err := client.ResolvePlaceName(context.Background(), -6.2, 106.8)
	assert.Error(t, err)
}
