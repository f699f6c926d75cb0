package wiki

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithEndpoint(srv.URL+"/%s/api.php"), WithHTTPClient(srv.Client()), WithUserAgent("test-agent"))
}

func TestLinks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/en/api.php", r.URL.Path)
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		q := r.URL.Query()
		assert.Equal(t, "links", q.Get("prop"))
		assert.Equal(t, "Six degrees of separation", q.Get("titles"))
		assert.Equal(t, "0", q.Get("plnamespace"))

		w.Write([]byte(`{"query":{"pages":[{"title":"Six degrees of separation","links":[
			{"ns":0,"title":"Frigyes Karinthy"},
			{"ns":0,"title":"Small-world experiment"}]}]}}`))
	})

	links, err := c.Links(context.Background(), "Six degrees of separation", "en")
	require.NoError(t, err)
	assert.Equal(t, []string{"Frigyes Karinthy", "Small-world experiment"}, links)
}

func TestLinksNoLinks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query":{"pages":[{"title":"Stub"}]}}`))
	})

	links, err := c.Links(context.Background(), "Stub", "en")
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestLinksMissingPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"query":{"pages":[{"title":"Nope","missing":true}]}}`))
	})

	_, err := c.Links(context.Background(), "Nope", "en")
	assert.ErrorIs(t, err, ErrMissingPage)
}

func TestLinksHere(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ru/api.php", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "backlinks", q.Get("list"))
		assert.Equal(t, "Граф", q.Get("bltitle"))
		assert.Equal(t, "nonredirects", q.Get("blfilterredir"))

		w.Write([]byte(`{"query":{"backlinks":[{"pageid":1,"ns":0,"title":"Теория графов"}]}}`))
	})

	links, err := c.LinksHere(context.Background(), "Граф", "ru")
	require.NoError(t, err)
	assert.Equal(t, []string{"Теория графов"}, links)
}

func TestQueryErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		temporary bool
		check     func(t *testing.T, err error)
	}{
		{
			name:      "server error",
			status:    http.StatusServiceUnavailable,
			temporary: true,
		},
		{
			name:      "throttled",
			status:    http.StatusTooManyRequests,
			temporary: true,
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
		},
		{
			name:   "api error",
			status: http.StatusOK,
			body:   `{"error":{"code":"badvalue","info":"Unrecognized value"}}`,
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, "badvalue", apiErr.Code)
			},
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `<html>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.Links(context.Background(), "A", "en")
			require.Error(t, err)

			var statusErr *StatusError
			if errors.As(err, &statusErr) {
				assert.Equal(t, tt.status, statusErr.Code)
				assert.Equal(t, tt.temporary, statusErr.Temporary())
			} else {
				assert.False(t, tt.temporary)
			}
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestQueryCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Links(ctx, "A", "en")
	assert.ErrorIs(t, err, context.Canceled)
}
