package skyblockextractor_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	skyblockextractor "github.com/Sahaj33-op/Hypixel-SkyBlock-Profile-Extractor"
)

func testResolver(srv *httptest.Server) *skyblockextractor.Resolver {
	return skyblockextractor.NewResolver(skyblockextractor.NewCaller(skyblockextractor.CallerOptions{
		BaseURL: srv.URL,
		Policy:  testPolicy(1),
		Sleep:   func(time.Duration) {},
	}))
}

func TestResolveCanonicalizesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/profiles/minecraft/foo", r.URL.Path)
		w.Write([]byte(`{"id":"abcdef0123456789abcdef0123456789","name":"Foo"}`))
	}))
	defer srv.Close()

	identity, err := testResolver(srv).Resolve(context.Background(), "foo")
	require.NoError(t, err)
	require.Equal(t, "abcdef01-2345-6789-abcd-ef0123456789", identity.StableID)
	// The service's canonical casing wins over what the user typed.
	require.Equal(t, "Foo", identity.Handle)
}

func TestResolveNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testResolver(srv).Resolve(context.Background(), "nobody")
	require.ErrorIs(t, err, skyblockextractor.ErrPlayerNotFound)
}

func TestResolveMalformedID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"not-a-uuid","name":"Foo"}`))
	}))
	defer srv.Close()

	_, err := testResolver(srv).Resolve(context.Background(), "foo")
	require.Error(t, err)
	require.NotErrorIs(t, err, skyblockextractor.ErrPlayerNotFound)
}
