package skyblockextractor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	skyblockextractor "github.com/Sahaj33-op/Hypixel-SkyBlock-Profile-Extractor"
)

func testEnumerator(srv *httptest.Server) *skyblockextractor.Enumerator {
	return skyblockextractor.NewEnumerator(skyblockextractor.NewCaller(skyblockextractor.CallerOptions{
		BaseURL: srv.URL,
		Policy:  testPolicy(1),
		Sleep:   func(time.Duration) {},
	}))
}

var testIdentity = &skyblockextractor.Identity{
	Handle:   "Foo",
	StableID: "abcdef01-2345-6789-abcd-ef0123456789",
}

func TestEnumerateOrdersByLastSave(t *testing.T) {
	// Members keyed by undashed UUID, the most common form the API uses.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/skyblock/profiles", r.URL.Path)
		require.Equal(t, testIdentity.StableID, r.URL.Query().Get("uuid"))
		w.Write([]byte(`{
			"success": true,
			"profiles": [
				{"profile_id": "a", "cute_name": "Apple", "members": {"abcdef0123456789abcdef0123456789": {"last_save": 100}}},
				{"profile_id": "b", "cute_name": "Banana", "game_mode": "ironman", "members": {"abcdef0123456789abcdef0123456789": {"last_save": 500}}},
				{"profile_id": "c", "cute_name": "Cherry", "members": {"abcdef0123456789abcdef0123456789": {"last_save": 300}}}
			]
		}`))
	}))
	defer srv.Close()

	profiles, err := testEnumerator(srv).Enumerate(context.Background(), testIdentity)
	require.NoError(t, err)
	require.Len(t, profiles, 3)

	require.Equal(t, []int64{500, 300, 100}, []int64{profiles[0].LastSave, profiles[1].LastSave, profiles[2].LastSave})
	require.True(t, profiles[0].Current)
	require.False(t, profiles[1].Current)
	require.False(t, profiles[2].Current)

	require.Equal(t, "Banana", profiles[0].CuteName)
	require.Equal(t, skyblockextractor.GameModeIronman, profiles[0].Mode)
	require.Equal(t, skyblockextractor.GameModeNormal, profiles[1].Mode)
	require.NotEmpty(t, profiles[0].Raw)
}

func TestEnumerateDashedMemberKeys(t *testing.T) {
	// Some endpoints key the members map by dashed UUID instead. Both forms
	// must resolve.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"success": true,
			"profiles": [
				{"profile_id": "a", "cute_name": "Apple", "members": {"abcdef01-2345-6789-abcd-ef0123456789": {"last_save": 777}}}
			]
		}`))
	}))
	defer srv.Close()

	profiles, err := testEnumerator(srv).Enumerate(context.Background(), testIdentity)
	require.NoError(t, err)
	require.Equal(t, int64(777), profiles[0].LastSave)
}

func TestEnumerateMissingMemberRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"success": true,
			"profiles": [
				{"profile_id": "a", "cute_name": "Apple", "members": {"someone-else": {"last_save": 900}}}
			]
		}`))
	}))
	defer srv.Close()

	profiles, err := testEnumerator(srv).Enumerate(context.Background(), testIdentity)
	require.NoError(t, err)
	require.Equal(t, int64(0), profiles[0].LastSave)
}

func TestEnumerateNoProfiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "profiles": []}`))
	}))
	defer srv.Close()

	_, err := testEnumerator(srv).Enumerate(context.Background(), testIdentity)
	require.ErrorIs(t, err, skyblockextractor.ErrNoProfiles)
}

func TestUnmarshalGameMode(t *testing.T) {
	var s struct {
		Mode skyblockextractor.GameMode `json:"game_mode"`
	}

	if err := json.Unmarshal([]byte(`{"game_mode":"bingo"}`), &s); err != nil {
		t.Fatalf("Failed to unmarshal game mode: %v", err)
	}
	if s.Mode != skyblockextractor.GameModeBingo {
		t.Errorf("Expected game mode 'bingo', got '%s'", s.Mode)
	}

	if err := json.Unmarshal([]byte(`{"game_mode":"some_future_mode"}`), &s); err != nil {
		t.Fatalf("Failed to unmarshal unknown game mode: %v", err)
	}
	if s.Mode != skyblockextractor.GameModeNormal {
		t.Errorf("Expected unknown game mode to fall back to 'normal', got '%s'", s.Mode)
	}
}
