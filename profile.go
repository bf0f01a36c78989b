package skyblockextractor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// ProfileSummary is the normalized shape of one SkyBlock profile. Current
// marks the profile with the newest member save, a best-effort stand-in for
// "the profile the player last played" since the API does not expose an
// explicit active-profile flag in all cases.
type ProfileSummary struct {
	ProfileID string          `json:"profile_id"`
	CuteName  string          `json:"cute_name"`
	Mode      GameMode        `json:"game_mode"`
	LastSave  int64           `json:"last_save"`
	Current   bool            `json:"current"`
	Raw       json.RawMessage `json:"-"`
}

const (
	GameModeNormal GameMode = iota
	GameModeIronman
	GameModeStranded
	GameModeBingo
)

var gameModeNames = map[GameMode]string{
	GameModeNormal:   "normal",
	GameModeIronman:  "ironman",
	GameModeStranded: "island",
	GameModeBingo:    "bingo",
}

type GameMode int

func (gm GameMode) String() string {
	if name, exists := gameModeNames[gm]; exists {
		return name
	}
	return "normal"
}

func (gm GameMode) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, gm.String())), nil
}

func (gm *GameMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid game mode value: %s", data)
	}
	for mode, name := range gameModeNames {
		if name == s {
			*gm = mode
			return nil
		}
	}
	// The field is absent for regular profiles and new mode names appear
	// between game updates; render anything unrecognized as normal instead
	// of failing the enumeration.
	*gm = GameModeNormal
	return nil
}

type profilesResponse struct {
	Profiles []json.RawMessage `json:"profiles"`
}

type profileObject struct {
	ProfileID string                  `json:"profile_id"`
	CuteName  string                  `json:"cute_name"`
	GameMode  GameMode                `json:"game_mode"`
	Members   map[string]memberRecord `json:"members"`
}

type memberRecord struct {
	LastSave int64 `json:"last_save"`
}

// memberFor looks up the identity's member record. The API keys the members
// map by undashed UUID on most endpoints but by dashed UUID on some; this is
// a real inconsistency of the service, so both forms are tried.
func memberFor(members map[string]memberRecord, stableID string) (memberRecord, bool) {
	if m, ok := members[stableID]; ok {
		return m, true
	}
	m, ok := members[strings.ReplaceAll(stableID, "-", "")]
	return m, ok
}

// Enumerator retrieves and normalizes the set of profiles owned by one
// identity.
type Enumerator struct {
	caller *Caller
}

func NewEnumerator(caller *Caller) *Enumerator {
	return &Enumerator{caller: caller}
}

// Enumerate returns the identity's profiles sorted by last save descending.
// The first element has Current set. The ordering is applied once here and
// never recomputed.
func (e *Enumerator) Enumerate(ctx context.Context, identity *Identity) ([]ProfileSummary, error) {
	log.Info().Str("uuid", identity.StableID).Msg("Fetching SkyBlock profiles")

	path := "/skyblock/profiles?uuid=" + url.QueryEscape(identity.StableID)
	body, err := e.caller.Get(ctx, path, "Profile lookup")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profiles for %q: %w", identity.Handle, err)
	}

	var resp profilesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode profiles response: %w", err)
	}
	if len(resp.Profiles) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoProfiles, identity.Handle)
	}

	profiles := make([]ProfileSummary, 0, len(resp.Profiles))
	for _, raw := range resp.Profiles {
		var obj profileObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("failed to decode profile object: %w", err)
		}

		var lastSave int64
		if member, ok := memberFor(obj.Members, identity.StableID); ok {
			lastSave = member.LastSave
		}

		profiles = append(profiles, ProfileSummary{
			ProfileID: obj.ProfileID,
			CuteName:  obj.CuteName,
			Mode:      obj.GameMode,
			LastSave:  lastSave,
			Raw:       raw,
		})
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].LastSave > profiles[j].LastSave
	})
	profiles[0].Current = true

	log.Info().Int("count", len(profiles)).Msg("Found profiles")

	return profiles, nil
}
