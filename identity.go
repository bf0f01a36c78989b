package skyblockextractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Identity pairs a player's handle with their canonical dashed UUID. It is
// immutable once resolved and keys every subsequent call.
type Identity struct {
	Handle   string `json:"handle"`
	StableID string `json:"stable_id"`
}

// Resolver maps a human-readable handle to an Identity via the unauthenticated
// Mojang-style lookup service.
type Resolver struct {
	caller *Caller
}

func NewResolver(caller *Caller) *Resolver {
	return &Resolver{caller: caller}
}

type lookupResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r *Resolver) Resolve(ctx context.Context, handle string) (*Identity, error) {
	log.Info().Str("handle", handle).Msg("Looking up player UUID")

	path := "/users/profiles/minecraft/" + url.PathEscape(handle)
	body, err := r.caller.Get(ctx, path, "UUID lookup")
	if err != nil {
		var apiErr *ApiError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusNotFound || apiErr.Status == http.StatusNoContent) {
			return nil, fmt.Errorf("%w: %q", ErrPlayerNotFound, handle)
		}
		return nil, fmt.Errorf("failed to look up player %q: %w", handle, err)
	}

	var resp lookupResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode lookup response: %w", err)
	}
	if resp.ID == "" {
		return nil, fmt.Errorf("%w: %q", ErrPlayerNotFound, handle)
	}

	stableID, err := canonicalUUID(resp.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup returned malformed id %q: %w", resp.ID, err)
	}

	// The service returns the canonical casing of the handle, which may
	// differ from what the user typed.
	name := resp.Name
	if name == "" {
		name = handle
	}

	log.Info().Str("handle", name).Str("uuid", stableID).Msg("Resolved player")

	return &Identity{Handle: name, StableID: stableID}, nil
}

// canonicalUUID turns the undashed 32-character hex identifier the lookup
// service returns into dashed form (separators after hex digits 8, 12, 16
// and 20, i.e. string offsets 8, 13, 18 and 23 of the dashed output).
func canonicalUUID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
