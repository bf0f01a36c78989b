package skyblockextractor

import (
	"errors"
	"fmt"
)

// ErrPlayerNotFound means the lookup service has no record of the handle.
var ErrPlayerNotFound = errors.New("player not found")

// ErrNoProfiles means the player exists but owns no SkyBlock profiles.
var ErrNoProfiles = errors.New("no SkyBlock profiles found")

// ApiError is returned once the retry budget for a single call is exhausted.
// Status holds the HTTP status of the last attempt, or 0 when the failure
// happened below the HTTP layer.
type ApiError struct {
	Context     string
	LastMessage string
	Status      int
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("%s failed - %s", e.Context, e.LastMessage)
}
