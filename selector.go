package skyblockextractor

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// ChooseFunc picks an index into the presented profiles. The driver supplies
// an interactive implementation; the pipeline itself never prompts.
type ChooseFunc func(profiles []ProfileSummary) (int, error)

// Select picks exactly one profile. A single profile is returned directly. A
// requested name that matches a profile's cute name (full string, case
// folded) wins next. Otherwise choose decides; a nil choose defaults to the
// first, most recently saved, profile. Returns nil only for an empty input.
func Select(profiles []ProfileSummary, requestedName string, choose ChooseFunc) (*ProfileSummary, error) {
	if len(profiles) == 0 {
		return nil, nil
	}
	if len(profiles) == 1 {
		return &profiles[0], nil
	}

	if requestedName != "" {
		for i := range profiles {
			if strings.EqualFold(profiles[i].CuteName, requestedName) {
				return &profiles[i], nil
			}
		}
		log.Warn().Str("profile", requestedName).Msg("Requested profile not found, choosing from available profiles")
	}

	if choose == nil {
		return &profiles[0], nil
	}

	index, err := choose(profiles)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(profiles) {
		return &profiles[0], nil
	}
	return &profiles[index], nil
}
