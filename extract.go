package skyblockextractor

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// PlanEntry is one (endpoint, output-file) pairing of the extraction catalog.
// Path may contain {uuid} and {profile} placeholders.
type PlanEntry struct {
	Path        string
	File        string
	Description string
}

func (pe PlanEntry) expand(identity *Identity, profile *ProfileSummary) string {
	path := strings.ReplaceAll(pe.Path, "{uuid}", identity.StableID)
	return strings.ReplaceAll(path, "{profile}", profile.ProfileID)
}

// DefaultPlan is the full extraction catalog. The profile document comes
// first as the primary artifact; the rest are independent secondary calls.
func DefaultPlan() []PlanEntry {
	return []PlanEntry{
		{Path: "/skyblock/profile?profile={profile}", File: "profile.json", Description: "Profile Data"},
		{Path: "/player?uuid={uuid}", File: "player.json", Description: "Player Data"},
		{Path: "/status?uuid={uuid}", File: "status.json", Description: "Online Status"},
		{Path: "/recentgames?uuid={uuid}", File: "recent_games.json", Description: "Recent Games"},
		{Path: "/guild?player={uuid}", File: "guild.json", Description: "Guild Data"},
		{Path: "/skyblock/auction?profile={profile}", File: "auctions.json", Description: "Profile Auctions"},
		{Path: "/skyblock/bazaar", File: "bazaar.json", Description: "Bazaar Market Data"},
		{Path: "/skyblock/garden?profile={profile}", File: "garden.json", Description: "Garden Progress"},
		{Path: "/skyblock/bingo?uuid={uuid}", File: "bingo.json", Description: "Bingo Progress"},
		{Path: "/skyblock/news", File: "news.json", Description: "SkyBlock News"},
		{Path: "/skyblock/firesales", File: "fire_sales.json", Description: "Fire Sales"},
	}
}

type ExtractionResult struct {
	Endpoint    string `json:"endpoint"`
	File        string `json:"file"`
	Description string `json:"description"`
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
}

// Report is the run-level tally of an extraction.
type Report struct {
	RunID     string             `json:"run_id"`
	OutputDir string             `json:"output_dir"`
	Success   int                `json:"success"`
	Total     int                `json:"total"`
	Bytes     int64              `json:"bytes"`
	Results   []ExtractionResult `json:"results"`
	Outputs   []string           `json:"outputs"`
}

func (r *Report) SuccessRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Success) / float64(r.Total) * 100
}

// Orchestrator drives the extraction plan through the caller, one entry at a
// time, writing each response under the output directory.
type Orchestrator struct {
	caller *Caller
	plan   []PlanEntry
}

func NewOrchestrator(caller *Caller, plan []PlanEntry) *Orchestrator {
	if plan == nil {
		plan = DefaultPlan()
	}
	return &Orchestrator{caller: caller, plan: plan}
}

// Extract runs every plan entry. A failed entry is recorded and skipped, it
// never aborts the remaining entries.
func (o *Orchestrator) Extract(ctx context.Context, identity *Identity, profile *ProfileSummary, outputDir string, runID string) *Report {
	report := &Report{
		RunID:     runID,
		OutputDir: outputDir,
		Total:     len(o.plan),
	}

	for _, entry := range o.plan {
		endpoint := entry.expand(identity, profile)
		result := ExtractionResult{
			Endpoint:    endpoint,
			File:        entry.File,
			Description: entry.Description,
		}

		log.Info().Str("run_id", runID).Str("file", entry.File).Msgf("Extracting %s", entry.Description)

		body, err := o.caller.Get(ctx, endpoint, entry.Description)
		if err == nil {
			var n int64
			n, err = writeArtifact(outputDir, entry.File, body)
			report.Bytes += n
		}

		if err != nil {
			result.Error = err.Error()
			log.Warn().Str("run_id", runID).Str("file", entry.File).Msgf("Failed to extract %s: %s", entry.Description, result.Error)
		} else {
			result.Success = true
			report.Success++
			report.Outputs = append(report.Outputs, entry.File)
		}

		report.Results = append(report.Results, result)
	}

	return report
}
