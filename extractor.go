package skyblockextractor

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog/log"
)

const Version = "1"

const (
	DefaultAPIBaseURL    = "https://api.hypixel.net/v2"
	DefaultLookupBaseURL = "https://api.mojang.com"
	DefaultUserAgent     = "SkyBlock-Profile-Extractor/" + Version
	DefaultRateLimit     = 500 * time.Millisecond
	DefaultTimeout       = 30 * time.Second
	DefaultMaxRetryCount = 3
)

// Extractor wires the pipeline together: identity resolution, profile
// enumeration, selection and the extraction plan.
type Extractor struct {
	cfg *Config

	resolver     *Resolver
	enumerator   *Enumerator
	orchestrator *Orchestrator
	snowflake    *snowflake.Node
}

func New(cfg *Config) (*Extractor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	log.Debug().Msg("Initializing extractor with configuration")
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log.Debug().Msg("Configuration validated successfully")

	policy := DefaultRetryPolicy(cfg.MaxRetryCount)

	// The lookup service is unauthenticated and lives on a different host,
	// so it gets its own caller without the API credential.
	lookup := NewCaller(CallerOptions{
		BaseURL:   cfg.LookupBaseURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
		Policy:    policy,
	})
	api := NewCaller(CallerOptions{
		BaseURL:   cfg.APIBaseURL,
		APIKey:    cfg.APIKey,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
		Policy:    policy,
	})

	log.Debug().Msg("Creating snowflake node")
	snowflakeNode, err := snowflake.NewNode(cfg.SnowflakeNodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	log.Debug().Msgf("Created snowflake node with ID: %d", cfg.SnowflakeNodeID)

	return &Extractor{
		cfg:          cfg,
		resolver:     NewResolver(lookup),
		enumerator:   NewEnumerator(api),
		orchestrator: NewOrchestrator(api, DefaultPlan()),
		snowflake:    snowflakeNode,
	}, nil
}

type RunOptions struct {
	Handle      string
	ProfileName string

	// Choose resolves an ambiguous profile choice. Nil means take the most
	// recently saved profile.
	Choose ChooseFunc
}

// Run executes one extraction end to end and returns its report. Resolution,
// enumeration and output-directory failures are fatal; individual plan
// entries are not.
func (ex *Extractor) Run(ctx context.Context, opts RunOptions) (*Report, error) {
	identity, err := ex.resolver.Resolve(ctx, opts.Handle)
	if err != nil {
		return nil, err
	}

	profiles, err := ex.enumerator.Enumerate(ctx, identity)
	if err != nil {
		return nil, err
	}

	selected, err := Select(profiles, opts.ProfileName, opts.Choose)
	if err != nil {
		return nil, err
	}
	if selected == nil {
		return nil, fmt.Errorf("no profile selected")
	}
	log.Info().Str("profile", selected.CuteName).Str("mode", selected.Mode.String()).Msg("Selected profile")

	outputDir, err := CreateOutputDir(ex.cfg.OutputRoot, identity.Handle, selected.CuteName, time.Now())
	if err != nil {
		return nil, err
	}
	log.Info().Str("dir", outputDir).Msg("Created output directory")

	runID := ex.snowflake.Generate().String()
	report := ex.orchestrator.Extract(ctx, identity, selected, outputDir, runID)

	log.Info().
		Str("run_id", report.RunID).
		Int("success", report.Success).
		Int("total", report.Total).
		Str("dir", report.OutputDir).
		Msg("Extraction completed")

	return report, nil
}
