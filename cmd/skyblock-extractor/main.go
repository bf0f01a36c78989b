package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	skyblockextractor "github.com/Sahaj33-op/Hypixel-SkyBlock-Profile-Extractor"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cmd := &cli.Command{
		Name:        "skyblock-extractor",
		Usage:       "Extract complete Hypixel SkyBlock profile data",
		ArgsUsage:   "[username] [profile]",
		Description: "Resolves a player, lists their SkyBlock profiles, and downloads every data document for the chosen profile into a timestamped directory.",
		Version:     skyblockextractor.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-key", Usage: "Hypixel API key", Sources: cli.EnvVars("HYPIXEL_API_KEY")},
			&cli.StringFlag{Name: "api-key-file", Value: "api_key.txt", Usage: "File holding the Hypixel API key", Sources: cli.EnvVars("HYPIXEL_API_KEY_FILE")},
			&cli.StringFlag{Name: "base-url", Value: skyblockextractor.DefaultAPIBaseURL, Sources: cli.EnvVars("HYPIXEL_API_BASE_URL")},
			&cli.StringFlag{Name: "lookup-url", Value: skyblockextractor.DefaultLookupBaseURL, Sources: cli.EnvVars("LOOKUP_BASE_URL")},
			&cli.StringFlag{Name: "profile", Aliases: []string{"p"}, Usage: "Specific profile name to extract"},
			&cli.BoolFlag{Name: "silent", Aliases: []string{"s"}, Usage: "Run without interactive prompts", Sources: cli.EnvVars("SILENT")},
			&cli.StringFlag{Name: "output-root", Value: ".", Usage: "Directory to create run output directories under", Sources: cli.EnvVars("OUTPUT_ROOT")},
			&cli.IntFlag{Name: "max-retry-count", Value: skyblockextractor.DefaultMaxRetryCount, Sources: cli.EnvVars("MAX_RETRY_COUNT")},
			&cli.DurationFlag{Name: "rate-limit", Value: skyblockextractor.DefaultRateLimit, Usage: "Delay between API requests", Sources: cli.EnvVars("RATE_LIMIT")},
			&cli.DurationFlag{Name: "timeout", Value: skyblockextractor.DefaultTimeout, Sources: cli.EnvVars("REQUEST_TIMEOUT")},
			&cli.IntFlag{Name: "snowflake-node-id", Sources: cli.EnvVars("SNOWFLAKE_NODE_ID")},
			&cli.StringFlag{Name: "log-level", Value: "info", Usage: "Set the logging level (debug, info, warn, error, fatal, panic)", Sources: cli.EnvVars("LOG_LEVEL")},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Err(err).Msg("Failed to run command")
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	level, err := zerolog.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.Logger = log.Level(level)

	silent := cmd.Bool("silent")

	handle := cmd.Args().Get(0)
	if handle == "" {
		if silent {
			return fmt.Errorf("username is required in silent mode")
		}
		handle, err = promptLine("Enter your Minecraft username: ")
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
		if handle == "" {
			return fmt.Errorf("username is required")
		}
	}

	profileName := cmd.String("profile")
	if profileName == "" {
		profileName = cmd.Args().Get(1)
	}

	apiKey, err := resolveAPIKey(cmd, silent)
	if err != nil {
		return err
	}

	cfg := &skyblockextractor.Config{
		APIBaseURL:      cmd.String("base-url"),
		LookupBaseURL:   cmd.String("lookup-url"),
		APIKey:          apiKey,
		UserAgent:       skyblockextractor.DefaultUserAgent,
		RateLimit:       cmd.Duration("rate-limit"),
		RequestTimeout:  cmd.Duration("timeout"),
		MaxRetryCount:   int(cmd.Int("max-retry-count")),
		OutputRoot:      cmd.String("output-root"),
		SnowflakeNodeID: cmd.Int("snowflake-node-id"),
	}

	log.Info().Msg("Creating extractor instance")
	ex, err := skyblockextractor.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create extractor instance: %w", err)
	}

	opts := skyblockextractor.RunOptions{
		Handle:      handle,
		ProfileName: profileName,
	}
	if !silent {
		opts.Choose = chooseProfile
	}

	report, err := ex.Run(ctx, opts)
	if err != nil {
		return err
	}

	report.RenderTable(os.Stdout)
	fmt.Printf("Output directory: %s\n", report.OutputDir)

	return nil
}

// resolveAPIKey takes the key from the flag or environment, then the key
// file, and finally an interactive prompt. A newly entered key is persisted
// to the key file for later runs. The key itself is never logged.
func resolveAPIKey(cmd *cli.Command, silent bool) (string, error) {
	if key := cmd.String("api-key"); key != "" {
		return key, nil
	}

	path := cmd.String("api-key-file")
	key, err := skyblockextractor.LoadAPIKey(path)
	if err != nil {
		return "", err
	}
	if key != "" {
		return key, nil
	}

	if silent {
		return "", fmt.Errorf("API key is required in silent mode (set --api-key or %s)", path)
	}

	key, err = promptLine("Enter your Hypixel API key: ")
	if err != nil {
		return "", fmt.Errorf("failed to read API key: %w", err)
	}
	if key == "" {
		return "", fmt.Errorf("API key is required")
	}
	if err := skyblockextractor.SaveAPIKey(path, key); err != nil {
		log.Warn().Msgf("Could not save API key: %s", err)
	}
	return key, nil
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// chooseProfile presents the ordered profiles and reads a 1-based choice,
// defaulting to the first, most recently saved, entry.
func chooseProfile(profiles []skyblockextractor.ProfileSummary) (int, error) {
	fmt.Println("\nAvailable profiles:")
	for i, p := range profiles {
		marker := ""
		if p.Current {
			marker = " (most recent)"
		}
		fmt.Printf("  %d. %s [%s]%s\n", i+1, p.CuteName, p.Mode, marker)
	}

	for {
		line, err := promptLine(fmt.Sprintf("Select profile [1-%d, default 1]: ", len(profiles)))
		if err != nil {
			return 0, err
		}
		if line == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(profiles) {
			fmt.Println("Invalid choice. Please try again.")
			continue
		}
		return n - 1, nil
	}
}
