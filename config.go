package skyblockextractor

import (
	"fmt"
	"time"
)

type Config struct {
	APIBaseURL    string `json:"api_base_url"`
	LookupBaseURL string `json:"lookup_base_url"`
	APIKey        string `json:"api_key"`
	UserAgent     string `json:"user_agent"`

	RateLimit      time.Duration `json:"rate_limit"`
	RequestTimeout time.Duration `json:"request_timeout"`
	MaxRetryCount  int           `json:"max_retry_count"`

	OutputRoot      string `json:"output_root"`
	SnowflakeNodeID int64  `json:"snowflake_node_id"`
}

func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API base URL cannot be empty")
	}
	if c.LookupBaseURL == "" {
		return fmt.Errorf("lookup base URL cannot be empty")
	}
	if c.APIKey == "" {
		return fmt.Errorf("API key cannot be empty")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit cannot be negative")
	}
	if c.MaxRetryCount < 1 {
		return fmt.Errorf("invalid max retry count: %d, must be at least 1", c.MaxRetryCount)
	}
	if c.SnowflakeNodeID < 0 || c.SnowflakeNodeID > 1023 {
		return fmt.Errorf("invalid snowflake node ID: %d, must be between 0 and 1023", c.SnowflakeNodeID)
	}

	return nil
}
