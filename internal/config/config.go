package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Classifier choices. "always" and "never" are deterministic doubles used in
// demos; "off" makes every non-overridden walk fail verification.
const (
	ClassifierRandom = "random"
	ClassifierAlways = "always"
	ClassifierNever  = "never"
	ClassifierOff    = "off"
)

type Config struct {
	Port           string `env:"PORT" envDefault:"3001"`
	StoreDriver    string `env:"STORE_DRIVER" envDefault:"postgres"`
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"migrations"`
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"uploads"`
	Locale         string `env:"LOCALE" envDefault:"es"`
	Timezone       string `env:"TIMEZONE" envDefault:"Europe/Madrid"`

	RejectionQuorum  int `env:"REJECTION_QUORUM" envDefault:"2"`
	TurnWriteRetries int `env:"TURN_WRITE_RETRIES" envDefault:"3"`
	// ReplacementChain is "first" (a stand-in's replacement still names the
	// participant who first gave the turn away) or "latest".
	ReplacementChain string `env:"REPLACEMENT_CHAIN" envDefault:"first"`
	// OverrideRotates lets a manually approved walk pass the turn on. When
	// false the walk is recorded and the turn stays put.
	OverrideRotates bool `env:"OVERRIDE_ROTATES" envDefault:"true"`

	VerificationMode    string        `env:"VERIFICATION_MODE" envDefault:"deferred"`
	VerificationDelay   time.Duration `env:"VERIFICATION_DELAY" envDefault:"30s"`
	VerificationTimeout time.Duration `env:"VERIFICATION_TIMEOUT" envDefault:"10s"`
	PendingTimeout      time.Duration `env:"PENDING_TIMEOUT" envDefault:"10m"`
	SweepInterval       time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`

	Classifier             string  `env:"CLASSIFIER" envDefault:"random"`
	ClassifierApprovalRate float64 `env:"CLASSIFIER_APPROVAL_RATE" envDefault:"0.9"`

	// Discord notifications are enabled when both are set.
	DiscordToken     string `env:"DISCORD_TOKEN"`
	DiscordChannelID string `env:"DISCORD_CHANNEL_ID"`
	// Zero disables the periodic "time to walk" reminder.
	DiscordReminderInterval time.Duration `env:"DISCORD_REMINDER_INTERVAL" envDefault:"0s"`
}

// Load reads an optional .env file, then the environment, and validates the
// result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional when variables come from the environment (Docker, CI, ...).
		log.Println("ℹ️ No .env file, using the environment")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DiscordEnabled reports whether turn changes should be posted to Discord.
func (c *Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return errors.New("config: PORT cannot be empty")
	}

	switch c.StoreDriver {
	case StoreMemory:
	case StorePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			// Handy default for local runs without DATABASE_URL.
			c.DatabaseURL = "postgres://localhost:5432/dogwalk?sslmode=disable"
		}
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
		}
	default:
		return fmt.Errorf("config: STORE_DRIVER must be %q or %q, got %q", StorePostgres, StoreMemory, c.StoreDriver)
	}

	if c.VerificationMode != "inline" && c.VerificationMode != "deferred" {
		return fmt.Errorf("config: VERIFICATION_MODE must be inline or deferred, got %q", c.VerificationMode)
	}
	if c.RejectionQuorum < 1 {
		return fmt.Errorf("config: REJECTION_QUORUM must be at least 1, got %d", c.RejectionQuorum)
	}
	if c.TurnWriteRetries < 0 {
		return fmt.Errorf("config: TURN_WRITE_RETRIES cannot be negative, got %d", c.TurnWriteRetries)
	}
	if c.ReplacementChain != "first" && c.ReplacementChain != "latest" {
		return fmt.Errorf("config: REPLACEMENT_CHAIN must be first or latest, got %q", c.ReplacementChain)
	}
	if c.VerificationDelay < 0 || c.VerificationTimeout < 0 || c.PendingTimeout < 0 || c.DiscordReminderInterval < 0 {
		return errors.New("config: durations cannot be negative")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("config: SWEEP_INTERVAL must be positive, got %s", c.SweepInterval)
	}

	switch c.Classifier {
	case ClassifierRandom, ClassifierAlways, ClassifierNever, ClassifierOff:
	default:
		return fmt.Errorf("config: unknown CLASSIFIER %q", c.Classifier)
	}
	if c.ClassifierApprovalRate < 0 || c.ClassifierApprovalRate > 1 {
		return fmt.Errorf("config: CLASSIFIER_APPROVAL_RATE must be within [0,1], got %v", c.ClassifierApprovalRate)
	}

	for _, r := range c.DiscordChannelID {
		if r < '0' || r > '9' {
			return errors.New("config: DISCORD_CHANNEL_ID must be a Discord channel ID (digits only)")
		}
	}
	return nil
}
