package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "3001" || cfg.Locale != "es" || cfg.RejectionQuorum != 2 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.VerificationDelay != 30*time.Second || cfg.VerificationMode != "deferred" {
		t.Errorf("unexpected verification defaults: %+v", cfg)
	}
	if !cfg.OverrideRotates {
		t.Error("manual overrides rotate by default")
	}
	if cfg.DiscordEnabled() {
		t.Error("Discord must be disabled without a token")
	}
}

func TestLoadPostgresDefaultURL(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !strings.HasPrefix(cfg.DatabaseURL, "postgres://localhost") {
		t.Errorf("expected local default, got %q", cfg.DatabaseURL)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"store driver", "STORE_DRIVER", "mongo", "STORE_DRIVER"},
		{"mode", "VERIFICATION_MODE", "later", "VERIFICATION_MODE"},
		{"quorum", "REJECTION_QUORUM", "0", "REJECTION_QUORUM"},
		{"replacement chain", "REPLACEMENT_CHAIN", "oldest", "REPLACEMENT_CHAIN"},
		{"classifier", "CLASSIFIER", "gpt", "CLASSIFIER"},
		{"approval rate", "CLASSIFIER_APPROVAL_RATE", "1.5", "CLASSIFIER_APPROVAL_RATE"},
		{"channel id", "DISCORD_CHANNEL_ID", "general", "DISCORD_CHANNEL_ID"},
		{"duration", "VERIFICATION_DELAY", "soon", "parse env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORE_DRIVER", "memory")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateDatabaseURL(t *testing.T) {
	cfg := &Config{
		Port: "3001", StoreDriver: StorePostgres, DatabaseURL: "not a url",
		VerificationMode: "inline", RejectionQuorum: 2, ReplacementChain: "first", SweepInterval: time.Minute,
		Classifier: ClassifierRandom,
	}
	if err := cfg.validate(); err == nil {
		t.Fatal("expected invalid DATABASE_URL error")
	}
}
