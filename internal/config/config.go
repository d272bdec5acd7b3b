// /internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/keshon/suggestions/pkg/throttle"
)

// Config is the bot configuration, read from the environment and an
// optional .env file.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN"`
	Prefix       string `env:"COMMAND_PREFIX" envDefault:"s."`

	Owners      []string `env:"OWNER_IDS"`
	Staff       []string `env:"STAFF_IDS"`
	Support     []string `env:"SUPPORT_IDS"`
	SuperSecret []string `env:"SUPER_SECRET_IDS"`

	EventsDir       string   `env:"EVENTS_DIR" envDefault:"events"`
	EventExtensions []string `env:"EVENT_EXTENSIONS" envDefault:".yaml,.yml"`
	QuietEvents     []string `env:"QUIET_EVENTS" envDefault:"debug"`
	EventsHotReload bool     `env:"EVENTS_HOT_RELOAD" envDefault:"false"`

	ThrottleUsages    int           `env:"THROTTLE_USAGES" envDefault:"2"`
	ThrottleDuration  time.Duration `env:"THROTTLE_DURATION" envDefault:"5s"`
	GuildCommandRate  float64       `env:"GUILD_COMMAND_RATE" envDefault:"5"`
	GuildCommandBurst int           `env:"GUILD_COMMAND_BURST" envDefault:"10"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
	LogFile   string `env:"LOG_FILE"`

	EmbedColor  string `env:"EMBED_COLOR" envDefault:"#F7A95B"`
	Description string `env:"BOT_DESCRIPTION" envDefault:"Suggestions for your server, in one place."`
	Website     string `env:"WEBSITE_URL" envDefault:"https://suggestions.gg"`
	Discord     string `env:"DISCORD_URL" envDefault:"https://suggestions.gg/discord"`
	GitHub      string `env:"GITHUB_URL" envDefault:"https://suggestions.gg/github"`
	PrivacyURL  string `env:"PRIVACY_URL" envDefault:"https://suggestions.gg/privacy"`
	TermsURL    string `env:"TERMS_URL" envDefault:"https://suggestions.gg/terms"`
}

// Load reads .env (if present) and the environment. It does not require
// a token; call RequireToken before connecting.
func Load(envFiles ...string) (*Config, error) {
	// a missing .env is fine, the environment may carry everything
	_ = godotenv.Load(envFiles...)

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Defaults returns the configuration with every default applied and
// nothing read from the environment.
func Defaults() *Config {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{Environment: map[string]string{}})
	if err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &cfg
}

// Validate checks values that parse but make no sense.
func (c *Config) Validate() error {
	var errs []error
	if c.ThrottleUsages < 1 {
		errs = append(errs, fmt.Errorf("THROTTLE_USAGES must be at least 1, got %d", c.ThrottleUsages))
	}
	if c.ThrottleDuration <= 0 {
		errs = append(errs, fmt.Errorf("THROTTLE_DURATION must be positive, got %s", c.ThrottleDuration))
	}
	if c.GuildCommandRate < 0 {
		errs = append(errs, fmt.Errorf("GUILD_COMMAND_RATE must not be negative, got %v", c.GuildCommandRate))
	}
	if strings.TrimSpace(c.Prefix) == "" {
		errs = append(errs, errors.New("COMMAND_PREFIX must not be empty"))
	}
	if _, err := c.Color(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// RequireToken fails when no Discord token is configured.
func (c *Config) RequireToken() error {
	if c.DiscordToken == "" {
		return errors.New("DISCORD_TOKEN is not set")
	}
	return nil
}

// Throttle returns the default per-user command throttle policy.
func (c *Config) Throttle() throttle.Policy {
	return throttle.Policy{Usages: c.ThrottleUsages, Duration: c.ThrottleDuration}
}

// Color parses EmbedColor ("#RRGGBB" or "RRGGBB").
func (c *Config) Color() (int, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(c.EmbedColor), "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return 0, fmt.Errorf("EMBED_COLOR %q is not a #RRGGBB color", c.EmbedColor)
	}
	return int(v), nil
}

// IsOwner reports whether userID is a bot owner.
func (c *Config) IsOwner(userID string) bool {
	return slices.Contains(c.Owners, userID)
}

// IsStaff reports whether userID is staff. Owners are staff.
func (c *Config) IsStaff(userID string) bool {
	return c.IsOwner(userID) || slices.Contains(c.Staff, userID)
}

// IsSupport reports whether userID is on the support team. Staff are
// support.
func (c *Config) IsSupport(userID string) bool {
	return c.IsStaff(userID) || slices.Contains(c.Support, userID)
}

// IsSuperSecret reports whether userID has the restricted access level.
func (c *Config) IsSuperSecret(userID string) bool {
	return c.IsOwner(userID) || slices.Contains(c.SuperSecret, userID)
}
