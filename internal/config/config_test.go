package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/suggestions/pkg/throttle"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s.", cfg.Prefix)
	assert.Equal(t, "events", cfg.EventsDir)
	assert.Equal(t, []string{".yaml", ".yml"}, cfg.EventExtensions)
	assert.Equal(t, []string{"debug"}, cfg.QuietEvents)
	assert.False(t, cfg.EventsHotReload)
	assert.Equal(t, throttle.Policy{Usages: 2, Duration: 5 * time.Second}, cfg.Throttle())
	assert.Equal(t, 5.0, cfg.GuildCommandRate)
	assert.Equal(t, 10, cfg.GuildCommandBurst)
	assert.Equal(t, "info", cfg.LogLevel)

	color, err := cfg.Color()
	require.NoError(t, err)
	assert.Equal(t, 0xF7A95B, color)

	assert.Error(t, cfg.RequireToken())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("COMMAND_PREFIX", "!")
	t.Setenv("OWNER_IDS", "1,2")
	t.Setenv("STAFF_IDS", "3")
	t.Setenv("SUPPORT_IDS", "4")
	t.Setenv("SUPER_SECRET_IDS", "5")
	t.Setenv("THROTTLE_USAGES", "3")
	t.Setenv("THROTTLE_DURATION", "10s")
	t.Setenv("EVENTS_HOT_RELOAD", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.RequireToken())

	assert.Equal(t, "!", cfg.Prefix)
	assert.Equal(t, throttle.Policy{Usages: 3, Duration: 10 * time.Second}, cfg.Throttle())
	assert.True(t, cfg.EventsHotReload)

	assert.True(t, cfg.IsOwner("1"))
	assert.False(t, cfg.IsOwner("3"))
	assert.True(t, cfg.IsStaff("2"))
	assert.True(t, cfg.IsStaff("3"))
	assert.True(t, cfg.IsSupport("3"))
	assert.True(t, cfg.IsSupport("4"))
	assert.False(t, cfg.IsStaff("4"))
	assert.True(t, cfg.IsSuperSecret("5"))
	assert.True(t, cfg.IsSuperSecret("1"))
	assert.False(t, cfg.IsSuperSecret("4"))
}

func TestLoadDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("COMMAND_PREFIX=?\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("COMMAND_PREFIX") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "?", cfg.Prefix)
}

func TestValidate(t *testing.T) {
	t.Chdir(t.TempDir())

	for key, value := range map[string]string{
		"THROTTLE_USAGES":    "0",
		"THROTTLE_DURATION":  "0s",
		"GUILD_COMMAND_RATE": "-1",
		"EMBED_COLOR":        "orange",
		"COMMAND_PREFIX":     " ",
	} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestCategoryWeight(t *testing.T) {
	assert.Less(t, CategoryWeight("General"), CategoryWeight("Owner"))
	assert.Equal(t, 100, CategoryWeight("Unknown"))
}

func TestDefaultsIgnoreEnvironment(t *testing.T) {
	t.Setenv("COMMAND_PREFIX", "!")
	t.Setenv("OWNER_IDS", "1")

	cfg := Defaults()
	assert.Equal(t, "s.", cfg.Prefix)
	assert.Empty(t, cfg.Owners)
	assert.NoError(t, cfg.Validate())
}
