package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/hurricaneship/internal/game"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultGameConfigIsValid(t *testing.T) {
	gc, err := Default().GameConfig()
	require.NoError(t, err)
	assert.Equal(t, game.DefaultConfig(), gc)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "hurricane.toml", `
[game]
ship_speed = 600.0
starting_lives = 5
single_meteor_slot = true

[game.ship_size]
x = 64.0
y = 32.0

[logging]
level = "debug"
format = "json"

[ssh]
port = "2323"
shutdown_timeout = "30s"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 600.0, cfg.Game.ShipSpeed)
	assert.Equal(t, 5, cfg.Game.StartingLives)
	assert.True(t, cfg.Game.SingleMeteorSlot)
	assert.Equal(t, 64.0, cfg.Game.ShipSize.X)
	assert.Equal(t, 32.0, cfg.Game.ShipSize.Y)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "2323", cfg.SSH.Port)
	assert.Equal(t, 30*time.Second, cfg.SSH.ShutdownTimeout)

	// Untouched values keep their defaults.
	assert.Equal(t, game.DefaultConfig().MeteorPeriod, cfg.Game.MeteorPeriod)
	assert.Equal(t, "::", cfg.SSH.Host)
	assert.Equal(t, 60, cfg.Host.FPS)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "hurricane.yaml", `
game:
  meteor_period: 0.75
  arrive_on_target: true
host:
  fps: 30
web:
  display_host: play.example.org
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.75, cfg.Game.MeteorPeriod)
	assert.True(t, cfg.Game.ArriveOnTarget)
	assert.Equal(t, 30, cfg.Host.FPS)
	assert.Equal(t, time.Second/30, cfg.Host.FrameTime())
	assert.Equal(t, "play.example.org", cfg.Web.DisplayHost)
	assert.Equal(t, game.DefaultConfig().ShipSpeed, cfg.Game.ShipSpeed)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "hurricane.json", `{}`))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(writeFile(t, "bad.yaml", "game:\n  no_such_field: 1\n"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.toml", "[game]\nno_such_field = 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game.no_such_field")

	_, err = Load(writeFile(t, "zero.toml", "[game]\nship_speed = 0.0\n"))
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SSH_PORT", "2022")
	t.Setenv("WEB_PORT", "9090")
	t.Setenv("SSH_DISPLAY_HOST", "ships.example.net")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("HURRICANE_SEED", "42")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "2022", cfg.SSH.Port)
	assert.Equal(t, "9090", cfg.Web.Port)
	assert.Equal(t, "ships.example.net", cfg.Web.DisplayHost)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, uint64(42), cfg.Game.Seed)

	t.Setenv("HURRICANE_SEED", "not-a-number")
	assert.Error(t, Default().ApplyEnv())
}

func TestApplyEnvMaxSessions(t *testing.T) {
	t.Setenv("HURRICANE_MAX_SESSIONS", "25")
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 25, cfg.SSH.MaxSessions)

	t.Setenv("HURRICANE_MAX_SESSIONS", "-1")
	assert.Error(t, Default().ApplyEnv())
}

func TestFromEnvReadsConfigFile(t *testing.T) {
	path := writeFile(t, "hurricane.yml", "game:\n  starting_lives: 9\n")
	t.Setenv("HURRICANE_CONFIG", path)
	t.Setenv("SSH_HOST", "127.0.0.1")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Game.StartingLives)
	assert.Equal(t, "127.0.0.1", cfg.SSH.Host)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("HURRICANE_TEST_SET", "value")
	assert.Equal(t, "value", GetEnv("HURRICANE_TEST_SET", "fallback"))
	assert.Equal(t, "fallback", GetEnv("HURRICANE_TEST_UNSET", "fallback"))
}
