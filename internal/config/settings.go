package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/miniapp-factory/square-invasion/internal/engine"
)

// ErrInvalidSettings is returned for settings that decode but make no sense.
var ErrInvalidSettings = errors.New("invalid settings")

// Environment variables read by FromEnv.
const (
	EnvConfigPath  = "SQUARE_INVASION_CONFIG"
	EnvLogFile     = "LOG_FILE"
	EnvLogLevel    = "LOG_LEVEL"
	EnvGameSeed    = "GAME_SEED"
	EnvGameVariant = "GAME_VARIANT"
)

// Game variants.
const (
	VariantFull    = "full"
	VariantClassic = "classic"
)

// Settings is the contents of the TOML settings file.
//
//	[log]
//	file = "square-invasion.log"
//	level = "debug"
//
//	[game]
//	variant = "classic"
//	seed = 42
//	enemy_fire = true
type Settings struct {
	Log  LogSettings  `toml:"log"`
	Game GameSettings `toml:"game"`
}

// LogSettings configures the logger. An empty File logs to stderr.
type LogSettings struct {
	File       string `toml:"file"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// GameSettings selects the engine variant. Feature fields left unset keep
// the variant's value.
type GameSettings struct {
	Variant     string `toml:"variant"`
	Seed        int64  `toml:"seed"` // 0 seeds every match from the clock
	PowerUps    *bool  `toml:"power_ups"`
	UFOWave     *bool  `toml:"ufo_wave"`
	EnemyFire   *bool  `toml:"enemy_fire"`
	Decorations *bool  `toml:"decorations"`
}

// Default returns the settings used when no file is given.
func Default() Settings {
	return Settings{
		Log: LogSettings{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Game: GameSettings{Variant: VariantFull},
	}
}

// Load reads a settings file over the defaults. A missing file is not an
// error; the defaults apply.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	md, err := toml.DecodeFile(path, &s)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("load settings %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), fmt.Errorf("load settings %s: unknown key %q: %w", path, undecoded[0].String(), ErrInvalidSettings)
	}
	if err := s.Validate(); err != nil {
		return Default(), fmt.Errorf("load settings %s: %w", path, err)
	}
	return s, nil
}

// FromEnv loads the file named by SQUARE_INVASION_CONFIG and applies the
// environment overrides on top.
func FromEnv() (Settings, error) {
	s, err := Load(GetEnv(EnvConfigPath, ""))
	if err != nil {
		return s, err
	}
	if err := s.ApplyEnv(); err != nil {
		return s, err
	}
	return s, nil
}

// ApplyEnv overrides fields from the environment and validates the result.
func (s *Settings) ApplyEnv() error {
	s.Log.File = GetEnv(EnvLogFile, s.Log.File)
	s.Log.Level = GetEnv(EnvLogLevel, s.Log.Level)
	s.Game.Variant = GetEnv(EnvGameVariant, s.Game.Variant)

	seed, err := GetEnvInt(EnvGameSeed, s.Game.Seed)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	s.Game.Seed = seed

	return s.Validate()
}

// Validate checks values the decoder cannot.
func (s *Settings) Validate() error {
	if _, err := zapcore.ParseLevel(s.Log.Level); err != nil {
		return fmt.Errorf("log level %q: %w", s.Log.Level, ErrInvalidSettings)
	}
	if s.Log.MaxSizeMB < 0 || s.Log.MaxBackups < 0 || s.Log.MaxAgeDays < 0 {
		return fmt.Errorf("negative log rotation limit: %w", ErrInvalidSettings)
	}
	switch s.Game.Variant {
	case VariantFull, VariantClassic:
	default:
		return fmt.Errorf("game variant %q: %w", s.Game.Variant, ErrInvalidSettings)
	}
	return nil
}

// EngineConfig builds the engine configuration for the chosen variant.
func (g GameSettings) EngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	if g.Variant == VariantClassic {
		cfg.Features = engine.ClassicFeatures()
	}

	override := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	override(&cfg.Features.PowerUps, g.PowerUps)
	override(&cfg.Features.UFOWave, g.UFOWave)
	override(&cfg.Features.EnemyFire, g.EnemyFire)
	override(&cfg.Features.Decorations, g.Decorations)
	return cfg
}

// EngineFactory returns a constructor for one engine per session.
func (g GameSettings) EngineFactory(log *zap.Logger) func() *engine.Engine {
	cfg := g.EngineConfig()
	return func() *engine.Engine {
		seed := g.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return engine.New(cfg, engine.WithSeed(seed), engine.WithLogger(log))
	}
}
