package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/miniapp-factory/square-invasion/internal/engine"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s != Default() {
		t.Fatalf("settings = %+v, want defaults", s)
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
[log]
file = "game.log"
level = "debug"

[game]
variant = "classic"
seed = 42
enemy_fire = true
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Log.File != "game.log" || s.Log.Level != "debug" || s.Log.MaxBackups != 3 {
		t.Errorf("log = %+v", s.Log)
	}
	if s.Game.Seed != 42 || s.Game.Variant != VariantClassic {
		t.Errorf("game = %+v", s.Game)
	}

	want := engine.ClassicFeatures()
	want.EnemyFire = true
	if got := s.Game.EngineConfig().Features; got != want {
		t.Errorf("features = %+v, want %+v", got, want)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad variant", "[game]\nvariant = \"arcade\"\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
		{"unknown key", "[game]\nlives = 3\n"},
		{"negative rotation", "[log]\nmax_backups = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("Load error = %v, want ErrInvalidSettings", err)
			}
		})
	}
}

func TestLoadSyntaxError(t *testing.T) {
	_, err := Load(writeFile(t, "[game\n"))
	if err == nil || errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("Load error = %v, want a decode error", err)
	}
}

func TestFromEnv(t *testing.T) {
	path := writeFile(t, "[game]\nvariant = \"classic\"\nseed = 7\n")
	t.Setenv(EnvConfigPath, path)
	t.Setenv(EnvGameSeed, "99")
	t.Setenv(EnvGameVariant, VariantFull)
	t.Setenv(EnvLogLevel, "warn")

	s, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if s.Game.Seed != 99 || s.Game.Variant != VariantFull || s.Log.Level != "warn" {
		t.Fatalf("settings = %+v", s)
	}
}

func TestFromEnvBadSeed(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvGameSeed, "many")
	if _, err := FromEnv(); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("FromEnv error = %v, want ErrInvalidSettings", err)
	}
}

func TestEngineConfigVariants(t *testing.T) {
	full := GameSettings{Variant: VariantFull}.EngineConfig()
	if full.Features != engine.FullFeatures() {
		t.Errorf("full features = %+v", full.Features)
	}

	off := false
	noUFO := GameSettings{Variant: VariantFull, UFOWave: &off}.EngineConfig()
	if noUFO.Features.UFOWave || !noUFO.Features.PowerUps {
		t.Errorf("override features = %+v", noUFO.Features)
	}
}

func TestEngineFactorySeeded(t *testing.T) {
	newEngine := GameSettings{Variant: VariantFull, Seed: 5}.EngineFactory(nil)
	a, b := newEngine(), newEngine()
	a.Start()
	b.Start()
	for range 200 {
		a.Step()
		b.Step()
	}
	sa, sb := a.Snapshot(), b.Snapshot()
	if len(sa.Particles) != len(sb.Particles) {
		t.Fatalf("particle counts differ: %d vs %d", len(sa.Particles), len(sb.Particles))
	}
	for i := range sa.Particles {
		if sa.Particles[i] != sb.Particles[i] {
			t.Fatalf("particle %d differs with the same seed", i)
		}
	}
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("SQ_TEST_INT", "12")
	t.Setenv("SQ_TEST_BOOL", "true")
	t.Setenv("SQ_TEST_BAD", "x")

	if n, err := GetEnvInt("SQ_TEST_INT", 1); err != nil || n != 12 {
		t.Errorf("GetEnvInt = %d, %v", n, err)
	}
	if n, err := GetEnvInt("SQ_TEST_UNSET", 3); err != nil || n != 3 {
		t.Errorf("GetEnvInt unset = %d, %v", n, err)
	}
	if _, err := GetEnvInt("SQ_TEST_BAD", 0); err == nil {
		t.Error("GetEnvInt accepted a non-number")
	}
	if b, err := GetEnvBool("SQ_TEST_BOOL", false); err != nil || !b {
		t.Errorf("GetEnvBool = %v, %v", b, err)
	}
	if _, err := GetEnvBool("SQ_TEST_BAD", false); err == nil {
		t.Error("GetEnvBool accepted garbage")
	}
	if got := GetEnv("SQ_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q", got)
	}
}
