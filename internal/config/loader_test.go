package config

import (
	"strings"
	"testing"

	"github.com/MrWong99/voxroll/internal/voice"
)

const minimalYAML = `
discord:
  token: "abc123"
dectalk:
  binary_path: "/usr/local/bin/say"
`

func TestLoadFromReader_MinimalConfigGetsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromReader(strings.NewReader(minimalYAML))
	if err != nil {
		t.Fatalf("LoadFromReader unexpected error: %v", err)
	}

	if cfg.Server.LogLevel != LogInfo {
		t.Errorf("LogLevel = %q, want %q", cfg.Server.LogLevel, LogInfo)
	}
	if cfg.Dectalk.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.Dectalk.TimeoutSeconds)
	}
	if cfg.Voice.Mode != ModeGenerated {
		t.Errorf("Mode = %q, want %q", cfg.Voice.Mode, ModeGenerated)
	}
	if cfg.Voice.SexPolicy != voice.PolicyStream {
		t.Errorf("SexPolicy = %q, want %q", cfg.Voice.SexPolicy, voice.PolicyStream)
	}
	if cfg.Voice.Palette != "pbhfdkurw" {
		t.Errorf("Palette = %q, want %q", cfg.Voice.Palette, "pbhfdkurw")
	}
	if cfg.Voice.Store.Backend != StoreFile {
		t.Errorf("Store.Backend = %q, want %q", cfg.Voice.Store.Backend, StoreFile)
	}
	if cfg.Voice.Store.Path != "data/rolls.json" {
		t.Errorf("Store.Path = %q, want %q", cfg.Voice.Store.Path, "data/rolls.json")
	}
	if cfg.Playback.Volume != 0.25 {
		t.Errorf("Volume = %v, want 0.25", cfg.Playback.Volume)
	}
	if cfg.Playback.MaxDurationSeconds != 15 {
		t.Errorf("MaxDurationSeconds = %v, want 15", cfg.Playback.MaxDurationSeconds)
	}
	if cfg.Playback.MaxMessageLength != 256 {
		t.Errorf("MaxMessageLength = %d, want 256", cfg.Playback.MaxMessageLength)
	}
}

func TestLoadFromReader_FullConfig(t *testing.T) {
	t.Parallel()

	yml := `
server:
  listen_addr: ":9090"
  log_level: debug
discord:
  token: "tok"
  owner_id: "123456789012345678"
dectalk:
  binary_path: "/opt/dectalk/say"
  scratch_dir: "/tmp/voxroll"
  timeout_seconds: 10
voice:
  mode: palette
  sex_policy: roll-parity
  palette: "pwf"
  store:
    backend: postgres
    postgres_dsn: "postgres://voxroll@localhost/voxroll"
playback:
  volume: 0.5
  max_duration_seconds: 30
  max_message_length: 512
`
	cfg, err := LoadFromReader(strings.NewReader(yml))
	if err != nil {
		t.Fatalf("LoadFromReader unexpected error: %v", err)
	}

	if cfg.Server.ListenAddr != ":9090" || cfg.Server.LogLevel != LogDebug {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Discord.OwnerID != "123456789012345678" {
		t.Errorf("OwnerID = %q", cfg.Discord.OwnerID)
	}
	if cfg.Voice.Mode != ModePalette || cfg.Voice.SexPolicy != voice.PolicyRollParity {
		t.Errorf("voice = %+v", cfg.Voice)
	}
	if cfg.Voice.Store.Backend != StorePostgres {
		t.Errorf("Store.Backend = %q", cfg.Voice.Store.Backend)
	}
	if cfg.Playback.Volume != 0.5 || cfg.Playback.MaxDurationSeconds != 30 {
		t.Errorf("playback = %+v", cfg.Playback)
	}
}

func TestLoadFromReader_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	yml := minimalYAML + `
unknown_section:
  foo: bar
`
	if _, err := LoadFromReader(strings.NewReader(yml)); err == nil {
		t.Fatal("expected error for unknown top-level field")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		cfg := &Config{}
		cfg.Discord.Token = "tok"
		cfg.Dectalk.BinaryPath = "/usr/bin/say"
		ApplyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid baseline", func(*Config) {}, ""},
		{"missing token", func(c *Config) { c.Discord.Token = "" }, "discord.token"},
		{"bad owner id", func(c *Config) { c.Discord.OwnerID = "not-a-number" }, "owner_id"},
		{"missing binary path", func(c *Config) { c.Dectalk.BinaryPath = "" }, "binary_path"},
		{"negative timeout", func(c *Config) { c.Dectalk.TimeoutSeconds = -1 }, "timeout_seconds"},
		{"bad log level", func(c *Config) { c.Server.LogLevel = "verbose" }, "log_level"},
		{"bad voice mode", func(c *Config) { c.Voice.Mode = "random" }, "voice.mode"},
		{"bad sex policy", func(c *Config) { c.Voice.SexPolicy = "coin" }, "sex_policy"},
		{"empty palette in palette mode", func(c *Config) {
			c.Voice.Mode = ModePalette
			c.Voice.Palette = ""
		}, "palette"},
		{"bad store backend", func(c *Config) { c.Voice.Store.Backend = "redis" }, "store.backend"},
		{"postgres without dsn", func(c *Config) { c.Voice.Store.Backend = StorePostgres }, "postgres_dsn"},
		{"volume too high", func(c *Config) { c.Playback.Volume = 1.5 }, "volume"},
		{"volume zero", func(c *Config) { c.Playback.Volume = -0.1 }, "volume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_JoinsMultipleErrors(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	ApplyDefaults(cfg)
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected errors for empty config")
	}
	for _, want := range []string{"discord.token", "dectalk.binary_path"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error %q missing %q", err, want)
		}
	}
}
