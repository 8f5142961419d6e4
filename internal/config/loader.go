package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/MrWong99/voxroll/internal/voice"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config] with defaults applied. It is a convenience wrapper around
// [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults, and
// validates the result. Useful in tests where configs are constructed from
// string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	ApplyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills in default values for fields left unset.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = LogInfo
	}
	if cfg.Dectalk.TimeoutSeconds == 0 {
		cfg.Dectalk.TimeoutSeconds = 30
	}
	if cfg.Voice.Mode == "" {
		cfg.Voice.Mode = ModeGenerated
	}
	if cfg.Voice.SexPolicy == "" {
		cfg.Voice.SexPolicy = voice.PolicyStream
	}
	if cfg.Voice.Palette == "" {
		cfg.Voice.Palette = "pbhfdkurw"
	}
	if cfg.Voice.Store.Backend == "" {
		cfg.Voice.Store.Backend = StoreFile
	}
	if cfg.Voice.Store.Path == "" {
		cfg.Voice.Store.Path = "data/rolls.json"
	}
	if cfg.Playback.Volume == 0 {
		cfg.Playback.Volume = 0.25
	}
	if cfg.Playback.MaxDurationSeconds == 0 {
		cfg.Playback.MaxDurationSeconds = 15
	}
	if cfg.Playback.MaxMessageLength == 0 {
		cfg.Playback.MaxMessageLength = 256
	}
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	if cfg.Discord.Token == "" {
		errs = append(errs, errors.New("discord.token is required"))
	}
	if cfg.Discord.OwnerID != "" {
		if _, err := strconv.ParseUint(cfg.Discord.OwnerID, 10, 64); err != nil {
			errs = append(errs, fmt.Errorf("discord.owner_id %q is not a valid user ID", cfg.Discord.OwnerID))
		}
	}

	if cfg.Dectalk.BinaryPath == "" {
		errs = append(errs, errors.New("dectalk.binary_path is required"))
	}
	if cfg.Dectalk.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("dectalk.timeout_seconds %d must not be negative", cfg.Dectalk.TimeoutSeconds))
	}

	if !cfg.Voice.Mode.IsValid() {
		errs = append(errs, fmt.Errorf("voice.mode %q is invalid; valid values: generated, palette", cfg.Voice.Mode))
	}
	if !cfg.Voice.SexPolicy.IsValid() {
		errs = append(errs, fmt.Errorf("voice.sex_policy %q is invalid; valid values: stream, roll-parity", cfg.Voice.SexPolicy))
	}
	if cfg.Voice.Mode == ModePalette && cfg.Voice.Palette == "" {
		errs = append(errs, errors.New("voice.palette must not be empty in palette mode"))
	}
	if !cfg.Voice.Store.Backend.IsValid() {
		errs = append(errs, fmt.Errorf("voice.store.backend %q is invalid; valid values: file, postgres", cfg.Voice.Store.Backend))
	}
	if cfg.Voice.Store.Backend == StorePostgres && cfg.Voice.Store.PostgresDSN == "" {
		errs = append(errs, errors.New("voice.store.postgres_dsn is required for the postgres backend"))
	}

	if cfg.Playback.Volume <= 0 || cfg.Playback.Volume > 1 {
		errs = append(errs, fmt.Errorf("playback.volume %.2f is out of range (0, 1]", cfg.Playback.Volume))
	}
	if cfg.Playback.MaxDurationSeconds < 0 {
		errs = append(errs, fmt.Errorf("playback.max_duration_seconds %.1f must not be negative", cfg.Playback.MaxDurationSeconds))
	}
	if cfg.Playback.MaxMessageLength < 0 {
		errs = append(errs, fmt.Errorf("playback.max_message_length %d must not be negative", cfg.Playback.MaxMessageLength))
	}

	return errors.Join(errs...)
}
