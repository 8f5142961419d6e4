// Package config provides the configuration schema and YAML loader for the
// voxroll bot.
package config

import "github.com/MrWong99/voxroll/internal/voice"

// LogLevel controls log verbosity for the voxroll process.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// VoiceMode selects how per-user voices are chosen.
type VoiceMode string

const (
	// ModeGenerated derives a full DECtalk parameter profile per user from
	// their ID and roll.
	ModeGenerated VoiceMode = "generated"

	// ModePalette assigns each user one of the engine's built-in voices by
	// letter, rotating through a fixed palette.
	ModePalette VoiceMode = "palette"
)

// IsValid reports whether m is a recognised voice mode.
func (m VoiceMode) IsValid() bool {
	return m == ModeGenerated || m == ModePalette
}

// StoreBackend selects the roll persistence backend.
type StoreBackend string

const (
	StoreFile     StoreBackend = "file"
	StorePostgres StoreBackend = "postgres"
)

// IsValid reports whether b is a recognised store backend.
func (b StoreBackend) IsValid() bool {
	return b == StoreFile || b == StorePostgres
}

// Config is the root configuration structure for voxroll.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Discord  DiscordConfig  `yaml:"discord"`
	Dectalk  DectalkConfig  `yaml:"dectalk"`
	Voice    VoiceConfig    `yaml:"voice"`
	Playback PlaybackConfig `yaml:"playback"`
}

// ServerConfig holds the observability endpoint and logging settings.
type ServerConfig struct {
	// ListenAddr is the TCP address serving /metrics, /healthz, and
	// /readyz (e.g., ":8080"). Empty disables the HTTP server.
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity. Defaults to "info".
	LogLevel LogLevel `yaml:"log_level"`
}

// DiscordConfig holds Discord gateway settings.
type DiscordConfig struct {
	// Token is the Discord bot token.
	Token string `yaml:"token"`

	// OwnerID is the Discord user ID exempt from the message length and
	// playback duration limits; the owner always speaks with the Paul
	// preset.
	OwnerID string `yaml:"owner_id"`
}

// DectalkConfig describes the external speech engine binary.
type DectalkConfig struct {
	// BinaryPath is the path to the DECtalk "say" executable.
	BinaryPath string `yaml:"binary_path"`

	// ScratchDir is where synthesis output WAVs are written before being
	// read back. Defaults to the system temp directory.
	ScratchDir string `yaml:"scratch_dir"`

	// TimeoutSeconds bounds a single synthesis run. Defaults to 30.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// VoiceConfig controls voice derivation and roll persistence.
type VoiceConfig struct {
	// Mode selects generated profiles or the built-in voice palette.
	// Defaults to "generated".
	Mode VoiceMode `yaml:"mode"`

	// SexPolicy selects how the sex flag of a generated profile is derived
	// ("stream" or "roll-parity"). Changing it changes every existing
	// voice. Defaults to "stream".
	SexPolicy voice.SexPolicy `yaml:"sex_policy"`

	// Palette lists the built-in voice selector letters used in palette
	// mode, in rotation order. Defaults to "pbhfdkurw".
	Palette string `yaml:"palette"`

	// Store configures roll persistence.
	Store StoreConfig `yaml:"store"`
}

// StoreConfig selects and configures the roll persistence backend.
type StoreConfig struct {
	// Backend is "file" (default) or "postgres".
	Backend StoreBackend `yaml:"backend"`

	// Path is the JSON file path for the file backend.
	// Defaults to "data/rolls.json".
	Path string `yaml:"path"`

	// PostgresDSN is the connection string for the postgres backend.
	PostgresDSN string `yaml:"postgres_dsn"`
}

// PlaybackConfig holds the voice-channel playback policy.
type PlaybackConfig struct {
	// Volume is the gain applied before Opus encoding, in (0, 1].
	// Defaults to 0.25.
	Volume float64 `yaml:"volume"`

	// MaxDurationSeconds rejects synthesized clips longer than this for
	// non-owner users. Defaults to 15.
	MaxDurationSeconds float64 `yaml:"max_duration_seconds"`

	// MaxMessageLength rejects messages longer than this many bytes for
	// non-owner users. Defaults to 256.
	MaxMessageLength int `yaml:"max_message_length"`
}
