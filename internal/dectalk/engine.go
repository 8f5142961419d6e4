package dectalk

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrWong99/voxroll/internal/voice"
)

const defaultTimeout = 30 * time.Second

// Option is a functional option for configuring an Engine.
type Option func(*Engine)

// WithScratchDir sets the directory for temporary WAV files. An empty dir
// is ignored so the default (the system temp directory) survives an unset
// config value.
func WithScratchDir(dir string) Option {
	return func(e *Engine) {
		if dir != "" {
			e.scratchDir = dir
		}
	}
}

// WithTimeout bounds a single synthesis run. Defaults to 30 s.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// Engine invokes the external DECtalk "say" binary. Each synthesis writes a
// uniquely named scratch WAV, reads it back into memory, and removes it
// before returning; nothing is left on disk. Safe for concurrent use —
// every call runs its own process against its own scratch file.
type Engine struct {
	binPath    string
	scratchDir string
	timeout    time.Duration
}

// New creates an Engine that runs the binary at binPath.
func New(binPath string, opts ...Option) (*Engine, error) {
	if binPath == "" {
		return nil, fmt.Errorf("dectalk: binary path must not be empty")
	}
	e := &Engine{
		binPath:    binPath,
		scratchDir: os.TempDir(),
		timeout:    defaultTimeout,
	}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// Check reports whether the configured binary exists and is a regular
// file. Used by the readiness probe.
func (e *Engine) Check(_ context.Context) error {
	info, err := os.Stat(e.binPath)
	if err != nil {
		return fmt.Errorf("dectalk: stat %q: %w", e.binPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("dectalk: %q is a directory", e.binPath)
	}
	return nil
}

// Synthesize runs the engine with the control sequence for profile p and
// returns the produced WAV bytes.
func (e *Engine) Synthesize(ctx context.Context, text string, p voice.Profile) ([]byte, error) {
	return e.run(ctx, text, ControlSequence(p))
}

// SynthesizeSelector is the palette-mode variant of Synthesize: the voice
// is one of the engine's built-ins chosen by its single-letter selector.
func (e *Engine) SynthesizeSelector(ctx context.Context, text string, selector rune) ([]byte, error) {
	return e.run(ctx, text, SelectorSequence(selector))
}

// run executes the say binary with the given pre-text control sequence and
// collects the scratch WAV it writes.
func (e *Engine) run(ctx context.Context, text, pre string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	scratch := filepath.Join(e.scratchDir, uuid.NewString()+".wav")
	defer func() {
		if err := os.Remove(scratch); err != nil && !os.IsNotExist(err) {
			slog.Warn("dectalk: failed to remove scratch file", "path", scratch, "err", err)
		}
	}()

	start := time.Now()
	cmd := exec.CommandContext(ctx, e.binPath, "-a", text, "-fo", scratch, "-pre", pre)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("dectalk: run say: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("dectalk: run say: %w", err)
	}

	data, err := os.ReadFile(scratch)
	if err != nil {
		return nil, fmt.Errorf("dectalk: read output %q: %w", scratch, err)
	}

	slog.Debug("dectalk synthesis complete",
		"bytes", len(data),
		"duration", time.Since(start),
	)
	return data, nil
}
