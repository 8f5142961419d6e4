// Package discord provides the Discord bot layer for voxroll. It owns the
// discordgo.Session lifecycle, turns text messages into synthesized speech,
// and manages per-guild voice channel connections.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/MrWong99/voxroll/internal/config"
	"github.com/MrWong99/voxroll/internal/dectalk"
	"github.com/MrWong99/voxroll/internal/observe"
	"github.com/MrWong99/voxroll/internal/voice"
)

// Config holds the Discord bot configuration and policy knobs.
type Config struct {
	// Token is the Discord bot token (without the "Bot " prefix).
	Token string

	// OwnerID is the user exempt from length and duration limits. The
	// owner always speaks with the Paul preset. May be empty.
	OwnerID string

	// Mode selects generated profiles or the built-in voice palette.
	Mode config.VoiceMode

	// Palette lists the selector letters for palette mode.
	Palette string

	// Volume is the playback gain in (0, 1].
	Volume float64

	// MaxDurationSeconds rejects clips longer than this for non-owners.
	MaxDurationSeconds float64

	// MaxMessageLength rejects messages longer than this for non-owners.
	MaxMessageLength int
}

// Bot owns the Discord gateway connection. Incoming guild messages from
// users sitting in a voice channel are synthesized and played back into
// that channel.
type Bot struct {
	cfg     Config
	session *discordgo.Session

	voices    *voice.Manager
	allocator *voice.Allocator
	engine    *dectalk.Engine
	metrics   *observe.Metrics

	mu sync.Mutex
	// guildUsers tracks which users the bot has spoken for per guild while
	// they remain in voice. When a guild's set drains, the bot leaves.
	guildUsers map[string]map[string]struct{}
	// conns holds the live voice connection per guild.
	conns map[string]*discordgo.VoiceConnection
	// playMu serialises playback per guild so clips do not interleave.
	playMu map[string]*sync.Mutex

	closeOnce sync.Once
}

// New creates a Bot and connects it to the Discord gateway.
func New(cfg Config, voices *voice.Manager, engine *dectalk.Engine, metrics *observe.Metrics) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsMessageContent

	b := &Bot{
		cfg:        cfg,
		session:    session,
		voices:     voices,
		allocator:  voice.NewAllocator([]rune(cfg.Palette)),
		engine:     engine,
		metrics:    metrics,
		guildUsers: map[string]map[string]struct{}{},
		conns:      map[string]*discordgo.VoiceConnection{},
		playMu:     map[string]*sync.Mutex{},
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onVoiceStateUpdate)

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("discord: open session: %w", err)
	}
	return b, nil
}

// Run blocks until ctx is cancelled. Event handling happens on the
// session's own goroutines.
func (b *Bot) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// Close disconnects all voice channels and closes the gateway session.
func (b *Bot) Close() error {
	var closeErr error
	b.closeOnce.Do(func() {
		b.mu.Lock()
		conns := make([]*discordgo.VoiceConnection, 0, len(b.conns))
		for _, vc := range b.conns {
			conns = append(conns, vc)
		}
		b.conns = map[string]*discordgo.VoiceConnection{}
		b.mu.Unlock()

		for _, vc := range conns {
			if err := vc.Disconnect(); err != nil {
				slog.Warn("discord: voice disconnect failed", "err", err)
			}
		}

		if err := b.session.Close(); err != nil {
			closeErr = fmt.Errorf("discord: close session: %w", err)
		}
		slog.Info("discord bot closed")
	})
	return closeErr
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	slog.Info("discord gateway ready", "user", r.User.Username)
}

// parseSnowflake converts a Discord ID string to its numeric form.
func parseSnowflake(id string) (uint64, error) {
	v, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("discord: parse snowflake %q: %w", id, err)
	}
	return v, nil
}

// guildMutex returns the playback mutex for guildID, creating it on first
// use.
func (b *Bot) guildMutex(guildID string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()
	mu, ok := b.playMu[guildID]
	if !ok {
		mu = &sync.Mutex{}
		b.playMu[guildID] = mu
	}
	return mu
}
