package discord

import (
	"context"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/MrWong99/voxroll/internal/config"
	"github.com/MrWong99/voxroll/internal/voice"
	"github.com/MrWong99/voxroll/pkg/audio/wav"
)

// onMessageCreate is the main pipeline: a guild message from a user sitting
// in the matching voice channel is sanitized, synthesized, measured,
// normalized, and queued for playback.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	ctx := context.Background()
	authorID, err := parseSnowflake(m.Author.ID)
	if err != nil {
		slog.Warn("discord: unparseable author id", "author_id", m.Author.ID)
		return
	}
	isOwner := b.cfg.OwnerID != "" && m.Author.ID == b.cfg.OwnerID

	if roll, ok := RequestedRoll(m.Content); ok {
		b.metrics.RollChanges.Add(ctx, 1)
		if err := b.voices.SetRoll(ctx, authorID, roll); err != nil {
			slog.Error("discord: failed to persist roll", "user_id", m.Author.ID, "err", err)
		}
	}

	if !isOwner && len(m.Content) > b.cfg.MaxMessageLength {
		b.metrics.RecordRejection(ctx, "length")
		return
	}

	content := Sanitize(StripRollRequest(m.Content))
	if content == "" {
		return
	}

	// The message must come from the text side of the voice channel the
	// author currently sits in.
	vs, err := s.State.VoiceState(m.GuildID, m.Author.ID)
	if err != nil || vs.ChannelID == "" {
		return
	}
	if vs.ChannelID != m.ChannelID {
		return
	}

	start := time.Now()
	data, err := b.synthesize(ctx, authorID, isOwner, content)
	if err != nil {
		slog.Error("discord: synthesis failed", "user_id", m.Author.ID, "err", err)
		b.metrics.RecordRejection(ctx, "synthesis")
		return
	}
	b.metrics.SynthesisDuration.Record(ctx, time.Since(start).Seconds())

	duration, err := wav.Duration(data)
	if err != nil {
		slog.Error("discord: engine produced unusable wav", "err", err)
		b.metrics.RecordRejection(ctx, "malformed_wav")
		return
	}
	if !isOwner && duration > b.cfg.MaxDurationSeconds {
		slog.Info("discord: clip over duration ceiling",
			"user_id", m.Author.ID,
			"seconds", duration,
		)
		b.metrics.RecordRejection(ctx, "duration")
		return
	}

	normalized, err := wav.Normalize(data)
	if err != nil {
		slog.Error("discord: normalization failed", "err", err)
		b.metrics.RecordRejection(ctx, "malformed_wav")
		return
	}

	b.trackUser(m.GuildID, m.Author.ID)

	if err := b.play(ctx, m.GuildID, vs.ChannelID, normalized); err != nil {
		slog.Error("discord: playback failed", "guild_id", m.GuildID, "err", err)
		return
	}
	b.metrics.RecordSpoken(ctx, string(b.cfg.Mode))
}

// synthesize produces WAV bytes for content with the author's voice. The
// owner always gets the Paul preset; everyone else gets either their
// generated profile or their palette selector depending on the configured
// mode.
func (b *Bot) synthesize(ctx context.Context, authorID uint64, isOwner bool, content string) ([]byte, error) {
	if b.cfg.Mode == config.ModePalette && !isOwner {
		return b.engine.SynthesizeSelector(ctx, content, b.allocator.Assign(authorID))
	}

	profile := b.voices.Voice(authorID)
	if isOwner {
		profile = voice.Paul
	}
	return b.engine.Synthesize(ctx, content, profile)
}

// onVoiceStateUpdate drops users who left voice from the guild's tracked
// set and disconnects when nobody the bot spoke for remains.
func (b *Bot) onVoiceStateUpdate(_ *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v.GuildID == "" {
		return
	}

	if v.ChannelID != "" {
		return // joins and moves do not affect tracking
	}

	if userID, err := parseSnowflake(v.UserID); err == nil {
		b.allocator.Remove(userID)
	}

	b.mu.Lock()
	users := b.guildUsers[v.GuildID]
	delete(users, v.UserID)
	empty := len(users) == 0
	vc := b.conns[v.GuildID]
	if empty {
		delete(b.conns, v.GuildID)
	}
	b.mu.Unlock()

	if empty && vc != nil {
		b.metrics.ActiveVoiceConnections.Add(context.Background(), -1)
		if err := vc.Disconnect(); err != nil {
			slog.Warn("discord: voice disconnect failed", "guild_id", v.GuildID, "err", err)
		} else {
			slog.Info("discord: left empty voice channel", "guild_id", v.GuildID)
		}
	}
}

// trackUser records that the bot has spoken for userID in guildID.
func (b *Bot) trackUser(guildID, userID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	users, ok := b.guildUsers[guildID]
	if !ok {
		users = map[string]struct{}{}
		b.guildUsers[guildID] = users
	}
	users[userID] = struct{}{}
}
