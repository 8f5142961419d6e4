package discord

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/MrWong99/voxroll/pkg/audio"
	"github.com/MrWong99/voxroll/pkg/audio/wav"
)

// play converts the normalized WAV clip to Discord's Opus stream format and
// sends it over the guild's voice connection, joining channelID first if the
// bot is not already connected. Playback is serialised per guild.
func (b *Bot) play(ctx context.Context, guildID, channelID string, wavData []byte) error {
	frames, err := b.prepareFrames(wavData)
	if err != nil {
		return err
	}

	mu := b.guildMutex(guildID)
	mu.Lock()
	defer mu.Unlock()

	vc, err := b.voiceConnection(ctx, guildID, channelID)
	if err != nil {
		return err
	}

	enc, err := newOpusEncoder()
	if err != nil {
		return err
	}

	if err := vc.Speaking(true); err != nil {
		return fmt.Errorf("discord: set speaking: %w", err)
	}
	defer func() {
		if err := vc.Speaking(false); err != nil {
			slog.Warn("discord: clear speaking failed", "guild_id", guildID, "err", err)
		}
	}()

	for _, frame := range frames {
		packet, err := enc.encode(frame)
		if err != nil {
			return err
		}
		select {
		case vc.OpusSend <- packet:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// prepareFrames resamples the clip to 48 kHz stereo, applies the playback
// gain, and slices it into 20 ms Opus frames. The final frame is
// zero-padded to full length.
func (b *Bot) prepareFrames(wavData []byte) ([][]int16, error) {
	f, err := wav.Parse(wavData)
	if err != nil {
		return nil, err
	}

	pcm := f.Data
	if f.Channels == 2 {
		pcm = audio.StereoToMono(pcm)
	}
	pcm = audio.ResampleMono16(pcm, int(f.SampleRate), opusSampleRate)
	pcm = audio.MonoToStereo(pcm)
	pcm = audio.ApplyGain(pcm, b.cfg.Volume)

	samples := audio.BytesToInt16s(pcm)
	frameLen := opusFrameSize * opusChannels

	frames := make([][]int16, 0, len(samples)/frameLen+1)
	for start := 0; start < len(samples); start += frameLen {
		end := min(start+frameLen, len(samples))
		frame := make([]int16, frameLen)
		copy(frame, samples[start:end])
		frames = append(frames, frame)
	}
	return frames, nil
}

// voiceConnection returns the guild's live voice connection, joining
// channelID when there is none yet.
func (b *Bot) voiceConnection(ctx context.Context, guildID, channelID string) (*discordgo.VoiceConnection, error) {
	b.mu.Lock()
	vc, ok := b.conns[guildID]
	b.mu.Unlock()
	if ok {
		return vc, nil
	}

	vc, err := b.session.ChannelVoiceJoin(guildID, channelID, false, true)
	if err != nil {
		return nil, fmt.Errorf("discord: join voice channel %s: %w", channelID, err)
	}

	b.mu.Lock()
	b.conns[guildID] = vc
	b.mu.Unlock()
	b.metrics.ActiveVoiceConnections.Add(ctx, 1)
	slog.Info("discord: joined voice channel", "guild_id", guildID, "channel_id", channelID)
	return vc, nil
}
