// Package wav implements byte-exact parsing, duration measurement, peak
// normalization, and re-encoding of uncompressed PCM RIFF/WAVE buffers.
//
// The parser is deliberately strict: it accepts exactly the container shape
// the speech engine emits (RIFF/WAVE with a leading "fmt " chunk, linear PCM
// format code 1) and skips forward over unknown chunks until it finds
// "data". Any structural violation is reported as a typed error, never a
// panic. Whole files are handled in memory; there is no streaming interface
// and no resampling here.
package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Typed parse failures. Callers branch with errors.Is.
var (
	// ErrMalformedContainer reports a structurally invalid RIFF/WAVE buffer:
	// missing or misplaced tags, truncated data, or a chunk scan that runs
	// off the end of the buffer without finding "data".
	ErrMalformedContainer = errors.New("wav: malformed container")

	// ErrUnsupportedCodec reports a WAVE file whose format code is not
	// linear PCM.
	ErrUnsupportedCodec = errors.New("wav: unsupported codec")
)

// formatPCM is the audio format code for uncompressed linear PCM.
const formatPCM = 1

// File is a decoded WAVE file: the format metadata from the "fmt " chunk
// plus the raw PCM payload of the "data" chunk.
type File struct {
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16 // bytes per sample frame across all channels
	BitsPerSample uint16

	// Data is the raw little-endian PCM payload. It aliases the parsed
	// input buffer; callers that mutate it must copy first.
	Data []byte
}

// Parse decodes the RIFF/WAVE container in b. It returns
// [ErrMalformedContainer] for structural violations and
// [ErrUnsupportedCodec] when the format code is not linear PCM.
func Parse(b []byte) (File, error) {
	if len(b) < 12 {
		return File{}, fmt.Errorf("%w: %d bytes is too short for a RIFF header", ErrMalformedContainer, len(b))
	}
	if string(b[0:4]) != "RIFF" {
		return File{}, fmt.Errorf("%w: missing RIFF tag", ErrMalformedContainer)
	}
	if string(b[8:12]) != "WAVE" {
		return File{}, fmt.Errorf("%w: missing WAVE tag", ErrMalformedContainer)
	}

	// The fmt chunk must come first.
	if len(b) < 20 {
		return File{}, fmt.Errorf("%w: truncated before fmt chunk", ErrMalformedContainer)
	}
	if string(b[12:16]) != "fmt " {
		return File{}, fmt.Errorf("%w: first chunk is %q, want \"fmt \"", ErrMalformedContainer, b[12:16])
	}
	fmtSize := int(binary.LittleEndian.Uint32(b[16:20]))
	if fmtSize < 16 || 20+fmtSize > len(b) {
		return File{}, fmt.Errorf("%w: fmt chunk size %d out of bounds", ErrMalformedContainer, fmtSize)
	}

	fmtData := b[20 : 20+fmtSize]
	f := File{
		Channels:      binary.LittleEndian.Uint16(fmtData[2:4]),
		SampleRate:    binary.LittleEndian.Uint32(fmtData[4:8]),
		ByteRate:      binary.LittleEndian.Uint32(fmtData[8:12]),
		BlockAlign:    binary.LittleEndian.Uint16(fmtData[12:14]),
		BitsPerSample: binary.LittleEndian.Uint16(fmtData[14:16]),
	}
	if format := binary.LittleEndian.Uint16(fmtData[0:2]); format != formatPCM {
		return File{}, fmt.Errorf("%w: format code %d, want %d (linear PCM)", ErrUnsupportedCodec, format, formatPCM)
	}

	// Scan the remaining chunks for "data", skipping anything else by its
	// declared length. Running out of buffer before finding it is an error,
	// not an empty result.
	offset := 20 + fmtSize
	for {
		if offset+8 > len(b) {
			return File{}, fmt.Errorf("%w: no data chunk found", ErrMalformedContainer)
		}
		tag := string(b[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(b[offset+4 : offset+8]))
		if tag != "data" {
			offset += 8 + size
			continue
		}
		if offset+8+size > len(b) {
			return File{}, fmt.Errorf("%w: data chunk size %d exceeds buffer", ErrMalformedContainer, size)
		}
		f.Data = b[offset+8 : offset+8+size]
		return f, nil
	}
}

// Duration parses b and returns its playback length in seconds:
// data bytes divided by block alignment divided by sample rate.
func Duration(b []byte) (float64, error) {
	f, err := Parse(b)
	if err != nil {
		return 0, err
	}
	if f.BlockAlign == 0 || f.SampleRate == 0 {
		return 0, fmt.Errorf("%w: zero block alignment or sample rate", ErrMalformedContainer)
	}
	frames := float64(len(f.Data)) / float64(f.BlockAlign)
	return frames / float64(f.SampleRate), nil
}

// Samples decodes Data as little-endian int16 samples. A trailing odd byte
// is ignored.
func (f File) Samples() []int16 {
	samples := make([]int16, len(f.Data)/2)
	for i := range samples {
		samples[i] = int16(f.Data[i*2]) | int16(f.Data[i*2+1])<<8
	}
	return samples
}
