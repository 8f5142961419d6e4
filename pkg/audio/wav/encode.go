package wav

import "encoding/binary"

// Encode writes a complete RIFF/WAVE file with a canonical 44-byte header
// from the format metadata and PCM payload in f. ByteRate and BlockAlign
// are recomputed from the sample rate, channel count, and bit depth so an
// encoded file is always internally consistent.
func Encode(f File) []byte {
	blockAlign := f.Channels * f.BitsPerSample / 8
	byteRate := f.SampleRate * uint32(blockAlign)
	dataSize := uint32(len(f.Data))

	buf := make([]byte, 0, 44+len(f.Data))
	buf = append(buf, "RIFF"...)
	buf = binary.LittleEndian.AppendUint32(buf, 36+dataSize)
	buf = append(buf, "WAVE"...)

	buf = append(buf, "fmt "...)
	buf = binary.LittleEndian.AppendUint32(buf, 16)
	buf = binary.LittleEndian.AppendUint16(buf, formatPCM)
	buf = binary.LittleEndian.AppendUint16(buf, f.Channels)
	buf = binary.LittleEndian.AppendUint32(buf, f.SampleRate)
	buf = binary.LittleEndian.AppendUint32(buf, byteRate)
	buf = binary.LittleEndian.AppendUint16(buf, blockAlign)
	buf = binary.LittleEndian.AppendUint16(buf, f.BitsPerSample)

	buf = append(buf, "data"...)
	buf = binary.LittleEndian.AppendUint32(buf, dataSize)
	buf = append(buf, f.Data...)
	return buf
}

// appendSamples encodes int16 samples as little-endian bytes.
func appendSamples(dst []byte, samples []int16) []byte {
	for _, s := range samples {
		dst = append(dst, byte(s), byte(s>>8))
	}
	return dst
}
