package wav

import "math"

// Normalize rescales the 16-bit PCM samples in the WAVE buffer b so the
// waveform uses the full int16 dynamic range, and re-encodes the result
// into a fresh container with the original format metadata.
//
// The normalization is two-sided: positive excursions are scaled so the
// largest positive sample reaches math.MaxInt16, and negative excursions
// independently so the most negative sample reaches math.MinInt16. The two
// sides get different gain factors on asymmetric or DC-offset waveforms;
// that asymmetry is a deliberate property of the transform, not something
// to replace with a single symmetric gain.
//
// Degenerate sides are passed through: when a side has no excursion (its
// peak is zero) the samples on that side are left unscaled, so an
// all-silent buffer normalizes to an equally silent, valid WAVE file.
func Normalize(b []byte) ([]byte, error) {
	f, err := Parse(b)
	if err != nil {
		return nil, err
	}

	samples := f.Samples()

	var peakPos, peakNeg int16
	for _, s := range samples {
		if s > peakPos {
			peakPos = s
		}
		if s < peakNeg {
			peakNeg = s
		}
	}

	scaled := make([]int16, len(samples))
	for i, s := range samples {
		switch {
		case s > 0:
			// peakPos >= s > 0 here, so the division is safe and the result
			// stays within (0, MaxInt16].
			scaled[i] = int16(float64(s) / float64(peakPos) * math.MaxInt16)
		case s < 0 && peakNeg != 0:
			scaled[i] = int16(float64(s) / float64(peakNeg) * math.MinInt16)
		default:
			scaled[i] = s
		}
	}

	out := File{
		Channels:      f.Channels,
		SampleRate:    f.SampleRate,
		BitsPerSample: f.BitsPerSample,
		Data:          appendSamples(make([]byte, 0, len(scaled)*2), scaled),
	}
	return Encode(out), nil
}
