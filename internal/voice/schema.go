package voice

import "math"

// paramSpec declares one synthesized parameter: its name, the two reference
// preset values its range is derived from, the numeric ceiling of its
// declared width, and how a drawn value is written into a Profile.
//
// The schema below is ordered, and the order is load-bearing: each parameter
// consumes exactly one draw from the generator stream, so reordering entries
// (or inserting one in the middle) silently changes every existing voice.
// New parameters must be appended, never inserted.
type paramSpec struct {
	name    string
	paul    uint64
	wendy   uint64
	ceiling uint64
	assign  func(*Profile, uint64)
}

const (
	ceil8  = math.MaxUint8
	ceil16 = math.MaxUint16
)

// sexParam is the schema name of the sex flag, which is subject to the
// configurable draw policy (see [SexPolicy]).
const sexParam = "sex"

// schema enumerates all synthesized parameters in generation order.
var schema = []paramSpec{
	{"average_pitch", uint64(Paul.AveragePitch), uint64(Wendy.AveragePitch), ceil16,
		func(p *Profile, v uint64) { p.AveragePitch = uint16(v) }},
	{"assertiveness", uint64(Paul.Assertiveness), uint64(Wendy.Assertiveness), ceil8,
		func(p *Profile, v uint64) { p.Assertiveness = uint8(v) }},
	{"fourth_formant_bandwidth", uint64(Paul.FourthFormantBandwidth), uint64(Wendy.FourthFormantBandwidth), ceil16,
		func(p *Profile, v uint64) { p.FourthFormantBandwidth = uint16(v) }},
	{"fifth_formant_bandwidth", uint64(Paul.FifthFormantBandwidth), uint64(Wendy.FifthFormantBandwidth), ceil16,
		func(p *Profile, v uint64) { p.FifthFormantBandwidth = uint16(v) }},
	{"baseline_fall", uint64(Paul.BaselineFall), uint64(Wendy.BaselineFall), ceil16,
		func(p *Profile, v uint64) { p.BaselineFall = uint16(v) }},
	{"breathiness", uint64(Paul.Breathiness), uint64(Wendy.Breathiness), ceil8,
		func(p *Profile, v uint64) { p.Breathiness = uint8(v) }},
	{"fourth_formant_resonance", uint64(Paul.FourthFormantResonance), uint64(Wendy.FourthFormantResonance), ceil16,
		func(p *Profile, v uint64) { p.FourthFormantResonance = uint16(v) }},
	{"fifth_formant_resonance", uint64(Paul.FifthFormantResonance), uint64(Wendy.FifthFormantResonance), ceil16,
		func(p *Profile, v uint64) { p.FifthFormantResonance = uint16(v) }},
	{"hat_rise", uint64(Paul.HatRise), uint64(Wendy.HatRise), ceil16,
		func(p *Profile, v uint64) { p.HatRise = uint16(v) }},
	{"head_size", uint64(Paul.HeadSize), uint64(Wendy.HeadSize), ceil8,
		func(p *Profile, v uint64) { p.HeadSize = uint8(v) }},
	{"laryngealization", uint64(Paul.Laryngealization), uint64(Wendy.Laryngealization), ceil8,
		func(p *Profile, v uint64) { p.Laryngealization = uint8(v) }},
	{"lax_breathiness", uint64(Paul.LaxBreathiness), uint64(Wendy.LaxBreathiness), ceil8,
		func(p *Profile, v uint64) { p.LaxBreathiness = uint8(v) }},
	{"glottis_open_samples", uint64(Paul.GlottisOpenSamples), uint64(Wendy.GlottisOpenSamples), ceil16,
		func(p *Profile, v uint64) { p.GlottisOpenSamples = uint16(v) }},
	{"pitch_range", uint64(Paul.PitchRange), uint64(Wendy.PitchRange), ceil8,
		func(p *Profile, v uint64) { p.PitchRange = uint8(v) }},
	{"quickness", uint64(Paul.Quickness), uint64(Wendy.Quickness), ceil8,
		func(p *Profile, v uint64) { p.Quickness = uint8(v) }},
	{"richness", uint64(Paul.Richness), uint64(Wendy.Richness), ceil8,
		func(p *Profile, v uint64) { p.Richness = uint8(v) }},
	{"smoothness", uint64(Paul.Smoothness), uint64(Wendy.Smoothness), ceil8,
		func(p *Profile, v uint64) { p.Smoothness = uint8(v) }},
	{"stress_rise", uint64(Paul.StressRise), uint64(Wendy.StressRise), ceil16,
		func(p *Profile, v uint64) { p.StressRise = uint16(v) }},
	{sexParam, uint64(Paul.Sex), uint64(Wendy.Sex), ceil8,
		func(p *Profile, v uint64) { p.Sex = uint8(v) }},
}
