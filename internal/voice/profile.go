// Package voice derives deterministic DECtalk voice profiles for Discord
// users. Every user gets a full set of synthesizer control parameters
// generated from their user ID combined with a user-chosen "roll" value.
// Equal (identity, roll) pairs always produce bit-identical profiles, so a
// voice can be regenerated from the persisted roll alone.
//
// Each parameter is drawn from an inclusive range derived once at startup
// from the two DECtalk reference presets Paul and Wendy: the range spans the
// distance between the two presets mirrored around Paul's value, saturated
// at the parameter's numeric bounds.
package voice

// Profile is the complete set of DECtalk voice control parameters for one
// user. Field widths match the synthesizer's accepted value ranges; every
// field is guaranteed to lie inside its derived range after generation.
// A Profile is immutable once generated.
type Profile struct {
	AveragePitch           uint16 // Hz
	Assertiveness          uint8  // %
	FourthFormantBandwidth uint16 // Hz
	FifthFormantBandwidth  uint16 // Hz
	BaselineFall           uint16 // Hz
	Breathiness            uint8  // dB
	FourthFormantResonance uint16 // Hz
	FifthFormantResonance  uint16 // Hz
	HatRise                uint16 // Hz
	HeadSize               uint8  // %
	Laryngealization       uint8  // %
	LaxBreathiness         uint8  // %
	GlottisOpenSamples     uint16 // samples per open-glottis phase
	PitchRange             uint8  // %
	Quickness              uint8  // %
	Richness               uint8  // %
	Smoothness             uint8  // %
	StressRise             uint16 // Hz
	Sex                    uint8  // 1 male, 0 female
}

// Paul is the DECtalk "Perfect Paul" reference preset. It anchors every
// derived parameter range and is also used verbatim for privileged speakers.
var Paul = Profile{
	AveragePitch:           112,
	Assertiveness:          100,
	FourthFormantBandwidth: 280,
	FifthFormantBandwidth:  330,
	BaselineFall:           18,
	Breathiness:            0,
	FourthFormantResonance: 3300,
	FifthFormantResonance:  3650,
	HatRise:                18,
	HeadSize:               100,
	Laryngealization:       0,
	LaxBreathiness:         0,
	GlottisOpenSamples:     10,
	PitchRange:             100,
	Quickness:              40,
	Richness:               70,
	Smoothness:             30,
	StressRise:             25,
	Sex:                    1,
}

// Wendy is the DECtalk "Whispering Wendy" reference preset. Together with
// [Paul] it determines the width of every derived parameter range.
var Wendy = Profile{
	AveragePitch:           195,
	Assertiveness:          55,
	FourthFormantBandwidth: 300,
	FifthFormantBandwidth:  2048,
	BaselineFall:           10,
	Breathiness:            45,
	FourthFormantResonance: 4600,
	FifthFormantResonance:  2500,
	HatRise:                18,
	HeadSize:               100,
	Laryngealization:       0,
	LaxBreathiness:         80,
	GlottisOpenSamples:     15,
	PitchRange:             100,
	Quickness:              20,
	Richness:               70,
	Smoothness:             20,
	StressRise:             22,
	Sex:                    1,
}
