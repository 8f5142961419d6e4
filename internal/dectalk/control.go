// Package dectalk bridges generated voice profiles to the external DECtalk
// "say" binary: it formats profiles into the engine's inline control
// sequence syntax and runs the binary to synthesize a WAV file.
package dectalk

import (
	"fmt"
	"strings"

	"github.com/MrWong99/voxroll/internal/voice"
)

// ControlSequence renders p as the DECtalk pre-text control string that
// defines a custom voice: phoneme mode on, switch to the variable voice
// slot, then one [:dv xx n] assignment per parameter. The two-letter
// parameter codes and their order follow the DECtalk manual.
func ControlSequence(p voice.Profile) string {
	var b strings.Builder
	b.WriteString("[:phoneme on][:nv]")

	dv := func(code string, value uint64) {
		fmt.Fprintf(&b, "[:dv %s %d]", code, value)
	}

	dv("ap", uint64(p.AveragePitch))
	dv("as", uint64(p.Assertiveness))
	dv("b4", uint64(p.FourthFormantBandwidth))
	dv("b5", uint64(p.FifthFormantBandwidth))
	dv("bf", uint64(p.BaselineFall))
	dv("br", uint64(p.Breathiness))
	dv("f4", uint64(p.FourthFormantResonance))
	dv("f5", uint64(p.FifthFormantResonance))
	dv("hr", uint64(p.HatRise))
	dv("hs", uint64(p.HeadSize))
	dv("la", uint64(p.Laryngealization))
	dv("lx", uint64(p.LaxBreathiness))
	dv("nf", uint64(p.GlottisOpenSamples))
	dv("pr", uint64(p.PitchRange))
	dv("qu", uint64(p.Quickness))
	dv("ri", uint64(p.Richness))
	dv("sm", uint64(p.Smoothness))
	dv("sr", uint64(p.StressRise))
	dv("sx", uint64(p.Sex))

	return b.String()
}

// SelectorSequence renders a single-letter built-in voice selector (legacy
// palette mode), e.g. 'p' becomes "[:np]" for Perfect Paul.
func SelectorSequence(selector rune) string {
	return fmt.Sprintf("[:n%c]", selector)
}
