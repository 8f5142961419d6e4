package dectalk

import (
	"strings"
	"testing"

	"github.com/MrWong99/voxroll/internal/voice"
)

func TestControlSequence_PaulPreset(t *testing.T) {
	t.Parallel()

	want := "[:phoneme on][:nv]" +
		"[:dv ap 112][:dv as 100][:dv b4 280][:dv b5 330][:dv bf 18]" +
		"[:dv br 0][:dv f4 3300][:dv f5 3650][:dv hr 18][:dv hs 100]" +
		"[:dv la 0][:dv lx 0][:dv nf 10][:dv pr 100][:dv qu 40]" +
		"[:dv ri 70][:dv sm 30][:dv sr 25][:dv sx 1]"

	if got := ControlSequence(voice.Paul); got != want {
		t.Errorf("ControlSequence(Paul) =\n  %s\nwant\n  %s", got, want)
	}
}

func TestControlSequence_CoversEveryParameter(t *testing.T) {
	t.Parallel()

	seq := ControlSequence(voice.Wendy)
	codes := []string{
		"ap", "as", "b4", "b5", "bf", "br", "f4", "f5", "hr", "hs",
		"la", "lx", "nf", "pr", "qu", "ri", "sm", "sr", "sx",
	}
	for _, code := range codes {
		if !strings.Contains(seq, "[:dv "+code+" ") {
			t.Errorf("sequence missing parameter %q: %s", code, seq)
		}
	}
	if got := strings.Count(seq, "[:dv "); got != len(codes) {
		t.Errorf("sequence has %d assignments, want %d", got, len(codes))
	}
}

func TestSelectorSequence(t *testing.T) {
	t.Parallel()
	tests := []struct {
		selector rune
		want     string
	}{
		{'p', "[:np]"},
		{'w', "[:nw]"},
		{'f', "[:nf]"},
	}
	for _, tt := range tests {
		if got := SelectorSequence(tt.selector); got != tt.want {
			t.Errorf("SelectorSequence(%q) = %q, want %q", tt.selector, got, tt.want)
		}
	}
}
