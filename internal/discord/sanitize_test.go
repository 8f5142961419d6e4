package discord

import "testing"

func TestRequestedRoll(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		content  string
		wantRoll uint64
		wantOK   bool
	}{
		{"plain command", "[:roll 5]", 5, true},
		{"embedded in text", "new voice please [:roll 123] thanks", 123, true},
		{"no spaces", "[:roll7]", 7, true},
		{"extra spaces", "[:roll   42  ]", 42, true},
		{"zero", "[:roll 0]", 0, true},
		{"large value", "[:roll 18446744073709551615]", 18446744073709551615, true},
		{"overflow is rejected", "[:roll 18446744073709551616]", 0, false},
		{"no command", "just a message", 0, false},
		{"negative not matched", "[:roll -3]", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roll, ok := RequestedRoll(tt.content)
			if ok != tt.wantOK || roll != tt.wantRoll {
				t.Errorf("RequestedRoll(%q) = (%d, %v), want (%d, %v)",
					tt.content, roll, ok, tt.wantRoll, tt.wantOK)
			}
		})
	}
}

func TestStripRollRequest(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"[:roll 5]", ""},
		{"hello [:roll 5] world", "hello  world"},
		{"[:roll 1][:roll 2]", ""},
		{"no command here", "no command here"},
	}

	for _, tt := range tests {
		if got := StripRollRequest(tt.in); got != tt.want {
			t.Errorf("StripRollRequest(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"url removed", "look at https://example.com/page now", "look at  now"},
		{"http url removed", "http://foo.bar/baz", ""},
		{"emoji replaced by name", "nice <:kappa:123456789> indeed", "nice kappa indeed"},
		{"animated emoji", "<a:party:987654321>", "party"},
		{"whitespace trimmed", "  padded  ", "padded"},
		{"url and emoji combined", "<:wave:1> bye https://a.bc/d", "wave bye"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
