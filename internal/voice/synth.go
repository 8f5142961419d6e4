package voice

import "fmt"

// SexPolicy selects how the sex flag of a profile is derived. The two
// policies are both deterministic but not equivalent: under PolicyStream the
// flag consumes a generator draw like every other parameter, under
// PolicyRollParity it is taken directly from the roll's parity and the
// stream is not advanced for it. Switching policies changes existing
// voices, so the choice is fixed per deployment via configuration.
type SexPolicy string

const (
	// PolicyStream draws the sex flag from the generator stream.
	PolicyStream SexPolicy = "stream"

	// PolicyRollParity derives the sex flag as roll mod 2.
	PolicyRollParity SexPolicy = "roll-parity"
)

// IsValid reports whether p is a recognised sex policy.
func (p SexPolicy) IsValid() bool {
	return p == PolicyStream || p == PolicyRollParity
}

// stream is a keyed deterministic pseudo-random sequence backed by the
// Keccak-f[1600] permutation over a 25-lane state seeded from one
// (identity, roll) pair. It is scratch state: construct one per generated
// profile and discard it; the state must never be reused across identities
// or rolls.
type stream struct {
	state [25]uint64
}

// newStream seeds every lane with identity XOR roll.
func newStream(identity, roll uint64) *stream {
	s := &stream{}
	seed := identity ^ roll
	for i := range s.state {
		s.state[i] = seed
	}
	return s
}

// next re-permutes the state and returns the first lane. The permutation
// runs before the read, so the raw seed is never emitted.
func (s *stream) next() uint64 {
	keccakF1600(&s.state)
	return s.state[0]
}

// drawInRange maps a 64-bit generator word into the inclusive range by
// modulo reduction. The reduction bias is negligible because range widths
// are tiny compared to 2^64, and the exact formula is part of the voice
// reproducibility contract.
func drawInRange(r Range, word uint64) uint64 {
	return r.Min + word%r.width()
}

// Synthesizer generates voice profiles. It is stateless apart from the
// configured sex policy and safe for concurrent use.
type Synthesizer struct {
	sexPolicy SexPolicy
}

// NewSynthesizer creates a Synthesizer with the given sex policy.
// An unrecognised policy is rejected.
func NewSynthesizer(policy SexPolicy) (*Synthesizer, error) {
	if !policy.IsValid() {
		return nil, fmt.Errorf("voice: unknown sex policy %q", policy)
	}
	return &Synthesizer{sexPolicy: policy}, nil
}

// Generate derives the full voice profile for one (identity, roll) pair.
// It cannot fail: every parameter is drawn into its derived range in
// schema order, one generator draw per parameter. Equal inputs yield
// bit-identical profiles.
func (s *Synthesizer) Generate(identity, roll uint64) Profile {
	gen := newStream(identity, roll)
	bounds := ranges()

	var p Profile
	for i, spec := range schema {
		if spec.name == sexParam && s.sexPolicy == PolicyRollParity {
			spec.assign(&p, roll%2)
			continue
		}
		spec.assign(&p, drawInRange(bounds[i], gen.next()))
	}
	return p
}
