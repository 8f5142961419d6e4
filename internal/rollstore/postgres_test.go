package rollstore

import (
	"strings"
	"testing"
)

func TestBigintBitPatternRoundTrip(t *testing.T) {
	t.Parallel()

	// BIGINT is signed; the full uint64 range must survive the reinterpret
	// in both directions, including values above MaxInt64.
	values := []uint64{
		0,
		1,
		9223372036854775807,  // MaxInt64
		9223372036854775808,  // MaxInt64 + 1, negative as BIGINT
		18446744073709551615, // MaxUint64
	}
	for _, v := range values {
		if got := fromDB(toDB(v)); got != v {
			t.Errorf("fromDB(toDB(%d)) = %d", v, got)
		}
	}
}

func TestSchemaSQL_TargetsRollTable(t *testing.T) {
	t.Parallel()

	if !strings.Contains(schemaSQL, "CREATE TABLE IF NOT EXISTS voice_rolls") {
		t.Error("schema migration must be idempotent and target voice_rolls")
	}
	for _, col := range []string{"user_id BIGINT PRIMARY KEY", "roll    BIGINT NOT NULL"} {
		if !strings.Contains(schemaSQL, col) {
			t.Errorf("schema missing column definition %q", col)
		}
	}
}
