package penalty

import (
	"math"
	"testing"

	"github.com/cindra-project/cindra-tokenomics/config"
)

func TestClassifySeverity(t *testing.T) {
	cases := []struct {
		name string
		ev   Event
		want uint64
	}{
		{"sybil", Event{Kind: SYBIL}, SEVERITY_CRITICAL},
		{"malicious exec", Event{Kind: MALICIOUS_EXEC}, SEVERITY_CRITICAL},
		{"fake proof", Event{Kind: FAKE_PROOF, ProofValid: false}, SEVERITY_CRITICAL},
		{"fake proof but valid", Event{Kind: FAKE_PROOF, ProofValid: true}, 0},
		{"double sign", Event{Kind: DOUBLE_SIGN}, 100_000},
		{"commit mismatch", Event{Kind: COMMIT_MISMATCH}, 200_000},
		{"plagiarism", Event{Kind: PLAGIARISM}, 300_000},
		{"offline", Event{Kind: OFFLINE}, 10_000},
		{"low perf above threshold", Event{Kind: LOW_PERFORMANCE, Deviation: 500_001}, 50_000},
		{"low perf at threshold", Event{Kind: LOW_PERFORMANCE, Deviation: 500_000}, 0},
		{"low perf mild", Event{Kind: LOW_PERFORMANCE, Deviation: 300_000}, 0},
		{"low perf extreme", Event{Kind: LOW_PERFORMANCE, Deviation: 2 * config.PPM}, 50_000},
		{"unknown", Event{Kind: UNKNOWN}, 0},
		{"unrecognized kind", Event{Kind: Kind(200)}, 0},
		// deviation is ignored for every kind except LOW_PERFORMANCE
		{"offline with deviation", Event{Kind: OFFLINE, Deviation: 999_999}, 10_000},
	}
	for _, c := range cases {
		if got := ClassifySeverity(c.ev); got != c.want {
			t.Fatalf("%s: ClassifySeverity = %d, want %d", c.name, got, c.want)
		}
	}
}

func TestSlashAmount(t *testing.T) {
	cases := []struct {
		name         string
		stake        uint64
		severity     uint64
		maxSlashRate uint64
		want         uint64
	}{
		{"severity below governor", 1000, 200_000, 500_000, 200},
		{"governor binds", 1000, config.PPM, 200_000, 200},
		{"full slash", 1000, config.PPM, config.PPM, 1000},
		{"zero stake", 0, config.PPM, config.PPM, 0},
		{"zero severity", 1000, 0, config.PPM, 0},
		{"zero governor", 1000, config.PPM, 0, 0},
		{"severity clamps to one", 1000, 3 * config.PPM, config.PPM, 1000},
		{"governor clamps to one", 1000, config.PPM, 3 * config.PPM, 1000},
		{"floors", 999, 10_000, config.PPM, 9},
		// stake*rate overflows 64 bits, the 128-bit path keeps it exact
		{"max stake full", math.MaxUint64, config.PPM, config.PPM, math.MaxUint64},
		{"max stake half", math.MaxUint64, 500_000, config.PPM, math.MaxUint64 / 2},
	}
	for _, c := range cases {
		got := SlashAmount(c.stake, c.severity, c.maxSlashRate)
		if got != c.want {
			t.Fatalf("%s: SlashAmount(%d, %d, %d) = %d, want %d",
				c.name, c.stake, c.severity, c.maxSlashRate, got, c.want)
		}
	}

	// never exceeds the stake nor the governed share, monotone in severity
	const stake = 123_456_789
	const governor = 700_000
	last := uint64(0)
	for severity := uint64(0); severity <= config.PPM; severity += 1000 {
		slash := SlashAmount(stake, severity, governor)
		if slash > stake {
			t.Fatalf("severity %d: slash %d exceeds stake", severity, slash)
		}
		if max := SlashAmount(stake, config.PPM, governor); slash > max {
			t.Fatalf("severity %d: slash %d exceeds the governed maximum %d", severity, slash, max)
		}
		if slash < last {
			t.Fatalf("severity %d: slash %d decreased from %d", severity, slash, last)
		}
		last = slash
	}
}

func TestRecoverPerformance(t *testing.T) {
	cases := []struct {
		name     string
		score    uint64
		baseline uint64
		rate     uint64
		want     uint64
	}{
		{"tenth of the gap", 500_000, 900_000, 100_000, 540_000},
		{"at baseline", 900_000, 900_000, 100_000, 900_000},
		{"above baseline clamps down", 950_000, 900_000, 100_000, 900_000},
		{"zero rate", 500_000, 900_000, 0, 500_000},
		{"full rate closes the gap", 500_000, 900_000, config.PPM, 900_000},
		{"from zero", 0, config.PPM, 250_000, 250_000},
		{"floors", 1, 4, 500_000, 2},
		{"baseline clamps to one", 0, 3 * config.PPM, config.PPM, config.PPM},
		{"rate clamps to one", 500_000, 900_000, 5 * config.PPM, 900_000},
		{"zero baseline", 0, 0, 500_000, 0},
	}
	for _, c := range cases {
		got := RecoverPerformance(c.score, c.baseline, c.rate)
		if got != c.want {
			t.Fatalf("%s: RecoverPerformance(%d, %d, %d) = %d, want %d",
				c.name, c.score, c.baseline, c.rate, got, c.want)
		}
	}

	// repeated recovery approaches the baseline, never overshoots, and
	// stalls once the floored step underflows to zero (gap*rate < PPM)
	score := uint64(100_000)
	const baseline = 800_000
	const rate = 300_000
	for i := 0; i < 200; i++ {
		next := RecoverPerformance(score, baseline, rate)
		if next < score || next > baseline {
			t.Fatalf("step %d: recovered %d out of range [%d, %d]", i, next, score, baseline)
		}
		score = next
	}
	if gap := baseline - score; gap*rate >= config.PPM {
		t.Fatalf("score %d stalled %d short of the baseline with a nonzero step left", score, baseline-score)
	}
	if again := RecoverPerformance(score, baseline, rate); again != score {
		t.Fatalf("stalled score moved from %d to %d", score, again)
	}
}

func TestKindStrings(t *testing.T) {
	kinds := []Kind{
		UNKNOWN, SYBIL, FAKE_PROOF, MALICIOUS_EXEC, DOUBLE_SIGN,
		COMMIT_MISMATCH, PLAGIARISM, OFFLINE, LOW_PERFORMANCE,
	}
	for _, k := range kinds {
		if got := KindFromString(k.String()); got != k {
			t.Fatalf("round trip of %s gave %s", k, got)
		}
	}
	if KindFromString("double_sign") != DOUBLE_SIGN {
		t.Fatal("kind names should be case-insensitive")
	}
	if KindFromString("no-such-kind") != UNKNOWN {
		t.Fatal("unrecognized names should map to UNKNOWN")
	}
	if Kind(200).String() != "UNKNOWN" {
		t.Fatal("unrecognized kinds should print as UNKNOWN")
	}
}
