// Package penalty classifies misbehavior reports and computes stake slashes
// and score recovery. Severities, rates and scores are fixed-point
// parts-per-million (config.PPM means 1.0); like the emission schedule,
// everything is integer-only so results are identical on every node.
package penalty

import (
	"strings"

	"github.com/cindra-project/cindra-tokenomics/config"

	"lukechampine.com/uint128"
)

type Kind uint8

const (
	UNKNOWN = iota
	SYBIL
	FAKE_PROOF
	MALICIOUS_EXEC
	DOUBLE_SIGN
	COMMIT_MISMATCH
	PLAGIARISM
	OFFLINE
	LOW_PERFORMANCE
)

func (k Kind) String() string {
	switch k {
	case SYBIL:
		return "SYBIL"
	case FAKE_PROOF:
		return "FAKE_PROOF"
	case MALICIOUS_EXEC:
		return "MALICIOUS_EXEC"
	case DOUBLE_SIGN:
		return "DOUBLE_SIGN"
	case COMMIT_MISMATCH:
		return "COMMIT_MISMATCH"
	case PLAGIARISM:
		return "PLAGIARISM"
	case OFFLINE:
		return "OFFLINE"
	case LOW_PERFORMANCE:
		return "LOW_PERFORMANCE"
	}
	return "UNKNOWN"
}

// KindFromString is the inverse of String, for RPC and CLI input. Unrecognized
// names map to UNKNOWN, which classifies as severity 0.
func KindFromString(s string) Kind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SYBIL":
		return SYBIL
	case "FAKE_PROOF":
		return FAKE_PROOF
	case "MALICIOUS_EXEC":
		return MALICIOUS_EXEC
	case "DOUBLE_SIGN":
		return DOUBLE_SIGN
	case "COMMIT_MISMATCH":
		return COMMIT_MISMATCH
	case "PLAGIARISM":
		return PLAGIARISM
	case "OFFLINE":
		return OFFLINE
	case "LOW_PERFORMANCE":
		return LOW_PERFORMANCE
	}
	return UNKNOWN
}

// Severities in ppm of the slashable stake.
const (
	SEVERITY_CRITICAL        = config.PPM // identity, proof and execution attacks forfeit the full slashable stake
	SEVERITY_DOUBLE_SIGN     = 100_000    // 0.1
	SEVERITY_COMMIT_MISMATCH = 200_000    // 0.2
	SEVERITY_PLAGIARISM      = 300_000    // 0.3
	SEVERITY_OFFLINE         = 10_000     // 0.01
	SEVERITY_LOW_PERFORMANCE = 50_000     // 0.05
)

// Low-performance reports only carry a severity when the measured deviation
// exceeds this, strictly.
const LOW_PERFORMANCE_DEVIATION = config.PPM / 2

// Event is a single misbehavior report about a validator.
type Event struct {
	Kind       Kind   `json:"kind"`
	Deviation  uint64 `json:"deviation"`   // ppm, meaningful for LOW_PERFORMANCE only
	ProofValid bool   `json:"proof_valid"` // meaningful for FAKE_PROOF only
}

// ClassifySeverity maps a report to its slash severity in ppm. The table is
// closed: kinds this version does not recognize classify as 0, so nodes never
// diverge by guessing at rules they do not carry.
func ClassifySeverity(ev Event) uint64 {
	switch ev.Kind {
	case SYBIL, MALICIOUS_EXEC:
		return SEVERITY_CRITICAL
	case FAKE_PROOF:
		// a fake-proof report whose proof turned out valid is contradictory
		if ev.ProofValid {
			return 0
		}
		return SEVERITY_CRITICAL
	case DOUBLE_SIGN:
		return SEVERITY_DOUBLE_SIGN
	case COMMIT_MISMATCH:
		return SEVERITY_COMMIT_MISMATCH
	case PLAGIARISM:
		return SEVERITY_PLAGIARISM
	case OFFLINE:
		return SEVERITY_OFFLINE
	case LOW_PERFORMANCE:
		if ev.Deviation > LOW_PERFORMANCE_DEVIATION {
			return SEVERITY_LOW_PERFORMANCE
		}
		return 0
	}
	return 0
}

// SlashAmount returns the stake forfeited for the given severity, floored and
// bounded by the DAO-governed maximum rate. Severity and rate clamp to the
// [0, PPM] domain instead of failing; the result never exceeds the stake.
func SlashAmount(stake, severity, maxSlashRate uint64) uint64 {
	if stake == 0 {
		return 0
	}
	if severity > config.PPM {
		severity = config.PPM
	}
	if maxSlashRate > config.PPM {
		maxSlashRate = config.PPM
	}
	rate := min(severity, maxSlashRate)
	if rate == 0 {
		return 0
	}
	// stake*rate needs 128 bits; rate <= PPM keeps the quotient within uint64
	return uint128.From64(stake).Mul64(rate).Div64(config.PPM).Lo
}

// RecoverPerformance moves a score towards its baseline by the DAO-governed
// recovery rate: score + floor(rate * (baseline - score) / PPM). The result
// clamps to the baseline, so recovery never overshoots and an already
// recovered score is left there.
func RecoverPerformance(score, baseline, recoveryRate uint64) uint64 {
	if baseline > config.PPM {
		baseline = config.PPM
	}
	if recoveryRate > config.PPM {
		recoveryRate = config.PPM
	}
	if score >= baseline {
		return baseline
	}
	// both factors are at most PPM, the product fits uint64
	return score + recoveryRate*(baseline-score)/config.PPM
}
