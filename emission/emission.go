// Package emission implements the supply-fraction halving schedule. All the
// math is integer-only so that every node computes bit-identical results.
package emission

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/cindra-project/cindra-tokenomics/config"

	"lukechampine.com/uint128"
)

// Params holds the genesis emission constants. It is built once at startup
// and passed by value, never mutated.
type Params struct {
	TotalSupply uint64 // emission hard cap in atomic units
	DailyRate   uint64 // pre-halving daily emission in atomic units
}

// Days is an epoch duration expressed as an exact fraction of days.
type Days struct {
	Num uint64 `json:"num"`
	Den uint64 `json:"den"`
}

func (d Days) String() string {
	if d.Den == 1 {
		return strconv.FormatUint(d.Num, 10)
	}
	return strconv.FormatUint(d.Num, 10) + "/" + strconv.FormatUint(d.Den, 10)
}

// ParseDays parses an epoch duration in days. Integers ("5"), decimals ("5.5")
// and fractions ("11/2") are accepted; decimals convert exactly.
func ParseDays(s string) (Days, error) {
	s = strings.TrimSpace(s)
	if num, den, isFraction := strings.Cut(s, "/"); isFraction {
		n, err := strconv.ParseUint(num, 10, 64)
		if err != nil {
			return Days{}, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		d, err := strconv.ParseUint(den, 10, 64)
		if err != nil {
			return Days{}, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		if d == 0 {
			return Days{}, fmt.Errorf("invalid duration %q: zero denominator", s)
		}
		return reduced(n, d), nil
	}

	ip, fp, hasFraction := strings.Cut(s, ".")
	n, err := strconv.ParseUint(ip, 10, 64)
	if err != nil {
		return Days{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if !hasFraction || fp == "" {
		return Days{Num: n, Den: 1}, nil
	}
	if len(fp) > 9 {
		return Days{}, fmt.Errorf("invalid duration %q: too many decimal digits", s)
	}
	frac, err := strconv.ParseUint(fp, 10, 64)
	if err != nil {
		return Days{}, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	den := uint64(1)
	for range fp {
		den *= 10
	}
	if n > (math.MaxUint64-frac)/den {
		return Days{}, fmt.Errorf("invalid duration %q: value too large", s)
	}
	return reduced(n*den+frac, den), nil
}

func reduced(num, den uint64) Days {
	if g := gcd(num, den); g > 1 {
		num /= g
		den /= g
	}
	return Days{Num: num, Den: den}
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Halvings returns how many times the daily rate has halved at the given
// circulating supply: the largest k, capped at config.MAX_HALVINGS, such that
// circulating >= Threshold(k).
//
// The k-th threshold leaves ceil(TotalSupply / 2^k) units unmined, so instead
// of materializing thresholds the loop halves the remaining-supply bound.
func (p Params) Halvings(circulating uint64) int {
	if p.TotalSupply == 0 {
		return 0
	}
	if circulating > p.TotalSupply {
		circulating = p.TotalSupply
	}
	remaining := p.TotalSupply - circulating

	unmined := p.TotalSupply // ceil(TotalSupply / 2^k) for the current k
	k := 0
	for k < config.MAX_HALVINGS {
		next := unmined/2 + unmined%2
		if remaining > next {
			break
		}
		unmined = next
		k++
	}
	return k
}

// Threshold returns the circulating supply at which the k-th halving takes
// effect. Threshold(0) is 0, Threshold(1) is half the cap, and successive
// thresholds converge towards TotalSupply-1 without reaching it.
func (p Params) Threshold(k int) uint64 {
	unmined := p.TotalSupply
	for ; k > 0 && unmined > 0; k-- {
		unmined = unmined/2 + unmined%2
	}
	return p.TotalSupply - unmined
}

// DailyRateAt returns the halved daily emission rate at the given circulating
// supply.
func (p Params) DailyRateAt(circulating uint64) uint64 {
	return p.DailyRate >> p.Halvings(circulating)
}

// ForEpoch returns the amount emitted for a single epoch of the given duration
// starting from the given circulating supply. Degenerate inputs (zero cap,
// cap already reached, zero-denominator duration) return 0 rather than
// failing: the caller treats "nothing to emit" and "nothing emittable" the
// same way.
func (p Params) ForEpoch(circulating uint64, d Days) uint64 {
	if p.TotalSupply == 0 || d.Den == 0 || circulating >= p.TotalSupply {
		return 0
	}
	rate := p.DailyRateAt(circulating)
	if rate == 0 || d.Num == 0 {
		return 0
	}
	remaining := p.TotalSupply - circulating
	potential := uint128.From64(rate).Mul64(d.Num).Div64(d.Den)
	if potential.Cmp64(remaining) > 0 {
		return remaining
	}
	return potential.Lo
}

// ProjectSupply walks the schedule epoch by epoch from the given starting
// supply. It returns the circulating supply after the walk and the number of
// epochs that actually emitted, which is less than maxEpochs once the rate
// underflows to zero.
func (p Params) ProjectSupply(start uint64, d Days, maxEpochs int) (uint64, int) {
	circ := start
	for i := 0; i < maxEpochs; i++ {
		minted := p.ForEpoch(circ, d)
		if minted == 0 {
			return circ, i
		}
		circ += minted
	}
	return circ, maxEpochs
}

// Validate rejects genesis constants that produce a broken curve. The halved
// rate underflows to zero after bits.Len64(DailyRate) halvings; the supply
// past that point can never be emitted, and the check bounds this stranded
// tail to one millionth of the cap.
func (p Params) Validate() error {
	if p.TotalSupply == 0 {
		return errors.New("total supply is zero")
	}
	if p.DailyRate == 0 {
		return errors.New("daily emission rate is zero")
	}
	if p.DailyRate > p.TotalSupply {
		return fmt.Errorf("daily emission rate %d exceeds total supply %d", p.DailyRate, p.TotalSupply)
	}
	tail := p.TotalSupply
	for i := bits.Len64(p.DailyRate); i > 0; i-- {
		tail = tail/2 + tail%2
	}
	if tail > p.TotalSupply/config.PPM {
		return fmt.Errorf("emission curve strands %d of %d units past the last effective halving", tail, p.TotalSupply)
	}
	return nil
}
