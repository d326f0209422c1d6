package emission

import (
	"testing"

	"github.com/cindra-project/cindra-tokenomics/config"
	"github.com/cindra-project/cindra-tokenomics/util"
)

func mainnetParams() Params {
	return Params{
		TotalSupply: config.TOTAL_SUPPLY,
		DailyRate:   config.INITIAL_DAILY_EMISSION,
	}
}

// Walks the whole mainnet curve one day at a time until the halved rate
// underflows to zero, checking the invariants at every step.
func TestEmissionSchedule(t *testing.T) {
	p := mainnetParams()
	if err := p.Validate(); err != nil {
		t.Fatal(err)
	}

	day := Days{Num: 1, Den: 1}

	var supply uint64
	var days uint64
	lastHalvings := 0

	for range uint64(365 * 200) {
		k := p.Halvings(supply)
		if k < lastHalvings {
			t.Fatalf("halving count decreased from %d to %d at supply %d", lastHalvings, k, supply)
		}
		if k != lastHalvings {
			t.Logf("halving %d after %d days, daily rate %s, supply %s",
				k, days, util.FormatCoin(p.DailyRateAt(supply)), util.FormatCoin(supply))
			lastHalvings = k
		}

		minted := p.ForEpoch(supply, day)
		if minted == 0 {
			break
		}
		if minted > p.TotalSupply-supply {
			t.Fatalf("day %d: minted %d exceeds remaining %d", days, minted, p.TotalSupply-supply)
		}
		if minted != p.DailyRateAt(supply) && supply+minted != p.TotalSupply {
			t.Fatalf("day %d: one-day epoch minted %d, daily rate is %d", days, minted, p.DailyRateAt(supply))
		}

		supply += minted
		days++
	}

	t.Logf("terminal supply %s (%d units) after %d days (%d years)",
		util.FormatCoin(supply), supply, days, days/365)

	if supply > config.TOTAL_SUPPLY {
		t.Fatalf("terminal supply %d exceeds the cap %d", supply, config.TOTAL_SUPPLY)
	}
	// ceil(TOTAL_SUPPLY / 2^33) units remain stranded once the rate hits zero
	if config.TOTAL_SUPPLY-supply != 2445 {
		t.Fatalf("unexpected stranded tail %d units", config.TOTAL_SUPPLY-supply)
	}

	projected, epochs := p.ProjectSupply(0, day, 365*200)
	if projected != supply || uint64(epochs) != days {
		t.Fatalf("projection disagrees with the walk: %d units %d epochs vs %d units %d days",
			projected, epochs, supply, days)
	}
}

func TestForEpoch(t *testing.T) {
	p := mainnetParams()

	cases := []struct {
		name        string
		params      Params
		circulating uint64
		days        Days
		want        uint64
	}{
		{"genesis five days", p, 0, Days{5, 1}, 36_000 * config.COIN},
		{"cap reached", p, config.TOTAL_SUPPLY, Days{5, 1}, 0},
		{"past cap", p, config.TOTAL_SUPPLY + 12345, Days{5, 1}, 0},
		{"zero cap", Params{0, config.INITIAL_DAILY_EMISSION}, 0, Days{5, 1}, 0},
		{"zero duration", p, 0, Days{0, 1}, 0},
		{"zero denominator", p, 0, Days{5, 0}, 0},
		{"half day", p, 0, Days{1, 2}, 3_600 * config.COIN},
		{"fractional day floors", Params{1 << 40, 7}, 0, Days{1, 2}, 3},
		// 15 coins short of the cap the schedule is 20 halvings deep: the
		// daily rate is 7_200_000_000>>20 = 6866 units, nowhere near the
		// remaining 15_000_000
		{"deep in the curve", p, config.TOTAL_SUPPLY - 15*config.COIN, Days{5, 1}, 5 * 6866},
		// remaining supply smaller than the epoch's potential: the clamp
		// returns exactly the remainder
		{"clamped to remainder", Params{1000, 600}, 0, Days{2, 1}, 1000},
		{"clamped half", Params{1000, 600}, 300, Days{2, 1}, 700},
	}

	for _, c := range cases {
		got := c.params.ForEpoch(c.circulating, c.days)
		if got != c.want {
			t.Fatalf("%s: ForEpoch(%d, %s) = %d, want %d", c.name, c.circulating, c.days, got, c.want)
		}
	}
}

func TestHalvings(t *testing.T) {
	p := Params{TotalSupply: 100, DailyRate: 64}

	thresholds := []uint64{0, 50, 75, 87, 93, 96, 98, 99, 99}
	for k, want := range thresholds {
		if got := p.Threshold(k); got != want {
			t.Fatalf("Threshold(%d) = %d, want %d", k, got, want)
		}
	}

	cases := []struct {
		circulating uint64
		want        int
	}{
		{0, 0},
		{49, 0},
		{50, 1},
		{74, 1},
		{75, 2},
		{87, 3},
		{98, 6},
		// thresholds stall at TotalSupply-1, so the last unit pins the
		// count to the bound
		{99, config.MAX_HALVINGS},
		{100, config.MAX_HALVINGS},
		{200, config.MAX_HALVINGS},
	}
	for _, c := range cases {
		if got := p.Halvings(c.circulating); got != c.want {
			t.Fatalf("Halvings(%d) = %d, want %d", c.circulating, got, c.want)
		}
	}

	last := 0
	for circ := uint64(0); circ <= 100; circ++ {
		k := p.Halvings(circ)
		if k < last {
			t.Fatalf("Halvings(%d) = %d, decreased from %d", circ, k, last)
		}
		last = k
	}

	if got := mainnetParams().Threshold(1); got != config.TOTAL_SUPPLY/2 {
		t.Fatalf("first mainnet threshold is %d, want half the cap", got)
	}
}

func TestProjectSupply(t *testing.T) {
	p := Params{TotalSupply: 1000, DailyRate: 600}
	day := Days{1, 1}

	// 600+300+75+18+4+2, then the rate underflows with one unit stranded
	supply, epochs := p.ProjectSupply(0, day, 100)
	if supply != 999 || epochs != 6 {
		t.Fatalf("ProjectSupply = %d after %d epochs, want 999 after 6", supply, epochs)
	}

	supply, epochs = p.ProjectSupply(0, day, 3)
	if supply != 975 || epochs != 3 {
		t.Fatalf("bounded ProjectSupply = %d after %d epochs, want 975 after 3", supply, epochs)
	}

	supply, epochs = p.ProjectSupply(1000, day, 100)
	if supply != 1000 || epochs != 0 {
		t.Fatalf("ProjectSupply from the cap = %d after %d epochs", supply, epochs)
	}
}

func TestParseDays(t *testing.T) {
	good := []struct {
		in   string
		want Days
	}{
		{"5", Days{5, 1}},
		{"1", Days{1, 1}},
		{"5.5", Days{11, 2}},
		{"0.25", Days{1, 4}},
		{"11/2", Days{11, 2}},
		{"10/4", Days{5, 2}},
		{"0", Days{0, 1}},
		{"1.", Days{1, 1}},
		{" 7 ", Days{7, 1}},
	}
	for _, c := range good {
		got, err := ParseDays(c.in)
		if err != nil {
			t.Fatalf("ParseDays(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseDays(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	bad := []string{"", "x", "5/0", "1.2.3", "-1", ".5", "1.0000000001", "1/", "/2"}
	for _, in := range bad {
		if _, err := ParseDays(in); err == nil {
			t.Fatalf("ParseDays(%q) should have failed", in)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := mainnetParams().Validate(); err != nil {
		t.Fatal(err)
	}
	if err := (Params{1_000_000_000_000, 1_000_000_000}).Validate(); err != nil {
		t.Fatal(err)
	}

	bad := []Params{
		{0, 1000},
		{1000, 0},
		{1000, 2000},
		// rate underflows after a single halving, stranding half the cap
		{1 << 40, 1},
		// strands 1 unit of a 1000 unit cap, far above one millionth
		{1000, 600},
	}
	for _, p := range bad {
		if err := p.Validate(); err == nil {
			t.Fatalf("Validate(%+v) should have failed", p)
		}
	}
}
