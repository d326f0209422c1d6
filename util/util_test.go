package util

import (
	crand "crypto/rand"
	"encoding/hex"
	"math"
	"testing"
)

func TestFormatCoin(t *testing.T) {
	cases := map[uint64]string{
		0:              "0.000000",
		1:              "0.000001",
		1_000_000:      "1.000000",
		1_234_567:      "1.234567",
		36_000_000_000: "36000.000000",
	}
	for n, want := range cases {
		if got := FormatCoin(n); got != want {
			t.Fatalf("FormatCoin(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestPPMRoundTrip(t *testing.T) {
	cases := map[string]uint64{
		"0":        0,
		"0.2":      200_000,
		"0.54":     540_000,
		"0.000001": 1,
		"1":        1_000_000,
		"1.5":      1_500_000,
		"12":       12_000_000,
	}
	for in, want := range cases {
		got, err := ParsePPM(in)
		if err != nil {
			t.Fatalf("ParsePPM(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParsePPM(%q) = %d, want %d", in, got, want)
		}
		if back := FormatPPM(got); back != in {
			t.Fatalf("FormatPPM(%d) = %s, want %s", got, back, in)
		}
	}

	for _, in := range []string{"", ".", "x", "0.1234567", "-1", "99999999999999"} {
		if _, err := ParsePPM(in); err == nil {
			t.Fatalf("ParsePPM(%q) should have failed", in)
		}
	}
}

func TestParseCoin(t *testing.T) {
	cases := map[string]uint64{
		"0":         0,
		"0.000001":  1,
		"1":         1_000_000,
		"1.05":      1_050_000,
		"36000":     36_000_000_000,
		"1234.5678": 1_234_567_800,
	}
	for in, want := range cases {
		got, err := ParseCoin(in)
		if err != nil {
			t.Fatalf("ParseCoin(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseCoin(%q) = %d, want %d", in, got, want)
		}
	}

	for _, in := range []string{"", "1.2.3", "1,5", "0.0000001", "18446744073709553"} {
		if _, err := ParseCoin(in); err == nil {
			t.Fatalf("ParseCoin(%q) should have failed", in)
		}
	}
}

func TestSafeAdd(t *testing.T) {
	if n, err := SafeAdd(2, 3); err != nil || n != 5 {
		t.Fatal("SafeAdd(2, 3) failed")
	}
	if _, err := SafeAdd(math.MaxUint64, 1); err == nil {
		t.Fatal("SafeAdd should have detected the overflow")
	}
	if n, err := SafeAdd(math.MaxUint64, 0); err != nil || n != math.MaxUint64 {
		t.Fatal("SafeAdd(max, 0) failed")
	}
}

func TestIsHex(t *testing.T) {
	b := make([]byte, 64)
	crand.Read(b)
	if !IsHex(hex.EncodeToString(b)) {
		t.Fail()
	}
	x := "123456789/"
	if IsHex(x) {
		t.Fail()
	}
	x = "123456789="
	if IsHex(x) {
		t.Fail()
	}
	x = "123456789A"
	if IsHex(x) {
		t.Fail()
	}
	x = "123456789~"
	if IsHex(x) {
		t.Fail()
	}
}
