package util

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/cindra-project/cindra-tokenomics/config"

	"github.com/sasha-s/go-deadlock"
)

// returns the timestamp (UNIX milliseconds)
func Time() uint64 {
	return uint64(time.Now().UnixMilli())
}

func FormatUint[V uint | uint8 | uint16 | uint32 | uint64](n V) string {
	return strconv.FormatUint(uint64(n), 10)
}

// FormatCoin renders an atomic amount with config.ATOMIC decimal places.
func FormatCoin(n uint64) string {
	s := strconv.FormatUint(n, 10)

	for len(s) < int(config.ATOMIC)+1 {
		s = "0" + s
	}

	return s[:len(s)-int(config.ATOMIC)] + "." + s[len(s)-int(config.ATOMIC):]
}

// FormatPPM renders a parts-per-million rate or score as a decimal, with
// trailing zeros trimmed: 540_000 prints as 0.54, 1_000_000 as 1.
func FormatPPM(n uint64) string {
	s := FormatCoin(n)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// ParsePPM is the inverse of FormatPPM: a decimal with at most six fractional
// digits becomes a ppm value. "0.2" parses to 200_000 and "1" to 1_000_000.
func ParsePPM(s string) (uint64, error) {
	return parseFixed(s, config.PPM)
}

// ParseCoin is the inverse of FormatCoin: a decimal amount of whole coins
// becomes atomic units, parsed exactly.
func ParseCoin(s string) (uint64, error) {
	return parseFixed(s, config.COIN)
}

func parseFixed(s string, scale uint64) (uint64, error) {
	s = strings.TrimSpace(s)
	ip, fp, hasFraction := strings.Cut(s, ".")
	if ip == "" && fp == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if ip == "" {
		ip = "0"
	}
	n, err := strconv.ParseUint(ip, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if len(fp) > int(config.ATOMIC) {
		return 0, fmt.Errorf("invalid amount %q: at most %d decimal digits", s, config.ATOMIC)
	}
	var frac uint64
	if hasFraction && fp != "" {
		frac, err = strconv.ParseUint(fp, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		for i := len(fp); i < int(config.ATOMIC); i++ {
			frac *= 10
		}
	}
	if n > (math.MaxUint64-frac)/scale {
		return 0, fmt.Errorf("invalid amount %q: value too large", s)
	}
	return n*scale + frac, nil
}

func PadR(s string, l int) string {
	for len(s) < l {
		s = " " + s
	}
	return s
}
func PadL(s string, l int) string {
	for len(s) < l {
		s = s + " "
	}
	return s
}

func PadC(s string, l int) string {
	for len(s)+1 < l {
		s = " " + s + " "
	}
	if len(s) < l {
		s = s + " "
	}
	return s

}

func U64Bytes(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func RemovePort(s string) string {
	return strings.Split(s, ":")[0]
}

func IsHex(s string) bool {
	for _, v := range s {
		if v < '0' || v > 'f' || (v > '9' && v < 'a') {
			return false
		}
	}
	return true
}

func SafeAdd(a, b uint64) (uint64, error) {
	if a+b < a {
		return 0, errors.New("overflow")
	}
	return a + b, nil
}

func init() {
	deadlock.Opts.DeadlockTimeout = 30 * time.Second
}

type Mutex = deadlock.Mutex
type RWMutex = deadlock.RWMutex
