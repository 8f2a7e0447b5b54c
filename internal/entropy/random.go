// Package entropy provides seeds for the simulation's deterministic RNGs.
// Seeds come from crypto/rand so that unseeded runs never repeat.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	"time"
)

// NewSeed returns a positive, non-zero int64 drawn from crypto/rand. Zero is
// reserved to mean "unseeded" in configuration files.
func NewSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen; the clock is a usable fallback.
		slog.Debug("crypto seed failed", "error", err)
		return time.Now().UnixNano() | 1
	}
	n := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if n == 0 {
		n = 1
	}
	return n
}

// SeedOr returns seed unless it is zero, in which case a fresh seed is drawn.
func SeedOr(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return NewSeed()
}
