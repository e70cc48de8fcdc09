package rng

import (
	"crypto/rand"
	"encoding/binary"
)

// Source yields uniform samples in [0,1). Draw outcomes must be unpredictable
// per call, so the production source reads the kernel CSPRNG; tests inject a
// Fixed source instead.
type Source interface {
	Float64() float64
}

type cryptoSource struct{}

// NewCrypto returns a Source backed by crypto/rand.
func NewCrypto() Source {
	return cryptoSource{}
}

func (cryptoSource) Float64() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing means the platform RNG is broken; a draw must
		// not proceed on a guessable value.
		panic("rng: " + err.Error())
	}
	// 53 random bits, same precision as math/rand.Float64.
	v := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(v) / (1 << 53)
}

// Fixed replays a preset sequence of samples and repeats the last one once
// exhausted.
type Fixed struct {
	samples []float64
	next    int
}

func NewFixed(samples ...float64) *Fixed {
	if len(samples) == 0 {
		samples = []float64{0}
	}
	return &Fixed{samples: samples}
}

func (f *Fixed) Float64() float64 {
	if f.next >= len(f.samples) {
		return f.samples[len(f.samples)-1]
	}
	v := f.samples[f.next]
	f.next++
	return v
}
