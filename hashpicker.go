package rsf

import (
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/twmb/murmur3"
)

// HashPicker is a deterministic Bernoulli test: Picks(i) is true for
// approximately num/den of all indices i, and is a pure function of
// (seed, i) so the same seed always routes the same index the same way.
// Uses murmur3 for a portable, explicitly-seeded hash.
type HashPicker struct {
	num, den uint64
	seed     uint64
}

// NewHashPicker builds a picker that keeps a num/den fraction of indices,
// seeded explicitly so Picks is reproducible. Panics if num > den, since
// that would describe a fraction larger than one.
func NewHashPicker(num, den int, seed uint64) *HashPicker {
	if num > den {
		panic("rsf: hash picker numerator exceeds denominator")
	}
	return &HashPicker{num: uint64(num), den: uint64(den), seed: seed}
}

// NewHashPickerFromProb builds a picker keeping approximately probability p
// of indices, den = floor(1/p).
func NewHashPickerFromProb(p float64, seed uint64) *HashPicker {
	den := int(1 / p)
	if den < 1 {
		den = 1
	}
	return NewHashPicker(1, den, seed)
}

// Picks reports whether index i is kept by this picker. The seed and index
// are hashed together (rather than passed as a murmur3 seed parameter) so
// the picker only depends on the stable Sum64 entry point.
func (h *HashPicker) Picks(i int) bool {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], h.seed)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(i))
	return murmur3.Sum64(buf[:])%h.den < h.num
}

// derivePickerSeed derives a deterministic per-picker seed from a forest
// config's base seed and the picker's position, so a seeded Config yields a
// fully reproducible set of pickers end to end.
func derivePickerSeed(base uint64, pickerIndex int) uint64 {
	label := []byte(fmt.Sprintf("picker-%d-%d", base, pickerIndex))
	return murmur3.Sum64(label)
}

// newPickerSeed returns a deterministic seed if cfg.Seed is set, otherwise
// a fresh one drawn from an unseeded RNG.
func newPickerSeed(cfg *Config, pickerIndex int) uint64 {
	if cfg.Seed != nil {
		return derivePickerSeed(*cfg.Seed, pickerIndex)
	}
	return rand.Uint64()
}
