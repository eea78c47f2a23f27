package bitattr

import (
	"github.com/cespare/xxhash/v2"
)

// LayoutFingerprint hashes an ordered symbol list. Two layouts with the same
// fingerprint assign the same bits.
func LayoutFingerprint(symbols []string) uint64 {
	var h xxhash.Digest
	h.Reset()
	for _, sym := range symbols {
		h.WriteString(sym)
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// Fingerprint identifies the codec's bit layout. Hosts can store it next to
// persisted masks to notice a reordered vocabulary.
func (c *Codec) Fingerprint() uint64 {
	return LayoutFingerprint(c.symbols)
}

// CheckLayout verifies that masks written under the previous symbol order
// still decode to the same values, i.e. previous is a prefix of the
// current symbols. New symbols may only be appended.
func (c *Codec) CheckLayout(previous []string) error {
	if len(previous) > len(c.symbols) {
		return defErrf(c.record, c.name, "layout shrank from %d to %d symbols", len(previous), len(c.symbols))
	}
	for i, sym := range previous {
		if c.symbols[i] != sym {
			return defErrf(c.record, c.name, "bit %d moved from %q to %q", i, sym, c.symbols[i])
		}
	}
	return nil
}
