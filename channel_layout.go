// Package iamf holds the shared identity types used across the module's
// bitio/obu/timing/param/assembler/render packages: channel presence masks,
// PCM sample formats, and codec identifiers.
package iamf

import "fmt"

// ChannelSet is a bitmask of output channel labels a passthrough rendering
// arrangement can fill, rescoped from a fixed 5.1-style layout bitmask to
// the IAMF loudspeaker label set.
type ChannelSet uint32

// Channel presence bits. Values follow IAMF Spec 7.3 loudspeaker label
// ordering (front pair, center, LFE, surround, height, binaural).
const (
	ChL2 = ChannelSet(1 << iota)
	ChR2
	ChCenter
	ChLFE
	ChLs5
	ChRs5
	ChLrs7
	ChRrs7
	ChLtf4
	ChRtf4
	ChLtb4
	ChRtb4
	ChBinauralL
	ChBinauralR
)

// Mono is the single front-center channel.
const Mono = ChannelSet(ChCenter)

// Stereo is the two-channel front pair.
const Stereo = ChannelSet(ChL2 | ChR2)

// Binaural is the two-channel binaural pair; valid only when an audio
// element has exactly one scalable channel layer (checked by
// obu.ScalableChannelLayoutConfig's validation).
const Binaural = ChannelSet(ChBinauralL | ChBinauralR)

// Count returns the number of channels present in the set.
func (c ChannelSet) Count() (n int) {
	for c != 0 {
		n++
		c = (c - 1) & c
	}
	return
}

// Has reports whether other's bits are all present in c.
func (c ChannelSet) Has(other ChannelSet) bool {
	return c&other == other
}

// String renders the channel count in "Nch" shorthand.
func (c ChannelSet) String() string {
	return fmt.Sprintf("%dch", c.Count())
}
