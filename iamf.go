// Package iamf is the root of an Immersive Audio Model and Formats (IAMF)
// container encoder and partial decoder. It holds the shared leaf types
// (ChannelSet, SampleFormat, CodecID); the three core subsystems live in
// sibling packages:
//
//   - bitio:      bit-granular reader/writer, ULEB128/SLEB128
//   - obu:        the OBU family (Codec Config, Audio Element, Mix
//     Presentation, Parameter Definitions, Audio Frame, Parameter Block)
//   - timing:     the global per-substream/per-parameter-id clock
//   - param:      the parameters manager and demixing state machine
//   - assembler:  descriptor ordering and the temporal-unit write loop
//   - render:     passthrough channel arrangement
//   - loudness:   loudness info plumbing
//   - metadata:   YAML-backed user metadata records
//   - encoderio:  the external per-codec encoder boundary
package iamf

import "time"

// SampleProvider is the external collaborator that supplies PCM audio for
// one audio element's substreams, one frame at a time. Implementations
// (WAV/BW64 readers, synthetic sources for tests) are not part of this
// module; only the interface is specified.
type SampleProvider interface {
	// NextFrame returns up to numSamples interleaved samples per channel in
	// the provider's native SampleFormat, or io.EOF once exhausted.
	NextFrame(numSamples int) (samples []byte, err error)
	Channels() int
	SampleRate() int
	Format() SampleFormat
}

// Clock reports wall-clock time for components that need to stamp
// diagnostic events; decoupled from the sample-tick clocks in package
// timing, which govern bitstream semantics.
type Clock interface {
	Now() time.Time
}
