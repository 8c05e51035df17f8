// Package decoderconfig holds the four per-codec decoder configuration
// variants a Codec Config OBU wraps: LPCM, Opus, FLAC, and AAC-LC.
package decoderconfig

import (
	"github.com/iamf-tools/go-iamf/bitio"

	"github.com/iamf-tools/go-iamf"
)

// DecoderConfig is implemented by every per-codec configuration variant.
type DecoderConfig interface {
	CodecID() iamf.CodecID
	ValidateAndWrite(w *bitio.Writer) error
	// ValidateAndRead parses the variant's fields. Implementations that are
	// not yet supported return ierrors.Unimplemented (see Lpcm).
	ValidateAndRead(r *bitio.Reader) error
	// InputSampleRate is the sample rate PCM is supplied at.
	InputSampleRate() uint32
	// OutputSampleRate is the sample rate the codec decodes to; equal to
	// InputSampleRate for every codec except Opus, which always decodes to
	// 48000 Hz.
	OutputSampleRate() uint32
	// BitDepthToMeasureLoudness is the decoder's native output bit depth.
	BitDepthToMeasureLoudness() uint8
}
