// Package encoderio names the boundary between this module and an
// external per-codec encoder implementation; it supplies configuration
// types and a resampling helper but no codec implementation of its own.
package encoderio

import (
	"github.com/hraban/opus"

	"github.com/iamf-tools/go-iamf/obu"
)

// CodecParameters is the subset of a Codec Config an external encoder
// needs to initialize itself for one audio element's substreams.
type CodecParameters struct {
	NumChannels        int
	InputSampleRate    uint32
	NumSamplesPerFrame uint32
}

// ExternalAudioEncoder is implemented by a per-codec collaborator
// (LPCM/Opus/FLAC/AAC) that turns raw PCM into coded Audio Frame payloads.
// This module supplies no implementation: wiring one in is an application
// concern, mirroring how the reference encoder treats the codec SDKs as
// external dependencies of the CLI rather than of the bitstream library.
type ExternalAudioEncoder interface {
	Init(params CodecParameters) error
	Encode(pcm []byte) ([]*obu.AudioFrame, error)
	Close()
}

// OpusEncoderMetadata configures an external Opus encoder. Application
// reuses github.com/hraban/opus's enum directly rather than redeclaring
// it, since that is the exact type the user metadata's application field
// names.
type OpusEncoderMetadata struct {
	Application             opus.Application
	TargetBitratePerChannel int
	UseFloatAPI             bool
}

// AacEncoderMetadata configures an external AAC-LC encoder.
type AacEncoderMetadata struct {
	EnableAfterburner bool
	BitrateMode       int
	SignalingMode     string
}

