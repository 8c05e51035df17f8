package obu

import (
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/ierrors"
)

// AudioFrame carries one coded substream's worth of samples for one
// temporal unit. The wire obu_type encodes the substream id either
// implicitly (the first 18 substream ids ever declared, one dedicated
// type each) or explicitly, matching the original encoder's
// GetObuType(substream_id) dispatch.
type AudioFrame struct {
	SubstreamID    uint32
	AudioFrameBytes []byte

	obuType Type
}

// NewImplicitAudioFrame builds an AudioFrame whose substream id is encoded
// by its obu_type alone (substreamIndex is this substream's position, 0-17,
// among the first 18 substream ids ever declared in the program).
func NewImplicitAudioFrame(substreamID uint32, substreamIndex int, payload []byte) (*AudioFrame, error) {
	t, ok := AudioFrameTypeForSubstream(substreamIndex)
	if !ok {
		return nil, ierrors.NewOutOfRange("audio_frame: substream index %d has no implicit obu_type", substreamIndex)
	}
	return &AudioFrame{SubstreamID: substreamID, AudioFrameBytes: payload, obuType: t}, nil
}

// NewExplicitAudioFrame builds an AudioFrame that carries its substream id
// as an explicit field in the payload, for substreams beyond the first 18.
func NewExplicitAudioFrame(substreamID uint32, payload []byte) *AudioFrame {
	return &AudioFrame{SubstreamID: substreamID, AudioFrameBytes: payload, obuType: TypeAudioFrame}
}

// ObuType implements PayloadWriter.
func (a *AudioFrame) ObuType() Type { return a.obuType }

// ValidateAndWritePayload implements PayloadWriter.
func (a *AudioFrame) ValidateAndWritePayload(w *bitio.Writer) error {
	if a.obuType == TypeAudioFrame {
		if err := w.WriteUleb128(a.SubstreamID); err != nil {
			return err
		}
	} else if _, ok := SubstreamIndexForAudioFrameType(a.obuType); !ok {
		return ierrors.NewInvalidArgument("audio_frame: obu_type %s is not a valid audio frame type", a.obuType)
	}
	return w.WriteBytes(a.AudioFrameBytes)
}

// ValidateAndReadPayload implements PayloadReader. Reading AudioFrame is
// not yet implemented (see DESIGN.md's Open Question decisions).
func (a *AudioFrame) ValidateAndReadPayload(_ *bitio.Reader, _ int) error {
	return ierrors.NewUnimplemented("AudioFrame ValidateAndReadPayload not yet implemented")
}
