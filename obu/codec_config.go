package obu

import (
	"github.com/iamf-tools/go-iamf"
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/ierrors"
	"github.com/iamf-tools/go-iamf/obu/decoderconfig"
)

// CodecConfig declares one codec identity and its decoder configuration,
// referenced by id from every Audio Element that uses it.
type CodecConfig struct {
	CodecConfigID      uint32
	CodecID            iamf.CodecID
	NumSamplesPerFrame uint32
	AudioRollDistance  int16
	DecoderConfig      decoderconfig.DecoderConfig
}

// ObuType implements PayloadWriter.
func (CodecConfig) ObuType() Type { return TypeCodecConfig }

// InputSampleRate returns the decoder config's input rate.
func (c *CodecConfig) InputSampleRate() uint32 {
	if c.DecoderConfig == nil {
		return 0
	}
	return c.DecoderConfig.InputSampleRate()
}

// OutputSampleRate returns the decoder config's output rate; equal to the
// input rate for every codec except Opus, which always decodes to 48 kHz.
func (c *CodecConfig) OutputSampleRate() uint32 {
	if c.DecoderConfig == nil {
		return 0
	}
	return c.DecoderConfig.OutputSampleRate()
}

// BitDepthToMeasureLoudness returns the decoder config's native bit depth.
func (c *CodecConfig) BitDepthToMeasureLoudness() uint8 {
	if c.DecoderConfig == nil {
		return 0
	}
	return c.DecoderConfig.BitDepthToMeasureLoudness()
}

func (c *CodecConfig) validate() error {
	if !c.CodecID.IsKnown() {
		return ierrors.NewInvalidArgument("codec_config: unrecognized codec_id %q", c.CodecID)
	}
	if c.NumSamplesPerFrame == 0 {
		return ierrors.NewInvalidArgument("codec_config: num_samples_per_frame must be > 0")
	}
	if c.DecoderConfig == nil {
		return ierrors.NewInvalidArgument("codec_config: decoder_config is required")
	}
	if c.DecoderConfig.CodecID() != c.CodecID {
		return ierrors.NewFailedPrecondition("codec_config: decoder_config codec %q does not match codec_id %q",
			c.DecoderConfig.CodecID(), c.CodecID)
	}
	return nil
}

// ValidateAndWritePayload implements PayloadWriter.
func (c *CodecConfig) ValidateAndWritePayload(w *bitio.Writer) error {
	if err := c.validate(); err != nil {
		return err
	}
	if err := w.WriteUleb128(c.CodecConfigID); err != nil {
		return err
	}
	if err := w.WriteBytes(c.CodecID[:]); err != nil {
		return err
	}
	if err := w.WriteUleb128(c.NumSamplesPerFrame); err != nil {
		return err
	}
	if err := w.WriteInt(int64(c.AudioRollDistance), 16); err != nil { //nolint:mnd
		return err
	}
	return c.DecoderConfig.ValidateAndWrite(w)
}

// ValidateAndReadPayload implements PayloadReader. The decoder-config body
// is dispatched by codec_id; for LPCM that dispatch still returns
// ierrors.Unimplemented (see obu/decoderconfig.Lpcm.ValidateAndRead).
func (c *CodecConfig) ValidateAndReadPayload(r *bitio.Reader, _ int) error {
	id, err := r.ReadUleb128()
	if err != nil {
		return err
	}
	c.CodecConfigID = id

	idBytes, err := r.ReadBytes(4) //nolint:mnd
	if err != nil {
		return err
	}
	copy(c.CodecID[:], idBytes)

	c.NumSamplesPerFrame, err = r.ReadUleb128()
	if err != nil {
		return err
	}
	roll, err := r.ReadInt(16) //nolint:mnd
	if err != nil {
		return err
	}
	c.AudioRollDistance = int16(roll)

	switch c.CodecID {
	case iamf.CodecIDLpcm:
		c.DecoderConfig = &decoderconfig.Lpcm{}
	case iamf.CodecIDOpus:
		c.DecoderConfig = &decoderconfig.Opus{}
	case iamf.CodecIDFlac:
		c.DecoderConfig = &decoderconfig.Flac{}
	case iamf.CodecIDAac:
		c.DecoderConfig = &decoderconfig.Aac{}
	default:
		return ierrors.NewInvalidArgument("codec_config: unrecognized codec_id %q", c.CodecID)
	}
	if err := c.DecoderConfig.ValidateAndRead(r); err != nil {
		return err
	}
	return c.validate()
}
