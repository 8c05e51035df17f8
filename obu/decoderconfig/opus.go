package decoderconfig

import (
	"github.com/iamf-tools/go-iamf"
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/ierrors"
)

// opusOutputSampleRate is the fixed rate Opus always decodes to per RFC
// 6716; IAMF carries InputSampleRate purely as an encoder hint.
const opusOutputSampleRate = 48000

// Opus is the Opus decoder config. It carries no application field: that
// is an encoder-only hint, named instead in encoderio.OpusEncoderMetadata.
type Opus struct {
	Version              uint8 // always 1 on write
	OutputChannelCount   uint8
	PreSkip              uint16
	InputRateHz          uint32 // informational; decode always happens at 48 kHz
	OutputGain           int16
	ChannelMappingFamily uint8
}

// CodecID implements DecoderConfig.
func (Opus) CodecID() iamf.CodecID { return iamf.CodecIDOpus }

// InputSampleRate implements DecoderConfig.
func (o *Opus) InputSampleRate() uint32 { return o.InputRateHz }

// OutputSampleRate implements DecoderConfig.
func (o *Opus) OutputSampleRate() uint32 { return opusOutputSampleRate }

// BitDepthToMeasureLoudness implements DecoderConfig; Opus always decodes
// to 16-bit PCM internally for loudness measurement purposes in this
// module (the codec itself is lossy and bit-depth-agnostic).
func (o *Opus) BitDepthToMeasureLoudness() uint8 { return 16 } //nolint:mnd

func (o *Opus) validate() error {
	if o.OutputChannelCount == 0 {
		return ierrors.NewInvalidArgument("opus: output_channel_count must be > 0")
	}
	return nil
}

// ValidateAndWrite implements DecoderConfig.
func (o *Opus) ValidateAndWrite(w *bitio.Writer) error {
	if err := o.validate(); err != nil {
		return err
	}
	if err := w.WriteUint(1, 8); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteUint(uint64(o.OutputChannelCount), 8); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteUint(uint64(o.PreSkip), 16); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteUint(uint64(o.InputRateHz), 32); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteInt(int64(o.OutputGain), 16); err != nil { //nolint:mnd
		return err
	}
	return w.WriteUint(uint64(o.ChannelMappingFamily), 8) //nolint:mnd
}

// ValidateAndRead implements DecoderConfig.
func (o *Opus) ValidateAndRead(r *bitio.Reader) error {
	version, err := r.ReadUint(8) //nolint:mnd
	if err != nil {
		return err
	}
	o.Version = uint8(version)
	channels, err := r.ReadUint(8) //nolint:mnd
	if err != nil {
		return err
	}
	o.OutputChannelCount = uint8(channels)
	preSkip, err := r.ReadUint(16) //nolint:mnd
	if err != nil {
		return err
	}
	o.PreSkip = uint16(preSkip)
	rate, err := r.ReadUint(32) //nolint:mnd
	if err != nil {
		return err
	}
	o.InputRateHz = uint32(rate)
	gain, err := r.ReadInt(16) //nolint:mnd
	if err != nil {
		return err
	}
	o.OutputGain = int16(gain)
	mapping, err := r.ReadUint(8) //nolint:mnd
	if err != nil {
		return err
	}
	o.ChannelMappingFamily = uint8(mapping)
	return o.validate()
}
