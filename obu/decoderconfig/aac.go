package decoderconfig

import (
	"github.com/iamf-tools/go-iamf"
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/ierrors"
)

// AAC-LC is the only object type IAMF allows.
const aacLcObjectType = 2

var aacSampleRateTable = []uint32{
	96000, 88200, 64000, 48000, 44100, 32000, //nolint:mnd
	24000, 22050, 16000, 12000, 11025, 8000, 7350, //nolint:mnd
}

// AudioSpecificConfig is the MPEG-4 Audio object-type/sample-rate/channel
// triple embedded in an AAC decoder config.
type AudioSpecificConfig struct {
	ObjectType      uint8
	SampleRateIndex uint8
	ChannelConfig   uint8
}

// SampleRate derives the Hz value from SampleRateIndex.
func (c AudioSpecificConfig) SampleRate() uint32 {
	if int(c.SampleRateIndex) < len(aacSampleRateTable) {
		return aacSampleRateTable[c.SampleRateIndex]
	}
	return 0
}

func writeASC(w *bitio.Writer, c AudioSpecificConfig) error {
	if c.ObjectType != aacLcObjectType {
		return ierrors.NewInvalidArgument("aac: only AAC-LC (object type 2) is supported, got %d", c.ObjectType)
	}
	if err := w.WriteUint(uint64(c.ObjectType), 5); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteUint(uint64(c.SampleRateIndex), 4); err != nil { //nolint:mnd
		return err
	}
	return w.WriteUint(uint64(c.ChannelConfig), 4) //nolint:mnd
}

func readASC(r *bitio.Reader) (AudioSpecificConfig, error) {
	objectType, err := r.ReadUint(5) //nolint:mnd
	if err != nil {
		return AudioSpecificConfig{}, err
	}
	rateIdx, err := r.ReadUint(4) //nolint:mnd
	if err != nil {
		return AudioSpecificConfig{}, err
	}
	chConfig, err := r.ReadUint(4) //nolint:mnd
	if err != nil {
		return AudioSpecificConfig{}, err
	}
	return AudioSpecificConfig{
		ObjectType:      uint8(objectType),
		SampleRateIndex: uint8(rateIdx),
		ChannelConfig:   uint8(chConfig),
	}, nil
}

// Aac is the AAC-LC decoder config: a length-prefixed DecoderSpecificInfo
// wrapping the raw AudioSpecificConfig bits. No enclosing ES or
// DecoderConfig descriptor is written, and no MP4 box framing (IAMF does
// not embed AAC inside an MP4 container).
type Aac struct {
	Config AudioSpecificConfig
}

// CodecID implements DecoderConfig.
func (Aac) CodecID() iamf.CodecID { return iamf.CodecIDAac }

// InputSampleRate implements DecoderConfig.
func (a *Aac) InputSampleRate() uint32 { return a.Config.SampleRate() }

// OutputSampleRate implements DecoderConfig; AAC never resamples.
func (a *Aac) OutputSampleRate() uint32 { return a.Config.SampleRate() }

// BitDepthToMeasureLoudness implements DecoderConfig; AAC always decodes
// to 16-bit PCM for loudness measurement in this module.
func (a *Aac) BitDepthToMeasureLoudness() uint8 { return 16 } //nolint:mnd

// ValidateAndWrite implements DecoderConfig.
func (a *Aac) ValidateAndWrite(w *bitio.Writer) error {
	ascWriter := bitio.NewWriter(w.Generator())
	if err := writeASC(ascWriter, a.Config); err != nil {
		return err
	}
	ascBytes, err := padToByteBoundary(ascWriter)
	if err != nil {
		return err
	}

	// DecoderSpecificInfo tag (0x05) + length + the ASC bytes.
	if err := w.WriteUint(0x05, 8); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteUint(uint64(len(ascBytes)), 8); err != nil { //nolint:mnd
		return err
	}
	return w.WriteBytes(ascBytes)
}

// ValidateAndRead implements DecoderConfig.
func (a *Aac) ValidateAndRead(r *bitio.Reader) error {
	tag, err := r.ReadUint(8) //nolint:mnd
	if err != nil {
		return err
	}
	if tag != 0x05 {
		return ierrors.NewDataLoss("aac: expected DecoderSpecificInfo tag 0x05, got %#x", tag)
	}
	length, err := r.ReadUint(8) //nolint:mnd
	if err != nil {
		return err
	}
	ascBytes, err := r.ReadBytes(int(length))
	if err != nil {
		return err
	}
	ascReader := bitio.NewReader(ascBytes)
	a.Config, err = readASC(ascReader)
	return err
}

func padToByteBoundary(w *bitio.Writer) ([]byte, error) {
	for !w.ByteAligned() {
		w.WriteBit(0)
	}
	return w.Bytes()
}
