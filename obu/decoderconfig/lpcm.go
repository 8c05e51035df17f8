package decoderconfig

import (
	"github.com/iamf-tools/go-iamf"
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/ierrors"
)

// SampleFormatFlags selects LPCM endianness on the wire.
type SampleFormatFlags uint8

const (
	BigEndian    SampleFormatFlags = 0
	LittleEndian SampleFormatFlags = 1
)

var validLpcmSampleRates = map[uint32]bool{
	16000: true, 32000: true, 44100: true, 48000: true, 96000: true, //nolint:mnd
}

var validLpcmSampleSizes = map[uint8]bool{16: true, 24: true, 32: true} //nolint:mnd

// Lpcm is the passthrough (uncompressed) decoder config.
type Lpcm struct {
	SampleFormatFlags SampleFormatFlags
	SampleSize        uint8  // bits per sample: 16, 24, or 32
	SampleRate        uint32 // Hz
}

// CodecID implements DecoderConfig.
func (Lpcm) CodecID() iamf.CodecID { return iamf.CodecIDLpcm }

// InputSampleRate implements DecoderConfig.
func (l *Lpcm) InputSampleRate() uint32 { return l.SampleRate }

// OutputSampleRate implements DecoderConfig; LPCM never resamples.
func (l *Lpcm) OutputSampleRate() uint32 { return l.SampleRate }

// BitDepthToMeasureLoudness implements DecoderConfig.
func (l *Lpcm) BitDepthToMeasureLoudness() uint8 { return l.SampleSize }

func (l *Lpcm) validate() error {
	if !validLpcmSampleRates[l.SampleRate] {
		return ierrors.NewInvalidArgument("lpcm: unsupported sample rate %d", l.SampleRate)
	}
	if !validLpcmSampleSizes[l.SampleSize] {
		return ierrors.NewInvalidArgument("lpcm: unsupported sample size %d", l.SampleSize)
	}
	if l.SampleFormatFlags != BigEndian && l.SampleFormatFlags != LittleEndian {
		return ierrors.NewInvalidArgument("lpcm: invalid sample format flags %d", l.SampleFormatFlags)
	}
	return nil
}

// ValidateAndWrite implements DecoderConfig.
func (l *Lpcm) ValidateAndWrite(w *bitio.Writer) error {
	if err := l.validate(); err != nil {
		return err
	}
	if err := w.WriteUint(uint64(l.SampleFormatFlags), 8); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteUint(uint64(l.SampleSize), 8); err != nil { //nolint:mnd
		return err
	}
	return w.WriteUint(uint64(l.SampleRate), 32) //nolint:mnd
}

// ValidateAndRead implements DecoderConfig. The LPCM read path is not yet
// implemented, matching the original reference implementation's stub for
// this decoder config (see DESIGN.md's Open Question decisions).
func (l *Lpcm) ValidateAndRead(*bitio.Reader) error {
	return ierrors.NewUnimplemented("lpcm decoder config read not implemented")
}
