package decoderconfig

import (
	"github.com/iamf-tools/go-iamf"
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/ierrors"
)

// FlacBlockType names a FLAC METADATA_BLOCK's block_type; only StreamInfo
// is parsed structurally, every other type is carried as opaque bytes.
type FlacBlockType uint8

const FlacBlockTypeStreamInfo FlacBlockType = 0

// FlacBitDepth enumerates the sample depths IAMF allows for FLAC, following
// the depth-enum idiom of the pack's FLAC bitstream reader (Depth4/8/...),
// narrowed to the depths IAMF/FLAC actually carries here.
type FlacBitDepth uint8

const (
	FlacDepth16 FlacBitDepth = 16
	FlacDepth24 FlacBitDepth = 24
	FlacDepth32 FlacBitDepth = 32
)

// FlacMetadataBlock is one METADATA_BLOCK in a FLAC decoder config.
type FlacMetadataBlock struct {
	LastMetadataBlockFlag bool
	BlockType             FlacBlockType
	Data                  []byte // raw block payload, length-prefixed on write
}

// FlacStreamInfo is the parsed form of a StreamInfo metadata block.
type FlacStreamInfo struct {
	MinBlockSize  uint16
	MaxBlockSize  uint16
	MinFrameSize  uint32 // 24-bit field
	MaxFrameSize  uint32 // 24-bit field
	SampleRate    uint32 // 20-bit field
	ChannelsMinus1 uint8 // 3-bit field
	BitsPerSampleMinus1 uint8 // 5-bit field
	TotalSamples  uint64 // 36-bit field
	Md5Signature  [16]byte
}

// Flac is the FLAC decoder config: a sequence of METADATA_BLOCKs.
type Flac struct {
	MetadataBlocks []FlacMetadataBlock
}

// CodecID implements DecoderConfig.
func (Flac) CodecID() iamf.CodecID { return iamf.CodecIDFlac }

// InputSampleRate implements DecoderConfig, reading the StreamInfo block.
func (f *Flac) InputSampleRate() uint32 {
	info, ok := f.StreamInfo()
	if !ok {
		return 0
	}
	return info.SampleRate
}

// OutputSampleRate implements DecoderConfig; FLAC never resamples.
func (f *Flac) OutputSampleRate() uint32 { return f.InputSampleRate() }

// BitDepthToMeasureLoudness implements DecoderConfig.
func (f *Flac) BitDepthToMeasureLoudness() uint8 {
	info, ok := f.StreamInfo()
	if !ok {
		return 0
	}
	return info.BitsPerSampleMinus1 + 1
}

// StreamInfo returns the parsed StreamInfo block, if present.
func (f *Flac) StreamInfo() (FlacStreamInfo, bool) {
	for _, b := range f.MetadataBlocks {
		if b.BlockType == FlacBlockTypeStreamInfo {
			info, err := decodeStreamInfo(b.Data)
			if err != nil {
				return FlacStreamInfo{}, false
			}
			return info, true
		}
	}
	return FlacStreamInfo{}, false
}

func decodeStreamInfo(data []byte) (FlacStreamInfo, error) {
	r := bitio.NewReader(data)
	var info FlacStreamInfo
	var err error
	read := func(numBits int, dst *uint64) {
		if err != nil {
			return
		}
		*dst, err = r.ReadUint(numBits)
	}
	var minBlock, maxBlock, minFrame, maxFrame, rate, ch, bps, total uint64
	read(16, &minBlock) //nolint:mnd
	read(16, &maxBlock) //nolint:mnd
	read(24, &minFrame) //nolint:mnd
	read(24, &maxFrame) //nolint:mnd
	read(20, &rate)     //nolint:mnd
	read(3, &ch)         //nolint:mnd
	read(5, &bps)        //nolint:mnd
	read(36, &total)     //nolint:mnd
	if err != nil {
		return FlacStreamInfo{}, err
	}
	md5, err := r.ReadBytes(16) //nolint:mnd
	if err != nil {
		return FlacStreamInfo{}, err
	}
	info = FlacStreamInfo{
		MinBlockSize:        uint16(minBlock),
		MaxBlockSize:        uint16(maxBlock),
		MinFrameSize:        uint32(minFrame),
		MaxFrameSize:        uint32(maxFrame),
		SampleRate:          uint32(rate),
		ChannelsMinus1:      uint8(ch),
		BitsPerSampleMinus1: uint8(bps),
		TotalSamples:        total,
	}
	copy(info.Md5Signature[:], md5)
	return info, nil
}

func encodeStreamInfo(info FlacStreamInfo) ([]byte, error) {
	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	writes := []struct {
		v uint64
		n int
	}{
		{uint64(info.MinBlockSize), 16},
		{uint64(info.MaxBlockSize), 16},
		{uint64(info.MinFrameSize), 24},
		{uint64(info.MaxFrameSize), 24},
		{uint64(info.SampleRate), 20},
		{uint64(info.ChannelsMinus1), 3},
		{uint64(info.BitsPerSampleMinus1), 5},
		{info.TotalSamples, 36},
	}
	for _, fw := range writes {
		if err := w.WriteUint(fw.v, fw.n); err != nil {
			return nil, err
		}
	}
	if err := w.WriteBytes(info.Md5Signature[:]); err != nil {
		return nil, err
	}
	return w.Bytes()
}

func (f *Flac) validate() error {
	if len(f.MetadataBlocks) == 0 {
		return ierrors.NewInvalidArgument("flac: at least one metadata block is required")
	}
	hasStreamInfo := false
	for i, b := range f.MetadataBlocks {
		isLast := i == len(f.MetadataBlocks)-1
		if b.LastMetadataBlockFlag != isLast {
			return ierrors.NewFailedPrecondition("flac: last_metadata_block_flag must be set on exactly the final block")
		}
		if b.BlockType == FlacBlockTypeStreamInfo {
			hasStreamInfo = true
		}
	}
	if !hasStreamInfo {
		return ierrors.NewInvalidArgument("flac: StreamInfo metadata block is required")
	}
	return nil
}

// ValidateAndWrite implements DecoderConfig.
func (f *Flac) ValidateAndWrite(w *bitio.Writer) error {
	if err := f.validate(); err != nil {
		return err
	}
	for _, b := range f.MetadataBlocks {
		w.WriteBool(b.LastMetadataBlockFlag)
		if err := w.WriteUint(uint64(b.BlockType), 7); err != nil { //nolint:mnd
			return err
		}
		if err := w.WriteUint(uint64(len(b.Data)), 24); err != nil { //nolint:mnd
			return err
		}
		if err := w.WriteBytes(b.Data); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndRead implements DecoderConfig. It reads metadata blocks until
// one has last_metadata_block_flag set; no total byte bound is applied.
func (f *Flac) ValidateAndRead(r *bitio.Reader) error {
	f.MetadataBlocks = nil
	for {
		last, err := r.ReadBool()
		if err != nil {
			return err
		}
		blockType, err := r.ReadUint(7) //nolint:mnd
		if err != nil {
			return err
		}
		length, err := r.ReadUint(24) //nolint:mnd
		if err != nil {
			return err
		}
		data, err := r.ReadBytes(int(length))
		if err != nil {
			return err
		}
		f.MetadataBlocks = append(f.MetadataBlocks, FlacMetadataBlock{
			LastMetadataBlockFlag: last,
			BlockType:             FlacBlockType(blockType),
			Data:                  data,
		})
		if last {
			break
		}
	}
	return f.validate()
}

// NewStreamInfoBlock builds a StreamInfo metadata block from info, useful
// for constructing a Flac config.
func NewStreamInfoBlock(info FlacStreamInfo, last bool) (FlacMetadataBlock, error) {
	data, err := encodeStreamInfo(info)
	if err != nil {
		return FlacMetadataBlock{}, err
	}
	return FlacMetadataBlock{
		LastMetadataBlockFlag: last,
		BlockType:             FlacBlockTypeStreamInfo,
		Data:                  data,
	}, nil
}
