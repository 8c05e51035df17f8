package assembler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamf-tools/go-iamf"
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/obu"
	"github.com/iamf-tools/go-iamf/obu/decoderconfig"
)

func testDescriptors() *Descriptors {
	return &Descriptors{
		IASequenceHeader: obu.IASequenceHeader{PrimaryProfile: obu.ProfileSimple, AdditionalProfile: obu.ProfileBase},
		CodecConfigs: []*obu.CodecConfig{
			{
				CodecConfigID:      0,
				CodecID:            iamf.CodecIDLpcm,
				NumSamplesPerFrame: 960, //nolint:mnd
				DecoderConfig: &decoderconfig.Lpcm{
					SampleFormatFlags: decoderconfig.LittleEndian,
					SampleSize:        16, //nolint:mnd
					SampleRate:        48000,
				},
			},
		},
		AudioElements: []*obu.AudioElement{
			{
				AudioElementID:    1,
				AudioElementType:  obu.AudioElementChannelBased,
				CodecConfigID:     0,
				AudioSubstreamIDs: []uint32{10},
				ScalableChannelLayoutConfig: &obu.ScalableChannelLayoutConfig{
					Layers: []obu.ChannelAudioLayerConfig{{LoudspeakerLayout: obu.LayoutMono, SubstreamCount: 1}},
				},
			},
		},
		MixPresentations: []*obu.MixPresentation{
			{
				MixPresentationID: 5, //nolint:mnd
				Submixes: []obu.Submix{
					{
						AudioElements: []obu.SubmixAudioElement{{
							AudioElementID: 1,
							ElementMixGain: obu.MixGainParamDefinition{ParamDefinition: obu.ParamDefinition{ParameterRate: 1}},
						}},
						OutputMixGain: obu.MixGainParamDefinition{ParamDefinition: obu.ParamDefinition{ParameterRate: 1}},
						Layouts:       []obu.MixPresentationLayout{{Layout: obu.LayoutMono}},
					},
				},
			},
		},
	}
}

func TestWriteDescriptorsSucceeds(t *testing.T) {
	t.Parallel()

	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	a := NewObuAssembler(w)
	require.NoError(t, a.WriteDescriptors(testDescriptors()))

	b, err := a.Bytes()
	require.NoError(t, err)
	require.NotEmpty(t, b)
}

func TestWriteDescriptorsSplicesArbitraryHooks(t *testing.T) {
	t.Parallel()

	d := testDescriptors()
	d.ArbitraryOBUs = []obu.Arbitrary{
		{InsertionHook: obu.InsertionHookBeforeDescriptors, Payload: []byte{0xAA}},
		{InsertionHook: obu.InsertionHookAfterIASequenceHeader, Payload: []byte{0xBB}},
		{InsertionHook: obu.InsertionHookAfterDescriptors, Payload: []byte{0xCC}},
	}

	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	a := NewObuAssembler(w)
	require.NoError(t, a.WriteDescriptors(d))

	b, err := a.Bytes()
	require.NoError(t, err)
	require.Equal(t, byte(0xAA), b[0])
	require.Contains(t, string(b), string([]byte{0xBB}))
	require.Equal(t, byte(0xCC), b[len(b)-1])
}

func TestWriteTemporalUnit(t *testing.T) {
	t.Parallel()

	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	a := NewObuAssembler(w)

	frame := obu.NewExplicitAudioFrame(10, []byte{1, 2, 3}) //nolint:mnd
	pb := &obu.ParameterBlock{
		ParameterID:              1,
		Duration:                 960, //nolint:mnd
		ConstantSubblockDuration: 960, //nolint:mnd
		SubblockData: []obu.ParameterSubblock{
			{MixGain: &obu.MixGainSubblockData{AnimationType: obu.MixGainAnimationStep}},
		},
	}

	unit := &TemporalUnit{
		AudioFrames:     []*obu.AudioFrame{frame},
		ParameterBlocks: []*obu.ParameterBlock{pb},
		ArbitraryOBUs: []obu.Arbitrary{
			{InsertionHook: obu.InsertionHookBeforeParameterBlocksAtTick, Payload: []byte{0xDD}},
		},
	}
	require.NoError(t, a.WriteTemporalUnit(unit))

	b, err := a.Bytes()
	require.NoError(t, err)
	require.NotEmpty(t, b)
	require.Contains(t, string(b), string([]byte{0xDD}))
}

func TestBytesFailsWhenNotByteAligned(t *testing.T) {
	t.Parallel()

	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	require.NoError(t, w.WriteUint(1, 3)) //nolint:mnd
	a := NewObuAssembler(w)
	_, err := a.Bytes()
	require.Error(t, err)
}
