package obu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamf-tools/go-iamf"
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/obu/decoderconfig"
)

func TestTemporalDelimiterRoundTrip(t *testing.T) {
	t.Parallel()

	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	require.NoError(t, WriteObu(w, &Header{}, &TemporalDelimiter{}))
	b, err := w.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0x20, 0x00}, b) // type=4<<3 | obu_size(0)
}

func TestIASequenceHeaderWrite(t *testing.T) {
	t.Parallel()

	h := &IASequenceHeader{PrimaryProfile: ProfileSimple, AdditionalProfile: ProfileBase}
	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	require.NoError(t, WriteObu(w, &Header{}, h))
	b, err := w.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0xF8, 0x06, 'i', 'a', 'm', 'f', 0x00, 0x01}, b)
}

func TestCodecConfigLpcmRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := &CodecConfig{
		CodecConfigID:      0,
		CodecID:            iamf.CodecIDLpcm,
		NumSamplesPerFrame: 64,
		AudioRollDistance:  0,
		DecoderConfig: &decoderconfig.Lpcm{
			SampleFormatFlags: decoderconfig.BigEndian,
			SampleSize:        16,
			SampleRate:        48000,
		},
	}
	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	require.NoError(t, WriteObu(w, &Header{}, cfg))
	b, err := w.Bytes()
	require.NoError(t, err)

	want := []byte{
		0x00, // header: type=0, obu_size follows
		14,   // obu_size
		0x00,                // codec_config_id
		'i', 'p', 'c', 'm',  // codec_id
		0x40,                // num_samples_per_frame
		0x00, 0x00,          // audio_roll_distance
		0x00,                // sample_format_flags
		0x10,                // sample_size
		0x00, 0x00, 0xBB, 0x80, // sample_rate = 48000
	}
	require.Equal(t, want, b)
}

func TestAudioElementChannelBasedWrite(t *testing.T) {
	t.Parallel()

	ae := &AudioElement{
		AudioElementID:    1,
		AudioElementType:  AudioElementChannelBased,
		CodecConfigID:     0,
		AudioSubstreamIDs: []uint32{10, 11},
		ScalableChannelLayoutConfig: &ScalableChannelLayoutConfig{
			Layers: []ChannelAudioLayerConfig{
				{LoudspeakerLayout: LayoutStereo, SubstreamCount: 2, CoupledSubstreamCount: 1},
			},
		},
	}
	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	require.NoError(t, WriteObu(w, &Header{}, ae))
	b, err := w.Bytes()
	require.NoError(t, err)
	require.NotEmpty(t, b)
}

func TestAudioElementValidationFailures(t *testing.T) {
	t.Parallel()

	t.Run("no substreams", func(t *testing.T) {
		t.Parallel()
		ae := &AudioElement{AudioElementType: AudioElementChannelBased}
		w := bitio.NewWriter(bitio.NewMinimumGenerator())
		require.Error(t, ae.ValidateAndWritePayload(w))
	})

	t.Run("mix gain disallowed on channel-based", func(t *testing.T) {
		t.Parallel()
		ae := &AudioElement{
			AudioElementType:  AudioElementChannelBased,
			AudioSubstreamIDs: []uint32{1},
			ScalableChannelLayoutConfig: &ScalableChannelLayoutConfig{
				Layers: []ChannelAudioLayerConfig{{LoudspeakerLayout: LayoutMono, SubstreamCount: 1}},
			},
			Params: []AudioElementParam{
				{Type: ParamDefinitionMixGain, MixGain: &MixGainParamDefinition{ParamDefinition: ParamDefinition{ParameterRate: 1}}},
			},
		}
		w := bitio.NewWriter(bitio.NewMinimumGenerator())
		require.Error(t, ae.ValidateAndWritePayload(w))
	})

	t.Run("substream count mismatch", func(t *testing.T) {
		t.Parallel()
		ae := &AudioElement{
			AudioElementType:  AudioElementChannelBased,
			AudioSubstreamIDs: []uint32{1, 2},
			ScalableChannelLayoutConfig: &ScalableChannelLayoutConfig{
				Layers: []ChannelAudioLayerConfig{{LoudspeakerLayout: LayoutMono, SubstreamCount: 1}},
			},
		}
		w := bitio.NewWriter(bitio.NewMinimumGenerator())
		require.Error(t, ae.ValidateAndWritePayload(w))
	})
}

func TestGetNextValidOutputChannelCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want int
	}{
		{n: 1, want: 1},
		{n: 2, want: 4},
		{n: 4, want: 4},
		{n: 5, want: 9},
		{n: 225, want: 225},
	}
	for _, tt := range tests {
		got, err := GetNextValidOutputChannelCount(tt.n)
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}

	_, err := GetNextValidOutputChannelCount(226)
	require.Error(t, err)
}

func TestAmbisonicsMonoFOARoundTrip(t *testing.T) {
	t.Parallel()

	ae := &AudioElement{
		AudioElementID:    2,
		AudioElementType:  AudioElementSceneBased,
		CodecConfigID:     0,
		AudioSubstreamIDs: []uint32{1, 2, 3, 4},
		AmbisonicsMono: &AmbisonicsMonoConfig{
			OutputChannelCount: 4,
			SubstreamCount:     4,
			ChannelMapping:     []uint8{0, 1, 2, 3},
		},
	}
	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	require.NoError(t, WriteObu(w, &Header{}, ae))
	b, err := w.Bytes()
	require.NoError(t, err)
	require.Contains(t, string(b), string([]byte{0x04, 0x04, 0x00, 0x01, 0x02, 0x03}))
}

func TestAmbisonicsMonoMissingChannelFails(t *testing.T) {
	t.Parallel()

	c := &AmbisonicsMonoConfig{
		OutputChannelCount: 4,
		SubstreamCount:     4,
		ChannelMapping:     []uint8{0, 1, 2, 255},
	}
	require.Error(t, c.validate())
}

func TestMixPresentationWrite(t *testing.T) {
	t.Parallel()

	mp := &MixPresentation{
		MixPresentationID:    5,
		AnnotationsLanguage:  []string{"en-us"},
		LocalizedAnnotations: []string{"Stereo mix"},
		Submixes: []Submix{
			{
				AudioElements: []SubmixAudioElement{
					{AudioElementID: 1, ElementMixGain: MixGainParamDefinition{ParamDefinition: ParamDefinition{ParameterRate: 1}}},
				},
				OutputMixGain: MixGainParamDefinition{ParamDefinition: ParamDefinition{ParameterRate: 1}},
				Layouts: []MixPresentationLayout{
					{Layout: LayoutStereo, IntegratedLoudness: -2300, DigitalPeak: -100},
				},
			},
		},
	}
	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	require.NoError(t, WriteObu(w, &Header{}, mp))
	b, err := w.Bytes()
	require.NoError(t, err)
	require.NotEmpty(t, b)
}

func TestAudioFrameImplicitVsExplicit(t *testing.T) {
	t.Parallel()

	implicit, err := NewImplicitAudioFrame(42, 0, []byte{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, TypeAudioFrameID0, implicit.ObuType())

	explicit := NewExplicitAudioFrame(9999, []byte{4, 5})
	require.Equal(t, TypeAudioFrame, explicit.ObuType())

	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	require.NoError(t, WriteObu(w, &Header{}, explicit))
	b, err := w.Bytes()
	require.NoError(t, err)
	require.NotEmpty(t, b)

	_, err = NewImplicitAudioFrame(1, 99, nil)
	require.Error(t, err)
}

func TestParameterBlockMixGainWrite(t *testing.T) {
	t.Parallel()

	pb := &ParameterBlock{
		ParameterID:              7,
		Duration:                 8,
		ConstantSubblockDuration: 8,
		SubblockData: []ParameterSubblock{
			{MixGain: &MixGainSubblockData{AnimationType: MixGainAnimationStep, StepStartPointValue: 100}},
		},
	}
	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	require.NoError(t, WriteObu(w, &Header{}, pb))
	b, err := w.Bytes()
	require.NoError(t, err)
	require.NotEmpty(t, b)
}

func TestArbitraryWriteObusWithHook(t *testing.T) {
	t.Parallel()

	obus := []Arbitrary{
		{InsertionHook: InsertionHookBeforeDescriptors, Payload: []byte{0xAA}},
		{InsertionHook: InsertionHookAfterDescriptors, Payload: []byte{0xBB}},
	}
	w := bitio.NewWriter(bitio.NewMinimumGenerator())
	require.NoError(t, WriteObusWithHook(InsertionHookBeforeDescriptors, obus, w))
	b, err := w.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0xAA}, b)
}

func TestUnimplementedReadPaths(t *testing.T) {
	t.Parallel()

	r := bitio.NewReader(nil)
	require.Error(t, (&AudioElement{}).ValidateAndReadPayload(r, 0))
	require.Error(t, (&MixPresentation{}).ValidateAndReadPayload(r, 0))
	require.Error(t, (&AudioFrame{}).ValidateAndReadPayload(r, 0))
	require.Error(t, (&ParameterBlock{}).ValidateAndReadPayload(r, 0))
	require.Error(t, (&Arbitrary{}).ValidateAndReadPayload(r, 0))
}
