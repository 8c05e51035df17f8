package timing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamf-tools/go-iamf"
	"github.com/iamf-tools/go-iamf/obu"
	"github.com/iamf-tools/go-iamf/obu/decoderconfig"
)

func newTestAudioElement(id uint32, codecConfigID uint32, substreams ...uint32) *obu.AudioElement {
	return &obu.AudioElement{
		AudioElementID:    id,
		AudioElementType:  obu.AudioElementChannelBased,
		CodecConfigID:     codecConfigID,
		AudioSubstreamIDs: substreams,
	}
}

func newTestCodecConfig(id uint32, sampleRate uint32) *obu.CodecConfig {
	return &obu.CodecConfig{
		CodecConfigID:      id,
		CodecID:            iamf.CodecIDLpcm,
		NumSamplesPerFrame: 960, //nolint:mnd
		DecoderConfig: &decoderconfig.Lpcm{
			SampleFormatFlags: decoderconfig.LittleEndian,
			SampleSize:        16, //nolint:mnd
			SampleRate:        sampleRate,
		},
	}
}

func TestGlobalTimingModuleInitializeAndAdvance(t *testing.T) {
	t.Parallel()

	g := NewGlobalTimingModule()
	codecConfigs := map[uint32]*obu.CodecConfig{0: newTestCodecConfig(0, 48000)} //nolint:mnd
	elements := []*obu.AudioElement{newTestAudioElement(1, 0, 10, 11)}
	paramDefs := []*obu.ParamDefinition{{ParameterID: 7, ParameterRate: 48000}} //nolint:mnd

	require.NoError(t, g.Initialize(elements, codecConfigs, paramDefs))

	start, end, err := g.NextAudioFrameTimestamps(10, 960) //nolint:mnd
	require.NoError(t, err)
	require.Equal(t, uint64(0), start)
	require.Equal(t, uint64(960), end) //nolint:mnd

	start2, end2, err := g.NextAudioFrameTimestamps(10, 960) //nolint:mnd
	require.NoError(t, err)
	require.Equal(t, uint64(960), start2)  //nolint:mnd
	require.Equal(t, uint64(1920), end2) //nolint:mnd

	_, _, err = g.NextAudioFrameTimestamps(99, 960) //nolint:mnd
	require.Error(t, err)
}

func TestGlobalTimingModuleDuplicateSubstream(t *testing.T) {
	t.Parallel()

	g := NewGlobalTimingModule()
	codecConfigs := map[uint32]*obu.CodecConfig{0: newTestCodecConfig(0, 48000)} //nolint:mnd
	elements := []*obu.AudioElement{
		newTestAudioElement(1, 0, 10),
		newTestAudioElement(2, 0, 10),
	}
	require.Error(t, g.Initialize(elements, codecConfigs, nil))
}

func TestGlobalTimingModuleParameterBlockMustMatchClock(t *testing.T) {
	t.Parallel()

	g := NewGlobalTimingModule()
	paramDefs := []*obu.ParamDefinition{{ParameterID: 3, ParameterRate: 48000}} //nolint:mnd
	require.NoError(t, g.Initialize(nil, map[uint32]*obu.CodecConfig{}, paramDefs))

	start, end, err := g.NextParameterBlockTimestamps(3, 0, 960) //nolint:mnd
	require.NoError(t, err)
	require.Equal(t, uint64(0), start)
	require.Equal(t, uint64(960), end) //nolint:mnd

	_, _, err = g.NextParameterBlockTimestamps(3, 100, 960) //nolint:mnd
	require.Error(t, err)
}

func TestRegisterStrayParameter(t *testing.T) {
	t.Parallel()

	g := NewGlobalTimingModule()
	require.NoError(t, g.Initialize(nil, map[uint32]*obu.CodecConfig{}, nil))

	require.Error(t, g.RegisterStrayParameter(5, 0))
	require.NoError(t, g.RegisterStrayParameter(5, 48000)) //nolint:mnd
	require.NoError(t, g.RegisterStrayParameter(5, 48000)) //nolint:mnd // already registered is a no-op
}

func TestValidateParameterBlockCoversAudioFrame(t *testing.T) {
	t.Parallel()

	g := NewGlobalTimingModule()
	codecConfigs := map[uint32]*obu.CodecConfig{0: newTestCodecConfig(0, 48000)} //nolint:mnd
	elements := []*obu.AudioElement{newTestAudioElement(1, 0, 10)}
	require.NoError(t, g.Initialize(elements, codecConfigs, nil))

	_, _, err := g.NextAudioFrameTimestamps(10, 960) //nolint:mnd
	require.NoError(t, err)

	require.NoError(t, g.ValidateParameterBlockCoversAudioFrame(1, 0, 960, 10)) //nolint:mnd
	require.Error(t, g.ValidateParameterBlockCoversAudioFrame(1, 100, 960, 10)) //nolint:mnd
	require.Error(t, g.ValidateParameterBlockCoversAudioFrame(1, 0, 960, 99))   //nolint:mnd
}
