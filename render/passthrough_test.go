package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamf-tools/go-iamf/obu"
)

func TestCreateFromScalableChannelLayoutConfigSingleLayer(t *testing.T) {
	t.Parallel()

	cfg := &obu.ScalableChannelLayoutConfig{
		Layers: []obu.ChannelAudioLayerConfig{{LoudspeakerLayout: obu.LayoutStereo, SubstreamCount: 2}}, //nolint:mnd
	}
	r, ok := CreateFromScalableChannelLayoutConfig(cfg, obu.LayoutMono)
	require.True(t, ok)
	require.NotNil(t, r)
}

func TestCreateFromScalableChannelLayoutConfigMatchingLayer(t *testing.T) {
	t.Parallel()

	cfg := &obu.ScalableChannelLayoutConfig{
		Layers: []obu.ChannelAudioLayerConfig{
			{LoudspeakerLayout: obu.LayoutMono, SubstreamCount: 1},
			{LoudspeakerLayout: obu.LayoutStereo, SubstreamCount: 1},
		},
	}
	r, ok := CreateFromScalableChannelLayoutConfig(cfg, obu.LayoutStereo)
	require.True(t, ok)
	require.NotNil(t, r)
}

func TestCreateFromScalableChannelLayoutConfigNoMatch(t *testing.T) {
	t.Parallel()

	cfg := &obu.ScalableChannelLayoutConfig{
		Layers: []obu.ChannelAudioLayerConfig{
			{LoudspeakerLayout: obu.LayoutMono, SubstreamCount: 1},
			{LoudspeakerLayout: obu.Layout5_1, SubstreamCount: 5}, //nolint:mnd
		},
	}
	_, ok := CreateFromScalableChannelLayoutConfig(cfg, obu.LayoutStereo)
	require.False(t, ok)
}

func TestCreateFromScalableChannelLayoutConfigNil(t *testing.T) {
	t.Parallel()

	_, ok := CreateFromScalableChannelLayoutConfig(nil, obu.LayoutStereo)
	require.False(t, ok)
}

func TestRenderLabeledFrameTrimsAndZeroFills(t *testing.T) {
	t.Parallel()

	cfg := &obu.ScalableChannelLayoutConfig{
		Layers: []obu.ChannelAudioLayerConfig{{LoudspeakerLayout: obu.LayoutStereo, SubstreamCount: 2}}, //nolint:mnd
	}
	r, ok := CreateFromScalableChannelLayoutConfig(cfg, obu.LayoutStereo)
	require.True(t, ok)

	frame := &LabeledFrame{
		Samples: map[string][]float64{
			"L2": {1, 2, 3, 4},
		},
		SamplesToTrimAtStart: 1,
		SamplesToTrimAtEnd:   1,
	}
	out, err := r.RenderLabeledFrame(frame)
	require.NoError(t, err)
	require.Len(t, out, 2) //nolint:mnd
	require.Equal(t, []float64{2, 0}, out[0]) //nolint:mnd
	require.Equal(t, []float64{3, 0}, out[1]) //nolint:mnd
}

func TestRenderLabeledFrameMismatchedChannelLengths(t *testing.T) {
	t.Parallel()

	cfg := &obu.ScalableChannelLayoutConfig{
		Layers: []obu.ChannelAudioLayerConfig{{LoudspeakerLayout: obu.LayoutStereo, SubstreamCount: 2}}, //nolint:mnd
	}
	r, ok := CreateFromScalableChannelLayoutConfig(cfg, obu.LayoutStereo)
	require.True(t, ok)

	frame := &LabeledFrame{
		Samples: map[string][]float64{
			"L2": {1, 2, 3},
			"R2": {1, 2},
		},
	}
	_, err := r.RenderLabeledFrame(frame)
	require.Error(t, err)
}

func TestRenderLabeledFrameExcessiveTrim(t *testing.T) {
	t.Parallel()

	cfg := &obu.ScalableChannelLayoutConfig{
		Layers: []obu.ChannelAudioLayerConfig{{LoudspeakerLayout: obu.LayoutMono, SubstreamCount: 1}},
	}
	r, ok := CreateFromScalableChannelLayoutConfig(cfg, obu.LayoutMono)
	require.True(t, ok)

	frame := &LabeledFrame{
		Samples:              map[string][]float64{"M": {1, 2}},
		SamplesToTrimAtStart: 5, //nolint:mnd
	}
	_, err := r.RenderLabeledFrame(frame)
	require.Error(t, err)
}
