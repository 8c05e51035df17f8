package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iamf-tools/go-iamf/bitio"
)

func TestLebGeneratorMetadataGenerator(t *testing.T) {
	t.Parallel()

	t.Run("minimum", func(t *testing.T) {
		t.Parallel()
		m := LebGeneratorMetadata{Mode: "Minimum"}
		require.Equal(t, bitio.NewMinimumGenerator(), m.Generator())
	})

	t.Run("fixed size", func(t *testing.T) {
		t.Parallel()
		m := LebGeneratorMetadata{Mode: "FixedSize", Size: 4} //nolint:mnd
		require.Equal(t, bitio.NewFixedSizeGenerator(4), m.Generator()) //nolint:mnd
	})

	t.Run("unknown mode defaults to minimum", func(t *testing.T) {
		t.Parallel()
		m := LebGeneratorMetadata{Mode: ""}
		require.Equal(t, bitio.NewMinimumGenerator(), m.Generator())
	})
}

func TestLoadUserMetadata(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	contents := `
ia_sequence_header:
  primary_profile: 0
  additional_profile: 1
codec_config_metadata:
  - codec_config_id: 0
    codec_id: ipcm
    num_samples_per_frame: 960
    sample_rate: 48000
    sample_size: 16
audio_element_metadata:
  - audio_element_id: 1
    audio_element_type: channel_based
    codec_config_id: 0
    channel_layers:
      - loudspeaker_layout: stereo
        substream_count: 2
        coupled_substream_count: 1
mix_presentation_metadata:
  - mix_presentation_id: 5
    annotations_language: ["en-us"]
    localized_annotations: ["Stereo mix"]
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	got, err := LoadUserMetadata(path)
	require.NoError(t, err)
	require.Equal(t, uint8(0), got.IASequenceHeader.PrimaryProfile)
	require.Equal(t, uint8(1), got.IASequenceHeader.AdditionalProfile)
	require.Len(t, got.CodecConfigs, 1)
	require.Equal(t, "ipcm", got.CodecConfigs[0].CodecID)
	require.Equal(t, uint32(48000), got.CodecConfigs[0].SampleRate) //nolint:mnd
	require.Len(t, got.AudioElements, 1)
	require.Equal(t, "channel_based", got.AudioElements[0].AudioElementType)
	require.Len(t, got.AudioElements[0].ChannelLayers, 1)
	require.Equal(t, "stereo", got.AudioElements[0].ChannelLayers[0].LoudspeakerLayout)
	require.Len(t, got.MixPresentations, 1)
	require.Equal(t, []string{"en-us"}, got.MixPresentations[0].AnnotationsLanguage)
}

func TestLoadUserMetadataMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadUserMetadata(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
