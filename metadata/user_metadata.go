// Package metadata loads a user-authored encoding plan (the external
// interface named in the design document's EXTERNAL INTERFACES section)
// from YAML into the structures the rest of the module consumes.
package metadata

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/iamf-tools/go-iamf/bitio"
)

// LebGeneratorMetadata mirrors bitio.LebGenerator with YAML tags.
type LebGeneratorMetadata struct {
	Mode string `yaml:"mode"` // "Minimum" or "FixedSize"
	Size int    `yaml:"size"` // meaningful iff Mode == "FixedSize"
}

// Generator builds the bitio.LebGenerator this metadata describes.
func (m LebGeneratorMetadata) Generator() bitio.LebGenerator {
	if m.Mode == "FixedSize" {
		return bitio.NewFixedSizeGenerator(m.Size)
	}
	return bitio.NewMinimumGenerator()
}

// IASequenceHeaderMetadata configures the program's IA Sequence Header.
type IASequenceHeaderMetadata struct {
	PrimaryProfile    uint8 `yaml:"primary_profile"`
	AdditionalProfile uint8 `yaml:"additional_profile"`
}

// CodecConfigMetadata configures one Codec Config OBU.
type CodecConfigMetadata struct {
	CodecConfigID      uint32 `yaml:"codec_config_id"`
	CodecID            string `yaml:"codec_id"` // "ipcm", "Opus", "fLaC", "mp4a"
	NumSamplesPerFrame uint32 `yaml:"num_samples_per_frame"`
	AudioRollDistance  int16  `yaml:"audio_roll_distance"`

	SampleRate    uint32 `yaml:"sample_rate"`
	SampleSize    uint8  `yaml:"sample_size"`    // LPCM only
	BigEndian     bool   `yaml:"big_endian"`      // LPCM only

	EnableAfterburner      bool   `yaml:"enable_afterburner"`       // AAC only
	BitrateMode            int    `yaml:"bitrate_mode"`             // AAC only
	SignalingMode          string `yaml:"signaling_mode"`           // AAC only
	TargetBitratePerChannel int   `yaml:"target_bitrate_per_channel"` // Opus only
	UseFloatAPI            bool   `yaml:"use_float_api"`            // Opus only
	Application            string `yaml:"application"`              // Opus only
}

// ChannelAudioLayerMetadata configures one scalable-channel-layout layer.
type ChannelAudioLayerMetadata struct {
	LoudspeakerLayout     string `yaml:"loudspeaker_layout"`
	SubstreamCount        uint8  `yaml:"substream_count"`
	CoupledSubstreamCount uint8  `yaml:"coupled_substream_count"`
}

// AudioElementMetadata configures one Audio Element OBU.
type AudioElementMetadata struct {
	AudioElementID   uint32                      `yaml:"audio_element_id"`
	AudioElementType string                      `yaml:"audio_element_type"` // "channel_based" | "scene_based"
	CodecConfigID    uint32                      `yaml:"codec_config_id"`
	ChannelLayers    []ChannelAudioLayerMetadata `yaml:"channel_layers"`

	AmbisonicsMode        string  `yaml:"ambisonics_mode"` // "mono" | "projection"
	OutputChannelCount    uint8   `yaml:"output_channel_count"`
	SubstreamCount        uint8   `yaml:"substream_count"`
	CoupledSubstreamCount uint8   `yaml:"coupled_substream_count"`
	ChannelMapping        []uint8 `yaml:"channel_mapping"`
	DemixingMatrix        []int16 `yaml:"demixing_matrix"`
}

// MixPresentationMetadata configures one Mix Presentation OBU.
type MixPresentationMetadata struct {
	MixPresentationID    uint32   `yaml:"mix_presentation_id"`
	AnnotationsLanguage  []string `yaml:"annotations_language"`
	LocalizedAnnotations []string `yaml:"localized_annotations"`
}

// AudioFrameMetadata names the WAV source and channel mapping for one
// audio element's substreams.
type AudioFrameMetadata struct {
	AudioElementID        uint32   `yaml:"audio_element_id"`
	WavFilename           string   `yaml:"wav_filename"`
	ChannelIDs            []uint32 `yaml:"channel_ids"`
	ChannelLabels         []string `yaml:"channel_labels"`
	SamplesToTrimAtStart  uint32   `yaml:"samples_to_trim_at_start"`
	SamplesToTrimAtEnd    uint32   `yaml:"samples_to_trim_at_end"`
}

// ParameterBlockMetadata configures one user-authored parameter block.
type ParameterBlockMetadata struct {
	ParameterID              uint32 `yaml:"parameter_id"`
	Duration                 uint32 `yaml:"duration"`
	ConstantSubblockDuration uint32 `yaml:"constant_subblock_duration"`
}

// ArbitraryObuMetadata configures one arbitrary OBU insertion.
type ArbitraryObuMetadata struct {
	InsertionHook string `yaml:"insertion_hook"`
	PayloadHex    string `yaml:"payload_hex"`
}

// UserMetadata is the top-level encoding plan: every descriptor and every
// per-tick input source the encoder needs, expressed declaratively.
type UserMetadata struct {
	IASequenceHeader IASequenceHeaderMetadata   `yaml:"ia_sequence_header"`
	CodecConfigs     []CodecConfigMetadata      `yaml:"codec_config_metadata"`
	AudioElements    []AudioElementMetadata     `yaml:"audio_element_metadata"`
	MixPresentations []MixPresentationMetadata  `yaml:"mix_presentation_metadata"`
	AudioFrames      []AudioFrameMetadata       `yaml:"audio_frame_metadata"`
	ParameterBlocks  []ParameterBlockMetadata   `yaml:"parameter_block_metadata"`
	ArbitraryOBUs    []ArbitraryObuMetadata     `yaml:"arbitrary_obu_metadata"`
	LebGenerator     LebGeneratorMetadata       `yaml:"leb_generator"`
}

// LoadUserMetadata reads and parses a UserMetadata plan from a YAML file.
func LoadUserMetadata(path string) (*UserMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m UserMetadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
