package obu

import (
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/ierrors"
)

// AudioElementType distinguishes channel-based from scene-based (ambisonic)
// audio elements.
type AudioElementType uint8

const (
	AudioElementChannelBased AudioElementType = 0
	AudioElementSceneBased   AudioElementType = 1
	// Values 2-7 are reserved.
)

// LoudspeakerLayout enumerates the IAMF scalable channel layer layouts.
type LoudspeakerLayout uint8

const (
	LayoutMono LoudspeakerLayout = iota
	LayoutStereo
	Layout5_1
	Layout5_1_2
	Layout5_1_4
	Layout7_1
	Layout7_1_2
	Layout7_1_4
	Layout3_1_2
	LayoutBinaural
	// Values 10-14 are reserved; 15 names an expanded layout carried
	// elsewhere and is not modeled here.
)

// ChannelAudioLayerConfig is one layer of a ScalableChannelLayoutConfig.
type ChannelAudioLayerConfig struct {
	LoudspeakerLayout        LoudspeakerLayout
	OutputGainIsPresentFlag  bool
	ReconGainIsPresentFlag   bool
	SubstreamCount           uint8
	CoupledSubstreamCount    uint8
	OutputGainFlags          uint8 // present iff OutputGainIsPresentFlag
	OutputGain               int16 // present iff OutputGainIsPresentFlag
}

func (l *ChannelAudioLayerConfig) write(w *bitio.Writer) error {
	if err := w.WriteUint(uint64(l.LoudspeakerLayout), 4); err != nil { //nolint:mnd
		return err
	}
	w.WriteBool(l.OutputGainIsPresentFlag)
	w.WriteBool(l.ReconGainIsPresentFlag)
	if err := w.WriteUint(0, 2); err != nil { //nolint:mnd // reserved
		return err
	}
	if err := w.WriteUint(uint64(l.SubstreamCount), 8); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteUint(uint64(l.CoupledSubstreamCount), 8); err != nil { //nolint:mnd
		return err
	}
	if l.OutputGainIsPresentFlag {
		if err := w.WriteUint(uint64(l.OutputGainFlags), 6); err != nil { //nolint:mnd
			return err
		}
		if err := w.WriteUint(0, 2); err != nil { //nolint:mnd // reserved
			return err
		}
		if err := w.WriteInt(int64(l.OutputGain), 16); err != nil { //nolint:mnd
			return err
		}
	}
	return nil
}

func (l *ChannelAudioLayerConfig) read(r *bitio.Reader) error {
	layout, err := r.ReadUint(4) //nolint:mnd
	if err != nil {
		return err
	}
	l.LoudspeakerLayout = LoudspeakerLayout(layout)
	if l.OutputGainIsPresentFlag, err = r.ReadBool(); err != nil {
		return err
	}
	if l.ReconGainIsPresentFlag, err = r.ReadBool(); err != nil {
		return err
	}
	if _, err = r.ReadUint(2); err != nil { //nolint:mnd
		return err
	}
	sc, err := r.ReadUint(8) //nolint:mnd
	if err != nil {
		return err
	}
	l.SubstreamCount = uint8(sc)
	csc, err := r.ReadUint(8) //nolint:mnd
	if err != nil {
		return err
	}
	l.CoupledSubstreamCount = uint8(csc)
	if l.OutputGainIsPresentFlag {
		flags, err := r.ReadUint(6) //nolint:mnd
		if err != nil {
			return err
		}
		l.OutputGainFlags = uint8(flags)
		if _, err := r.ReadUint(2); err != nil { //nolint:mnd // reserved
			return err
		}
		gain, err := r.ReadInt(16) //nolint:mnd
		if err != nil {
			return err
		}
		l.OutputGain = int16(gain)
	}
	return nil
}

// ScalableChannelLayoutConfig is the channel-based audio element config.
type ScalableChannelLayoutConfig struct {
	Layers []ChannelAudioLayerConfig
}

func (c *ScalableChannelLayoutConfig) validate(numSubstreams int) error {
	if len(c.Layers) < 1 || len(c.Layers) > 6 { //nolint:mnd
		return ierrors.NewInvalidArgument("scalable_channel_layout_config: num_layers must be in [1,6], got %d", len(c.Layers))
	}
	total := 0
	for _, l := range c.Layers {
		total += int(l.SubstreamCount)
	}
	if total != numSubstreams {
		return ierrors.NewFailedPrecondition(
			"scalable_channel_layout_config: layer substream counts sum to %d, audio element declares %d", total, numSubstreams)
	}
	for _, l := range c.Layers {
		if l.LoudspeakerLayout == LayoutBinaural && len(c.Layers) != 1 {
			return ierrors.NewFailedPrecondition("scalable_channel_layout_config: binaural layout requires exactly one layer")
		}
	}
	return nil
}

func (c *ScalableChannelLayoutConfig) write(w *bitio.Writer, numSubstreams int) error {
	if err := c.validate(numSubstreams); err != nil {
		return err
	}
	if err := w.WriteUint(uint64(len(c.Layers)), 3); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteUint(0, 5); err != nil { //nolint:mnd // reserved
		return err
	}
	for i := range c.Layers {
		if err := c.Layers[i].write(w); err != nil {
			return err
		}
	}
	return nil
}

func (c *ScalableChannelLayoutConfig) read(r *bitio.Reader, numSubstreams int) error {
	numLayers, err := r.ReadUint(3) //nolint:mnd
	if err != nil {
		return err
	}
	if _, err := r.ReadUint(5); err != nil { //nolint:mnd
		return err
	}
	c.Layers = make([]ChannelAudioLayerConfig, numLayers)
	for i := range c.Layers {
		if err := c.Layers[i].read(r); err != nil {
			return err
		}
	}
	return c.validate(numSubstreams)
}

// GetNextValidOutputChannelCount returns the smallest ambisonic channel
// count (order+1)^2, order in [0,14], that is >= n.
func GetNextValidOutputChannelCount(n int) (int, error) {
	if n > 225 { //nolint:mnd
		return 0, ierrors.NewOutOfRange("ambisonics: %d exceeds the maximum ambisonic channel count 225", n)
	}
	for order := 0; order <= 14; order++ { //nolint:mnd
		count := (order + 1) * (order + 1)
		if count >= n {
			return count, nil
		}
	}
	return 0, ierrors.NewOutOfRange("ambisonics: no valid channel count >= %d", n)
}

// AmbisonicsMonoConfig maps each ambisonic channel number (ACN) to a
// substream, or 255 for a dropped channel.
type AmbisonicsMonoConfig struct {
	OutputChannelCount uint8
	SubstreamCount     uint8
	ChannelMapping     []uint8
}

const ambisonicsDroppedChannel = 255

func (c *AmbisonicsMonoConfig) validate() error {
	next, err := GetNextValidOutputChannelCount(int(c.OutputChannelCount))
	if err != nil {
		return err
	}
	if next != int(c.OutputChannelCount) {
		return ierrors.NewInvalidArgument("ambisonics_mono: output_channel_count %d is not a valid ambisonic channel count",
			c.OutputChannelCount)
	}
	if int(c.SubstreamCount) > int(c.OutputChannelCount) {
		return ierrors.NewFailedPrecondition("ambisonics_mono: substream_count %d exceeds output_channel_count %d",
			c.SubstreamCount, c.OutputChannelCount)
	}
	if len(c.ChannelMapping) != int(c.OutputChannelCount) {
		return ierrors.NewInvalidArgument("ambisonics_mono: channel_mapping length %d != output_channel_count %d",
			len(c.ChannelMapping), c.OutputChannelCount)
	}
	seen := make([]bool, c.SubstreamCount)
	for _, m := range c.ChannelMapping {
		if m == ambisonicsDroppedChannel {
			continue
		}
		if int(m) >= int(c.SubstreamCount) {
			return ierrors.NewOutOfRange("ambisonics_mono: channel_mapping entry %d >= substream_count %d", m, c.SubstreamCount)
		}
		seen[m] = true
	}
	for i, ok := range seen {
		if !ok {
			return ierrors.NewFailedPrecondition("ambisonics_mono: substream %d never appears in channel_mapping", i)
		}
	}
	return nil
}

func (c *AmbisonicsMonoConfig) write(w *bitio.Writer) error {
	if err := c.validate(); err != nil {
		return err
	}
	if err := w.WriteUint(uint64(c.OutputChannelCount), 8); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteUint(uint64(c.SubstreamCount), 8); err != nil { //nolint:mnd
		return err
	}
	for _, m := range c.ChannelMapping {
		if err := w.WriteUint(uint64(m), 8); err != nil { //nolint:mnd
			return err
		}
	}
	return nil
}

func (c *AmbisonicsMonoConfig) read(r *bitio.Reader) error {
	occ, err := r.ReadUint(8) //nolint:mnd
	if err != nil {
		return err
	}
	c.OutputChannelCount = uint8(occ)
	sc, err := r.ReadUint(8) //nolint:mnd
	if err != nil {
		return err
	}
	c.SubstreamCount = uint8(sc)
	c.ChannelMapping = make([]uint8, c.OutputChannelCount)
	for i := range c.ChannelMapping {
		m, err := r.ReadUint(8) //nolint:mnd
		if err != nil {
			return err
		}
		c.ChannelMapping[i] = uint8(m)
	}
	return c.validate()
}

// AmbisonicsProjectionConfig carries an explicit demixing matrix instead
// of a direct ACN-to-substream mapping.
type AmbisonicsProjectionConfig struct {
	OutputChannelCount    uint8
	SubstreamCount        uint8
	CoupledSubstreamCount uint8
	DemixingMatrix        []int16
}

func (c *AmbisonicsProjectionConfig) validate() error {
	next, err := GetNextValidOutputChannelCount(int(c.OutputChannelCount))
	if err != nil {
		return err
	}
	if next != int(c.OutputChannelCount) {
		return ierrors.NewInvalidArgument("ambisonics_projection: output_channel_count %d is not a valid ambisonic channel count",
			c.OutputChannelCount)
	}
	if c.CoupledSubstreamCount > c.SubstreamCount {
		return ierrors.NewFailedPrecondition("ambisonics_projection: coupled_substream_count %d exceeds substream_count %d",
			c.CoupledSubstreamCount, c.SubstreamCount)
	}
	wantRows := int(c.SubstreamCount) + int(c.CoupledSubstreamCount)
	wantLen := wantRows * int(c.OutputChannelCount)
	if len(c.DemixingMatrix) != wantLen {
		return ierrors.NewInvalidArgument("ambisonics_projection: demixing_matrix length %d, want %d",
			len(c.DemixingMatrix), wantLen)
	}
	return nil
}

func (c *AmbisonicsProjectionConfig) write(w *bitio.Writer) error {
	if err := c.validate(); err != nil {
		return err
	}
	if err := w.WriteUint(uint64(c.OutputChannelCount), 8); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteUint(uint64(c.SubstreamCount), 8); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteUint(uint64(c.CoupledSubstreamCount), 8); err != nil { //nolint:mnd
		return err
	}
	for _, v := range c.DemixingMatrix {
		if err := w.WriteInt(int64(v), 16); err != nil { //nolint:mnd
			return err
		}
	}
	return nil
}

func (c *AmbisonicsProjectionConfig) read(r *bitio.Reader) error {
	occ, err := r.ReadUint(8) //nolint:mnd
	if err != nil {
		return err
	}
	c.OutputChannelCount = uint8(occ)
	sc, err := r.ReadUint(8) //nolint:mnd
	if err != nil {
		return err
	}
	c.SubstreamCount = uint8(sc)
	csc, err := r.ReadUint(8) //nolint:mnd
	if err != nil {
		return err
	}
	c.CoupledSubstreamCount = uint8(csc)
	rows := int(c.SubstreamCount) + int(c.CoupledSubstreamCount)
	c.DemixingMatrix = make([]int16, rows*int(c.OutputChannelCount))
	for i := range c.DemixingMatrix {
		v, err := r.ReadInt(16) //nolint:mnd
		if err != nil {
			return err
		}
		c.DemixingMatrix[i] = int16(v)
	}
	return c.validate()
}

// ExtensionConfig carries an opaque, length-prefixed configuration for
// reserved audio element types.
type ExtensionConfig struct {
	Payload []byte
}

func (c *ExtensionConfig) write(w *bitio.Writer) error {
	if err := w.WriteUleb128(uint32(len(c.Payload))); err != nil {
		return err
	}
	return w.WriteBytes(c.Payload)
}

func (c *ExtensionConfig) read(r *bitio.Reader) error {
	n, err := r.ReadUleb128()
	if err != nil {
		return err
	}
	c.Payload, err = r.ReadBytes(int(n))
	return err
}

// AudioElementParam wraps one parameter definition variant attached to an
// audio element, tagged by ParamDefinitionType.
type AudioElementParam struct {
	Type      ParamDefinitionType
	MixGain   *MixGainParamDefinition
	Demixing  *DemixingParamDefinition
	ReconGain *ReconGainParamDefinition
	Extended  *ExtendedParamDefinition
}

func (p *AudioElementParam) write(w *bitio.Writer) error {
	if err := w.WriteUleb128(uint32(p.Type)); err != nil {
		return err
	}
	switch p.Type {
	case ParamDefinitionMixGain:
		return p.MixGain.write(w)
	case ParamDefinitionDemixing:
		return p.Demixing.write(w)
	case ParamDefinitionReconGain:
		return p.ReconGain.write(w)
	case ParamDefinitionExtended:
		p.Extended.ExtendedType = p.Type
		return p.Extended.write(w)
	default:
		return ierrors.NewInvalidArgument("audio_element_param: unknown param_definition_type %d", p.Type)
	}
}

func (p *AudioElementParam) read(r *bitio.Reader) error {
	tag, err := r.ReadUleb128()
	if err != nil {
		return err
	}
	p.Type = ParamDefinitionType(tag)
	switch p.Type {
	case ParamDefinitionMixGain:
		p.MixGain = &MixGainParamDefinition{}
		return p.MixGain.read(r)
	case ParamDefinitionDemixing:
		p.Demixing = &DemixingParamDefinition{}
		return p.Demixing.read(r)
	case ParamDefinitionReconGain:
		p.ReconGain = &ReconGainParamDefinition{}
		return p.ReconGain.read(r)
	default:
		p.Extended = &ExtendedParamDefinition{}
		err := p.Extended.read(r)
		p.Extended.ExtendedType = p.Type
		return err
	}
}

// AudioElement groups one or more substreams under a channel-based or
// scene-based configuration, referencing the Codec Config that decodes
// them.
type AudioElement struct {
	AudioElementID    uint32
	AudioElementType  AudioElementType
	CodecConfigID     uint32
	AudioSubstreamIDs []uint32
	Params            []AudioElementParam

	ScalableChannelLayoutConfig *ScalableChannelLayoutConfig
	AmbisonicsMono              *AmbisonicsMonoConfig
	AmbisonicsProjection        *AmbisonicsProjectionConfig
	Extension                   *ExtensionConfig
}

// ObuType implements PayloadWriter.
func (AudioElement) ObuType() Type { return TypeAudioElement }

// InitializeAudioSubstreams sizes the substream id list to n entries.
func (a *AudioElement) InitializeAudioSubstreams(n int) {
	a.AudioSubstreamIDs = make([]uint32, n)
}

func (a *AudioElement) validateParams() error {
	seenMixGain, seenDemixing, seenReconGain := false, false, false
	seenExtended := map[ParamDefinitionType]map[uint32]bool{}
	for _, p := range a.Params {
		switch p.Type {
		case ParamDefinitionMixGain:
			if seenMixGain {
				return ierrors.NewFailedPrecondition("audio_element: duplicate mix-gain parameter definition")
			}
			seenMixGain = true
		case ParamDefinitionDemixing:
			if seenDemixing {
				return ierrors.NewFailedPrecondition("audio_element: duplicate demixing parameter definition")
			}
			seenDemixing = true
		case ParamDefinitionReconGain:
			if seenReconGain {
				return ierrors.NewFailedPrecondition("audio_element: duplicate recon-gain parameter definition")
			}
			seenReconGain = true
		case ParamDefinitionExtended:
			if p.Extended == nil {
				return ierrors.NewInvalidArgument("audio_element: extended parameter definition missing payload")
			}
			byID := seenExtended[p.Type]
			if byID == nil {
				byID = map[uint32]bool{}
				seenExtended[p.Type] = byID
			}
			if byID[p.Extended.ParameterID] {
				return ierrors.NewFailedPrecondition("audio_element: duplicate extended parameter id %d", p.Extended.ParameterID)
			}
			byID[p.Extended.ParameterID] = true
		}
	}
	if a.AudioElementType == AudioElementChannelBased && seenMixGain {
		return ierrors.NewFailedPrecondition("audio_element: channel-based elements may not declare a mix-gain parameter definition")
	}
	return nil
}

func (a *AudioElement) validate() error {
	if len(a.AudioSubstreamIDs) == 0 {
		return ierrors.NewInvalidArgument("audio_element: at least one substream is required")
	}
	if err := a.validateParams(); err != nil {
		return err
	}
	switch a.AudioElementType {
	case AudioElementChannelBased:
		if a.ScalableChannelLayoutConfig == nil {
			return ierrors.NewInvalidArgument("audio_element: channel-based element requires a scalable_channel_layout_config")
		}
	case AudioElementSceneBased:
		if a.AmbisonicsMono == nil && a.AmbisonicsProjection == nil {
			return ierrors.NewInvalidArgument("audio_element: scene-based element requires an ambisonics config")
		}
	}
	return nil
}

// ValidateAndWritePayload implements PayloadWriter.
func (a *AudioElement) ValidateAndWritePayload(w *bitio.Writer) error {
	if err := a.validate(); err != nil {
		return err
	}
	if err := w.WriteUleb128(a.AudioElementID); err != nil {
		return err
	}
	if err := w.WriteUint(uint64(a.AudioElementType), 3); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteUint(0, 5); err != nil { //nolint:mnd // reserved
		return err
	}
	if err := w.WriteUleb128(a.CodecConfigID); err != nil {
		return err
	}
	if err := w.WriteUleb128(uint32(len(a.AudioSubstreamIDs))); err != nil {
		return err
	}
	for _, id := range a.AudioSubstreamIDs {
		if err := w.WriteUleb128(id); err != nil {
			return err
		}
	}
	if err := w.WriteUleb128(uint32(len(a.Params))); err != nil {
		return err
	}
	for i := range a.Params {
		if err := a.Params[i].write(w); err != nil {
			return err
		}
	}

	switch a.AudioElementType {
	case AudioElementChannelBased:
		return a.ScalableChannelLayoutConfig.write(w, len(a.AudioSubstreamIDs))
	case AudioElementSceneBased:
		if a.AmbisonicsMono != nil {
			if err := w.WriteUleb128(0); err != nil { // ambisonics_mode: 0 = mono
				return err
			}
			return a.AmbisonicsMono.write(w)
		}
		if err := w.WriteUleb128(1); err != nil { // ambisonics_mode: 1 = projection
			return err
		}
		return a.AmbisonicsProjection.write(w)
	default:
		if a.Extension == nil {
			return ierrors.NewInvalidArgument("audio_element: reserved type requires an extension_config")
		}
		return a.Extension.write(w)
	}
}

// ValidateAndReadPayload implements PayloadReader. Reading AudioElement is
// not yet implemented (see DESIGN.md's Open Question decisions).
func (a *AudioElement) ValidateAndReadPayload(_ *bitio.Reader, _ int) error {
	return ierrors.NewUnimplemented("AudioElement ValidateAndReadPayload not yet implemented")
}
