package obu

import (
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/ierrors"
)

// RenderingConfig carries headphone rendering guidance for one submix's
// audio element, plus an opaque extension payload.
type RenderingConfig struct {
	HeadphonesRenderingMode uint8 // 2-bit enum
	ExtensionBytes          []byte
}

func (c *RenderingConfig) write(w *bitio.Writer) error {
	if err := w.WriteUint(uint64(c.HeadphonesRenderingMode), 2); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteUint(0, 6); err != nil { //nolint:mnd // reserved
		return err
	}
	if err := w.WriteUleb128(uint32(len(c.ExtensionBytes))); err != nil {
		return err
	}
	return w.WriteBytes(c.ExtensionBytes)
}

func (c *RenderingConfig) read(r *bitio.Reader) error {
	mode, err := r.ReadUint(2) //nolint:mnd
	if err != nil {
		return err
	}
	c.HeadphonesRenderingMode = uint8(mode)
	if _, err := r.ReadUint(6); err != nil { //nolint:mnd
		return err
	}
	n, err := r.ReadUleb128()
	if err != nil {
		return err
	}
	c.ExtensionBytes, err = r.ReadBytes(int(n))
	return err
}

// SubmixAudioElement is one audio element's participation in a submix:
// which element, its localized names, rendering hint, and element-level
// mix gain.
type SubmixAudioElement struct {
	AudioElementID              uint32
	LocalizedElementAnnotations []string
	RenderingConfig             RenderingConfig
	ElementMixGain              MixGainParamDefinition
}

func (e *SubmixAudioElement) write(w *bitio.Writer) error {
	if err := w.WriteUleb128(e.AudioElementID); err != nil {
		return err
	}
	if err := w.WriteUleb128(uint32(len(e.LocalizedElementAnnotations))); err != nil {
		return err
	}
	for _, s := range e.LocalizedElementAnnotations {
		if err := w.WriteString(s, bitio.MaxStringSize); err != nil {
			return err
		}
	}
	if err := e.RenderingConfig.write(w); err != nil {
		return err
	}
	return e.ElementMixGain.write(w)
}

func (e *SubmixAudioElement) read(r *bitio.Reader) error {
	var err error
	if e.AudioElementID, err = r.ReadUleb128(); err != nil {
		return err
	}
	n, err := r.ReadUleb128()
	if err != nil {
		return err
	}
	e.LocalizedElementAnnotations = make([]string, n)
	for i := range e.LocalizedElementAnnotations {
		if e.LocalizedElementAnnotations[i], err = r.ReadString(bitio.MaxStringSize); err != nil {
			return err
		}
	}
	if err := e.RenderingConfig.read(r); err != nil {
		return err
	}
	return e.ElementMixGain.read(r)
}

// Mix Presentation loudness info_type bits.
const (
	MixPresentationInfoTypeTruePeak         uint8 = 1 << 0
	MixPresentationInfoTypeAnchoredLoudness uint8 = 1 << 1
)

// AnchoredLoudnessElement is one entry of an optional anchored-loudness
// table (e.g. dialogue- or album-anchored loudness).
type AnchoredLoudnessElement struct {
	AnchorElement    uint8
	AnchoredLoudness int16
}

// MixPresentationLayout is one target playback layout's loudness info.
type MixPresentationLayout struct {
	Layout              LoudspeakerLayout
	InfoTypeBitmask     uint8
	IntegratedLoudness  int16
	DigitalPeak         int16
	TruePeak            int16 // present iff InfoTypeBitmask&MixPresentationInfoTypeTruePeak
	AnchoredLoudness    []AnchoredLoudnessElement // present iff InfoTypeBitmask&MixPresentationInfoTypeAnchoredLoudness
}

func (l *MixPresentationLayout) write(w *bitio.Writer) error {
	if err := w.WriteUint(uint64(l.Layout), 4); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteUint(0, 4); err != nil { //nolint:mnd // reserved
		return err
	}
	if err := w.WriteUint(uint64(l.InfoTypeBitmask), 8); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteInt(int64(l.IntegratedLoudness), 16); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteInt(int64(l.DigitalPeak), 16); err != nil { //nolint:mnd
		return err
	}
	if l.InfoTypeBitmask&MixPresentationInfoTypeTruePeak != 0 {
		if err := w.WriteInt(int64(l.TruePeak), 16); err != nil { //nolint:mnd
			return err
		}
	}
	if l.InfoTypeBitmask&MixPresentationInfoTypeAnchoredLoudness != 0 {
		if err := w.WriteUleb128(uint32(len(l.AnchoredLoudness))); err != nil {
			return err
		}
		for _, a := range l.AnchoredLoudness {
			if err := w.WriteUint(uint64(a.AnchorElement), 8); err != nil { //nolint:mnd
				return err
			}
			if err := w.WriteInt(int64(a.AnchoredLoudness), 16); err != nil { //nolint:mnd
				return err
			}
		}
	}
	return nil
}

func (l *MixPresentationLayout) read(r *bitio.Reader) error {
	layout, err := r.ReadUint(4) //nolint:mnd
	if err != nil {
		return err
	}
	l.Layout = LoudspeakerLayout(layout)
	if _, err := r.ReadUint(4); err != nil { //nolint:mnd
		return err
	}
	infoType, err := r.ReadUint(8) //nolint:mnd
	if err != nil {
		return err
	}
	l.InfoTypeBitmask = uint8(infoType)
	il, err := r.ReadInt(16) //nolint:mnd
	if err != nil {
		return err
	}
	l.IntegratedLoudness = int16(il)
	dp, err := r.ReadInt(16) //nolint:mnd
	if err != nil {
		return err
	}
	l.DigitalPeak = int16(dp)
	if l.InfoTypeBitmask&MixPresentationInfoTypeTruePeak != 0 {
		tp, err := r.ReadInt(16) //nolint:mnd
		if err != nil {
			return err
		}
		l.TruePeak = int16(tp)
	}
	if l.InfoTypeBitmask&MixPresentationInfoTypeAnchoredLoudness != 0 {
		n, err := r.ReadUleb128()
		if err != nil {
			return err
		}
		l.AnchoredLoudness = make([]AnchoredLoudnessElement, n)
		for i := range l.AnchoredLoudness {
			anchor, err := r.ReadUint(8) //nolint:mnd
			if err != nil {
				return err
			}
			loud, err := r.ReadInt(16) //nolint:mnd
			if err != nil {
				return err
			}
			l.AnchoredLoudness[i] = AnchoredLoudnessElement{AnchorElement: uint8(anchor), AnchoredLoudness: int16(loud)}
		}
	}
	return nil
}

// Submix groups one or more audio elements with a combined output gain
// and a set of target-layout loudness entries.
type Submix struct {
	AudioElements  []SubmixAudioElement
	OutputMixGain  MixGainParamDefinition
	Layouts        []MixPresentationLayout
}

func (s *Submix) validate() error {
	if len(s.AudioElements) == 0 {
		return ierrors.NewInvalidArgument("submix: at least one audio element is required")
	}
	if len(s.Layouts) == 0 {
		return ierrors.NewInvalidArgument("submix: at least one layout is required")
	}
	return nil
}

func (s *Submix) write(w *bitio.Writer) error {
	if err := s.validate(); err != nil {
		return err
	}
	if err := w.WriteUleb128(uint32(len(s.AudioElements))); err != nil {
		return err
	}
	for i := range s.AudioElements {
		if err := s.AudioElements[i].write(w); err != nil {
			return err
		}
	}
	if err := s.OutputMixGain.write(w); err != nil {
		return err
	}
	if err := w.WriteUleb128(uint32(len(s.Layouts))); err != nil {
		return err
	}
	for i := range s.Layouts {
		if err := s.Layouts[i].write(w); err != nil {
			return err
		}
	}
	return nil
}

func (s *Submix) read(r *bitio.Reader) error {
	n, err := r.ReadUleb128()
	if err != nil {
		return err
	}
	s.AudioElements = make([]SubmixAudioElement, n)
	for i := range s.AudioElements {
		if err := s.AudioElements[i].read(r); err != nil {
			return err
		}
	}
	if err := s.OutputMixGain.read(r); err != nil {
		return err
	}
	numLayouts, err := r.ReadUleb128()
	if err != nil {
		return err
	}
	s.Layouts = make([]MixPresentationLayout, numLayouts)
	for i := range s.Layouts {
		if err := s.Layouts[i].read(r); err != nil {
			return err
		}
	}
	return s.validate()
}

// MixPresentation is a named, localized mixing graph over one or more
// submixes, each carrying per-layout loudness measurements.
type MixPresentation struct {
	MixPresentationID     uint32
	AnnotationsLanguage   []string // BCP-47 tags, one per localized annotation
	LocalizedAnnotations  []string
	Submixes              []Submix
}

// ObuType implements PayloadWriter.
func (MixPresentation) ObuType() Type { return TypeMixPresentation }

func (m *MixPresentation) validate() error {
	if len(m.AnnotationsLanguage) != len(m.LocalizedAnnotations) {
		return ierrors.NewInvalidArgument("mix_presentation: annotations_language and localized_annotations must have equal length, got %d and %d",
			len(m.AnnotationsLanguage), len(m.LocalizedAnnotations))
	}
	if len(m.Submixes) == 0 {
		return ierrors.NewInvalidArgument("mix_presentation: at least one submix is required")
	}
	return nil
}

// ValidateAndWritePayload implements PayloadWriter.
func (m *MixPresentation) ValidateAndWritePayload(w *bitio.Writer) error {
	if err := m.validate(); err != nil {
		return err
	}
	if err := w.WriteUleb128(m.MixPresentationID); err != nil {
		return err
	}
	if err := w.WriteUleb128(uint32(len(m.AnnotationsLanguage))); err != nil {
		return err
	}
	for i, lang := range m.AnnotationsLanguage {
		if err := w.WriteString(lang, bitio.MaxStringSize); err != nil {
			return err
		}
		if err := w.WriteString(m.LocalizedAnnotations[i], bitio.MaxStringSize); err != nil {
			return err
		}
	}
	if err := w.WriteUleb128(uint32(len(m.Submixes))); err != nil {
		return err
	}
	for i := range m.Submixes {
		if err := m.Submixes[i].write(w); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndReadPayload implements PayloadReader. Reading MixPresentation
// is not yet implemented (see DESIGN.md's Open Question decisions).
func (m *MixPresentation) ValidateAndReadPayload(_ *bitio.Reader, _ int) error {
	return ierrors.NewUnimplemented("MixPresentation ValidateAndReadPayload not yet implemented")
}
