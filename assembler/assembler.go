// Package assembler orders a validated descriptor set and a sequence of
// temporal units into a single IAMF OBU byte stream.
package assembler

import (
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/ierrors"
	"github.com/iamf-tools/go-iamf/internal/logging"
	"github.com/iamf-tools/go-iamf/obu"
)

// Descriptors is the validated, fully-built program descriptor set:
// everything written once, before the temporal loop begins.
type Descriptors struct {
	IASequenceHeader obu.IASequenceHeader
	CodecConfigs     []*obu.CodecConfig
	AudioElements    []*obu.AudioElement
	MixPresentations []*obu.MixPresentation
	ArbitraryOBUs    []obu.Arbitrary
}

// TemporalUnit is one tick's worth of payload: a single Temporal Delimiter
// followed by every substream's Audio Frame and every Parameter Block
// whose start timestamp equals this tick.
type TemporalUnit struct {
	AudioFrames     []*obu.AudioFrame
	ParameterBlocks []*obu.ParameterBlock
	ArbitraryOBUs   []obu.Arbitrary
}

// ObuAssembler writes descriptors once, then one TemporalUnit at a time,
// into a single bitio.Writer-backed byte stream.
type ObuAssembler struct {
	w *bitio.Writer
}

// NewObuAssembler returns an assembler writing through w.
func NewObuAssembler(w *bitio.Writer) *ObuAssembler {
	return &ObuAssembler{w: w}
}

func writeEach[T obu.PayloadWriter](w *bitio.Writer, items []T, header func() *obu.Header) error {
	for _, item := range items {
		if err := obu.WriteObu(w, header(), item); err != nil {
			return err
		}
	}
	return nil
}

// WriteDescriptors emits, in order: IA Sequence Header, Codec Configs,
// Audio Elements, Mix Presentations, splicing in every arbitrary OBU whose
// insertion_hook names a descriptor-group boundary.
func (a *ObuAssembler) WriteDescriptors(d *Descriptors) error {
	if err := obu.WriteObusWithHook(obu.InsertionHookBeforeDescriptors, d.ArbitraryOBUs, a.w); err != nil {
		return err
	}

	if err := obu.WriteObu(a.w, &obu.Header{}, &d.IASequenceHeader); err != nil {
		return err
	}
	if err := obu.WriteObusWithHook(obu.InsertionHookAfterIASequenceHeader, d.ArbitraryOBUs, a.w); err != nil {
		return err
	}

	if err := writeEach(a.w, d.CodecConfigs, func() *obu.Header { return &obu.Header{} }); err != nil {
		return err
	}
	if err := writeEach(a.w, d.AudioElements, func() *obu.Header { return &obu.Header{} }); err != nil {
		return err
	}
	if err := writeEach(a.w, d.MixPresentations, func() *obu.Header { return &obu.Header{} }); err != nil {
		return err
	}

	logging.Debugf(a, "wrote descriptors: %d codec configs, %d audio elements, %d mix presentations",
		len(d.CodecConfigs), len(d.AudioElements), len(d.MixPresentations))

	return obu.WriteObusWithHook(obu.InsertionHookAfterDescriptors, d.ArbitraryOBUs, a.w)
}

// WriteTemporalUnit emits a Temporal Delimiter, then every audio frame,
// then every parameter block in unit, splicing in arbitrary OBUs whose
// insertion_hook targets this temporal position.
func (a *ObuAssembler) WriteTemporalUnit(unit *TemporalUnit) error {
	if err := obu.WriteObu(a.w, &obu.Header{}, &obu.TemporalDelimiter{}); err != nil {
		return err
	}

	for _, frame := range unit.AudioFrames {
		if err := obu.WriteObu(a.w, &obu.Header{}, frame); err != nil {
			return err
		}
	}

	if err := obu.WriteObusWithHook(obu.InsertionHookBeforeParameterBlocksAtTick, unit.ArbitraryOBUs, a.w); err != nil {
		return err
	}

	for _, pb := range unit.ParameterBlocks {
		if err := obu.WriteObu(a.w, &obu.Header{}, pb); err != nil {
			return err
		}
	}

	return obu.WriteObusWithHook(obu.InsertionHookAfterAudioFramesAtTick, unit.ArbitraryOBUs, a.w)
}

// Bytes returns the fully assembled stream. The writer must be byte-aligned
// (true after any sequence of whole OBUs).
func (a *ObuAssembler) Bytes() ([]byte, error) {
	b, err := a.w.Bytes()
	if err != nil {
		return nil, ierrors.NewFailedPrecondition("assembler: stream is not byte-aligned: %v", err)
	}
	return b, nil
}

// String implements logging's stringer for receiver identification.
func (a *ObuAssembler) String() string { return "ObuAssembler" }
