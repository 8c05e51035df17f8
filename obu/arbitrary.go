package obu

import (
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/ierrors"
)

// InsertionHook names the point in the assembler's descriptor/temporal
// ordering at which an Arbitrary OBU is spliced into the stream.
type InsertionHook uint8

const (
	InsertionHookBeforeDescriptors InsertionHook = iota
	InsertionHookAfterDescriptors
	InsertionHookAfterIASequenceHeader
	InsertionHookAfterAudioFramesAtTick
	InsertionHookBeforeParameterBlocksAtTick
)

// Arbitrary is an escape hatch OBU carrying an opaque, already-encoded
// payload (including its own header byte and obu_size) that the assembler
// splices in verbatim at its insertion_hook point.
type Arbitrary struct {
	InsertionHook InsertionHook
	Payload       []byte
}

// ObuType implements PayloadWriter. Arbitrary OBUs carry whatever obu_type
// their payload already encodes; WriteObu's header machinery is bypassed
// for them (see WriteObusWithHook), so this value is never consulted.
func (Arbitrary) ObuType() Type { return TypeReservedStart }

// ValidateAndWritePayload implements PayloadWriter.
func (a *Arbitrary) ValidateAndWritePayload(w *bitio.Writer) error {
	return w.WriteBytes(a.Payload)
}

// ValidateAndReadPayload implements PayloadReader. Reading Arbitrary is
// not yet implemented (see DESIGN.md's Open Question decisions).
func (a *Arbitrary) ValidateAndReadPayload(_ *bitio.Reader, _ int) error {
	return ierrors.NewUnimplemented("Arbitrary ValidateAndReadPayload not yet implemented")
}

// WriteObusWithHook writes, in order, the raw payload of every arbitrary
// OBU in obus whose InsertionHook matches hook. Each payload is already a
// complete encoded OBU (header, obu_size, and body), so it is appended to
// w directly rather than routed through WriteObu.
func WriteObusWithHook(hook InsertionHook, obus []Arbitrary, w *bitio.Writer) error {
	for i := range obus {
		if obus[i].InsertionHook != hook {
			continue
		}
		if err := w.WriteBytes(obus[i].Payload); err != nil {
			return err
		}
	}
	return nil
}
