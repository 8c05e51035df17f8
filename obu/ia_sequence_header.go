package obu

import (
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/ierrors"
)

// Profile names IAMF's two conformance profiles.
type Profile uint8

const (
	ProfileSimple Profile = 0
	ProfileBase   Profile = 1
)

// IASequenceHeader is the first OBU of every IAMF stream: a magic-number
// identity check plus the primary/additional profile pair.
type IASequenceHeader struct {
	PrimaryProfile    Profile
	AdditionalProfile Profile
}

// iaCode is the four-byte ia_code magic value ("iamf").
var iaCode = [4]byte{'i', 'a', 'm', 'f'}

// ObuType implements PayloadWriter.
func (IASequenceHeader) ObuType() Type { return TypeIASequenceHeader }

// ValidateAndWritePayload implements PayloadWriter.
func (h *IASequenceHeader) ValidateAndWritePayload(w *bitio.Writer) error {
	if err := w.WriteBytes(iaCode[:]); err != nil {
		return err
	}
	if err := w.WriteUint(uint64(h.PrimaryProfile), 8); err != nil { //nolint:mnd
		return err
	}
	return w.WriteUint(uint64(h.AdditionalProfile), 8) //nolint:mnd
}

// ValidateAndReadPayload implements PayloadReader.
func (h *IASequenceHeader) ValidateAndReadPayload(r *bitio.Reader, payloadSize int) error {
	if payloadSize != 6 { //nolint:mnd
		return newUnexpectedSizeError("IASequenceHeader", payloadSize, 6)
	}
	code, err := r.ReadBytes(4) //nolint:mnd
	if err != nil {
		return err
	}
	if [4]byte(code) != iaCode {
		return ierrors.NewDataLoss("obu: IASequenceHeader magic mismatch, got %q", code)
	}
	primary, err := r.ReadUint(8) //nolint:mnd
	if err != nil {
		return err
	}
	additional, err := r.ReadUint(8) //nolint:mnd
	if err != nil {
		return err
	}
	h.PrimaryProfile = Profile(primary)
	h.AdditionalProfile = Profile(additional)
	return nil
}
