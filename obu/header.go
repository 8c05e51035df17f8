package obu

import (
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/ierrors"
)

// Header is the leading fixed-and-optional-field block every OBU carries:
// a one-byte type/flags tag, optional trim fields, an optional extension
// header, and the obu_size length prefix.
//
// The field layout and ordering is grounded directly on
// write_bit_buffer.cc's OBU helpers in the original IAMF reference
// implementation; the measure-then-prefix write strategy mirrors an
// Atom Marshal/Len pattern (compute the payload first, then write its
// length).
type Header struct {
	Type                     Type
	RedundantCopy            bool
	TrimmingStatusFlag       bool
	ExtensionFlag            bool
	NumSamplesToTrimAtEnd    uint32 // present iff TrimmingStatusFlag
	NumSamplesToTrimAtStart  uint32 // present iff TrimmingStatusFlag
	ExtensionHeaderBytes     []byte // present iff ExtensionFlag
}

// forbidsTrimAndRedundancy reports whether t must never carry a trimming
// status or redundant-copy flag.
func forbidsTrimAndRedundancy(t Type) bool {
	switch t {
	case TypeTemporalDelimiter, TypeSequenceHeader:
		return true
	default:
		return false
	}
}

// Validate checks the header-level invariants shared by every OBU.
func (h *Header) Validate() error {
	if forbidsTrimAndRedundancy(h.Type) && (h.TrimmingStatusFlag || h.RedundantCopy) {
		return ierrors.NewFailedPrecondition("obu: type %s forbids trimming/redundant-copy flags", h.Type)
	}
	if h.TrimmingStatusFlag && h.Type != TypeAudioFrame {
		if _, ok := SubstreamIndexForAudioFrameType(h.Type); !ok {
			return ierrors.NewFailedPrecondition("obu: trimming status flag only valid on audio frame OBUs, got %s", h.Type)
		}
	}
	return nil
}

// writeHeaderPrefix writes everything up to and including obu_size: the
// first byte, optional trim fields, optional extension header, then the
// size prefix for payloadLen bytes that the caller will write next.
func (h *Header) writeHeaderPrefix(w *bitio.Writer, payloadLen int) error {
	if err := h.Validate(); err != nil {
		return err
	}

	if err := w.WriteUint(uint64(h.Type), 5); err != nil { //nolint:mnd
		return err
	}
	w.WriteBool(h.RedundantCopy)
	w.WriteBool(h.TrimmingStatusFlag)
	w.WriteBool(h.ExtensionFlag)

	extra := 0
	if h.TrimmingStatusFlag {
		trimBytes, err := trimFieldBytes(h, w.Generator())
		if err != nil {
			return err
		}
		extra += trimBytes
	}
	if h.ExtensionFlag {
		extHeaderSizeBytes, err := bitio.EncodeUleb128(uint32(len(h.ExtensionHeaderBytes)), w.Generator())
		if err != nil {
			return err
		}
		extra += len(extHeaderSizeBytes) + len(h.ExtensionHeaderBytes)
	}

	if h.TrimmingStatusFlag {
		if err := w.WriteUleb128(h.NumSamplesToTrimAtEnd); err != nil {
			return err
		}
		if err := w.WriteUleb128(h.NumSamplesToTrimAtStart); err != nil {
			return err
		}
	}
	if h.ExtensionFlag {
		if err := w.WriteUleb128(uint32(len(h.ExtensionHeaderBytes))); err != nil {
			return err
		}
		if err := w.WriteBytes(h.ExtensionHeaderBytes); err != nil {
			return err
		}
	}

	return w.WriteUleb128(uint32(payloadLen))
}

// trimFieldBytes measures, without committing, how many bytes the trim
// fields would occupy under gen — used only to size-check before the real
// write (kept cheap: both fields are ULEB128).
func trimFieldBytes(h *Header, gen bitio.LebGenerator) (int, error) {
	a, err := bitio.EncodeUleb128(h.NumSamplesToTrimAtEnd, gen)
	if err != nil {
		return 0, err
	}
	b, err := bitio.EncodeUleb128(h.NumSamplesToTrimAtStart, gen)
	if err != nil {
		return 0, err
	}
	return len(a) + len(b), nil
}

// ReadHeader parses a Header from r. The payload size returned is the byte
// length of whatever follows, per obu_size.
func ReadHeader(r *bitio.Reader) (*Header, int, error) {
	typeVal, err := r.ReadUint(5) //nolint:mnd
	if err != nil {
		return nil, 0, err
	}
	redundant, err := r.ReadBool()
	if err != nil {
		return nil, 0, err
	}
	trimming, err := r.ReadBool()
	if err != nil {
		return nil, 0, err
	}
	extension, err := r.ReadBool()
	if err != nil {
		return nil, 0, err
	}

	h := &Header{
		Type:               Type(typeVal),
		RedundantCopy:      redundant,
		TrimmingStatusFlag: trimming,
		ExtensionFlag:      extension,
	}

	if trimming {
		h.NumSamplesToTrimAtEnd, err = r.ReadUleb128()
		if err != nil {
			return nil, 0, err
		}
		h.NumSamplesToTrimAtStart, err = r.ReadUleb128()
		if err != nil {
			return nil, 0, err
		}
	}
	if extension {
		extSize, err := r.ReadUleb128()
		if err != nil {
			return nil, 0, err
		}
		h.ExtensionHeaderBytes, err = r.ReadBytes(int(extSize))
		if err != nil {
			return nil, 0, err
		}
	}

	if err := h.Validate(); err != nil {
		return nil, 0, err
	}

	size, err := r.ReadUleb128()
	if err != nil {
		return nil, 0, err
	}
	return h, int(size), nil
}
