package obu

// Type is the 5-bit obu_type field distinguishing the OBU kinds defined by
// the IAMF specification.
type Type uint8

// Recognized OBU types. AudioFrameID0..AudioFrameID17 are the eighteen
// types that carry an implicit substream id (see AudioFrame.ObuType).
const (
	TypeCodecConfig      Type = 0
	TypeAudioElement     Type = 1
	TypeMixPresentation  Type = 2
	TypeParameterBlock   Type = 3
	TypeTemporalDelimiter Type = 4
	TypeAudioFrame       Type = 5 // explicit substream id, encoded in payload

	TypeAudioFrameID0 Type = 6
	// TypeAudioFrameID1..ID17 follow TypeAudioFrameID0 consecutively,
	// through value 23.
	TypeAudioFrameID17 Type = 23

	TypeReservedStart Type = 24
	TypeReservedEnd   Type = 29

	TypeSequenceHeader Type = 31

	// TypeArbitrary is not a wire obu_type: arbitrary OBUs carry whatever
	// real type code their payload describes and are distinguished only by
	// their presence in the assembler's separate insertion list.
)

const numImplicitAudioFrameTypes = int(TypeAudioFrameID17-TypeAudioFrameID0) + 1

// TypeIASequenceHeader is the IA Sequence Header OBU, the first OBU of any
// IAMF stream.
const TypeIASequenceHeader = TypeSequenceHeader

// AudioFrameTypeForSubstream returns the implicit per-substream OBU type
// for substreamIndex, the position of a substream's id within the first 18
// substream ids ever declared across the program (0-based), or false if
// substreamIndex has no implicit type and must use TypeAudioFrame with an
// explicit id field instead.
func AudioFrameTypeForSubstream(substreamIndex int) (Type, bool) {
	if substreamIndex < 0 || substreamIndex >= numImplicitAudioFrameTypes {
		return 0, false
	}
	return TypeAudioFrameID0 + Type(substreamIndex), true
}

// SubstreamIndexForAudioFrameType inverts AudioFrameTypeForSubstream.
func SubstreamIndexForAudioFrameType(t Type) (int, bool) {
	if t < TypeAudioFrameID0 || t > TypeAudioFrameID17 {
		return 0, false
	}
	return int(t - TypeAudioFrameID0), true
}

// IsReserved reports whether t falls in the reserved type range.
func (t Type) IsReserved() bool {
	return t >= TypeReservedStart && t <= TypeReservedEnd
}

// String names the OBU type for logging.
func (t Type) String() string {
	switch {
	case t == TypeCodecConfig:
		return "CodecConfig"
	case t == TypeAudioElement:
		return "AudioElement"
	case t == TypeMixPresentation:
		return "MixPresentation"
	case t == TypeParameterBlock:
		return "ParameterBlock"
	case t == TypeTemporalDelimiter:
		return "TemporalDelimiter"
	case t == TypeAudioFrame:
		return "AudioFrame"
	case t >= TypeAudioFrameID0 && t <= TypeAudioFrameID17:
		return "AudioFrameID"
	case t == TypeSequenceHeader:
		return "IASequenceHeader"
	case t.IsReserved():
		return "Reserved"
	default:
		return "Unknown"
	}
}
