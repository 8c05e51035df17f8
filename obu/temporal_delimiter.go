package obu

import "github.com/iamf-tools/go-iamf/bitio"

// TemporalDelimiter marks the start of one temporal unit. It carries no
// payload.
type TemporalDelimiter struct{}

// ObuType implements PayloadWriter.
func (TemporalDelimiter) ObuType() Type { return TypeTemporalDelimiter }

// ValidateAndWritePayload implements PayloadWriter; the payload is empty.
func (TemporalDelimiter) ValidateAndWritePayload(*bitio.Writer) error { return nil }

// ValidateAndReadPayload implements PayloadReader; an empty payload is the
// only valid one.
func (TemporalDelimiter) ValidateAndReadPayload(_ *bitio.Reader, payloadSize int) error {
	if payloadSize != 0 {
		return newUnexpectedSizeError("TemporalDelimiter", payloadSize, 0)
	}
	return nil
}
