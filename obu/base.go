package obu

import (
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/internal/pool"
)

// PayloadWriter is implemented by every OBU payload: it knows how to
// validate itself and serialize its body (everything after obu_size).
type PayloadWriter interface {
	ObuType() Type
	ValidateAndWritePayload(w *bitio.Writer) error
}

// PayloadReader is implemented by OBU payloads whose read path is
// available. Types without one return ierrors.Unimplemented from
// ValidateAndReadPayload instead of satisfying this interface (see
// DESIGN.md's Open Question decisions).
type PayloadReader interface {
	ValidateAndReadPayload(r *bitio.Reader, payloadSize int) error
}

// WriteObu serializes header+payload for obu into w: it stages the payload
// in a fresh bitio.Writer to measure its length, copies the staged bytes
// into a pooled buffer, writes the header (which needs that length for
// obu_size), then appends the pooled bytes.
func WriteObu(w *bitio.Writer, header *Header, payload PayloadWriter) error {
	staging := bitio.NewWriter(w.Generator())
	if err := payload.ValidateAndWritePayload(staging); err != nil {
		return err
	}
	payloadBytes, err := staging.Bytes()
	if err != nil {
		return err
	}

	pooled := pool.Get(len(payloadBytes))
	defer pooled.Release()
	pooled.Append(payloadBytes...)

	header.Type = payload.ObuType()
	if err := header.writeHeaderPrefix(w, len(pooled.Data())); err != nil {
		return err
	}
	return w.WriteBytes(pooled.Data())
}

// ReadObu parses a header and dispatches payload parsing to payload.
func ReadObu(r *bitio.Reader, payload PayloadReader) (*Header, error) {
	header, size, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	if err := payload.ValidateAndReadPayload(r, size); err != nil {
		return nil, err
	}
	return header, nil
}
