// Package loudness defines the loudness measurement surface a Mix
// Presentation's per-layout loudness table is built from.
package loudness

import "github.com/iamf-tools/go-iamf/obu"

// Info mirrors one obu.MixPresentationLayout's measured fields in a struct
// separate from the wire struct; its anchored-loudness entries still use
// obu.AnchoredLoudnessElement.
type Info struct {
	InfoTypeBitmask    uint8
	IntegratedLoudness int16
	DigitalPeak        int16
	TruePeak           int16
	AnchoredLoudness   []obu.AnchoredLoudnessElement
}

// Calculator accumulates rendered samples for one target layout and
// reports the resulting Info on demand.
type Calculator interface {
	Accumulate(samples [][]float64) error
	Query() (Info, error)
}

// UserProvidedCalculator ignores every accumulated sample and returns a
// fixed, caller-supplied Info verbatim: the supported path for users who
// measure loudness with an external tool and simply want it carried
// through the descriptor unchanged.
type UserProvidedCalculator struct {
	info Info
}

// NewUserProvidedCalculator wraps info for verbatim pass-through.
func NewUserProvidedCalculator(info Info) *UserProvidedCalculator {
	return &UserProvidedCalculator{info: info}
}

// Accumulate implements Calculator; it is a no-op.
func (c *UserProvidedCalculator) Accumulate([][]float64) error { return nil }

// Query implements Calculator, returning the wrapped Info unchanged.
func (c *UserProvidedCalculator) Query() (Info, error) { return c.info, nil }
