package encoderio

import (
	"errors"
	"fmt"
)

// sampleRateResampler is a cubic-spline PCM16LE resampler satisfying the
// same shape as aresample.ResampleSampleRate, so encoderio.NewOutputRateResampler
// can hand callers a concrete implementation without depending on that
// package's own constructor.
type sampleRateResampler struct {
	channels int
	isr      int
	osr      int

	lcache []int16
	rcache []int16

	lws uint64
	rws uint64
	lcs uint64
	rcs uint64
}

// NewOutputRateResampler builds a resampler from inputRate to outputRate
// for the given channel count, for encoders (Opus) whose external codec
// always operates at a fixed output rate.
func NewOutputRateResampler(channels, inputRate, outputRate int) (*sampleRateResampler, error) { //nolint:revive // unexported return satisfies aresample.ResampleSampleRate structurally
	if channels < 1 || channels > 2 { //nolint:mnd
		return nil, fmt.Errorf("encoderio: invalid channels=%d", channels)
	}
	if inputRate <= 0 || outputRate <= 0 {
		return nil, fmt.Errorf("encoderio: invalid sample rate in=%d out=%d", inputRate, outputRate)
	}
	return &sampleRateResampler{channels: channels, isr: inputRate, osr: outputRate}, nil
}

// Resample converts pcm (16-bit little-endian, interleaved) from isr to
// osr, implementing the aresample.ResampleSampleRate shape.
func (v *sampleRateResampler) Resample(pcm []byte) ([]byte, error) {
	if len(pcm) == 0 {
		return nil, errors.New("encoderio: empty pcm")
	}
	if (len(pcm) % (2 * v.channels)) != 0 { //nolint:mnd
		return nil, fmt.Errorf("encoderio: invalid pcm, should mod(%d)", 2*v.channels) //nolint:mnd
	}
	if v.isr == v.osr {
		return pcm, nil
	}

	ms := len(pcm) * 1000 / (2 * v.channels * v.isr) //nolint:mnd

	if nbSamples := len(pcm) / 2 / v.channels; nbSamples < 4 { //nolint:mnd
		return nil, fmt.Errorf("encoderio: invalid pcm, at least 4 samples, got %d", nbSamples)
	}

	left := splitChannel(pcm, v.channels, 0)
	right := splitChannel(pcm, v.channels, 1)
	if right != nil && len(left) != len(right) {
		return nil, fmt.Errorf("encoderio: invalid pcm, channel length mismatch %d != %d", len(left), len(right))
	}

	if v.lcache != nil {
		left = append(v.lcache, left...)
		v.lcache = nil
	}
	if right != nil && v.rcache != nil {
		right = append(v.rcache, right...)
		v.rcache = nil
	}

	outLeft, consumed, err := resampleChannel(left, v.isr, v.osr, v.lws, v.lcs)
	if err != nil {
		return nil, err
	}
	v.lws += uint64(len(outLeft))
	v.lcs += uint64(consumed)
	if consumed < len(left) {
		v.lcache = left[consumed:]
	}

	var outRight []int16
	if right != nil {
		outRight, consumed, err = resampleChannel(right, v.isr, v.osr, v.rws, v.rcs)
		if err != nil {
			return nil, err
		}
		v.rws += uint64(len(outRight))
		v.rcs += uint64(consumed)
		if consumed < len(right) {
			v.rcache = right[consumed:]
		}
	}

	out := mergeChannels(outLeft, outRight)
	want := ms * v.osr * v.channels * 2 / 1000 //nolint:mnd
	if len(out) < want {
		out = append(out, make([]byte, want-len(out))...)
	}
	if len(out) > want {
		out = out[:want]
	}
	return out, nil
}

func mergeChannels(left, right []int16) []byte {
	out := make([]byte, 0, len(left)*4) //nolint:mnd
	for i, v := range left {
		out = append(out, byte(v), byte(v>>8)) //nolint:mnd
		if right != nil {
			v = right[i]
			out = append(out, byte(v), byte(v>>8)) //nolint:mnd
		}
	}
	return out
}

func resampleChannel(in []int16, isr, osr int, written, origin uint64) ([]int16, int, error) {
	if len(in) <= 16 { //nolint:mnd
		return nil, 0, nil
	}
	available := len(in) - 16 //nolint:mnd
	step := float64(isr) / float64(osr)
	x0 := step * float64(written)
	last := origin + uint64(available)

	var out []int16
	consumed := 0
	for x := x0; x < float64(last); x += step {
		xi0 := float64(uint64(x))
		xi := [4]float64{xi0, xi0 + 1, xi0 + 2, xi0 + 3} //nolint:mnd
		yi0 := int(uint64(xi0) - origin)
		yi := [4]float64{float64(in[yi0]), float64(in[yi0+1]), float64(in[yi0+2]), float64(in[yi0+3])}
		y, err := cubicSplineAt(xi, yi, x)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, int16(y))
		consumed = int(uint64(x)-origin) + 1
	}
	return out, consumed, nil
}

func splitChannel(pcm []byte, channels, channel int) []int16 {
	if channel >= channels {
		return nil
	}
	out := make([]int16, 0, len(pcm)/(2*channels)) //nolint:mnd
	for i := 2 * channel; i < len(pcm); i += 2 * channels { //nolint:mnd
		out = append(out, int16(pcm[i])|int16(pcm[i+1])<<8) //nolint:mnd
	}
	return out
}

// cubicSplineAt evaluates the natural cubic spline through (xi[k],yi[k])
// at x, where xi must be four consecutive sample positions.
func cubicSplineAt(xi, yi [4]float64, x float64) (float64, error) {
	x0, x1, x2, x3 := xi[0], xi[1], xi[2], xi[3]
	y0, y1, y2, y3 := yi[0], yi[1], yi[2], yi[3]
	h0, h1, h2 := x1-x0, x2-x1, x3-x2
	u1, l2 := h1/(h1+h0), h1/(h2+h1)
	c1 := 6.0 / (h0 + h1) * ((y2-y1)/h1 - (y1-y0)/h0)
	c2 := 6.0 / (h1 + h2) * ((y3-y2)/h2 - (y2-y1)/h1)
	m1 := (c1/u1 - c2/2) / (2/u1 - l2/2)  //nolint:mnd
	m2 := (c1/2 - c2/l2) / (u1/2 - 2/l2) //nolint:mnd

	switch {
	case x <= x1:
		return -y0*(x-x1)/h0 + (y1-h0*h0*m1/6)*(x-x0)/h0 + (x-x0)*(x-x0)*(x-x0)*m1/(6*h0), nil //nolint:mnd
	case x <= x2:
		v0 := -1.0 * (x - x2) * (x - x2) * (x - x2) * m1 / (6 * h1) //nolint:mnd
		v1 := (x - x1) * (x - x1) * (x - x1) * m2 / (6 * h1)        //nolint:mnd
		v2 := -1.0 * (y1 - h1*h1*m1/6) * (x - x2) / h1              //nolint:mnd
		v3 := (y2 - h1*h1*m2/6) * (x - x1) / h1                     //nolint:mnd
		return v0 + v1 + v2 + v3, nil
	default:
		v0 := -1.0 * (x - x3) * (x - x3) * (x - x3) * m2 / (6 * h2) //nolint:mnd
		v2 := -1.0 * (y2 - h2*h2*m2/6) * (x - x3) / h2              //nolint:mnd
		v3 := y3 * (x - x2) / h2
		return v0 + v2 + v3, nil
	}
}
