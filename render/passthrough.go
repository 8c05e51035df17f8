// Package render implements the passthrough renderer: arranging already
// demixed, labeled channels into an output layout without any mixing.
package render

import (
	"github.com/iamf-tools/go-iamf/ierrors"
	"github.com/iamf-tools/go-iamf/obu"
)

// LabeledFrame maps channel labels (e.g. "L2", "R2", "D_R2", "A0", "A1")
// to one tick's worth of per-channel samples, plus the number of samples
// to trim from the start/end of the rendered output.
type LabeledFrame struct {
	Samples              map[string][]float64
	SamplesToTrimAtStart int
	SamplesToTrimAtEnd   int
}

// PassthroughRenderer arranges a LabeledFrame's channels into a fixed
// output channel order, with no mixing: each output position is either a
// directly passed-through input channel or silence.
type PassthroughRenderer struct {
	channelOrder []string // "" names a silent output channel
}

// CreateFromScalableChannelLayoutConfig builds a PassthroughRenderer if
// cfg is suitable for use per IAMF Spec 7.3.2.1: either cfg has exactly
// one layer (whose loudspeaker_layout is used directly), or one of cfg's
// layers matches playbackLayout. Returns (nil, false) if no layer matches.
func CreateFromScalableChannelLayoutConfig(
	cfg *obu.ScalableChannelLayoutConfig, playbackLayout obu.LoudspeakerLayout,
) (*PassthroughRenderer, bool) {
	if cfg == nil || len(cfg.Layers) == 0 {
		return nil, false
	}
	var layout obu.LoudspeakerLayout
	matched := false
	if len(cfg.Layers) == 1 {
		layout = cfg.Layers[0].LoudspeakerLayout
		matched = true
	} else {
		for _, l := range cfg.Layers {
			if l.LoudspeakerLayout == playbackLayout {
				layout = l.LoudspeakerLayout
				matched = true
				break
			}
		}
	}
	if !matched {
		return nil, false
	}
	order, ok := channelOrderForLayout(layout)
	if !ok {
		return nil, false
	}
	return &PassthroughRenderer{channelOrder: order}, true
}

// channelOrderForLayout maps a loudspeaker layout to the ordered set of
// labels RenderLabeledFrame expects to find in a LabeledFrame, matching
// the label vocabulary IAMF uses for scalable channel audio ("L2", "R2",
// "C", "LFE", ...). An empty string in the result names a layout position
// with no corresponding IAMF label (silent in the passthrough path).
func channelOrderForLayout(layout obu.LoudspeakerLayout) ([]string, bool) {
	switch layout {
	case obu.LayoutMono:
		return []string{"M"}, true
	case obu.LayoutStereo:
		return []string{"L2", "R2"}, true
	case obu.Layout5_1:
		return []string{"L5", "R5", "C", "LFE", "Ls5", "Rs5"}, true
	case obu.Layout5_1_2:
		return []string{"L5", "R5", "C", "LFE", "Ls5", "Rs5", "Ltf2", "Rtf2"}, true
	case obu.Layout5_1_4:
		return []string{"L5", "R5", "C", "LFE", "Ls5", "Rs5", "Ltf4", "Rtf4", "Ltb4", "Rtb4"}, true
	case obu.Layout7_1:
		return []string{"L7", "R7", "C", "LFE", "Lss7", "Rss7", "Lrs7", "Rrs7"}, true
	case obu.Layout7_1_2:
		return []string{"L7", "R7", "C", "LFE", "Lss7", "Rss7", "Lrs7", "Rrs7", "Ltf2", "Rtf2"}, true
	case obu.Layout7_1_4:
		return []string{"L7", "R7", "C", "LFE", "Lss7", "Rss7", "Lrs7", "Rrs7", "Ltf4", "Rtf4", "Ltb4", "Rtb4"}, true
	case obu.LayoutBinaural:
		return []string{"BinauralL", "BinauralR"}, true
	default:
		return nil, false
	}
}

// RenderLabeledFrame arranges frame's samples into (time, channel) order
// following the renderer's channel order, trims SamplesToTrimAtStart/End
// from every channel, and zero-fills any channel absent from frame.
// Fails if labeled channels have unequal sample-count, or if the
// requested trim exceeds the available samples.
func (p *PassthroughRenderer) RenderLabeledFrame(frame *LabeledFrame) ([][]float64, error) {
	numSamples := -1
	for label, samples := range frame.Samples {
		if numSamples == -1 {
			numSamples = len(samples)
		} else if len(samples) != numSamples {
			return nil, ierrors.NewFailedPrecondition(
				"passthrough_renderer: channel %q has %d samples, expected %d", label, len(samples), numSamples)
		}
	}
	if numSamples == -1 {
		numSamples = 0
	}
	trimmed := numSamples - frame.SamplesToTrimAtStart - frame.SamplesToTrimAtEnd
	if trimmed < 0 {
		return nil, ierrors.NewOutOfRange(
			"passthrough_renderer: trim %d+%d exceeds frame length %d",
			frame.SamplesToTrimAtStart, frame.SamplesToTrimAtEnd, numSamples)
	}

	out := make([][]float64, trimmed)
	for t := range out {
		out[t] = make([]float64, len(p.channelOrder))
		for ch, label := range p.channelOrder {
			if label == "" {
				continue
			}
			samples, ok := frame.Samples[label]
			if !ok {
				continue // absent label: zero-filled
			}
			out[t][ch] = samples[t+frame.SamplesToTrimAtStart]
		}
	}
	return out, nil
}
