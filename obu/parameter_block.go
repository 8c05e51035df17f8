package obu

import (
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/ierrors"
)

// MixGainAnimationType selects which curve shape a MixGainSubblockData
// subblock carries.
type MixGainAnimationType uint8

const (
	MixGainAnimationStep MixGainAnimationType = iota
	MixGainAnimationLinear
	MixGainAnimationBezier
)

// MixGainSubblockData is one subblock's worth of Mix-Gain animation.
type MixGainSubblockData struct {
	AnimationType                  MixGainAnimationType
	StepStartPointValue            int16
	LinearStartPointValue          int16
	LinearEndPointValue            int16
	BezierStartPointValue          int16
	BezierEndPointValue            int16
	BezierControlPointValue        int16
	BezierControlPointRelativeTime uint8
}

func (d *MixGainSubblockData) write(w *bitio.Writer) error {
	if err := w.WriteUleb128(uint32(d.AnimationType)); err != nil {
		return err
	}
	switch d.AnimationType {
	case MixGainAnimationStep:
		return w.WriteInt(int64(d.StepStartPointValue), 16) //nolint:mnd
	case MixGainAnimationLinear:
		if err := w.WriteInt(int64(d.LinearStartPointValue), 16); err != nil { //nolint:mnd
			return err
		}
		return w.WriteInt(int64(d.LinearEndPointValue), 16) //nolint:mnd
	case MixGainAnimationBezier:
		if err := w.WriteInt(int64(d.BezierStartPointValue), 16); err != nil { //nolint:mnd
			return err
		}
		if err := w.WriteInt(int64(d.BezierEndPointValue), 16); err != nil { //nolint:mnd
			return err
		}
		if err := w.WriteInt(int64(d.BezierControlPointValue), 16); err != nil { //nolint:mnd
			return err
		}
		return w.WriteUint(uint64(d.BezierControlPointRelativeTime), 8) //nolint:mnd
	default:
		return ierrors.NewInvalidArgument("mix_gain_subblock: unknown animation_type %d", d.AnimationType)
	}
}

// DemixingInfoParameterData is one subblock's demixing mode update.
type DemixingInfoParameterData struct {
	DmixPMode DmixPMode
	DefaultW  uint8
}

func (d *DemixingInfoParameterData) write(w *bitio.Writer) error {
	if err := w.WriteUint(uint64(d.DmixPMode), 3); err != nil { //nolint:mnd
		return err
	}
	w.WriteBool(false) // reserved
	return w.WriteUint(uint64(d.DefaultW), 4) //nolint:mnd
}

// ReconGainInfoParameterData is one subblock's recon-gain update: a
// bitmask of which channels carry a gain value, followed by that many
// gain bytes in channel order.
type ReconGainInfoParameterData struct {
	ReconGainFlags uint32
	ReconGain      []uint8
}

func (d *ReconGainInfoParameterData) write(w *bitio.Writer) error {
	if err := w.WriteUleb128(d.ReconGainFlags); err != nil {
		return err
	}
	want := popcount(d.ReconGainFlags)
	if len(d.ReconGain) != want {
		return ierrors.NewInvalidArgument("recon_gain_info_parameter_data: recon_gain length %d does not match flag count %d",
			len(d.ReconGain), want)
	}
	for _, g := range d.ReconGain {
		if err := w.WriteUint(uint64(g), 8); err != nil { //nolint:mnd
			return err
		}
	}
	return nil
}

func popcount(v uint32) int {
	n := 0
	for v != 0 {
		n += int(v & 1)
		v >>= 1
	}
	return n
}

// ParameterSubblock is one subblock of a ParameterBlock; exactly one of
// MixGain, Demixing, ReconGain is set, matching the ParameterBlock's
// referenced ParamDefinitionType.
type ParameterSubblock struct {
	MixGain   *MixGainSubblockData
	Demixing  *DemixingInfoParameterData
	ReconGain *ReconGainInfoParameterData
}

func (s *ParameterSubblock) write(w *bitio.Writer) error {
	switch {
	case s.MixGain != nil:
		return s.MixGain.write(w)
	case s.Demixing != nil:
		return s.Demixing.write(w)
	case s.ReconGain != nil:
		return s.ReconGain.write(w)
	default:
		return ierrors.NewInvalidArgument("parameter_subblock: no payload set")
	}
}

// ParameterBlock carries one temporal unit's update for a single
// parameter, split into one or more subblocks.
type ParameterBlock struct {
	ParameterID              uint32
	Duration                 uint32
	ConstantSubblockDuration uint32
	Subblocks                []SubblockDuration
	SubblockData             []ParameterSubblock
}

// ObuType implements PayloadWriter.
func (ParameterBlock) ObuType() Type { return TypeParameterBlock }

func (p *ParameterBlock) validate() error {
	if len(p.SubblockData) == 0 {
		return ierrors.NewInvalidArgument("parameter_block: at least one subblock is required")
	}
	if p.ConstantSubblockDuration == 0 && len(p.Subblocks) != len(p.SubblockData) {
		return ierrors.NewFailedPrecondition(
			"parameter_block: variable subblock_durations length %d does not match subblock_data length %d",
			len(p.Subblocks), len(p.SubblockData))
	}
	return nil
}

// ValidateAndWritePayload implements PayloadWriter.
func (p *ParameterBlock) ValidateAndWritePayload(w *bitio.Writer) error {
	if err := p.validate(); err != nil {
		return err
	}
	if err := w.WriteUleb128(p.ParameterID); err != nil {
		return err
	}
	if err := w.WriteUleb128(p.Duration); err != nil {
		return err
	}
	if err := w.WriteUleb128(p.ConstantSubblockDuration); err != nil {
		return err
	}
	if p.ConstantSubblockDuration == 0 {
		if err := w.WriteUleb128(uint32(len(p.Subblocks))); err != nil {
			return err
		}
		for _, sb := range p.Subblocks {
			if err := w.WriteUleb128(sb.Duration); err != nil {
				return err
			}
		}
	}
	for i := range p.SubblockData {
		if err := p.SubblockData[i].write(w); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndReadPayload implements PayloadReader. Reading ParameterBlock
// is not yet implemented (see DESIGN.md's Open Question decisions).
func (p *ParameterBlock) ValidateAndReadPayload(_ *bitio.Reader, _ int) error {
	return ierrors.NewUnimplemented("ParameterBlock ValidateAndReadPayload not yet implemented")
}
