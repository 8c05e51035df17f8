package obu

import (
	"github.com/iamf-tools/go-iamf/bitio"
	"github.com/iamf-tools/go-iamf/ierrors"
)

// ParamDefinitionType tags which variant a ParamDefinition carries.
type ParamDefinitionType uint32

const (
	ParamDefinitionMixGain    ParamDefinitionType = 0
	ParamDefinitionDemixing   ParamDefinitionType = 1
	ParamDefinitionReconGain  ParamDefinitionType = 2
	ParamDefinitionExtended   ParamDefinitionType = 3
)

// SubblockDuration describes one subblock's length for a mode-0 parameter
// definition with non-constant subblock durations.
type SubblockDuration struct {
	Duration uint32
}

// ParamDefinition is the shared header every parameter definition variant
// embeds: id, rate, and mode-0 duration/subblock layout.
type ParamDefinition struct {
	ParameterID               uint32
	ParameterRate              uint32
	ParamDefinitionMode        bool
	Duration                   uint32 // meaningful iff !ParamDefinitionMode
	ConstantSubblockDuration   uint32 // 0 means subblock durations vary; see Subblocks
	Subblocks                  []SubblockDuration
}

func (p *ParamDefinition) validate() error {
	if p.ParameterRate == 0 {
		return ierrors.NewInvalidArgument("param_definition: parameter_rate must be > 0")
	}
	return nil
}

func (p *ParamDefinition) writeCommon(w *bitio.Writer) error {
	if err := p.validate(); err != nil {
		return err
	}
	if err := w.WriteUleb128(p.ParameterID); err != nil {
		return err
	}
	if err := w.WriteUleb128(p.ParameterRate); err != nil {
		return err
	}
	w.WriteBool(p.ParamDefinitionMode)
	if err := w.WriteUint(0, 7); err != nil { //nolint:mnd // reserved
		return err
	}

	if !p.ParamDefinitionMode {
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
	}
	return nil
}

func (p *ParamDefinition) readCommon(r *bitio.Reader) error {
	var err error
	if p.ParameterID, err = r.ReadUleb128(); err != nil {
		return err
	}
	if p.ParameterRate, err = r.ReadUleb128(); err != nil {
		return err
	}
	if p.ParamDefinitionMode, err = r.ReadBool(); err != nil {
		return err
	}
	if _, err = r.ReadUint(7); err != nil { //nolint:mnd // reserved
		return err
	}
	if !p.ParamDefinitionMode {
		if p.Duration, err = r.ReadUleb128(); err != nil {
			return err
		}
		if p.ConstantSubblockDuration, err = r.ReadUleb128(); err != nil {
			return err
		}
		if p.ConstantSubblockDuration == 0 {
			count, err := r.ReadUleb128()
			if err != nil {
				return err
			}
			p.Subblocks = make([]SubblockDuration, count)
			for i := range p.Subblocks {
				d, err := r.ReadUleb128()
				if err != nil {
					return err
				}
				p.Subblocks[i] = SubblockDuration{Duration: d}
			}
		}
	}
	return p.validate()
}

// MixGainParamDefinition is the Mix-Gain parameter definition variant.
type MixGainParamDefinition struct {
	ParamDefinition
	DefaultMixGain int16
}

func (d *MixGainParamDefinition) write(w *bitio.Writer) error {
	if err := d.writeCommon(w); err != nil {
		return err
	}
	return w.WriteInt(int64(d.DefaultMixGain), 16) //nolint:mnd
}

func (d *MixGainParamDefinition) read(r *bitio.Reader) error {
	if err := d.readCommon(r); err != nil {
		return err
	}
	gain, err := r.ReadInt(16) //nolint:mnd
	if err != nil {
		return err
	}
	d.DefaultMixGain = int16(gain)
	return nil
}

// DmixPMode enumerates the six demixing parameter modes (see
// param.CoefficientsForMode for the coefficients each implies).
type DmixPMode uint8

const (
	DmixPMode1 DmixPMode = iota + 1
	DmixPMode2
	DmixPMode3
	DmixPMode1n
	DmixPMode2n
	DmixPMode3n
)

// DemixingParamDefinition is the Demixing parameter definition variant.
type DemixingParamDefinition struct {
	ParamDefinition
	DefaultDmixPMode DmixPMode
	DefaultW         uint8 // w_idx in [0, 10]
}

func (d *DemixingParamDefinition) write(w *bitio.Writer) error {
	if err := d.writeCommon(w); err != nil {
		return err
	}
	if err := w.WriteUint(uint64(d.DefaultDmixPMode), 3); err != nil { //nolint:mnd
		return err
	}
	if err := w.WriteUint(0, 5); err != nil { //nolint:mnd // reserved
		return err
	}
	if err := w.WriteUint(uint64(d.DefaultW), 4); err != nil { //nolint:mnd
		return err
	}
	return w.WriteUint(0, 4) //nolint:mnd // reserved
}

func (d *DemixingParamDefinition) read(r *bitio.Reader) error {
	if err := d.readCommon(r); err != nil {
		return err
	}
	mode, err := r.ReadUint(3) //nolint:mnd
	if err != nil {
		return err
	}
	d.DefaultDmixPMode = DmixPMode(mode)
	if _, err := r.ReadUint(5); err != nil { //nolint:mnd // reserved
		return err
	}
	w4, err := r.ReadUint(4) //nolint:mnd
	if err != nil {
		return err
	}
	d.DefaultW = uint8(w4)
	if _, err := r.ReadUint(4); err != nil { //nolint:mnd // reserved
		return err
	}
	return nil
}

// ReconGainParamDefinition is the Recon-Gain parameter definition variant.
// It carries no extra fields of its own beyond the common header.
type ReconGainParamDefinition struct {
	ParamDefinition
}

func (d *ReconGainParamDefinition) write(w *bitio.Writer) error { return d.writeCommon(w) }
func (d *ReconGainParamDefinition) read(r *bitio.Reader) error  { return d.readCommon(r) }

// ExtendedParamDefinition carries an opaque payload identified by a
// LEB128-encoded extended type tag.
type ExtendedParamDefinition struct {
	ParamDefinition
	ExtendedType ParamDefinitionType
	Payload      []byte
}

func (d *ExtendedParamDefinition) write(w *bitio.Writer) error {
	if err := d.writeCommon(w); err != nil {
		return err
	}
	if err := w.WriteUleb128(uint32(len(d.Payload))); err != nil {
		return err
	}
	return w.WriteBytes(d.Payload)
}

func (d *ExtendedParamDefinition) read(r *bitio.Reader) error {
	if err := d.readCommon(r); err != nil {
		return err
	}
	n, err := r.ReadUleb128()
	if err != nil {
		return err
	}
	d.Payload, err = r.ReadBytes(int(n))
	return err
}
