// Package param owns the pending demixing parameter state used to
// down-mix audio elements while encoding, mirroring the IAMF reference
// encoder's ParametersManager.
package param

import (
	"github.com/iamf-tools/go-iamf/ierrors"
	"github.com/iamf-tools/go-iamf/internal/logging"
	"github.com/iamf-tools/go-iamf/obu"
)

// DownMixingParams is the coefficient set and w-progression state
// GetDownMixingParameters hands back for one audio element's current
// frame.
type DownMixingParams struct {
	Alpha     float64
	Beta      float64
	Gamma     float64
	Delta     float64
	WIdxUsed  int
	W         float64
}

type pendingDemixingBlock struct {
	parameterID     uint32
	dmixPMode       obu.DmixPMode
	startTimestamp  uint64
}

type demixingState struct {
	definition *obu.DemixingParamDefinition
	wIdxUsed   int
	pending    *pendingDemixingBlock
}

// Manager owns per-audio-element demixing parameter state across the
// encode, one frame at a time.
type Manager struct {
	demixingStates map[uint32]*demixingState
}

// NewManager returns an empty, uninitialized Manager.
func NewManager() *Manager {
	return &Manager{demixingStates: make(map[uint32]*demixingState)}
}

// Initialize registers the Demixing parameter definition (if any) declared
// by each audio element. Fails if an element declares more than one.
func (m *Manager) Initialize(audioElements map[uint32]*obu.AudioElement) error {
	for id, ae := range audioElements {
		var found *obu.DemixingParamDefinition
		for i := range ae.Params {
			if ae.Params[i].Type != obu.ParamDefinitionDemixing {
				continue
			}
			if found != nil {
				return ierrors.NewFailedPrecondition("parameters_manager: audio element %d declares more than one demixing parameter definition", id)
			}
			found = ae.Params[i].Demixing
		}
		if found != nil {
			m.demixingStates[id] = &demixingState{
				definition: found,
				wIdxUsed:   int(found.DefaultW),
			}
		}
	}
	return nil
}

// DemixingParamDefinitionAvailable reports whether audioElementID declares
// a Demixing parameter definition.
func (m *Manager) DemixingParamDefinitionAvailable(audioElementID uint32) bool {
	_, ok := m.demixingStates[audioElementID]
	return ok
}

// AddDemixingParameterBlock stages a demixing update for later
// consumption by GetDownMixingParameters/UpdateDemixingState.
func (m *Manager) AddDemixingParameterBlock(audioElementID uint32, parameterID uint32, mode obu.DmixPMode, startTimestamp uint64) error {
	state, ok := m.demixingStates[audioElementID]
	if !ok {
		return ierrors.NewFailedPrecondition("parameters_manager: audio element %d has no demixing parameter definition", audioElementID)
	}
	state.pending = &pendingDemixingBlock{parameterID: parameterID, dmixPMode: mode, startTimestamp: startTimestamp}
	return nil
}

// GetDownMixingParameters derives the current frame's down-mixing
// coefficients for audioElementID. If the element declares no demixing
// parameter definition, it returns a no-op identity result and succeeds
// (elements that do not consume demixing).
func (m *Manager) GetDownMixingParameters(audioElementID uint32) (DownMixingParams, error) {
	state, ok := m.demixingStates[audioElementID]
	if !ok {
		return DownMixingParams{Alpha: 1, Beta: 1, Gamma: 1, Delta: 1}, nil
	}

	mode := state.definition.DefaultDmixPMode
	if state.pending != nil {
		mode = state.pending.dmixPMode
	}
	coeffs, ok := CoefficientsForMode(mode)
	if !ok {
		return DownMixingParams{}, ierrors.NewOutOfRange("parameters_manager: unknown dmixp_mode %d", mode)
	}
	return DownMixingParams{
		Alpha:    coeffs.Alpha,
		Beta:     coeffs.Beta,
		Gamma:    coeffs.Gamma,
		Delta:    coeffs.Delta,
		WIdxUsed: state.wIdxUsed,
		W:        WValue(state.wIdxUsed),
	}, nil
}

// UpdateDemixingState advances audioElementID's w_idx accumulator once
// the staged block (if any) is confirmed to cover expectedTimestamp, then
// discards it.
func (m *Manager) UpdateDemixingState(audioElementID uint32, expectedTimestamp uint64) error {
	state, ok := m.demixingStates[audioElementID]
	if !ok {
		// No demixing definition declared: a genuine no-op, but surfaced at
		// debug level so a caller that expected demixing to apply here can
		// notice the silent pass-through.
		logging.Debugf(m, "update_demixing_state: audio element %d has no demixing parameter definition, skipping", audioElementID)
		return nil
	}
	if state.pending == nil {
		return nil
	}
	if state.pending.startTimestamp != expectedTimestamp {
		return ierrors.NewFailedPrecondition(
			"parameters_manager: audio element %d staged demixing block at timestamp %d, expected %d",
			audioElementID, state.pending.startTimestamp, expectedTimestamp)
	}
	coeffs, ok := CoefficientsForMode(state.pending.dmixPMode)
	if !ok {
		return ierrors.NewOutOfRange("parameters_manager: unknown dmixp_mode %d", state.pending.dmixPMode)
	}
	state.wIdxUsed = ClampWIdx(state.wIdxUsed + coeffs.WIdxOffset)
	state.pending = nil
	return nil
}

// String implements logging's stringer for receiver identification.
func (m *Manager) String() string { return "ParametersManager" }
