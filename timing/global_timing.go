// Package timing assigns monotonic per-substream and per-parameter
// timestamps, measured in audio-sample ticks from program start.
package timing

import (
	"github.com/iamf-tools/go-iamf/ierrors"
	"github.com/iamf-tools/go-iamf/internal/logging"
	"github.com/iamf-tools/go-iamf/obu"
)

// audioFrameWindow remembers the most recently emitted audio-frame span
// for one substream, used by ValidateParameterBlockCoversAudioFrame.
type audioFrameWindow struct {
	start uint64
	end   uint64
}

// GlobalTimingModule tracks one independent clock per substream id and
// one per parameter id.
type GlobalTimingModule struct {
	substreamClock map[uint32]uint64
	parameterClock map[uint32]uint64
	parameterRate  map[uint32]uint32
	lastFrame      map[uint32]audioFrameWindow
}

// NewGlobalTimingModule returns an empty, uninitialized module.
func NewGlobalTimingModule() *GlobalTimingModule {
	return &GlobalTimingModule{
		substreamClock: make(map[uint32]uint64),
		parameterClock: make(map[uint32]uint64),
		parameterRate:  make(map[uint32]uint32),
		lastFrame:      make(map[uint32]audioFrameWindow),
	}
}

// Initialize registers every substream id declared across audioElements
// (failing on duplicates) and every parameter id declared by paramDefs,
// each clock starting at tick 0.
func (g *GlobalTimingModule) Initialize(
	audioElements []*obu.AudioElement,
	codecConfigs map[uint32]*obu.CodecConfig,
	paramDefs []*obu.ParamDefinition,
) error {
	for _, ae := range audioElements {
		cfg, ok := codecConfigs[ae.CodecConfigID]
		if !ok {
			return ierrors.NewFailedPrecondition(
				"global_timing: audio element %d references unknown codec_config_id %d", ae.AudioElementID, ae.CodecConfigID)
		}
		for _, id := range ae.AudioSubstreamIDs {
			if _, exists := g.substreamClock[id]; exists {
				return ierrors.NewFailedPrecondition("global_timing: duplicate substream id %d", id)
			}
			g.substreamClock[id] = 0
			g.parameterRate[id] = cfg.OutputSampleRate()
		}
	}
	for _, pd := range paramDefs {
		if pd.ParameterRate == 0 {
			return ierrors.NewInvalidArgument("global_timing: parameter %d has parameter_rate 0", pd.ParameterID)
		}
		g.parameterClock[pd.ParameterID] = 0
		g.parameterRate[pd.ParameterID] = pd.ParameterRate
	}
	return nil
}

// RegisterStrayParameter registers a parameter id present in the user's
// metadata plan but not declared by any ParamDefinition, assigning it the
// given implicit rate (typically an audio element's codec-config output
// rate). Fails if no rate can be supplied.
func (g *GlobalTimingModule) RegisterStrayParameter(parameterID uint32, impliedRate uint32) error {
	if impliedRate == 0 {
		return ierrors.NewFailedPrecondition(
			"global_timing: stray parameter block %d has no codec config to infer a rate from", parameterID)
	}
	if _, exists := g.parameterClock[parameterID]; exists {
		return nil
	}
	g.parameterClock[parameterID] = 0
	g.parameterRate[parameterID] = impliedRate
	return nil
}

// NextAudioFrameTimestamps returns (start, end) for the next audio frame
// on substreamID and advances that substream's clock by duration.
func (g *GlobalTimingModule) NextAudioFrameTimestamps(substreamID uint32, duration uint32) (uint64, uint64, error) {
	start, ok := g.substreamClock[substreamID]
	if !ok {
		return 0, 0, ierrors.NewFailedPrecondition("global_timing: unknown substream id %d", substreamID)
	}
	end := start + uint64(duration)
	g.substreamClock[substreamID] = end
	g.lastFrame[substreamID] = audioFrameWindow{start: start, end: end}
	logging.Tracef(g, "substream %d advanced to tick %d", substreamID, end)
	return start, end, nil
}

// NextParameterBlockTimestamps verifies declaredStart matches the
// parameter's current clock value, then advances by duration.
func (g *GlobalTimingModule) NextParameterBlockTimestamps(parameterID uint32, declaredStart uint64, duration uint32) (uint64, uint64, error) {
	clock, ok := g.parameterClock[parameterID]
	if !ok {
		return 0, 0, ierrors.NewFailedPrecondition("global_timing: unknown parameter id %d", parameterID)
	}
	if declaredStart != clock {
		return 0, 0, ierrors.NewFailedPrecondition(
			"global_timing: parameter %d declared start %d does not match clock %d", parameterID, declaredStart, clock)
	}
	end := clock + uint64(duration)
	g.parameterClock[parameterID] = end
	return declaredStart, end, nil
}

// ValidateParameterBlockCoversAudioFrame asserts that [paramStart,paramEnd]
// fully covers the most recently emitted audio-frame window on substreamID.
func (g *GlobalTimingModule) ValidateParameterBlockCoversAudioFrame(
	parameterID uint32, paramStart, paramEnd uint64, substreamID uint32,
) error {
	frame, ok := g.lastFrame[substreamID]
	if !ok {
		return ierrors.NewFailedPrecondition("global_timing: no audio frame emitted yet for substream %d", substreamID)
	}
	if paramStart > frame.start || paramEnd < frame.end {
		return ierrors.NewFailedPrecondition(
			"global_timing: parameter %d window [%d,%d] does not cover audio frame window [%d,%d] on substream %d",
			parameterID, paramStart, paramEnd, frame.start, frame.end, substreamID)
	}
	return nil
}

// String implements logging's stringer for receiver identification.
func (g *GlobalTimingModule) String() string { return "GlobalTimingModule" }
