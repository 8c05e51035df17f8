package param

import "github.com/iamf-tools/go-iamf/obu"

// DemixCoefficients is the (alpha, beta, gamma, delta) coefficient set and
// w_idx progression implied by one DmixPMode value, taken verbatim from
// the IAMF demixing table.
type DemixCoefficients struct {
	Alpha       float64
	Beta        float64
	Gamma       float64
	Delta       float64
	WIdxOffset  int
}

var demixingTable = map[obu.DmixPMode]DemixCoefficients{
	obu.DmixPMode1:  {Alpha: 1.0, Beta: 1.0, Gamma: 0.707, Delta: 0.707, WIdxOffset: -1}, //nolint:mnd
	obu.DmixPMode2:  {Alpha: 1.0, Beta: 1.0, Gamma: 0.707, Delta: 0.5, WIdxOffset: -1},   //nolint:mnd
	obu.DmixPMode3:  {Alpha: 1.0, Beta: 0.866, Gamma: 0.866, Delta: 0.866, WIdxOffset: -1}, //nolint:mnd
	obu.DmixPMode1n: {Alpha: 1.0, Beta: 1.0, Gamma: 0.707, Delta: 0.707, WIdxOffset: 1},  //nolint:mnd
	obu.DmixPMode2n: {Alpha: 1.0, Beta: 1.0, Gamma: 0.707, Delta: 0.5, WIdxOffset: 1},    //nolint:mnd
	obu.DmixPMode3n: {Alpha: 1.0, Beta: 0.866, Gamma: 0.866, Delta: 0.866, WIdxOffset: 1}, //nolint:mnd
}

// wTable maps w_idx in [0,10] to the w value used in the demixing
// equations, per the IAMF spec's fixed 11-entry table.
var wTable = [11]float64{ //nolint:mnd
	0.0, 0.0179, 0.0391, 0.0658, 0.1038, 0.25, 0.4170, 0.5556, 0.5984, 0.6199, 0.6302, //nolint:mnd
}

// CoefficientsForMode looks up the (alpha,beta,gamma,delta,w_idx_offset)
// tuple for mode.
func CoefficientsForMode(mode obu.DmixPMode) (DemixCoefficients, bool) {
	c, ok := demixingTable[mode]
	return c, ok
}

// WValue returns the w value for wIdx, clamped to the table's [0,10] domain.
func WValue(wIdx int) float64 {
	if wIdx < 0 {
		wIdx = 0
	}
	if wIdx > 10 { //nolint:mnd
		wIdx = 10 //nolint:mnd
	}
	return wTable[wIdx]
}

// ClampWIdx clamps wIdx to the valid [0,10] range.
func ClampWIdx(wIdx int) int {
	if wIdx < 0 {
		return 0
	}
	if wIdx > 10 { //nolint:mnd
		return 10 //nolint:mnd
	}
	return wIdx
}
