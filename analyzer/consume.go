package analyzer

// This file holds the backward pass's measurement/reset consumption
// logic (spec.md §4.5's "Measurements and resets" paragraph): how a
// measurement's recorded dependents get folded into a qubit's running
// sensitivity, and the simplified gauge-detector check this package
// implements (see DESIGN.md for the honest scope note — the real
// mechanism stim uses is richer than the per-qubit "leftover
// sensitivity at reset" check here).

// consumeMeasurement handles one measurement of qubit q, walking
// backward. If this is a measure-and-reset gate, the reset (which
// happens after the measurement) is undone first: the axis the
// measurement does NOT read is checked for leftover sensitivity
// (nothing should still depend on a qubit this gate is about to wipe)
// and both axes are cleared. Then measIdx's recorded dependents are
// folded into q's sensitivity along the axis basis reads (spec.md:
// "XORs the measurement-id's dependents into the Pauli sensitivity of
// that qubit corresponding to the basis of that measurement").
func (a *analysis) consumeMeasurement(measIdx, q int, basis byte, resets bool) error {
	injected := a.pending[measIdx]
	if resets {
		// Y reads both axes at once (outcome = x^z), so there's no
		// "unread" axis left to sanity-check before a reset.
		if (basis == 'Z' && !a.zSens[q].IsEmpty()) || (basis == 'X' && !a.xSens[q].IsEmpty()) {
			if err := a.reportGauge(); err != nil {
				return err
			}
		}
		a.xSens[q].clear()
		a.zSens[q].clear()
	}
	switch basis {
	case 'Z':
		a.xSens[q].addAll(injected)
	case 'X':
		a.zSens[q].addAll(injected)
	case 'Y':
		a.xSens[q].addAll(injected)
		a.zSens[q].addAll(injected)
	}
	return nil
}

// consumeProductMeasurement is consumeMeasurement's MPP analogue: an
// error on ANY qubit in the product, in its own basis, flips the
// single combined outcome, so the dependents get folded into every
// participating qubit's matching axis. MPP has no reset variant.
func (a *analysis) consumeProductMeasurement(measIdx int) error {
	injected := a.pending[measIdx]
	for _, qb := range a.measEvents[measIdx] {
		switch qb.basis {
		case 'Z':
			a.xSens[qb.qubit].addAll(injected)
		case 'X':
			a.zSens[qb.qubit].addAll(injected)
		case 'Y':
			a.xSens[qb.qubit].addAll(injected)
			a.zSens[qb.qubit].addAll(injected)
		}
	}
	return nil
}

// reportGauge applies opts.GaugeDetectorPolicy to one detected gauge
// condition. GaugeDrop is currently indistinguishable from GaugeAllow:
// tracing a leftover-sensitivity violation back to the single
// offending DETECTOR id (so only that one line could be omitted from
// the model) isn't implemented, so both policies just let the run
// continue with the model built so far — see DESIGN.md.
func (a *analysis) reportGauge() error {
	switch a.opts.GaugeDetectorPolicy {
	case GaugeAllow, GaugeDrop:
		return nil
	default:
		return errGauge()
	}
}
