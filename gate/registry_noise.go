package gate

// registerNoise adds the Pauli noise channels and heralded variants,
// grounded on original_source/src/stim/circuit/gate_data_heralded.cc
// and the DEPOLARIZE/PAULI_CHANNEL family spec.md §4.4 names.
// args_are_disjoint_probabilities (CatDisjointProbabilities) marks
// channels whose arguments are already per-component probabilities
// (PAULI_CHANNEL_*, HERALDED_PAULI_CHANNEL_1) as opposed to
// DEPOLARIZE's single total-probability argument, from which
// per-Pauli conditional probabilities are derived.
func registerNoise(add func(Record)) {
	add(Record{ID: X_ERROR, Name: "X_ERROR", Args: ArgRange{1, 1}, Shape: ShapeSingleQubit, Category: CatNoise, TargetArity: 1})
	add(Record{ID: Y_ERROR, Name: "Y_ERROR", Args: ArgRange{1, 1}, Shape: ShapeSingleQubit, Category: CatNoise, TargetArity: 1})
	add(Record{ID: Z_ERROR, Name: "Z_ERROR", Args: ArgRange{1, 1}, Shape: ShapeSingleQubit, Category: CatNoise, TargetArity: 1})

	add(Record{ID: DEPOLARIZE1, Name: "DEPOLARIZE1", Args: ArgRange{1, 1}, Shape: ShapeSingleQubit, Category: CatNoise, TargetArity: 1})
	add(Record{ID: DEPOLARIZE2, Name: "DEPOLARIZE2", Args: ArgRange{1, 1}, Shape: ShapePairs, Category: CatNoise, TargetArity: 2})

	add(Record{ID: PAULI_CHANNEL_1, Name: "PAULI_CHANNEL_1", Args: ArgRange{3, 3}, Shape: ShapeSingleQubit, Category: CatNoise | CatDisjointProbabilities, TargetArity: 1})
	add(Record{ID: PAULI_CHANNEL_2, Name: "PAULI_CHANNEL_2", Args: ArgRange{15, 15}, Shape: ShapePairs, Category: CatNoise | CatDisjointProbabilities, TargetArity: 2})

	add(Record{ID: HERALDED_ERASE, Name: "HERALDED_ERASE", Args: ArgRange{1, 1}, Shape: ShapeSingleQubit, Category: CatNoise | CatProducesResults, TargetArity: 1})
	add(Record{ID: HERALDED_PAULI_CHANNEL_1, Name: "HERALDED_PAULI_CHANNEL_1", Args: ArgRange{4, 4}, Shape: ShapeSingleQubit, Category: CatNoise | CatProducesResults | CatDisjointProbabilities, TargetArity: 1})
}
