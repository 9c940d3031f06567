package gate

// registerSwaps adds SWAP and its imaginary-phase variants, grounded on
// original_source/src/stim/circuit/gate_data_swaps.cc.
func registerSwaps(add func(Record)) {
	add(Record{ID: SWAP, Name: "SWAP", Args: ArgRange{0, 0}, Shape: ShapePairs, Category: CatUnitary, TargetArity: 2})
	add(Record{ID: ISWAP, Name: "ISWAP", Args: ArgRange{0, 0}, Shape: ShapePairs, Category: CatUnitary, TargetArity: 2})
	add(Record{ID: ISWAP_DAG, Name: "ISWAP_DAG", Args: ArgRange{0, 0}, Shape: ShapePairs, Category: CatUnitary, TargetArity: 2})
}
