package gate

// registerPauli adds the identity and three Pauli gates, grounded on
// original_source/src/stim/circuit/gate_data_pauli.cc.
func registerPauli(add func(Record)) {
	add(Record{ID: I, Name: "I", Args: ArgRange{0, 0}, Shape: ShapeSingleQubit, Category: CatUnitary, TargetArity: 1})
	add(Record{ID: X, Name: "X", Args: ArgRange{0, 0}, Shape: ShapeSingleQubit, Category: CatUnitary, TargetArity: 1})
	add(Record{ID: Y, Name: "Y", Args: ArgRange{0, 0}, Shape: ShapeSingleQubit, Category: CatUnitary, TargetArity: 1})
	add(Record{ID: Z, Name: "Z", Args: ArgRange{0, 0}, Shape: ShapeSingleQubit, Category: CatUnitary, TargetArity: 1})
}
