package gate

// registerPeriod3 adds the two-qubit controlled-Pauli unitaries CX, CY,
// CZ, XCX, XCZ, YCX and YCZ (each is its own inverse), grounded on
// original_source/src/stim/circuit/gate_data_period_3.cc.
func registerPeriod3(add func(Record)) {
	add(Record{ID: CX, Name: "CX", Aliases: []string{"CNOT", "ZCX"}, Args: ArgRange{0, 0}, Shape: ShapePairs, Category: CatUnitary, TargetArity: 2})
	add(Record{ID: CY, Name: "CY", Aliases: []string{"ZCY"}, Args: ArgRange{0, 0}, Shape: ShapePairs, Category: CatUnitary, TargetArity: 2})
	add(Record{ID: CZ, Name: "CZ", Args: ArgRange{0, 0}, Shape: ShapePairs, Category: CatUnitary, TargetArity: 2})
	add(Record{ID: XCX, Name: "XCX", Args: ArgRange{0, 0}, Shape: ShapePairs, Category: CatUnitary, TargetArity: 2})
	add(Record{ID: XCZ, Name: "XCZ", Args: ArgRange{0, 0}, Shape: ShapePairs, Category: CatUnitary, TargetArity: 2})
	add(Record{ID: YCX, Name: "YCX", Args: ArgRange{0, 0}, Shape: ShapePairs, Category: CatUnitary, TargetArity: 2})
	add(Record{ID: YCZ, Name: "YCZ", Args: ArgRange{0, 0}, Shape: ShapePairs, Category: CatUnitary, TargetArity: 2})
}
