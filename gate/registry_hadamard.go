package gate

// registerHadamardLike adds the Hadamard-family and quarter-turn square
// roots of Pauli gates, grounded on
// original_source/src/stim/circuit/gate_data_hada.cc.
func registerHadamardLike(add func(Record)) {
	add(Record{ID: H, Name: "H", Aliases: []string{"H_XZ"}, Args: ArgRange{0, 0}, Shape: ShapeSingleQubit, Category: CatUnitary, TargetArity: 1})
	add(Record{ID: H_XY, Name: "H_XY", Args: ArgRange{0, 0}, Shape: ShapeSingleQubit, Category: CatUnitary, TargetArity: 1})
	add(Record{ID: H_YZ, Name: "H_YZ", Args: ArgRange{0, 0}, Shape: ShapeSingleQubit, Category: CatUnitary, TargetArity: 1})
	add(Record{ID: S, Name: "S", Aliases: []string{"SQRT_Z"}, Args: ArgRange{0, 0}, Shape: ShapeSingleQubit, Category: CatUnitary, TargetArity: 1})
	add(Record{ID: S_DAG, Name: "S_DAG", Aliases: []string{"SQRT_Z_DAG"}, Args: ArgRange{0, 0}, Shape: ShapeSingleQubit, Category: CatUnitary, TargetArity: 1})
	add(Record{ID: SQRT_X, Name: "SQRT_X", Args: ArgRange{0, 0}, Shape: ShapeSingleQubit, Category: CatUnitary, TargetArity: 1})
	add(Record{ID: SQRT_X_DAG, Name: "SQRT_X_DAG", Args: ArgRange{0, 0}, Shape: ShapeSingleQubit, Category: CatUnitary, TargetArity: 1})
	add(Record{ID: SQRT_Y, Name: "SQRT_Y", Args: ArgRange{0, 0}, Shape: ShapeSingleQubit, Category: CatUnitary, TargetArity: 1})
	add(Record{ID: SQRT_Y_DAG, Name: "SQRT_Y_DAG", Args: ArgRange{0, 0}, Shape: ShapeSingleQubit, Category: CatUnitary, TargetArity: 1})
}
