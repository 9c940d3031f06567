package gate

// registerCollapsing adds resets, measurements, and the combined
// measure-then-reset gates, plus MPP (Pauli-product measurement). All
// measurement variants take an optional single argument: the
// before_measure_flip_probability spec.md §4.4 describes.
func registerCollapsing(add func(Record)) {
	add(Record{ID: R, Name: "R", Aliases: []string{"RZ"}, Args: ArgRange{0, 0}, Shape: ShapeSingleQubit, Category: CatResets, TargetArity: 1})
	add(Record{ID: RX, Name: "RX", Args: ArgRange{0, 0}, Shape: ShapeSingleQubit, Category: CatResets, TargetArity: 1})
	add(Record{ID: RY, Name: "RY", Args: ArgRange{0, 0}, Shape: ShapeSingleQubit, Category: CatResets, TargetArity: 1})

	add(Record{ID: M, Name: "M", Aliases: []string{"MZ"}, Args: ArgRange{0, 1}, Shape: ShapeSingleQubit, Category: CatMeasurement | CatProducesResults, TargetArity: 1})
	add(Record{ID: MX, Name: "MX", Args: ArgRange{0, 1}, Shape: ShapeSingleQubit, Category: CatMeasurement | CatProducesResults, TargetArity: 1})
	add(Record{ID: MY, Name: "MY", Args: ArgRange{0, 1}, Shape: ShapeSingleQubit, Category: CatMeasurement | CatProducesResults, TargetArity: 1})

	add(Record{ID: MR, Name: "MR", Aliases: []string{"MRZ"}, Args: ArgRange{0, 1}, Shape: ShapeSingleQubit, Category: CatMeasurement | CatResets | CatProducesResults, TargetArity: 1})
	add(Record{ID: MRX, Name: "MRX", Args: ArgRange{0, 1}, Shape: ShapeSingleQubit, Category: CatMeasurement | CatResets | CatProducesResults, TargetArity: 1})
	add(Record{ID: MRY, Name: "MRY", Args: ArgRange{0, 1}, Shape: ShapeSingleQubit, Category: CatMeasurement | CatResets | CatProducesResults, TargetArity: 1})

	add(Record{ID: MPP, Name: "MPP", Args: ArgRange{0, 1}, Shape: ShapeProducts, Category: CatMeasurement | CatProducesResults, TargetArity: 0})
}
