package gate

// registerAnnotations adds the non-physical annotation gates that the
// frame simulator consumes for observable extraction and the error
// analyzer consumes to allocate detector/observable ids.
// args_are_disjoint_probabilities is irrelevant here; CatAnnotation is
// the marker analyzers/simulators use to recognize "metadata, not
// physics" instructions.
func registerAnnotations(add func(Record)) {
	add(Record{ID: DETECTOR, Name: "DETECTOR", Args: ArgRange{0, -1}, Shape: ShapeRecordList, Category: CatAnnotation | CatNotFusable, TargetArity: 1})
	add(Record{ID: OBSERVABLE_INCLUDE, Name: "OBSERVABLE_INCLUDE", Args: ArgRange{1, 1}, Shape: ShapeRecordList, Category: CatAnnotation, TargetArity: 1})
	add(Record{ID: SHIFT_COORDS, Name: "SHIFT_COORDS", Args: ArgRange{0, -1}, Shape: ShapeNone, Category: CatAnnotation, TargetArity: 0})
	add(Record{ID: TICK, Name: "TICK", Args: ArgRange{0, 0}, Shape: ShapeNone, Category: CatAnnotation, TargetArity: 0})
	add(Record{ID: QUBIT_COORDS, Name: "QUBIT_COORDS", Args: ArgRange{0, -1}, Shape: ShapeSingleQubit, Category: CatAnnotation, TargetArity: 1})
}
