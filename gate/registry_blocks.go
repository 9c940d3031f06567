package gate

// registerBlocks adds the REPEAT pseudo-gate. Its single argument
// encodes the repetition count and its "targets" are empty; the loop
// body is carried out of band as a sub-circuit (circuit.Instruction
// stores it separately, per spec.md §3's arena design).
func registerBlocks(add func(Record)) {
	add(Record{ID: REPEAT, Name: "REPEAT", Args: ArgRange{1, 1}, Shape: ShapeRepeatBlock, Category: CatIsBlock | CatNotFusable, TargetArity: 0})
}
