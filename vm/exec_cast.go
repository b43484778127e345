package vm

// execCastValue[T] implements CAST_VALUE: reinterpret the top of stack as
// T, then widen it back to a 64-bit cell. The translator binds T from the
// compiler-provided cast-exec-type, never the opcode's raw data-type
// (§4.3): casting narrows and re-widens in one step, so CAST_VALUE<i8>
// followed by CAST_VALUE<i32> sign-extends the low byte through i8 first,
// which is what makes scenario 3 in §8 (0xFF -> i8 -> i32 == -1) work.
func execCastValue[T Integer](cf *ControlFlowState, parameter uint64) {
	top := cf.Top()
	*top = widen(narrow[T](*top))
}
