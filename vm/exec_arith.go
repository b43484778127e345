package vm

// Binary arithmetic/comparison and unary executors are all built from a
// handful of generic factories plus a small per-operation function. This
// keeps the 10 binary ops x 8 widths x (comparisons, unary ops) expansion
// from turning into eighty hand-written near-duplicates, while each
// resulting ExecFunc is still a concrete, branch-free-on-type closure once
// the translator instantiates it for a specific T — the same effect as the
// source's per-T template function, built the generic-function-factory way
// called out in §9 Design Notes.

// makeBinaryExec implements the stack discipline common to every binary
// arithmetic opcode (§4.3): pop the right operand, read the new top in
// place as the left operand, write the result to that same cell. Net stack
// delta is -1.
func makeBinaryExec[T Integer](op func(a, b T) T) ExecFunc {
	return func(cf *ControlFlowState, parameter uint64) {
		right := narrow[T](cf.Pop())
		leftPtr := cf.Top()
		left := narrow[T](*leftPtr)
		*leftPtr = widen(op(left, right))
	}
}

// makeCompareExec is the same stack discipline, but the result is always
// 0/1 rather than a value of T.
func makeCompareExec[T Integer](cmp func(a, b T) bool) ExecFunc {
	return func(cf *ControlFlowState, parameter uint64) {
		right := narrow[T](cf.Pop())
		leftPtr := cf.Top()
		left := narrow[T](*leftPtr)
		if cmp(left, right) {
			*leftPtr = 1
		} else {
			*leftPtr = 0
		}
	}
}

// makeUnaryExec rewrites the top of stack in place.
func makeUnaryExec[T Integer](op func(a T) T) ExecFunc {
	return func(cf *ControlFlowState, parameter uint64) {
		top := cf.Top()
		*top = widen(op(narrow[T](*top)))
	}
}

func opAdd[T Integer](a, b T) T { return a + b }
func opSub[T Integer](a, b T) T { return a - b }
func opMul[T Integer](a, b T) T { return a * b }
func opAnd[T Integer](a, b T) T { return a & b }
func opOr[T Integer](a, b T) T  { return a | b }
func opXor[T Integer](a, b T) T { return a ^ b }

// opDiv and opMod yield 0 for a zero divisor rather than faulting (§4.3,
// §7 "recoverable at call site", §8 scenario 2).
func opDiv[T Integer](a, b T) T {
	if b == 0 {
		return 0
	}
	return a / b
}

func opMod[T Integer](a, b T) T {
	if b == 0 {
		return 0
	}
	return a % b
}

// shiftAmount masks the count by the result type's bit width, not the
// operand's stored width (§4.3).
func shiftAmount[T Integer](b T) uint {
	return uint(uint64(b)) & (bitWidth[T]() - 1)
}

// opShl and opShr: Go's >> on a signed T sign-extends and on an unsigned T
// zero-extends, exactly the behavior §4.3 calls out for SHR.
func opShl[T Integer](a, b T) T { return a << shiftAmount(b) }
func opShr[T Integer](a, b T) T { return a >> shiftAmount(b) }

func opEq[T Integer](a, b T) bool { return a == b }
func opNeq[T Integer](a, b T) bool { return a != b }
func opLt[T Integer](a, b T) bool { return a < b }
func opLe[T Integer](a, b T) bool { return a <= b }
func opGt[T Integer](a, b T) bool { return a > b }
func opGe[T Integer](a, b T) bool { return a >= b }

// opNeg is only ever instantiated for a signed T: the translator forces
// the signed counterpart per §3/§4.3's ARITHM_NEG rule.
func opNeg[T Integer](a T) T { return -a }

func opBitnot[T Integer](a T) T { return ^a }

// opNot is the logical-not-to-bool executor ARITHM_NOT, distinct from
// MAKE_BOOL only in that it inverts.
func opNot[T Integer](a T) T {
	if a == 0 {
		return 1
	}
	return 0
}
