package vm

// execNOP is bound directly, no wrapper needed: the opcode carries no
// per-instance state.
func execNOP(cf *ControlFlowState, parameter uint64) {}

// execMoveStackGrow implements MOVE_STACK +n: zero-fill [sp, sp+n) before
// advancing sp (§4.3 "key algorithmic details").
func execMoveStackGrow(cf *ControlFlowState, parameter uint64) {
	n := int(int64(parameter))
	for i := 0; i < n; i++ {
		cf.ValueStack[cf.SP+i] = 0
	}
	cf.SP += n
}

// execMoveStackShrinkOne is the -1 fast path called out explicitly in §4.3.
func execMoveStackShrinkOne(cf *ControlFlowState, parameter uint64) {
	cf.SP--
}

// execMoveStackShrink implements MOVE_STACK -n for n < -1: no zeroing, sp
// just moves down by n (n is already negative).
func execMoveStackShrink(cf *ControlFlowState, parameter uint64) {
	cf.SP += int(int64(parameter))
}

func execMoveVarStackGrow(cf *ControlFlowState, parameter uint64) {
	cf.GrowVarStack(int(int64(parameter)))
}

func execMoveVarStackShrink(cf *ControlFlowState, parameter uint64) {
	cf.ShrinkVarStack(-int(int64(parameter)))
}

// execPushConstant writes the translated i64 parameter and advances sp.
func execPushConstant(cf *ControlFlowState, parameter uint64) {
	cf.Push(parameter)
}

// execDuplicate and execExchange are kept wired per §9's "dead opcodes"
// note: unused by any known compiler output, but binary-compatible until
// that is confirmed.
func execDuplicate(cf *ControlFlowState, parameter uint64) {
	cf.Push(*cf.Top())
}

func execExchange(cf *ControlFlowState, parameter uint64) {
	a, b := cf.Top(), cf.TopMinus(1)
	*a, *b = *b, *a
}

// execMakeBool implements MAKE_BOOL: top := (top != 0) ? 1 : 0.
func execMakeBool(cf *ControlFlowState, parameter uint64) {
	top := cf.Top()
	if *top != 0 {
		*top = 1
	} else {
		*top = 0
	}
}
