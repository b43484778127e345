package vm

// execReadMemoryConsume implements READ_MEMORY with parameter==0: the
// address on top of stack is replaced in place by the value read from it
// (§4.3). Net stack delta is 0.
func execReadMemoryConsume[T Integer](cf *ControlFlowState, parameter uint64) {
	top := cf.Top()
	raw := readMemoryWidth(cf.Host, *top, byteWidth[T]())
	*top = widen(narrow[T](raw))
}

// execReadMemoryNoConsume implements READ_MEMORY with parameter==1: the
// address stays on the stack, the value is pushed above it. Net stack
// delta is +1.
func execReadMemoryNoConsume[T Integer](cf *ControlFlowState, parameter uint64) {
	addr := *cf.Top()
	raw := readMemoryWidth(cf.Host, addr, byteWidth[T]())
	cf.Push(widen(narrow[T](raw)))
}

// execWriteMemoryNormal implements WRITE_MEMORY: address on top, value
// below it; only the address is consumed, leaving the value as the new
// top of stack. Net stack delta is -1.
func execWriteMemoryNormal[T Integer](cf *ControlFlowState, parameter uint64) {
	addr := cf.Pop()
	value := narrow[T](*cf.Top())
	writeMemoryWidth(cf.Host, addr, byteWidth[T](), widen(value))
}

// execWriteMemoryExchanged implements the "exchanged" WRITE_MEMORY
// variant: value on top, address below it. The value is popped, the
// address underneath is read without being consumed, and the value is
// written back over it — so it again survives as the new top of stack.
// Net stack delta is -1.
func execWriteMemoryExchanged[T Integer](cf *ControlFlowState, parameter uint64) {
	value := narrow[T](cf.Pop())
	addr := *cf.Top()
	writeMemoryWidth(cf.Host, addr, byteWidth[T](), widen(value))
	*cf.Top() = widen(value)
}
