package vm

// ExecFunc is the handler bound into a RuntimeOpcode. It is a pure
// function of (ControlFlowState, parameter): it never allocates and never
// blocks, and must only be called when the documented stack preconditions
// for its opcode hold (§4.4).
type ExecFunc func(cf *ControlFlowState, parameter uint64)

// Flags bits on a RuntimeOpcode. Bits beyond CallIsBaseCall are reserved
// for the outer interpreter (§3).
type RuntimeFlags uint8

const (
	FlagCallIsBaseCall RuntimeFlags = 1 << 0
)

// RuntimeOpcode is the in-memory, dispatch-ready unit produced by the
// translator: a bound handler, an inline parameter word, a flags bitset,
// and a SuccessiveHandled field (§3). Translate sets SuccessiveHandled to 1
// for every opcode the core runs and to 0 for control-transfer and
// not-handled opcodes; it does not count the opcodes that follow.
type RuntimeOpcode struct {
	Handler           ExecFunc
	Parameter         uint64
	Flags             RuntimeFlags
	OpcodeType        OpcodeType
	SuccessiveHandled uint8
}

// IsHandled reports whether the core can run this opcode: it is false for
// the exec_NOT_HANDLED sentinel and for control-transfer opcodes, both of
// which have SuccessiveHandled == 0.
func (o *RuntimeOpcode) IsHandled() bool {
	return o.Handler != nil && o.SuccessiveHandled > 0
}

// Run invokes the bound handler against cf. Calling Run on an opcode whose
// Handler is the not-handled sentinel is the "execution error" fatal
// condition described in §7; the sentinel itself panics rather than
// silently doing nothing, so that condition can never be mistaken for a
// no-op.
func (o *RuntimeOpcode) Run(cf *ControlFlowState) {
	o.Handler(cf, o.Parameter)
}

// execNotHandled is bound to any translated opcode the provider could not
// specialize. Per the invariant in §3, every opcode bound to this handler
// has SuccessiveHandled == 0, and per §7 reaching it at runtime is fatal.
func execNotHandled(cf *ControlFlowState, parameter uint64) {
	panic("lemonscript: exec_NOT_HANDLED reached at runtime")
}
