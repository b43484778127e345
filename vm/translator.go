package vm

import (
	"fmt"

	"github.com/ultra-azu/sonic3air/internal/vmerr"
)

// Translator lowers a stream of StaticOpcodes into dispatch-ready
// RuntimeOpcodes. It is the default, non-fusing provider described in
// §4.3: it always consumes exactly one static opcode and never combines
// several into one RuntimeOpcode. A more aggressive provider that fuses
// straight-line sequences is out of scope here, same as in the source.
type Translator struct {
	Runtime Runtime
}

func NewTranslator(rt Runtime) *Translator {
	return &Translator{Runtime: rt}
}

// Translate produces one RuntimeOpcode from ops[index] and reports how
// many static opcodes were consumed (always 1 for this provider). A
// non-nil error is a translator error per §7: unknown data type, unknown
// cast-exec-type, or unknown opcode type, and aborts translation.
func (tr *Translator) Translate(ops []StaticOpcode, index int) (RuntimeOpcode, int, error) {
	op := ops[index]
	rop := RuntimeOpcode{
		OpcodeType: op.Type,
		Parameter:  uint64(op.Parameter),
	}

	handler, err := tr.bind(op, &rop)
	if err != nil {
		return RuntimeOpcode{}, 0, vmerr.Wrap(err)
	}

	rop.Handler = handler
	if handler != nil && !isControlTransfer(op.Type) {
		rop.SuccessiveHandled = 1
	}
	if rop.Handler == nil {
		rop.Handler = execNotHandled
		rop.SuccessiveHandled = 0
	}
	return rop, 1, nil
}

func isControlTransfer(t OpcodeType) bool {
	switch t {
	case OpJump, OpJumpConditional, OpCall, OpReturn, OpExternalCall, OpExternalJump:
		return true
	}
	return false
}

// execDelegatedToOuterLoop is bound to control-transfer opcodes. Their
// translation succeeds and their flags are set correctly, but their
// execution is the outer interpreter's job (§1 Non-goals, §4.3): the
// outer loop must special-case OpcodeType before ever calling Run() on
// one of these. Reaching this handler means that contract was violated.
func execDelegatedToOuterLoop(cf *ControlFlowState, parameter uint64) {
	panic("lemonscript: control-transfer opcode executed inside the core; the outer interpreter must handle it")
}

// bind resolves op into a handler, mutating rop's Parameter/Flags as
// needed for variable address resolution and the base-call flag. Every
// path returns either a non-nil handler or a non-nil error.
func (tr *Translator) bind(op StaticOpcode, rop *RuntimeOpcode) (ExecFunc, error) {
	switch op.Type {
	case OpNOP:
		return execNOP, nil

	case OpMoveStack:
		if op.Parameter == -1 {
			return execMoveStackShrinkOne, nil
		}
		if op.Parameter < 0 {
			return execMoveStackShrink, nil
		}
		return execMoveStackGrow, nil

	case OpMoveVarStack:
		if op.Parameter < 0 {
			return execMoveVarStackShrink, nil
		}
		return execMoveVarStackGrow, nil

	case OpPushConstant:
		return execPushConstant, nil

	case OpDuplicate:
		return execDuplicate, nil
	case OpExchange:
		return execExchange, nil
	case OpMakeBool:
		return execMakeBool, nil

	case OpGetVariableValue:
		return tr.bindVariable(op, rop, true)
	case OpSetVariableValue:
		return tr.bindVariable(op, rop, false)

	case OpReadMemory:
		if op.Parameter == 0 {
			return selectByType(op.DataType,
				execReadMemoryConsume[int8], execReadMemoryConsume[int16], execReadMemoryConsume[int32], execReadMemoryConsume[int64],
				execReadMemoryConsume[uint8], execReadMemoryConsume[uint16], execReadMemoryConsume[uint32], execReadMemoryConsume[uint64])
		}
		return selectByType(op.DataType,
			execReadMemoryNoConsume[int8], execReadMemoryNoConsume[int16], execReadMemoryNoConsume[int32], execReadMemoryNoConsume[int64],
			execReadMemoryNoConsume[uint8], execReadMemoryNoConsume[uint16], execReadMemoryNoConsume[uint32], execReadMemoryNoConsume[uint64])

	case OpWriteMemory:
		if op.Parameter == 0 {
			return selectByType(op.DataType,
				execWriteMemoryNormal[int8], execWriteMemoryNormal[int16], execWriteMemoryNormal[int32], execWriteMemoryNormal[int64],
				execWriteMemoryNormal[uint8], execWriteMemoryNormal[uint16], execWriteMemoryNormal[uint32], execWriteMemoryNormal[uint64])
		}
		return selectByType(op.DataType,
			execWriteMemoryExchanged[int8], execWriteMemoryExchanged[int16], execWriteMemoryExchanged[int32], execWriteMemoryExchanged[int64],
			execWriteMemoryExchanged[uint8], execWriteMemoryExchanged[uint16], execWriteMemoryExchanged[uint32], execWriteMemoryExchanged[uint64])

	case OpCastValue:
		return selectCastType(op.DataType)

	case OpArithmAdd:
		return dispatchBinary(op.DataType, opAdd[int8], opAdd[int16], opAdd[int32], opAdd[int64], opAdd[uint8], opAdd[uint16], opAdd[uint32], opAdd[uint64])
	case OpArithmSub:
		return dispatchBinary(op.DataType, opSub[int8], opSub[int16], opSub[int32], opSub[int64], opSub[uint8], opSub[uint16], opSub[uint32], opSub[uint64])
	case OpArithmMul:
		return dispatchBinary(op.DataType, opMul[int8], opMul[int16], opMul[int32], opMul[int64], opMul[uint8], opMul[uint16], opMul[uint32], opMul[uint64])
	case OpArithmAnd:
		return dispatchBinary(op.DataType, opAnd[int8], opAnd[int16], opAnd[int32], opAnd[int64], opAnd[uint8], opAnd[uint16], opAnd[uint32], opAnd[uint64])
	case OpArithmOr:
		return dispatchBinary(op.DataType, opOr[int8], opOr[int16], opOr[int32], opOr[int64], opOr[uint8], opOr[uint16], opOr[uint32], opOr[uint64])
	case OpArithmXor:
		return dispatchBinary(op.DataType, opXor[int8], opXor[int16], opXor[int32], opXor[int64], opXor[uint8], opXor[uint16], opXor[uint32], opXor[uint64])
	case OpArithmDiv:
		return dispatchBinary(op.DataType, opDiv[int8], opDiv[int16], opDiv[int32], opDiv[int64], opDiv[uint8], opDiv[uint16], opDiv[uint32], opDiv[uint64])
	case OpArithmMod:
		return dispatchBinary(op.DataType, opMod[int8], opMod[int16], opMod[int32], opMod[int64], opMod[uint8], opMod[uint16], opMod[uint32], opMod[uint64])
	case OpArithmShl:
		return dispatchBinary(op.DataType, opShl[int8], opShl[int16], opShl[int32], opShl[int64], opShl[uint8], opShl[uint16], opShl[uint32], opShl[uint64])
	case OpArithmShr:
		return dispatchBinary(op.DataType, opShr[int8], opShr[int16], opShr[int32], opShr[int64], opShr[uint8], opShr[uint16], opShr[uint32], opShr[uint64])

	case OpCompareEq:
		return dispatchCompare(op.DataType, opEq[int8], opEq[int16], opEq[int32], opEq[int64], opEq[uint8], opEq[uint16], opEq[uint32], opEq[uint64])
	case OpCompareNeq:
		return dispatchCompare(op.DataType, opNeq[int8], opNeq[int16], opNeq[int32], opNeq[int64], opNeq[uint8], opNeq[uint16], opNeq[uint32], opNeq[uint64])
	case OpCompareLt:
		return dispatchCompare(op.DataType, opLt[int8], opLt[int16], opLt[int32], opLt[int64], opLt[uint8], opLt[uint16], opLt[uint32], opLt[uint64])
	case OpCompareLe:
		return dispatchCompare(op.DataType, opLe[int8], opLe[int16], opLe[int32], opLe[int64], opLe[uint8], opLe[uint16], opLe[uint32], opLe[uint64])
	case OpCompareGt:
		return dispatchCompare(op.DataType, opGt[int8], opGt[int16], opGt[int32], opGt[int64], opGt[uint8], opGt[uint16], opGt[uint32], opGt[uint64])
	case OpCompareGe:
		return dispatchCompare(op.DataType, opGe[int8], opGe[int16], opGe[int32], opGe[int64], opGe[uint8], opGe[uint16], opGe[uint32], opGe[uint64])

	case OpArithmNeg:
		// Forced signed, regardless of the opcode's own signedness coding.
		// int_const has no signed/unsigned pair of its own — it widens to
		// i64 instead of going through .Signed().
		if op.DataType == TypeIntConst {
			return makeUnaryExec(opNeg[int64]), nil
		}
		return dispatchUnarySigned(op.DataType.Signed(), opNeg[int8], opNeg[int16], opNeg[int32], opNeg[int64])
	case OpArithmNot:
		return dispatchUnary(op.DataType, opNot[int8], opNot[int16], opNot[int32], opNot[int64], opNot[uint8], opNot[uint16], opNot[uint32], opNot[uint64])
	case OpArithmBitnot:
		return dispatchUnary(op.DataType, opBitnot[int8], opBitnot[int16], opBitnot[int32], opBitnot[int64], opBitnot[uint8], opBitnot[uint16], opBitnot[uint32], opBitnot[uint64])

	case OpJump, OpJumpConditional, OpCall, OpReturn, OpExternalCall, OpExternalJump:
		if op.DataType != 0 {
			rop.Flags |= FlagCallIsBaseCall
		}
		return execDelegatedToOuterLoop, nil

	default:
		return nil, fmt.Errorf("lemonscript: unknown opcode type %v", op.Type)
	}
}

// bindVariable resolves a GET_VARIABLE_VALUE/SET_VARIABLE_VALUE opcode by
// variable class, resolving GLOBAL/EXTERNAL addresses once here and
// baking them into rop.Parameter (§3 invariant).
func (tr *Translator) bindVariable(op StaticOpcode, rop *RuntimeOpcode, isGet bool) (ExecFunc, error) {
	id := uint32(op.Parameter)
	switch ClassOfVariableID(id) {
	case VariableLocal:
		rop.Parameter = uint64(id)
		if isGet {
			return selectByType(op.DataType,
				execGetVariableLocal[int8], execGetVariableLocal[int16], execGetVariableLocal[int32], execGetVariableLocal[int64],
				execGetVariableLocal[uint8], execGetVariableLocal[uint16], execGetVariableLocal[uint32], execGetVariableLocal[uint64])
		}
		return selectByType(op.DataType,
			execSetVariableLocal[int8], execSetVariableLocal[int16], execSetVariableLocal[int32], execSetVariableLocal[int64],
			execSetVariableLocal[uint8], execSetVariableLocal[uint16], execSetVariableLocal[uint32], execSetVariableLocal[uint64])

	case VariableUser:
		rop.Parameter = uint64(id)
		if isGet {
			return selectByType(op.DataType,
				execGetVariableUser[int8], execGetVariableUser[int16], execGetVariableUser[int32], execGetVariableUser[int64],
				execGetVariableUser[uint8], execGetVariableUser[uint16], execGetVariableUser[uint32], execGetVariableUser[uint64])
		}
		return selectByType(op.DataType,
			execSetVariableUser[int8], execSetVariableUser[int16], execSetVariableUser[int32], execSetVariableUser[int64],
			execSetVariableUser[uint8], execSetVariableUser[uint16], execSetVariableUser[uint32], execSetVariableUser[uint64])

	case VariableGlobal:
		ptr := tr.Runtime.AccessGlobalVariableValue(id)
		rop.Parameter = ptrToParameter(ptr)
		if isGet {
			return selectByType(op.DataType,
				execGetVariableGlobal[int8], execGetVariableGlobal[int16], execGetVariableGlobal[int32], execGetVariableGlobal[int64],
				execGetVariableGlobal[uint8], execGetVariableGlobal[uint16], execGetVariableGlobal[uint32], execGetVariableGlobal[uint64])
		}
		return selectByType(op.DataType,
			execSetVariableGlobal[int8], execSetVariableGlobal[int16], execSetVariableGlobal[int32], execSetVariableGlobal[int64],
			execSetVariableGlobal[uint8], execSetVariableGlobal[uint16], execSetVariableGlobal[uint32], execSetVariableGlobal[uint64])

	case VariableExternal:
		info, ok := tr.Runtime.Program().GlobalVariableByID(id)
		if !ok {
			return nil, fmt.Errorf("lemonscript: unknown external variable id %#x", id)
		}
		rop.Parameter = info.External.Address
		if isGet {
			return selectByType(op.DataType,
				execGetVariableExternal[int8], execGetVariableExternal[int16], execGetVariableExternal[int32], execGetVariableExternal[int64],
				execGetVariableExternal[uint8], execGetVariableExternal[uint16], execGetVariableExternal[uint32], execGetVariableExternal[uint64])
		}
		return selectByType(op.DataType,
			execSetVariableExternal[int8], execSetVariableExternal[int16], execSetVariableExternal[int32], execSetVariableExternal[int64],
			execSetVariableExternal[uint8], execSetVariableExternal[uint16], execSetVariableExternal[uint32], execSetVariableExternal[uint64])

	default:
		return nil, fmt.Errorf("lemonscript: unknown variable class for id %#x", id)
	}
}

// selectByType is the single reusable width/signedness dispatcher for
// opcodes whose eight per-type handlers are already fully formed funcs —
// the Go equivalent of the source's SELECT_EXEC_FUNC_BY_DATATYPE macro.
func selectByType(dt BaseType, i8, i16, i32, i64, u8, u16, u32, u64 ExecFunc) (ExecFunc, error) {
	switch dt {
	case TypeI8:
		return i8, nil
	case TypeI16:
		return i16, nil
	case TypeI32:
		return i32, nil
	case TypeI64:
		return i64, nil
	case TypeU8:
		return u8, nil
	case TypeU16:
		return u16, nil
	case TypeU32:
		return u32, nil
	case TypeU64, TypeIntConst:
		return u64, nil
	default:
		return nil, fmt.Errorf("lemonscript: unknown data type %v", dt)
	}
}

// selectCastType restricts CAST_VALUE's target to the narrow widths the
// compiler ever emits a cast-exec-type for (§4.3): casting to a 64-bit
// width is a no-op the compiler elides rather than emitting.
func selectCastType(dt BaseType) (ExecFunc, error) {
	switch dt {
	case TypeI8:
		return execCastValue[int8], nil
	case TypeI16:
		return execCastValue[int16], nil
	case TypeI32:
		return execCastValue[int32], nil
	case TypeU8:
		return execCastValue[uint8], nil
	case TypeU16:
		return execCastValue[uint16], nil
	case TypeU32:
		return execCastValue[uint32], nil
	default:
		return nil, fmt.Errorf("lemonscript: unknown cast-exec-type %v", dt)
	}
}

func dispatchBinary[T8, T16, T32, T64, TU8, TU16, TU32, TU64 Integer](
	dt BaseType,
	opI8 func(a, b T8) T8, opI16 func(a, b T16) T16, opI32 func(a, b T32) T32, opI64 func(a, b T64) T64,
	opU8 func(a, b TU8) TU8, opU16 func(a, b TU16) TU16, opU32 func(a, b TU32) TU32, opU64 func(a, b TU64) TU64,
) (ExecFunc, error) {
	return selectByType(dt,
		makeBinaryExec(opI8), makeBinaryExec(opI16), makeBinaryExec(opI32), makeBinaryExec(opI64),
		makeBinaryExec(opU8), makeBinaryExec(opU16), makeBinaryExec(opU32), makeBinaryExec(opU64))
}

func dispatchCompare[T8, T16, T32, T64, TU8, TU16, TU32, TU64 Integer](
	dt BaseType,
	opI8 func(a, b T8) bool, opI16 func(a, b T16) bool, opI32 func(a, b T32) bool, opI64 func(a, b T64) bool,
	opU8 func(a, b TU8) bool, opU16 func(a, b TU16) bool, opU32 func(a, b TU32) bool, opU64 func(a, b TU64) bool,
) (ExecFunc, error) {
	return selectByType(dt,
		makeCompareExec(opI8), makeCompareExec(opI16), makeCompareExec(opI32), makeCompareExec(opI64),
		makeCompareExec(opU8), makeCompareExec(opU16), makeCompareExec(opU32), makeCompareExec(opU64))
}

func dispatchUnary[T8, T16, T32, T64, TU8, TU16, TU32, TU64 Integer](
	dt BaseType,
	opI8 func(a T8) T8, opI16 func(a T16) T16, opI32 func(a T32) T32, opI64 func(a T64) T64,
	opU8 func(a TU8) TU8, opU16 func(a TU16) TU16, opU32 func(a TU32) TU32, opU64 func(a TU64) TU64,
) (ExecFunc, error) {
	return selectByType(dt,
		makeUnaryExec(opI8), makeUnaryExec(opI16), makeUnaryExec(opI32), makeUnaryExec(opI64),
		makeUnaryExec(opU8), makeUnaryExec(opU16), makeUnaryExec(opU32), makeUnaryExec(opU64))
}

// dispatchUnarySigned restricts dispatch to the four signed widths, for
// ARITHM_NEG.
func dispatchUnarySigned[T8, T16, T32, T64 Integer](
	dt BaseType,
	opI8 func(a T8) T8, opI16 func(a T16) T16, opI32 func(a T32) T32, opI64 func(a T64) T64,
) (ExecFunc, error) {
	switch dt {
	case TypeI8:
		return makeUnaryExec(opI8), nil
	case TypeI16:
		return makeUnaryExec(opI16), nil
	case TypeI32:
		return makeUnaryExec(opI32), nil
	case TypeI64:
		return makeUnaryExec(opI64), nil
	default:
		return nil, fmt.Errorf("lemonscript: unknown data type %v for ARITHM_NEG", dt)
	}
}
