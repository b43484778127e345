package vm

// LOCAL variable access: id is the translator-resolved local slot index,
// carried verbatim in Parameter.

func execGetVariableLocal[T Integer](cf *ControlFlowState, parameter uint64) {
	id := uint32(parameter)
	cf.Push(widen(narrow[T](cf.ReadLocal(id))))
}

func execSetVariableLocal[T Integer](cf *ControlFlowState, parameter uint64) {
	id := uint32(parameter)
	v := narrow[T](cf.Pop())
	cf.WriteLocal(id, widen(v))
}

// USER variable access: unlike GLOBAL/EXTERNAL this is never resolved at
// translation time. The accessor lives behind the Program, which may be
// backed by storage that moves, so every access re-resolves through
// GlobalVariableByID (§3: only GLOBAL/EXTERNAL get a translation-time
// resolved address).

func execGetVariableUser[T Integer](cf *ControlFlowState, parameter uint64) {
	id := uint32(parameter)
	info, _ := cf.Program().GlobalVariableByID(id)
	cf.Push(widen(narrow[T](uint64(info.User.GetValue()))))
}

func execSetVariableUser[T Integer](cf *ControlFlowState, parameter uint64) {
	id := uint32(parameter)
	info, _ := cf.Program().GlobalVariableByID(id)
	v := narrow[T](cf.Pop())
	info.User.SetValue(int64(widen(v)))
}

// GLOBAL variable access: parameter carries the stable *int64 the Runtime
// handed back at translation time (§3, §6), round-tripped through
// ptrToParameter/parameterToPtr.

func execGetVariableGlobal[T Integer](cf *ControlFlowState, parameter uint64) {
	ptr := parameterToPtr(parameter)
	cf.Push(widen(narrow[T](uint64(*ptr))))
}

func execSetVariableGlobal[T Integer](cf *ControlFlowState, parameter uint64) {
	ptr := parameterToPtr(parameter)
	v := narrow[T](cf.Pop())
	*ptr = int64(widen(v))
}

// EXTERNAL variable access: parameter carries the resolved host address;
// the declared byte width is baked in by which T the translator bound.

func execGetVariableExternal[T Integer](cf *ControlFlowState, parameter uint64) {
	raw := readMemoryWidth(cf.Host, parameter, byteWidth[T]())
	cf.Push(widen(narrow[T](raw)))
}

func execSetVariableExternal[T Integer](cf *ControlFlowState, parameter uint64) {
	v := narrow[T](cf.Pop())
	writeMemoryWidth(cf.Host, parameter, byteWidth[T](), widen(v))
}
