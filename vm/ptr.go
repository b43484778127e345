package vm

import "unsafe"

// RuntimeOpcode's Parameter field is a union in the source interpreter: an
// inline uint64 for most opcodes, but a raw pointer for GLOBAL variable
// access (the Runtime hands back a stable *int64, per spec §6). These two
// helpers are the only place that pointer rides through the uint64 word;
// everywhere else Parameter is just data.
//
// The address sits in Parameter as a plain integer from translation until
// the executor converts it back, so the garbage collector does not treat
// it as a reference. This is safe only because the Runtime keeps the
// pointee reachable and at a fixed address for as long as any translated
// opcode references it (§5).

func ptrToParameter(p *int64) uint64 {
	return uint64(uintptr(unsafe.Pointer(p)))
}

func parameterToPtr(parameter uint64) *int64 {
	return (*int64)(unsafe.Pointer(uintptr(parameter)))
}
