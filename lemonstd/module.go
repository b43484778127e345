package lemonstd

import "github.com/ultra-azu/sonic3air/vm"

// Flags mirror the two registration bits named in spec §6.
type Flags uint8

const (
	FlagAllowInlineExecution Flags = 1 << 0
	FlagCompileTimeConstant  Flags = 1 << 1
)

// NativeFunc is one registered overload. Name collisions are expected and
// intentional: min/max/clamp each register six overloads, one per width,
// the same way StandardLibrary.cpp calls addNativeFunction("min", ...)
// six times with six different template instantiations. Resolving which
// overload a call site binds to is the compiler's job (out of scope
// here); this module only supplies the bodies and their declared types.
type NativeFunc struct {
	Name     string
	DataType vm.BaseType // zero value (TypeU8) for untyped entries
	Flags    Flags
}

// Functions is the complete registration table for this module, grounded
// on StandardLibrary.cpp's registerModule body (§4.5).
var Functions = []NativeFunc{
	{Name: "min", DataType: vm.TypeI8, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "min", DataType: vm.TypeU8, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "min", DataType: vm.TypeI16, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "min", DataType: vm.TypeU16, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "min", DataType: vm.TypeI32, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "min", DataType: vm.TypeU32, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},

	{Name: "max", DataType: vm.TypeI8, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "max", DataType: vm.TypeU8, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "max", DataType: vm.TypeI16, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "max", DataType: vm.TypeU16, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "max", DataType: vm.TypeI32, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "max", DataType: vm.TypeU32, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},

	{Name: "clamp", DataType: vm.TypeI8, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "clamp", DataType: vm.TypeU8, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "clamp", DataType: vm.TypeI16, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "clamp", DataType: vm.TypeU16, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "clamp", DataType: vm.TypeI32, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "clamp", DataType: vm.TypeU32, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},

	{Name: "abs", DataType: vm.TypeI8, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "abs", DataType: vm.TypeI16, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "abs", DataType: vm.TypeI32, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},

	{Name: "sqrt", DataType: vm.TypeU32, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},

	{Name: "sin_s16", DataType: vm.TypeI16, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "sin_s32", DataType: vm.TypeI32, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "cos_s16", DataType: vm.TypeI16, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},
	{Name: "cos_s32", DataType: vm.TypeI32, Flags: FlagAllowInlineExecution | FlagCompileTimeConstant},

	// stringformat is registered once per arity (1..8) in the source; the
	// Go body is a single variadic function (see StringFormat), so one
	// table entry stands in for all eight overloads.
	{Name: "stringformat", Flags: FlagAllowInlineExecution},

	{Name: "strlen", Flags: FlagAllowInlineExecution},
	{Name: "getchar", Flags: FlagAllowInlineExecution},
	{Name: "substring", Flags: FlagAllowInlineExecution},
	{Name: "getStringFromHash", Flags: FlagAllowInlineExecution},
}

// StringFormat is the exported entry point bound under the "stringformat"
// registration for every arity; the compiler's job is matching call-site
// argument count, not this package's.
func StringFormat(cf *vm.ControlFlowState, fmtHash uint64, args []uint64) uint64 {
	return stringFormat(cf, fmtHash, args)
}

// Min, Max and Clamp are exported so a module loader can bind them
// against the typed table entries above without reaching into this
// package's generic internals.
func Min[T narrow](a, b T) T        { return minOf(a, b) }
func Max[T narrow](a, b T) T        { return maxOf(a, b) }
func Clamp[T narrow](x, lo, hi T) T { return clampOf(x, lo, hi) }

func AbsI8(a int8) uint8   { return absI8(a) }
func AbsI16(a int16) uint16 { return absI16(a) }
func AbsI32(a int32) uint32 { return absI32(a) }

func SqrtU32(a uint32) uint32 { return sqrtU32(a) }

func SinS16(x int16) int16 { return sinS16(x) }
func CosS16(x int16) int16 { return cosS16(x) }
func SinS32(x int32) int32 { return sinS32(x) }
func CosS32(x int32) int32 { return cosS32(x) }

// StrLen, GetChar, GetSubString and GetStringFromHash are the exported
// wiring for the free functions and the `string` receiver methods named
// in §4.5 — both surfaces call the same bodies.
func StrLen(rt vm.Runtime, hash uint64) uint64 { return stringLength(rt, hash) }
func GetChar(rt vm.Runtime, hash uint64, index int64) uint64 {
	return stringGetCharacter(rt, hash, index)
}
func GetSubString(rt vm.Runtime, hash uint64, start, length int64) uint64 {
	return stringGetSubString(rt, hash, start, length)
}
func GetStringFromHash(rt vm.Runtime, hash uint64) uint64 { return getStringFromHash(rt, hash) }
