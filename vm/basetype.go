package vm

// BaseType is the static data type a bytecode opcode is specialized over.
// The low bits pick a width class; SignedFlag distinguishes the signed
// counterpart of an unsigned width, mirroring the source compiler's
// "OR 0x08 into the unsigned code" convention used for ARITHM_NEG.
type BaseType uint8

const SignedFlag BaseType = 0x08

const (
	TypeU8  BaseType = 0x00
	TypeU16 BaseType = 0x01
	TypeU32 BaseType = 0x02
	TypeU64 BaseType = 0x03

	TypeI8  = TypeU8 | SignedFlag
	TypeI16 = TypeU16 | SignedFlag
	TypeI32 = TypeU32 | SignedFlag
	TypeI64 = TypeU64 | SignedFlag

	// TypeIntConst has no fixed width of its own: it widens losslessly to
	// 64 bits, and to i64 wherever a signed interpretation is required.
	TypeIntConst BaseType = 0x10
)

// Signed returns the signed counterpart of an unsigned base type.
func (t BaseType) Signed() BaseType {
	return t | SignedFlag
}

// IsSigned reports whether t is one of the signed integer widths.
func (t BaseType) IsSigned() bool {
	return t != TypeIntConst && t&SignedFlag != 0
}

// Bytes returns the width of t in bytes. TypeIntConst reports 8, since it
// always widens losslessly to 64 bits.
func (t BaseType) Bytes() int {
	switch t &^ SignedFlag {
	case TypeU8:
		return 1
	case TypeU16:
		return 2
	case TypeU32:
		return 4
	case TypeU64:
		return 8
	}
	return 8
}

func (t BaseType) String() string {
	switch t {
	case TypeU8:
		return "u8"
	case TypeU16:
		return "u16"
	case TypeU32:
		return "u32"
	case TypeU64:
		return "u64"
	case TypeI8:
		return "i8"
	case TypeI16:
		return "i16"
	case TypeI32:
		return "i32"
	case TypeI64:
		return "i64"
	case TypeIntConst:
		return "int_const"
	default:
		return "base_type(?)"
	}
}
