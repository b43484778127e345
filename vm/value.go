package vm

// Integer is the set of concrete widths/signedness the translator
// specializes executors over. Every generic executor in this package is
// instantiated once per member of this set, the Go equivalent of the
// source interpreter's per-T template instantiation (§9 Design Notes).
type Integer interface {
	int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64
}

// narrow reinterprets a 64-bit stack cell as T: exactly what CAST_VALUE<T>
// and every typed read (variable load, memory load, binary-op operand)
// does to pull a narrow value out of the universal 64-bit cell.
func narrow[T Integer](cell uint64) T {
	return T(cell)
}

// widen stores a narrow T back into a 64-bit cell, sign-extending for
// signed T and zero-extending for unsigned T — the store side of §3's
// "narrower types are produced by casting on read and by zero/sign-extended
// store". Converting through int64 is what gives us this for free: Go's
// conversion rules sign-extend from a signed source and zero-extend from
// an unsigned one, and the uint64->int64->uint64 round trip for 64-bit
// unsigned values is a bit-identical no-op.
func widen[T Integer](v T) uint64 {
	return uint64(int64(v))
}

// bitWidth returns the bit width of T, used for shift-count masking
// (§4.3: masked by "sizeof(T)*8 - 1", not the operand's stored width).
func bitWidth[T Integer]() uint {
	var z T
	switch any(z).(type) {
	case int8, uint8:
		return 8
	case int16, uint16:
		return 16
	case int32, uint32:
		return 32
	default:
		return 64
	}
}

// byteWidth is bitWidth in bytes, used wherever a HostMemory access needs
// the declared width of T rather than its bit count.
func byteWidth[T Integer]() int {
	return int(bitWidth[T]() / 8)
}
