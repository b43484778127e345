package vm

// HostMemory is the embedder-supplied linear memory adapter consumed by
// READ_MEMORY/WRITE_MEMORY and by EXTERNAL variable access (GLOBAL
// variables go through the Runtime's stable *int64 instead). The
// adapter owns endianness and may trap on invalid addresses; a trap is
// fatal and propagates out of the executor that triggered it (§4.1, §7).
type HostMemory interface {
	ReadU8(addr uint64) uint8
	ReadU16(addr uint64) uint16
	ReadU32(addr uint64) uint32
	ReadU64(addr uint64) uint64

	WriteU8(addr uint64, v uint8)
	WriteU16(addr uint64, v uint16)
	WriteU32(addr uint64, v uint32)
	WriteU64(addr uint64, v uint64)
}

// readMemoryWidth reads an unsigned value of the given byte width from
// host at addr, returning it already widened to uint64 for storage on the
// value stack.
func readMemoryWidth(host HostMemory, addr uint64, width int) uint64 {
	switch width {
	case 1:
		return uint64(host.ReadU8(addr))
	case 2:
		return uint64(host.ReadU16(addr))
	case 4:
		return uint64(host.ReadU32(addr))
	default:
		return host.ReadU64(addr)
	}
}

// writeMemoryWidth truncates value to the given byte width and writes it
// to host at addr.
func writeMemoryWidth(host HostMemory, addr uint64, width int, value uint64) {
	switch width {
	case 1:
		host.WriteU8(addr, uint8(value))
	case 2:
		host.WriteU16(addr, uint16(value))
	case 4:
		host.WriteU32(addr, uint32(value))
	default:
		host.WriteU64(addr, value)
	}
}
