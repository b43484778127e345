// Package lemonstd is the standard library bound into lemonscript
// programs: deterministic math primitives, string accessors and the
// stringformat interpreter (spec §4.5). It is the wiring plus the
// format-string interpreter — the native Go bodies these functions call
// into, and the registration metadata a compiler/module-loader needs to
// expose them to scripts. Parsing and overload resolution at call sites
// are the compiler's job, not this package's.
package lemonstd

import "math"

// narrow is the six widths min/max/clamp/abs operate over (§4.5).
type narrow interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32
}

func minOf[T narrow](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxOf[T narrow](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// clampOf implements clamp(x, lo, hi) = min(max(x, lo), hi) (§4.5).
func clampOf[T narrow](x, lo, hi T) T {
	return minOf(maxOf(x, lo), hi)
}

// absI8/16/32 map each signed width to its unsigned counterpart, widening
// through the next size up before negating so int8(-128) (etc.) doesn't
// overflow on the way.
func absI8(a int8) uint8 {
	if a >= 0 {
		return uint8(a)
	}
	return uint8(-int16(a))
}

func absI16(a int16) uint16 {
	if a >= 0 {
		return uint16(a)
	}
	return uint16(-int32(a))
}

func absI32(a int32) uint32 {
	if a >= 0 {
		return uint32(a)
	}
	return uint32(-int64(a))
}

// sqrtU32 is integer square root via float conversion, round-toward-zero by
// Go's truncating float-to-int conversion. The source narrows to a 32-bit
// float before calling into libm ((uint32)std::sqrt((float)a)); narrowing
// through float32 here first reproduces that rounding instead of sqrt-ing
// the full-precision uint32 value (§4.5).
func sqrtU32(a uint32) uint32 {
	return uint32(math.Sqrt(float64(float32(a))))
}

const (
	fixedScale16 = 0x100
	fixedScale32 = 0x10000
)

// trigFixed mirrors roundToInt(std::sin((float)x / (float)scale) * (float)scale):
// the angle and the trig result both get narrowed through float32 before the
// final multiply, the same double-rounding the source's single-precision
// libm calls impose.
func trigFixed(x float64, scale float32, trig func(float64) float64) float64 {
	angle := float64(float32(x) / scale)
	return float64(float32(trig(angle)) * scale)
}

func sinS16(x int16) int16 {
	return int16(math.Round(trigFixed(float64(x), fixedScale16, math.Sin)))
}

func cosS16(x int16) int16 {
	return int16(math.Round(trigFixed(float64(x), fixedScale16, math.Cos)))
}

func sinS32(x int32) int32 {
	return int32(math.Round(trigFixed(float64(x), fixedScale32, math.Sin)))
}

func cosS32(x int32) int32 {
	return int32(math.Round(trigFixed(float64(x), fixedScale32, math.Cos)))
}
