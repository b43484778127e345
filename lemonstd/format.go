package lemonstd

import (
	"strconv"
	"strings"

	"github.com/ultra-azu/sonic3air/vm"
)

// stringFormat implements the stringformat grammar (§4.5). It reuses
// cf.FormatScratch across calls on the same execution context (§5, §9);
// callers must not start a second stringformat on the same context before
// this one returns, same constraint the source places on its static
// buffer.
//
// %d renders the 64-bit argument as unsigned decimal, not signed: see the
// resolved-open-question note carried in this module's design notes —
// the original format-buffer code never casts the argument to a signed
// type before printing it.
func stringFormat(cf *vm.ControlFlowState, fmtHash uint64, args []uint64) uint64 {
	rt := cf.Runtime
	if rt == nil {
		panic("lemonscript: stringformat called on a ControlFlowState with no Runtime")
	}

	fmtRef := vm.ResolveStringRef(rt, fmtHash)
	if !fmtRef.IsValid() {
		return rt.AddString("").Hash
	}
	pattern := fmtRef.String()

	buf := cf.FormatScratch[:0]
	argIdx := 0
	i := 0
	for i < len(pattern) {
		if pattern[i] != '%' {
			buf = append(buf, pattern[i])
			i++
			continue
		}

		if argIdx >= len(args) {
			buf = append(buf, pattern[i:]...)
			i = len(pattern)
			break
		}

		j := i + 1
		if j >= len(pattern) {
			buf = append(buf, '%')
			i++
			continue
		}

		switch c := pattern[j]; {
		case c == '%':
			buf = append(buf, '%')
			i = j + 1

		case c == 's':
			hash := args[argIdx]
			argIdx++
			ref := vm.ResolveStringRef(rt, hash)
			if ref.IsValid() {
				buf = append(buf, ref.String()...)
			} else {
				buf = append(buf, "<?>"...)
			}
			i = j + 1

		case c == 'd' || c == 'b' || c == 'x':
			val := args[argIdx]
			argIdx++
			buf = appendNumeric(buf, c, val, 0)
			i = j + 1

		case c == '0':
			consumed, ok := parseWidthDirective(pattern, j)
			if !ok {
				buf = append(buf, '%')
				i++
				continue
			}
			val := args[argIdx]
			argIdx++
			buf = appendNumeric(buf, pattern[j+consumed-1], val, widthOf(pattern, j, consumed))
			i = j + consumed

		default:
			buf = append(buf, '%')
			i++
		}
	}

	cf.FormatScratch = buf
	return rt.AddString(string(buf)).Hash
}

// parseWidthDirective parses "0W" or "0WW" followed by one of d|b|x,
// starting at j (the position of the '0' right after '%'). It returns how
// many bytes past j the whole directive spans (including the '0', the
// width digits and the conversion character) and whether the directive
// was well-formed.
func parseWidthDirective(pattern string, j int) (consumed int, ok bool) {
	k := j + 1
	digitsStart := k
	if k >= len(pattern) || pattern[k] < '1' || pattern[k] > '9' {
		// The leading width digit can't be '0': the source only recognizes
		// %0[1-9]d and %0[1-9][0-9]d, never a zero width.
		return 0, false
	}
	k++
	for k < len(pattern) && k-digitsStart < 2 && pattern[k] >= '0' && pattern[k] <= '9' {
		k++
	}
	if k >= len(pattern) {
		return 0, false
	}
	switch pattern[k] {
	case 'd', 'b', 'x':
	default:
		return 0, false
	}
	return (k - j) + 1, true
}

func widthOf(pattern string, j, consumed int) int {
	digits := pattern[j+1 : j+consumed-1]
	w, _ := strconv.Atoi(digits)
	return w
}

func appendNumeric(buf []byte, conv byte, val uint64, minDigits int) []byte {
	var s string
	switch conv {
	case 'd':
		s = strconv.FormatUint(val, 10)
	case 'b':
		s = strconv.FormatUint(val, 2)
	default: // 'x'
		s = strconv.FormatUint(val, 16)
	}
	if len(s) < minDigits {
		s = strings.Repeat("0", minDigits-len(s)) + s
	}
	return append(buf, s...)
}
