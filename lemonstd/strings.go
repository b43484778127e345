package lemonstd

import "github.com/ultra-azu/sonic3air/vm"

// stringLength, stringGetCharacter and stringGetSubString back both the
// free functions strlen/getchar/substring and the `string` receiver
// methods length/getCharacter/getSubString named in §4.5 — the receiver
// form is purely a compiler-side naming convenience over the same Go
// bodies.

// stringLength, stringGetCharacter and stringGetSubString index by raw byte
// offset, not by Unicode codepoint — the source operates on a
// std::string_view, where .length() is a byte count, operator[] indexes a
// single byte, and .substr() slices by byte offset, and every other
// implementation of this VM agrees with that.

func stringLength(rt vm.Runtime, hash uint64) uint64 {
	ref := vm.ResolveStringRef(rt, hash)
	if !ref.IsValid() {
		return 0
	}
	return uint64(len(ref.String()))
}

// stringGetCharacter returns 0 on an out-of-range index or an
// unresolvable string (§4.5, §7 "recoverable at call site").
func stringGetCharacter(rt vm.Runtime, hash uint64, index int64) uint64 {
	ref := vm.ResolveStringRef(rt, hash)
	if !ref.IsValid() || index < 0 {
		return 0
	}
	s := ref.String()
	if int(index) >= len(s) {
		return 0
	}
	return uint64(s[index])
}

// stringGetSubString clamps start/length to the resolved string's bounds
// and interns the result, returning its hash.
func stringGetSubString(rt vm.Runtime, hash uint64, start, length int64) uint64 {
	ref := vm.ResolveStringRef(rt, hash)
	if !ref.IsValid() {
		return rt.AddString("").Hash
	}
	s := ref.String()
	n := int64(len(s))
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end := start + length
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return rt.AddString(s[start:end]).Hash
}

// getStringFromHash is a pass-through at the value level: a StringRef's
// runtime representation already *is* its hash, so the returned value
// equals the input. It looks the hash up in rt's string table but discards
// the result: the input is returned unchanged whether or not it resolves.
func getStringFromHash(rt vm.Runtime, hash uint64) uint64 {
	vm.ResolveStringRef(rt, hash)
	return hash
}
