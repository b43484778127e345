package lemonstd

import "testing"

func TestStrLenCountsBytes(t *testing.T) {
	rt := newFakeRuntime()
	ref := rt.AddString("hello")
	if got := StrLen(rt, ref.Hash); got != 5 {
		t.Fatalf("StrLen = %d, want 5", got)
	}
}

// TestStrLenCountsBytesNotCodepoints pins byte-offset semantics for
// multi-byte UTF-8 text: "é" alone is 2 bytes, not 1 codepoint.
func TestStrLenCountsBytesNotCodepoints(t *testing.T) {
	rt := newFakeRuntime()
	ref := rt.AddString("café")
	if got := StrLen(rt, ref.Hash); got != 5 {
		t.Fatalf("StrLen(%q) = %d, want 5 (3 ASCII bytes + 2-byte 'é')", "café", got)
	}
}

func TestGetCharIndexesBytesNotCodepoints(t *testing.T) {
	rt := newFakeRuntime()
	ref := rt.AddString("café")
	// "café" = 'c','a','f', then 'é' as the two-byte UTF-8 sequence
	// 0xC3, 0xA9 — index 3 and 4 must return those raw bytes, not a rune.
	if got := GetChar(rt, ref.Hash, 3); got != 0xC3 {
		t.Fatalf("GetChar(3) = %#x, want 0xc3", got)
	}
	if got := GetChar(rt, ref.Hash, 4); got != 0xA9 {
		t.Fatalf("GetChar(4) = %#x, want 0xa9", got)
	}
}

func TestGetSubStringSlicesByByteOffset(t *testing.T) {
	rt := newFakeRuntime()
	ref := rt.AddString("café latte")
	// "café " is 6 bytes ('c','a','f', 0xC3, 0xA9, ' '); the rest is "latte".
	subHash := GetSubString(rt, ref.Hash, 6, 100)
	fs, ok := rt.ResolveStringByKey(subHash)
	if !ok || fs.Value != "latte" {
		t.Fatalf("substring = %q, ok=%v, want %q", fs.Value, ok, "latte")
	}
}

func TestStrLenUnresolvedIsZero(t *testing.T) {
	rt := newFakeRuntime()
	if got := StrLen(rt, 0xDEAD); got != 0 {
		t.Fatalf("StrLen(unresolved) = %d, want 0", got)
	}
}

func TestGetCharOutOfRangeIsZero(t *testing.T) {
	rt := newFakeRuntime()
	ref := rt.AddString("hi")
	if got := GetChar(rt, ref.Hash, 5); got != 0 {
		t.Fatalf("GetChar(oob) = %d, want 0", got)
	}
	if got := GetChar(rt, ref.Hash, 0); got != uint64('h') {
		t.Fatalf("GetChar(0) = %d, want %d", got, 'h')
	}
}

func TestGetSubStringClampsToBounds(t *testing.T) {
	rt := newFakeRuntime()
	ref := rt.AddString("hello world")
	subHash := GetSubString(rt, ref.Hash, 6, 100)
	fs, ok := rt.ResolveStringByKey(subHash)
	if !ok || fs.Value != "world" {
		t.Fatalf("substring = %q, ok=%v, want %q", fs.Value, ok, "world")
	}
}

func TestGetStringFromHashPassesThrough(t *testing.T) {
	rt := newFakeRuntime()
	ref := rt.AddString("x")
	if got := GetStringFromHash(rt, ref.Hash); got != ref.Hash {
		t.Fatalf("GetStringFromHash = %d, want %d", got, ref.Hash)
	}
}
