package lemonstd

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ultra-azu/sonic3air/vm"
)

type fakeProgram struct{}

func (fakeProgram) GlobalVariableByID(id uint32) (vm.GlobalVariableInfo, bool) {
	return vm.GlobalVariableInfo{}, false
}

type fakeRuntime struct {
	prog    vm.Program
	strings map[uint64]vm.FlyweightString
	next    uint64
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{prog: fakeProgram{}, strings: map[uint64]vm.FlyweightString{}, next: 1}
}

func (r *fakeRuntime) Program() vm.Program                       { return r.prog }
func (r *fakeRuntime) AccessGlobalVariableValue(id uint32) *int64 { return new(int64) }
func (r *fakeRuntime) ResolveStringByKey(hash uint64) (vm.FlyweightString, bool) {
	fs, ok := r.strings[hash]
	return fs, ok
}
func (r *fakeRuntime) AddString(s string) vm.FlyweightString {
	h := r.next
	r.next++
	fs := vm.FlyweightString{Hash: h, Value: s}
	r.strings[h] = fs
	return fs
}

func newCF(rt vm.Runtime) *vm.ControlFlowState {
	return vm.NewControlFlowState(rt, nil, vm.DefaultConfig)
}

func TestStringFormatPaddedDecimal(t *testing.T) {
	rt := newFakeRuntime()
	cf := newCF(rt)
	fmtRef := rt.AddString("Score: %05d pts")
	got := vm.ResolveStringRef(rt, StringFormat(cf, fmtRef.Hash, []uint64{42})).String()
	if diff := cmp.Diff("Score: 00042 pts", got); diff != "" {
		t.Fatalf("stringformat output mismatch (-want +got):\n%s", diff)
	}
}

func TestStringFormatHexAndResolvedString(t *testing.T) {
	rt := newFakeRuntime()
	cf := newCF(rt)
	xRef := rt.AddString("X")
	fmtRef := rt.AddString("%x-%s")
	got := vm.ResolveStringRef(rt, StringFormat(cf, fmtRef.Hash, []uint64{0xABCD, xRef.Hash})).String()
	if got != "abcd-X" {
		t.Fatalf("got %q", got)
	}
}

func TestStringFormatUnresolvedStringArgument(t *testing.T) {
	rt := newFakeRuntime()
	cf := newCF(rt)
	fmtRef := rt.AddString("%x-%s")
	got := vm.ResolveStringRef(rt, StringFormat(cf, fmtRef.Hash, []uint64{0xABCD, 0xDEAD})).String()
	if got != "abcd-<?>" {
		t.Fatalf("got %q", got)
	}
}

func TestStringFormatArgumentExhaustionKeepsTailVerbatim(t *testing.T) {
	rt := newFakeRuntime()
	cf := newCF(rt)
	fmtRef := rt.AddString("%d and %d")
	got := vm.ResolveStringRef(rt, StringFormat(cf, fmtRef.Hash, []uint64{7})).String()
	if got != "7 and %d" {
		t.Fatalf("got %q", got)
	}
}

func TestStringFormatRejectsZeroLeadingWidth(t *testing.T) {
	rt := newFakeRuntime()
	cf := newCF(rt)
	fmtRef := rt.AddString("%00d")
	got := vm.ResolveStringRef(rt, StringFormat(cf, fmtRef.Hash, []uint64{5})).String()
	if got != "%00d" {
		t.Fatalf("got %q, want the malformed directive echoed back verbatim", got)
	}
}

func TestStringFormatUnsignedDecimal(t *testing.T) {
	rt := newFakeRuntime()
	cf := newCF(rt)
	fmtRef := rt.AddString("%d")
	got := vm.ResolveStringRef(rt, StringFormat(cf, fmtRef.Hash, []uint64{^uint64(0)})).String()
	if got != "18446744073709551615" {
		t.Fatalf("got %q, want unsigned decimal rendering of all-ones", got)
	}
}
