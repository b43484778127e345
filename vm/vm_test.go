package vm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// translatedShape is the comparable projection of a RuntimeOpcode used in
// tests: Handler is a func value and cmp refuses to diff those directly.
type translatedShape struct {
	OpcodeType        OpcodeType
	Flags             RuntimeFlags
	SuccessiveHandled uint8
}

func shapeOf(rop RuntimeOpcode) translatedShape {
	return translatedShape{OpcodeType: rop.OpcodeType, Flags: rop.Flags, SuccessiveHandled: rop.SuccessiveHandled}
}

// fakeHostMemory is a flat byte-addressed little-endian buffer, enough to
// exercise READ_MEMORY/WRITE_MEMORY and EXTERNAL variable access in tests.
type fakeHostMemory struct {
	buf [256]byte
}

func (h *fakeHostMemory) ReadU8(addr uint64) uint8   { return h.buf[addr] }
func (h *fakeHostMemory) ReadU16(addr uint64) uint16 {
	return uint16(h.buf[addr]) | uint16(h.buf[addr+1])<<8
}
func (h *fakeHostMemory) ReadU32(addr uint64) uint32 {
	var v uint32
	for i := 0; i < 4; i++ {
		v |= uint32(h.buf[addr+uint64(i)]) << (8 * i)
	}
	return v
}
func (h *fakeHostMemory) ReadU64(addr uint64) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(h.buf[addr+uint64(i)]) << (8 * i)
	}
	return v
}
func (h *fakeHostMemory) WriteU8(addr uint64, v uint8) { h.buf[addr] = v }
func (h *fakeHostMemory) WriteU16(addr uint64, v uint16) {
	h.buf[addr] = byte(v)
	h.buf[addr+1] = byte(v >> 8)
}
func (h *fakeHostMemory) WriteU32(addr uint64, v uint32) {
	for i := 0; i < 4; i++ {
		h.buf[addr+uint64(i)] = byte(v >> (8 * i))
	}
}
func (h *fakeHostMemory) WriteU64(addr uint64, v uint64) {
	for i := 0; i < 8; i++ {
		h.buf[addr+uint64(i)] = byte(v >> (8 * i))
	}
}

type fakeProgram struct {
	globals map[uint32]GlobalVariableInfo
}

func (p *fakeProgram) GlobalVariableByID(id uint32) (GlobalVariableInfo, bool) {
	info, ok := p.globals[id]
	return info, ok
}

type fakeRuntime struct {
	prog    Program
	globals map[uint32]*int64
	strings map[uint64]FlyweightString
}

func (r *fakeRuntime) Program() Program { return r.prog }
func (r *fakeRuntime) AccessGlobalVariableValue(id uint32) *int64 {
	p, ok := r.globals[id]
	if !ok {
		p = new(int64)
		r.globals[id] = p
	}
	return p
}
func (r *fakeRuntime) ResolveStringByKey(hash uint64) (FlyweightString, bool) {
	fs, ok := r.strings[hash]
	return fs, ok
}
func (r *fakeRuntime) AddString(s string) FlyweightString {
	fs := FlyweightString{Hash: uint64(len(r.strings)) + 1, Value: s}
	r.strings[fs.Hash] = fs
	return fs
}

func newFakeRuntime() *fakeRuntime {
	return &fakeRuntime{
		prog:    &fakeProgram{globals: map[uint32]GlobalVariableInfo{}},
		globals: map[uint32]*int64{},
		strings: map[uint64]FlyweightString{},
	}
}

// run translates and executes a fixed sequence of static opcodes against
// a fresh ControlFlowState and returns the final stack contents.
func run(t *testing.T, rt Runtime, ops []StaticOpcode) *ControlFlowState {
	t.Helper()
	host := &fakeHostMemory{}
	cf := NewControlFlowState(rt, host, DefaultConfig)
	tr := NewTranslator(rt)
	for i := 0; i < len(ops); {
		rop, consumed, err := tr.Translate(ops, i)
		if err != nil {
			t.Fatalf("translate op %d: %v", i, err)
		}
		rop.Run(cf)
		i += consumed
	}
	return cf
}

func TestArithmSub(t *testing.T) {
	// push_const 7; push_const 3; ARITHM_SUB<i32> -> 4 (§8 scenario 1)
	rt := newFakeRuntime()
	cf := run(t, rt, []StaticOpcode{
		{Type: OpPushConstant, Parameter: 7},
		{Type: OpPushConstant, Parameter: 3},
		{Type: OpArithmSub, DataType: TypeI32},
	})
	if cf.SP != 1 {
		t.Fatalf("sp = %d, want 1", cf.SP)
	}
	if got := int32(*cf.Top()); got != 4 {
		t.Fatalf("top = %d, want 4", got)
	}
}

func TestArithmDivByZero(t *testing.T) {
	// push_const 10; push_const 0; ARITHM_DIV<i32> -> 0 (§8 scenario 2)
	rt := newFakeRuntime()
	cf := run(t, rt, []StaticOpcode{
		{Type: OpPushConstant, Parameter: 10},
		{Type: OpPushConstant, Parameter: 0},
		{Type: OpArithmDiv, DataType: TypeI32},
	})
	if got := *cf.Top(); got != 0 {
		t.Fatalf("top = %d, want 0", got)
	}
}

func TestCastValueNarrowThenWiden(t *testing.T) {
	// push_const 0xFF; CAST_VALUE<i8>; CAST_VALUE<i32> -> -1 (§8 scenario 3)
	rt := newFakeRuntime()
	cf := run(t, rt, []StaticOpcode{
		{Type: OpPushConstant, Parameter: 0xFF},
		{Type: OpCastValue, DataType: TypeI8},
		{Type: OpCastValue, DataType: TypeI32},
	})
	if got := int32(*cf.Top()); got != -1 {
		t.Fatalf("top = %d, want -1", got)
	}
}

func TestArithmNegOnIntConstWidensToI64(t *testing.T) {
	// push_const 7; ARITHM_NEG<int_const> -> -7, widened through i64 rather
	// than through .Signed() (int_const has no signed/unsigned pair).
	rt := newFakeRuntime()
	cf := run(t, rt, []StaticOpcode{
		{Type: OpPushConstant, Parameter: 7},
		{Type: OpArithmNeg, DataType: TypeIntConst},
	})
	if got := int64(*cf.Top()); got != -7 {
		t.Fatalf("top = %d, want -7", got)
	}
}

func TestArithmShlMasksShiftCount(t *testing.T) {
	// push_const 5; push_const 35; ARITHM_SHL<u32> -> 40 (35 masked to 3)
	rt := newFakeRuntime()
	cf := run(t, rt, []StaticOpcode{
		{Type: OpPushConstant, Parameter: 5},
		{Type: OpPushConstant, Parameter: 35},
		{Type: OpArithmShl, DataType: TypeU32},
	})
	if got := uint32(*cf.Top()); got != 40 {
		t.Fatalf("top = %d, want 40", got)
	}
}

func TestMoveStackGrowZerosThenShrinkRestores(t *testing.T) {
	rt := newFakeRuntime()
	host := &fakeHostMemory{}
	cf := NewControlFlowState(rt, host, DefaultConfig)
	cf.Push(111)
	spBefore := cf.SP

	tr := NewTranslator(rt)
	ops := []StaticOpcode{{Type: OpMoveStack, Parameter: 3}}
	rop, _, err := tr.Translate(ops, 0)
	if err != nil {
		t.Fatal(err)
	}
	rop.Run(cf)
	for i := 0; i < 3; i++ {
		if v := cf.ValueStack[spBefore+i]; v != 0 {
			t.Fatalf("new cell %d = %d, want 0", i, v)
		}
	}

	ops = []StaticOpcode{{Type: OpMoveStack, Parameter: -3}}
	rop, _, err = tr.Translate(ops, 0)
	if err != nil {
		t.Fatal(err)
	}
	rop.Run(cf)
	if cf.SP != spBefore {
		t.Fatalf("sp = %d, want %d", cf.SP, spBefore)
	}
}

func TestGlobalVariableRoundTrip(t *testing.T) {
	rt := newFakeRuntime()
	const globalID = uint32(VariableGlobal) << 28
	cf := run(t, rt, []StaticOpcode{
		{Type: OpPushConstant, Parameter: 99},
		{Type: OpSetVariableValue, DataType: TypeI32, Parameter: int64(globalID)},
		{Type: OpGetVariableValue, DataType: TypeI32, Parameter: int64(globalID)},
	})
	if got := int32(*cf.Top()); got != 99 {
		t.Fatalf("top = %d, want 99", got)
	}
	if *rt.AccessGlobalVariableValue(globalID) != 99 {
		t.Fatalf("backing global = %d, want 99", *rt.AccessGlobalVariableValue(globalID))
	}
}

// fakeUserVariable is a simple boxed-int64 UserVariable for tests.
type fakeUserVariable struct{ v int64 }

func (u *fakeUserVariable) GetValue() int64  { return u.v }
func (u *fakeUserVariable) SetValue(v int64) { u.v = v }

func TestUserVariableRoundTrip(t *testing.T) {
	rt := newFakeRuntime()
	const userID = uint32(VariableUser) << 28
	prog := rt.prog.(*fakeProgram)
	user := &fakeUserVariable{}
	prog.globals[userID] = GlobalVariableInfo{Class: VariableUser, DataType: TypeI32, User: user}

	cf := run(t, rt, []StaticOpcode{
		{Type: OpPushConstant, Parameter: 77},
		{Type: OpSetVariableValue, DataType: TypeI32, Parameter: int64(userID)},
		{Type: OpGetVariableValue, DataType: TypeI32, Parameter: int64(userID)},
	})
	if got := int32(*cf.Top()); got != 77 {
		t.Fatalf("top = %d, want 77", got)
	}
	if user.v != 77 {
		t.Fatalf("backing user variable = %d, want 77", user.v)
	}
}

func TestExternalVariableRoundTrip(t *testing.T) {
	rt := newFakeRuntime()
	const externalID = uint32(VariableExternal) << 28
	prog := rt.prog.(*fakeProgram)
	prog.globals[externalID] = GlobalVariableInfo{
		Class:    VariableExternal,
		DataType: TypeU16,
		External: ExternalVariable{Address: 8, ByteWidth: 2},
	}

	cf := run(t, rt, []StaticOpcode{
		{Type: OpPushConstant, Parameter: 4242},
		{Type: OpSetVariableValue, DataType: TypeU16, Parameter: int64(externalID)},
		{Type: OpGetVariableValue, DataType: TypeU16, Parameter: int64(externalID)},
	})
	if got := uint16(*cf.Top()); got != 4242 {
		t.Fatalf("top = %d, want 4242", got)
	}
}

func TestWriteMemoryNormal(t *testing.T) {
	rt := newFakeRuntime()
	host := &fakeHostMemory{}
	cf := NewControlFlowState(rt, host, DefaultConfig)
	tr := NewTranslator(rt)

	// push value, push address, WRITE_MEMORY<u32> normal (Parameter: 0):
	// address on top is consumed, value survives as the new top.
	ops := []StaticOpcode{
		{Type: OpPushConstant, Parameter: 0x1234},
		{Type: OpPushConstant, Parameter: 16},
		{Type: OpWriteMemory, DataType: TypeU32, Parameter: 0},
	}
	for i := 0; i < len(ops); {
		rop, consumed, err := tr.Translate(ops, i)
		if err != nil {
			t.Fatal(err)
		}
		rop.Run(cf)
		i += consumed
	}
	if cf.SP != 1 {
		t.Fatalf("sp after normal write = %d, want 1", cf.SP)
	}
	if got := uint32(*cf.Top()); got != 0x1234 {
		t.Fatalf("top = %#x, want 0x1234 (value survives)", got)
	}
	if host.ReadU32(16) != 0x1234 {
		t.Fatalf("memory at 16 = %#x, want 0x1234", host.ReadU32(16))
	}
}

func TestWriteMemoryExchanged(t *testing.T) {
	rt := newFakeRuntime()
	host := &fakeHostMemory{}
	cf := NewControlFlowState(rt, host, DefaultConfig)
	tr := NewTranslator(rt)

	// push address, push value, WRITE_MEMORY<u32> exchanged (Parameter: 1):
	// value on top is popped, address underneath is read (not consumed),
	// then value is written back as the new top.
	ops := []StaticOpcode{
		{Type: OpPushConstant, Parameter: 16},
		{Type: OpPushConstant, Parameter: 0x5678},
		{Type: OpWriteMemory, DataType: TypeU32, Parameter: 1},
	}
	for i := 0; i < len(ops); {
		rop, consumed, err := tr.Translate(ops, i)
		if err != nil {
			t.Fatal(err)
		}
		rop.Run(cf)
		i += consumed
	}
	if cf.SP != 1 {
		t.Fatalf("sp after exchanged write = %d, want 1", cf.SP)
	}
	if got := uint32(*cf.Top()); got != 0x5678 {
		t.Fatalf("top = %#x, want 0x5678 (value survives)", got)
	}
	if host.ReadU32(16) != 0x5678 {
		t.Fatalf("memory at 16 = %#x, want 0x5678", host.ReadU32(16))
	}
}

func TestReadMemoryConsuming(t *testing.T) {
	rt := newFakeRuntime()
	host := &fakeHostMemory{}
	cf := NewControlFlowState(rt, host, DefaultConfig)
	tr := NewTranslator(rt)

	ops := []StaticOpcode{
		{Type: OpPushConstant, Parameter: 0x1234},
		{Type: OpPushConstant, Parameter: 16},
		{Type: OpWriteMemory, DataType: TypeU32, Parameter: 0},
	}
	for i := 0; i < len(ops); {
		rop, consumed, err := tr.Translate(ops, i)
		if err != nil {
			t.Fatal(err)
		}
		rop.Run(cf)
		i += consumed
	}

	// READ_MEMORY<u32> consuming: push address, read in place.
	ops = []StaticOpcode{
		{Type: OpPushConstant, Parameter: 16},
		{Type: OpReadMemory, DataType: TypeU32, Parameter: 0},
	}
	for i := 0; i < len(ops); {
		rop, consumed, err := tr.Translate(ops, i)
		if err != nil {
			t.Fatal(err)
		}
		rop.Run(cf)
		i += consumed
	}
	if cf.SP != 2 {
		t.Fatalf("sp after consuming read = %d, want 2", cf.SP)
	}
	if got := uint32(*cf.Top()); got != 0x1234 {
		t.Fatalf("top = %#x, want 0x1234 (the address cell overwritten with the value read)", got)
	}
}

func TestMakeBoolIdempotent(t *testing.T) {
	rt := newFakeRuntime()
	cf := run(t, rt, []StaticOpcode{
		{Type: OpPushConstant, Parameter: 42},
		{Type: OpMakeBool},
		{Type: OpMakeBool},
	})
	if got := *cf.Top(); got != 1 {
		t.Fatalf("top = %d, want 1", got)
	}
}

func TestTranslateUnknownOpcodeTypeErrors(t *testing.T) {
	rt := newFakeRuntime()
	tr := NewTranslator(rt)
	_, _, err := tr.Translate([]StaticOpcode{{Type: OpcodeType(255)}}, 0)
	if err == nil {
		t.Fatal("expected a translator error for an unknown opcode type")
	}
}

func TestControlTransferOpcodeSetsFlagsAndSuccessiveHandledZero(t *testing.T) {
	rt := newFakeRuntime()
	tr := NewTranslator(rt)
	rop, consumed, err := tr.Translate([]StaticOpcode{{Type: OpCall, DataType: TypeI32}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if consumed != 1 {
		t.Fatalf("consumed = %d, want 1", consumed)
	}
	want := translatedShape{OpcodeType: OpCall, Flags: FlagCallIsBaseCall, SuccessiveHandled: 0}
	if diff := cmp.Diff(want, shapeOf(rop)); diff != "" {
		t.Fatalf("translated opcode shape mismatch (-want +got):\n%s", diff)
	}
}
