package vm

// FlyweightString is a string interned in the Runtime's string table,
// identified by a 64-bit hash key.
type FlyweightString struct {
	Hash  uint64
	Value string
}

// StringRef references an entry in the active Runtime's string table. It
// is valid iff it resolves against that table.
type StringRef struct {
	Hash     uint64
	resolved *FlyweightString
}

func (r StringRef) IsValid() bool {
	return r.resolved != nil
}

func (r StringRef) String() string {
	if r.resolved == nil {
		return ""
	}
	return r.resolved.Value
}

// Runtime is the embedder-owned collaborator the translator and standard
// library bindings consume: stable addresses for GLOBAL variables, and the
// string table used to resolve/intern strings.
type Runtime interface {
	Program() Program
	// AccessGlobalVariableValue returns a stable *int64 for a GLOBAL
	// variable id. The pointer must remain valid for the Runtime's
	// lifetime; reallocating the backing pool while opcodes reference it
	// is forbidden (§5).
	AccessGlobalVariableValue(id uint32) *int64
	ResolveStringByKey(hash uint64) (FlyweightString, bool)
	AddString(s string) FlyweightString
}

// ResolveStringRef looks a StringRef's hash up against rt's string table.
func ResolveStringRef(rt Runtime, hash uint64) StringRef {
	if fs, ok := rt.ResolveStringByKey(hash); ok {
		return StringRef{Hash: hash, resolved: &fs}
	}
	return StringRef{Hash: hash}
}

