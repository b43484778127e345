// Package vmconfig validates the embedder-supplied interpreter tunables
// that are not part of the bytecode contract: initial capacities for the
// value stack, the local-variable buffer and the stringformat scratch
// buffer. It is not a CLI or env layer — spec §6 explicitly excludes
// one at this layer — it is programmatic config an embedder hands to
// vm.NewControlFlowState, validated against a CUE schema the same way
// the teacher repository validates its multi-root config files, trimmed
// here to the module's single configurable surface.
package vmconfig

import (
	"errors"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/ultra-azu/sonic3air/vm"
)

// ErrValueNotFound names the absent-path condition. Load does not return
// it: a field the document omits keeps its vm.DefaultConfig value.
var ErrValueNotFound = errors.New("vmconfig: value not found")

const schemaSrc = `
	value_stack_capacity?:     int & >0
	local_variables_capacity?: int & >0
	format_buffer_capacity?:   int & >0
`

// Load validates a CUE document's bytes against the schema above and
// decodes it into a vm.Config, filling any field the document omits from
// vm.DefaultConfig.
func Load(document []byte) (vm.Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString("close({" + schemaSrc + "})")
	if err := schema.Err(); err != nil {
		return vm.Config{}, err
	}

	value := ctx.CompileBytes(document)
	if err := value.Err(); err != nil {
		return vm.Config{}, err
	}

	if err := schema.Unify(value).Validate(); err != nil {
		return vm.Config{}, err
	}

	cfg := vm.DefaultConfig
	assignInt(value, "value_stack_capacity", &cfg.ValueStackCapacity)
	assignInt(value, "local_variables_capacity", &cfg.LocalVariablesCapacity)
	assignInt(value, "format_buffer_capacity", &cfg.FormatBufferCapacity)
	return cfg, nil
}

func assignInt(value cue.Value, path string, target *int) {
	field := value.LookupPath(cue.ParsePath(path))
	if field.Err() != nil {
		return
	}
	if n, err := field.Int64(); err == nil {
		*target = int(n)
	}
}
