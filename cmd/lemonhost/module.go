// Command lemonhost is a minimal embedder harness: it wires a host
// memory adapter, a program, a runtime and the standard library module
// together through dscope, mirroring the teacher repository's
// dscope.Module-embedding composition roots (taitape/module.go,
// nets/module.go). It exists to exercise that wiring end to end, not to
// be a real game host — there is no script source here, just enough
// scaffolding to translate and run a handful of opcodes against an
// in-process memory buffer.
package main

import (
	"github.com/reusee/dscope"

	"github.com/ultra-azu/sonic3air/internal/vmconfig"
	"github.com/ultra-azu/sonic3air/internal/vmlog"
	"github.com/ultra-azu/sonic3air/vm"
)

type Module struct {
	dscope.Module
	Log vmlog.Module
}

// Config loads interpreter tunables through the same CUE validation path
// a real embedder would use, overriding just the value stack depth for
// this demo run.
func (Module) Config() vm.Config {
	cfg, err := vmconfig.Load([]byte(`value_stack_capacity: 256`))
	if err != nil {
		return vm.DefaultConfig
	}
	return cfg
}

func (Module) HostMemory() vm.HostMemory {
	return newFlatMemory(1 << 16)
}

func (Module) Program() vm.Program {
	return newStaticProgram()
}

func (Module) Runtime(prog vm.Program) vm.Runtime {
	return newHostRuntime(prog)
}

func (Module) Translator(rt vm.Runtime) *vm.Translator {
	return vm.NewTranslator(rt)
}

func main() {
	scope := dscope.New(new(Module))

	scope.Call(func(
		logger vmlog.Logger,
		rt vm.Runtime,
		host vm.HostMemory,
		translator *vm.Translator,
		cfg vm.Config,
	) {
		cf := vm.NewControlFlowState(rt, host, cfg)

		program := []vm.StaticOpcode{
			{Type: vm.OpPushConstant, Parameter: 7},
			{Type: vm.OpPushConstant, Parameter: 3},
			{Type: vm.OpArithmSub, DataType: vm.TypeI32},
		}
		for i := 0; i < len(program); {
			rop, consumed, err := translator.Translate(program, i)
			if err != nil {
				logger.Error("translate failed", "error", err)
				return
			}
			rop.Run(cf)
			i += consumed
		}

		logger.Info("ran demo program", "top", int32(*cf.Top()))
	})
}
