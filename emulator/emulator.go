// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/wordvm/internal"
	"github.com/ezrec/wordvm/vm"
)

const (
	DATA_ADDR = 0x200 // Conventional start of the data segment.
)

var _emulator_defines = map[string]string{
	"DATA_ADDR": fmt.Sprintf("0x%x", DATA_ADDR),
}

// Emulator state. Machine + loaded program image.
type Emulator struct {
	Verbose     bool        // If set, enables verbose logging.
	TraceWrites bool        // If set, logs every memory write.
	Lax         bool        // If set, unknown opcodes stall instead of failing.
	*vm.Machine             // Reference to the machine simulation.
	Program     *vm.Program // Reference to the program image loaded on reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Machine: vm.NewMachine(),
		Program: &vm.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.ConcatSeq2(maps.All(_emulator_defines),
		emu.Machine.Defines(),
	)
}

// Reset the emulator state
// - Replaces the machine with a zeroed one.
// - Loads the program image.
// - Boots the machine at vm.TEXT_ADDR.
func (emu *Emulator) Reset() (err error) {
	if emu.Verbose {
		log.Printf("emulator: reset")
	}

	emu.Machine = vm.NewMachine()
	emu.Machine.Verbose = emu.Verbose
	emu.Machine.TraceWrites = emu.TraceWrites
	emu.Machine.Lax = emu.Lax

	err = emu.Program.Load(emu.Machine)
	if err != nil {
		return
	}

	err = emu.Machine.Boot()
	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Machine.Ticks
}

// Opcode returns the instruction at the current program counter.
func (emu *Emulator) Opcode() vm.Opcode {
	word, _ := emu.Machine.Read(emu.Machine.Pc())
	return vm.Opcode(word)
}

// Segment returns the program segment holding the current program
// counter, if any.
func (emu *Emulator) Segment() (seg vm.Segment, ok bool) {
	pc := emu.Machine.Pc()
	for _, seg = range emu.Program.Segments {
		end := seg.Addr + uint32(len(seg.Words))*vm.WORD_SIZE
		if pc >= seg.Addr && pc < end {
			ok = true
			return
		}
	}

	seg = vm.Segment{}
	return
}

// Tick performs a single tick of the emulator.
// done is set once the machine has executed a BREAK, or has
// reached the cycle limit.
func (emu *Emulator) Tick() (done bool, err error) {
	m := emu.Machine

	if m.Halted || m.Ticks >= vm.MAX_CYCLES {
		done = true
		return
	}

	pc := m.Pc()
	tick := m.Ticks
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Tick: tick, Err: err}
		}
	}()

	done, err = m.Tick()
	if err != nil {
		return
	}

	if !done && m.Ticks >= vm.MAX_CYCLES {
		if emu.Verbose {
			log.Printf("emulator: cycle limit %d reached at pc=0x%x", vm.MAX_CYCLES, m.Pc())
		}
		done = true
	}

	return
}

// Run resets the emulator, then ticks until done.
func (emu *Emulator) Run() (err error) {
	err = emu.Reset()
	if err != nil {
		return
	}

	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
