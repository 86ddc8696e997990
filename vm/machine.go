package vm

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"strings"
)

const (
	MAX_CYCLES = 500 // Instruction fetches allowed per Run.
)

var _vm_defines = map[string]string{
	"MEMORY_SIZE":    fmt.Sprintf("%d", MEMORY_SIZE),
	"WORD_SIZE":      fmt.Sprintf("%d", WORD_SIZE),
	"MAX_CYCLES":     fmt.Sprintf("%d", MAX_CYCLES),
	"PC_ADDR":        fmt.Sprintf("0x%x", PC_ADDR),
	"STATUS_ADDR":    fmt.Sprintf("0x%x", STATUS_ADDR),
	"TEXT_ADDR":      fmt.Sprintf("0x%x", TEXT_ADDR),
	"STATUS_ZERO":    fmt.Sprintf("0x%x", STATUS_ZERO),
	"STATUS_NONZERO": fmt.Sprintf("0x%x", STATUS_NONZERO),
}

func init() {
	for op := OP_NOOP; op.Valid(); op++ {
		_vm_defines[strings.ToUpper(op.String())] = fmt.Sprintf("%d", uint32(op))
	}
}

// Machine is the simulation context for the virtual machine.
type Machine struct {
	Verbose     bool // Set to log every executed instruction.
	TraceWrites bool // Set to log every memory write.
	Lax         bool // Set to silently stall on unknown opcodes.

	Memory Memory // Linear memory, including the PC and status words.

	Ticks  int  // Instruction fetch counter since Boot.
	Halted bool // Set once a BREAK has executed.
}

// NewMachine creates a new machine with zeroed memory.
func NewMachine() (m *Machine) {
	m = &Machine{
		Memory: make(Memory, MEMORY_SIZE),
	}

	return
}

// Defines for the machine: memory layout, status bits, and opcodes.
func (m *Machine) Defines() iter.Seq2[string, string] {
	return maps.All(_vm_defines)
}

// Read returns the word at addr.
func (m *Machine) Read(addr uint32) (value uint32, err error) {
	return m.Memory.Word(addr)
}

// Write stores a word at addr.
func (m *Machine) Write(addr uint32, value uint32) (err error) {
	if m.TraceWrites {
		log.Printf("vm: write addr=0x%x value=%d", addr, value)
	}

	err = m.Memory.SetWord(addr, value)
	if err != nil {
		return
	}

	if m.TraceWrites {
		stored, _ := m.Memory.Word(addr)
		log.Printf("vm: wrote addr=0x%x value=%d", addr, stored)
	}

	return
}

// Pc returns the current program counter.
func (m *Machine) Pc() uint32 {
	pc, _ := m.Read(PC_ADDR)
	return pc
}

// Status returns the current status register.
func (m *Machine) Status() uint32 {
	status, _ := m.Read(STATUS_ADDR)
	return status
}

// String returns the machine control state as a string.
func (m *Machine) String() (text string) {
	text += fmt.Sprintf("% 6s: 0x%04x\n", "pc", m.Pc())
	text += fmt.Sprintf("% 6s: 0x%08x\n", "status", m.Status())
	text += fmt.Sprintf("% 6s: %d\n", "ticks", m.Ticks)
	text += fmt.Sprintf("% 6s: %v\n", "halted", m.Halted)
	return
}

// Dump writes a hexadecimal rendering of the whole memory to w.
func (m *Machine) Dump(w io.Writer) error {
	return m.Memory.Dump(w)
}

// Boot prepares the machine to execute from TEXT_ADDR.
// - Sets the PC to TEXT_ADDR.
// - Clears the status register.
// - Zeros the tick counter and halt state.
func (m *Machine) Boot() (err error) {
	if m.Verbose {
		log.Printf("vm: boot at 0x%x", TEXT_ADDR)
	}

	m.Ticks = 0
	m.Halted = false

	err = m.Write(PC_ADDR, TEXT_ADDR)
	if err != nil {
		return
	}

	err = m.Write(STATUS_ADDR, 0)
	return
}

// Run boots the machine and executes instructions until a BREAK,
// or until MAX_CYCLES instructions have been fetched.
// Reaching the cycle limit is not an error.
func (m *Machine) Run() (err error) {
	err = m.Boot()
	if err != nil {
		return
	}

	for m.Ticks < MAX_CYCLES {
		var done bool
		done, err = m.Tick()
		if err != nil || done {
			return
		}
	}

	if m.Verbose {
		log.Printf("vm: cycle limit %d reached at pc=0x%x", MAX_CYCLES, m.Pc())
	}

	return
}

// Tick performs a single fetch-decode-execute cycle.
// done is set when a BREAK was executed.
func (m *Machine) Tick() (done bool, err error) {
	pc, err := m.Read(PC_ADDR)
	if err != nil {
		return
	}

	word, err := m.Read(pc)
	if err != nil {
		return
	}

	op := Opcode(word)
	if m.Verbose {
		log.Printf("vm: counter=%d pc=0x%03x inst=%v", m.Ticks, pc, op)
	}

	m.Ticks++

	done, err = m.Execute(pc, op)
	if done {
		m.Halted = true
	}

	return
}

// operand returns the n'th operand word of the instruction at pc.
func (m *Machine) operand(pc uint32, n int) (addr uint32, err error) {
	addr, err = m.Read(pc + WORD_SIZE*uint32(n))
	if err != nil {
		switch n {
		case 1:
			err = errors.Join(ErrOpcodeArg1, err)
		case 2:
			err = errors.Join(ErrOpcodeArg2, err)
		}
	}
	return
}

// operands2 returns the memory addresses named by both operands of the
// instruction at pc.
func (m *Machine) operands2(pc uint32) (addr_a, addr_b uint32, err error) {
	addr_a, err = m.operand(pc, 1)
	if err != nil {
		return
	}
	addr_b, err = m.operand(pc, 2)
	return
}

// Execute executes the instruction op located at pc, then commits the
// next PC. BREAK leaves the PC unchanged and reports done.
func (m *Machine) Execute(pc uint32, op Opcode) (done bool, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(op), err)
		}
	}()

	next_pc := pc + op.Size()

	switch op {
	case OP_NOOP:
		// pass
	case OP_BREAK:
		done = true
		return
	case OP_ADD, OP_SUB:
		var addr_a, addr_b, a, b uint32
		addr_a, addr_b, err = m.operands2(pc)
		if err != nil {
			return
		}
		a, err = m.Read(addr_a)
		if err != nil {
			return
		}
		b, err = m.Read(addr_b)
		if err != nil {
			return
		}
		// Two's complement wrap-around, treated as signed.
		var result int32
		if op == OP_ADD {
			result = int32(a) + int32(b)
		} else {
			result = int32(a) - int32(b)
		}
		if m.Verbose {
			log.Printf("vm: %v [0x%x] [0x%x] a=%d b=%d", op, addr_a, addr_b, result, int32(b))
		}
		err = m.Write(addr_a, uint32(result))
		if err != nil {
			return
		}
	case OP_JMP:
		var target uint32
		target, err = m.operand(pc, 1)
		if err != nil {
			return
		}
		if m.Verbose {
			log.Printf("vm: %v 0x%x", op, target)
		}
		next_pc = target
	case OP_JZ, OP_JNZ:
		var status, target uint32
		status, err = m.Read(STATUS_ADDR)
		if err != nil {
			return
		}
		target, err = m.operand(pc, 1)
		if err != nil {
			return
		}
		if m.Verbose {
			log.Printf("vm: %v 0x%x status=0x%x", op, target, status)
		}
		bit := STATUS_ZERO
		if op == OP_JNZ {
			bit = STATUS_NONZERO
		}
		if (status & bit) != 0 {
			next_pc = target
		}
	case OP_CMP:
		var addr, a uint32
		err = m.Write(STATUS_ADDR, 0)
		if err != nil {
			return
		}
		addr, err = m.operand(pc, 1)
		if err != nil {
			return
		}
		a, err = m.Read(addr)
		if err != nil {
			return
		}
		status := STATUS_NONZERO
		if a == 0 {
			status = STATUS_ZERO
		}
		if m.Verbose {
			log.Printf("vm: %v [0x%x] a=%d status=0x%x", op, addr, a, status)
		}
		err = m.Write(STATUS_ADDR, status)
		if err != nil {
			return
		}
	case OP_CP:
		var dst, src, a uint32
		dst, src, err = m.operands2(pc)
		if err != nil {
			return
		}
		a, err = m.Read(src)
		if err != nil {
			return
		}
		if m.Verbose {
			log.Printf("vm: %v [0x%x] [0x%x] a=%d", op, dst, src, int32(a))
		}
		err = m.Write(dst, a)
		if err != nil {
			return
		}
	case OP_INCR, OP_DECR:
		var addr, a uint32
		addr, err = m.operand(pc, 1)
		if err != nil {
			return
		}
		a, err = m.Read(addr)
		if err != nil {
			return
		}
		if m.Verbose {
			log.Printf("vm: %v [0x%x] a=%d", op, addr, int32(a))
		}
		result := int32(a)
		if op == OP_INCR {
			result++
		} else {
			result--
		}
		err = m.Write(addr, uint32(result))
		if err != nil {
			return
		}
	default:
		if !m.Lax {
			err = ErrUnknownOpcode(op)
			return
		}
		// Re-fetch the same word on the next tick.
		next_pc = pc
	}

	err = m.Write(PC_ADDR, next_pc)
	return
}
