package vm

import (
	"errors"

	"github.com/ezrec/wordvm/translate"
)

var f = translate.From

var (
	// Memory errors
	ErrMemoryAccess = errors.New(f("memory access violation"))

	// Instruction decode errors
	ErrOpcodeArg1 = errors.New(f("arg1"))
	ErrOpcodeArg2 = errors.New(f("arg2"))
)

// ErrOutOfBounds is returned when a word access at the address would
// extend past the end of memory.
type ErrOutOfBounds uint32

func (eb ErrOutOfBounds) Error() string {
	return f("memory access violation (addr=0x%x)", uint32(eb))
}

func (eb ErrOutOfBounds) Is(err error) (ok bool) {
	if err == ErrMemoryAccess {
		return true
	}
	_, ok = err.(ErrOutOfBounds)
	return
}

// ErrUnknownOpcode is returned when the fetched instruction word does not
// name an opcode.
type ErrUnknownOpcode uint32

func (eu ErrUnknownOpcode) Error() string {
	return f("unknown opcode 0x%08x", uint32(eu))
}

func (eu ErrUnknownOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrUnknownOpcode)
	return
}

// ErrOpcode annotates an execution error with the instruction that caused it.
type ErrOpcode Opcode

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%08x %v", uint32(eo), Opcode(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}
