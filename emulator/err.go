package emulator

import (
	"github.com/ezrec/wordvm/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc   uint32 // Program counter of the failing instruction.
	Tick int    // Tick count when the instruction was fetched.
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("pc 0x%03x tick %d %v", err.Pc, err.Tick, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
