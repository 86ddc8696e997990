package preload

import (
	"errors"

	"github.com/ezrec/wordvm/translate"
)

var f = translate.From

var (
	ErrArgsMissing = errors.New(f("address argument missing"))
	ErrKeywordArgs = errors.New(f("keyword arguments not supported"))
	ErrWordType    = errors.New(f("word is not an integer"))
	ErrWordRange   = errors.New(f("word out of 32-bit range"))
	ErrOpcode      = errors.New(f("opcode invalid"))
	ErrOperands    = errors.New(f("operand count mismatch"))
)

// ErrScript indicates the script that failed to preload.
type ErrScript struct {
	Name string
	Err  error
}

func (err *ErrScript) Error() string {
	return f("%v: %v", err.Name, err.Err)
}

func (err *ErrScript) Unwrap() error {
	return err.Err
}
