// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package preload builds machine memory images from Starlark scripts.
//
// A preload script is ordinary Starlark. Every define (opcode names,
// reserved addresses, sizes) is predeclared as an integer, and three
// builtins place words in the image:
//
//	instr(op, *operands)  -> list of words for one instruction
//	text(addr, *instrs)   -> places instructions at addr, returns the next free address
//	data(addr, *words)    -> places data words at addr, returns the next free address
package preload

import (
	"fmt"
	"io"
	"log"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/wordvm/vm"
)

// Loader executes preload scripts.
type Loader struct {
	Verbose bool // If set, logs each placed segment.

	predefine map[string]string
}

// Predefine defines a new predeclared value or redefines an existing one.
// Values that do not parse as integers are ignored when a script runs.
func (ld *Loader) Predefine(name string, value string) {
	if ld.predefine == nil {
		ld.predefine = map[string]string{name: value}
	} else {
		ld.predefine[name] = value
	}
}

// predeclared converts the predefines to Starlark integers.
func (ld *Loader) predeclared() (pred starlark.StringDict) {
	pred = starlark.StringDict{}
	for key, str := range ld.predefine {
		value, err := strconv.ParseUint(str, 0, 32)
		if err != nil {
			continue
		}
		pred[key] = starlark.MakeUint64(value)
	}

	return
}

// toWord converts a Starlark integer into a machine word.
// Negative values are stored as two's complement.
func toWord(v starlark.Value) (word uint32, err error) {
	st_int, ok := v.(starlark.Int)
	if !ok {
		err = fmt.Errorf("%w: %v", ErrWordType, v.Type())
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 > 0xffffffff || st_int64 < -0x80000000 {
		err = fmt.Errorf("%w: %v", ErrWordRange, st_int)
		return
	}

	word = uint32(st_int64)
	return
}

// toWords flattens integers and lists of integers into words.
func toWords(values ...starlark.Value) (words []uint32, err error) {
	for _, v := range values {
		if list, ok := v.(*starlark.List); ok {
			for n := range list.Len() {
				var word uint32
				word, err = toWord(list.Index(n))
				if err != nil {
					return
				}
				words = append(words, word)
			}
			continue
		}
		var word uint32
		word, err = toWord(v)
		if err != nil {
			return
		}
		words = append(words, word)
	}

	return
}

func wordList(words []uint32) *starlark.List {
	elems := make([]starlark.Value, len(words))
	for n, word := range words {
		elems[n] = starlark.MakeUint64(uint64(word))
	}
	return starlark.NewList(elems)
}

// builtinInstr implements instr(op, *operands).
func builtinInstr(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) != 0 {
		return nil, ErrKeywordArgs
	}
	if len(args) == 0 {
		return nil, ErrOpcode
	}

	words, err := toWords(args...)
	if err != nil {
		return nil, err
	}

	op := vm.Opcode(words[0])
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrOpcode, words[0])
	}
	if op.Operands() != len(words)-1 {
		return nil, fmt.Errorf("%w: %v wants %d, got %d", ErrOperands, op, op.Operands(), len(words)-1)
	}

	return wordList(vm.Instr(op, words[1:]...)), nil
}

// Parse executes a preload script, and returns the program image it built.
func (ld *Loader) Parse(name string, in io.Reader) (prog *vm.Program, err error) {
	defer func() {
		if err != nil {
			err = &ErrScript{Name: name, Err: err}
		}
	}()

	src, err := io.ReadAll(in)
	if err != nil {
		return
	}

	prog = &vm.Program{}

	segment := func(kind string, place func(addr uint32, words []uint32)) *starlark.Builtin {
		return starlark.NewBuiltin(kind, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
			if len(kwargs) != 0 {
				return nil, ErrKeywordArgs
			}
			if len(args) == 0 {
				return nil, ErrArgsMissing
			}
			addr, err := toWord(args[0])
			if err != nil {
				return nil, err
			}
			words, err := toWords(args[1:]...)
			if err != nil {
				return nil, err
			}
			if ld.Verbose {
				log.Printf("preload: %v %v 0x%x: %d words", name, kind, addr, len(words))
			}
			place(addr, words)
			return starlark.MakeUint64(uint64(addr) + uint64(len(words))*vm.WORD_SIZE), nil
		})
	}

	pred := ld.predeclared()
	pred["instr"] = starlark.NewBuiltin("instr", builtinInstr)
	pred["text"] = segment("text", func(addr uint32, words []uint32) {
		prog.Text(addr, words)
	})
	pred["data"] = segment("data", func(addr uint32, words []uint32) {
		prog.Data(addr, words...)
	})

	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("preload: %v: %v", name, msg)
		},
	}
	opts := syntax.FileOptions{}

	_, err = starlark.ExecFileOptions(&opts, thread, name, src, pred)
	if err != nil {
		prog = nil
		return
	}

	return
}
