package vm

import (
	"iter"
	"slices"

	"github.com/ezrec/wordvm/internal"
)

// Segment is a run of consecutive words starting at Addr.
type Segment struct {
	Addr  uint32
	Words []uint32
}

// Program is a memory image: a set of segments written into memory
// before Run.
type Program struct {
	Segments []Segment
}

// Instr encodes a single instruction as its opcode word followed by the
// operand words.
func Instr(op Opcode, operands ...uint32) (words []uint32) {
	words = append([]uint32{uint32(op)}, operands...)
	return
}

// Text appends a segment of instructions at addr. Each element is a
// complete instruction, as returned by Instr.
func (prog *Program) Text(addr uint32, instrs ...[]uint32) *Program {
	prog.Segments = append(prog.Segments, Segment{
		Addr:  addr,
		Words: slices.Concat(instrs...),
	})
	return prog
}

// Data appends a segment of data words at addr.
func (prog *Program) Data(addr uint32, words ...uint32) *Program {
	prog.Segments = append(prog.Segments, Segment{
		Addr:  addr,
		Words: slices.Clone(words),
	})
	return prog
}

// Words iterates over every (address, word) pair in the program, in
// segment order.
func (prog *Program) Words() iter.Seq2[uint32, uint32] {
	seqs := make([]iter.Seq2[uint32, uint32], 0, len(prog.Segments))
	for _, seg := range prog.Segments {
		seqs = append(seqs, seg.words())
	}
	return internal.ConcatSeq2(seqs...)
}

func (seg Segment) words() iter.Seq2[uint32, uint32] {
	return func(yield func(addr uint32, word uint32) bool) {
		for n, word := range seg.Words {
			if !yield(seg.Addr+uint32(n)*WORD_SIZE, word) {
				return
			}
		}
	}
}

// Load writes the program into the machine's memory.
func (prog *Program) Load(m *Machine) (err error) {
	for addr, word := range prog.Words() {
		err = m.Write(addr, word)
		if err != nil {
			return
		}
	}

	return
}
