package vm

// Opcode is the numeric instruction identifier stored in the first word
// of an instruction.
type Opcode uint32

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_NOOP  = Opcode(0)  // noop
	OP_BREAK = Opcode(1)  // break
	OP_ADD   = Opcode(2)  // add
	OP_SUB   = Opcode(3)  // sub
	OP_JMP   = Opcode(4)  // jmp
	OP_JZ    = Opcode(5)  // jz
	OP_JNZ   = Opcode(6)  // jnz
	OP_CMP   = Opcode(7)  // cmp
	OP_CP    = Opcode(8)  // cp
	OP_INCR  = Opcode(9)  // incr
	OP_DECR  = Opcode(10) // decr
)

// Status register bits, written by OP_CMP.
const (
	STATUS_ZERO    = uint32(0x00000001) // Last compared word was zero.
	STATUS_NONZERO = uint32(0x00000010) // Last compared word was not zero.
)

// operandCount is indexed by opcode.
var operandCount = [...]int{
	OP_NOOP:  0,
	OP_BREAK: 0,
	OP_ADD:   2,
	OP_SUB:   2,
	OP_JMP:   1,
	OP_JZ:    1,
	OP_JNZ:   1,
	OP_CMP:   1,
	OP_CP:    2,
	OP_INCR:  1,
	OP_DECR:  1,
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() bool {
	return op < Opcode(len(operandCount))
}

// Operands returns the number of operand words that follow the opcode,
// or -1 for an invalid opcode.
func (op Opcode) Operands() int {
	if !op.Valid() {
		return -1
	}
	return operandCount[op]
}

// Size returns the size in bytes of the whole instruction.
func (op Opcode) Size() uint32 {
	n := op.Operands()
	if n < 0 {
		return WORD_SIZE
	}
	return WORD_SIZE * uint32(n+1)
}
