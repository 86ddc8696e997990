// Package vm implements a minimal word-addressed virtual machine.
//
// The machine owns a fixed 1024-byte linear memory. The word at address 0
// is the program counter (PC), and the word at address 4 is the status
// register. Instructions are stored as 32-bit words directly in memory:
// an opcode word followed by its operand words, each operand being the
// absolute address of a memory word.
//
// Run executes the fetch-decode-execute loop until a BREAK instruction,
// or until MAX_CYCLES instructions have been fetched.
package vm
