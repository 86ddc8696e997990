package vm

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	MEMORY_SIZE = 1024 // Total memory capacity, in bytes.
	WORD_SIZE   = 4    // Size of a machine word, in bytes.
)

// Reserved memory layout.
const (
	PC_ADDR     = uint32(0) // Program counter.
	STATUS_ADDR = uint32(4) // Status register.
	TEXT_ADDR   = uint32(8) // First instruction executed by Run.
)

// Memory is the linear byte memory of the machine.
// Words are stored little-endian.
type Memory []byte

// check verifies that a whole word at addr lies inside memory.
func (mem Memory) check(addr uint32) (err error) {
	if uint64(addr)+WORD_SIZE > uint64(len(mem)) {
		err = ErrOutOfBounds(addr)
	}
	return
}

// Word returns the word stored at addr.
func (mem Memory) Word(addr uint32) (value uint32, err error) {
	err = mem.check(addr)
	if err != nil {
		return
	}

	value = binary.LittleEndian.Uint32(mem[addr : addr+WORD_SIZE])
	return
}

// SetWord stores value at addr.
func (mem Memory) SetWord(addr uint32, value uint32) (err error) {
	err = mem.check(addr)
	if err != nil {
		return
	}

	binary.LittleEndian.PutUint32(mem[addr:addr+WORD_SIZE], value)
	return
}

// Dump writes the memory as hexadecimal bytes, eight bytes per row,
// each row prefixed with its starting address.
func (mem Memory) Dump(w io.Writer) (err error) {
	for addr := 0; addr < len(mem); addr += 8 {
		line := fmt.Sprintf("%04x:", addr)
		for n := addr; n < addr+8 && n < len(mem); n++ {
			if (n-addr)%WORD_SIZE == 0 {
				line += " "
			}
			line += fmt.Sprintf(" %02x", mem[n])
		}
		_, err = fmt.Fprintln(w, line)
		if err != nil {
			return
		}
	}

	return
}
