package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzMachine(f *testing.F) {
	for op := range uint32(OP_DECR) + 2 {
		f.Add(op, uint32(0), uint32(0), uint32(0))
		f.Add(op, uint32(0xffffffff), uint32(1), STATUS_ZERO)
		f.Add(op, uint32(0x7fffffff), uint32(0x80000000), STATUS_NONZERO)
	}

	f.Fuzz(func(t *testing.T, word uint32, a uint32, b uint32, status uint32) {
		assert := assert.New(t)

		const addr_a = 0x200
		const addr_b = 0x204

		m := NewMachine()
		loadAt(t, m, []uint32{word, addr_a, addr_b})
		assert.NoError(m.Write(STATUS_ADDR, status))
		assert.NoError(m.Write(addr_a, a))
		assert.NoError(m.Write(addr_b, b))

		op := Opcode(word)
		done, err := m.Tick()
		assert.Equal(1, m.Ticks)

		if !op.Valid() {
			assert.ErrorIs(err, ErrUnknownOpcode(word))
			assert.False(done)
			assert.Equal(TEXT_ADDR, m.Pc())
			return
		}

		assert.NoError(err)
		assert.Equal(op == OP_BREAK, done)

		got_a, _ := m.Read(addr_a)
		got_b, _ := m.Read(addr_b)
		assert.Equal(b, got_b)

		next_pc := TEXT_ADDR + op.Size()

		switch op {
		case OP_BREAK:
			next_pc = TEXT_ADDR
		case OP_ADD:
			assert.Equal(a+b, got_a)
		case OP_SUB:
			assert.Equal(a-b, got_a)
		case OP_CP:
			assert.Equal(b, got_a)
		case OP_INCR:
			assert.Equal(a+1, got_a)
		case OP_DECR:
			assert.Equal(a-1, got_a)
		case OP_JMP:
			next_pc = addr_a
		case OP_JZ:
			if (status & STATUS_ZERO) != 0 {
				next_pc = addr_a
			}
		case OP_JNZ:
			if (status & STATUS_NONZERO) != 0 {
				next_pc = addr_a
			}
		case OP_CMP:
			if a == 0 {
				assert.Equal(STATUS_ZERO, m.Status())
			} else {
				assert.Equal(STATUS_NONZERO, m.Status())
			}
		}

		switch op {
		case OP_ADD, OP_SUB, OP_CP, OP_INCR, OP_DECR:
		default:
			assert.Equal(a, got_a)
		}
		if op != OP_CMP {
			assert.Equal(status, m.Status())
		}

		assert.Equal(next_pc, m.Pc())
	})
}
