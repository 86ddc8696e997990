package preload

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/wordvm/emulator"
	"github.com/ezrec/wordvm/vm"
)

func newLoader() (ld *Loader) {
	ld = &Loader{}
	for name, value := range emulator.NewEmulator().Defines() {
		ld.Predefine(name, value)
	}
	return
}

func TestLoader_Sum(t *testing.T) {
	assert := assert.New(t)

	inf, err := os.Open("testdata/sum.star")
	assert.NoError(err)
	defer inf.Close()

	prog, err := newLoader().Parse("sum.star", inf)
	assert.NoError(err)
	assert.Equal(emulator.DemoSum().Segments[1], prog.Segments[2])

	emu := emulator.NewEmulator()
	emu.Program = prog
	assert.NoError(emu.Run())

	sum, _ := emu.Read(emulator.SUM_TOTAL)
	assert.Equal(uint32(45), sum)
	assert.True(emu.Halted)
}

func TestLoader_MatchesDemo(t *testing.T) {
	assert := assert.New(t)

	inf, err := os.Open("testdata/sum.star")
	assert.NoError(err)
	defer inf.Close()

	prog, err := newLoader().Parse("sum.star", inf)
	assert.NoError(err)

	demo := emulator.NewEmulator()
	demo.Program = emulator.DemoSum()
	assert.NoError(demo.Reset())

	scripted := emulator.NewEmulator()
	scripted.Program = prog
	assert.NoError(scripted.Reset())

	assert.Equal(demo.Memory, scripted.Memory)
}

func TestLoader_Builtins(t *testing.T) {
	assert := assert.New(t)

	script := strings.Join([]string{
		"assert_end = data(0x100, 1, -1, 0xffffffff)",
		"text(assert_end, instr(INCR, 0x100), [BREAK])",
		"words = instr(ADD, 0x100, 0x104)",
		"data(0x200, words)",
	}, "\n")

	prog, err := newLoader().Parse("builtins", strings.NewReader(script))
	assert.NoError(err)

	assert.Equal([]vm.Segment{
		{Addr: 0x100, Words: []uint32{1, 0xffffffff, 0xffffffff}},
		{Addr: 0x10c, Words: []uint32{uint32(vm.OP_INCR), 0x100, uint32(vm.OP_BREAK)}},
		{Addr: 0x200, Words: []uint32{uint32(vm.OP_ADD), 0x100, 0x104}},
	}, prog.Segments)
}

func TestLoader_Predefine(t *testing.T) {
	assert := assert.New(t)

	ld := &Loader{}
	ld.Predefine("BASE", "0x300")
	ld.Predefine("NAME", "not a number")
	ld.Predefine("BASE", "0x340")

	prog, err := ld.Parse("predefine", strings.NewReader("data(BASE, 7)"))
	assert.NoError(err)
	assert.Equal(uint32(0x340), prog.Segments[0].Addr)

	_, err = ld.Parse("predefine", strings.NewReader("data(NAME, 7)"))
	assert.Error(err)
}

func TestLoader_Errors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		script string
		text   string
	}){
		{"syntax", "text(", ""},
		{"missing", "data()", ErrArgsMissing.Error()},
		{"keyword", "data(0x100, value=1)", ErrKeywordArgs.Error()},
		{"type", "data(0x100, 'x')", ErrWordType.Error()},
		{"range", "data(0x100, 0x100000000)", ErrWordRange.Error()},
		{"negative range", "data(0x100, -0x80000001)", ErrWordRange.Error()},
		{"opcode", "instr(11)", ErrOpcode.Error()},
		{"operands", "instr(ADD, 0x100)", ErrOperands.Error()},
		{"runtime", "fail('boom')", "boom"},
	}

	for _, entry := range table {
		prog, err := newLoader().Parse(entry.name, strings.NewReader(entry.script))
		assert.Error(err, entry.name)
		assert.Nil(prog, entry.name)

		var script *ErrScript
		assert.True(errors.As(err, &script), entry.name)
		assert.Equal(entry.name, script.Name)
		assert.Contains(err.Error(), entry.text, entry.name)
	}
}
