package emulator

import (
	"github.com/ezrec/wordvm/vm"
)

// Data words used by DemoSum.
const (
	SUM_INDEX   = DATA_ADDR + 0x0 // Loop index, starts at 1.
	SUM_LIMIT   = DATA_ADDR + 0x4 // Loop bound, 10.
	SUM_SCRATCH = DATA_ADDR + 0x8 // Index minus bound.
	SUM_TOTAL   = DATA_ADDR + 0xc // Accumulated sum.
)

// DemoSum returns a program that adds the integers 1 through 9 into
// SUM_TOTAL, then halts.
//
//	sum := 0
//	for i := 1; i != 10; i++ {
//		sum += i
//	}
func DemoSum() (prog *vm.Program) {
	prog = &vm.Program{}

	prog.Text(vm.TEXT_ADDR,
		vm.Instr(vm.OP_CP, SUM_SCRATCH, SUM_INDEX),  // 0x08
		vm.Instr(vm.OP_SUB, SUM_SCRATCH, SUM_LIMIT), // 0x14
		vm.Instr(vm.OP_CMP, SUM_SCRATCH),            // 0x20
		vm.Instr(vm.OP_JZ, 76),                      // 0x28
		vm.Instr(vm.OP_ADD, SUM_TOTAL, SUM_INDEX),   // 0x30
		vm.Instr(vm.OP_INCR, SUM_INDEX),             // 0x3c
		vm.Instr(vm.OP_JMP, vm.TEXT_ADDR),           // 0x44
		vm.Instr(vm.OP_BREAK),                       // 0x4c
	)

	prog.Data(SUM_INDEX, 1, 10, 0, 0)

	return
}
