// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/wordvm/emulator"
	"github.com/ezrec/wordvm/preload"
)

func main() {
	var script string
	var dump bool
	var verbose bool
	var trace bool
	var lax bool

	flag.StringVar(&script, "s", "", ".star preload script (default: built-in sum demo)")
	flag.BoolVar(&dump, "p", false, "Print memory before and after execution")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&trace, "w", false, "Trace memory writes")
	flag.BoolVar(&lax, "l", false, "Ignore unknown opcodes instead of failing")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Lax = lax
	emu.Program = emulator.DemoSum()

	// Build the memory image from a preload script.
	if len(script) != 0 {
		inf, err := os.Open(script)
		if err != nil {
			log.Fatalf("%v: %v", script, err)
		}
		defer inf.Close()

		ld := &preload.Loader{Verbose: verbose}
		for name, value := range emu.Defines() {
			ld.Predefine(name, value)
		}
		emu.Program, err = ld.Parse(script, inf)
		if err != nil {
			log.Fatal(err)
		}
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	if dump {
		err = emu.Dump(os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
	}

	emu.Verbose = verbose
	emu.TraceWrites = trace
	emu.Machine.Verbose = verbose
	emu.Machine.TraceWrites = trace

	for done, err := emu.Tick(); !done; done, err = emu.Tick() {
		if err != nil {
			log.Fatal(err)
		}
	}

	if dump {
		err = emu.Dump(os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
	}

	fmt.Print(emu.Machine.String())
}
