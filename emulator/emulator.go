// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/vmcpu/asm"
	"github.com/ezrec/vmcpu/cpu"
	"github.com/ezrec/vmcpu/internal"
	"github.com/ezrec/vmcpu/memory"
)

var _emulator_defines = map[string]string{
	"WORD_SIZE":      "4",
	"REGISTER_COUNT": fmt.Sprintf("%v", cpu.REGISTER_COUNT),
}

// Emulator state. CPU + memory + the loaded program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *asm.Program // Reference to the currently running program listing.
	Config   Config       // Machine configuration.
	Tape     *Tape        // Tape device, if configured.
}

// NewEmulator creates a new emulator from a machine configuration.
func NewEmulator(conf Config) (emu *Emulator, err error) {
	mem, err := conf.NewMemory()
	if err != nil {
		return
	}

	emu = &Emulator{
		Program: &asm.Program{},
		Config:  conf,
	}

	if conf.Tape.Port != 0 {
		emu.Tape = &Tape{Memory: mem, Port: memory.Address(conf.Tape.Port)}
		mem = emu.Tape
	}

	emu.Cpu = cpu.NewCpu(mem, conf.Cpu.ProgramStart, conf.Cpu.StackStart,
		memory.Address(conf.Cpu.InterruptTable))

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Config.Defines(),
	)
}

// Predefine passes the defines to an assembler.
func (emu *Emulator) Predefine(as *asm.Assembler) {
	for key, value := range emu.Defines() {
		as.Predefine(key, value)
	}
}

// Load resets the CPU, then writes the program and its interrupt vectors.
func (emu *Emulator) Load(prog *asm.Program) (err error) {
	emu.Program = prog
	emu.Cpu.Reset()

	err = emu.Cpu.WriteInstructions(prog.Instructions())
	if err != nil {
		return
	}

	var errs []error
	for _, vec := range prog.Vectors {
		errs = append(errs, emu.Cpu.SetInterruptVector(vec.Index, vec.Addr))
	}
	err = errors.Join(errs...)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: loaded %d bytes at %v, %d vectors",
			prog.Size(), emu.Cpu.ProgramStart(), len(prog.Vectors))
	}

	return
}

// LoadImage resets the CPU, then writes a raw image at the program start.
// There is no listing for an image, so LineNo is always zero.
func (emu *Emulator) LoadImage(r io.Reader) (err error) {
	image, err := io.ReadAll(r)
	if err != nil {
		return
	}

	emu.Program = &asm.Program{}
	emu.Cpu.Reset()

	err = emu.Cpu.WriteImage(image)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: loaded %d byte image at %v", len(image), emu.Cpu.ProgramStart())
	}

	return
}

// Code returns the listing entry at the current instruction pointer.
func (emu *Emulator) Code() (dbg asm.Debug) {
	ip, start := emu.Cpu.Ip(), emu.Cpu.ProgramStart()
	if ip < start {
		return
	}

	return emu.Program.Debug(ip - start)
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.Code()
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single instruction of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	state, err := emu.Cpu.Step()
	if err != nil {
		return
	}

	done = state == cpu.STATE_HALTED
	return
}

// Run ticks until the CPU halts, a tick fails, ctx is done, or the
// configured tick limit is reached.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	limit := emu.Config.Cpu.MaxTicks

	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		if limit > 0 && emu.Cpu.Ticks >= limit {
			err = ErrTickLimit
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			if emu.Verbose {
				log.Printf("emulator: stopped after %d ticks: %v", emu.Cpu.Ticks, err)
			}
			return
		}
	}
}
