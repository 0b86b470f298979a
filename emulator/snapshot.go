package emulator

import (
	"log"

	"github.com/ezrec/vmcpu/cpu"
	"github.com/ezrec/vmcpu/memory"
)

// window is the memory range saved by Dump. Paged stores are too large to
// save whole, so only the CPU state is kept for them.
func (emu *Emulator) window() (start, end memory.Address) {
	if emu.Config.Memory.Kind == MEMORY_FLAT {
		end = memory.Address(emu.Config.Memory.Size)
		return
	}

	start = emu.Cpu.ProgramStart()
	end = start
	return
}

// Dump encodes the machine state as a CBOR snapshot.
func (emu *Emulator) Dump() (data []byte, err error) {
	start, end := emu.window()
	snap, err := emu.Cpu.Snapshot(start, end)
	if err != nil {
		return
	}

	data, err = cpu.MarshalSnapshot(snap)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: dumped %d bytes of state at tick %d", len(data), emu.Cpu.Ticks)
	}

	return
}

// Resume restores the machine state from a snapshot written by Dump.
// Memory is restored into the backing store, never through the tape port.
func (emu *Emulator) Resume(data []byte) (err error) {
	snap, err := cpu.UnmarshalSnapshot(data)
	if err != nil {
		return
	}

	if emu.Tape != nil {
		emu.Cpu.Memory = emu.Tape.Memory
		defer func() { emu.Cpu.Memory = emu.Tape }()
	}

	err = emu.Cpu.Restore(snap)
	if err != nil {
		return
	}

	if emu.Verbose {
		log.Printf("emulator: resumed at %v, tick %d", emu.Cpu.Ip(), emu.Cpu.Ticks)
	}

	return
}
