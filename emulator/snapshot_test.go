package emulator

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vmcpu/cpu"
)

func TestEmulatorDumpResume(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"mov r1, 5",
		"store [counter], 0:u32",
		"loop: inc [counter]",
		"add r1, r2",
		"jmp loop",
		"counter: halt",
	}

	conf := DefaultConfig()
	conf.Cpu.MaxTicks = 8

	emu := newTestEmulator(t, conf, program)
	emu.Cpu.Registers.Set(cpu.REG_R2, 1)

	err := emu.Run(context.Background())
	assert.ErrorIs(err, ErrTickLimit)

	data, err := emu.Dump()
	assert.NoError(err)

	// Resume into a fresh machine running the same program.
	other := newTestEmulator(t, conf, program)
	err = other.Resume(data)
	assert.NoError(err)

	assert.Equal(emu.Cpu.Registers, other.Cpu.Registers)
	assert.Equal(emu.Cpu.Ticks, other.Cpu.Ticks)
	assert.Equal(emu.LineNo(), other.LineNo())

	// Both continue identically.
	conf.Cpu.MaxTicks = 20
	emu.Config = conf
	other.Config = conf
	assert.ErrorIs(emu.Run(context.Background()), ErrTickLimit)
	assert.ErrorIs(other.Run(context.Background()), ErrTickLimit)
	assert.Equal(emu.Cpu.Registers, other.Cpu.Registers)

	again, err := other.Dump()
	assert.NoError(err)
	final, err := emu.Dump()
	assert.NoError(err)
	assert.Equal(final, again)

	err = other.Resume([]byte{0xff})
	assert.Error(err)
}

func TestEmulatorDumpPaged(t *testing.T) {
	assert := assert.New(t)

	conf := DefaultConfig()
	conf.Memory = MemoryConfig{Kind: MEMORY_PAGED}

	emu := newTestEmulator(t, conf, []string{"mov r3, 9", "halt"})
	assert.NoError(emu.Run(context.Background()))

	data, err := emu.Dump()
	assert.NoError(err)

	snap, err := cpu.UnmarshalSnapshot(data)
	assert.NoError(err)
	assert.Empty(snap.Memory)
	assert.Equal(uint32(9), snap.Registers[cpu.REG_R3])
	assert.Equal(byte(cpu.STATE_HALTED), snap.State)
}

func TestEmulatorResumeTape(t *testing.T) {
	assert := assert.New(t)

	conf := DefaultConfig()
	conf.Tape.Port = 0x2000
	program := []string{"mov r5, 3", "halt"}

	emu := newTestEmulator(t, conf, program)
	data, err := emu.Dump()
	assert.NoError(err)

	output := &bytes.Buffer{}
	other := newTestEmulator(t, conf, program)
	other.Tape.Output = output
	other.Cpu.Registers.Set(cpu.REG_R5, 9)

	assert.NoError(other.Resume(data))
	assert.Equal(0, output.Len())
	assert.Equal(emu.Cpu.Registers, other.Cpu.Registers)

	// The tape is attached again once restored.
	assert.Equal(other.Tape, other.Cpu.Memory)
	assert.NoError(other.Run(context.Background()))
	assert.Equal(uint32(3), other.Cpu.Registers.Get(cpu.REG_R5))
}
