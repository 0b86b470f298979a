package emulator

import (
	"bytes"
	"context"
	"errors"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vmcpu/asm"
	"github.com/ezrec/vmcpu/cpu"
	"github.com/ezrec/vmcpu/memory"
)

func newTestEmulator(t *testing.T, conf Config, program []string) (emu *Emulator) {
	emu, err := NewEmulator(conf)
	if err != nil {
		t.Fatal(err)
	}

	return loadInto(t, emu, program)
}

// loadInto assembles program with the emulator's defines, and loads it.
func loadInto(t *testing.T, emu *Emulator, program []string) *Emulator {
	as := &asm.Assembler{}
	emu.Predefine(as)
	prog, err := as.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}

	err = emu.Load(prog)
	if err != nil {
		t.Fatal(err)
	}

	return emu
}

func TestConfig(t *testing.T) {
	assert := assert.New(t)

	conf, err := ParseConfig("")
	assert.NoError(err)
	assert.Equal(DefaultConfig(), conf)

	conf, err = ParseConfig(`
[memory]
kind = "paged"

[cpu]
program_start = 0x4000
max_ticks = 1000
`)
	assert.NoError(err)
	assert.Equal(MEMORY_PAGED, conf.Memory.Kind)
	assert.Equal(uint64(0x10000), conf.Memory.Size)
	assert.Equal(uint32(0x4000), conf.Cpu.ProgramStart)
	assert.Equal(uint32(0x10000), conf.Cpu.StackStart)
	assert.Equal(1000, conf.Cpu.MaxTicks)

	mem, err := conf.NewMemory()
	assert.NoError(err)
	_, ok := mem.(*memory.Paged)
	assert.True(ok)
}

func TestConfigErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := ParseConfig("[memory]\nkind = \"rom\"\n")
	assert.Equal(ErrConfigMemoryKind("rom"), err)

	_, err = ParseConfig("[memory]\nsize = 0\n")
	assert.Equal(ErrConfigMemorySize(0), err)

	_, err = ParseConfig("[memory]\nsize = 0x100000000\n")
	assert.Equal(ErrConfigMemorySize(0x100000000), err)

	_, err = ParseConfig("[memory]\nkind = \"paged\"\nsize = 0x100000001\n")
	assert.Equal(ErrConfigMemorySize(0x100000001), err)

	_, err = ParseConfig("[cpu]\nmax_ticks = -1\n")
	assert.ErrorIs(err, ErrConfigMaxTicks)

	_, err = ParseConfig("[cpu]\nspeed = 10\n")
	assert.Equal(ErrConfigKey("cpu.speed"), err)

	_, err = ParseConfig("[cpu\n")
	assert.Error(err)
}

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "machine.toml")
	err := os.WriteFile(path, []byte("[memory]\nsize = 0x2000\n[cpu]\nstack_start = 0x2000\n"), 0o644)
	assert.NoError(err)

	conf, err := LoadConfig(path)
	assert.NoError(err)
	assert.Equal(uint64(0x2000), conf.Memory.Size)
	assert.Equal(uint32(0x2000), conf.Cpu.StackStart)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(err)
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(DefaultConfig())
	assert.NoError(err)

	assert.False(emu.Verbose)
	assert.Equal(memory.Address(0x1000), emu.Cpu.Ip())
	assert.Equal(0, emu.LineNo())

	_, err = NewEmulator(Config{Memory: MemoryConfig{Kind: "rom"}})
	assert.Equal(ErrConfigMemoryKind("rom"), err)
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(DefaultConfig())
	assert.NoError(err)

	defines := maps.Collect(emu.Defines())
	assert.Equal("0x1000", defines["PROGRAM_START"])
	assert.Equal("0x10000", defines["STACK_START"])
	assert.Equal("0x0", defines["INTERRUPT_TABLE"])
	assert.Equal("0x10000", defines["MEMORY_SIZE"])
	assert.Equal("4", defines["WORD_SIZE"])
	assert.Equal("11", defines["REGISTER_COUNT"])

	// Early exit from the iterator.
	count := 0
	for range emu.Defines() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(3, count)

	conf := DefaultConfig()
	conf.Memory = MemoryConfig{Kind: MEMORY_PAGED}
	defines = maps.Collect(conf.Defines())
	assert.Equal("0x100000000", defines["MEMORY_SIZE"])
}

func TestEmulatorLineNo(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"; count to three",
		"mov r1, 0",
		"loop: inc r1",
		"cmp r1, r2",
		"jlt loop",
		"halt",
	}

	emu := newTestEmulator(t, DefaultConfig(), program)
	emu.Cpu.Registers.Set(cpu.REG_R2, 2)

	lines := []int{}
	for {
		lines = append(lines, emu.LineNo())
		done, err := emu.Tick()
		assert.NoError(err)
		if err != nil || done {
			break
		}
	}

	assert.Equal([]int{2, 3, 4, 5, 3, 4, 5, 6}, lines)
	assert.Equal(uint32(2), emu.Cpu.Registers.Get(cpu.REG_R1))
	assert.Equal(6, emu.LineNo())

	// Halted is terminal.
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorRun(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"mov r1, PROGRAM_START",
		"mov r2, STACK_START",
		"mov r5, 0x1234",
		"call double",
		"push r5",
		"pop r6",
		"halt",
		"double: add r5, r5",
		"mov [result], r5",
		"ret",
		"result: halt",
	}

	emu := newTestEmulator(t, DefaultConfig(), program)

	err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(cpu.STATE_HALTED, emu.Cpu.State)
	assert.Equal(uint32(0x1000), emu.Cpu.Registers.Get(cpu.REG_R1))
	assert.Equal(uint32(0x10000), emu.Cpu.Registers.Get(cpu.REG_R2))
	assert.Equal(uint32(0x2468), emu.Cpu.Registers.Get(cpu.REG_R6))
	assert.Equal(uint32(0x10000), emu.Cpu.Registers.Get(cpu.REG_SP))

	result, err := memory.ReadU32(emu.Cpu.Memory, 0x1000+34)
	assert.NoError(err)
	assert.Equal(uint32(0x2468), result)
}

func TestEmulatorVector(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"int 2",
		"int 2",
		"halt",
		"tick: inc r5",
		"ret",
		".int 2 tick",
	}

	emu := newTestEmulator(t, DefaultConfig(), program)

	err := emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(uint32(2), emu.Cpu.Registers.Get(cpu.REG_R5))
	assert.False(emu.Cpu.InInterrupt)
}

func TestEmulatorTickLimit(t *testing.T) {
	assert := assert.New(t)

	conf := DefaultConfig()
	conf.Cpu.MaxTicks = 10

	emu := newTestEmulator(t, conf, []string{"loop: jmp loop"})

	err := emu.Run(context.Background())
	assert.ErrorIs(err, ErrTickLimit)
	assert.Equal(10, emu.Cpu.Ticks)
	assert.Equal(cpu.STATE_RUNNING, emu.Cpu.State)
}

func TestEmulatorCancel(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEmulator(t, DefaultConfig(), []string{"loop: jmp loop"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := emu.Run(ctx)
	assert.ErrorIs(err, context.Canceled)
	assert.Equal(0, emu.Cpu.Ticks)
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"mov r1, 1",
		"",
		"pop r2",
		"halt",
	}

	emu := newTestEmulator(t, DefaultConfig(), program)

	err := emu.Run(context.Background())

	var rt *ErrRuntime
	if assert.True(errors.As(err, &rt)) {
		assert.Equal(3, rt.LineNo)
	}

	var fault *cpu.ErrFault
	if assert.True(errors.As(err, &fault)) {
		assert.Equal(memory.Address(0x1003), fault.Ip)
		assert.Equal(cpu.OP_POP_REG, fault.OpCode)
	}
	assert.ErrorIs(err, memory.ErrInvalidAddress(0))

	// IP is left on the faulting instruction.
	assert.Equal(3, emu.LineNo())
}

func TestEmulatorLoadImage(t *testing.T) {
	assert := assert.New(t)

	emu, err := NewEmulator(DefaultConfig())
	assert.NoError(err)

	image := cpu.AppendInstruction(nil, cpu.MovRegNum{Dst: cpu.REG_R4, Value: cpu.U16(0xbeef)})
	image = cpu.AppendInstruction(image, cpu.Halt{})

	err = emu.LoadImage(bytes.NewReader(image))
	assert.NoError(err)

	err = emu.Run(context.Background())
	assert.NoError(err)
	assert.Equal(uint32(0xbeef), emu.Cpu.Registers.Get(cpu.REG_R4))
	assert.Equal(0, emu.LineNo())
}

func TestEmulatorLoadErrors(t *testing.T) {
	assert := assert.New(t)

	conf := DefaultConfig()
	conf.Memory.Size = 0x1002

	emu, err := NewEmulator(conf)
	assert.NoError(err)

	as := &asm.Assembler{}
	prog, err := as.Parse(strings.NewReader("mov r1, 0x12345678"))
	assert.NoError(err)

	err = emu.Load(prog)
	assert.ErrorIs(err, memory.ErrInvalidAddress(0))

	err = emu.LoadImage(bytes.NewReader([]byte{0, 1, 2, 3}))
	assert.ErrorIs(err, memory.ErrInvalidAddress(0))

	// Vector table entries outside of memory.
	conf = DefaultConfig()
	conf.Cpu.InterruptTable = 0xfff0
	emu, err = NewEmulator(conf)
	assert.NoError(err)

	prog, err = as.Parse(strings.NewReader("h: ret\n.int 2 h\n.int 3 h\n.int 4 h\n"))
	assert.NoError(err)

	err = emu.Load(prog)
	assert.ErrorIs(err, memory.ErrInvalidAddress(0))
}
