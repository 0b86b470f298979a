package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vmcpu/memory"
)

func TestInterrupt_Return(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, 0, assemble(
		MovRegNum{Dst: REG_R2, Value: U8(2)}, // 0x00
		Interrupt{Index: 1},                  // 0x03
		IncReg{Reg: REG_R5},                  // 0x08
		Halt{},                               // 0x0a
	))
	handler := assemble(
		MovRegNum{Dst: REG_R2, Value: U8(0x22)},
		IncReg{Reg: REG_R6},
		Ret{},
	)
	assert.NoError(memory.WriteBytes(cpu.Memory, 0x40, handler))
	assert.NoError(cpu.SetInterruptVector(1, 0x40))

	entry, err := memory.ReadU32(cpu.Memory, testTable+4)
	assert.NoError(err)
	assert.Equal(uint32(0x40), entry)

	assert.NoError(cpu.Execute())

	assert.False(cpu.InInterrupt)
	assert.Equal(uint32(2), cpu.Registers.Get(REG_R2))
	assert.Equal(uint32(1), cpu.Registers.Get(REG_R5))
	assert.Equal(uint32(1), cpu.Registers.Get(REG_R6))
	assert.Equal(uint32(testStack), cpu.Registers.Get(REG_SP))
	assert.Equal(uint32(testStack), cpu.Registers.Get(REG_FP))
	assert.Equal(memory.Address(0x0a), cpu.Ip())
}

func TestInterrupt_Nested(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, 0, assemble(
		Interrupt{Index: 0}, // 0x00
		Halt{},              // 0x05
	))
	outer := assemble(
		MovRegNum{Dst: REG_R1, Value: U8(7)},
		MovRegNum{Dst: REG_R3, Value: U8(1)},
		InterruptReg{Reg: REG_R3},
	)
	inner := assemble(
		Ret{},
	)
	assert.NoError(memory.WriteBytes(cpu.Memory, 0x20, outer))
	assert.NoError(memory.WriteBytes(cpu.Memory, 0x40, inner))
	assert.NoError(cpu.SetInterruptVector(0, 0x20))
	assert.NoError(cpu.SetInterruptVector(1, 0x40))

	// int 0
	_, err := cpu.Step()
	assert.NoError(err)
	assert.True(cpu.InInterrupt)
	sp := cpu.Registers.Get(REG_SP)
	assert.Equal(uint32(testStack-4*FRAME_WORDS), sp)

	// mov, mov, int r3
	for range 3 {
		_, err = cpu.Step()
		assert.NoError(err)
	}

	// The nested interrupt saved nothing.
	assert.True(cpu.InInterrupt)
	assert.Equal(sp, cpu.Registers.Get(REG_SP))
	assert.Equal(memory.Address(0x40), cpu.Ip())

	// Its ret unwinds the outer frame.
	assert.NoError(cpu.Execute())
	assert.False(cpu.InInterrupt)
	assert.Equal(uint32(0), cpu.Registers.Get(REG_R1))
	assert.Equal(uint32(0), cpu.Registers.Get(REG_R3))
	assert.Equal(uint32(testStack), cpu.Registers.Get(REG_SP))
	assert.Equal(memory.Address(5), cpu.Ip())
}

func TestInterrupt_CallInsideHandler(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, 0, assemble(
		Interrupt{Index: 3}, // 0x00
		Halt{},              // 0x05
	))
	handler := assemble(
		Call{Addr: 0x60},
		Ret{},
	)
	function := assemble(
		IncReg{Reg: REG_R8},
		Ret{},
	)
	assert.NoError(memory.WriteBytes(cpu.Memory, 0x40, handler))
	assert.NoError(memory.WriteBytes(cpu.Memory, 0x60, function))
	assert.NoError(cpu.SetInterruptVector(3, 0x40))

	var guard []bool
	for {
		state, err := cpu.Step()
		if !assert.NoError(err) || state == STATE_HALTED {
			break
		}
		guard = append(guard, cpu.InInterrupt)
	}

	// A plain ret inside the handler leaves the interrupt active.
	assert.Equal([]bool{true, true, true, true, false}, guard)
	assert.Equal(uint32(1), cpu.Registers.Get(REG_R8))
}

func TestInterrupt_Vector(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, 0, nil)

	err := cpu.SetInterruptVector(0x40000000, 0)
	assert.ErrorIs(err, ErrInterruptVector)

	err = cpu.SetInterruptVector(0x100, 0)
	assert.ErrorIs(err, memory.ErrInvalidAddress(0))

	err = cpu.HandleInterrupt(0x40000000)
	assert.ErrorIs(err, ErrInterruptVector)
	assert.False(cpu.InInterrupt)
	assert.Equal(uint32(testStack), cpu.Registers.Get(REG_SP))
}
