package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vmcpu/memory"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	assert := assert.New(t)

	cpu, mem := newTestCpu(t, 0, assemble(
		MovRegNum{Dst: REG_R1, Value: U8(10)},
		PushReg{Reg: REG_R1},
		CmpVal{A: U8(2), B: U8(1)},
		Interrupt{Index: 0},
		Halt{},
	))
	assert.NoError(cpu.SetInterruptVector(0, 0x80))
	assert.NoError(memory.WriteBytes(mem, 0x80, assemble(Halt{})))
	assert.NoError(cpu.Execute())

	snap, err := cpu.Snapshot(0, testMemorySize)
	assert.NoError(err)

	data, err := MarshalSnapshot(snap)
	assert.NoError(err)

	// Canonical encoding is deterministic.
	again, err := MarshalSnapshot(snap)
	assert.NoError(err)
	assert.Equal(data, again)

	decoded, err := UnmarshalSnapshot(data)
	assert.NoError(err)
	assert.Equal(snap, decoded)

	restored, rmem := newTestCpu(t, 0, nil)
	assert.NoError(restored.Restore(decoded))

	assert.Equal(cpu.Registers.Values(), restored.Registers.Values())
	assert.Equal(CMP_GT, restored.Flags)
	assert.Equal(STATE_HALTED, restored.State)
	assert.True(restored.InInterrupt)
	assert.Equal(cpu.Ticks, restored.Ticks)
	assert.Equal(mem.Data, rmem.Data)

	// The restored interrupt frame still unwinds.
	restored.State = STATE_RUNNING
	restored.Registers.Set(REG_IP, 0x81)
	assert.NoError(memory.WriteBytes(rmem, 0x81, assemble(Ret{})))
	_, err = restored.Step()
	assert.NoError(err)
	assert.False(restored.InInterrupt)
}

func TestSnapshot_Invalid(t *testing.T) {
	assert := assert.New(t)

	cpu, _ := newTestCpu(t, 0, nil)

	err := cpu.Restore(&Snapshot{Registers: []uint32{1, 2, 3}})
	assert.ErrorIs(err, ErrSnapshotRegisters)

	err = cpu.Restore(&Snapshot{Registers: make([]uint32, REGISTER_COUNT), Flags: 9})
	assert.Equal(ErrInvalidComparison(9), err)

	err = cpu.Restore(&Snapshot{Registers: make([]uint32, REGISTER_COUNT), State: 2})
	assert.ErrorIs(err, ErrSnapshotState)

	_, err = cpu.Snapshot(0, testMemorySize+1)
	assert.ErrorIs(err, memory.ErrInvalidAddress(0))

	_, err = UnmarshalSnapshot([]byte{0xff})
	assert.Error(err)
}
