package cpu

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/ezrec/vmcpu/memory"
)

// Snapshot is a serialisable capture of the CPU and a window of memory.
type Snapshot struct {
	Registers      []uint32       `cbor:"1,keyasint"`
	Flags          byte           `cbor:"2,keyasint"`
	State          byte           `cbor:"3,keyasint"`
	InInterrupt    bool           `cbor:"4,keyasint"`
	InterruptFrame uint32         `cbor:"5,keyasint"`
	Ticks          uint64         `cbor:"6,keyasint"`
	Base           memory.Address `cbor:"7,keyasint"`           // Start of the memory window.
	Memory         []byte         `cbor:"8,keyasint,omitempty"` // Contents of the memory window.
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("cpu: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Snapshot captures the CPU state and the memory range [start, end).
func (cpu *Cpu) Snapshot(start, end memory.Address) (snap *Snapshot, err error) {
	data, err := cpu.Memory.Get(start, end)
	if err != nil {
		return
	}

	snap = &Snapshot{
		Registers:      cpu.Registers.Values(),
		Flags:          byte(cpu.Flags),
		State:          byte(cpu.State),
		InInterrupt:    cpu.InInterrupt,
		InterruptFrame: cpu.interruptFrame,
		Ticks:          uint64(cpu.Ticks),
		Base:           start,
		Memory:         append([]byte(nil), data...),
	}

	return
}

// Restore the CPU state and memory window from a snapshot. The CPU state
// is only updated once the memory window has been written.
func (cpu *Cpu) Restore(snap *Snapshot) (err error) {
	if len(snap.Registers) != REGISTER_COUNT {
		err = ErrSnapshotRegisters
		return
	}

	flags, err := ComparisonFrom(snap.Flags)
	if err != nil {
		return
	}

	state := State(snap.State)
	if state != STATE_RUNNING && state != STATE_HALTED {
		err = ErrSnapshotState
		return
	}

	err = memory.WriteBytes(cpu.Memory, snap.Base, snap.Memory)
	if err != nil {
		return
	}

	for n, value := range snap.Registers {
		cpu.Registers.Set(Register(n), value)
	}
	cpu.Flags = flags
	cpu.State = state
	cpu.InInterrupt = snap.InInterrupt
	cpu.interruptFrame = snap.InterruptFrame
	cpu.Ticks = int(snap.Ticks)

	return
}

// MarshalSnapshot serializes a Snapshot to canonical CBOR.
func MarshalSnapshot(snap *Snapshot) ([]byte, error) {
	return cborEncMode.Marshal(snap)
}

// UnmarshalSnapshot deserializes a Snapshot from CBOR.
func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("cpu: unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
