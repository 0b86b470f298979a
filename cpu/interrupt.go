package cpu

import (
	"log"
	"math"

	"github.com/ezrec/vmcpu/memory"
)

// vector returns the absolute address of an interrupt table entry.
func (cpu *Cpu) vector(index uint32) (entry memory.Address, err error) {
	if index > math.MaxUint32/4 {
		err = ErrInterruptVector
		return
	}

	return cpu.interruptTable.Offset(index * 4)
}

// HandleInterrupt transfers control to the handler at index in the
// interrupt table, returning to the current IP.
//
// The caller's context is saved with a Call frame only when no interrupt
// is already active. A nested interrupt does not save anything, and its
// handler's Ret unwinds the outer interrupt's frame.
func (cpu *Cpu) HandleInterrupt(index uint32) (err error) {
	entry, err := cpu.vector(index)
	if err != nil {
		return
	}

	handler, err := memory.ReadU32(cpu.Memory, entry)
	if err != nil {
		return
	}

	target, err := cpu.resolve(memory.Address(handler))
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("cpu: interrupt %d -> %v", index, target)
	}

	if !cpu.InInterrupt {
		err = cpu.pushFrame(cpu.get(REG_IP))
		if err != nil {
			return
		}
		cpu.InInterrupt = true
		cpu.interruptFrame = cpu.get(REG_FP)
	}

	cpu.set(REG_IP, uint32(target))

	return
}

// SetInterruptVector installs a program relative handler address.
func (cpu *Cpu) SetInterruptVector(index uint32, handler memory.Address) (err error) {
	entry, err := cpu.vector(index)
	if err != nil {
		return
	}

	return memory.WriteU32(cpu.Memory, entry, uint32(handler))
}
