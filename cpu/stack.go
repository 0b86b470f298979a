package cpu

import (
	"log"

	"github.com/ezrec/vmcpu/memory"
)

// FRAME_WORDS is the number of words saved by Call: r1-r4, the return
// address and the frame size.
const FRAME_WORDS = 6

// pushAt writes a word below sp, one byte at a time, least significant
// byte first. The word occupies [sp-4, sp).
func (cpu *Cpu) pushAt(sp memory.Address, value uint32) (next memory.Address, err error) {
	next = sp
	for i := range 4 {
		next, err = next.Prev()
		if err != nil {
			return
		}
		err = cpu.Memory.Write(next, byte(value>>(8*i)))
		if err != nil {
			return
		}
	}

	return
}

// popAt reads the word pushed at sp, and returns the address above it.
func (cpu *Cpu) popAt(sp memory.Address) (value uint32, next memory.Address, err error) {
	next = sp
	for i := 3; i >= 0; i-- {
		var b byte
		b, err = cpu.Memory.Read(next)
		if err != nil {
			return
		}
		value |= uint32(b) << (8 * i)
		next, err = next.Next()
		if err != nil {
			return
		}
	}

	return
}

// Push a word onto the stack. SP is only updated on success.
func (cpu *Cpu) Push(value uint32) (err error) {
	sp, err := cpu.pushAt(memory.Address(cpu.get(REG_SP)), value)
	if err != nil {
		return
	}

	cpu.set(REG_SP, uint32(sp))
	return
}

// Pop a word from the stack. SP is only updated on success.
func (cpu *Cpu) Pop() (value uint32, err error) {
	value, sp, err := cpu.popAt(memory.Address(cpu.get(REG_SP)))
	if err != nil {
		return
	}

	cpu.set(REG_SP, uint32(sp))
	return
}

// pushFrame saves r1-r4 and the return address, then a frame size word
// that lets Ret recover the caller's FP. FP is set to the new frame base.
// On failure SP and FP are unchanged.
func (cpu *Cpu) pushFrame(ret uint32) (err error) {
	oldFp := cpu.get(REG_FP)

	sp := memory.Address(cpu.get(REG_SP))
	for _, value := range []uint32{
		cpu.get(REG_R1),
		cpu.get(REG_R2),
		cpu.get(REG_R3),
		cpu.get(REG_R4),
		ret,
	} {
		sp, err = cpu.pushAt(sp, value)
		if err != nil {
			return
		}
	}

	// The frame base is where SP lands after the size word.
	newFp := uint32(sp) - 4
	sp, err = cpu.pushAt(sp, oldFp-newFp)
	if err != nil {
		return
	}

	cpu.set(REG_SP, uint32(sp))
	cpu.set(REG_FP, uint32(sp))

	return
}

// call saves a frame and jumps to addr. IP already holds the return
// address.
func (cpu *Cpu) call(addr memory.Address) (err error) {
	target, err := cpu.resolve(addr)
	if err != nil {
		return
	}

	err = cpu.pushFrame(cpu.get(REG_IP))
	if err != nil {
		return
	}

	cpu.set(REG_IP, uint32(target))
	return
}

// ret unwinds the frame at FP, restoring r1-r4, IP, SP and the caller's FP.
func (cpu *Cpu) ret() (err error) {
	fp := cpu.get(REG_FP)

	var frame [FRAME_WORDS]uint32
	sp := memory.Address(fp)
	for n := range frame {
		frame[n], sp, err = cpu.popAt(sp)
		if err != nil {
			return
		}
	}

	size, ip := frame[0], frame[1]
	cpu.set(REG_R4, frame[2])
	cpu.set(REG_R3, frame[3])
	cpu.set(REG_R2, frame[4])
	cpu.set(REG_R1, frame[5])
	cpu.set(REG_IP, ip)
	cpu.set(REG_SP, uint32(sp))
	cpu.set(REG_FP, fp+size)

	if cpu.InInterrupt && fp == cpu.interruptFrame {
		cpu.InInterrupt = false
		if cpu.Verbose {
			log.Printf("cpu: interrupt return to %v", memory.Address(ip))
		}
	}

	return
}
