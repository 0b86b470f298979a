package cpu

import (
	"fmt"
	"strings"
)

// Register names a slot in the register file.
type Register uint8

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_IP = Register(0)  // ip
	REG_R1 = Register(1)  // r1
	REG_R2 = Register(2)  // r2
	REG_R3 = Register(3)  // r3
	REG_R4 = Register(4)  // r4
	REG_R5 = Register(5)  // r5
	REG_R6 = Register(6)  // r6
	REG_R7 = Register(7)  // r7
	REG_R8 = Register(8)  // r8
	REG_FP = Register(9)  // fp
	REG_SP = Register(10) // sp
)

const REGISTER_COUNT = 11 // Number of registers in the register file.

// RegisterFrom decodes a register byte.
func RegisterFrom(value byte) (reg Register, err error) {
	if int(value) >= REGISTER_COUNT {
		err = ErrInvalidRegister(value)
		return
	}

	reg = Register(value)
	return
}

// RegisterByName looks up a register by its assembler name.
func RegisterByName(name string) (reg Register, ok bool) {
	name = strings.ToLower(name)
	for n := range REGISTER_COUNT {
		if Register(n).String() == name {
			return Register(n), true
		}
	}

	return
}

// Registers is the register file. It is only accessed through Get and Set.
type Registers struct {
	register [REGISTER_COUNT]uint32
}

// NewRegisters creates a register file with IP at the program start and
// the stack and frame pointers at the stack start.
func NewRegisters(programStart, stackStart uint32) (regs Registers) {
	regs.Set(REG_IP, programStart)
	regs.Set(REG_SP, stackStart)
	regs.Set(REG_FP, stackStart)
	return
}

// Get the value of a register.
func (regs *Registers) Get(reg Register) uint32 {
	return regs.register[reg]
}

// Set the value of a register.
func (regs *Registers) Set(reg Register, value uint32) {
	regs.register[reg] = value
}

// Values returns a copy of the register file, in encoding order.
func (regs *Registers) Values() []uint32 {
	return append([]uint32(nil), regs.register[:]...)
}

func (regs *Registers) String() (text string) {
	for n, value := range regs.register {
		text += fmt.Sprintf("% 5s: %04X_%04X\n", Register(n), value>>16, value&0xffff)
	}
	return
}
