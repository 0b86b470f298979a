package asm

import (
	"github.com/ezrec/vmcpu/cpu"
	"github.com/ezrec/vmcpu/memory"
)

// Vector is an interrupt table entry requested by an .int directive.
type Vector struct {
	Index uint32         // Interrupt number.
	Label string         // Handler label.
	Addr  memory.Address // Program relative handler address.
}

// Program is the output of the assembler.
type Program struct {
	Opcodes []Opcode
	Vectors []Vector
}

// Debug locates the opcode covering a program relative address.
type Debug struct {
	*Opcode
	Offset int // Byte offset of the address within the instruction.
}

// Debug returns the opcode that ip falls within. The embedded Opcode is
// nil if no instruction covers ip.
func (prog *Program) Debug(ip memory.Address) (dbg Debug) {
	for n, op := range prog.Opcodes {
		start := memory.Address(op.Ip)
		if ip >= start && ip < start+memory.Address(op.Size()) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Offset: int(ip - start),
			}
			break
		}
	}

	return
}

// Instructions returns the assembled instructions, in program order.
func (prog *Program) Instructions() (insts []cpu.Instruction) {
	for _, op := range prog.Opcodes {
		insts = append(insts, op.Inst)
	}

	return
}

// Binary returns the encoded program image.
func (prog *Program) Binary() (image []byte) {
	for _, op := range prog.Opcodes {
		image = cpu.AppendInstruction(image, op.Inst)
	}

	return
}

// Size of the encoded program image in bytes.
func (prog *Program) Size() (size int) {
	for _, op := range prog.Opcodes {
		size += op.Size()
	}

	return
}
