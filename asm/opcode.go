package asm

import (
	"github.com/ezrec/vmcpu/cpu"
	"github.com/ezrec/vmcpu/memory"
)

// LinkField selects the operand a label is linked into.
type LinkField int

const (
	LINK_ADDR  = LinkField(0) // The address operand, or the left side of a compare.
	LINK_VALUE = LinkField(1) // The immediate operand.
)

// Opcode is one assembled instruction, and where it came from.
type Opcode struct {
	LineNo    int             // Source line number.
	Ip        int             // Program relative offset.
	Words     []string        // Source words, after expansion.
	Inst      cpu.Instruction // Assembled instruction.
	LinkLabel string          // Label to link, if any.
	LinkField LinkField       // Operand the label links into.
}

// Size of the encoded instruction.
func (op *Opcode) Size() int {
	return op.Inst.OpCode().Size()
}

// relink returns inst with the address or immediate operand set to value.
func relink(inst cpu.Instruction, field LinkField, value uint32) cpu.Instruction {
	addr := memory.Address(value)
	imm := cpu.U32(value)

	switch i := inst.(type) {
	case cpu.MovRegMem:
		i.Addr = addr
		return i
	case cpu.MovRegNum:
		i.Value = imm
		return i
	case cpu.MovMemReg:
		i.Addr = addr
		return i
	case cpu.MovMemNum:
		if field == LINK_VALUE {
			i.Value = imm
		} else {
			i.Addr = addr
		}
		return i
	case cpu.AddRegNum:
		i.Value = imm
		return i
	case cpu.AddRegMem:
		i.Addr = addr
		return i
	case cpu.AddMemReg:
		i.Addr = addr
		return i
	case cpu.IncMem:
		i.Addr = addr
		return i
	case cpu.PushMem:
		i.Addr = addr
		return i
	case cpu.PushVal:
		i.Value = imm
		return i
	case cpu.CmpVal:
		// LINK_ADDR selects the left hand side.
		if field == LINK_VALUE {
			i.B = imm
		} else {
			i.A = imm
		}
		return i
	case cpu.Jump:
		i.Addr = addr
		return i
	case cpu.JumpGe:
		i.Addr = addr
		return i
	case cpu.JumpGte:
		i.Addr = addr
		return i
	case cpu.JumpLt:
		i.Addr = addr
		return i
	case cpu.JumpLte:
		i.Addr = addr
		return i
	case cpu.Call:
		i.Addr = addr
		return i
	case cpu.Load:
		i.Addr = addr
		return i
	case cpu.StoreReg:
		i.Addr = addr
		return i
	case cpu.StoreVal:
		if field == LINK_VALUE {
			i.Value = imm
		} else {
			i.Addr = addr
		}
		return i
	case cpu.Interrupt:
		i.Index = value
		return i
	}

	return inst
}
