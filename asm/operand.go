package asm

import (
	"strings"

	"github.com/ezrec/vmcpu/cpu"
	"github.com/ezrec/vmcpu/memory"
)

// operandKind classifies a parsed operand.
type operandKind int

const (
	OPERAND_REG   = operandKind(0) // Register name.
	OPERAND_MEM   = operandKind(1) // Bracketed memory reference.
	OPERAND_VALUE = operandKind(2) // Immediate or bare address.
)

// operand is a parsed instruction operand. A label leaves value zero
// until link time.
type operand struct {
	kind  operandKind
	reg   cpu.Register
	value cpu.Value
	label string
}

// addr returns the operand as a program relative address.
func (opr operand) addr() memory.Address {
	return memory.Address(opr.value.Uint32())
}

// memoryOperand strips the brackets from a memory reference.
func memoryOperand(word string) (inner string, ok bool) {
	if len(word) < 2 || word[0] != '[' || word[len(word)-1] != ']' {
		return
	}

	inner = strings.TrimSpace(word[1 : len(word)-1])
	ok = len(inner) > 0
	return
}

// parseOperand parses a register, a memory reference, a number or a label.
func (asm *Assembler) parseOperand(word string) (opr operand, err error) {
	if inner, ok := memoryOperand(word); ok {
		opr, err = asm.parseValue(inner)
		if err != nil {
			return
		}
		if opr.label == "" {
			// Addresses are always 32 bits.
			opr.value = cpu.U32(opr.value.Uint32())
		}
		opr.kind = OPERAND_MEM
		return
	}

	if reg, ok := cpu.RegisterByName(word); ok {
		opr = operand{kind: OPERAND_REG, reg: reg}
		return
	}

	return asm.parseValue(word)
}

// parseValue parses a number, or a label to be linked later.
func (asm *Assembler) parseValue(word string) (opr operand, err error) {
	opr.kind = OPERAND_VALUE

	value, err := numberOf(word)
	if err == nil {
		opr.value = value
		return
	}

	if reLabel.MatchString(word) {
		if _, isReg := cpu.RegisterByName(word); !isReg {
			err = nil
			opr.value = cpu.U32(0)
			opr.label = word
			return
		}
	}

	err = ErrParseValue(word)
	return
}
