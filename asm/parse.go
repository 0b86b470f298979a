package asm

import (
	"log"
	"strings"

	"github.com/ezrec/vmcpu/cpu"
)

// jumpMap maps control transfer mnemonics to their instruction builders.
var jumpMap = map[string]func(opr operand) cpu.Instruction{
	"jmp":  func(opr operand) cpu.Instruction { return cpu.Jump{Addr: opr.addr()} },
	"jump": func(opr operand) cpu.Instruction { return cpu.Jump{Addr: opr.addr()} },
	"jge":  func(opr operand) cpu.Instruction { return cpu.JumpGe{Addr: opr.addr()} },
	"jgte": func(opr operand) cpu.Instruction { return cpu.JumpGte{Addr: opr.addr()} },
	"jlt":  func(opr operand) cpu.Instruction { return cpu.JumpLt{Addr: opr.addr()} },
	"jlte": func(opr operand) cpu.Instruction { return cpu.JumpLte{Addr: opr.addr()} },
	"call": func(opr operand) cpu.Instruction { return cpu.Call{Addr: opr.addr()} },
}

// isKind checks operand kinds positionally.
func isKind(oprs []operand, kinds ...operandKind) bool {
	if len(oprs) != len(kinds) {
		return false
	}
	for n, kind := range kinds {
		if oprs[n].kind != kind {
			return false
		}
	}
	return true
}

// parseWords assembles the words of a single instruction.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	mnemonic := strings.ToLower(words[0])

	var oprs []operand
	var linked *operand
	for _, word := range words[1:] {
		var opr operand
		opr, err = asm.parseOperand(word)
		if err != nil {
			return
		}
		oprs = append(oprs, opr)
	}
	for n := range oprs {
		if oprs[n].label == "" {
			continue
		}
		if linked != nil {
			err = ErrLabelMultiple
			return
		}
		linked = &oprs[n]
	}

	expect := func(count int) error {
		switch {
		case len(oprs) < count:
			return ErrOpcodeMissing
		case len(oprs) > count:
			return ErrOpcodeExtraArgs
		}
		return nil
	}

	const (
		REG   = OPERAND_REG
		MEM   = OPERAND_MEM
		VALUE = OPERAND_VALUE
	)

	var inst cpu.Instruction
	field := LINK_VALUE

	switch mnemonic {
	case "mov":
		if err = expect(2); err != nil {
			return
		}
		a, b := oprs[0], oprs[1]
		switch {
		case isKind(oprs, REG, REG):
			inst = cpu.MovRegReg{Dst: a.reg, Src: b.reg}
		case isKind(oprs, REG, MEM):
			inst = cpu.MovRegMem{Dst: a.reg, Addr: b.addr()}
		case isKind(oprs, REG, VALUE):
			inst = cpu.MovRegNum{Dst: a.reg, Value: b.value}
		case isKind(oprs, MEM, REG):
			inst = cpu.MovMemReg{Addr: a.addr(), Src: b.reg}
		case isKind(oprs, MEM, VALUE):
			inst = cpu.MovMemNum{Addr: a.addr(), Value: b.value}
		}
	case "add":
		if err = expect(2); err != nil {
			return
		}
		a, b := oprs[0], oprs[1]
		switch {
		case isKind(oprs, REG, REG):
			inst = cpu.AddRegReg{Dst: a.reg, Src: b.reg}
		case isKind(oprs, REG, MEM):
			inst = cpu.AddRegMem{Dst: a.reg, Addr: b.addr()}
		case isKind(oprs, REG, VALUE):
			inst = cpu.AddRegNum{Dst: a.reg, Value: b.value}
		case isKind(oprs, MEM, REG):
			inst = cpu.AddMemReg{Addr: a.addr(), Src: b.reg}
		}
	case "inc":
		if err = expect(1); err != nil {
			return
		}
		switch oprs[0].kind {
		case REG:
			inst = cpu.IncReg{Reg: oprs[0].reg}
		case MEM:
			inst = cpu.IncMem{Addr: oprs[0].addr()}
		}
	case "push":
		if err = expect(1); err != nil {
			return
		}
		switch oprs[0].kind {
		case REG:
			inst = cpu.PushReg{Reg: oprs[0].reg}
		case MEM:
			inst = cpu.PushMem{Addr: oprs[0].addr()}
		case VALUE:
			inst = cpu.PushVal{Value: oprs[0].value}
		}
	case "pop":
		if err = expect(1); err != nil {
			return
		}
		if oprs[0].kind == REG {
			inst = cpu.PopReg{Reg: oprs[0].reg}
		}
	case "cmp":
		if err = expect(2); err != nil {
			return
		}
		a, b := oprs[0], oprs[1]
		switch {
		case isKind(oprs, REG, REG):
			inst = cpu.CmpReg{A: a.reg, B: b.reg}
		case isKind(oprs, VALUE, VALUE):
			// Both sides are encoded at the wider width.
			width := max(a.value.Width, b.value.Width)
			inst = cpu.CmpVal{
				A: cpu.Value{Width: width, Raw: a.value.Uint32()},
				B: cpu.Value{Width: width, Raw: b.value.Uint32()},
			}
			if a.label != "" {
				field = LINK_ADDR
			}
		}
	case "jmp", "jump", "jge", "jgte", "jlt", "jlte", "call":
		if err = expect(1); err != nil {
			return
		}
		if oprs[0].kind == VALUE {
			inst = jumpMap[mnemonic](oprs[0])
			field = LINK_ADDR
		}
	case "load":
		if err = expect(2); err != nil {
			return
		}
		if oprs[0].kind == REG && oprs[1].kind != REG {
			inst = cpu.Load{Dst: oprs[0].reg, Addr: oprs[1].addr()}
			field = LINK_ADDR
		}
	case "store":
		if err = expect(2); err != nil {
			return
		}
		a, b := oprs[0], oprs[1]
		switch {
		case isKind(oprs, MEM, REG):
			inst = cpu.StoreReg{Src: b.reg, Addr: a.addr()}
		case isKind(oprs, MEM, VALUE):
			inst = cpu.StoreVal{Addr: a.addr(), Value: b.value}
		}
	case "int":
		if err = expect(1); err != nil {
			return
		}
		switch oprs[0].kind {
		case REG:
			inst = cpu.InterruptReg{Reg: oprs[0].reg}
		case VALUE:
			inst = cpu.Interrupt{Index: oprs[0].value.Uint32()}
		}
	case "halt":
		if err = expect(0); err != nil {
			return
		}
		inst = cpu.Halt{}
	case "ret":
		if err = expect(0); err != nil {
			return
		}
		inst = cpu.Ret{}
	default:
		err = ErrInstructionInvalid
		return
	}

	if inst == nil {
		err = ErrOperandInvalid
		return
	}

	opcode := Opcode{
		LineNo: lineno,
		Ip:     asm.currentIp(),
		Words:  words,
		Inst:   inst,
	}
	if linked != nil {
		opcode.LinkLabel = linked.label
		opcode.LinkField = field
		if linked.kind == OPERAND_MEM {
			opcode.LinkField = LINK_ADDR
		}
	}

	if asm.Verbose {
		log.Printf("asm: %04x: %v", opcode.Ip, inst)
	}

	asm.Opcode = append(asm.Opcode, opcode)

	return
}
