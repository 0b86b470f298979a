package cpu

import (
	"encoding/binary"
	"iter"

	"github.com/ezrec/vmcpu/memory"
)

// unpack splits an operand window into raw fields, in layout order.
func unpack(op OpCode, operands []byte) (args []uint32, err error) {
	if !op.Valid() {
		err = ErrInvalidOpCode(op)
		return
	}
	if len(operands) != op.Size()-1 {
		err = ErrOperandWindow
		return
	}

	for _, arg := range op.layout() {
		var value uint32
		switch arg {
		case ARG_REG:
			var reg Register
			reg, err = RegisterFrom(operands[0])
			if err != nil {
				return
			}
			value = uint32(reg)
		case ARG_U8:
			value = uint32(operands[0])
		case ARG_U16:
			value = uint32(binary.LittleEndian.Uint16(operands))
		default:
			value = binary.LittleEndian.Uint32(operands)
		}
		args = append(args, value)
		operands = operands[arg.size():]
	}

	return
}

// pack appends raw fields using the opcode's layout.
func pack(buf []byte, op OpCode, args ...uint32) []byte {
	for n, arg := range op.layout() {
		value := args[n]
		switch arg {
		case ARG_REG, ARG_U8:
			buf = append(buf, byte(value))
		case ARG_U16:
			buf = binary.LittleEndian.AppendUint16(buf, uint16(value))
		default:
			buf = binary.LittleEndian.AppendUint32(buf, value)
		}
	}

	return buf
}

// Decode an instruction from its opcode and operand window. The window
// must be exactly op.Size()-1 bytes.
func Decode(op OpCode, operands []byte) (inst Instruction, err error) {
	a, err := unpack(op, operands)
	if err != nil {
		return
	}

	reg := func(n int) Register { return Register(a[n]) }
	addr := func(n int) memory.Address { return memory.Address(a[n]) }
	val := func(n int) Value { return Value{Width: op.layout()[n].width(), Raw: a[n]} }

	switch op {
	case OP_MOV_REG_MEM:
		inst = MovRegMem{Dst: reg(0), Addr: addr(1)}
	case OP_MOV_REG_REG:
		inst = MovRegReg{Dst: reg(0), Src: reg(1)}
	case OP_MOV_REG_U8, OP_MOV_REG_U16, OP_MOV_REG_U32:
		inst = MovRegNum{Dst: reg(0), Value: val(1)}
	case OP_MOV_MEM_REG:
		inst = MovMemReg{Addr: addr(0), Src: reg(1)}
	case OP_MOV_MEM_U8, OP_MOV_MEM_U16, OP_MOV_MEM_U32:
		inst = MovMemNum{Addr: addr(0), Value: val(1)}
	case OP_ADD_REG_REG:
		inst = AddRegReg{Dst: reg(0), Src: reg(1)}
	case OP_ADD_REG_MEM:
		inst = AddRegMem{Dst: reg(0), Addr: addr(1)}
	case OP_ADD_MEM_REG:
		inst = AddMemReg{Addr: addr(0), Src: reg(1)}
	case OP_ADD_REG_U8, OP_ADD_REG_U16, OP_ADD_REG_U32:
		inst = AddRegNum{Dst: reg(0), Value: val(1)}
	case OP_INC_REG:
		inst = IncReg{Reg: reg(0)}
	case OP_INC_MEM:
		inst = IncMem{Addr: addr(0)}
	case OP_PUSH_REG:
		inst = PushReg{Reg: reg(0)}
	case OP_PUSH_MEM:
		inst = PushMem{Addr: addr(0)}
	case OP_PUSH_U8, OP_PUSH_U16, OP_PUSH_U32:
		inst = PushVal{Value: val(0)}
	case OP_POP_REG:
		inst = PopReg{Reg: reg(0)}
	case OP_CMP_REG:
		inst = CmpReg{A: reg(0), B: reg(1)}
	case OP_CMP_U8, OP_CMP_U16, OP_CMP_U32:
		inst = CmpVal{A: val(0), B: val(1)}
	case OP_JUMP:
		inst = Jump{Addr: addr(0)}
	case OP_JUMP_GE:
		inst = JumpGe{Addr: addr(0)}
	case OP_JUMP_GTE:
		inst = JumpGte{Addr: addr(0)}
	case OP_JUMP_LE:
		inst = JumpLt{Addr: addr(0)}
	case OP_JUMP_LTE:
		inst = JumpLte{Addr: addr(0)}
	case OP_CALL:
		inst = Call{Addr: addr(0)}
	case OP_LOAD:
		inst = Load{Dst: reg(0), Addr: addr(1)}
	case OP_HALT:
		inst = Halt{}
	case OP_RET:
		inst = Ret{}
	case OP_INTERRUPT:
		inst = Interrupt{Index: a[0]}
	case OP_INTERRUPT_REG:
		inst = InterruptReg{Reg: reg(0)}
	case OP_STORE_REG:
		inst = StoreReg{Src: reg(0), Addr: addr(1)}
	case OP_STORE_U8, OP_STORE_U16, OP_STORE_U32:
		inst = StoreVal{Addr: addr(0), Value: val(1)}
	default:
		err = ErrInvalidOpCode(op)
	}

	return
}

// fields returns the raw operand fields of an instruction, in layout order.
func fields(inst Instruction) []uint32 {
	switch i := inst.(type) {
	case MovRegMem:
		return []uint32{uint32(i.Dst), uint32(i.Addr)}
	case MovRegReg:
		return []uint32{uint32(i.Dst), uint32(i.Src)}
	case MovRegNum:
		return []uint32{uint32(i.Dst), i.Value.Uint32()}
	case MovMemReg:
		return []uint32{uint32(i.Addr), uint32(i.Src)}
	case MovMemNum:
		return []uint32{uint32(i.Addr), i.Value.Uint32()}
	case AddRegReg:
		return []uint32{uint32(i.Dst), uint32(i.Src)}
	case AddRegNum:
		return []uint32{uint32(i.Dst), i.Value.Uint32()}
	case AddRegMem:
		return []uint32{uint32(i.Dst), uint32(i.Addr)}
	case AddMemReg:
		return []uint32{uint32(i.Addr), uint32(i.Src)}
	case IncReg:
		return []uint32{uint32(i.Reg)}
	case IncMem:
		return []uint32{uint32(i.Addr)}
	case PushReg:
		return []uint32{uint32(i.Reg)}
	case PushMem:
		return []uint32{uint32(i.Addr)}
	case PushVal:
		return []uint32{i.Value.Uint32()}
	case PopReg:
		return []uint32{uint32(i.Reg)}
	case CmpReg:
		return []uint32{uint32(i.A), uint32(i.B)}
	case CmpVal:
		return []uint32{i.A.Uint32(), i.B.Uint32() & i.A.Width.Mask()}
	case Jump:
		return []uint32{uint32(i.Addr)}
	case JumpGe:
		return []uint32{uint32(i.Addr)}
	case JumpGte:
		return []uint32{uint32(i.Addr)}
	case JumpLt:
		return []uint32{uint32(i.Addr)}
	case JumpLte:
		return []uint32{uint32(i.Addr)}
	case Call:
		return []uint32{uint32(i.Addr)}
	case Load:
		return []uint32{uint32(i.Dst), uint32(i.Addr)}
	case StoreReg:
		return []uint32{uint32(i.Src), uint32(i.Addr)}
	case StoreVal:
		return []uint32{uint32(i.Addr), i.Value.Uint32()}
	case Interrupt:
		return []uint32{i.Index}
	case InterruptReg:
		return []uint32{uint32(i.Reg)}
	}

	// Halt, Ret
	return nil
}

// checkRegisters reports the first register operand of inst that is not
// in the register file.
func checkRegisters(inst Instruction) (err error) {
	args := fields(inst)
	for n, arg := range inst.OpCode().layout() {
		if arg != ARG_REG || n >= len(args) {
			continue
		}
		_, err = RegisterFrom(byte(args[n]))
		if err != nil {
			return
		}
	}

	return
}

// Encode an instruction into its opcode and operand bytes.
func Encode(inst Instruction) (op OpCode, operands []byte) {
	op = inst.OpCode()
	operands = pack(make([]byte, 0, op.Size()-1), op, fields(inst)...)
	return
}

// AppendInstruction appends the full encoding of inst, opcode first.
func AppendInstruction(buf []byte, inst Instruction) []byte {
	op := inst.OpCode()
	buf = append(buf, byte(op))
	return pack(buf, op, fields(inst)...)
}

// Listing is one decoded entry of a disassembled image.
type Listing struct {
	Addr  memory.Address // Program relative offset of the entry.
	Bytes []byte         // Encoded bytes of the entry.
	Inst  Instruction    // Decoded instruction, nil if Err is set.
	Err   error          // Decode failure, if any.
}

// Disassemble walks an image from its start. An undecodable opcode is
// reported as a one byte entry and the walk continues; a truncated final
// instruction ends it.
func Disassemble(image []byte) iter.Seq[Listing] {
	return func(yield func(Listing) bool) {
		var addr int
		for addr < len(image) {
			entry := Listing{Addr: memory.Address(addr)}
			op, err := OpCodeFrom(image[addr])
			if err != nil {
				entry.Bytes = image[addr : addr+1]
				entry.Err = err
				if !yield(entry) {
					return
				}
				addr++
				continue
			}

			size := op.Size()
			if addr+size > len(image) {
				entry.Bytes = image[addr:]
				entry.Err = ErrOperandWindow
				yield(entry)
				return
			}

			entry.Bytes = image[addr : addr+size]
			entry.Inst, entry.Err = Decode(op, entry.Bytes[1:])
			if !yield(entry) {
				return
			}
			addr += size
		}
	}
}
