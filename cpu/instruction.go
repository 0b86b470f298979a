package cpu

import (
	"fmt"

	"github.com/ezrec/vmcpu/memory"
)

// Instruction is a decoded operation with typed operands.
//
// Families of opcodes that differ only by immediate width collapse into a
// single variant carrying a Value; the width of the value selects the
// opcode when encoding.
type Instruction interface {
	fmt.Stringer

	// OpCode the instruction encodes to.
	OpCode() OpCode

	isInstruction()
}

// addrText formats a program relative address operand.
func addrText(addr memory.Address) string {
	return fmt.Sprintf("0x%x", uint32(addr))
}

// memText formats a memory reference operand.
func memText(addr memory.Address) string {
	return "[" + addrText(addr) + "]"
}

// MovRegMem loads a word from memory into a register.
type MovRegMem struct {
	Dst  Register
	Addr memory.Address
}

func (MovRegMem) OpCode() OpCode { return OP_MOV_REG_MEM }
func (i MovRegMem) String() string { return fmt.Sprintf("mov %v, %v", i.Dst, memText(i.Addr)) }
func (MovRegMem) isInstruction() {}

// MovRegReg copies one register to another.
type MovRegReg struct {
	Dst Register
	Src Register
}

func (MovRegReg) OpCode() OpCode { return OP_MOV_REG_REG }
func (i MovRegReg) String() string { return fmt.Sprintf("mov %v, %v", i.Dst, i.Src) }
func (MovRegReg) isInstruction() {}

// MovRegNum sets a register to an immediate.
type MovRegNum struct {
	Dst   Register
	Value Value
}

func (i MovRegNum) OpCode() OpCode {
	return byWidth(i.Value.Width, OP_MOV_REG_U8, OP_MOV_REG_U16, OP_MOV_REG_U32)
}
func (i MovRegNum) String() string { return fmt.Sprintf("mov %v, %v", i.Dst, i.Value) }
func (MovRegNum) isInstruction() {}

// MovMemReg stores a register word to memory.
type MovMemReg struct {
	Addr memory.Address
	Src  Register
}

func (MovMemReg) OpCode() OpCode { return OP_MOV_MEM_REG }
func (i MovMemReg) String() string { return fmt.Sprintf("mov %v, %v", memText(i.Addr), i.Src) }
func (MovMemReg) isInstruction() {}

// MovMemNum stores an immediate to memory, at the immediate's width.
type MovMemNum struct {
	Addr  memory.Address
	Value Value
}

func (i MovMemNum) OpCode() OpCode {
	return byWidth(i.Value.Width, OP_MOV_MEM_U8, OP_MOV_MEM_U16, OP_MOV_MEM_U32)
}
func (i MovMemNum) String() string { return fmt.Sprintf("mov %v, %v", memText(i.Addr), i.Value) }
func (MovMemNum) isInstruction() {}

// AddRegReg adds a register into a register.
type AddRegReg struct {
	Dst Register
	Src Register
}

func (AddRegReg) OpCode() OpCode { return OP_ADD_REG_REG }
func (i AddRegReg) String() string { return fmt.Sprintf("add %v, %v", i.Dst, i.Src) }
func (AddRegReg) isInstruction() {}

// AddRegNum adds an immediate into a register.
type AddRegNum struct {
	Dst   Register
	Value Value
}

func (i AddRegNum) OpCode() OpCode {
	return byWidth(i.Value.Width, OP_ADD_REG_U8, OP_ADD_REG_U16, OP_ADD_REG_U32)
}
func (i AddRegNum) String() string { return fmt.Sprintf("add %v, %v", i.Dst, i.Value) }
func (AddRegNum) isInstruction() {}

// AddRegMem adds a memory word into a register.
type AddRegMem struct {
	Dst  Register
	Addr memory.Address
}

func (AddRegMem) OpCode() OpCode { return OP_ADD_REG_MEM }
func (i AddRegMem) String() string { return fmt.Sprintf("add %v, %v", i.Dst, memText(i.Addr)) }
func (AddRegMem) isInstruction() {}

// AddMemReg adds a register into a memory word.
type AddMemReg struct {
	Addr memory.Address
	Src  Register
}

func (AddMemReg) OpCode() OpCode { return OP_ADD_MEM_REG }
func (i AddMemReg) String() string { return fmt.Sprintf("add %v, %v", memText(i.Addr), i.Src) }
func (AddMemReg) isInstruction() {}

// IncReg increments a register.
type IncReg struct {
	Reg Register
}

func (IncReg) OpCode() OpCode { return OP_INC_REG }
func (i IncReg) String() string { return fmt.Sprintf("inc %v", i.Reg) }
func (IncReg) isInstruction() {}

// IncMem increments a memory word.
type IncMem struct {
	Addr memory.Address
}

func (IncMem) OpCode() OpCode { return OP_INC_MEM }
func (i IncMem) String() string { return fmt.Sprintf("inc %v", memText(i.Addr)) }
func (IncMem) isInstruction() {}

// PushReg pushes a register.
type PushReg struct {
	Reg Register
}

func (PushReg) OpCode() OpCode { return OP_PUSH_REG }
func (i PushReg) String() string { return fmt.Sprintf("push %v", i.Reg) }
func (PushReg) isInstruction() {}

// PushMem pushes a memory word.
type PushMem struct {
	Addr memory.Address
}

func (PushMem) OpCode() OpCode { return OP_PUSH_MEM }
func (i PushMem) String() string { return fmt.Sprintf("push %v", memText(i.Addr)) }
func (PushMem) isInstruction() {}

// PushVal pushes an immediate, zero extended to a word.
type PushVal struct {
	Value Value
}

func (i PushVal) OpCode() OpCode {
	return byWidth(i.Value.Width, OP_PUSH_U8, OP_PUSH_U16, OP_PUSH_U32)
}
func (i PushVal) String() string { return fmt.Sprintf("push %v", i.Value) }
func (PushVal) isInstruction() {}

// PopReg pops a word into a register.
type PopReg struct {
	Reg Register
}

func (PopReg) OpCode() OpCode { return OP_POP_REG }
func (i PopReg) String() string { return fmt.Sprintf("pop %v", i.Reg) }
func (PopReg) isInstruction() {}

// CmpReg compares two registers.
type CmpReg struct {
	A Register
	B Register
}

func (CmpReg) OpCode() OpCode { return OP_CMP_REG }
func (i CmpReg) String() string { return fmt.Sprintf("cmp %v, %v", i.A, i.B) }
func (CmpReg) isInstruction() {}

// CmpVal compares two immediates. Both are encoded at the width of A.
type CmpVal struct {
	A Value
	B Value
}

func (i CmpVal) OpCode() OpCode {
	return byWidth(i.A.Width, OP_CMP_U8, OP_CMP_U16, OP_CMP_U32)
}
func (i CmpVal) String() string { return fmt.Sprintf("cmp %v, %v", i.A, i.B) }
func (CmpVal) isInstruction() {}

// Jump unconditionally.
type Jump struct {
	Addr memory.Address
}

func (Jump) OpCode() OpCode { return OP_JUMP }
func (i Jump) String() string { return "jmp " + addrText(i.Addr) }
func (Jump) isInstruction() {}

// JumpGe jumps when the last comparison was greater.
type JumpGe struct {
	Addr memory.Address
}

func (JumpGe) OpCode() OpCode { return OP_JUMP_GE }
func (i JumpGe) String() string { return "jge " + addrText(i.Addr) }
func (JumpGe) isInstruction() {}

// JumpGte jumps when the last comparison was greater, or greater-or-equal.
type JumpGte struct {
	Addr memory.Address
}

func (JumpGte) OpCode() OpCode { return OP_JUMP_GTE }
func (i JumpGte) String() string { return "jgte " + addrText(i.Addr) }
func (JumpGte) isInstruction() {}

// JumpLt jumps when the last comparison was less. It encodes as OP_JUMP_LE.
type JumpLt struct {
	Addr memory.Address
}

func (JumpLt) OpCode() OpCode { return OP_JUMP_LE }
func (i JumpLt) String() string { return "jlt " + addrText(i.Addr) }
func (JumpLt) isInstruction() {}

// JumpLte jumps when the last comparison was less, or less-or-equal.
type JumpLte struct {
	Addr memory.Address
}

func (JumpLte) OpCode() OpCode { return OP_JUMP_LTE }
func (i JumpLte) String() string { return "jlte " + addrText(i.Addr) }
func (JumpLte) isInstruction() {}

// Call saves a frame and transfers control to Addr.
type Call struct {
	Addr memory.Address
}

func (Call) OpCode() OpCode { return OP_CALL }
func (i Call) String() string { return "call " + addrText(i.Addr) }
func (Call) isInstruction() {}

// Load reads one byte from memory, zero extended, into a register.
type Load struct {
	Dst  Register
	Addr memory.Address
}

func (Load) OpCode() OpCode { return OP_LOAD }
func (i Load) String() string { return fmt.Sprintf("load %v, %v", i.Dst, memText(i.Addr)) }
func (Load) isInstruction() {}

// StoreReg writes a register word to memory.
type StoreReg struct {
	Src  Register
	Addr memory.Address
}

func (StoreReg) OpCode() OpCode { return OP_STORE_REG }
func (i StoreReg) String() string { return fmt.Sprintf("store %v, %v", memText(i.Addr), i.Src) }
func (StoreReg) isInstruction() {}

// StoreVal writes an immediate to memory, at the immediate's width.
type StoreVal struct {
	Addr  memory.Address
	Value Value
}

func (i StoreVal) OpCode() OpCode {
	return byWidth(i.Value.Width, OP_STORE_U8, OP_STORE_U16, OP_STORE_U32)
}
func (i StoreVal) String() string { return fmt.Sprintf("store %v, %v", memText(i.Addr), i.Value) }
func (StoreVal) isInstruction() {}

// Interrupt raises the interrupt at Index in the interrupt table.
type Interrupt struct {
	Index uint32
}

func (Interrupt) OpCode() OpCode { return OP_INTERRUPT }
func (i Interrupt) String() string { return fmt.Sprintf("int %d", i.Index) }
func (Interrupt) isInstruction() {}

// InterruptReg raises the interrupt whose index is held in a register.
type InterruptReg struct {
	Reg Register
}

func (InterruptReg) OpCode() OpCode { return OP_INTERRUPT_REG }
func (i InterruptReg) String() string { return fmt.Sprintf("int %v", i.Reg) }
func (InterruptReg) isInstruction() {}

// Halt stops the CPU.
type Halt struct{}

func (Halt) OpCode() OpCode { return OP_HALT }
func (Halt) String() string { return "halt" }
func (Halt) isInstruction() {}

// Ret unwinds the frame built by Call, or by an interrupt.
type Ret struct{}

func (Ret) OpCode() OpCode { return OP_RET }
func (Ret) String() string { return "ret" }
func (Ret) isInstruction() {}
