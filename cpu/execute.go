package cpu

import (
	"log"

	"github.com/ezrec/vmcpu/memory"
)

func (cpu *Cpu) get(reg Register) uint32 {
	return cpu.Registers.Get(reg)
}

func (cpu *Cpu) set(reg Register, value uint32) {
	cpu.Registers.Set(reg, value)
}

// readWord reads a 32-bit word at a program relative address.
func (cpu *Cpu) readWord(addr memory.Address) (value uint32, err error) {
	abs, err := cpu.resolve(addr)
	if err != nil {
		return
	}
	return memory.ReadU32(cpu.Memory, abs)
}

// writeWord writes a 32-bit word at a program relative address.
func (cpu *Cpu) writeWord(addr memory.Address, value uint32) (err error) {
	abs, err := cpu.resolve(addr)
	if err != nil {
		return
	}
	return memory.WriteU32(cpu.Memory, abs, value)
}

// writeValue writes an immediate at its own width.
func (cpu *Cpu) writeValue(addr memory.Address, value Value) (err error) {
	abs, err := cpu.resolve(addr)
	if err != nil {
		return
	}

	switch value.Width {
	case WIDTH_8:
		err = cpu.Memory.Write(abs, byte(value.Raw))
	case WIDTH_16:
		err = memory.WriteU16(cpu.Memory, abs, uint16(value.Raw))
	default:
		err = memory.WriteU32(cpu.Memory, abs, value.Raw)
	}

	return
}

// jump sets IP to a program relative address.
func (cpu *Cpu) jump(addr memory.Address) (err error) {
	abs, err := cpu.resolve(addr)
	if err != nil {
		return
	}

	cpu.set(REG_IP, uint32(abs))
	return
}

// Dispatch executes one decoded instruction. IP must already point past
// the instruction. Register operands outside the register file are
// rejected with ErrInvalidRegister before anything changes.
func (cpu *Cpu) Dispatch(inst Instruction) (err error) {
	err = checkRegisters(inst)
	if err != nil {
		return
	}

	var value uint32

	switch i := inst.(type) {
	case MovRegMem:
		value, err = cpu.readWord(i.Addr)
		if err == nil {
			cpu.set(i.Dst, value)
		}
	case MovRegReg:
		cpu.set(i.Dst, cpu.get(i.Src))
	case MovRegNum:
		cpu.set(i.Dst, i.Value.Uint32())
	case MovMemReg:
		err = cpu.writeWord(i.Addr, cpu.get(i.Src))
	case MovMemNum:
		err = cpu.writeValue(i.Addr, i.Value)
	case AddRegReg:
		cpu.set(i.Dst, cpu.get(i.Dst)+cpu.get(i.Src))
	case AddRegNum:
		cpu.set(i.Dst, cpu.get(i.Dst)+i.Value.Uint32())
	case AddRegMem:
		value, err = cpu.readWord(i.Addr)
		if err == nil {
			cpu.set(i.Dst, cpu.get(i.Dst)+value)
		}
	case AddMemReg:
		value, err = cpu.readWord(i.Addr)
		if err == nil {
			err = cpu.writeWord(i.Addr, value+cpu.get(i.Src))
		}
	case IncReg:
		cpu.set(i.Reg, cpu.get(i.Reg)+1)
	case IncMem:
		value, err = cpu.readWord(i.Addr)
		if err == nil {
			err = cpu.writeWord(i.Addr, value+1)
		}
	case PushReg:
		err = cpu.Push(cpu.get(i.Reg))
	case PushMem:
		value, err = cpu.readWord(i.Addr)
		if err == nil {
			err = cpu.Push(value)
		}
	case PushVal:
		err = cpu.Push(i.Value.Uint32())
	case PopReg:
		value, err = cpu.Pop()
		if err == nil {
			cpu.set(i.Reg, value)
		}
	case CmpReg:
		cpu.Flags = Compare(cpu.get(i.A), cpu.get(i.B))
	case CmpVal:
		cpu.Flags = Compare(i.A.Uint32(), i.B.Uint32())
	case Jump:
		err = cpu.jump(i.Addr)
	case JumpGe:
		if cpu.Flags == CMP_GT {
			err = cpu.jump(i.Addr)
		}
	case JumpGte:
		if cpu.Flags == CMP_GT || cpu.Flags == CMP_GTE {
			err = cpu.jump(i.Addr)
		}
	case JumpLt:
		if cpu.Flags == CMP_LT {
			err = cpu.jump(i.Addr)
		}
	case JumpLte:
		if cpu.Flags == CMP_LT || cpu.Flags == CMP_LTE {
			err = cpu.jump(i.Addr)
		}
	case Call:
		err = cpu.call(i.Addr)
	case Load:
		var abs memory.Address
		abs, err = cpu.resolve(i.Addr)
		if err == nil {
			var b byte
			b, err = cpu.Memory.Read(abs)
			if err == nil {
				cpu.set(i.Dst, uint32(b))
			}
		}
	case StoreReg:
		err = cpu.writeWord(i.Addr, cpu.get(i.Src))
	case StoreVal:
		err = cpu.writeValue(i.Addr, i.Value)
	case Interrupt:
		err = cpu.HandleInterrupt(i.Index)
	case InterruptReg:
		err = cpu.HandleInterrupt(cpu.get(i.Reg))
	case Halt:
		// Leave IP on the Halt.
		cpu.set(REG_IP, cpu.get(REG_IP)-uint32(OP_HALT.Size()))
		cpu.State = STATE_HALTED
		if cpu.Verbose {
			log.Printf("cpu: halted at %v", cpu.Ip())
		}
	case Ret:
		err = cpu.ret()
	default:
		err = ErrInvalidOpCode(inst.OpCode())
	}

	return
}
