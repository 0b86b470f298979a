package cpu

import (
	"fmt"
	"log"

	"github.com/ezrec/vmcpu/memory"
)

// Cpu is the execution engine. It owns the register file, the comparison
// flags and the interrupt state, and executes against one Memory.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory    memory.Memory // Backing store, exclusively owned.
	Registers Registers     // Register file.
	Flags     Comparison    // Result of the last compare.
	State     State         // Running or halted.

	InInterrupt bool // Set while an interrupt handler frame is active.

	Ticks int // Instructions executed since reset.

	programStart   uint32
	stackStart     uint32
	interruptTable memory.Address
	interruptFrame uint32
}

// NewCpu creates a CPU attached to mem.
//
// programStart is the initial IP, and the base that every address in the
// instruction stream is relative to. stackStart is the initial SP and FP.
// interruptTable is the absolute address of the interrupt vector table.
func NewCpu(mem memory.Memory, programStart, stackStart uint32, interruptTable memory.Address) (cpu *Cpu) {
	cpu = &Cpu{
		Memory:         mem,
		programStart:   programStart,
		stackStart:     stackStart,
		interruptTable: interruptTable,
	}

	cpu.Reset()

	return
}

// Reset the register file, flags and interrupt state. Memory is untouched.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers = NewRegisters(cpu.programStart, cpu.stackStart)
	cpu.Flags = CMP_EQ
	cpu.State = STATE_RUNNING
	cpu.InInterrupt = false
	cpu.interruptFrame = 0
	cpu.Ticks = 0
}

// Ip returns the current instruction pointer.
func (cpu *Cpu) Ip() memory.Address {
	return memory.Address(cpu.Registers.Get(REG_IP))
}

// ProgramStart returns the relocation base of the program.
func (cpu *Cpu) ProgramStart() memory.Address {
	return memory.Address(cpu.programStart)
}

// StackStart returns the initial stack pointer.
func (cpu *Cpu) StackStart() memory.Address {
	return memory.Address(cpu.stackStart)
}

// InterruptTable returns the base of the interrupt vector table.
func (cpu *Cpu) InterruptTable() memory.Address {
	return cpu.interruptTable
}

// resolve converts a program relative address to an absolute one.
func (cpu *Cpu) resolve(addr memory.Address) (memory.Address, error) {
	return cpu.ProgramStart().Offset(uint32(addr))
}

// fetch decodes the instruction at IP.
func (cpu *Cpu) fetch() (op OpCode, inst Instruction, err error) {
	ip := cpu.Ip()

	b, err := cpu.Memory.Read(ip)
	if err != nil {
		return
	}
	op = OpCode(b)

	_, err = OpCodeFrom(b)
	if err != nil {
		return
	}

	var operands []byte
	if op.Size() > 1 {
		var start, end memory.Address
		start, err = ip.Next()
		if err != nil {
			return
		}
		end, err = ip.Offset(uint32(op.Size()))
		if err != nil {
			return
		}
		operands, err = cpu.Memory.Get(start, end)
		if err != nil {
			return
		}
	}

	inst, err = Decode(op, operands)
	return
}

// FetchInstruction decodes the instruction at IP, without executing it.
func (cpu *Cpu) FetchInstruction() (inst Instruction, err error) {
	_, inst, err = cpu.fetch()
	return
}

// Step executes a single instruction.
//
// IP is advanced past the instruction before it is dispatched, so any
// instruction that writes IP redirects control. On failure IP is left on
// the faulting instruction and the error is an *ErrFault. Side effects
// made before the failure, such as the leading bytes of a partial word
// write or a consumed input byte, are not undone.
// Once halted, Step returns STATE_HALTED and changes nothing.
func (cpu *Cpu) Step() (state State, err error) {
	if cpu.State == STATE_HALTED {
		state = STATE_HALTED
		return
	}

	ip := cpu.Ip()

	op, inst, err := cpu.fetch()
	if err == nil {
		var next memory.Address
		next, err = ip.Offset(uint32(op.Size()))
		if err == nil {
			if cpu.Verbose {
				log.Printf("cpu: %v: %v", ip, inst)
			}
			cpu.Registers.Set(REG_IP, uint32(next))
			err = cpu.Dispatch(inst)
		}
	}

	if err != nil {
		cpu.Registers.Set(REG_IP, uint32(ip))
		err = &ErrFault{Ip: ip, OpCode: op, Err: err}
		if cpu.Verbose {
			log.Printf("cpu: %v", err)
		}
		state = cpu.State
		return
	}

	cpu.Ticks++
	state = cpu.State

	return
}

// Execute steps until the CPU halts, or a step fails.
func (cpu *Cpu) Execute() (err error) {
	for {
		var state State
		state, err = cpu.Step()
		if err != nil || state == STATE_HALTED {
			return
		}
	}
}

// WriteInstructions encodes insts into memory sequentially from IP, then
// resets IP to the program start.
func (cpu *Cpu) WriteInstructions(insts []Instruction) (err error) {
	addr := cpu.Ip()
	for _, inst := range insts {
		buf := AppendInstruction(nil, inst)
		err = memory.WriteBytes(cpu.Memory, addr, buf)
		if err != nil {
			return
		}
		addr, err = addr.Offset(uint32(len(buf)))
		if err != nil {
			return
		}
	}

	cpu.Registers.Set(REG_IP, cpu.programStart)

	return
}

// WriteImage copies a pre-encoded image to the program start.
func (cpu *Cpu) WriteImage(image []byte) (err error) {
	return memory.WriteBytes(cpu.Memory, cpu.ProgramStart(), image)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text = cpu.Registers.String()
	text += fmt.Sprintf("% 5s: %v\n", "flags", cpu.Flags)
	text += fmt.Sprintf("% 5s: %v\n", "state", cpu.State)
	if cpu.InInterrupt {
		text += fmt.Sprintf("% 5s: %v\n", "irq", memory.Address(cpu.interruptFrame))
	}

	return
}
