// Package cpu implements a register machine executing a compact, variable
// length bytecode.
//
// Every instruction is one opcode byte followed by a fixed number of
// operand bytes determined by the opcode. Multi-byte operands are little
// endian, and addresses in the instruction stream are relative to the
// program start given to NewCpu.
//
// The register file holds the instruction pointer (ip), eight general
// purpose registers (r1-r8), a frame pointer (fp) and a stack pointer (sp).
// The stack grows down. Call saves r1-r4, the return address and a frame
// size word; Ret unwinds it. Interrupts dispatch through a table of
// program relative handler addresses, saving a Call frame unless an
// interrupt is already active.
package cpu
