package cpu

import (
	"errors"

	"github.com/ezrec/vmcpu/memory"
	"github.com/ezrec/vmcpu/translate"
)

var f = translate.From

var (
	// Decode errors
	ErrOperandWindow = errors.New(f("operand window size mismatch"))

	// Cpu errors
	ErrInterruptVector = errors.New(f("interrupt vector out of range"))

	// Snapshot errors
	ErrSnapshotRegisters = errors.New(f("snapshot register count mismatch"))
	ErrSnapshotState     = errors.New(f("snapshot state invalid"))
)

// ErrInvalidOpCode is returned when an opcode byte is not defined.
type ErrInvalidOpCode byte

func (eo ErrInvalidOpCode) Error() string {
	return f("invalid opcode 0x%02x", byte(eo))
}

func (eo ErrInvalidOpCode) Is(err error) (ok bool) {
	_, ok = err.(ErrInvalidOpCode)
	return
}

// ErrInvalidRegister is returned when a register byte is not defined.
type ErrInvalidRegister byte

func (er ErrInvalidRegister) Error() string {
	return f("invalid register 0x%02x", byte(er))
}

func (er ErrInvalidRegister) Is(err error) (ok bool) {
	_, ok = err.(ErrInvalidRegister)
	return
}

// ErrInvalidComparison is returned when a comparison byte is not defined.
type ErrInvalidComparison byte

func (ec ErrInvalidComparison) Error() string {
	return f("invalid comparison 0x%02x", byte(ec))
}

func (ec ErrInvalidComparison) Is(err error) (ok bool) {
	_, ok = err.(ErrInvalidComparison)
	return
}

// ErrFault wraps any failure of a single Step, recording where it happened.
// The instruction pointer has been restored to Ip.
type ErrFault struct {
	Ip     memory.Address
	OpCode OpCode
	Err    error
}

func (err *ErrFault) Error() string {
	return f("fault at %v (%v): %v", err.Ip, err.OpCode, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}
