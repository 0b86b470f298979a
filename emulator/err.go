package emulator

import (
	"errors"

	"github.com/ezrec/vmcpu/translate"
)

var f = translate.From

var (
	ErrTickLimit      = errors.New(f("tick limit reached"))
	ErrConfigMaxTicks = errors.New(f("max_ticks must not be negative"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

type ErrConfigKey string

func (err ErrConfigKey) Error() string {
	return f("unknown configuration key %v", string(err))
}

type ErrConfigMemoryKind string

func (err ErrConfigMemoryKind) Error() string {
	return f("memory kind '%v' is not flat or paged", string(err))
}

type ErrConfigMemorySize uint64

func (err ErrConfigMemorySize) Error() string {
	return f("memory size %#x is out of range", uint64(err))
}

type ErrConfigTapePort uint32

func (err ErrConfigTapePort) Error() string {
	return f("tape port %#x is below the program start", uint32(err))
}
