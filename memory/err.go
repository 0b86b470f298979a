package memory

import (
	"errors"

	"github.com/ezrec/vmcpu/translate"
)

var f = translate.From

var (
	// Address arithmetic errors
	ErrStackOverflow  = errors.New(f("stack overflow"))
	ErrStackUnderflow = errors.New(f("stack underflow"))
)

// ErrInvalidAddress is returned when an access falls outside of the store.
type ErrInvalidAddress Address

func (ea ErrInvalidAddress) Error() string {
	return f("invalid address 0x%08x", uint32(ea))
}

// Is matches any ErrInvalidAddress, regardless of offset.
func (ea ErrInvalidAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrInvalidAddress)
	return
}
