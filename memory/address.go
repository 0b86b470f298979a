package memory

import (
	"fmt"
	"math"
	"math/bits"
)

// Address is a byte offset into a 32-bit memory space.
type Address uint32

// Next returns the following address, or ErrStackOverflow at the top of
// the address space.
func (addr Address) Next() (next Address, err error) {
	if addr == math.MaxUint32 {
		err = ErrStackOverflow
		return
	}

	next = addr + 1
	return
}

// Prev returns the preceding address, or ErrStackUnderflow at zero.
func (addr Address) Prev() (prev Address, err error) {
	if addr == 0 {
		err = ErrStackUnderflow
		return
	}

	prev = addr - 1
	return
}

// Add returns addr+off, modulo 2^32.
func (addr Address) Add(off Address) Address {
	return addr + off
}

// Sub returns addr-off, modulo 2^32.
func (addr Address) Sub(off Address) Address {
	return addr - off
}

// Offset returns addr+off, failing with ErrInvalidAddress if the sum does
// not fit in the address space.
func (addr Address) Offset(off uint32) (out Address, err error) {
	sum, carry := bits.Add32(uint32(addr), off, 0)
	if carry != 0 {
		err = ErrInvalidAddress(sum)
		return
	}

	out = Address(sum)
	return
}

func (addr Address) String() string {
	return fmt.Sprintf("0x%08x", uint32(addr))
}
