package emulator

import (
	"errors"
	"io"

	"github.com/ezrec/vmcpu/memory"
)

// Tape is a byte stream device mapped over one address of a store.
// Reading the port takes the next input byte, or zero once the input is
// exhausted. Writing the port sends a byte to the output. All other
// addresses pass through to the store.
type Tape struct {
	memory.Memory
	Port   memory.Address
	Input  io.Reader
	Output io.Writer

	eof bool
}

var _ memory.Memory = (*Tape)(nil)

// EOF reports whether a read has found the end of the input.
func (tp *Tape) EOF() bool {
	return tp.eof
}

func (tp *Tape) Read(addr memory.Address) (value byte, err error) {
	if addr != tp.Port {
		return tp.Memory.Read(addr)
	}

	if tp.Input == nil || tp.eof {
		tp.eof = true
		return
	}

	var one [1]byte
	_, err = io.ReadFull(tp.Input, one[:])
	if errors.Is(err, io.EOF) {
		tp.eof = true
		err = nil
		return
	}
	if err != nil {
		return
	}

	value = one[0]
	return
}

func (tp *Tape) Write(addr memory.Address, value byte) (err error) {
	if addr != tp.Port {
		return tp.Memory.Write(addr, value)
	}

	if tp.Output == nil {
		return
	}

	_, err = tp.Output.Write([]byte{value})
	return
}
