package memory

// Flat is a fixed size, zero initialized store starting at address 0.
type Flat struct {
	Data []byte
}

var _ Memory = (*Flat)(nil)

// NewFlat creates a store of size bytes.
func NewFlat(size uint32) (mem *Flat) {
	mem = &Flat{
		Data: make([]byte, size),
	}

	return
}

// Size of the store in bytes.
func (mem *Flat) Size() uint32 {
	return uint32(len(mem.Data))
}

func (mem *Flat) Read(addr Address) (value byte, err error) {
	if uint64(addr) >= uint64(len(mem.Data)) {
		err = ErrInvalidAddress(addr)
		return
	}

	value = mem.Data[addr]
	return
}

func (mem *Flat) Write(addr Address, value byte) (err error) {
	if uint64(addr) >= uint64(len(mem.Data)) {
		err = ErrInvalidAddress(addr)
		return
	}

	mem.Data[addr] = value
	return
}

func (mem *Flat) Get(start, end Address) (data []byte, err error) {
	switch {
	case start > end:
		err = ErrInvalidAddress(start)
		return
	case uint64(end) > uint64(len(mem.Data)):
		err = ErrInvalidAddress(end)
		return
	}

	data = mem.Data[start:end]
	return
}

// Reset zeros the store.
func (mem *Flat) Reset() {
	clear(mem.Data)
}
