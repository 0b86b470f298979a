package memory

// Memory is a byte addressable store.
type Memory interface {
	// Read a single byte.
	Read(addr Address) (value byte, err error)
	// Write a single byte.
	Write(addr Address, value byte) (err error)
	// Get the bytes in the half-open range [start, end).
	// The returned slice may alias the store, and must not be retained
	// across a Write.
	Get(start, end Address) (data []byte, err error)
}

// readLE reads an n byte little-endian value, one byte at a time.
func readLE(mem Memory, addr Address, n int) (value uint32, err error) {
	for i := range n {
		if i > 0 {
			addr, err = addr.Next()
			if err != nil {
				return
			}
		}
		var b byte
		b, err = mem.Read(addr)
		if err != nil {
			return
		}
		value |= uint32(b) << (8 * i)
	}

	return
}

// writeLE writes an n byte little-endian value, one byte at a time.
func writeLE(mem Memory, addr Address, value uint32, n int) (err error) {
	for i := range n {
		if i > 0 {
			addr, err = addr.Next()
			if err != nil {
				return
			}
		}
		err = mem.Write(addr, byte(value>>(8*i)))
		if err != nil {
			return
		}
	}

	return
}

// ReadU16 reads a little-endian 16-bit value.
func ReadU16(mem Memory, addr Address) (value uint16, err error) {
	v, err := readLE(mem, addr, 2)
	value = uint16(v)
	return
}

// ReadU32 reads a little-endian 32-bit value.
func ReadU32(mem Memory, addr Address) (value uint32, err error) {
	return readLE(mem, addr, 4)
}

// WriteU16 writes a little-endian 16-bit value.
func WriteU16(mem Memory, addr Address, value uint16) (err error) {
	return writeLE(mem, addr, uint32(value), 2)
}

// WriteU32 writes a little-endian 32-bit value.
func WriteU32(mem Memory, addr Address, value uint32) (err error) {
	return writeLE(mem, addr, value, 4)
}

// WriteBytes writes data to consecutive addresses starting at addr.
func WriteBytes(mem Memory, addr Address, data []byte) (err error) {
	for n, b := range data {
		if n > 0 {
			addr, err = addr.Next()
			if err != nil {
				return
			}
		}
		err = mem.Write(addr, b)
		if err != nil {
			return
		}
	}

	return
}
