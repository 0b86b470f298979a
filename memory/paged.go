package memory

import (
	"maps"
	"slices"
)

const (
	PAGE_SHIFT = 12              // log2 of the page size
	PAGE_SIZE  = 1 << PAGE_SHIFT // Bytes per page
	PAGE_MASK  = PAGE_SIZE - 1   // Offset within a page
	SPACE_SIZE = uint64(1) << 32 // Size of the full address space
)

type page [PAGE_SIZE]byte

// Paged is a sparse store. Pages are allocated on first write, and
// unallocated pages read as zero. Accesses at or beyond Limit fail.
type Paged struct {
	Limit uint64 // Size of the addressable range, at most 2^32.

	pages map[uint32]*page
}

var _ Memory = (*Paged)(nil)

// NewPaged creates a sparse store covering [0, limit). A limit of zero, or
// one beyond the address space, covers the whole 32-bit space.
func NewPaged(limit uint64) (mem *Paged) {
	if limit == 0 || limit > SPACE_SIZE {
		limit = SPACE_SIZE
	}

	mem = &Paged{
		Limit: limit,
		pages: make(map[uint32]*page),
	}

	return
}

// Pages returns the sorted page numbers currently allocated.
func (mem *Paged) Pages() []uint32 {
	return slices.Sorted(maps.Keys(mem.pages))
}

func (mem *Paged) Read(addr Address) (value byte, err error) {
	if uint64(addr) >= mem.Limit {
		err = ErrInvalidAddress(addr)
		return
	}

	pg, ok := mem.pages[uint32(addr)>>PAGE_SHIFT]
	if ok {
		value = pg[addr&PAGE_MASK]
	}

	return
}

func (mem *Paged) Write(addr Address, value byte) (err error) {
	if uint64(addr) >= mem.Limit {
		err = ErrInvalidAddress(addr)
		return
	}

	index := uint32(addr) >> PAGE_SHIFT
	pg, ok := mem.pages[index]
	if !ok {
		if value == 0 {
			// Unallocated pages already read as zero.
			return
		}
		if mem.pages == nil {
			mem.pages = make(map[uint32]*page)
		}
		pg = &page{}
		mem.pages[index] = pg
	}
	pg[addr&PAGE_MASK] = value

	return
}

// Get returns a copy of the range, as pages are not contiguous.
func (mem *Paged) Get(start, end Address) (data []byte, err error) {
	switch {
	case start > end:
		err = ErrInvalidAddress(start)
		return
	case uint64(end) > mem.Limit:
		err = ErrInvalidAddress(end)
		return
	}

	data = make([]byte, end-start)
	for n := range data {
		addr := start + Address(n)
		pg, ok := mem.pages[uint32(addr)>>PAGE_SHIFT]
		if ok {
			data[n] = pg[addr&PAGE_MASK]
		}
	}

	return
}

// Reset releases all pages.
func (mem *Paged) Reset() {
	clear(mem.pages)
}
