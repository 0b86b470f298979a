// Package memory implements the byte addressable storage used by the CPU.
//
// Storage is exposed through the Memory capability: single byte reads and
// writes plus a contiguous range fetch. Multi-byte little-endian accessors
// are composed from the single byte operations, so any backing store that
// implements the three primitives gets them for free. Two stores are
// provided: Flat, a fixed size array, and Paged, a sparse store that
// allocates pages on first write.
package memory
