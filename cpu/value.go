package cpu

import (
	"strconv"
)

// Width of an immediate, in bytes.
type Width uint8

const (
	WIDTH_8  = Width(1)
	WIDTH_16 = Width(2)
	WIDTH_32 = Width(4)
)

// Mask of the bits representable at this width.
func (w Width) Mask() uint32 {
	switch w {
	case WIDTH_8:
		return 0xff
	case WIDTH_16:
		return 0xffff
	default:
		return 0xffffffff
	}
}

func (w Width) String() string {
	switch w {
	case WIDTH_8:
		return "u8"
	case WIDTH_16:
		return "u16"
	case WIDTH_32:
		return "u32"
	}
	return "Width(" + strconv.Itoa(int(w)) + ")"
}

// WidthOf returns the narrowest width that can hold value.
func WidthOf(value uint32) Width {
	switch {
	case value <= 0xff:
		return WIDTH_8
	case value <= 0xffff:
		return WIDTH_16
	default:
		return WIDTH_32
	}
}

// Value is a sized immediate. The width is part of its identity, and
// selects the encoded form of the instruction that carries it.
type Value struct {
	Width Width
	Raw   uint32
}

// U8 creates an 8-bit value.
func U8(value uint8) Value {
	return Value{Width: WIDTH_8, Raw: uint32(value)}
}

// U16 creates a 16-bit value.
func U16(value uint16) Value {
	return Value{Width: WIDTH_16, Raw: uint32(value)}
}

// U32 creates a 32-bit value.
func U32(value uint32) Value {
	return Value{Width: WIDTH_32, Raw: value}
}

// Uint32 returns the value zero extended to 32 bits.
func (v Value) Uint32() uint32 {
	return v.Raw & v.Width.Mask()
}

// String formats the value as assembler text. A width suffix is only added
// when the value is wider than needed.
func (v Value) String() string {
	raw := v.Uint32()
	text := strconv.FormatUint(uint64(raw), 10)
	if WidthOf(raw) != v.Width {
		text += ":" + v.Width.String()
	}
	return text
}
