package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/vmcpu/cpu"
)

func TestNumberOf(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		word  string
		value cpu.Value
	}){
		{"0", cpu.U8(0)},
		{"255", cpu.U8(255)},
		{"256", cpu.U16(256)},
		{"0x10000", cpu.U32(0x10000)},
		{"0b101", cpu.U8(5)},
		{"0o17", cpu.U8(15)},
		{"-1", cpu.U32(0xffffffff)},
		{"~0xff", cpu.U32(0xffffff00)},
		{"1:u32", cpu.U32(1)},
		{"1:U16", cpu.U16(1)},
		{"-2:u8", cpu.U8(0xfe)},
		{"-1:u16", cpu.U16(0xffff)},
		{"0xffffffff:u32", cpu.U32(0xffffffff)},
	}

	for _, entry := range table {
		value, err := numberOf(entry.word)
		assert.NoError(err, entry.word)
		assert.Equal(entry.value, value, entry.word)
	}

	for _, word := range []string{"", "~", "x", "0x100000000", "-0x80000001", "256:u8", "1:u64", "'a'"} {
		_, err := numberOf(word)
		assert.Error(err, word)
	}
}

func TestExpand(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "0x100")
	asm.Predefine("REG", "r1")
	asm.reset()

	table := [](struct {
		line string
		out  string
	}){
		{"mov r1, 'a'", "mov r1, 97"},
		{"mov r1, '\\n'", "mov r1, 10"},
		{"mov r1, '\\\\'", "mov r1, 92"},
		{"mov r1, '\\e'", "mov r1, 27"},
		{"mov r1, '\\q'", "mov r1, '\\q'"},
		{"mov r1, $(BASE + 1)", "mov r1, 0x101"},
		{"mov r1, $(BASE // 16), $(1 << 4)", "mov r1, 0x10, 0x10"},
		{"mov r1, $(-1)", "mov r1, 0xffffffff"},
	}

	for _, entry := range table {
		out, err := asm.expand(entry.line)
		assert.NoError(err, entry.line)
		assert.Equal(entry.out, out, entry.line)
	}

	for _, line := range []string{"mov r1, $(REG)", `mov r1, $("a")`, "mov r1, $(1 << 40)"} {
		_, err := asm.expand(line)
		assert.Error(err, line)
	}
}
