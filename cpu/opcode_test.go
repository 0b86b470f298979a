package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpCode_Size(t *testing.T) {
	assert := assert.New(t)

	sizes := map[OpCode]int{
		OP_MOV_REG_MEM: 6, OP_MOV_REG_REG: 3, OP_MOV_REG_U8: 3, OP_MOV_REG_U16: 4,
		OP_MOV_REG_U32: 6, OP_MOV_MEM_REG: 6, OP_MOV_MEM_U8: 6, OP_MOV_MEM_U16: 7,
		OP_MOV_MEM_U32: 9, OP_ADD_REG_REG: 3, OP_ADD_REG_MEM: 6, OP_ADD_MEM_REG: 6,
		OP_ADD_REG_U8: 3, OP_ADD_REG_U16: 4, OP_ADD_REG_U32: 6, OP_INC_REG: 2,
		OP_INC_MEM: 5, OP_PUSH_REG: 2, OP_PUSH_MEM: 5, OP_PUSH_U8: 2,
		OP_PUSH_U16: 3, OP_PUSH_U32: 5, OP_POP_REG: 2, OP_CMP_REG: 3,
		OP_CMP_U8: 3, OP_CMP_U16: 5, OP_CMP_U32: 9, OP_JUMP: 5,
		OP_JUMP_GE: 5, OP_JUMP_GTE: 5, OP_JUMP_LE: 5, OP_JUMP_LTE: 5,
		OP_CALL: 5, OP_LOAD: 6, OP_HALT: 1, OP_RET: 1,
		OP_INTERRUPT: 5, OP_INTERRUPT_REG: 2, OP_STORE_REG: 6, OP_STORE_U8: 6,
		OP_STORE_U16: 7, OP_STORE_U32: 9,
	}

	assert.Len(sizes, OPCODE_COUNT)
	for op, size := range sizes {
		assert.Equal(size, op.Size(), op.String())
	}

	assert.Equal(0, OpCode(OPCODE_COUNT).Size())
}

func TestOpCode_Layout(t *testing.T) {
	assert := assert.New(t)

	for n := range OPCODE_COUNT {
		op := OpCode(n)
		assert.True(op.Valid())
		assert.NotNil(opLayout[op], op.String())
		assert.NotContains(op.String(), "OpCode(")
	}

	assert.False(OpCode(OPCODE_COUNT).Valid())
	assert.Nil(OpCode(0xff).layout())
}

func TestOpCodeFrom(t *testing.T) {
	assert := assert.New(t)

	op, err := OpCodeFrom(34)
	assert.NoError(err)
	assert.Equal(OP_HALT, op)
	assert.Equal("Halt", op.String())

	_, err = OpCodeFrom(OPCODE_COUNT)
	assert.Equal(ErrInvalidOpCode(OPCODE_COUNT), err)
	assert.ErrorIs(err, ErrInvalidOpCode(0))
}

func TestRegisterFrom(t *testing.T) {
	assert := assert.New(t)

	for n := range REGISTER_COUNT {
		reg, err := RegisterFrom(byte(n))
		assert.NoError(err)
		assert.Equal(Register(n), reg)
	}

	_, err := RegisterFrom(REGISTER_COUNT)
	assert.Equal(ErrInvalidRegister(REGISTER_COUNT), err)

	assert.Equal("ip", REG_IP.String())
	assert.Equal("r8", REG_R8.String())
	assert.Equal("sp", REG_SP.String())

	reg, ok := RegisterByName("FP")
	assert.True(ok)
	assert.Equal(REG_FP, reg)

	_, ok = RegisterByName("r9")
	assert.False(ok)
}

func TestNewRegisters(t *testing.T) {
	assert := assert.New(t)

	regs := NewRegisters(0x100, 0x8000)
	assert.Equal(uint32(0x100), regs.Get(REG_IP))
	assert.Equal(uint32(0x8000), regs.Get(REG_SP))
	assert.Equal(uint32(0x8000), regs.Get(REG_FP))
	for reg := REG_R1; reg <= REG_R8; reg++ {
		assert.Equal(uint32(0), regs.Get(reg), reg.String())
	}
	assert.Len(regs.Values(), REGISTER_COUNT)
}

func TestComparison(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(CMP_EQ, Compare(5, 5))
	assert.Equal(CMP_GT, Compare(6, 5))
	assert.Equal(CMP_LT, Compare(4, 5))
	assert.Equal(CMP_GT, Compare(0xffffffff, 0))

	cmp, err := ComparisonFrom(5)
	assert.NoError(err)
	assert.Equal(CMP_GTE, cmp)
	assert.Equal("gte", cmp.String())

	_, err = ComparisonFrom(6)
	assert.Equal(ErrInvalidComparison(6), err)
	assert.ErrorIs(err, ErrInvalidComparison(0))
}

func TestValue(t *testing.T) {
	assert := assert.New(t)

	assert.NotEqual(U8(1), U16(1))
	assert.Equal(uint32(0xbeef), U16(0xbeef).Uint32())
	assert.Equal(uint32(0x34), Value{Width: WIDTH_8, Raw: 0x1234}.Uint32())

	table := []struct {
		value Value
		text  string
	}{
		{U8(10), "10"},
		{U16(10), "10:u16"},
		{U16(300), "300"},
		{U32(300), "300:u32"},
		{U32(70000), "70000"},
	}

	for _, entry := range table {
		assert.Equal(entry.text, entry.value.String())
	}

	assert.Equal(WIDTH_8, WidthOf(0xff))
	assert.Equal(WIDTH_16, WidthOf(0x100))
	assert.Equal(WIDTH_32, WidthOf(0x10000))
}
