package cpu

// OpCode is the leading byte of every encoded instruction.
type OpCode uint8

//go:generate go tool stringer -linecomment -type=OpCode
const (
	OP_MOV_REG_MEM   = OpCode(0)  // MovRegMem
	OP_MOV_REG_REG   = OpCode(1)  // MovRegReg
	OP_MOV_REG_U8    = OpCode(2)  // MovRegU8
	OP_MOV_REG_U16   = OpCode(3)  // MovRegU16
	OP_MOV_REG_U32   = OpCode(4)  // MovRegU32
	OP_MOV_MEM_REG   = OpCode(5)  // MovMemReg
	OP_MOV_MEM_U8    = OpCode(6)  // MovMemU8
	OP_MOV_MEM_U16   = OpCode(7)  // MovMemU16
	OP_MOV_MEM_U32   = OpCode(8)  // MovMemU32
	OP_ADD_REG_REG   = OpCode(9)  // AddRegReg
	OP_ADD_REG_MEM   = OpCode(10) // AddRegMem
	OP_ADD_MEM_REG   = OpCode(11) // AddMemReg
	OP_ADD_REG_U8    = OpCode(12) // AddRegU8
	OP_ADD_REG_U16   = OpCode(13) // AddRegU16
	OP_ADD_REG_U32   = OpCode(14) // AddRegU32
	OP_INC_REG       = OpCode(15) // IncReg
	OP_INC_MEM       = OpCode(16) // IncMem
	OP_PUSH_REG      = OpCode(17) // PushReg
	OP_PUSH_MEM      = OpCode(18) // PushMem
	OP_PUSH_U8       = OpCode(19) // PushU8
	OP_PUSH_U16      = OpCode(20) // PushU16
	OP_PUSH_U32      = OpCode(21) // PushU32
	OP_POP_REG       = OpCode(22) // PopReg
	OP_CMP_REG       = OpCode(23) // CmpReg
	OP_CMP_U8        = OpCode(24) // CmpU8
	OP_CMP_U16       = OpCode(25) // CmpU16
	OP_CMP_U32       = OpCode(26) // CmpU32
	OP_JUMP          = OpCode(27) // Jump
	OP_JUMP_GE       = OpCode(28) // JumpGe
	OP_JUMP_GTE      = OpCode(29) // JumpGte
	OP_JUMP_LE       = OpCode(30) // JumpLe
	OP_JUMP_LTE      = OpCode(31) // JumpLte
	OP_CALL          = OpCode(32) // Call
	OP_LOAD          = OpCode(33) // Load
	OP_HALT          = OpCode(34) // Halt
	OP_RET           = OpCode(35) // Ret
	OP_INTERRUPT     = OpCode(36) // Interrupt
	OP_INTERRUPT_REG = OpCode(37) // InterruptReg
	OP_STORE_REG     = OpCode(38) // StoreReg
	OP_STORE_U8      = OpCode(39) // StoreU8
	OP_STORE_U16     = OpCode(40) // StoreU16
	OP_STORE_U32     = OpCode(41) // StoreU32
)

const OPCODE_COUNT = 42 // Number of defined opcodes.

// operand is the kind of an encoded operand field.
type operand uint8

const (
	ARG_REG  = operand(0) // Register identifier, 1 byte.
	ARG_ADDR = operand(1) // Program relative address, 4 bytes.
	ARG_U8   = operand(2) // 8-bit immediate.
	ARG_U16  = operand(3) // 16-bit immediate, little-endian.
	ARG_U32  = operand(4) // 32-bit immediate, little-endian.
)

// size of the encoded operand in bytes.
func (arg operand) size() int {
	switch arg {
	case ARG_REG, ARG_U8:
		return 1
	case ARG_U16:
		return 2
	default:
		return 4
	}
}

// width of an immediate operand.
func (arg operand) width() Width {
	switch arg {
	case ARG_U8:
		return WIDTH_8
	case ARG_U16:
		return WIDTH_16
	default:
		return WIDTH_32
	}
}

// opLayout is the operand layout that follows each opcode byte, in encoded
// order.
var opLayout = [OPCODE_COUNT][]operand{
	OP_MOV_REG_MEM:   {ARG_REG, ARG_ADDR},
	OP_MOV_REG_REG:   {ARG_REG, ARG_REG},
	OP_MOV_REG_U8:    {ARG_REG, ARG_U8},
	OP_MOV_REG_U16:   {ARG_REG, ARG_U16},
	OP_MOV_REG_U32:   {ARG_REG, ARG_U32},
	OP_MOV_MEM_REG:   {ARG_ADDR, ARG_REG},
	OP_MOV_MEM_U8:    {ARG_ADDR, ARG_U8},
	OP_MOV_MEM_U16:   {ARG_ADDR, ARG_U16},
	OP_MOV_MEM_U32:   {ARG_ADDR, ARG_U32},
	OP_ADD_REG_REG:   {ARG_REG, ARG_REG},
	OP_ADD_REG_MEM:   {ARG_REG, ARG_ADDR},
	OP_ADD_MEM_REG:   {ARG_ADDR, ARG_REG},
	OP_ADD_REG_U8:    {ARG_REG, ARG_U8},
	OP_ADD_REG_U16:   {ARG_REG, ARG_U16},
	OP_ADD_REG_U32:   {ARG_REG, ARG_U32},
	OP_INC_REG:       {ARG_REG},
	OP_INC_MEM:       {ARG_ADDR},
	OP_PUSH_REG:      {ARG_REG},
	OP_PUSH_MEM:      {ARG_ADDR},
	OP_PUSH_U8:       {ARG_U8},
	OP_PUSH_U16:      {ARG_U16},
	OP_PUSH_U32:      {ARG_U32},
	OP_POP_REG:       {ARG_REG},
	OP_CMP_REG:       {ARG_REG, ARG_REG},
	OP_CMP_U8:        {ARG_U8, ARG_U8},
	OP_CMP_U16:       {ARG_U16, ARG_U16},
	OP_CMP_U32:       {ARG_U32, ARG_U32},
	OP_JUMP:          {ARG_ADDR},
	OP_JUMP_GE:       {ARG_ADDR},
	OP_JUMP_GTE:      {ARG_ADDR},
	OP_JUMP_LE:       {ARG_ADDR},
	OP_JUMP_LTE:      {ARG_ADDR},
	OP_CALL:          {ARG_ADDR},
	OP_LOAD:          {ARG_REG, ARG_ADDR},
	OP_HALT:          {},
	OP_RET:           {},
	OP_INTERRUPT:     {ARG_U32},
	OP_INTERRUPT_REG: {ARG_REG},
	OP_STORE_REG:     {ARG_REG, ARG_ADDR},
	OP_STORE_U8:      {ARG_ADDR, ARG_U8},
	OP_STORE_U16:     {ARG_ADDR, ARG_U16},
	OP_STORE_U32:     {ARG_ADDR, ARG_U32},
}

var opSize [OPCODE_COUNT]int

func init() {
	for op, layout := range opLayout {
		size := 1
		for _, arg := range layout {
			size += arg.size()
		}
		opSize[op] = size
	}
}

// OpCodeFrom decodes an opcode byte.
func OpCodeFrom(value byte) (op OpCode, err error) {
	if int(value) >= OPCODE_COUNT {
		err = ErrInvalidOpCode(value)
		return
	}

	op = OpCode(value)
	return
}

// Valid returns true if op is a defined opcode.
func (op OpCode) Valid() bool {
	return int(op) < OPCODE_COUNT
}

// Size returns the total encoded length of the instruction, opcode byte
// included. This is also the amount the IP advances past it.
func (op OpCode) Size() int {
	if !op.Valid() {
		return 0
	}
	return opSize[op]
}

// layout returns the operand layout of the opcode.
func (op OpCode) layout() []operand {
	if !op.Valid() {
		return nil
	}
	return opLayout[op]
}

// byWidth selects the opcode of a sized family by immediate width.
func byWidth(width Width, op8, op16, op32 OpCode) OpCode {
	switch width {
	case WIDTH_8:
		return op8
	case WIDTH_16:
		return op16
	default:
		return op32
	}
}
