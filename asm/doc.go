// Package asm is a single pass macro assembler for the cpu package.
//
// Source is line oriented. A ';' starts a comment. Operands are separated
// by commas or spaces, and memory operands are written in brackets:
//
//	.equ BUFFER 0x200
//	start:
//	    mov r5, 10
//	    mov [BUFFER], r5
//	    call double
//	    halt
//	double:
//	    add r5, r5
//	    ret
//	.int 0 start
//
// Supported directives are .equ, .macro/.endm (with '@' expanding to a
// name unique to each expansion) and .int, which sets an interrupt vector.
// Character literals such as 'a' and compile time $(...) expressions,
// evaluated by Starlark against the current equates, may appear anywhere.
//
// Immediates take the narrowest width that holds them unless written with
// a ':u8', ':u16' or ':u32' suffix. Labels are program relative, and always
// 32 bits wide when used as values.
package asm
