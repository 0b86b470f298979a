package asm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/vmcpu/cpu"
)

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel      = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)
)

// charEscape maps the letter after a backslash to its byte.
var charEscape = map[byte]byte{
	'\\': '\\',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'e':  0x1b,
	'0':  0,
}

// widthSuffix maps an immediate suffix to its width.
var widthSuffix = map[string]cpu.Width{
	"u8":  cpu.WIDTH_8,
	"u16": cpu.WIDTH_16,
	"u32": cpu.WIDTH_32,
}

// valueOf returns the value of a plain number, optionally prefixed by '~'
// to invert it. Negative numbers are two's complement.
func valueOf(word string) (value uint32, err error) {
	text, invert := strings.CutPrefix(word, "~")
	if strings.HasPrefix(text, "'") {
		// Character literals are replaced by expand.
		err = ErrParseCharacter(word)
		return
	}

	v64, perr := strconv.ParseInt(text, 0, 33)
	if perr != nil || v64 < -0x80000000 {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)
	if invert {
		value = ^value
	}

	return
}

// numberOf parses a sized immediate, such as '10', '0x10:u16' or '-1:u8'.
// Without a suffix the narrowest width is used.
func numberOf(word string) (value cpu.Value, err error) {
	text, suffix, sized := strings.Cut(word, ":")

	raw, err := valueOf(text)
	if err != nil {
		return
	}

	if !sized {
		value = cpu.Value{Width: cpu.WidthOf(raw), Raw: raw}
		return
	}

	width, ok := widthSuffix[strings.ToLower(suffix)]
	if !ok {
		err = ErrParseWidth(word)
		return
	}

	// Negative numbers are truncated to the width.
	if strings.HasPrefix(text, "-") {
		raw &= width.Mask()
	}
	if raw&^width.Mask() != 0 {
		err = ErrParseWidth(word)
		return
	}

	value = cpu.Value{Width: width, Raw: raw}
	return
}

// globals are the numeric equates, visible to $(...) expressions.
// Equates that are not numbers, such as register names, are skipped.
func (asm *Assembler) globals() starlark.StringDict {
	env := make(starlark.StringDict, len(asm.Equate))
	for key, text := range asm.Equate {
		if value, err := valueOf(text); err == nil {
			env[key] = starlark.MakeUint64(uint64(value))
		}
	}

	return env
}

// eval evaluates a Starlark expression to a 32-bit value.
func (asm *Assembler) eval(expr string) (value uint32, err error) {
	thread := &starlark.Thread{Name: "asm"}

	result, err := starlark.EvalOptions(&syntax.FileOptions{}, thread, "expr", expr, asm.globals())
	if err != nil {
		return
	}

	number, ok := result.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	v64, ok := number.Int64()
	if !ok || v64 > 0xffffffff || v64 < -0x80000000 {
		err = ErrParseExpression(expr)
		return
	}

	value = uint32(v64)
	return
}

// character returns the decimal text for a quoted character, or the
// quoted text unchanged if it is not a single character or escape.
func character(quoted string) string {
	inner := quoted[1 : len(quoted)-1]

	switch {
	case len(inner) == 1:
		return strconv.Itoa(int(inner[0]))
	case inner[0] == '\\':
		if b, ok := charEscape[inner[1]]; ok {
			return strconv.Itoa(int(b))
		}
	}

	return quoted
}

// expand replaces character literals and $(...) expressions with numbers.
// The first failing expression is reported.
func (asm *Assembler) expand(line string) (out string, err error) {
	out = reCharacter.ReplaceAllStringFunc(line, character)

	out = reExpression.ReplaceAllStringFunc(out, func(text string) string {
		value, eerr := asm.eval(text[2 : len(text)-1])
		if eerr != nil {
			if err == nil {
				err = eerr
			}
			return text
		}
		return fmt.Sprintf("%#x", value)
	})

	return
}
